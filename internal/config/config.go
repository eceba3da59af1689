package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	envPrefix = "PAYGATE"

	// ConfigPathEnv points at an optional YAML settings file.
	ConfigPathEnv = "PAYGATE_CONFIG"
)

type Config struct {
	AppName     string `mapstructure:"app_name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
	HTTPAddr    string `mapstructure:"http_addr"`
	NodeID      int64  `mapstructure:"node_id"`

	Plugin   PluginConfig   `mapstructure:"plugin"`
	Store    StoreConfig    `mapstructure:"store"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Webhook  WebhookConfig  `mapstructure:"webhook"`
	Tracing  TracingConfig  `mapstructure:"tracing"`

	// Capabilities is the processor capability snapshot served when no
	// processor client is wired in, keyed by capability key.
	Capabilities map[string]string `mapstructure:"capabilities"`
}

// PluginConfig mirrors the checkout plugin settings page.
type PluginConfig struct {
	Enabled         string   `mapstructure:"enabled"`
	AcceptedMethods []string `mapstructure:"accepted_methods"`
	TestMode        bool     `mapstructure:"test_mode"`
	CaptureMode     string   `mapstructure:"capture_mode"`
}

type StoreConfig struct {
	Currency        string `mapstructure:"currency"`
	AccountID       string `mapstructure:"account_id"`
	AccountCurrency string `mapstructure:"account_currency"`
}

type DatabaseConfig struct {
	Driver         string `mapstructure:"driver"`
	DSN            string `mapstructure:"dsn"`
	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
}

type RedisConfig struct {
	Addr          string        `mapstructure:"addr"`
	Password      string        `mapstructure:"password"`
	DB            int           `mapstructure:"db"`
	CapabilityTTL time.Duration `mapstructure:"capability_ttl"`
}

// WebhookConfig holds the shared secret processor events are signed with.
type WebhookConfig struct {
	SigningSecret string        `mapstructure:"signing_secret"`
	Tolerance     time.Duration `mapstructure:"tolerance"`
}

// TracingConfig controls the OTLP trace exporter. Tracing is off unless
// Enabled is set.
type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Endpoint    string  `mapstructure:"endpoint"`
	Insecure    bool    `mapstructure:"insecure"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, EnvProduction)
}

// Load reads .env, the optional settings file at path, and PAYGATE_*
// environment variables, in increasing order of precedence.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// LoadFromEnv loads using the file named by PAYGATE_CONFIG, if any.
func LoadFromEnv() (Config, error) {
	return Load(os.Getenv(ConfigPathEnv))
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app_name", "paygate")
	v.SetDefault("environment", EnvDevelopment)
	v.SetDefault("log_level", "info")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("node_id", 1)

	v.SetDefault("plugin.enabled", "")
	v.SetDefault("plugin.accepted_methods", []string{"card"})
	v.SetDefault("plugin.test_mode", false)
	v.SetDefault("plugin.capture_mode", "yes")

	v.SetDefault("store.currency", "USD")
	v.SetDefault("store.account_id", "")
	v.SetDefault("store.account_currency", "")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "file:paygate.db?cache=shared")
	v.SetDefault("database.metrics_enabled", false)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.capability_ttl", 5*time.Minute)

	v.SetDefault("webhook.signing_secret", "")
	v.SetDefault("webhook.tolerance", 5*time.Minute)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4318")
	v.SetDefault("tracing.insecure", true)
	v.SetDefault("tracing.sample_ratio", 1.0)

	return v
}

func (c *Config) normalize() {
	c.Store.Currency = strings.ToUpper(strings.TrimSpace(c.Store.Currency))
	c.Store.AccountCurrency = strings.ToUpper(strings.TrimSpace(c.Store.AccountCurrency))
	c.Plugin.Enabled = strings.ToLower(strings.TrimSpace(c.Plugin.Enabled))
	c.Plugin.CaptureMode = strings.ToLower(strings.TrimSpace(c.Plugin.CaptureMode))

	methods := make([]string, 0, len(c.Plugin.AcceptedMethods))
	for _, m := range c.Plugin.AcceptedMethods {
		if m = strings.TrimSpace(m); m != "" {
			methods = append(methods, m)
		}
	}
	c.Plugin.AcceptedMethods = methods
}
