package config

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/railzwaylabs/paygate/internal/paymentmethod/domain"
	"go.uber.org/zap"
)

// Settings holds the reloadable part of the configuration: the plugin
// settings and the configured capability snapshot. Readers get an
// independent copy.
type Settings struct {
	mu           sync.RWMutex
	plugin       PluginConfig
	capabilities map[string]string
}

func NewSettings(cfg Config) *Settings {
	s := &Settings{plugin: cfg.Plugin}
	s.UpdateCapabilities(cfg.Capabilities)
	return s
}

func (s *Settings) PluginConfiguration() domain.PluginConfiguration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plugin.toDomain()
}

func (s *Settings) Update(plugin PluginConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plugin = plugin
}

// Capabilities returns the configured capability snapshot.
func (s *Settings) Capabilities() domain.Capabilities {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(domain.Capabilities, len(s.capabilities))
	for key, status := range s.capabilities {
		out[key] = domain.CapabilityStatus(status)
	}
	return out
}

func (s *Settings) UpdateCapabilities(caps map[string]string) {
	next := make(map[string]string, len(caps))
	for key, status := range caps {
		next[key] = status
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.capabilities = next
}

func (p PluginConfig) toDomain() domain.PluginConfiguration {
	ids := make([]domain.MethodID, 0, len(p.AcceptedMethods))
	for _, m := range p.AcceptedMethods {
		ids = append(ids, domain.MethodID(m))
	}
	return domain.PluginConfiguration{
		Enabled:           p.Enabled,
		AcceptedMethodIDs: ids,
		TestMode:          p.TestMode,
		CaptureMode:       p.CaptureMode,
	}
}

// Watch reloads the plugin and capabilities sections of the file at path
// whenever it changes.
func Watch(path string, settings *Settings, log *zap.Logger) error {
	if path == "" {
		return nil
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("watch config %s: %w", path, err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		var cfg Config
		if err := v.Unmarshal(&cfg); err != nil {
			log.Warn("failed to reload settings", zap.String("path", e.Name), zap.Error(err))
			return
		}
		cfg.normalize()
		settings.Update(cfg.Plugin)
		settings.UpdateCapabilities(cfg.Capabilities)
		log.Info("settings reloaded",
			zap.String("path", e.Name),
			zap.String("enabled", cfg.Plugin.Enabled),
			zap.Strings("accepted_methods", cfg.Plugin.AcceptedMethods),
		)
	})
	v.WatchConfig()
	return nil
}
