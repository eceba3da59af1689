package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/paygate/internal/capability"
	"github.com/railzwaylabs/paygate/internal/clock"
	"github.com/railzwaylabs/paygate/internal/config"
	"github.com/railzwaylabs/paygate/internal/migration"
	"github.com/railzwaylabs/paygate/internal/observability"
	"github.com/railzwaylabs/paygate/internal/paymentmethod"
	"github.com/railzwaylabs/paygate/internal/redis"
	"github.com/railzwaylabs/paygate/internal/server"
	"github.com/railzwaylabs/paygate/pkg/db"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "paygate",
		Short:        "Checkout payment method eligibility service",
		Version:      readVersionFromEnv(),
		SilenceUsage: true,
	}
	root.AddCommand(newMigrateCmd(), newServeCmd(), newMethodsCmd(), newEvaluateCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the payment token tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the eligibility API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			runServe()
			return nil
		},
	}
}

func runMigrate() error {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		migration.Module,
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return nil
}

func runServe() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		migration.Module,
		clock.Module,
		redis.Module,
		capability.Module,
		paymentmethod.Module,
		server.Module,
	)
	app.Run()
}

func registerSnowflake(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.NodeID)
}

func readVersionFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("APP_VERSION")); v != "" {
		return v
	}
	return "dev"
}
