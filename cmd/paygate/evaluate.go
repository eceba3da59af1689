package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/railzwaylabs/paygate/internal/capability/service"
	"github.com/railzwaylabs/paygate/internal/config"
	"github.com/railzwaylabs/paygate/internal/paymentmethod/domain"
	"github.com/railzwaylabs/paygate/internal/paymentmethod/eligibility"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "Print the payment method registry as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), domain.DefaultRegistry().All())
		},
	}
}

type evaluateOptions struct {
	currency        string
	accountCurrency string
	amount          string
	recurring       bool
	allCapabilities bool
	onlyEligible    bool
}

type evaluation struct {
	Method     domain.MethodID `json:"method"`
	Eligible   bool            `json:"eligible"`
	FailedGate domain.Gate     `json:"failed_gate,omitempty"`
}

func newEvaluateCmd() *cobra.Command {
	var opts evaluateOptions
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate checkout eligibility for every method against the configured settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromEnv()
			if err != nil {
				return err
			}
			results, err := evaluate(cmd.Context(), cfg, opts)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), results)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.currency, "currency", "", "store currency (defaults to store.currency)")
	flags.StringVar(&opts.accountCurrency, "account-currency", "", "processor account currency (defaults to store.account_currency)")
	flags.StringVar(&opts.amount, "amount", "0", "order amount in major units, e.g. 150.00")
	flags.BoolVar(&opts.recurring, "recurring", false, "cart contains a subscription item")
	flags.BoolVar(&opts.allCapabilities, "all-capabilities", false, "treat every processor capability as active")
	flags.BoolVar(&opts.onlyEligible, "eligible", false, "only print eligible methods")
	return cmd
}

func evaluate(ctx context.Context, cfg config.Config, opts evaluateOptions) ([]evaluation, error) {
	amount, err := parseAmount(opts.amount)
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	registry := domain.DefaultRegistry()

	settings := config.NewSettings(cfg)
	caps, err := service.NewStaticFetcher(settings).FetchCapabilities(ctx, cfg.Store.AccountID)
	if err != nil {
		return nil, err
	}
	if opts.allCapabilities {
		for _, d := range registry.All() {
			caps[d.CapabilityKey] = domain.CapabilityActive
		}
	}

	checkout := domain.CheckoutContext{
		StoreCurrency:        firstNonEmpty(opts.currency, cfg.Store.Currency),
		AccountCurrency:      firstNonEmpty(opts.accountCurrency, cfg.Store.AccountCurrency),
		OrderAmount:          amount,
		CartHasRecurringItem: opts.recurring,
	}
	plugin := settings.PluginConfiguration()

	out := make([]evaluation, 0, registry.Len())
	for _, d := range registry.All() {
		result := eligibility.Evaluate(d, plugin, caps, checkout)
		if opts.onlyEligible && !result.Eligible {
			continue
		}
		out = append(out, evaluation{Method: d.ID, Eligible: result.Eligible, FailedGate: result.FailedGate})
	}
	return out, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil || amount.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", domain.ErrInvalidOrderAmount, raw)
	}
	return amount, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.ToUpper(strings.TrimSpace(v)); v != "" {
			return v
		}
	}
	return ""
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
