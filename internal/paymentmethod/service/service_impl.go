package service

import (
	"context"
	"errors"
	"strings"

	capabilitydomain "github.com/railzwaylabs/paygate/internal/capability/domain"
	"github.com/railzwaylabs/paygate/internal/config"
	"github.com/railzwaylabs/paygate/internal/paymentmethod/domain"
	"github.com/railzwaylabs/paygate/internal/paymentmethod/eligibility"
	"github.com/railzwaylabs/paygate/internal/paymentmethod/token"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SettingsSource supplies the plugin configuration for one request.
type SettingsSource interface {
	PluginConfiguration() domain.PluginConfiguration
}

type ServiceParam struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	Config       config.Config
	Settings     SettingsSource
	Registry     *domain.Registry
	Capabilities capabilitydomain.Provider
	Factory      *token.Factory
	Repo         domain.Repository
	Metrics      *Metrics
	Tracing      trace.TracerProvider `optional:"true"`
}

const tracerName = "github.com/railzwaylabs/paygate/internal/paymentmethod/service"

type service struct {
	db       *gorm.DB
	log      *zap.Logger
	store    config.StoreConfig
	settings SettingsSource
	registry *domain.Registry
	caps     capabilitydomain.Provider
	factory  *token.Factory
	repo     domain.Repository
	metrics  *Metrics
	tracer   trace.Tracer
}

func NewService(p ServiceParam) domain.Service {
	tp := p.Tracing
	if tp == nil {
		tp = noop.NewTracerProvider()
	}
	return &service{
		db:       p.DB,
		log:      p.Log.Named("paymentmethod.service"),
		store:    p.Config.Store,
		settings: p.Settings,
		registry: p.Registry,
		caps:     p.Capabilities,
		factory:  p.Factory,
		repo:     p.Repo,
		metrics:  p.Metrics,
		tracer:   tp.Tracer(tracerName),
	}
}

func (s *service) AvailableMethods(ctx context.Context, req domain.AvailabilityRequest) (_ []domain.Availability, err error) {
	ctx, span := s.tracer.Start(ctx, "paymentmethod.AvailableMethods", trace.WithAttributes(
		attribute.String("checkout.currency", req.Currency),
		attribute.String("checkout.amount", req.OrderAmount.String()),
		attribute.Bool("checkout.recurring", req.CartHasRecurringItem),
	))
	defer func() { endSpan(span, err) }()

	if req.OrderAmount.IsNegative() {
		return nil, domain.ErrInvalidOrderAmount
	}

	cfg := s.settings.PluginConfiguration()
	if !cfg.PluginEnabled() {
		// Nothing can pass the enabled gate; skip the capability lookup.
		return s.evaluateAll(cfg, nil, s.checkoutContext(req)), nil
	}

	caps, err := s.caps.Capabilities(ctx, s.store.AccountID)
	switch {
	case errors.Is(err, capabilitydomain.ErrAccountRequired):
		// No connected account yet: only capability-exempt methods can pass.
		s.log.Warn("processor account not configured, evaluating without capabilities")
		caps = domain.Capabilities{}
	case err != nil:
		s.log.Error("failed to load capabilities", zap.String("account_id", s.store.AccountID), zap.Error(err))
		return nil, err
	}

	return s.evaluateAll(cfg, caps, s.checkoutContext(req)), nil
}

func (s *service) checkoutContext(req domain.AvailabilityRequest) domain.CheckoutContext {
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = s.store.Currency
	}
	return domain.CheckoutContext{
		StoreCurrency:        currency,
		AccountCurrency:      s.store.AccountCurrency,
		OrderAmount:          req.OrderAmount,
		CartHasRecurringItem: req.CartHasRecurringItem,
	}
}

func (s *service) evaluateAll(cfg domain.PluginConfiguration, caps domain.Capabilities, checkout domain.CheckoutContext) []domain.Availability {
	methods := s.registry.All()
	out := make([]domain.Availability, 0, len(methods))
	for _, method := range methods {
		result := eligibility.Evaluate(method, cfg, caps, checkout)
		s.metrics.observeDecision(method.ID.String(), string(result.FailedGate))
		if !result.Eligible {
			s.log.Debug("payment method not eligible",
				zap.String("method", method.ID.String()),
				zap.String("gate", string(result.FailedGate)),
				zap.String("currency", checkout.StoreCurrency),
			)
		}
		out = append(out, domain.Availability{Method: method, Result: result})
	}
	return out
}

func (s *service) CreatePaymentToken(ctx context.Context, userID string, record domain.PaymentRecord) (_ domain.Token, err error) {
	ctx, span := s.tracer.Start(ctx, "paymentmethod.CreatePaymentToken", trace.WithAttributes(
		attribute.String("payment_record.type", string(record.Type)),
	))
	defer func() { endSpan(span, err) }()

	tok, err := s.factory.CreatePaymentTokenForUser(ctx, userID, record)
	if err != nil {
		s.log.Warn("failed to create payment token",
			zap.String("user_id", userID),
			zap.String("type", string(record.Type)),
			zap.Error(err),
		)
		return nil, err
	}

	if err := s.repo.Insert(ctx, s.db, tok); err != nil {
		s.log.Error("failed to store payment token", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.metrics.observeToken(string(tok.Kind()))
	s.log.Info("payment token created",
		zap.String("user_id", userID),
		zap.String("method", tok.Base().MethodID.String()),
		zap.String("token_id", tok.Base().ID.String()),
	)
	return tok, nil
}

func (s *service) ListPaymentTokens(ctx context.Context, userID string) ([]domain.Token, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.ErrInvalidUser
	}
	return s.repo.ListByUser(ctx, s.db, userID)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
