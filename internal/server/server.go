package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	capabilitydomain "github.com/railzwaylabs/paygate/internal/capability/domain"
	"github.com/railzwaylabs/paygate/internal/config"
	"github.com/railzwaylabs/paygate/internal/paymentmethod/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Log              *zap.Logger
	Cfg              config.Config
	DB               *gorm.DB `optional:"true"`
	Registry         *domain.Registry
	PaymentMethodSvc domain.Service
	Gatherer         *prometheus.Registry         `optional:"true"`
	Invalidator      capabilitydomain.Invalidator `optional:"true"`
}

type Server struct {
	engine           *gin.Engine
	log              *zap.Logger
	cfg              config.Config
	db               *gorm.DB
	registry         *domain.Registry
	paymentMethodSvc domain.Service
	gatherer         prometheus.Gatherer
	invalidator      capabilitydomain.Invalidator
	now              func() time.Time
}

func NewServer(p Params) *Server {
	if p.Cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), RequestID(), accessLog(p.Log.Named("http")))

	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if p.Gatherer != nil {
		// gorm's metrics plugin registers against the default registry
		gatherer = prometheus.Gatherers{p.Gatherer, prometheus.DefaultGatherer}
	}

	s := &Server{
		engine:           engine,
		log:              p.Log.Named("server"),
		cfg:              p.Cfg,
		db:               p.DB,
		registry:         p.Registry,
		paymentMethodSvc: p.PaymentMethodSvc,
		gatherer:         gatherer,
		invalidator:      p.Invalidator,
		now:              time.Now,
	}
	s.RegisterRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) RegisterRoutes() {
	s.engine.GET("/healthz", s.Healthz)
	s.engine.GET("/ready", s.Ready)
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	s.engine.POST("/webhooks/processor", s.HandleProcessorEvent)

	api := s.engine.Group("/api")
	api.GET("/payment-methods", s.ListPaymentMethods)
	api.GET("/payment-methods/available", s.ListAvailablePaymentMethods)
	api.POST("/users/:id/payment-tokens", s.CreatePaymentToken)
	api.GET("/users/:id/payment-tokens", s.ListPaymentTokens)
}

func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) Ready(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "reason": "database not configured"})
		return
	}
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "reason": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func registerLifecycle(lc fx.Lifecycle, s *Server) {
	httpServer := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", httpServer.Addr)
			if err != nil {
				return err
			}
			s.log.Info("http server listening", zap.String("addr", httpServer.Addr))
			go func() {
				if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return httpServer.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("server",
	fx.Provide(NewServer),
	fx.Invoke(registerLifecycle),
)
