package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	capabilitydomain "github.com/railzwaylabs/paygate/internal/capability/domain"
	"github.com/railzwaylabs/paygate/internal/config"
	"github.com/railzwaylabs/paygate/internal/paymentmethod/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const defaultTTL = 5 * time.Minute

type ProviderParam struct {
	fx.In

	Redis   *redis.Client `optional:"true"`
	Log     *zap.Logger
	Config  config.Config
	Fetcher capabilitydomain.Fetcher
}

// CachedProvider keeps capability snapshots in redis for a short TTL so
// checkout page loads do not call the processor every time.
type CachedProvider struct {
	redis   *redis.Client
	log     *zap.Logger
	fetcher capabilitydomain.Fetcher
	ttl     time.Duration
}

func NewCachedProvider(p ProviderParam) *CachedProvider {
	ttl := p.Config.Redis.CapabilityTTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &CachedProvider{
		redis:   p.Redis,
		log:     p.Log.Named("capability.provider"),
		fetcher: p.Fetcher,
		ttl:     ttl,
	}
}

func cacheKey(accountID string) string {
	return fmt.Sprintf("capabilities:%s", accountID)
}

func (s *CachedProvider) Capabilities(ctx context.Context, accountID string) (domain.Capabilities, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, capabilitydomain.ErrAccountRequired
	}

	if s.redis != nil {
		caps, err := s.readCache(ctx, accountID)
		switch {
		case err == nil:
			return caps, nil
		case !errors.Is(err, redis.Nil):
			// Fail open to the processor on cache errors
			s.log.Warn("failed to read capability cache", zap.String("account_id", accountID), zap.Error(err))
		}
	}

	caps, err := s.fetcher.FetchCapabilities(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("fetch capabilities: %w", err)
	}

	if s.redis != nil {
		if err := s.writeCache(ctx, accountID, caps); err != nil {
			s.log.Warn("failed to write capability cache", zap.String("account_id", accountID), zap.Error(err))
		}
	}
	return caps, nil
}

// Invalidate drops the cached snapshot, e.g. after a capability.updated
// webhook.
func (s *CachedProvider) Invalidate(ctx context.Context, accountID string) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Del(ctx, cacheKey(accountID)).Err()
}

func (s *CachedProvider) readCache(ctx context.Context, accountID string) (domain.Capabilities, error) {
	raw, err := s.redis.Get(ctx, cacheKey(accountID)).Bytes()
	if err != nil {
		return nil, err
	}
	var caps domain.Capabilities
	if err := json.Unmarshal(raw, &caps); err != nil {
		return nil, err
	}
	return caps, nil
}

func (s *CachedProvider) writeCache(ctx context.Context, accountID string, caps domain.Capabilities) error {
	raw, err := json.Marshal(caps)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, cacheKey(accountID), raw, s.ttl).Err()
}
