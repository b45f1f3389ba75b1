// Package limits resolves per-operation monetary limits and the proof
// threshold from the platform settings store. Reads go through a short-TTL
// cache; when the store is unreachable the policy degrades to safe defaults
// instead of blocking operations.
package limits

import (
	"context"
	"log"
	"time"

	"palenque/internal/models"
	"palenque/internal/repositories"

	"github.com/shopspring/decimal"
)

// Limits are the resolved bounds for one operation type.
type Limits struct {
	Min            decimal.Decimal
	Max            decimal.Decimal
	DailyMax       decimal.Decimal
	ProofThreshold decimal.Decimal
}

// SettingsCache is the cache surface the policy needs. Implemented by
// repositories/cache.CacheService.
type SettingsCache interface {
	GetSetting(ctx context.Context, key string) (string, bool, error)
	CacheSetting(ctx context.Context, key, value string, ttl time.Duration) error
	InvalidateSetting(ctx context.Context, key string) error
}

// Service resolves limits and manages the underlying settings.
type Service interface {
	Resolve(ctx context.Context, opType models.OperationType) Limits
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Default limits applied when a setting is absent or the store is down.
var defaults = map[string]decimal.Decimal{
	models.SettingDepositMin:         decimal.NewFromInt(5),
	models.SettingDepositMax:         decimal.NewFromInt(1000),
	models.SettingDepositMaxDaily:    decimal.NewFromInt(5000),
	models.SettingWithdrawalMin:      decimal.NewFromInt(10),
	models.SettingWithdrawalMax:      decimal.NewFromInt(500),
	models.SettingWithdrawalMaxDaily: decimal.NewFromInt(2000),
	models.SettingRequireProofOver:   decimal.NewFromInt(500),
}

const DefaultCacheTTL = time.Minute

type service struct {
	repo  repositories.SettingRepository
	cache SettingsCache
	ttl   time.Duration
}

func NewService(repo repositories.SettingRepository, cache SettingsCache, ttl time.Duration) Service {
	if repo == nil {
		panic("setting repository is required")
	}
	if cache == nil {
		panic("settings cache is required")
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &service{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
	}
}

func (s *service) Resolve(ctx context.Context, opType models.OperationType) Limits {
	if opType == models.OperationTypeWithdrawal {
		return Limits{
			Min:            s.resolveDecimal(ctx, models.SettingWithdrawalMin),
			Max:            s.resolveDecimal(ctx, models.SettingWithdrawalMax),
			DailyMax:       s.resolveDecimal(ctx, models.SettingWithdrawalMaxDaily),
			ProofThreshold: s.resolveDecimal(ctx, models.SettingRequireProofOver),
		}
	}
	return Limits{
		Min:            s.resolveDecimal(ctx, models.SettingDepositMin),
		Max:            s.resolveDecimal(ctx, models.SettingDepositMax),
		DailyMax:       s.resolveDecimal(ctx, models.SettingDepositMaxDaily),
		ProofThreshold: s.resolveDecimal(ctx, models.SettingRequireProofOver),
	}
}

// resolveDecimal reads one setting through the cache. Any failure falls
// back to the per-key default; settings problems never surface to callers.
func (s *service) resolveDecimal(ctx context.Context, key string) decimal.Decimal {
	fallback := defaults[key]

	if cached, found, err := s.cache.GetSetting(ctx, key); err == nil && found {
		if value, perr := decimal.NewFromString(cached); perr == nil {
			return value
		}
	}

	raw, err := s.repo.Get(key)
	if err != nil {
		if err != repositories.ErrSettingNotFound {
			log.Printf("limits: failed to read setting %q, using default: %v", key, err)
		}
		return fallback
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		log.Printf("limits: setting %q holds non-numeric value %q, using default", key, raw)
		return fallback
	}

	if cerr := s.cache.CacheSetting(ctx, key, raw, s.ttl); cerr != nil {
		log.Printf("limits: failed to cache setting %q: %v", key, cerr)
	}
	return value
}

func (s *service) Get(ctx context.Context, key string) (string, error) {
	return s.repo.Get(key)
}

// Set writes a setting and invalidates its cache entry so the new value is
// observed before the TTL expires.
func (s *service) Set(ctx context.Context, key, value string) error {
	if _, err := decimal.NewFromString(value); err != nil {
		return err
	}
	if err := s.repo.Upsert(key, value); err != nil {
		return err
	}
	if err := s.cache.InvalidateSetting(ctx, key); err != nil {
		log.Printf("limits: failed to invalidate cached setting %q: %v", key, err)
	}
	return nil
}
