package limits

import (
	"context"
	"errors"
	"testing"
	"time"

	"palenque/internal/models"
	"palenque/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSettingRepository struct {
	mock.Mock
}

func (m *MockSettingRepository) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockSettingRepository) Upsert(key, value string) error {
	args := m.Called(key, value)
	return args.Error(0)
}

// memoryCache is an in-process SettingsCache for tests.
type memoryCache struct {
	values      map[string]string
	invalidated []string
	getErr      error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]string{}}
}

func (c *memoryCache) GetSetting(ctx context.Context, key string) (string, bool, error) {
	if c.getErr != nil {
		return "", false, c.getErr
	}
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *memoryCache) CacheSetting(ctx context.Context, key, value string, ttl time.Duration) error {
	c.values[key] = value
	return nil
}

func (c *memoryCache) InvalidateSetting(ctx context.Context, key string) error {
	c.invalidated = append(c.invalidated, key)
	delete(c.values, key)
	return nil
}

func TestResolve_StoredValues(t *testing.T) {
	repo := new(MockSettingRepository)
	cache := newMemoryCache()
	svc := NewService(repo, cache, time.Minute)

	repo.On("Get", models.SettingDepositMin).Return("20", nil)
	repo.On("Get", models.SettingDepositMax).Return("2500", nil)
	repo.On("Get", models.SettingDepositMaxDaily).Return("10000", nil)
	repo.On("Get", models.SettingRequireProofOver).Return("750", nil)

	lim := svc.Resolve(context.Background(), models.OperationTypeDeposit)

	assert.True(t, lim.Min.Equal(decimal.NewFromInt(20)))
	assert.True(t, lim.Max.Equal(decimal.NewFromInt(2500)))
	assert.True(t, lim.DailyMax.Equal(decimal.NewFromInt(10000)))
	assert.True(t, lim.ProofThreshold.Equal(decimal.NewFromInt(750)))

	// Resolved values are cached for subsequent reads.
	assert.Equal(t, "20", cache.values[models.SettingDepositMin])
}

func TestResolve_MissingSettingsFallBackToDefaults(t *testing.T) {
	repo := new(MockSettingRepository)
	svc := NewService(repo, newMemoryCache(), time.Minute)

	repo.On("Get", mock.Anything).Return("", repositories.ErrSettingNotFound)

	lim := svc.Resolve(context.Background(), models.OperationTypeWithdrawal)

	assert.True(t, lim.Min.Equal(decimal.NewFromInt(10)))
	assert.True(t, lim.Max.Equal(decimal.NewFromInt(500)))
	assert.True(t, lim.DailyMax.Equal(decimal.NewFromInt(2000)))
	assert.True(t, lim.ProofThreshold.Equal(decimal.NewFromInt(500)))
}

func TestResolve_StoreFailureFallsBackToDefaults(t *testing.T) {
	repo := new(MockSettingRepository)
	cache := newMemoryCache()
	cache.getErr = errors.New("redis down")
	svc := NewService(repo, cache, time.Minute)

	repo.On("Get", mock.Anything).Return("", errors.New("connection refused"))

	lim := svc.Resolve(context.Background(), models.OperationTypeDeposit)

	assert.True(t, lim.Min.Equal(decimal.NewFromInt(5)))
	assert.True(t, lim.Max.Equal(decimal.NewFromInt(1000)))
	assert.True(t, lim.DailyMax.Equal(decimal.NewFromInt(5000)))
}

func TestResolve_CacheHitSkipsRepository(t *testing.T) {
	repo := new(MockSettingRepository)
	cache := newMemoryCache()
	cache.values[models.SettingDepositMin] = "15"
	cache.values[models.SettingDepositMax] = "1500"
	cache.values[models.SettingDepositMaxDaily] = "6000"
	cache.values[models.SettingRequireProofOver] = "400"
	svc := NewService(repo, cache, time.Minute)

	lim := svc.Resolve(context.Background(), models.OperationTypeDeposit)

	assert.True(t, lim.Min.Equal(decimal.NewFromInt(15)))
	assert.True(t, lim.ProofThreshold.Equal(decimal.NewFromInt(400)))
	repo.AssertNotCalled(t, "Get", mock.Anything)
}

func TestResolve_NonNumericValueUsesDefault(t *testing.T) {
	repo := new(MockSettingRepository)
	svc := NewService(repo, newMemoryCache(), time.Minute)

	repo.On("Get", models.SettingDepositMin).Return("not-a-number", nil)
	repo.On("Get", mock.Anything).Return("", repositories.ErrSettingNotFound)

	lim := svc.Resolve(context.Background(), models.OperationTypeDeposit)

	assert.True(t, lim.Min.Equal(decimal.NewFromInt(5)))
}

func TestSet(t *testing.T) {
	t.Run("writes and invalidates the cache", func(t *testing.T) {
		repo := new(MockSettingRepository)
		cache := newMemoryCache()
		cache.values[models.SettingDepositMax] = "1000"
		svc := NewService(repo, cache, time.Minute)

		repo.On("Upsert", models.SettingDepositMax, "2000").Return(nil)

		err := svc.Set(context.Background(), models.SettingDepositMax, "2000")

		assert.NoError(t, err)
		assert.Contains(t, cache.invalidated, models.SettingDepositMax)
		assert.NotContains(t, cache.values, models.SettingDepositMax)
		repo.AssertExpectations(t)
	})

	t.Run("rejects non-numeric values", func(t *testing.T) {
		repo := new(MockSettingRepository)
		svc := NewService(repo, newMemoryCache(), time.Minute)

		err := svc.Set(context.Background(), models.SettingDepositMax, "plenty")

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})
}
