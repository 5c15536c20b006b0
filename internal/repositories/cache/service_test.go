package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Total int    `json:"total"`
	Label string `json:"label"`
}

func newTestService(t *testing.T) (*CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCacheService(client, time.Minute), mr
}

func TestCacheService_RoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	in := payload{Total: 42, Label: "₹4.2L"}
	require.NoError(t, svc.SetJSON(ctx, KeyLoanStatistics, in))

	var out payload
	require.NoError(t, svc.GetJSON(ctx, KeyLoanStatistics, &out))
	assert.Equal(t, in, out)
}

func TestCacheService_Miss(t *testing.T) {
	svc, _ := newTestService(t)

	var out payload
	err := svc.GetJSON(context.Background(), "absent", &out)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestCacheService_Expiry(t *testing.T) {
	svc, mr := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetJSON(ctx, KeyLoanStatistics, payload{Total: 1}))
	mr.FastForward(2 * time.Minute)

	var out payload
	assert.ErrorIs(t, svc.GetJSON(ctx, KeyLoanStatistics, &out), ErrMiss)
}

func TestCacheService_Delete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetJSON(ctx, KeyLoanStatistics, payload{Total: 1}))
	require.NoError(t, svc.SetJSON(ctx, KeyLoanDistribution, payload{Total: 2}))
	require.NoError(t, svc.Delete(ctx, KeyLoanStatistics, KeyLoanDistribution))

	var out payload
	assert.ErrorIs(t, svc.GetJSON(ctx, KeyLoanStatistics, &out), ErrMiss)
	assert.ErrorIs(t, svc.GetJSON(ctx, KeyLoanDistribution, &out), ErrMiss)
}

func TestCacheService_NilSafe(t *testing.T) {
	var svc *CacheService
	ctx := context.Background()

	var out payload
	assert.ErrorIs(t, svc.GetJSON(ctx, "k", &out), ErrMiss)
	assert.NoError(t, svc.SetJSON(ctx, "k", payload{}))
	assert.NoError(t, svc.Delete(ctx, "k"))
	assert.NoError(t, svc.FlushAll(ctx))
	assert.NoError(t, svc.Close())
}

func TestAnalyticsKey(t *testing.T) {
	assert.Equal(t, "admin:reports:analytics:30days", AnalyticsKey("30days"))
}
