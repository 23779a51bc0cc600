package cache

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory/internal/domain/reports"
)

type fakeRedis struct {
	values  map[string]string
	sets    map[string][]string
	getErr  error
	deleted []string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, sets: map[string][]string{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Incr(_ context.Context, key string) *redis.IntCmd {
	n, _ := strconv.ParseInt(f.values[key], 10, 64)
	n++
	f.values[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

// Eval mirrors setIfGeneration.
func (f *fakeRedis) Eval(_ context.Context, _ string, keys []string, args ...any) *redis.Cmd {
	current, _ := strconv.ParseInt(f.values[keys[2]], 10, 64)
	if current != args[2].(int64) {
		return redis.NewCmdResult(int64(0), nil)
	}
	f.values[keys[0]] = string(args[0].([]byte))
	f.sets[keys[1]] = append(f.sets[keys[1]], keys[0])
	return redis.NewCmdResult(int64(1), nil)
}

func (f *fakeRedis) SMembers(_ context.Context, key string) *redis.StringSliceCmd {
	return redis.NewStringSliceResult(f.sets[key], nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(f.values, k)
		delete(f.sets, k)
	}
	f.deleted = append(f.deleted, keys...)
	return redis.NewIntResult(int64(len(keys)), nil)
}

func (f *fakeRedis) Ping(_ context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func TestReportCache_GetSet(t *testing.T) {
	fake := newFakeRedis()
	c := &ReportCache{client: fake}
	ctx := context.Background()

	var rows []reports.StockRow
	hit, err := c.Get(ctx, "reports:stock:10", &rows)
	require.NoError(t, err)
	assert.False(t, hit)

	want := []reports.StockRow{{ProductName: "Widget", TotalStock: 3, LowStock: true}}
	stored, err := c.Set(ctx, "reports:stock:10", want, time.Minute, 0)
	require.NoError(t, err)
	assert.True(t, stored)

	hit, err = c.Get(ctx, "reports:stock:10", &rows)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, want, rows)
	assert.Equal(t, []string{"reports:stock:10"}, fake.sets[keySet])
}

func TestReportCache_GetError(t *testing.T) {
	fake := newFakeRedis()
	fake.getErr = errors.New("connection refused")
	c := &ReportCache{client: fake}

	var rows []reports.StockRow
	hit, err := c.Get(context.Background(), "k", &rows)
	assert.False(t, hit)
	assert.ErrorContains(t, err, "connection refused")
}

func TestReportCache_InvalidateAll(t *testing.T) {
	fake := newFakeRedis()
	c := &ReportCache{client: fake}
	ctx := context.Background()

	_, err := c.Set(ctx, "reports:sales:1:2", []int{1}, time.Minute, 0)
	require.NoError(t, err)
	_, err = c.Set(ctx, "reports:stock:10", []int{2}, time.Minute, 0)
	require.NoError(t, err)
	require.NoError(t, c.InvalidateAll(ctx))

	assert.Equal(t, map[string]string{generationKey: "1"}, fake.values)
	assert.ElementsMatch(t, []string{"reports:sales:1:2", "reports:stock:10", keySet}, fake.deleted)
}

func TestInvalidator_DispatchRecoversPanics(t *testing.T) {
	inv := NewInvalidator(nil)
	var got []string
	inv.OnChange(func(context.Context, string, string) { panic("boom") })
	inv.OnChange(func(_ context.Context, channel, payload string) { got = append(got, channel+":"+payload) })

	inv.dispatch(context.Background(), ChangeChannel, "stocks")

	assert.Equal(t, []string{"inventory_changed:stocks"}, got)
}

func TestInvalidator_InvalidateReports(t *testing.T) {
	fake := newFakeRedis()
	c := &ReportCache{client: fake}
	ctx := context.Background()
	_, err := c.Set(ctx, "reports:stock:10", []int{1}, time.Minute, 0)
	require.NoError(t, err)

	inv := NewInvalidator(nil)
	inv.InvalidateReports(c)
	inv.dispatch(ctx, ChangeChannel, "invoices")

	_, cached := fake.values["reports:stock:10"]
	assert.False(t, cached)
}

func TestReportCache_SetAfterInvalidationIsSkipped(t *testing.T) {
	fake := newFakeRedis()
	c := &ReportCache{client: fake}
	ctx := context.Background()

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	// A change notification arrives while the report is computed.
	require.NoError(t, c.InvalidateAll(ctx))

	stored, err := c.Set(ctx, "reports:stock:10", []int{1}, time.Minute, gen)
	require.NoError(t, err)
	assert.False(t, stored)
	_, cached := fake.values["reports:stock:10"]
	assert.False(t, cached)

	gen, err = c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
	stored, err = c.Set(ctx, "reports:stock:10", []int{1}, time.Minute, gen)
	require.NoError(t, err)
	assert.True(t, stored)
}
