package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockadmin/internal/core/id"
	"stockadmin/internal/domain/reason"
)

type countingSource struct {
	programs      []reason.Program
	facilityTypes []reason.FacilityType
	reasons       []reason.Reason
	err           error
	calls         map[string]int
}

func newCountingSource() *countingSource {
	return &countingSource{
		programs:      []reason.Program{{ID: id.New(), Code: "PRG001", Name: "Family Planning"}},
		facilityTypes: []reason.FacilityType{{ID: id.New(), Name: "Health Center"}},
		reasons:       []reason.Reason{{ID: id.New(), Name: "Damage", Tags: []string{"damaged"}}},
		calls:         map[string]int{},
	}
}

func (s *countingSource) Programs(context.Context) ([]reason.Program, error) {
	s.calls["programs"]++
	return s.programs, s.err
}

func (s *countingSource) FacilityTypes(context.Context) ([]reason.FacilityType, error) {
	s.calls["facilityTypes"]++
	return s.facilityTypes, s.err
}

func (s *countingSource) Reasons(context.Context) ([]reason.Reason, error) {
	s.calls["reasons"]++
	return s.reasons, s.err
}

func setupCache(t *testing.T, src *countingSource) (*ReferenceCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewReferenceCache(client, src, time.Minute), mr
}

func TestReferenceCache_LoadsOnceWithinTTL(t *testing.T) {
	src := newCountingSource()
	c, mr := setupCache(t, src)
	ctx := context.Background()

	first, err := c.Programs(ctx)
	require.NoError(t, err)
	second, err := c.Programs(ctx)
	require.NoError(t, err)

	assert.Equal(t, src.programs, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.calls["programs"])
	assert.True(t, mr.Exists(programsKey))

	mr.FastForward(2 * time.Minute)
	_, err = c.Programs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls["programs"])
}

func TestReferenceCache_InvalidateReasons(t *testing.T) {
	src := newCountingSource()
	c, _ := setupCache(t, src)
	ctx := context.Background()

	_, err := c.Reasons(ctx)
	require.NoError(t, err)
	_, err = c.FacilityTypes(ctx)
	require.NoError(t, err)

	require.NoError(t, c.InvalidateReasons(ctx))

	reasons, err := c.Reasons(ctx)
	require.NoError(t, err)
	assert.Equal(t, src.reasons, reasons)
	assert.Equal(t, 2, src.calls["reasons"])

	_, err = c.FacilityTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls["facilityTypes"], "other lists stay cached")
}

func TestReferenceCache_UpstreamErrorNotCached(t *testing.T) {
	src := newCountingSource()
	src.err = errors.New("upstream down")
	c, mr := setupCache(t, src)

	_, err := c.Programs(context.Background())

	assert.ErrorIs(t, err, src.err)
	assert.False(t, mr.Exists(programsKey))
}

func TestReferenceCache_RedisDownFallsBackToUpstream(t *testing.T) {
	src := newCountingSource()
	c, mr := setupCache(t, src)
	mr.Close()

	programs, err := c.Programs(context.Background())

	require.NoError(t, err)
	assert.Equal(t, src.programs, programs)
}

func TestReferenceCache_CorruptEntryIsReloaded(t *testing.T) {
	src := newCountingSource()
	c, mr := setupCache(t, src)
	require.NoError(t, mr.Set(programsKey, "not json"))

	programs, err := c.Programs(context.Background())

	require.NoError(t, err)
	assert.Equal(t, src.programs, programs)
	assert.Equal(t, 1, src.calls["programs"])
}

func TestReferenceCache_Disabled(t *testing.T) {
	src := newCountingSource()
	c := NewReferenceCache(nil, src, time.Minute)

	_, _ = c.Reasons(context.Background())
	_, _ = c.Reasons(context.Background())

	assert.Equal(t, 2, src.calls["reasons"])
	assert.NoError(t, c.Invalidate(context.Background()))
}
