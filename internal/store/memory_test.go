package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connectdemo/internal/model"
)

func enabledStatus() model.DerivedStatus {
	return model.DerivedStatus{
		Status:       model.StatusEnabled,
		Description:  "Account is in good standing",
		Capabilities: model.Capabilities{ChargesEnabled: true, PayoutsEnabled: true},
		Requirements: model.Requirements{
			CurrentlyDue:        []string{},
			EventuallyDue:       []string{},
			PastDue:             []string{},
			PendingVerification: []string{},
		},
	}
}

func TestMemoryStore_PutThenGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	d := enabledStatus()

	put, err := s.Put(ctx, "acct_1", d, time.Time{})
	require.NoError(t, err)

	got, ok, err := s.Get(ctx, "acct_1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, d, got.DerivedStatus)
	assert.Equal(t, "acct_1", got.AccountID)
	assert.Equal(t, put, got)
	assert.False(t, got.LastUpdated.IsZero())
	assert.Equal(t, got.LastUpdated, got.ObservedAt, "zero observation time defaults to write time")
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()

	_, ok, err := s.Get(context.Background(), "acct_unknown")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_PutReplacesWholeRecord(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Put(ctx, "acct_1", model.DerivedStatus{
		Status: model.StatusPending,
		Badge:  model.BadgeEnabled,
	}, time.Time{})
	require.NoError(t, err)

	_, err = s.Put(ctx, "acct_1", enabledStatus(), time.Time{})
	require.NoError(t, err)

	got, ok, err := s.Get(ctx, "acct_1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.StatusEnabled, got.Status)
	assert.Equal(t, model.BadgeNone, got.Badge)
}

func TestMemoryStore_LastUpdatedNeverMovesBackwards(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := []time.Time{base, base.Add(-time.Minute)}
	s.now = func() time.Time {
		next := clock[0]
		clock = clock[1:]
		return next
	}

	first, err := s.Put(ctx, "acct_1", enabledStatus(), time.Time{})
	require.NoError(t, err)
	second, err := s.Put(ctx, "acct_1", enabledStatus(), time.Time{})
	require.NoError(t, err)

	assert.Equal(t, base, first.LastUpdated)
	assert.False(t, second.LastUpdated.Before(first.LastUpdated))
}

func TestMemoryStore_ConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	statuses := []model.DerivedStatus{
		enabledStatus(),
		{Status: model.StatusRestricted, Description: "restricted"},
		{Status: model.StatusPending, Badge: model.BadgeDisabled, Description: "pending"},
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := s.Put(ctx, "acct_shared", statuses[i%len(statuses)], time.Time{})
			assert.NoError(t, err)
		}(i)
		go func() {
			defer wg.Done()
			rec, ok, err := s.Get(ctx, "acct_shared")
			assert.NoError(t, err)
			if ok {
				assert.Contains(t, statuses, rec.DerivedStatus)
			}
		}()
	}
	wg.Wait()

	for i := 0; i < 10; i++ {
		_, err := s.Put(ctx, fmt.Sprintf("acct_%d", i), enabledStatus(), time.Time{})
		require.NoError(t, err)
	}
	for i := 0; i < 10; i++ {
		_, ok, err := s.Get(ctx, fmt.Sprintf("acct_%d", i))
		require.NoError(t, err)
		assert.True(t, ok)
	}
}
