package cron

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestWorker(t *testing.T) (*Worker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	w := NewWorker(nil, nil, client, time.UTC, time.Minute, zaptest.NewLogger(t))
	return w, mr
}

func TestAcquireLease_BlocksSecondAcquisition(t *testing.T) {
	w, _ := newTestWorker(t)
	ctx := context.Background()

	_, ok := w.acquireLease(ctx, "dispatch:lease:TRANSPORT")
	require.True(t, ok)

	_, ok = w.acquireLease(ctx, "dispatch:lease:TRANSPORT")
	assert.False(t, ok, "a held lease must block a second acquisition")

	// A different job kind is unaffected.
	_, ok = w.acquireLease(ctx, "dispatch:lease:BUSINESS_CASE")
	assert.True(t, ok)
}

func TestReleaseLease_AllowsReacquire(t *testing.T) {
	w, _ := newTestWorker(t)
	ctx := context.Background()

	token, ok := w.acquireLease(ctx, "dispatch:lease:TRANSPORT")
	require.True(t, ok)

	w.releaseLease("dispatch:lease:TRANSPORT", token)

	_, ok = w.acquireLease(ctx, "dispatch:lease:TRANSPORT")
	assert.True(t, ok)
}

func TestReleaseLease_LeavesForeignLeaseAlone(t *testing.T) {
	w, mr := newTestWorker(t)

	require.NoError(t, mr.Set("dispatch:lease:TRANSPORT", "someone-else"))
	w.releaseLease("dispatch:lease:TRANSPORT", "not-mine")

	got, err := mr.Get("dispatch:lease:TRANSPORT")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}

func TestAcquireLease_ExpiresAfterTickTimeout(t *testing.T) {
	w, mr := newTestWorker(t)
	ctx := context.Background()

	_, ok := w.acquireLease(ctx, "dispatch:lease:TRANSPORT")
	require.True(t, ok)

	// A crashed tick never releases; the TTL reclaims the lease.
	mr.FastForward(w.tickTimeout + time.Second)

	_, ok = w.acquireLease(ctx, "dispatch:lease:TRANSPORT")
	assert.True(t, ok)
}

func TestAcquireLease_RedisDownDegradesToClaimOnly(t *testing.T) {
	w, mr := newTestWorker(t)
	ctx := context.Background()

	mr.Close()

	// The lease is advisory; without Redis the tick must still run and rely
	// on the document-level claim.
	_, ok := w.acquireLease(ctx, "dispatch:lease:TRANSPORT")
	assert.True(t, ok)
}
