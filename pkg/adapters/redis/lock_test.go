package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/turing/pkg/adapters/redis"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocker_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunDistributedLockerContract(t, redis.NewLocker(client, "test:"))
}

func TestLocker_KeyLayout(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "s1", time.Minute)
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:lock:s1"))

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("test:lock:s1"))
}

func TestLocker_ExpiredLockIsNotStolenBack(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlockA, err := locker.Lock(ctx, "s1", time.Second)
	require.NoError(t, err)

	// A's lease expires and B takes the lock.
	mr.FastForward(2 * time.Second)
	unlockB, err := locker.Lock(ctx, "s1", time.Minute)
	require.NoError(t, err)

	// A's late unlock must not release B's lock.
	require.NoError(t, unlockA(ctx))
	assert.True(t, mr.Exists("test:lock:s1"))

	require.NoError(t, unlockB(ctx))
	assert.False(t, mr.Exists("test:lock:s1"))
}
