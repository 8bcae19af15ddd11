package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ContractSnapshot returns a small but non-trivial snapshot: a two-state table,
// a tape grown to the left and three history frames.
func ContractSnapshot() *domain.MachineSnapshot {
	a, b := domain.StateOf(0), domain.StateOf(1)
	return &domain.MachineSnapshot{
		Rules: []domain.Entry{
			{Key: domain.NewRuleKey(domain.Zero, a), Rule: domain.NewRule(domain.One, domain.Right, b)},
			{Key: domain.NewRuleKey(domain.Zero, b), Rule: domain.NewRule(domain.One, domain.Left, domain.Halt)},
		},
		Tape: domain.Frame{Cells: []domain.Symbol{domain.Zero, domain.One, domain.One, domain.Zero}, Origin: 1},
		History: []domain.Frame{
			{Cells: []domain.Symbol{domain.Zero}, Origin: 0},
			{Cells: []domain.Symbol{domain.One, domain.Zero}, Origin: 0},
			{Cells: []domain.Symbol{domain.One, domain.One, domain.Zero}, Origin: 0},
		},
		Position: 0,
		State:    domain.Halt,
		Steps:    2,
		Writes:   2,
	}
}

// RunMachineStoreContract runs a suite of tests to verify that a MachineStore implementation
// adheres to the defined interface contract.
func RunMachineStoreContract(t *testing.T, store MachineStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		snap := ContractSnapshot()

		err := store.Save(ctx, sessionID, snap)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, snap, loaded)
	})

	t.Run("Load is isolated from later mutation", func(t *testing.T) {
		snap := ContractSnapshot()
		require.NoError(t, store.Save(ctx, sessionID, snap))

		snap.Tape.Cells[0] = domain.One
		snap.Steps = 99

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, domain.Zero, loaded.Tape.Cells[0])
		assert.Equal(t, 2, loaded.Steps)
	})

	t.Run("Save overwrites", func(t *testing.T) {
		snap := ContractSnapshot()
		snap.Steps = 7
		require.NoError(t, store.Save(ctx, sessionID, snap))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 7, loaded.Steps)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, ContractSnapshot()))

		err := store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		assert.NoError(t, store.Delete(ctx, sessionID), "Deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		ids := []string{sessionID + "-1", sessionID + "-2"}
		for _, id := range ids {
			require.NoError(t, store.Save(ctx, id, ContractSnapshot()))
		}
		defer func() {
			for _, id := range ids {
				_ = store.Delete(ctx, id)
			}
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		for _, id := range ids {
			assert.Contains(t, sessions, id)
		}
	})
}

// RunDistributedLockerContract verifies mutual exclusion and release of a DistributedLocker.
func RunDistributedLockerContract(t *testing.T, locker DistributedLocker) {
	ctx := context.Background()
	key := fmt.Sprintf("contract-lock-%d", time.Now().UnixNano())

	t.Run("Lock and Unlock", func(t *testing.T) {
		unlock, err := locker.Lock(ctx, key, time.Minute)
		require.NoError(t, err)
		require.NoError(t, unlock(ctx))

		unlock, err = locker.Lock(ctx, key, time.Minute)
		require.NoError(t, err, "lock must be acquirable again after release")
		require.NoError(t, unlock(ctx))
	})

	t.Run("Held lock blocks until context is done", func(t *testing.T) {
		unlock, err := locker.Lock(ctx, key, time.Minute)
		require.NoError(t, err)
		defer func() { _ = unlock(ctx) }()

		waitCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
		defer cancel()
		_, err = locker.Lock(waitCtx, key, time.Minute)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
