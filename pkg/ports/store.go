package ports

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
)

// MachineStore persists machine snapshots by session ID.
// It lets a machine be stepped across process restarts or replicas.
type MachineStore interface {
	// Save persists the snapshot for a given session ID, replacing any previous one.
	Save(ctx context.Context, sessionID string, snap *domain.MachineSnapshot) error

	// Load retrieves the snapshot for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.MachineSnapshot, error)

	// Delete removes the snapshot for a given session ID. Deleting an unknown session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all stored sessions, in no particular order.
	List(ctx context.Context) ([]string, error)
}
