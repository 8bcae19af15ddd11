package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock taken by DistributedLocker.Lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker serializes steps on one machine session across processes
// that share a MachineStore. session.Manager takes it around every
// load-step-save cycle, after its in-process mutex.
type DistributedLocker interface {
	// Lock blocks until the session key is held or ctx is done.
	// The lock lapses after ttl even if it is never released, so a crashed
	// holder cannot wedge the session. Callers must call the UnlockFunc.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
