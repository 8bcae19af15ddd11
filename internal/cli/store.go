package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/adapters/redis"
	"github.com/aretw0/turing/pkg/persistence/middleware"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/session"
)

// StoreOptions selects the session backend.
type StoreOptions struct {
	// Kind is memory, file or redis.
	Kind string
	// Dir is the file backend directory.
	Dir string
	// RedisAddr is the redis backend address.
	RedisAddr string
	// TTL expires redis sessions; zero keeps them forever.
	TTL time.Duration
	// EncryptionKey seals snapshots at rest with AES-256-GCM (hex or base64, 32 bytes).
	EncryptionKey string
}

// OpenStore builds the configured MachineStore. The redis backend also returns
// a DistributedLocker sharing its client; the others return a nil locker.
func OpenStore(ctx context.Context, opts StoreOptions) (ports.MachineStore, ports.DistributedLocker, error) {
	store, locker, err := openBackend(ctx, opts)
	if err != nil || opts.EncryptionKey == "" {
		return store, locker, err
	}
	key, err := middleware.ParseKey(opts.EncryptionKey)
	if err != nil {
		return nil, nil, err
	}
	return middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})(store), locker, nil
}

func openBackend(ctx context.Context, opts StoreOptions) (ports.MachineStore, ports.DistributedLocker, error) {
	switch opts.Kind {
	case "", "memory":
		return memory.NewStore(), nil, nil
	case "file":
		return file.New(opts.Dir), nil, nil
	case "redis":
		addr := opts.RedisAddr
		if addr == "" {
			addr = "localhost:6379"
		}
		var storeOpts []redis.Option
		if opts.TTL > 0 {
			storeOpts = append(storeOpts, redis.WithTTL(opts.TTL))
		}
		store := redis.New(addr, storeOpts...)
		if err := store.Client().Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
		}
		return store, redis.NewLocker(store.Client(), "turing:"), nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q (supported: memory, file, redis)", opts.Kind)
	}
}

// NewManager opens the store and wraps it in a session manager.
func NewManager(ctx context.Context, opts StoreOptions, logger *slog.Logger, sessionOpts ...session.Option) (*session.Manager, error) {
	store, locker, err := OpenStore(ctx, opts)
	if err != nil {
		return nil, err
	}
	all := []session.Option{session.WithLogger(logger)}
	if locker != nil {
		all = append(all, session.WithLocker(locker))
	}
	return session.NewManager(store, append(all, sessionOpts...)...), nil
}
