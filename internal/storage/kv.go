package storage

import (
	"context"
	"errors"
	"fmt"
)

// Driver names accepted by Open.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var (
	ErrEmptyKey      = errors.New("storage: empty key")
	ErrUnknownDriver = errors.New("storage: unknown driver")
)

// KV is a durable key-value snapshot store. Each collection is written
// wholesale under a single key on every mutation.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open constructs a KV backend by driver name. The dsn is the file path for
// sqlite and the connection URL for postgres; it is ignored for memory.
func Open(ctx context.Context, driver, dsn string) (KV, error) {
	switch driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		return OpenSQLite(ctx, dsn)
	case DriverPostgres:
		return OpenPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
