// Package datasource defines the input contract the cleaner reads through.
// Concrete sources live in subpackages (file).
package datasource

import (
	"context"
	"io"
)

// Source yields the raw bytes of one input. Open must honour ctx
// cancellation before touching the underlying resource; the caller closes
// the returned reader.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
