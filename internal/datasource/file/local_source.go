// Package file implements a local filesystem-backed data source and sink.
// Paths ending in .gz, .zst, .sz, .br or .xz are transparently decompressed
// on read and compressed on write.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"oncoclean/internal/datasource"
)

// Local is a filesystem data source that opens files from the local disk.
type Local struct{ path string }

// NewLocal returns a new Local data source bound to the provided filesystem
// path.
func NewLocal(path string) *Local { return &Local{path: path} }

var _ datasource.Source = (*Local)(nil)

// Path returns the configured path.
func (l *Local) Path() string { return l.path }

// Open opens the configured path for reading and returns an io.ReadCloser
// yielding decompressed bytes.
//
// If ctx is already done, Open returns ctx.Err() without touching the
// filesystem. Filesystem errors are wrapped with the path and remain
// matchable with errors.Is(err, fs.ErrNotExist).
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	adviseSequential(f)

	codec := CodecFor(l.path)
	if codec == None {
		return f, nil
	}
	dec, err := codec.decoder(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open %s: %s: %w", l.path, codec, err)
	}
	return stackedReader{ReadCloser: dec, file: f}, nil
}

// Create truncates or creates the configured path, making parent
// directories as needed. The returned writer compresses according to the
// path's extension; Close must be called to flush it.
func (l *Local) Create(ctx context.Context) (io.WriteCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", l.path, err)
		}
	}
	f, err := os.Create(l.path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", l.path, err)
	}

	codec := CodecFor(l.path)
	if codec == None {
		return f, nil
	}
	enc, err := codec.encoder(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create %s: %s: %w", l.path, codec, err)
	}
	return stackedWriter{WriteCloser: enc, file: f}, nil
}
