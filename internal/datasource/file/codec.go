package file

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Codec names a compression format chosen by file extension.
type Codec string

const (
	None   Codec = ""
	Gzip   Codec = "gzip"
	Zstd   Codec = "zstd"
	Snappy Codec = "snappy"
	Brotli Codec = "brotli"
	XZ     Codec = "xz"
)

var codecByExt = map[string]Codec{
	".gz":  Gzip,
	".zst": Zstd,
	".sz":  Snappy,
	".br":  Brotli,
	".xz":  XZ,
}

// CodecFor returns the codec implied by the extension of path. Paths
// without a recognised extension are read and written as-is.
func CodecFor(path string) Codec {
	return codecByExt[strings.ToLower(filepath.Ext(path))]
}

// decoder wraps r with the decompressor for c. The returned closer releases
// decompressor state only; the caller still owns r.
func (c Codec) decoder(r io.Reader) (io.ReadCloser, error) {
	switch c {
	case Gzip:
		return gzip.NewReader(r)
	case Zstd:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	case Snappy:
		return io.NopCloser(snappy.NewReader(r)), nil
	case Brotli:
		return io.NopCloser(brotli.NewReader(r)), nil
	case XZ:
		x, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(x), nil
	}
	return io.NopCloser(r), nil
}

// encoder wraps w with the compressor for c. Closing the returned writer
// flushes the compressed stream but does not close w.
func (c Codec) encoder(w io.Writer) (io.WriteCloser, error) {
	switch c {
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		return zstd.NewWriter(w)
	case Snappy:
		return snappy.NewBufferedWriter(w), nil
	case Brotli:
		return brotli.NewWriter(w), nil
	case XZ:
		return xz.NewWriter(w)
	}
	return nopWriteCloser{w}, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// stackedReader and stackedWriter close the codec stream before the file
// beneath it.
type stackedReader struct {
	io.ReadCloser
	file io.Closer
}

func (s stackedReader) Close() error {
	err := s.ReadCloser.Close()
	if ferr := s.file.Close(); err == nil {
		err = ferr
	}
	return err
}

type stackedWriter struct {
	io.WriteCloser
	file io.Closer
}

func (s stackedWriter) Close() error {
	err := s.WriteCloser.Close()
	if ferr := s.file.Close(); err == nil {
		err = ferr
	}
	return err
}
