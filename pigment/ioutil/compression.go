package ioutil

import (
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// Compressor writes a complete compressed rendition of a stream.
type Compressor interface {
	// Copy reads from r until EOF, compresses into w, and returns the
	// number of compressed bytes written.
	Copy(w io.Writer, r io.Reader) (int64, error)
}

// CopyCompressor is the identity Compressor.
type CopyCompressor struct{}

func (CopyCompressor) Copy(w io.Writer, r io.Reader) (int64, error) {
	return io.Copy(w, r)
}

// ZlibCompressor wraps the payload in a zlib stream.
type ZlibCompressor struct{}

func (ZlibCompressor) Copy(w io.Writer, r io.Reader) (int64, error) {
	cw := &countingWriter{writer: w}
	zw := zlib.NewWriter(cw)
	if _, err := io.Copy(zw, r); err != nil {
		return cw.written, errors.Wrap(err, "failed to compress with zlib")
	}
	if err := zw.Close(); err != nil {
		return cw.written, errors.Wrap(err, "failed to finish zlib stream")
	}
	return cw.written, nil
}

// ZstdCompressor wraps the payload in a single zstd frame.
type ZstdCompressor struct{}

func (ZstdCompressor) Copy(w io.Writer, r io.Reader) (int64, error) {
	cw := &countingWriter{writer: w}
	zw, err := zstd.NewWriter(cw)
	if err != nil {
		return 0, errors.Wrap(err, "failed to initialize zstd")
	}
	if _, err := io.Copy(zw, r); err != nil {
		_ = zw.Close()
		return cw.written, errors.Wrap(err, "failed to compress with zstd")
	}
	if err := zw.Close(); err != nil {
		return cw.written, errors.Wrap(err, "failed to finish zstd frame")
	}
	return cw.written, nil
}

type countingWriter struct {
	writer  io.Writer
	written int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.writer.Write(p)
	cw.written += int64(n)
	return n, err
}
