package affinity

import (
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// newDecompressor wraps the stored payload with the decoder for the entry's
// algorithm. The returned closer may be nil when there is nothing to tear
// down.
func newDecompressor(stored io.Reader, algorithm CompressionAlgorithm) (io.Reader, func() error, error) {
	switch algorithm {
	case COMPRESSION_NONE:
		return stored, nil, nil // no compression = passthru
	case COMPRESSION_ZLIB:
		zr, err := zlib.NewReader(stored)
		if err != nil {
			return nil, nil, errors.Wrapf(ErrCorruptEntry, "bad zlib stream: %v", err)
		}
		return zr, zr.Close, nil
	case COMPRESSION_ZSTD:
		dec, err := zstd.NewReader(stored, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, nil, errors.Wrapf(ErrCorruptEntry, "bad zstd stream: %v", err)
		}
		return dec, func() error { dec.Close(); return nil }, nil
	default:
		return nil, nil, errors.Wrapf(ErrUnsupportedCompression, "algorithm %d", algorithm)
	}
}
