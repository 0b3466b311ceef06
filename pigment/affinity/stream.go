package affinity

import (
	"io"
	"math"

	"github.com/pkg/errors"

	pio "github.com/indrora/pigment/pigment/ioutil"
)

// Stream is a finite, non-restartable reader over one entry's decoded
// payload. Streams are independent of each other: they read through ReadAt
// on the shared handle and never move its cursor. Each open stream holds a
// reference on the handle, so closing the container while streams are live
// only defers the final release.
type Stream struct {
	info   EntryInfo
	reader io.Reader
	closer func() error
	shared *sharedFile
	closed bool
}

func newStream(shared *sharedFile, entry EntryInfo) (*Stream, error) {
	if entry.Offset > math.MaxInt64-4 || entry.SizeStored > math.MaxInt64 {
		return nil, errors.Wrapf(ErrCorruptEntry, "%s: payload location overflows", entry.Filename)
	}

	// The local tag guards against a directory pointing at the wrong
	// payload location.
	err := pio.AtOffset(shared.file, int64(entry.Offset), func(r io.Reader) error {
		fr := pio.NewFieldReader(r)
		tag := fr.Tag()
		if err := fr.Err(); err != nil {
			return errors.Wrapf(ErrCorruptEntry, "%s: %v", entry.Filename, err)
		}
		if tag != TAG_FIL {
			return errors.Wrapf(ErrCorruptEntry, "%s: expected payload tag %q, got %q",
				entry.Filename, TAG_FIL, tag)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	stored := io.NewSectionReader(shared.file, int64(entry.Offset)+4, int64(entry.SizeStored))
	payload, closer, err := newDecompressor(stored, entry.Compression.Algorithm)
	if err != nil {
		return nil, err
	}

	shared.acquire()
	return &Stream{
		info:   entry,
		reader: payload,
		closer: closer,
		shared: shared,
	}, nil
}

// Info returns the entry this stream reads.
func (s *Stream) Info() EntryInfo { return s.info }

func (s *Stream) Read(p []byte) (int, error) {
	if s.closed {
		return 0, errors.Wrapf(ErrClosed, "read %s", s.info.Filename)
	}
	return s.reader.Read(p)
}

// Close releases the stream's hold on the shared handle. Closing twice is
// harmless.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.closer != nil {
		if err := s.closer(); err != nil {
			_ = s.shared.release()
			return errors.Wrapf(err, "close %s", s.info.Filename)
		}
	}
	return s.shared.release()
}
