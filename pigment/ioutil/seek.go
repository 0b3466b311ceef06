package ioutil

import (
	"io"

	"github.com/pkg/errors"
)

// AtOffset seeks rs to off, runs fn, and restores the previous cursor
// position on every return path. The cursor of an archive handle is shared
// mutable state between a container and all streams it has produced, so block
// readers must not leave it displaced, not even on a decode failure.
func AtOffset(rs io.ReadSeeker, off int64, fn func(io.Reader) error) (err error) {
	prev, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return errors.Wrap(err, "failed to save cursor position")
	}
	if _, err = rs.Seek(off, io.SeekStart); err != nil {
		return errors.Wrapf(err, "failed to seek to offset %d", off)
	}
	defer func() {
		if _, serr := rs.Seek(prev, io.SeekStart); serr != nil && err == nil {
			err = errors.Wrap(serr, "failed to restore cursor position")
		}
	}()
	return fn(rs)
}
