package affinitytest

import (
	"bytes"
)

// MemFile is an in-memory affinity.File that remembers whether Close was
// called, so lifecycle tests can observe when the shared handle is actually
// released.
type MemFile struct {
	reader *bytes.Reader
	closed bool
}

func NewFile(data []byte) *MemFile {
	return &MemFile{reader: bytes.NewReader(data)}
}

func (f *MemFile) Read(p []byte) (int, error) {
	return f.reader.Read(p)
}

func (f *MemFile) ReadAt(p []byte, off int64) (int, error) {
	return f.reader.ReadAt(p, off)
}

func (f *MemFile) Seek(offset int64, whence int) (int64, error) {
	return f.reader.Seek(offset, whence)
}

func (f *MemFile) Close() error {
	f.closed = true
	return nil
}

// Closed reports whether the handle has been released.
func (f *MemFile) Closed() bool {
	return f.closed
}
