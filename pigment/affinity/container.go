package affinity

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/pkg/errors"
)

// File is the subset of *os.File the container needs. Reads through ReadAt
// must not disturb the seek cursor, which *os.File and bytes.Reader both
// guarantee.
type File interface {
	io.Reader
	io.ReaderAt
	io.Seeker
	io.Closer
}

// sharedFile reference-counts the archive handle. The container holds one
// reference and every live Stream holds another; the handle is closed when
// the count reaches zero, whichever side releases last.
type sharedFile struct {
	file     File
	refs     int32
	released int32
}

func newSharedFile(file File) *sharedFile {
	return &sharedFile{file: file, refs: 1}
}

func (s *sharedFile) acquire() {
	atomic.AddInt32(&s.refs, 1)
}

func (s *sharedFile) release() error {
	if atomic.AddInt32(&s.refs, -1) > 0 {
		return nil
	}
	if !atomic.CompareAndSwapInt32(&s.released, 0, 1) {
		return nil
	}
	return s.file.Close()
}

func (s *sharedFile) closed() bool {
	return atomic.LoadInt32(&s.released) != 0
}

// Container is an open, fully decoded Affinity archive. It is populated
// eagerly on construction and never touches the file again except to serve
// Open and Read calls.
//
// A Container is not safe for concurrent use without external locking.
type Container struct {
	shared   *sharedFile
	filename string
	closed   bool

	header     FileHeader
	offsets    FileOffsets
	protection FileProtection
	directory  Directory
}

// Open opens the container at path.
func Open(path string) (*Container, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open container %s", path)
	}
	return New(fh, path)
}

// New adopts an already-open handle. The container takes ownership: the
// handle is closed when the container and all of its streams are closed, or
// immediately if construction fails.
func New(file File, name string) (*Container, error) {
	container := &Container{
		shared:   newSharedFile(file),
		filename: name,
	}
	if err := container.populate(); err != nil {
		_ = container.shared.release()
		return nil, err
	}
	return container, nil
}

// populate runs the fixed construction sequence: header, offsets,
// protection, directory. Any structural violation aborts the whole
// container; no partially decoded container escapes to the caller.
func (c *Container) populate() error {
	var err error
	if c.header, err = ReadHeader(c.shared.file); err != nil {
		return err
	}
	if c.offsets, err = ReadOffsets(c.shared.file); err != nil {
		return err
	}
	if c.protection, err = ReadProtection(c.shared.file); err != nil {
		return err
	}
	if c.directory, err = ReadDirectory(c.shared.file, c.offsets); err != nil {
		return err
	}
	return nil
}

// Name returns the path or name the container was opened with.
func (c *Container) Name() string { return c.filename }

func (c *Container) Header() FileHeader         { return c.header }
func (c *Container) Offsets() FileOffsets       { return c.offsets }
func (c *Container) Protection() FileProtection { return c.protection }
func (c *Container) Directory() Directory       { return c.directory }

// List returns all entries in directory order.
func (c *Container) List() []EntryInfo {
	entries := make([]EntryInfo, len(c.directory.Entries))
	copy(entries, c.directory.Entries)
	return entries
}

// Names returns the entry filenames in directory order.
func (c *Container) Names() []string {
	names := make([]string, 0, len(c.directory.Entries))
	for _, entry := range c.directory.Entries {
		names = append(names, entry.Filename)
	}
	return names
}

// Info returns the metadata record for one entry.
func (c *Container) Info(name string) (EntryInfo, error) {
	entry, ok := c.findEntry(name)
	if !ok {
		return EntryInfo{}, errors.Wrapf(ErrNotFound, "info %s", name)
	}
	return entry, nil
}

func (c *Container) findEntry(name string) (EntryInfo, bool) {
	for _, entry := range c.directory.Entries {
		if entry.Filename == name {
			return entry, true
		}
	}
	return EntryInfo{}, false
}

// Open returns a stream over the decoded payload of the named entry. A
// failure here is local to this call; the container and its other entries
// stay usable.
func (c *Container) Open(name string) (*Stream, error) {
	if c.Closed() {
		return nil, errors.Wrapf(ErrClosed, "open %s", name)
	}
	entry, ok := c.findEntry(name)
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "open %s", name)
	}
	return newStream(c.shared, entry)
}

// Read opens the named entry, drains it, and releases it.
func (c *Container) Read(name string) ([]byte, error) {
	stream, err := c.Open(name)
	if err != nil {
		return nil, err
	}
	defer stream.Close()
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}
	return data, nil
}

// Create would add an entry to the container. The format is read-only in
// this package; the method fails explicitly so a caller cannot mistake a
// silent no-op for a successful write.
func (c *Container) Create(name string) (io.WriteCloser, error) {
	return nil, errors.Wrapf(ErrUnsupportedOperation, "create %s: container is read-only", name)
}

// Close marks the container closed. No further Open or Read calls succeed.
// If streams are still open, the underlying handle stays alive until the
// last of them is closed.
func (c *Container) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.shared.release()
}

// Closed reports whether the container can no longer serve reads. A handle
// that was already released out from under the container counts as closed
// even if Close was never called.
func (c *Container) Closed() bool {
	return c.closed || c.shared.closed()
}
