package palette

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnrecognizedFormat is returned when no registered codec claims a path.
var ErrUnrecognizedFormat = errors.New("unrecognized palette format")

// Reader parses the file at path into a palette.
type Reader func(path string) (*Palette, error)

// Writer renders a palette into the file at path.
type Writer func(path string, p *Palette) error

// Format is one palette codec, claimed by filename extension. Write may be
// nil for read-only formats.
type Format struct {
	Ext   string // including the dot, e.g. ".gpl"
	Read  Reader
	Write Writer
}

var formats []Format

// Register adds a codec to the registry. Codec packages call this from init;
// a later registration for the same extension wins.
func Register(f Format) {
	formats = append(formats, f)
}

// Extensions returns the registered extensions, sorted.
func Extensions() []string {
	exts := make([]string, 0, len(formats))
	for _, f := range formats {
		exts = append(exts, f.Ext)
	}
	sort.Strings(exts)
	return exts
}

func lookup(path string) (Format, bool) {
	for i := len(formats) - 1; i >= 0; i-- {
		if strings.HasSuffix(path, formats[i].Ext) {
			return formats[i], true
		}
	}
	return Format{}, false
}

// ReadFile parses path with the codec registered for its extension.
func ReadFile(path string) (*Palette, error) {
	f, ok := lookup(path)
	if !ok {
		return nil, errors.Wrap(ErrUnrecognizedFormat, path)
	}
	return f.Read(path)
}

// WriteFile renders p to path with the codec registered for its extension.
func WriteFile(path string, p *Palette) error {
	f, ok := lookup(path)
	if !ok || f.Write == nil {
		return errors.Wrap(ErrUnrecognizedFormat, path)
	}
	return f.Write(path, p)
}
