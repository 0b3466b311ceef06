package affinity

import (
	"github.com/pkg/errors"
)

// Construction errors abort the whole container; the per-call errors only
// fail the operation that hit them. All of them survive wrapping, so callers
// match with errors.Is.
var (
	ErrInvalidMagic           = errors.New("invalid container magic")
	ErrInvalidTag             = errors.New("invalid block tag")
	ErrCorruptDirectory       = errors.New("corrupt directory")
	ErrCorruptEntry           = errors.New("corrupt entry payload")
	ErrUnsupportedCompression = errors.New("unsupported compression")
	ErrNotFound               = errors.New("entry does not exist")
	ErrClosed                 = errors.New("container is closed")
	ErrUnsupportedOperation   = errors.New("operation not supported")
)
