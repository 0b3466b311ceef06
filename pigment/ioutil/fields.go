package ioutil

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// FieldReader decodes little-endian fields from a stream.
//
// Instead of returning an error per field, the first failure sticks and every
// later call returns a zero value. Callers decode a whole record and check
// Err() once at the end.
type FieldReader struct {
	reader io.Reader
	count  int64
	err    error
}

func NewFieldReader(reader io.Reader) *FieldReader {
	return &FieldReader{reader: reader}
}

// Err returns the first error hit while decoding, or nil.
func (fr *FieldReader) Err() error {
	return fr.err
}

// Count returns the number of bytes consumed so far.
func (fr *FieldReader) Count() int64 {
	return fr.count
}

func (fr *FieldReader) read(buf []byte) bool {
	if fr.err != nil {
		return false
	}
	n, err := io.ReadFull(fr.reader, buf)
	fr.count += int64(n)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		fr.err = errors.Wrap(err, "short read")
		return false
	}
	return true
}

func (fr *FieldReader) Uint8() uint8 {
	var buf [1]byte
	if !fr.read(buf[:]) {
		return 0
	}
	return buf[0]
}

func (fr *FieldReader) Uint16() uint16 {
	var buf [2]byte
	if !fr.read(buf[:]) {
		return 0
	}
	return binary.LittleEndian.Uint16(buf[:])
}

func (fr *FieldReader) Uint32() uint32 {
	var buf [4]byte
	if !fr.read(buf[:]) {
		return 0
	}
	return binary.LittleEndian.Uint32(buf[:])
}

func (fr *FieldReader) Uint64() uint64 {
	var buf [8]byte
	if !fr.read(buf[:]) {
		return 0
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// Int64 reads a signed 64-bit value (used for epoch timestamps).
func (fr *FieldReader) Int64() int64 {
	return int64(fr.Uint64())
}

// Tag reads a 4-byte ASCII block tag.
func (fr *FieldReader) Tag() string {
	var buf [4]byte
	if !fr.read(buf[:]) {
		return ""
	}
	return string(buf[:])
}

// Bytes reads exactly n bytes.
func (fr *FieldReader) Bytes(n int) []byte {
	buf := make([]byte, n)
	if !fr.read(buf) {
		return nil
	}
	return buf
}

// Skip discards n bytes.
func (fr *FieldReader) Skip(n int) {
	fr.Bytes(n)
}
