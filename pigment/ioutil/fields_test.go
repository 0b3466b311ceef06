package ioutil

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestFieldReaderDecodesLittleEndian(t *testing.T) {
	data := []byte{
		0x01,                   // uint8
		0x02, 0x01,             // uint16
		0x04, 0x03, 0x02, 0x01, // uint32
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01, // uint64
		'#', 'F', 'A', 'T', // tag
		0xAA, 0xBB, // bytes
	}
	fr := NewFieldReader(bytes.NewReader(data))

	if got := fr.Uint8(); got != 0x01 {
		t.Errorf("Uint8: expected 0x01, got %#x", got)
	}
	if got := fr.Uint16(); got != 0x0102 {
		t.Errorf("Uint16: expected 0x0102, got %#x", got)
	}
	if got := fr.Uint32(); got != 0x01020304 {
		t.Errorf("Uint32: expected 0x01020304, got %#x", got)
	}
	if got := fr.Uint64(); got != 0x0102030405060708 {
		t.Errorf("Uint64: expected 0x0102030405060708, got %#x", got)
	}
	if got := fr.Tag(); got != "#FAT" {
		t.Errorf("Tag: expected %q, got %q", "#FAT", got)
	}
	if got := fr.Bytes(2); !bytes.Equal(got, []byte{0xAA, 0xBB}) {
		t.Errorf("Bytes: expected aabb, got %x", got)
	}
	if fr.Count() != int64(len(data)) {
		t.Errorf("Count: expected %d, got %d", len(data), fr.Count())
	}
	if fr.Err() != nil {
		t.Errorf("unexpected error: %v", fr.Err())
	}
}

func TestFieldReaderNegativeInt64(t *testing.T) {
	fr := NewFieldReader(bytes.NewReader([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}))
	if got := fr.Int64(); got != -1 {
		t.Errorf("expected -1, got %d", got)
	}
}

func TestFieldReaderStickyError(t *testing.T) {
	fr := NewFieldReader(bytes.NewReader([]byte{0x01, 0x02}))

	_ = fr.Uint32() // short read
	if fr.Err() == nil {
		t.Fatal("expected an error after short read")
	}
	if !errors.Is(fr.Err(), io.ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF, got %v", fr.Err())
	}

	// Later reads are no-ops that keep the first error.
	first := fr.Err()
	_ = fr.Uint64()
	if got := fr.Tag(); got != "" {
		t.Errorf("expected empty tag after error, got %q", got)
	}
	if fr.Err() != first {
		t.Error("first error should stick")
	}
}

func TestAtOffsetRestoresCursor(t *testing.T) {
	rs := bytes.NewReader([]byte("0123456789"))
	if _, err := rs.Seek(3, io.SeekStart); err != nil {
		t.Fatalf("failed to seek: %v", err)
	}

	err := AtOffset(rs, 7, func(r io.Reader) error {
		buf := make([]byte, 2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return err
		}
		if string(buf) != "78" {
			t.Errorf("expected to read %q, got %q", "78", buf)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("AtOffset failed: %v", err)
	}

	if pos, _ := rs.Seek(0, io.SeekCurrent); pos != 3 {
		t.Errorf("expected cursor restored to 3, got %d", pos)
	}
}

func TestAtOffsetRestoresCursorOnError(t *testing.T) {
	rs := bytes.NewReader([]byte("0123456789"))
	if _, err := rs.Seek(4, io.SeekStart); err != nil {
		t.Fatalf("failed to seek: %v", err)
	}

	boom := errors.New("boom")
	if err := AtOffset(rs, 0, func(io.Reader) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected decode error to propagate, got %v", err)
	}

	if pos, _ := rs.Seek(0, io.SeekCurrent); pos != 4 {
		t.Errorf("expected cursor restored to 4 after error, got %d", pos)
	}
}
