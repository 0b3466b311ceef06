package affinity_test

import (
	"errors"
	"io"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/indrora/pigment/pigment/affinity"
	"github.com/indrora/pigment/pigment/affinity/affinitytest"
)

func TestHeaderDecodesReversedFileType(t *testing.T) {
	builder := affinitytest.NewBuilder(affinity.DIRECTORY_V1)
	builder.FileType = "Pale"
	data := builder.Build(t)

	container, _ := mustOpen(t, data)
	defer container.Close()

	header := container.Header()
	if header.FileType != "Pale" {
		t.Errorf("expected filetype %q, got %q", "Pale", header.FileType)
	}
	if header.Version != 1 {
		t.Errorf("expected header version 1, got %d", header.Version)
	}
}

func TestDirectoryVariantShapes(t *testing.T) {
	cases := []struct {
		version       affinity.DirectoryVersion
		wantVersion   bool
		wantChecksums int
	}{
		{affinity.DIRECTORY_V1, false, 1},
		{affinity.DIRECTORY_V2, true, 1},
		{affinity.DIRECTORY_V3, true, 1},
		{affinity.DIRECTORY_V4, true, 2},
	}

	for _, tc := range cases {
		t.Run(tc.version.Tag(), func(t *testing.T) {
			data := affinitytest.NewBuilder(tc.version).
				AddEntry(affinitytest.Entry{
					Name:      "swatch.bin",
					Data:      []byte("abcd"),
					Algorithm: affinity.COMPRESSION_NONE,
					Version:   7,
				}).
				Build(t)

			container, _ := mustOpen(t, data)
			defer container.Close()

			info, err := container.Info("swatch.bin")
			if err != nil {
				t.Fatalf("failed to get info: %v", err)
			}
			if info.HasVersion != tc.wantVersion {
				t.Errorf("HasVersion: expected %v, got %v\n%s",
					tc.wantVersion, info.HasVersion, spew.Sdump(info))
			}
			if tc.wantVersion && info.Version != 7 {
				t.Errorf("expected entry version 7, got %d", info.Version)
			}
			if len(info.Checksums) != tc.wantChecksums {
				t.Errorf("expected %d checksums, got %d", tc.wantChecksums, len(info.Checksums))
			}

			got, err := container.Read("swatch.bin")
			if err != nil {
				t.Fatalf("failed to read entry: %v", err)
			}
			if string(got) != "abcd" {
				t.Errorf("expected %q, got %q", "abcd", got)
			}
		})
	}
}

func TestDirectoryVersionOrdering(t *testing.T) {
	// The on-disk format versions the directory by comparing tags as
	// strings; the enum must preserve that total order.
	order := []affinity.DirectoryVersion{
		affinity.DIRECTORY_V1,
		affinity.DIRECTORY_V2,
		affinity.DIRECTORY_V3,
		affinity.DIRECTORY_V4,
	}
	for i := 1; i < len(order); i++ {
		if !(order[i-1] < order[i]) {
			t.Errorf("%s should order before %s", order[i-1].Tag(), order[i].Tag())
		}
		if !(order[i-1].Tag() < order[i].Tag()) {
			t.Errorf("tag %q should compare before %q", order[i-1].Tag(), order[i].Tag())
		}
	}

	for _, version := range order {
		mapped, ok := affinity.DirectoryVersionFromTag(version.Tag())
		if !ok || mapped != version {
			t.Errorf("tag %q did not map back to its version", version.Tag())
		}
	}
	if _, ok := affinity.DirectoryVersionFromTag("#FT5"); ok {
		t.Error("unknown tag should not map to a version")
	}
}

func TestUnrecognizedDirectoryTag(t *testing.T) {
	data := affinitytest.NewBuilder(affinity.DIRECTORY_V1).Build(t)
	// An empty container's directory starts right after the fixed blocks.
	copy(data[72:76], "#XYZ")

	_, err := affinity.New(affinitytest.NewFile(data), "badtag")
	if !errors.Is(err, affinity.ErrInvalidTag) {
		t.Errorf("expected ErrInvalidTag, got %v", err)
	}
}

func TestInvalidOffsetsTag(t *testing.T) {
	data := affinitytest.NewBuilder(affinity.DIRECTORY_V1).Build(t)
	copy(data[12:16], "#XYZ")

	_, err := affinity.New(affinitytest.NewFile(data), "badinfo")
	if !errors.Is(err, affinity.ErrInvalidTag) {
		t.Errorf("expected ErrInvalidTag, got %v", err)
	}
}

func TestInvalidProtectionTag(t *testing.T) {
	data := affinitytest.NewBuilder(affinity.DIRECTORY_V1).Build(t)
	copy(data[64:68], "#XYZ")

	_, err := affinity.New(affinitytest.NewFile(data), "badprot")
	if !errors.Is(err, affinity.ErrInvalidTag) {
		t.Errorf("expected ErrInvalidTag, got %v", err)
	}
}

func TestBlockReadersRestoreCursor(t *testing.T) {
	data := affinitytest.NewBuilder(affinity.DIRECTORY_V2).
		Add("a.bin", []byte("aaaa"), affinity.COMPRESSION_NONE).
		Build(t)
	file := affinitytest.NewFile(data)

	const parked = 5
	if _, err := file.Seek(parked, io.SeekStart); err != nil {
		t.Fatalf("failed to seek: %v", err)
	}

	if _, err := affinity.ReadHeader(file); err != nil {
		t.Fatalf("failed to read header: %v", err)
	}
	offsets, err := affinity.ReadOffsets(file)
	if err != nil {
		t.Fatalf("failed to read offsets: %v", err)
	}
	if _, err := affinity.ReadProtection(file); err != nil {
		t.Fatalf("failed to read protection: %v", err)
	}
	if _, err := affinity.ReadDirectory(file, offsets); err != nil {
		t.Fatalf("failed to read directory: %v", err)
	}

	pos, err := file.Seek(0, io.SeekCurrent)
	if err != nil {
		t.Fatalf("failed to tell: %v", err)
	}
	if pos != parked {
		t.Errorf("block readers displaced the cursor: expected %d, got %d", parked, pos)
	}
}

func TestReverseTag(t *testing.T) {
	if got := affinity.ReverseTag("elaP"); got != "Pale" {
		t.Errorf("expected %q, got %q", "Pale", got)
	}
	if got := affinity.ReverseTag(affinity.ReverseTag("#Inf")); got != "#Inf" {
		t.Errorf("reversing twice should be the identity, got %q", got)
	}
}

func TestCompressionPackedByte(t *testing.T) {
	c := affinity.CompressionFromByte(0b111101)
	if c.Algorithm != affinity.COMPRESSION_ZLIB {
		t.Errorf("expected zlib, got %v", c.Algorithm)
	}
	if c.Flags != 0b1111 {
		t.Errorf("expected flags 0b1111, got %#b", c.Flags)
	}
	if c.Byte() != 0b111101 {
		t.Errorf("packed byte did not round-trip: got %#b", c.Byte())
	}
}
