// Package affinitytest assembles synthetic Affinity containers for tests.
//
// The public affinity API is read-only; this builder exists so tests can
// exercise the reader against byte-exact fixtures without shipping binary
// test data in the repository.
package affinitytest

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/indrora/pigment/pigment/affinity"
	pio "github.com/indrora/pigment/pigment/ioutil"
)

// payloadStart is the first byte after the three fixed blocks (header,
// offsets, protection).
const payloadStart = 72

// directoryHeaderSize covers the tag through the 3 reserved bytes.
const directoryHeaderSize = 59

// Entry is one file to place in the synthetic container.
type Entry struct {
	Name      string
	Data      []byte
	Algorithm affinity.CompressionAlgorithm
	// Version is written for DIRECTORY_V2 and later directories.
	Version uint32
}

// Builder assembles a complete container image in memory.
type Builder struct {
	Version      affinity.DirectoryVersion
	FileType     string
	CreationDate int64

	// OverrideTableLength substitutes TableLength for the real encoded
	// table size, for corruption scenarios.
	OverrideTableLength bool
	TableLength         uint32

	entries []Entry
}

func NewBuilder(version affinity.DirectoryVersion) *Builder {
	return &Builder{
		Version:  version,
		FileType: "Pale",
	}
}

// Add appends an entry to the container.
func (b *Builder) Add(name string, data []byte, algorithm affinity.CompressionAlgorithm) *Builder {
	return b.AddEntry(Entry{Name: name, Data: data, Algorithm: algorithm})
}

func (b *Builder) AddEntry(entry Entry) *Builder {
	b.entries = append(b.entries, entry)
	return b
}

type placedEntry struct {
	Entry
	offset uint64
	stored uint64
}

// Build returns the finished container bytes.
func (b *Builder) Build(t testing.TB) []byte {
	t.Helper()

	// Payload region: a local tag ahead of each stored blob.
	body := new(bytes.Buffer)
	placed := make([]placedEntry, 0, len(b.entries))
	for _, entry := range b.entries {
		offset := uint64(payloadStart + body.Len())
		body.WriteString(affinity.TAG_FIL)
		stored, err := compressorFor(entry.Algorithm).Copy(body, bytes.NewReader(entry.Data))
		if err != nil {
			t.Fatalf("failed to compress %s: %v", entry.Name, err)
		}
		placed = append(placed, placedEntry{Entry: entry, offset: offset, stored: uint64(stored)})
	}

	table := b.buildTable(placed)
	tableLength := uint32(table.Len())
	if b.OverrideTableLength {
		tableLength = b.TableLength
	}

	directoryOffset := uint64(payloadStart + body.Len())
	fileLength := directoryOffset + directoryHeaderSize + uint64(table.Len())

	out := new(bytes.Buffer)

	// Header block.
	le(out, affinity.CONTAINER_MAGIC)
	le(out, uint16(1))
	le(out, uint16(0))
	out.WriteString(affinity.ReverseTag(b.fileType()))

	// Offsets block.
	out.WriteString(affinity.TAG_INF)
	le(out, directoryOffset)
	le(out, fileLength)
	le(out, uint64(body.Len()))
	le(out, uint64(0))
	le(out, b.CreationDate)
	le(out, uint32(0))
	le(out, uint32(0))

	// Protection block.
	out.WriteString(affinity.TAG_PROT)
	le(out, uint32(0))

	out.Write(body.Bytes())

	// Directory.
	out.WriteString(b.Version.Tag())
	le(out, uint64(0))
	le(out, b.CreationDate)
	le(out, fileLength)
	le(out, uint64(body.Len()))
	le(out, uint64(0))
	le(out, uint64(len(placed)))
	le(out, tableLength)
	out.Write([]byte{0, 0, 0})
	out.Write(table.Bytes())

	return out.Bytes()
}

func (b *Builder) buildTable(placed []placedEntry) *bytes.Buffer {
	table := new(bytes.Buffer)
	for i, entry := range placed {
		le(table, uint32(i))
		table.WriteByte(0)
		le(table, entry.offset)
		le(table, uint64(len(entry.Data)))
		le(table, entry.stored)
		le(table, crc32.ChecksumIEEE(entry.Data))
		table.WriteByte(affinity.Compression{Algorithm: entry.Algorithm}.Byte())
		if b.Version >= affinity.DIRECTORY_V2 {
			le(table, entry.Version)
		}
		if b.Version >= affinity.DIRECTORY_V4 {
			le(table, crc32.ChecksumIEEE(entry.Data))
		}
		le(table, uint16(len(entry.Name)))
		table.WriteString(entry.Name)
	}
	return table
}

func (b *Builder) fileType() string {
	if len(b.FileType) == 4 {
		return b.FileType
	}
	return "Pale"
}

func compressorFor(algorithm affinity.CompressionAlgorithm) pio.Compressor {
	switch algorithm {
	case affinity.COMPRESSION_ZLIB:
		return pio.ZlibCompressor{}
	case affinity.COMPRESSION_ZSTD:
		return pio.ZstdCompressor{}
	default:
		return pio.CopyCompressor{}
	}
}

// le writes v little-endian; bytes.Buffer writes cannot fail.
func le(buf *bytes.Buffer, v any) {
	_ = binary.Write(buf, binary.LittleEndian, v)
}
