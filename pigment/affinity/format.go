package affinity

import (
	"time"
)

// CONTAINER_MAGIC sits at offset 0 of every Affinity container.
const CONTAINER_MAGIC uint32 = 0x414bff00

// 4-byte ASCII block tags.
const (
	TAG_FAT  = "#FAT" // directory, first layout
	TAG_FT2  = "#FT2" // directory, adds per-entry version
	TAG_FT3  = "#FT3" // directory, same record shape as #FT2
	TAG_FT4  = "#FT4" // directory, adds a second checksum
	TAG_INF  = "#Inf" // offsets block
	TAG_PROT = "Prot" // protection block
	TAG_THMB = "Thmb" // thumbnail blob
	TAG_FIL  = "#Fil" // local payload tag ahead of each stored blob
)

// DirectoryVersion is the directory layout revision. The source format
// derives it by comparing the 4-character directory tag lexicographically;
// decoding it into an ordered enum up front keeps that dispatch away from
// incidental string-comparison semantics.
type DirectoryVersion uint8

const (
	DIRECTORY_V1 DirectoryVersion = iota + 1 // #FAT
	DIRECTORY_V2                             // #FT2
	DIRECTORY_V3                             // #FT3
	DIRECTORY_V4                             // #FT4
)

// DirectoryVersionFromTag maps a directory tag to its layout revision.
func DirectoryVersionFromTag(tag string) (DirectoryVersion, bool) {
	switch tag {
	case TAG_FAT:
		return DIRECTORY_V1, true
	case TAG_FT2:
		return DIRECTORY_V2, true
	case TAG_FT3:
		return DIRECTORY_V3, true
	case TAG_FT4:
		return DIRECTORY_V4, true
	default:
		return 0, false
	}
}

// Tag returns the on-disk tag for the revision.
func (v DirectoryVersion) Tag() string {
	switch v {
	case DIRECTORY_V1:
		return TAG_FAT
	case DIRECTORY_V2:
		return TAG_FT2
	case DIRECTORY_V3:
		return TAG_FT3
	case DIRECTORY_V4:
		return TAG_FT4
	default:
		return ""
	}
}

// ReverseTag flips a 4-byte tag. The header's filetype tag is stored
// byte-reversed on disk.
func ReverseTag(tag string) string {
	b := []byte(tag)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

type CompressionAlgorithm uint8

const (
	COMPRESSION_NONE CompressionAlgorithm = 0
	COMPRESSION_ZLIB CompressionAlgorithm = 1
	COMPRESSION_ZSTD CompressionAlgorithm = 2
)

func (a CompressionAlgorithm) String() string {
	switch a {
	case COMPRESSION_NONE:
		return "none"
	case COMPRESSION_ZLIB:
		return "zlib"
	case COMPRESSION_ZSTD:
		return "zstd"
	default:
		return "unknown"
	}
}

// Compression describes how one entry's payload is stored. On disk it is a
// single packed byte: the algorithm in the low 2 bits, flags in the rest.
type Compression struct {
	Algorithm CompressionAlgorithm
	Flags     uint8
}

func CompressionFromByte(b byte) Compression {
	return Compression{
		Algorithm: CompressionAlgorithm(b & 0b11),
		Flags:     b >> 2,
	}
}

// Byte packs the descriptor back into its wire form.
func (c Compression) Byte() byte {
	return byte(c.Algorithm)&0b11 | c.Flags<<2
}

// FileHeader is the archive-level identity block at offset 0.
type FileHeader struct {
	Version  uint16
	Flag     uint16
	FileType string // 4 characters, stored byte-reversed on disk
}

// FileOffsets is the pointer block at offset 12.
type FileOffsets struct {
	DirectoryOffset uint64
	FileLength      uint64
	DataLength      uint64
	CreationDate    time.Time
}

// FileProtection is the access-flag block at offset 64.
type FileProtection struct {
	Flags uint32
}

// EntryInfo is the decoded metadata record for one archived file.
type EntryInfo struct {
	Index        uint32
	Offset       uint64
	SizeOriginal uint64
	SizeStored   uint64
	// Checksums holds one value, or two for DIRECTORY_V4 directories. They
	// are never verified against payload bytes.
	Checksums   []uint32
	Compression Compression
	// Version is only present in DIRECTORY_V2 and later directories.
	Version    uint32
	HasVersion bool
	Filename   string
}

// Directory is the decoded entry table.
type Directory struct {
	Version      DirectoryVersion
	Flags        uint64
	CreationDate time.Time
	FileLength   uint64
	DataLength   uint64
	Entries      []EntryInfo
}
