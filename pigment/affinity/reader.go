package affinity

import (
	"io"
	"math"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"

	pio "github.com/indrora/pigment/pigment/ioutil"
)

// Fixed block positions. Only the directory moves; its location comes from
// the offsets block.
const (
	headerOffset     = 0
	offsetsOffset    = 12
	protectionOffset = 64
)

// Smallest possible entry record: a DIRECTORY_V1 record with an empty
// filename. Used to bound the entry-table preallocation.
const entryMinSize = 36

// ReadHeader decodes the identity block at offset 0. The cursor position of
// rs is restored before returning.
func ReadHeader(rs io.ReadSeeker) (FileHeader, error) {
	var header FileHeader
	err := pio.AtOffset(rs, headerOffset, func(r io.Reader) error {
		fr := pio.NewFieldReader(r)
		magic := fr.Uint32()
		if err := fr.Err(); err != nil {
			return errors.Wrap(err, "could not read file header")
		}
		if magic != CONTAINER_MAGIC {
			return errors.Wrapf(ErrInvalidMagic, "got %#08x", magic)
		}
		version := fr.Uint16()
		flag := fr.Uint16()
		filetype := fr.Tag()
		if err := fr.Err(); err != nil {
			return errors.Wrap(err, "could not read file header")
		}
		header = FileHeader{
			Version:  version,
			Flag:     flag,
			FileType: ReverseTag(filetype),
		}
		return nil
	})
	return header, err
}

// ReadOffsets decodes the pointer block at offset 12.
func ReadOffsets(rs io.ReadSeeker) (FileOffsets, error) {
	var offsets FileOffsets
	err := pio.AtOffset(rs, offsetsOffset, func(r io.Reader) error {
		fr := pio.NewFieldReader(r)
		tag := fr.Tag()
		if err := fr.Err(); err != nil {
			return errors.Wrap(err, "could not read file offsets")
		}
		if tag != TAG_INF {
			return errors.Wrapf(ErrInvalidTag, "file offsets: expected %q, got %q", TAG_INF, tag)
		}
		directoryOffset := fr.Uint64()
		fileLength := fr.Uint64()
		dataLength := fr.Uint64()
		fr.Skip(8)
		creationDate := fr.Int64()
		fr.Skip(8)
		if err := fr.Err(); err != nil {
			return errors.Wrap(err, "could not read file offsets")
		}
		offsets = FileOffsets{
			DirectoryOffset: directoryOffset,
			FileLength:      fileLength,
			DataLength:      dataLength,
			CreationDate:    time.Unix(creationDate, 0),
		}
		return nil
	})
	return offsets, err
}

// ReadProtection decodes the access-flag block at offset 64.
func ReadProtection(rs io.ReadSeeker) (FileProtection, error) {
	var protection FileProtection
	err := pio.AtOffset(rs, protectionOffset, func(r io.Reader) error {
		fr := pio.NewFieldReader(r)
		tag := fr.Tag()
		if err := fr.Err(); err != nil {
			return errors.Wrap(err, "could not read file protection")
		}
		if tag != TAG_PROT {
			return errors.Wrapf(ErrInvalidTag, "file protection: expected %q, got %q", TAG_PROT, tag)
		}
		flags := fr.Uint32()
		if err := fr.Err(); err != nil {
			return errors.Wrap(err, "could not read file protection")
		}
		protection = FileProtection{Flags: flags}
		return nil
	})
	return protection, err
}

// ReadDirectory decodes the entry table at the offset named by the offsets
// block. The declared table_length bounds the decode: an entry record that
// would start at or past that bound fails with ErrCorruptDirectory, and no
// partial table is returned.
func ReadDirectory(rs io.ReadSeeker, offsets FileOffsets) (Directory, error) {
	var directory Directory
	if offsets.DirectoryOffset > math.MaxInt64 {
		return directory, errors.Wrapf(ErrCorruptDirectory,
			"directory offset %d overflows", offsets.DirectoryOffset)
	}
	err := pio.AtOffset(rs, int64(offsets.DirectoryOffset), func(r io.Reader) error {
		fr := pio.NewFieldReader(r)
		tag := fr.Tag()
		if err := fr.Err(); err != nil {
			return errors.Wrap(err, "could not read directory")
		}
		version, ok := DirectoryVersionFromTag(tag)
		if !ok {
			return errors.Wrapf(ErrInvalidTag, "directory: unrecognized tag %q", tag)
		}
		flags := fr.Uint64()
		creationDate := fr.Int64()
		fileLength := fr.Uint64()
		dataLength := fr.Uint64()
		fr.Skip(8)
		tableCount := fr.Uint64()
		tableLength := fr.Uint32()
		fr.Skip(3)
		if err := fr.Err(); err != nil {
			return errors.Wrap(err, "could not read directory")
		}

		end := fr.Count() + int64(tableLength)
		entries := make([]EntryInfo, 0, entryCap(tableCount, tableLength))
		for i := uint64(0); i < tableCount; i++ {
			if fr.Count() >= end {
				return errors.Wrapf(ErrCorruptDirectory,
					"entry %d of %d would start past the declared table end", i, tableCount)
			}
			entry, err := readEntry(fr, version)
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}

		directory = Directory{
			Version:      version,
			Flags:        flags,
			CreationDate: time.Unix(creationDate, 0),
			FileLength:   fileLength,
			DataLength:   dataLength,
			Entries:      entries,
		}
		return nil
	})
	return directory, err
}

// readEntry decodes one entry record. The record shape depends on the
// directory revision: DIRECTORY_V2 and later carry a version field,
// DIRECTORY_V4 a second checksum. Any short read or bad filename rejects the
// whole directory; entries are never partially admitted.
func readEntry(fr *pio.FieldReader, version DirectoryVersion) (EntryInfo, error) {
	index := fr.Uint32()
	fr.Skip(1)
	offset := fr.Uint64()
	sizeOriginal := fr.Uint64()
	sizeStored := fr.Uint64()
	checksums := []uint32{fr.Uint32()}
	compression := CompressionFromByte(fr.Uint8())

	entryVersion := uint32(0)
	hasVersion := false
	if version >= DIRECTORY_V2 {
		entryVersion = fr.Uint32()
		hasVersion = true
	}
	if version >= DIRECTORY_V4 {
		checksums = append(checksums, fr.Uint32())
	}

	filenameLength := fr.Uint16()
	filename := fr.Bytes(int(filenameLength))
	if err := fr.Err(); err != nil {
		return EntryInfo{}, errors.Wrapf(ErrCorruptDirectory, "truncated entry record: %v", err)
	}
	if !utf8.Valid(filename) {
		return EntryInfo{}, errors.Wrapf(ErrCorruptDirectory, "entry %d: filename is not valid UTF-8", index)
	}

	return EntryInfo{
		Index:        index,
		Offset:       offset,
		SizeOriginal: sizeOriginal,
		SizeStored:   sizeStored,
		Checksums:    checksums,
		Compression:  compression,
		Version:      entryVersion,
		HasVersion:   hasVersion,
		Filename:     string(filename),
	}, nil
}

// entryCap bounds the table preallocation by what table_length could
// actually hold, so a hostile table_count cannot force a huge allocation.
func entryCap(tableCount uint64, tableLength uint32) int {
	max := uint64(tableLength) / entryMinSize
	if tableCount < max {
		max = tableCount
	}
	return int(max)
}
