// Package affinity reads the proprietary container format used by Affinity
// applications to store asset bundles, including color palettes.
//
// A container is a flat archive with a fairly basic layout:
//
//   - file header at offset 0: 32-bit magic, version, flag, and a 4-byte
//     filetype tag (stored byte-reversed)
//   - offsets block at offset 12, tagged "#Inf": directory offset, file and
//     data lengths, creation time
//   - protection block at offset 64, tagged "Prot": access flags
//   - payload blobs, each prefixed with a local "#Fil" tag
//   - a directory of entry records at the offset named by the "#Inf" block
//
// The directory tag is one of "#FAT", "#FT2", "#FT3" or "#FT4" and doubles as
// a version marker that governs the shape of each entry record. All integers
// are little-endian. Entry payloads are stored raw, zlib-compressed, or as a
// complete zstd frame.
//
// The package is strictly read-only. Entry checksums are decoded and exposed
// but never verified against payload bytes.
package affinity
