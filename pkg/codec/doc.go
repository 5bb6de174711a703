// Package codec provides binary serialization for raw tag directories.
//
// A raw tag directory is the interchange form of an image's metadata block:
// a flat sequence of (tag, type, value) entries as produced by a low-level
// image decoder, before the entries are wrapped into exif records. The codec
// frames a directory with integrity checking so directories can be stored,
// transported and validated as a single blob.
//
// # Directory Format
//
// Directories are serialized in a binary format with the following structure:
//
//	[CRC32(4)][Count(4)] then, per record: [Tag(2)][Type(2)][ValueSize(4)][Value]
//
// Fields:
//   - CRC32: 32-bit CRC checksum over everything after the CRC field (little-endian)
//   - Count: 32-bit unsigned number of records (little-endian)
//   - Tag: 16-bit tag identifier (little-endian)
//   - Type: 16-bit declared data type code (little-endian)
//   - ValueSize: 32-bit unsigned value length in bytes (little-endian)
//   - Value: variable-length value data
//
// Records are written in ascending tag order; decoding does not require it
// but encoding always produces it, so equal directories have equal bytes.
//
// # Error Handling
//
// Decoding returns descriptive errors for truncated headers, truncated
// records and CRC mismatches. A directory that fails CRC validation must be
// treated as corrupt in its entirety; there is no partial recovery.
package codec
