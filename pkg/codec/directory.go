package codec

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"sort"
)

// directory header: CRC32(4) + Count(4)
const headerSize = 8

// per-record header: Tag(2) + Type(2) + ValueSize(4)
const recordHeaderSize = 8

// RawRecord is a raw interchange record: one (tag, type, value) entry of an
// image metadata block, not yet wrapped into an exif record. A nil Value
// means the decoder saw the tag but could not produce a value for it.
type RawRecord struct {
	Tag   uint16
	Type  uint16
	Value []byte
}

// HasValue reports whether the record carries a value.
func (r RawRecord) HasValue() bool {
	return r.Value != nil
}

// size returns the encoded size of the record in bytes.
func (r RawRecord) size() int {
	return recordHeaderSize + len(r.Value)
}

// EncodeDirectory serializes raw records into a framed directory blob.
// Records are written in ascending tag order regardless of input order;
// records without a value are skipped.
func EncodeDirectory(records []RawRecord) ([]byte, error) {
	present := make([]RawRecord, 0, len(records))
	for _, rec := range records {
		if rec.HasValue() {
			present = append(present, rec)
		}
	}
	sort.Slice(present, func(i, j int) bool {
		return present[i].Tag < present[j].Tag
	})

	size := headerSize
	for _, rec := range present {
		size += rec.size()
	}

	buf := make([]byte, size)
	binary.LittleEndian.PutUint32(buf[4:], uint32(len(present)))

	off := headerSize
	for _, rec := range present {
		binary.LittleEndian.PutUint16(buf[off:], rec.Tag)
		binary.LittleEndian.PutUint16(buf[off+2:], rec.Type)
		binary.LittleEndian.PutUint32(buf[off+4:], uint32(len(rec.Value)))
		copy(buf[off+recordHeaderSize:], rec.Value)
		off += rec.size()
	}

	binary.LittleEndian.PutUint32(buf[0:], crc32.ChecksumIEEE(buf[4:]))
	return buf, nil
}

// DecodeDirectory deserializes a framed directory blob back into raw
// records, validating the CRC before any record is parsed.
func DecodeDirectory(data []byte) ([]RawRecord, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("data too short for directory header: %d < %d", len(data), headerSize)
	}

	crc := binary.LittleEndian.Uint32(data[0:4])
	if actual := crc32.ChecksumIEEE(data[4:]); actual != crc {
		return nil, fmt.Errorf("directory CRC32 mismatch: %d != %d", crc, actual)
	}

	// Each record needs at least a record header, so the count field can
	// never exceed the remaining payload. Checked before the count is used
	// as an allocation hint.
	count := binary.LittleEndian.Uint32(data[4:8])
	if maxRecords := uint32((len(data) - headerSize) / recordHeaderSize); count > maxRecords {
		return nil, fmt.Errorf("record count %d exceeds payload capacity %d", count, maxRecords)
	}
	records := make([]RawRecord, 0, count)

	off := headerSize
	for i := uint32(0); i < count; i++ {
		if len(data) < off+recordHeaderSize {
			return nil, fmt.Errorf("data too short for record %d header", i)
		}
		rec := RawRecord{
			Tag:  binary.LittleEndian.Uint16(data[off:]),
			Type: binary.LittleEndian.Uint16(data[off+2:]),
		}
		valueSize := int(binary.LittleEndian.Uint32(data[off+4:]))
		off += recordHeaderSize

		if len(data) < off+valueSize {
			return nil, fmt.Errorf("data too short for record %d value: %d < %d", i, len(data)-off, valueSize)
		}
		rec.Value = make([]byte, valueSize)
		copy(rec.Value, data[off:off+valueSize])
		off += valueSize

		records = append(records, rec)
	}

	if off != len(data) {
		return nil, fmt.Errorf("trailing garbage after directory: %d bytes", len(data)-off)
	}

	return records, nil
}
