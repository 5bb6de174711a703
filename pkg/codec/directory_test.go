package codec

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"testing"
)

func TestDirectory_EncodeDecodeRoundTrip(t *testing.T) {
	testCases := []struct {
		name    string
		records []RawRecord
	}{
		{
			name:    "empty directory",
			records: nil,
		},
		{
			name: "single record",
			records: []RawRecord{
				{Tag: 274, Type: 3, Value: []byte{1, 0}},
			},
		},
		{
			name: "multiple records",
			records: []RawRecord{
				{Tag: 256, Type: 4, Value: []byte{0, 4, 0, 0}},
				{Tag: 257, Type: 4, Value: []byte{0, 3, 0, 0}},
				{Tag: 271, Type: 2, Value: []byte("ACME\x00")},
			},
		},
		{
			name: "zero-length value",
			records: []RawRecord{
				{Tag: 305, Type: 2, Value: []byte{}},
			},
		},
		{
			name: "binary value",
			records: []RawRecord{
				{Tag: 37510, Type: 7, Value: []byte{0x00, 0xFF, 0xFE, 0x01}},
			},
		},
		{
			name: "large value",
			records: []RawRecord{
				{Tag: 270, Type: 2, Value: bytes.Repeat([]byte("d"), 8192)},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := EncodeDirectory(tc.records)
			if err != nil {
				t.Fatalf("EncodeDirectory failed: %v", err)
			}

			decoded, err := DecodeDirectory(encoded)
			if err != nil {
				t.Fatalf("DecodeDirectory failed: %v", err)
			}

			if len(decoded) != len(tc.records) {
				t.Fatalf("Record count mismatch: got %d, want %d", len(decoded), len(tc.records))
			}
			for i, rec := range tc.records {
				if decoded[i].Tag != rec.Tag {
					t.Errorf("Record %d tag mismatch: got %d, want %d", i, decoded[i].Tag, rec.Tag)
				}
				if decoded[i].Type != rec.Type {
					t.Errorf("Record %d type mismatch: got %d, want %d", i, decoded[i].Type, rec.Type)
				}
				if !bytes.Equal(decoded[i].Value, rec.Value) {
					t.Errorf("Record %d value mismatch", i)
				}
			}
		})
	}
}

func TestDirectory_EncodeSortsByTag(t *testing.T) {
	records := []RawRecord{
		{Tag: 305, Type: 2, Value: []byte("z")},
		{Tag: 256, Type: 4, Value: []byte{1, 0, 0, 0}},
		{Tag: 274, Type: 3, Value: []byte{1, 0}},
	}

	encoded, err := EncodeDirectory(records)
	if err != nil {
		t.Fatalf("EncodeDirectory failed: %v", err)
	}
	decoded, err := DecodeDirectory(encoded)
	if err != nil {
		t.Fatalf("DecodeDirectory failed: %v", err)
	}

	want := []uint16{256, 274, 305}
	for i, tag := range want {
		if decoded[i].Tag != tag {
			t.Errorf("Position %d: got tag %d, want %d", i, decoded[i].Tag, tag)
		}
	}
}

func TestDirectory_EncodeSkipsAbsentValues(t *testing.T) {
	records := []RawRecord{
		{Tag: 256, Type: 4, Value: []byte{1, 0, 0, 0}},
		{Tag: 306, Type: 2, Value: nil},
	}

	encoded, err := EncodeDirectory(records)
	if err != nil {
		t.Fatalf("EncodeDirectory failed: %v", err)
	}
	decoded, err := DecodeDirectory(encoded)
	if err != nil {
		t.Fatalf("DecodeDirectory failed: %v", err)
	}

	if len(decoded) != 1 {
		t.Fatalf("Expected value-less record to be skipped, got %d records", len(decoded))
	}
	if decoded[0].Tag != 256 {
		t.Errorf("Expected tag 256, got %d", decoded[0].Tag)
	}
}

func TestDirectory_DecodeErrors(t *testing.T) {
	valid, err := EncodeDirectory([]RawRecord{
		{Tag: 274, Type: 3, Value: []byte{1, 0}},
	})
	if err != nil {
		t.Fatalf("EncodeDirectory failed: %v", err)
	}

	t.Run("short header", func(t *testing.T) {
		if _, err := DecodeDirectory(valid[:4]); err == nil {
			t.Error("Expected error for truncated header")
		}
	})

	t.Run("corrupted payload", func(t *testing.T) {
		corrupt := make([]byte, len(valid))
		copy(corrupt, valid)
		corrupt[len(corrupt)-1] ^= 0xFF
		if _, err := DecodeDirectory(corrupt); err == nil {
			t.Error("Expected CRC mismatch for corrupted payload")
		}
	})

	t.Run("truncated record", func(t *testing.T) {
		// Re-frame a truncated payload with a valid CRC so the record
		// bounds check is what fires.
		truncated := make([]byte, len(valid)-1)
		copy(truncated, valid)
		reframe(truncated)
		if _, err := DecodeDirectory(truncated); err == nil {
			t.Error("Expected error for truncated record")
		}
	})

	t.Run("count exceeds payload", func(t *testing.T) {
		// A bare header claiming 2^26 records must be rejected up front,
		// before the count is used to size the result slice.
		oversized := make([]byte, headerSize)
		binary.LittleEndian.PutUint32(oversized[4:], 1<<26)
		reframe(oversized)
		if _, err := DecodeDirectory(oversized); err == nil {
			t.Error("Expected error for count larger than payload")
		}
	})

	t.Run("count overstates records", func(t *testing.T) {
		// One record of payload but a count of two.
		overstated := make([]byte, len(valid))
		copy(overstated, valid)
		binary.LittleEndian.PutUint32(overstated[4:], 2)
		reframe(overstated)
		if _, err := DecodeDirectory(overstated); err == nil {
			t.Error("Expected error for overstated count")
		}
	})

	t.Run("trailing garbage", func(t *testing.T) {
		padded := append(append([]byte{}, valid...), 0xAA)
		reframe(padded)
		if _, err := DecodeDirectory(padded); err == nil {
			t.Error("Expected error for trailing garbage")
		}
	})
}

// reframe rewrites the CRC header over the (possibly altered) payload.
func reframe(data []byte) {
	binary.LittleEndian.PutUint32(data[0:], crc32.ChecksumIEEE(data[4:]))
}
