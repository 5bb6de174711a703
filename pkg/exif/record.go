package exif

import (
	"bytes"
	"fmt"
)

// Record is a single metadata field: a numeric tag identifier, the field's
// declared data type, and its raw value bytes. A nil Value means the value
// is absent; an empty non-nil slice is a present, zero-length value.
type Record struct {
	Tag   uint16
	Type  DataType
	Value []byte
}

// NewRecord creates a record with a present value.
func NewRecord(tag uint16, typ DataType, value []byte) *Record {
	if value == nil {
		value = []byte{}
	}
	return &Record{
		Tag:   tag,
		Type:  typ,
		Value: value,
	}
}

// HasValue reports whether the record carries a value. Records without a
// value act as removal markers when passed to Collection.Add.
func (r *Record) HasValue() bool {
	return r != nil && r.Value != nil
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	clone := &Record{
		Tag:  r.Tag,
		Type: r.Type,
	}
	if r.Value != nil {
		clone.Value = make([]byte, len(r.Value))
		copy(clone.Value, r.Value)
	}
	return clone
}

// Equal reports whether two records carry the same tag, type and value bytes.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.Tag != other.Tag || r.Type != other.Type {
		return false
	}
	if (r.Value == nil) != (other.Value == nil) {
		return false
	}
	return bytes.Equal(r.Value, other.Value)
}

// Count returns the number of elements the value holds for the declared type.
func (r *Record) Count() int {
	if !r.HasValue() {
		return 0
	}
	return len(r.Value) / r.Type.ElementSize()
}

func (r *Record) String() string {
	if !r.HasValue() {
		return fmt.Sprintf("tag %d (%s): <absent>", r.Tag, r.Type)
	}
	return fmt.Sprintf("tag %d (%s): %d bytes", r.Tag, r.Type, len(r.Value))
}
