package exif

import (
	"testing"

	"github.com/mhoffman/tagdir/pkg/codec"
)

func TestCollection_AscendingTagOrder(t *testing.T) {
	c := New()

	// Insert out of order
	c.Add(NewRecord(TagSoftware, TypeASCII, []byte("tagdir")))
	c.Add(NewRecord(TagImageWidth, TypeLong, []byte{0, 4, 0, 0}))
	c.Add(NewRecord(TagOrientation, TypeShort, []byte{1, 0}))
	c.Add(NewRecord(TagImageLength, TypeLong, []byte{0, 3, 0, 0}))

	want := []uint16{TagImageWidth, TagImageLength, TagOrientation, TagSoftware}
	got := c.Tags()

	if len(got) != len(want) {
		t.Fatalf("Expected %d tags, got %d", len(want), len(got))
	}
	for i, tag := range want {
		if got[i] != tag {
			t.Errorf("Tag order mismatch at %d: got %d, want %d", i, got[i], tag)
		}
	}

	// Iterator yields the same order
	it := c.Iter()
	for i := 0; it.Next(); i++ {
		if it.Record().Tag != want[i] {
			t.Errorf("Iterator order mismatch at %d: got %d, want %d", i, it.Record().Tag, want[i])
		}
	}

	// Restartable
	it.Reset()
	if !it.Next() || it.Record().Tag != want[0] {
		t.Error("Expected iterator to restart from the first tag after Reset")
	}
}

func TestCollection_AddWithoutValueRemoves(t *testing.T) {
	c := New()
	c.Add(NewRecord(TagModel, TypeASCII, []byte("X100")))

	if !c.ContainsTag(TagModel) {
		t.Fatal("Expected tag to be present after Add")
	}

	// Absent value removes the existing record
	c.Add(&Record{Tag: TagModel, Type: TypeASCII})
	if c.ContainsTag(TagModel) {
		t.Error("Expected tag to be removed by value-less Add")
	}
	if c.Len() != 0 {
		t.Errorf("Expected empty collection, got %d records", c.Len())
	}

	// Absent value on a missing tag is a no-op
	c.Add(&Record{Tag: TagMake, Type: TypeASCII})
	if c.Len() != 0 {
		t.Errorf("Expected value-less Add to never grow the collection, got %d records", c.Len())
	}

	// Nil record is a no-op
	c.Add(nil)
	if c.Len() != 0 {
		t.Errorf("Expected nil Add to be a no-op, got %d records", c.Len())
	}
}

func TestCollection_AddReplacesSameTag(t *testing.T) {
	c := New()
	c.Add(NewRecord(TagArtist, TypeASCII, []byte("first")))
	c.Add(NewRecord(TagArtist, TypeASCII, []byte("second")))

	if c.Len() != 1 {
		t.Fatalf("Expected 1 record after replacement, got %d", c.Len())
	}
	rec, ok := c.TryGet(TagArtist)
	if !ok {
		t.Fatal("Expected tag to be present")
	}
	if string(rec.Value) != "second" {
		t.Errorf("Expected replacement value, got %q", rec.Value)
	}
}

func TestCollection_GetOrInsertDefault(t *testing.T) {
	c := New()

	if c.ContainsTag(TagXResolution) {
		t.Fatal("Expected tag to be absent initially")
	}

	rec := c.GetOrInsertDefault(TagXResolution)
	if rec.Tag != TagXResolution {
		t.Errorf("Expected default record tag %d, got %d", TagXResolution, rec.Tag)
	}
	if rec.Type != TypeRational {
		t.Errorf("Expected canonical type RATIONAL, got %s", rec.Type)
	}

	// The read materialized the record
	if !c.ContainsTag(TagXResolution) {
		t.Error("Expected tag to be present after default materialization")
	}

	// A second read returns the same stored record
	if again := c.GetOrInsertDefault(TagXResolution); again != rec {
		t.Error("Expected repeated reads to return the same record")
	}
}

func TestCollection_TryGetDoesNotMutate(t *testing.T) {
	c := New()

	if _, ok := c.TryGet(TagDateTime); ok {
		t.Fatal("Expected TryGet miss on empty collection")
	}
	if c.Len() != 0 {
		t.Error("Expected TryGet to leave the collection unchanged")
	}
}

func TestCollection_SetRawBypassesRemovePolicy(t *testing.T) {
	c := New()
	c.Add(NewRecord(TagFlash, TypeShort, []byte{1, 0}))

	// SetRaw stores a value-less record literally instead of removing
	c.SetRaw(TagFlash, &Record{Tag: TagFlash, Type: TypeShort})
	rec, ok := c.TryGet(TagFlash)
	if !ok {
		t.Fatal("Expected tag to remain present after SetRaw")
	}
	if rec.HasValue() {
		t.Error("Expected SetRaw to store the value-less record as-is")
	}

	// The stored record's tag is forced to the keyed tag
	c.SetRaw(TagOrientation, NewRecord(TagFlash, TypeShort, []byte{3, 0}))
	rec, ok = c.TryGet(TagOrientation)
	if !ok {
		t.Fatal("Expected record under the keyed tag")
	}
	if rec.Tag != TagOrientation {
		t.Errorf("Expected stored record tag %d, got %d", TagOrientation, rec.Tag)
	}
}

func TestCollection_Remove(t *testing.T) {
	c := New()
	rec := NewRecord(TagCopyright, TypeASCII, []byte("cc"))
	c.Add(rec)

	if !c.RemoveTag(TagCopyright) {
		t.Error("Expected RemoveTag to report a removal")
	}
	if c.RemoveTag(TagCopyright) {
		t.Error("Expected RemoveTag on absent tag to report false")
	}

	c.Add(rec)
	if !c.RemoveRecord(rec) {
		t.Error("Expected RemoveRecord to report a removal")
	}
	if c.RemoveRecord(rec) {
		t.Error("Expected RemoveRecord on absent tag to report false")
	}
	if c.RemoveRecord(nil) {
		t.Error("Expected RemoveRecord(nil) to report false")
	}
}

func TestCollection_ContainsRecordScansValues(t *testing.T) {
	c := New()
	c.Add(NewRecord(TagMake, TypeASCII, []byte("ACME")))

	// Equal but distinct instance is found
	if !c.ContainsRecord(NewRecord(TagMake, TypeASCII, []byte("ACME"))) {
		t.Error("Expected value-equal record to be contained")
	}
	// Same tag, different value is not
	if c.ContainsRecord(NewRecord(TagMake, TypeASCII, []byte("other"))) {
		t.Error("Expected record with different value to not be contained")
	}
}

func TestCollection_Uniqueness(t *testing.T) {
	c := New()
	c.Add(NewRecord(TagISOSpeedRatings, TypeShort, []byte{100, 0}))
	c.SetRaw(TagISOSpeedRatings, NewRecord(TagISOSpeedRatings, TypeShort, []byte{200, 0}))
	c.GetOrInsertDefault(TagISOSpeedRatings)

	seen := make(map[uint16]bool)
	for _, rec := range c.Records() {
		if seen[rec.Tag] {
			t.Fatalf("Duplicate tag %d in collection", rec.Tag)
		}
		seen[rec.Tag] = true
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 record, got %d", c.Len())
	}
}

func TestCollection_FromRawFiltered(t *testing.T) {
	raws := []codec.RawRecord{
		{Tag: TagImageWidth, Type: uint16(TypeLong), Value: []byte{0, 4, 0, 0}},   // allowed
		{Tag: TagImageLength, Type: uint16(TypeLong), Value: []byte{0, 3, 0, 0}}, // recognized, not allowed
		{Tag: 60000, Type: uint16(TypeUndefined), Value: []byte{1}},              // unrecognized
	}
	allow := NewTagSet(TagImageWidth, 60000)

	c := FromRawFiltered(raws, allow, DefaultRegistry())

	if c.Len() != 1 {
		t.Fatalf("Expected 1 record after filtering, got %d", c.Len())
	}
	if !c.ContainsTag(TagImageWidth) {
		t.Error("Expected allowed, recognized tag to be present")
	}
	if c.ContainsTag(TagImageLength) {
		t.Error("Expected recognized but not allowed tag to be rejected")
	}
	if c.ContainsTag(60000) {
		t.Error("Expected unrecognized tag to be rejected even when allowed")
	}
}

func TestCollection_FromRawSkipsAbsentValues(t *testing.T) {
	raws := []codec.RawRecord{
		{Tag: TagOrientation, Type: uint16(TypeShort), Value: []byte{1, 0}},
		{Tag: TagDateTime, Type: uint16(TypeASCII), Value: nil},
	}

	c := FromRaw(raws)
	if c.Len() != 1 {
		t.Fatalf("Expected 1 record, got %d", c.Len())
	}
	if c.ContainsTag(TagDateTime) {
		t.Error("Expected value-less raw record to be skipped")
	}
}

func TestCollection_CopyIndependence(t *testing.T) {
	src := New()
	src.Add(NewRecord(TagMake, TypeASCII, []byte("ACME")))
	src.Add(NewRecord(TagModel, TypeASCII, []byte("X100")))

	dup := FromRecords(src.Records())

	if dup.Len() != src.Len() {
		t.Fatalf("Expected copy to have %d records, got %d", src.Len(), dup.Len())
	}
	for _, rec := range src.Records() {
		if !dup.ContainsRecord(rec) {
			t.Errorf("Expected copy to contain record for tag %d", rec.Tag)
		}
	}

	// Mutating the copy leaves the source untouched
	dup.RemoveTag(TagMake)
	dup.GetOrInsertDefault(TagSoftware)
	got, ok := dup.TryGet(TagModel)
	if !ok {
		t.Fatal("Expected copied record to be present")
	}
	got.Value[0] = 'Y'

	if !src.ContainsTag(TagMake) {
		t.Error("Expected source to keep record removed from the copy")
	}
	if src.ContainsTag(TagSoftware) {
		t.Error("Expected source to not see records added to the copy")
	}
	if orig, _ := src.TryGet(TagModel); string(orig.Value) != "X100" {
		t.Errorf("Expected source value to be untouched, got %q", orig.Value)
	}
}

// vendorRegistry treats one private tag as canonical ASCII.
type vendorRegistry struct{}

func (vendorRegistry) TypeOf(tag uint16) DataType {
	if tag == 60001 {
		return TypeASCII
	}
	return TypeUndefined
}

func (vendorRegistry) Recognizes(tag uint16) bool {
	return tag == 60001
}

func TestCollection_CopyKeepsRegistry(t *testing.T) {
	src := NewWithRegistry(vendorRegistry{})
	src.Add(NewRecord(TagMake, TypeASCII, []byte("ACME")))

	dup := FromRecordsWithRegistry(src.Records(), src.Registry())

	rec := dup.GetOrInsertDefault(60001)
	if rec.Type != TypeASCII {
		t.Errorf("Expected copy to materialize with the source registry's type, got %s", rec.Type)
	}

	// The plain copy path falls back to the default registry.
	fallback := FromRecords(src.Records())
	if rec := fallback.GetOrInsertDefault(60001); rec.Type != TypeUndefined {
		t.Errorf("Expected default registry type for unrecognized tag, got %s", rec.Type)
	}
}

func TestCollection_PositionalAccess(t *testing.T) {
	c := New()
	c.Add(NewRecord(TagModel, TypeASCII, []byte("X100")))
	c.Add(NewRecord(TagImageWidth, TypeLong, []byte{0, 4, 0, 0}))

	first, err := c.At(0)
	if err != nil {
		t.Fatalf("At(0) failed: %v", err)
	}
	if first.Tag != TagImageWidth {
		t.Errorf("Expected position 0 to hold the lowest tag, got %d", first.Tag)
	}

	if _, err := c.At(2); err != ErrIndexOutOfRange {
		t.Errorf("Expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := c.At(-1); err != ErrIndexOutOfRange {
		t.Errorf("Expected ErrIndexOutOfRange for negative index, got %v", err)
	}
}

func TestCollection_SetAtAlwaysFails(t *testing.T) {
	c := New()
	c.Add(NewRecord(TagModel, TypeASCII, []byte("X100")))

	for _, i := range []int{-1, 0, 1, 100} {
		if err := c.SetAt(i, NewRecord(TagMake, TypeASCII, []byte("x"))); err != ErrUnsupportedOperation {
			t.Errorf("SetAt(%d): expected ErrUnsupportedOperation, got %v", i, err)
		}
	}

	// Collection unchanged
	if c.Len() != 1 || !c.ContainsTag(TagModel) {
		t.Error("Expected collection to be unchanged after failed positional writes")
	}
}

func TestCollection_CopyTo(t *testing.T) {
	c := New()
	c.Add(NewRecord(TagModel, TypeASCII, []byte("X100")))
	c.Add(NewRecord(TagImageWidth, TypeLong, []byte{0, 4, 0, 0}))

	dst := make([]*Record, 3)
	if err := c.CopyTo(dst, 1); err != nil {
		t.Fatalf("CopyTo failed: %v", err)
	}
	if dst[0] != nil {
		t.Error("Expected slot before offset to be untouched")
	}
	if dst[1] == nil || dst[1].Tag != TagImageWidth {
		t.Error("Expected records copied in ascending tag order from offset")
	}

	if err := c.CopyTo(make([]*Record, 1), 0); err != ErrIndexOutOfRange {
		t.Errorf("Expected ErrIndexOutOfRange for short destination, got %v", err)
	}
	if err := c.CopyTo(dst, -1); err != ErrIndexOutOfRange {
		t.Errorf("Expected ErrIndexOutOfRange for negative offset, got %v", err)
	}
}

func TestCollection_RawRoundTrip(t *testing.T) {
	c := New()
	c.Add(NewRecord(TagOrientation, TypeShort, []byte{6, 0}))
	c.Add(NewRecord(TagMake, TypeASCII, []byte("ACME")))

	encoded, err := codec.EncodeDirectory(c.RawRecords())
	if err != nil {
		t.Fatalf("EncodeDirectory failed: %v", err)
	}
	decoded, err := codec.DecodeDirectory(encoded)
	if err != nil {
		t.Fatalf("DecodeDirectory failed: %v", err)
	}

	back := FromRaw(decoded)
	if back.Len() != c.Len() {
		t.Fatalf("Expected %d records after round trip, got %d", c.Len(), back.Len())
	}
	for _, rec := range c.Records() {
		if !back.ContainsRecord(rec) {
			t.Errorf("Expected round-tripped collection to contain tag %d", rec.Tag)
		}
	}
}
