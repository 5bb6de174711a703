package exif

import (
	"sort"

	"github.com/mhoffman/tagdir/pkg/codec"
)

// Collection is an ordered, deduplicated set of metadata records keyed by
// tag identifier. Iteration always yields records in ascending tag order,
// never insertion order. At most one record is stored per tag, and a stored
// record always carries a value: adding a record without a value removes the
// record under that tag instead (the idiom for deletion).
//
// A Collection is not safe for concurrent mutation; callers that share one
// across goroutines must synchronize externally.
type Collection struct {
	records map[uint16]*Record
	reg     Registry
}

// New creates an empty collection backed by the default tag registry.
func New() *Collection {
	return NewWithRegistry(DefaultRegistry())
}

// NewWithRegistry creates an empty collection that resolves canonical tag
// types through the given registry.
func NewWithRegistry(reg Registry) *Collection {
	if reg == nil {
		reg = DefaultRegistry()
	}
	return &Collection{
		records: make(map[uint16]*Record),
		reg:     reg,
	}
}

// FromRecords builds a collection from a sequence of records, passing each
// through the Add policy. Given another collection's Records() this acts as
// a copy: the result holds clones and is independent of the source.
func FromRecords(records []*Record) *Collection {
	return FromRecordsWithRegistry(records, nil)
}

// FromRecordsWithRegistry is FromRecords with an explicit registry, so a
// copy of a collection built with NewWithRegistry keeps resolving canonical
// types the same way as its source. A nil registry falls back to the
// default.
func FromRecordsWithRegistry(records []*Record, reg Registry) *Collection {
	c := NewWithRegistry(reg)
	for _, rec := range records {
		c.Add(rec.Clone())
	}
	return c
}

// FromRaw builds a collection from raw interchange records. Records without
// a value are skipped; there is nothing to remove from an empty target.
func FromRaw(records []codec.RawRecord) *Collection {
	c := New()
	for _, raw := range records {
		if !raw.HasValue() {
			continue
		}
		c.Add(wrapRaw(raw))
	}
	return c
}

// FromRawFiltered builds a collection from raw interchange records,
// accepting only tags that the registry recognizes and that appear in the
// allow set. Rejected records are skipped before their value is even
// inspected. A nil allow set applies the recognition filter alone.
func FromRawFiltered(records []codec.RawRecord, allow *TagSet, reg Registry) *Collection {
	c := NewWithRegistry(reg)
	for _, raw := range records {
		if !c.reg.Recognizes(raw.Tag) {
			continue
		}
		if allow != nil && !allow.Contains(raw.Tag) {
			continue
		}
		if !raw.HasValue() {
			continue
		}
		c.Add(wrapRaw(raw))
	}
	return c
}

// wrapRaw converts a raw interchange record into a Record.
func wrapRaw(raw codec.RawRecord) *Record {
	value := make([]byte, len(raw.Value))
	copy(value, raw.Value)
	return &Record{
		Tag:   raw.Tag,
		Type:  DataType(raw.Type),
		Value: value,
	}
}

// Add applies the canonical insertion policy:
//   - a nil record is a no-op;
//   - a record without a value removes any record under its tag;
//   - a record with a value is inserted, replacing any prior record under
//     its tag.
//
// The collection never grows from adding a record without a value.
func (c *Collection) Add(rec *Record) {
	if rec == nil {
		return
	}
	if !rec.HasValue() {
		delete(c.records, rec.Tag)
		return
	}
	c.records[rec.Tag] = rec
}

// GetOrInsertDefault returns the record stored under the given tag. If none
// exists, a default record is materialized with the registry's canonical
// type for the tag, stored, and returned.
//
// Note that this mutates the collection on a miss: a read of an absent tag
// makes ContainsTag(tag) true afterwards. Use TryGet for a pure lookup.
func (c *Collection) GetOrInsertDefault(tag uint16) *Record {
	if rec, ok := c.records[tag]; ok {
		return rec
	}
	rec := &Record{
		Tag:   tag,
		Type:  c.reg.TypeOf(tag),
		Value: []byte{},
	}
	c.records[tag] = rec
	return rec
}

// TryGet returns the record stored under the given tag without mutating the
// collection.
func (c *Collection) TryGet(tag uint16) (*Record, bool) {
	rec, ok := c.records[tag]
	return rec, ok
}

// SetRaw unconditionally stores the record under the given tag, bypassing
// the value-absent-means-remove policy that Add enforces: a record without
// a value is stored literally. The stored record's tag is forced to the
// given tag so the mapping key always matches the record it holds.
func (c *Collection) SetRaw(tag uint16, rec *Record) {
	if rec == nil {
		return
	}
	rec.Tag = tag
	c.records[tag] = rec
}

// RemoveTag removes the record under the given tag identifier and reports
// whether a removal occurred. Removing an absent tag is not an error.
func (c *Collection) RemoveTag(tag uint16) bool {
	if _, ok := c.records[tag]; !ok {
		return false
	}
	delete(c.records, tag)
	return true
}

// RemoveRecord removes the record stored under the given record's tag and
// reports whether a removal occurred.
func (c *Collection) RemoveRecord(rec *Record) bool {
	if rec == nil {
		return false
	}
	return c.RemoveTag(rec.Tag)
}

// ContainsTag reports whether a record is stored under the given tag.
func (c *Collection) ContainsTag(tag uint16) bool {
	_, ok := c.records[tag]
	return ok
}

// ContainsRecord reports whether an equal record is present in the
// collection. This compares full record values, not just tags, and scans
// every stored record.
func (c *Collection) ContainsRecord(rec *Record) bool {
	if rec == nil {
		return false
	}
	for _, stored := range c.records {
		if stored.Equal(rec) {
			return true
		}
	}
	return false
}

// Len returns the number of stored records.
func (c *Collection) Len() int {
	return len(c.records)
}

// Clear removes all records.
func (c *Collection) Clear() {
	c.records = make(map[uint16]*Record)
}

// Synchronized reports whether the collection provides internal locking.
// It never does; it exists for callers probing container capabilities.
func (c *Collection) Synchronized() bool {
	return false
}

// Registry returns the registry the collection resolves canonical types
// through.
func (c *Collection) Registry() Registry {
	return c.reg
}

// sortedTags returns the stored tag identifiers in ascending order. The
// order is re-derived on every call.
func (c *Collection) sortedTags() []uint16 {
	tags := make([]uint16, 0, len(c.records))
	for tag := range c.records {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		return tags[i] < tags[j]
	})
	return tags
}

// Tags returns the stored tag identifiers in ascending order.
func (c *Collection) Tags() []uint16 {
	return c.sortedTags()
}

// Records returns a snapshot of the stored records in ascending tag order.
func (c *Collection) Records() []*Record {
	tags := c.sortedTags()
	records := make([]*Record, 0, len(tags))
	for _, tag := range tags {
		records = append(records, c.records[tag])
	}
	return records
}

// RawRecords exports the stored records as raw interchange records in
// ascending tag order, ready for directory encoding.
func (c *Collection) RawRecords() []codec.RawRecord {
	tags := c.sortedTags()
	raws := make([]codec.RawRecord, 0, len(tags))
	for _, tag := range tags {
		rec := c.records[tag]
		value := make([]byte, len(rec.Value))
		copy(value, rec.Value)
		raws = append(raws, codec.RawRecord{
			Tag:   rec.Tag,
			Type:  uint16(rec.Type),
			Value: value,
		})
	}
	return raws
}

// At returns the record at the given zero-based position in ascending tag
// order. This re-derives the key order on every call and is O(n); it exists
// only to support index-based serialization protocols. Prefer Iter or
// Records for iteration.
func (c *Collection) At(i int) (*Record, error) {
	tags := c.sortedTags()
	if i < 0 || i >= len(tags) {
		return nil, ErrIndexOutOfRange
	}
	return c.records[tags[i]], nil
}

// SetAt is not supported: records are addressed by tag, and positions shift
// as tags come and go. It always returns ErrUnsupportedOperation and leaves
// the collection unchanged.
func (c *Collection) SetAt(i int, rec *Record) error {
	return ErrUnsupportedOperation
}

// CopyTo copies the stored records in ascending tag order into dst starting
// at the given offset.
func (c *Collection) CopyTo(dst []*Record, offset int) error {
	if offset < 0 {
		return ErrIndexOutOfRange
	}
	if len(dst)-offset < len(c.records) {
		return ErrIndexOutOfRange
	}
	for i, rec := range c.Records() {
		dst[offset+i] = rec
	}
	return nil
}

// Iter returns a restartable iterator over the records in ascending tag
// order. The tag order is captured when the iterator is created; records
// removed afterwards are skipped, records added afterwards are not seen.
func (c *Collection) Iter() *Iterator {
	return &Iterator{
		c:    c,
		tags: c.sortedTags(),
		pos:  -1,
	}
}

// Iterator walks a collection's records in ascending tag order.
type Iterator struct {
	c    *Collection
	tags []uint16
	pos  int
}

// Next advances to the next record and reports whether one is available.
func (it *Iterator) Next() bool {
	for it.pos+1 < len(it.tags) {
		it.pos++
		if _, ok := it.c.records[it.tags[it.pos]]; ok {
			return true
		}
	}
	it.pos = len(it.tags)
	return false
}

// Record returns the current record, or nil before the first Next or after
// the last.
func (it *Iterator) Record() *Record {
	if it.pos < 0 || it.pos >= len(it.tags) {
		return nil
	}
	return it.c.records[it.tags[it.pos]]
}

// Reset rewinds the iterator to the start of the same tag snapshot.
func (it *Iterator) Reset() {
	it.pos = -1
}
