package exif

// TagSet is a set of tag identifiers used to restrict which interchange
// records are accepted during filtered ingestion.
type TagSet struct {
	ids map[uint16]struct{}
}

// NewTagSet creates a set containing the given tag identifiers.
func NewTagSet(ids ...uint16) *TagSet {
	ts := &TagSet{
		ids: make(map[uint16]struct{}, len(ids)),
	}
	for _, id := range ids {
		ts.Put(id)
	}
	return ts
}

// Put adds a tag identifier to the set.
func (ts *TagSet) Put(id uint16) {
	ts.ids[id] = struct{}{}
}

// Contains reports whether the set holds the given tag identifier.
func (ts *TagSet) Contains(id uint16) bool {
	_, ok := ts.ids[id]
	return ok
}

// Len returns the number of tag identifiers in the set.
func (ts *TagSet) Len() int {
	return len(ts.ids)
}
