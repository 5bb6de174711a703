// Package catalog persists encoded tag directories keyed by image id.
package catalog

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/mhoffman/tagdir/pkg/codec"
)

// ErrNotFound is returned when no directory is stored under an image id.
var ErrNotFound = errors.New("catalog: image not found")

// Catalog stores framed tag directories in a pebble keyspace, one entry per
// image. Entries are addressed by ksuid image ids, so List returns ids in
// roughly chronological order.
type Catalog struct {
	db *pebble.DB
}

// Open opens (or creates) a catalog at the given path.
func Open(path string) (*Catalog, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Create stores a new directory under a fresh image id and returns the id.
func (c *Catalog) Create(records []codec.RawRecord) (ksuid.KSUID, error) {
	id := ksuid.New()
	if err := c.Put(id, records); err != nil {
		return ksuid.Nil, err
	}
	return id, nil
}

// Put stores the directory under the given image id, replacing any prior
// entry.
func (c *Catalog) Put(id ksuid.KSUID, records []codec.RawRecord) error {
	data, err := codec.EncodeDirectory(records)
	if err != nil {
		return fmt.Errorf("failed to encode directory: %w", err)
	}
	if err := c.db.Set(id.Bytes(), data, pebble.Sync); err != nil {
		return fmt.Errorf("failed to store directory: %w", err)
	}
	return nil
}

// Get returns the decoded directory stored under the given image id. The
// frame CRC is validated before any record is returned.
func (c *Catalog) Get(id ksuid.KSUID) ([]codec.RawRecord, error) {
	data, closer, err := c.db.Get(id.Bytes())
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	defer closer.Close()

	records, err := codec.DecodeDirectory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode directory %s: %w", id, err)
	}
	return records, nil
}

// Delete removes the entry under the given image id. Deleting an absent id
// is not an error.
func (c *Catalog) Delete(id ksuid.KSUID) error {
	if err := c.db.Delete(id.Bytes(), pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete directory: %w", err)
	}
	return nil
}

// List returns the ids of all stored entries.
func (c *Catalog) List() ([]ksuid.KSUID, error) {
	iter, err := c.db.NewIter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate catalog: %w", err)
	}
	defer iter.Close()

	var ids []ksuid.KSUID
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key())
		if err != nil {
			continue // not an image entry
		}
		ids = append(ids, id)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to iterate catalog: %w", err)
	}
	return ids, nil
}

// Len returns the number of stored entries.
func (c *Catalog) Len() (int, error) {
	ids, err := c.List()
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}
