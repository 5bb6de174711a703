package api

import (
	"github.com/segmentio/ksuid"

	"github.com/mhoffman/tagdir/pkg/codec"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// TagResponse represents a single metadata record in API responses
type TagResponse struct {
	Tag   uint16 `json:"tag"`
	Type  string `json:"type"`
	Count int    `json:"count"`
	Value []byte `json:"value"` // base64 in JSON
}

// SetTagRequest represents a tag write request
type SetTagRequest struct {
	Type  uint16 `json:"type"`
	Value []byte `json:"value"` // base64 in JSON
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port   int
	Bind   string
	APIKey string
}

// Cataloger defines the catalog operations the API depends on
type Cataloger interface {
	Create(records []codec.RawRecord) (ksuid.KSUID, error)
	Get(id ksuid.KSUID) ([]codec.RawRecord, error)
	Put(id ksuid.KSUID, records []codec.RawRecord) error
	Delete(id ksuid.KSUID) error
	List() ([]ksuid.KSUID, error)
}
