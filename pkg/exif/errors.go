package exif

// Errors
var (
	ErrUnsupportedOperation = &CollectionError{"positional writes are not supported"}
	ErrIndexOutOfRange      = &CollectionError{"index out of range"}
)

// CollectionError represents a tag collection error
type CollectionError struct {
	Message string
}

func (e *CollectionError) Error() string {
	return e.Message
}
