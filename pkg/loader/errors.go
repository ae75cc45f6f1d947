package loader

import (
	"errors"
	"fmt"
)

// ErrNoRootElement is returned when the input holds no XML element at all.
var ErrNoRootElement = errors.New("document has no root element")

// IngestError reports why a catalog could not be loaded. Ingestion is
// all-or-nothing: when an IngestError is returned no terms are exposed.
type IngestError struct {
	Path string // source path, empty for in-memory readers
	Op   string // "open", "decompress", "parse"
	Line int    // 1-based line of the failure when known
	Err  error
}

func (e *IngestError) Error() string {
	src := e.Path
	if src == "" {
		src = "<input>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("ingest %s: %s (line %d): %v", src, e.Op, e.Line, e.Err)
	}
	return fmt.Sprintf("ingest %s: %s: %v", src, e.Op, e.Err)
}

// Unwrap allows errors.Is and errors.As to see the cause
func (e *IngestError) Unwrap() error {
	return e.Err
}

// IsIngestError reports whether err is, or wraps, an *IngestError.
func IsIngestError(err error) bool {
	var ie *IngestError
	return errors.As(err, &ie)
}
