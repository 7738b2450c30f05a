package assets

import (
	"context"
	"io"
	"time"
)

// FileSystem is the filesystem collaborator behind static file detection.
// Names are slash-separated paths as produced by joining the site physical
// path with the request path.
type FileSystem interface {
	// Exists reports whether a regular file exists at name.
	Exists(ctx context.Context, name string) bool

	// Open opens the file at name for streaming. The caller closes File.Body.
	Open(ctx context.Context, name string) (*File, error)
}

// File is an opened static asset.
type File struct {
	// Body is the file content. If it also implements io.ReadSeeker,
	// range requests and conditional GETs are supported.
	Body        io.ReadCloser
	ModTime     time.Time
	Name        string
	ContentType string // empty = detect from extension
	Size        int64
}
