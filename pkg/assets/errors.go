package assets

import "errors"

// ErrNotFound is returned by Open when no regular file exists at the name.
var ErrNotFound = errors.New("assets: file not found")
