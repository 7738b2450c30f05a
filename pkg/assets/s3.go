package assets

import (
	"context"
	"errors"
	"path"

	"github.com/dmitrymomot/dispatch/pkg/storage"
)

// objectFS serves assets from an object store.
type objectFS struct {
	store storage.Reader
}

// S3 returns a FileSystem backed by an object store reader (see pkg/storage).
// Names map directly to object keys.
func S3(store storage.Reader) FileSystem {
	return objectFS{store: store}
}

func (o objectFS) Exists(ctx context.Context, name string) bool {
	_, err := o.store.Head(ctx, name)
	return err == nil
}

func (o objectFS) Open(ctx context.Context, name string) (*File, error) {
	obj, err := o.store.Get(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errors.Join(ErrNotFound, err)
		}
		return nil, err
	}

	return &File{
		Body:        obj.Body,
		Name:        path.Base(name),
		Size:        obj.Size,
		ModTime:     obj.ModTime,
		ContentType: obj.ContentType,
	}, nil
}
