package assets

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// osFS probes the host filesystem.
type osFS struct{}

// OS returns a FileSystem over the host filesystem. Names are absolute or
// working-directory-relative paths.
func OS() FileSystem {
	return osFS{}
}

func (osFS) Exists(_ context.Context, name string) bool {
	fi, err := os.Stat(filepath.FromSlash(name))
	return err == nil && fi.Mode().IsRegular()
}

func (osFS) Open(_ context.Context, name string) (*File, error) {
	f, err := os.Open(filepath.FromSlash(name))
	if err != nil {
		return nil, mapFSError(err)
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, mapFSError(err)
	}
	if !fi.Mode().IsRegular() {
		_ = f.Close()
		return nil, ErrNotFound
	}

	return &File{Body: f, Name: fi.Name(), Size: fi.Size(), ModTime: fi.ModTime()}, nil
}

// ioFS adapts an io/fs.FS such as embed.FS or fstest.MapFS.
type ioFS struct {
	fsys fs.FS
}

// FromFS returns a FileSystem over fsys. Leading slashes in names are ignored,
// since io/fs paths are unrooted.
func FromFS(fsys fs.FS) FileSystem {
	return ioFS{fsys: fsys}
}

func (f ioFS) Exists(_ context.Context, name string) bool {
	name, ok := fsName(name)
	if !ok {
		return false
	}
	fi, err := fs.Stat(f.fsys, name)
	return err == nil && fi.Mode().IsRegular()
}

func (f ioFS) Open(_ context.Context, name string) (*File, error) {
	name, ok := fsName(name)
	if !ok {
		return nil, ErrNotFound
	}

	file, err := f.fsys.Open(name)
	if err != nil {
		return nil, mapFSError(err)
	}

	fi, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, mapFSError(err)
	}
	if !fi.Mode().IsRegular() {
		_ = file.Close()
		return nil, ErrNotFound
	}

	return &File{Body: file, Name: fi.Name(), Size: fi.Size(), ModTime: fi.ModTime()}, nil
}

func fsName(name string) (string, bool) {
	name = strings.TrimLeft(path.Clean("/"+name), "/")
	if name == "" {
		return ".", true
	}
	return name, fs.ValidPath(name)
}

func mapFSError(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return errors.Join(ErrNotFound, err)
	}
	return err
}
