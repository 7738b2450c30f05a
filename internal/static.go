package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/dmitrymomot/dispatch/pkg/assets"
)

const staticCacheControl = "public, max-age=3600"

// IsStaticFileRequest reports whether requestPath (relative to the site
// virtual path) starts with one of prefixes and names an existing file under
// physicalPath. Both conditions must hold. Paths containing ".." segments are
// never static.
func IsStaticFileRequest(ctx context.Context, fsys assets.FileSystem, requestPath string, prefixes []string, physicalPath string) bool {
	rel, ok := staticRelPath(requestPath)
	if !ok || !hasStaticPrefix(rel, prefixes) {
		return false
	}
	return fsys.Exists(ctx, joinPhysical(physicalPath, rel))
}

// StaticGate short-circuits requests for static assets.
type StaticGate struct {
	fsys         assets.FileSystem
	physicalPath string
	prefixes     []string
}

// NewStaticGate validates the configuration eagerly. A nil filesystem, no
// prefixes, or an empty prefix yield ErrInvalidStaticConfig.
func NewStaticGate(fsys assets.FileSystem, physicalPath string, prefixes ...string) (*StaticGate, error) {
	if fsys == nil {
		return nil, fmt.Errorf("%w: nil filesystem", ErrInvalidStaticConfig)
	}
	if len(prefixes) == 0 {
		return nil, fmt.Errorf("%w: no prefixes", ErrInvalidStaticConfig)
	}

	clean := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		p = strings.TrimLeft(p, "/")
		if p == "" {
			return nil, fmt.Errorf("%w: empty prefix", ErrInvalidStaticConfig)
		}
		clean = append(clean, p)
	}

	return &StaticGate{
		fsys:         fsys,
		physicalPath: normalizePhysicalPath(physicalPath),
		prefixes:     clean,
	}, nil
}

// Prefixes returns the configured prefixes without leading slashes.
func (g *StaticGate) Prefixes() []string {
	return append([]string(nil), g.prefixes...)
}

// Match reports whether requestPath is a static file request.
func (g *StaticGate) Match(ctx context.Context, requestPath string) bool {
	return IsStaticFileRequest(ctx, g.fsys, requestPath, g.prefixes, g.physicalPath)
}

// Serve streams the file for requestPath. Seekable bodies go through
// http.ServeContent for range and conditional request support.
func (g *StaticGate) Serve(c Context, requestPath string) error {
	rel, ok := staticRelPath(requestPath)
	if !ok {
		return ErrNotFound("")
	}

	f, err := g.fsys.Open(c, joinPhysical(g.physicalPath, rel))
	if err != nil {
		if errors.Is(err, assets.ErrNotFound) {
			return ErrNotFound("", WithError(err))
		}
		return err
	}
	defer f.Body.Close()

	h := c.Response().Header()
	h.Set("Cache-Control", staticCacheControl)
	h.Set("X-Content-Type-Options", "nosniff")
	if ct := contentType(f); ct != "" {
		h.Set("Content-Type", ct)
	}

	if rs, ok := f.Body.(io.ReadSeeker); ok {
		http.ServeContent(c.Response(), c.Request(), f.Name, f.ModTime, rs)
		return nil
	}

	if f.Size > 0 {
		h.Set("Content-Length", strconv.FormatInt(f.Size, 10))
	}
	c.Response().WriteHeader(http.StatusOK)
	if c.Request().Method == http.MethodHead {
		return nil
	}
	_, err = io.Copy(c.Response(), f.Body)
	return err
}

func contentType(f *assets.File) string {
	if f.ContentType != "" {
		return f.ContentType
	}
	return mime.TypeByExtension(path.Ext(f.Name))
}

func staticRelPath(p string) (string, bool) {
	rel := strings.TrimLeft(p, "/")
	if rel == "" {
		return "", false
	}
	for seg := range strings.SplitSeq(rel, "/") {
		if seg == ".." {
			return "", false
		}
	}
	return rel, true
}

func hasStaticPrefix(rel string, prefixes []string) bool {
	for _, p := range prefixes {
		p = strings.TrimLeft(p, "/")
		if p != "" && strings.HasPrefix(rel, p) {
			return true
		}
	}
	return false
}

func joinPhysical(physicalPath, rel string) string {
	if physicalPath == "" {
		return rel
	}
	return strings.TrimSuffix(physicalPath, "/") + "/" + rel
}

// normalizePhysicalPath converts separators to "/" and drops trailing
// slashes. The filesystem root stays "/" so files below it resolve as
// absolute names.
func normalizePhysicalPath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	if trimmed := strings.TrimRight(p, "/"); trimmed != "" || p == "" {
		return trimmed
	}
	return "/"
}
