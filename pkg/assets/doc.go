// Package assets provides the filesystem collaborators used for static file
// detection and serving.
//
// Implementations:
//   - OS: the host filesystem
//   - FromFS: any io/fs.FS, e.g. embed.FS or fstest.MapFS in tests
//   - S3: an object store reader from pkg/storage
//   - Cached: memoizes Exists results of another FileSystem
//
// A FileSystem is injected into the static gate as configuration; there is no
// package-level default to override.
//
//	//go:embed public
//	var public embed.FS
//
//	fsys := assets.FromFS(public)
//	fsys.Exists(ctx, "public/static/app.css")
package assets
