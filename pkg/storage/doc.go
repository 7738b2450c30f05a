// Package storage provides read-only access to S3-compatible object storage.
//
// The dispatcher uses it as a backend for static assets: existence checks go
// through HeadObject and file bodies are streamed from GetObject.
//
//	s3, err := storage.New(storage.Config{
//	    Bucket:    "site-assets",
//	    AccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
//	    SecretKey: os.Getenv("STORAGE_SECRET_KEY"),
//	    Prefix:    "www",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	info, err := s3.Head(ctx, "static/app.css")
//	if errors.Is(err, storage.ErrNotFound) {
//	    // not there
//	}
//
// Errors are normalized onto sentinels (ErrNotFound, ErrAccessDenied, ...);
// match them with errors.Is.
package storage
