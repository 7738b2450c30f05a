package storage

import (
	"context"
	"io"
	"time"
)

// Reader is read-only access to an object store.
type Reader interface {
	// Head returns object metadata without downloading the body.
	// Returns ErrNotFound if the object does not exist.
	Head(ctx context.Context, key string) (*ObjectInfo, error)

	// Get opens the object body. The caller must close it.
	// Returns ErrNotFound if the object does not exist.
	Get(ctx context.Context, key string) (*Object, error)
}

// Config holds S3-compatible storage configuration.
type Config struct {
	Bucket    string `env:"STORAGE_BUCKET,required"`
	AccessKey string `env:"STORAGE_ACCESS_KEY,required"`
	SecretKey string `env:"STORAGE_SECRET_KEY,required"`

	// Endpoint is a custom S3 endpoint (MinIO and other S3-compatible services).
	Endpoint string `env:"STORAGE_ENDPOINT"`
	Region   string `env:"STORAGE_REGION" envDefault:"us-east-1"`

	// Prefix is prepended to every key, e.g. "sites/acme".
	Prefix string `env:"STORAGE_PREFIX"`

	// PathStyle enables path-style URLs (required for MinIO).
	PathStyle bool `env:"STORAGE_PATH_STYLE"`
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	ModTime     time.Time
	Key         string
	ContentType string
	ETag        string
	Size        int64
}

// Object is an open object body with its metadata.
type Object struct {
	Body io.ReadCloser
	ObjectInfo
}

// DefaultRegion is used when Config.Region is empty.
const DefaultRegion = "us-east-1"

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
}

func (c *Config) validate() error {
	if c.Bucket == "" || c.AccessKey == "" || c.SecretKey == "" {
		return ErrInvalidConfig
	}
	return nil
}
