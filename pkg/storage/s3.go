package storage

import (
	"context"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 reads objects from an S3-compatible bucket.
type S3 struct {
	client *s3.Client
	cfg    Config
}

// New creates an S3 reader with the given configuration.
// Returns ErrInvalidConfig if required fields are missing.
func New(cfg Config) (*S3, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		},
	}

	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return &S3{
		client: s3.New(s3.Options{}, opts...),
		cfg:    cfg,
	}, nil
}

// Head returns object metadata without downloading it.
func (s *S3) Head(ctx context.Context, key string) (*ObjectInfo, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(s.Key(key)),
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrHeadFailed)
	}

	return &ObjectInfo{
		Key:         key,
		Size:        aws.ToInt64(out.ContentLength),
		ContentType: aws.ToString(out.ContentType),
		ETag:        aws.ToString(out.ETag),
		ModTime:     aws.ToTime(out.LastModified),
	}, nil
}

// Get opens the object body.
func (s *S3) Get(ctx context.Context, key string) (*Object, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(s.Key(key)),
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrGetFailed)
	}

	return &Object{
		Body: out.Body,
		ObjectInfo: ObjectInfo{
			Key:         key,
			Size:        aws.ToInt64(out.ContentLength),
			ContentType: aws.ToString(out.ContentType),
			ETag:        aws.ToString(out.ETag),
			ModTime:     aws.ToTime(out.LastModified),
		},
	}, nil
}

// Key maps a logical name to the bucket key, applying the configured prefix.
func (s *S3) Key(name string) string {
	name = strings.TrimLeft(name, "/")
	if s.cfg.Prefix == "" {
		return name
	}
	return path.Join(strings.Trim(s.cfg.Prefix, "/"), name)
}

var _ Reader = (*S3)(nil)
