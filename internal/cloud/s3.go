package cloud

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// S3Store uploads exports to one bucket under a key prefix.
type S3Store struct {
	svc    s3iface.S3API
	bucket string
	prefix string
}

// NewS3Store returns a store backed by a real S3 client.
func NewS3Store(sess *session.Session, bucket, prefix string) *S3Store {
	return NewS3StoreFromIface(s3.New(sess), bucket, prefix)
}

// NewS3StoreFromIface wraps any S3 implementation.
func NewS3StoreFromIface(svc s3iface.S3API, bucket, prefix string) *S3Store {
	return &S3Store{svc: svc, bucket: bucket, prefix: prefix}
}

// S3 guesses poorly for these.
var s3ContentTypes = map[string]string{
	".json": "application/json",
	".png":  "image/png",
	".tiff": "image/tiff",
	".txt":  "text/plain",
}

// Key returns the object key used for name.
func (s *S3Store) Key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

// Put uploads data as name.
func (s *S3Store) Put(ctx context.Context, name string, data []byte) error {
	var contentType *string
	for ext, mime := range s3ContentTypes {
		if strings.HasSuffix(name, ext) {
			contentType = aws.String(mime)
			break
		}
	}

	_, err := s.svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(s.Key(name)),
		Body:         bytes.NewReader(data),
		CacheControl: aws.String("no-transform, public, max-age=300"),
		ContentType:  contentType,
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", s.bucket, s.Key(name), err)
	}
	return nil
}

// String describes the destination.
func (s *S3Store) String() string {
	return "s3://" + s.bucket + "/" + s.prefix
}
