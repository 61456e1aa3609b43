package aws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ErrObjectNotFound is returned by Open when the key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// Object is an open object body with its metadata.
type Object struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// ObjectStore uploads and reads objects in a single bucket.
type ObjectStore struct {
	client    *s3.Client
	uploader  *manager.Uploader
	bucket    string
	endpoint  string
	cdnDomain string
}

// NewObjectStore creates an S3-backed store. endpoint is the public S3
// endpoint (LocalStack or a compatible service) and cdnDomain an optional
// CloudFront domain; both only affect the URLs handed back to clients.
func NewObjectStore(cfg sdkaws.Config, bucket, endpoint, cdnDomain string) *ObjectStore {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
		if endpoint != "" {
			o.BaseEndpoint = sdkaws.String(endpoint)
		}
	})
	return &ObjectStore{
		client:    client,
		uploader:  manager.NewUploader(client),
		bucket:    bucket,
		endpoint:  endpoint,
		cdnDomain: cdnDomain,
	}
}

// Upload streams body to key and returns the object's public URL.
func (s *ObjectStore) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      sdkaws.String(s.bucket),
		Key:         sdkaws.String(key),
		Body:        body,
		ContentType: sdkaws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return PublicURL(s.bucket, key, s.endpoint, s.cdnDomain), nil
}

// Open returns the object stored at key. The caller closes Body.
func (s *ObjectStore) Open(ctx context.Context, key string) (*Object, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: sdkaws.String(s.bucket),
		Key:    sdkaws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return &Object{
		Body:          out.Body,
		ContentType:   sdkaws.ToString(out.ContentType),
		ContentLength: sdkaws.ToInt64(out.ContentLength),
	}, nil
}

// PublicURL builds the URL clients use to fetch key: the CDN domain when one
// is configured, then a path-style URL on the custom endpoint, then the
// virtual-hosted S3 URL.
func PublicURL(bucket, key, endpoint, cdnDomain string) string {
	switch {
	case cdnDomain != "":
		return fmt.Sprintf("https://%s/%s", strings.TrimRight(cdnDomain, "/"), key)
	case endpoint != "":
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(endpoint, "/"), bucket, key)
	default:
		return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, key)
	}
}
