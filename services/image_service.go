package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	apperrors "github.com/Akashx1550/TrendMart-backend/common/errors"
	awspkg "github.com/Akashx1550/TrendMart-backend/pkg/aws"

	"github.com/gabriel-vasile/mimetype"
)

const (
	// ImagePrefix is the object key prefix under which uploads are stored.
	ImagePrefix = "upload/images/"
	// sniffBytes is how much of the upload is inspected to detect its type.
	sniffBytes = 3072
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ObjectStorage is the subset of the S3 object store used for images.
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Open(ctx context.Context, key string) (*awspkg.Object, error)
}

type ImageService interface {
	// Upload stores an image and returns its public URL.
	Upload(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error)
	Open(ctx context.Context, name string) (*awspkg.Object, error)
}

type imageService struct {
	store    ObjectStorage
	maxBytes int64
	now      func() time.Time
}

func NewImageService(store ObjectStorage, maxBytes int64) ImageService {
	return &imageService{store: store, maxBytes: maxBytes, now: time.Now}
}

func (s *imageService) Upload(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error) {
	contentType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if _, ok := allowedImageTypes[contentType]; !ok {
		return "", apperrors.ErrUnsupportedImage
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return "", apperrors.ErrImageTooLarge
	}

	contentType, body, err := sniffImage(body)
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = allowedImageTypes[contentType]
	}
	key := fmt.Sprintf("%sproduct_%d%s", ImagePrefix, s.now().UnixMilli(), ext)

	url, err := s.store.Upload(ctx, key, contentType, body)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return url, nil
}

// sniffImage detects the type of body from its leading bytes. It returns the
// detected type and a reader that still yields the whole body.
func sniffImage(body io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffBytes)
	n, err := io.ReadFull(body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, fmt.Errorf("read image: %w", err)
	}
	head = head[:n]

	detected := mimetype.Detect(head).String()
	if _, ok := allowedImageTypes[detected]; !ok {
		return "", nil, apperrors.ErrUnsupportedImage
	}
	return detected, io.MultiReader(bytes.NewReader(head), body), nil
}

// Open returns the stored image called name. name must be a bare file name.
func (s *imageService) Open(ctx context.Context, name string) (*awspkg.Object, error) {
	if name == "" || name != path.Base(name) || strings.HasPrefix(name, ".") {
		return nil, apperrors.ErrImageNotFound
	}
	obj, err := s.store.Open(ctx, ImagePrefix+name)
	if err != nil {
		if errors.Is(err, awspkg.ErrObjectNotFound) {
			return nil, apperrors.ErrImageNotFound
		}
		return nil, fmt.Errorf("open image: %w", err)
	}
	return obj, nil
}
