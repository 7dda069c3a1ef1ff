package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/creatorkit/server/internal/port/outbound"
	"github.com/oklog/ulid/v2"
)

// ErrMissingTransformObject is returned for an object-removal transform without an object.
var ErrMissingTransformObject = errors.New("object removal transform needs an object")

// ObjectPutter is the subset of *s3.Client used for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageStorageAdapter stores images in a bucket fronted by a transforming
// CDN. Transforms are path segments placed before the object key.
type ImageStorageAdapter struct {
	client        ObjectPutter
	bucket        string
	publicBaseURL string
	keyPrefix     string
}

// NewImageStorageAdapter creates a new image storage adapter.
func NewImageStorageAdapter(client ObjectPutter, bucket, publicBaseURL, keyPrefix string) *ImageStorageAdapter {
	return &ImageStorageAdapter{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		keyPrefix:     strings.Trim(keyPrefix, "/"),
	}
}

// Upload puts data under <prefix>/<owner>/<ulid>.<ext>.
func (a *ImageStorageAdapter) Upload(ctx context.Context, data []byte, opts *outbound.UploadOptions) (*outbound.StoredImage, error) {
	if opts == nil {
		opts = &outbound.UploadOptions{}
	}
	owner := opts.OwnerID
	if owner == "" {
		owner = "anonymous"
	}
	key := path.Join(a.keyPrefix, url.PathEscape(owner), ulid.Make().String()+extensionFor(opts.ContentType))

	input := &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}
	if _, err := a.client.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("put object: %w", err)
	}

	stored := &outbound.StoredImage{PublicID: key, PublicURL: a.publicURL(key)}
	if opts.Transform != nil {
		u, err := a.BuildURL(key, *opts.Transform)
		if err != nil {
			return nil, err
		}
		stored.PublicURL = u
	}
	return stored, nil
}

// BuildURL renders the CDN URL of publicID with transform applied.
func (a *ImageStorageAdapter) BuildURL(publicID string, transform outbound.ImageTransform) (string, error) {
	if publicID == "" {
		return "", errors.New("empty public id")
	}

	var segment string
	switch transform.Kind {
	case outbound.TransformBackgroundRemoval:
		segment = "e_background_removal"
	case outbound.TransformObjectRemoval:
		object := strings.TrimSpace(transform.Object)
		if object == "" {
			return "", ErrMissingTransformObject
		}
		segment = "e_gen_remove:prompt_" + url.PathEscape(object)
	case "":
		return a.publicURL(publicID), nil
	default:
		return "", fmt.Errorf("unsupported transform: %s", transform.Kind)
	}

	return a.publicBaseURL + "/" + segment + "/" + publicID, nil
}

func (a *ImageStorageAdapter) publicURL(key string) string {
	return a.publicBaseURL + "/" + key
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ""
	}
}

// Compile-time interface check
var _ outbound.ImageStoragePort = (*ImageStorageAdapter)(nil)
