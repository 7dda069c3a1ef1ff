package outbound

import (
	"context"
	"fmt"
)

// TextRequest is a single-prompt completion request.
type TextRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// TextGenerationPort is a stateless text-generation backend.
type TextGenerationPort interface {
	// Name identifies the backend in logs and metrics.
	Name() string

	// Complete returns the generated text for the request.
	Complete(ctx context.Context, req *TextRequest) (string, error)
}

// ImageGenerationPort is a stateless text-to-image backend.
type ImageGenerationPort interface {
	// Name identifies the backend in logs and metrics.
	Name() string

	// TextToImage returns the encoded image bytes for prompt.
	TextToImage(ctx context.Context, prompt string) ([]byte, error)
}

// TransformKind names an on-the-fly image transform offered by the CDN.
type TransformKind string

const (
	TransformBackgroundRemoval TransformKind = "background_removal"
	TransformObjectRemoval     TransformKind = "object_removal"
)

// ImageTransform describes a CDN transform. Object is only read for
// TransformObjectRemoval.
type ImageTransform struct {
	Kind   TransformKind
	Object string
}

// String returns a readable form for logs.
func (t ImageTransform) String() string {
	if t.Kind == TransformObjectRemoval {
		return fmt.Sprintf("%s:%s", t.Kind, t.Object)
	}
	return string(t.Kind)
}

// UploadOptions controls an image upload.
type UploadOptions struct {
	OwnerID     string
	ContentType string
	Filename    string
	Transform   *ImageTransform
}

// StoredImage is a durable copy of an image.
type StoredImage struct {
	PublicID  string
	PublicURL string
}

// ImageStoragePort is the durable image store and CDN.
type ImageStoragePort interface {
	// Upload stores data. When opts.Transform is set, PublicURL points at the
	// transformed rendition.
	Upload(ctx context.Context, data []byte, opts *UploadOptions) (*StoredImage, error)

	// BuildURL returns the URL of a stored image with transform applied.
	BuildURL(publicID string, transform ImageTransform) (string, error)
}

// DocumentParserPort extracts plain text from uploaded documents.
type DocumentParserPort interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}
