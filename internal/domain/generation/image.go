package generation

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/creatorkit/server/internal/model"
	"github.com/creatorkit/server/internal/port/outbound"
)

// MaxImageBytes caps image uploads for the removal kinds.
const MaxImageBytes = 10 << 20

const (
	imageSuccessMessage      = "Image generated successfully"
	backgroundSuccessMessage = "Background removed successfully"
	objectSuccessMessage     = "Object removed successfully"
	backgroundStoredPrompt   = "Remove Background From Image"
)

// imageVariant renders a prompt to an image and re-hosts it on durable storage.
type imageVariant struct {
	images  outbound.ImageGenerationPort
	storage outbound.ImageStoragePort
}

// NewImageVariant generates images from prompts. Premium only.
func NewImageVariant(images outbound.ImageGenerationPort, storage outbound.ImageStoragePort) Variant {
	return &imageVariant{images: images, storage: storage}
}

func (v *imageVariant) Kind() model.GenerationKind { return model.KindImage }

func (v *imageVariant) RequiresPremium() bool { return true }

func (v *imageVariant) Validate(in *model.GenerationInput) error {
	return validatePrompt(in.Prompt)
}

func (v *imageVariant) BuildRequest(caller *model.Caller, in *model.GenerationInput) (*ProviderRequest, error) {
	prompt := strings.TrimSpace(in.Prompt)
	return &ProviderRequest{
		ImagePrompt: prompt,
		Upload: &UploadRequest{
			Options: outbound.UploadOptions{OwnerID: caller.UserID},
		},
		StoredPrompt: prompt,
		Publish:      in.Publish,
	}, nil
}

// Invoke never returns the provider's own output location. The bytes are
// always uploaded to storage first.
func (v *imageVariant) Invoke(ctx context.Context, req *ProviderRequest) (*ProviderResult, error) {
	data, err := v.images.TextToImage(ctx, req.ImagePrompt)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}

	opts := req.Upload.Options
	opts.ContentType = http.DetectContentType(data)
	stored, err := v.storage.Upload(ctx, data, &opts)
	if err != nil {
		return nil, err
	}
	return &ProviderResult{URL: stored.PublicURL}, nil
}

func (v *imageVariant) Normalize(req *ProviderRequest, res *ProviderResult) (*Output, error) {
	return normalizeImage(res, req.StoredPrompt, req.Publish, imageSuccessMessage)
}

// backgroundVariant uploads an image with the background-removal transform.
type backgroundVariant struct {
	storage outbound.ImageStoragePort
}

// NewRemoveBackgroundVariant removes image backgrounds. Premium only.
func NewRemoveBackgroundVariant(storage outbound.ImageStoragePort) Variant {
	return &backgroundVariant{storage: storage}
}

func (v *backgroundVariant) Kind() model.GenerationKind { return model.KindRemoveBackground }

func (v *backgroundVariant) RequiresPremium() bool { return true }

func (v *backgroundVariant) Validate(in *model.GenerationInput) error {
	return validateImage(in.File)
}

func (v *backgroundVariant) BuildRequest(caller *model.Caller, in *model.GenerationInput) (*ProviderRequest, error) {
	return &ProviderRequest{
		Upload: &UploadRequest{
			Data: in.File.Data,
			Options: outbound.UploadOptions{
				OwnerID:     caller.UserID,
				ContentType: imageContentType(in.File),
				Filename:    in.File.Filename,
				Transform:   &outbound.ImageTransform{Kind: outbound.TransformBackgroundRemoval},
			},
		},
		StoredPrompt: backgroundStoredPrompt,
	}, nil
}

func (v *backgroundVariant) Invoke(ctx context.Context, req *ProviderRequest) (*ProviderResult, error) {
	stored, err := v.storage.Upload(ctx, req.Upload.Data, &req.Upload.Options)
	if err != nil {
		return nil, err
	}
	return &ProviderResult{URL: stored.PublicURL}, nil
}

func (v *backgroundVariant) Normalize(req *ProviderRequest, res *ProviderResult) (*Output, error) {
	return normalizeImage(res, req.StoredPrompt, false, backgroundSuccessMessage)
}

// objectVariant uploads the original image once and derives the
// object-removal rendition as a CDN URL.
type objectVariant struct {
	storage outbound.ImageStoragePort
}

// NewRemoveObjectVariant removes a single named object. Premium only.
func NewRemoveObjectVariant(storage outbound.ImageStoragePort) Variant {
	return &objectVariant{storage: storage}
}

func (v *objectVariant) Kind() model.GenerationKind { return model.KindRemoveObject }

func (v *objectVariant) RequiresPremium() bool { return true }

func (v *objectVariant) Validate(in *model.GenerationInput) error {
	words := strings.Fields(in.Object)
	switch {
	case len(words) == 0:
		return ErrMissingObject
	case len(words) > 1:
		return ErrObjectMultiWord
	}
	return validateImage(in.File)
}

func (v *objectVariant) BuildRequest(caller *model.Caller, in *model.GenerationInput) (*ProviderRequest, error) {
	object := strings.TrimSpace(in.Object)
	return &ProviderRequest{
		Upload: &UploadRequest{
			Data: in.File.Data,
			Options: outbound.UploadOptions{
				OwnerID:     caller.UserID,
				ContentType: imageContentType(in.File),
				Filename:    in.File.Filename,
				Transform:   &outbound.ImageTransform{Kind: outbound.TransformObjectRemoval, Object: object},
			},
		},
		StoredPrompt: "Removed " + object + " from image",
	}, nil
}

func (v *objectVariant) Invoke(ctx context.Context, req *ProviderRequest) (*ProviderResult, error) {
	transform := req.Upload.Options.Transform
	opts := req.Upload.Options
	opts.Transform = nil

	stored, err := v.storage.Upload(ctx, req.Upload.Data, &opts)
	if err != nil {
		return nil, err
	}
	url, err := v.storage.BuildURL(stored.PublicID, *transform)
	if err != nil {
		return nil, err
	}
	return &ProviderResult{URL: url}, nil
}

func (v *objectVariant) Normalize(req *ProviderRequest, res *ProviderResult) (*Output, error) {
	return normalizeImage(res, req.StoredPrompt, false, objectSuccessMessage)
}

func validateImage(f *model.UploadedFile) error {
	if f == nil || len(f.Data) == 0 {
		return ErrMissingImage
	}
	if f.Size() > MaxImageBytes {
		return ErrFileTooLarge
	}
	if !strings.HasPrefix(imageContentType(f), "image/") {
		return ErrUnsupportedFileType
	}
	return nil
}

// imageContentType sniffs the payload and falls back to the declared type.
func imageContentType(f *model.UploadedFile) string {
	sniffed := http.DetectContentType(f.Data)
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	return f.ContentType
}

func isPDF(f *model.UploadedFile) bool {
	return bytes.HasPrefix(f.Data, []byte("%PDF-"))
}

func normalizeImage(res *ProviderResult, prompt string, publish bool, message string) (*Output, error) {
	if res.URL == "" {
		return nil, ErrEmptyImage
	}
	return &Output{
		Content: res.URL,
		Type:    model.CreationTypeImage,
		Prompt:  prompt,
		Publish: publish,
		Message: message,
	}, nil
}
