package generation

import (
	"context"
	"fmt"
	"sort"

	"github.com/creatorkit/server/internal/model"
	"github.com/creatorkit/server/internal/port/outbound"
)

// ProviderRequest is what a variant sends to its backends. Only the fields
// relevant to the variant are set.
type ProviderRequest struct {
	Text        *outbound.TextRequest
	ImagePrompt string
	Upload      *UploadRequest
	Document    []byte

	// StoredPrompt is the prompt recorded on the creation.
	StoredPrompt string
	Publish      bool
}

// UploadRequest is an image destined for the storage provider.
type UploadRequest struct {
	Data    []byte
	Options outbound.UploadOptions
}

// ProviderResult is the raw backend output before normalization.
type ProviderResult struct {
	Text string
	URL  string
}

// Output is the normalized result that becomes a creation.
type Output struct {
	Content string
	Type    model.CreationType
	Prompt  string
	Publish bool
	Message string
}

// Variant is one generation kind. The pipeline calls Validate, BuildRequest,
// Invoke and Normalize in that order and stops at the first error.
type Variant interface {
	Kind() model.GenerationKind
	RequiresPremium() bool
	// Validate must not perform any I/O.
	Validate(in *model.GenerationInput) error
	BuildRequest(caller *model.Caller, in *model.GenerationInput) (*ProviderRequest, error)
	Invoke(ctx context.Context, req *ProviderRequest) (*ProviderResult, error)
	Normalize(req *ProviderRequest, res *ProviderResult) (*Output, error)
}

// Registry dispatches generation kinds to their variants.
type Registry struct {
	variants map[model.GenerationKind]Variant
}

// NewRegistry builds a registry. Registering a kind twice is an error.
func NewRegistry(variants ...Variant) (*Registry, error) {
	r := &Registry{variants: make(map[model.GenerationKind]Variant, len(variants))}
	for _, v := range variants {
		if _, exists := r.variants[v.Kind()]; exists {
			return nil, fmt.Errorf("duplicate variant for kind %q", v.Kind())
		}
		r.variants[v.Kind()] = v
	}
	return r, nil
}

// Get returns the variant for kind.
func (r *Registry) Get(kind model.GenerationKind) (Variant, bool) {
	v, ok := r.variants[kind]
	return v, ok
}

// Kinds returns the registered kinds in lexical order.
func (r *Registry) Kinds() []model.GenerationKind {
	kinds := make([]model.GenerationKind, 0, len(r.variants))
	for k := range r.variants {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Providers groups the backends the built-in variants call.
type Providers struct {
	Text    outbound.TextGenerationPort
	Image   outbound.ImageGenerationPort
	Storage outbound.ImageStoragePort
	Parser  outbound.DocumentParserPort
}

// DefaultVariants returns every built-in generation kind wired to p.
func DefaultVariants(p Providers) []Variant {
	return []Variant{
		NewArticleVariant(p.Text),
		NewBlogTitleVariant(p.Text),
		NewImageVariant(p.Image, p.Storage),
		NewRemoveBackgroundVariant(p.Storage),
		NewRemoveObjectVariant(p.Storage),
		NewResumeReviewVariant(p.Parser, p.Text),
	}
}
