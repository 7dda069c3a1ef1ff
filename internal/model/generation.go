package model

// GenerationKind identifies one generation operation.
type GenerationKind string

const (
	KindArticle          GenerationKind = "article"
	KindBlogTitle        GenerationKind = "blog-title"
	KindImage            GenerationKind = "image"
	KindRemoveBackground GenerationKind = "remove-background"
	KindRemoveObject     GenerationKind = "remove-object"
	KindResumeReview     GenerationKind = "resume-review"
)

// String returns the string representation of the kind.
func (k GenerationKind) String() string {
	return string(k)
}

// UploadedFile is an in-memory upload taken from a multipart request.
type UploadedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Size returns the upload size in bytes.
func (f *UploadedFile) Size() int64 {
	if f == nil {
		return 0
	}
	return int64(len(f.Data))
}

// GenerationInput carries every field any generation kind may read.
// Each kind validates the subset it needs.
type GenerationInput struct {
	Prompt    string
	MaxTokens int
	Publish   bool
	Object    string
	File      *UploadedFile
}

// GenerationResult is returned for a successful generation.
type GenerationResult struct {
	Kind       GenerationKind
	Content    string
	Message    string
	CreationID int64
	// UsageCount is the caller's free usage after the request. Unchanged for premium callers.
	UsageCount int
}
