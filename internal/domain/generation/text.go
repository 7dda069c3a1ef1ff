package generation

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/creatorkit/server/internal/model"
	"github.com/creatorkit/server/internal/port/outbound"
)

const (
	defaultTemperature     = 0.7
	defaultArticleTokens   = 800
	maxArticleTokens       = 4096
	blogTitleTokens        = 100
	maxPromptRunes         = 8000
	articleSuccessMessage  = "Article generated successfully"
	titleSuccessMessage    = "Blog title generated successfully"
	resumeSuccessMessage   = "Resume reviewed successfully"
	resumeStoredPrompt     = "Review the uploaded resume"
	resumeReviewTokens     = 1000
	resumeReviewPromptHead = "Review the following resume and provide constructive feedback on its strengths, " +
		"weaknesses, and areas for improvement. Also make corrections, give an ATS score and the best suggestions. " +
		"Resume Content:\n\n"
)

// textVariant covers the prompt-in, text-out kinds.
type textVariant struct {
	kind         model.GenerationKind
	creationType model.CreationType
	fixedTokens  int
	message      string
	text         outbound.TextGenerationPort
}

// NewArticleVariant generates articles bounded by the caller's token budget.
func NewArticleVariant(text outbound.TextGenerationPort) Variant {
	return &textVariant{
		kind:         model.KindArticle,
		creationType: model.CreationTypeArticle,
		message:      articleSuccessMessage,
		text:         text,
	}
}

// NewBlogTitleVariant generates blog titles with a fixed token budget.
func NewBlogTitleVariant(text outbound.TextGenerationPort) Variant {
	return &textVariant{
		kind:         model.KindBlogTitle,
		creationType: model.CreationTypeBlogTitle,
		fixedTokens:  blogTitleTokens,
		message:      titleSuccessMessage,
		text:         text,
	}
}

func (v *textVariant) Kind() model.GenerationKind { return v.kind }

func (v *textVariant) RequiresPremium() bool { return false }

func (v *textVariant) Validate(in *model.GenerationInput) error {
	if err := validatePrompt(in.Prompt); err != nil {
		return err
	}
	if v.fixedTokens == 0 && (in.MaxTokens < 0 || in.MaxTokens > maxArticleTokens) {
		return ErrInvalidLength
	}
	return nil
}

func (v *textVariant) BuildRequest(_ *model.Caller, in *model.GenerationInput) (*ProviderRequest, error) {
	tokens := v.fixedTokens
	if tokens == 0 {
		tokens = in.MaxTokens
		if tokens == 0 {
			tokens = defaultArticleTokens
		}
	}
	prompt := strings.TrimSpace(in.Prompt)
	return &ProviderRequest{
		Text: &outbound.TextRequest{
			Prompt:      prompt,
			MaxTokens:   tokens,
			Temperature: defaultTemperature,
		},
		StoredPrompt: prompt,
	}, nil
}

func (v *textVariant) Invoke(ctx context.Context, req *ProviderRequest) (*ProviderResult, error) {
	out, err := v.text.Complete(ctx, req.Text)
	if err != nil {
		return nil, err
	}
	return &ProviderResult{Text: out}, nil
}

func (v *textVariant) Normalize(req *ProviderRequest, res *ProviderResult) (*Output, error) {
	return normalizeText(res, v.creationType, req.StoredPrompt, v.message)
}

// resumeVariant parses an uploaded PDF and asks the text provider to review it.
type resumeVariant struct {
	parser  outbound.DocumentParserPort
	text    outbound.TextGenerationPort
	maxSize int64
}

// MaxResumeBytes caps resume uploads.
const MaxResumeBytes = 5 << 20

// NewResumeReviewVariant reviews PDF resumes. Premium only.
func NewResumeReviewVariant(parser outbound.DocumentParserPort, text outbound.TextGenerationPort) Variant {
	return &resumeVariant{parser: parser, text: text, maxSize: MaxResumeBytes}
}

func (v *resumeVariant) Kind() model.GenerationKind { return model.KindResumeReview }

func (v *resumeVariant) RequiresPremium() bool { return true }

func (v *resumeVariant) Validate(in *model.GenerationInput) error {
	if in.File == nil || len(in.File.Data) == 0 {
		return ErrMissingResume
	}
	if in.File.Size() > v.maxSize {
		return ErrFileTooLarge
	}
	if !isPDF(in.File) {
		return ErrUnsupportedFileType
	}
	return nil
}

func (v *resumeVariant) BuildRequest(_ *model.Caller, in *model.GenerationInput) (*ProviderRequest, error) {
	return &ProviderRequest{
		Document: in.File.Data,
		Text: &outbound.TextRequest{
			MaxTokens:   resumeReviewTokens,
			Temperature: defaultTemperature,
		},
		StoredPrompt: resumeStoredPrompt,
	}, nil
}

func (v *resumeVariant) Invoke(ctx context.Context, req *ProviderRequest) (*ProviderResult, error) {
	text, err := v.parser.ExtractText(ctx, req.Document)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid(ErrEmptyDocument)
	}

	completion := *req.Text
	completion.Prompt = resumeReviewPromptHead + text
	out, err := v.text.Complete(ctx, &completion)
	if err != nil {
		return nil, err
	}
	return &ProviderResult{Text: out}, nil
}

func (v *resumeVariant) Normalize(req *ProviderRequest, res *ProviderResult) (*Output, error) {
	return normalizeText(res, model.CreationTypeResumeReview, req.StoredPrompt, resumeSuccessMessage)
}

func validatePrompt(prompt string) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return ErrEmptyPrompt
	}
	if utf8.RuneCountInString(prompt) > maxPromptRunes {
		return ErrPromptTooLong
	}
	return nil
}

func normalizeText(res *ProviderResult, t model.CreationType, prompt, message string) (*Output, error) {
	content := strings.TrimSpace(res.Text)
	if content == "" {
		return nil, ErrEmptyCompletion
	}
	return &Output{Content: content, Type: t, Prompt: prompt, Message: message}, nil
}
