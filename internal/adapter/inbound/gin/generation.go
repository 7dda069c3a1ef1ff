package gin

import (
	"errors"
	"net/http"

	"github.com/creatorkit/server/internal/domain/generation"
	"github.com/creatorkit/server/internal/model"
	"github.com/creatorkit/server/internal/port/inbound"
	"github.com/creatorkit/server/internal/utils/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// generationHandler implements inbound.GenerationHttpPort.
type generationHandler struct {
	generation     inbound.GenerationDomain
	metrics        *metrics.Metrics
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewGenerationHandler creates a new generation HTTP handler.
func NewGenerationHandler(
	generationDomain inbound.GenerationDomain,
	m *metrics.Metrics,
	maxUploadBytes int64,
	logger *zap.Logger,
) inbound.GenerationHttpPort {
	return &generationHandler{
		generation:     generationDomain,
		metrics:        m,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Compile-time interface check
var _ inbound.GenerationHttpPort = (*generationHandler)(nil)

// ArticleRequest is the body of the article endpoint.
type ArticleRequest struct {
	Prompt string `json:"prompt"`
	Length int    `json:"length"`
}

// PromptRequest is the body of the blog title endpoint.
type PromptRequest struct {
	Prompt string `json:"prompt"`
}

// ImageRequest is the body of the image generation endpoint.
type ImageRequest struct {
	Prompt  string `json:"prompt"`
	Publish bool   `json:"publish"`
}

// GenerationResponse is returned for a successful generation.
type GenerationResponse struct {
	Success bool   `json:"success"`
	Content string `json:"content"`
	Message string `json:"message,omitempty"`
}

// GenerateArticle handles article generation.
//
//	@Summary		Generate article
//	@Description	Generate an article of roughly the requested length from a prompt
//	@Tags			AI
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		ArticleRequest	true	"Article request"
//	@Success		200		{object}	GenerationResponse
//	@Failure		400		{object}	ErrorResponse	"Invalid request"
//	@Failure		401		{object}	ErrorResponse	"Not authenticated"
//	@Failure		502		{object}	ErrorResponse	"Provider failed"
//	@Router			/ai/generate-article [post]
func (h *generationHandler) GenerateArticle(c *gin.Context) {
	var req ArticleRequest
	in := &model.GenerationInput{}
	if bindJSON(c, &req) {
		in.Prompt = req.Prompt
		in.MaxTokens = req.Length
	}
	h.generate(c, model.KindArticle, in)
}

// GenerateBlogTitle handles blog title generation.
//
//	@Summary		Generate blog titles
//	@Tags			AI
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		PromptRequest	true	"Keyword request"
//	@Success		200		{object}	GenerationResponse
//	@Failure		400		{object}	ErrorResponse	"Invalid request"
//	@Failure		401		{object}	ErrorResponse	"Not authenticated"
//	@Failure		502		{object}	ErrorResponse	"Provider failed"
//	@Router			/ai/blog-title [post]
func (h *generationHandler) GenerateBlogTitle(c *gin.Context) {
	var req PromptRequest
	in := &model.GenerationInput{}
	if bindJSON(c, &req) {
		in.Prompt = req.Prompt
	}
	h.generate(c, model.KindBlogTitle, in)
}

// GenerateImage handles text-to-image generation. Premium only.
//
//	@Summary		Generate image
//	@Description	Generate an image from a prompt and optionally publish it to the community feed
//	@Tags			AI
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		ImageRequest	true	"Image request"
//	@Success		200		{object}	GenerationResponse
//	@Failure		400		{object}	ErrorResponse	"Invalid request"
//	@Failure		401		{object}	ErrorResponse	"Not authenticated"
//	@Failure		502		{object}	ErrorResponse	"Provider failed"
//	@Router			/ai/generate-images [post]
func (h *generationHandler) GenerateImage(c *gin.Context) {
	var req ImageRequest
	in := &model.GenerationInput{}
	if bindJSON(c, &req) {
		in.Prompt = req.Prompt
		in.Publish = req.Publish
	}
	h.generate(c, model.KindImage, in)
}

// RemoveBackground handles background removal. Premium only.
//
//	@Summary		Remove image background
//	@Tags			AI
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			image	formData	file	true	"Image"
//	@Success		200		{object}	GenerationResponse
//	@Failure		400		{object}	ErrorResponse	"Invalid request"
//	@Failure		401		{object}	ErrorResponse	"Not authenticated"
//	@Failure		413		{object}	ErrorResponse	"File too large"
//	@Router			/ai/remove-background [post]
func (h *generationHandler) RemoveBackground(c *gin.Context) {
	in, ok := h.readMultipart(c, "image")
	if !ok {
		return
	}
	h.generate(c, model.KindRemoveBackground, in)
}

// RemoveObject handles object removal. Premium only.
//
//	@Summary		Remove object from image
//	@Tags			AI
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			image	formData	file	true	"Image"
//	@Param			object	formData	string	true	"Single-word object name"
//	@Success		200		{object}	GenerationResponse
//	@Failure		400		{object}	ErrorResponse	"Invalid request"
//	@Failure		401		{object}	ErrorResponse	"Not authenticated"
//	@Failure		413		{object}	ErrorResponse	"File too large"
//	@Router			/ai/remove-object [post]
func (h *generationHandler) RemoveObject(c *gin.Context) {
	in, ok := h.readMultipart(c, "image")
	if !ok {
		return
	}
	in.Object = c.PostForm("object")
	h.generate(c, model.KindRemoveObject, in)
}

// ReviewResume handles resume review. Premium only.
//
//	@Summary		Review resume
//	@Tags			AI
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			resume	formData	file	true	"Resume PDF"
//	@Success		200		{object}	GenerationResponse
//	@Failure		400		{object}	ErrorResponse	"Invalid request"
//	@Failure		401		{object}	ErrorResponse	"Not authenticated"
//	@Failure		413		{object}	ErrorResponse	"File too large"
//	@Router			/ai/resume-review [post]
func (h *generationHandler) ReviewResume(c *gin.Context) {
	in, ok := h.readMultipart(c, "resume")
	if !ok {
		return
	}
	h.generate(c, model.KindResumeReview, in)
}

// generate runs the pipeline and writes the result. A malformed body still
// reaches the pipeline as empty input so the entitlement decision comes first.
func (h *generationHandler) generate(c *gin.Context, kind model.GenerationKind, in *model.GenerationInput) {
	caller, ok := requireCaller(c)
	if !ok {
		h.record(kind, string(generation.KindAuthentication))
		return
	}

	res, err := h.generation.Generate(c.Request.Context(), caller, kind, in)
	if err != nil {
		outcome := "error"
		if f, ok := generation.AsFailure(err); ok {
			outcome = string(f.Kind)
		}
		h.record(kind, outcome)
		respondError(c, generationError(err))
		return
	}

	h.record(kind, "success")
	c.JSON(http.StatusOK, GenerationResponse{
		Success: true,
		Content: res.Content,
		Message: res.Message,
	})
}

// readMultipart bounds the body and reads the upload in field. A missing
// file leaves File nil for the pipeline to reject after the entitlement check.
func (h *generationHandler) readMultipart(c *gin.Context, field string) (*model.GenerationInput, bool) {
	limitBody(c, h.maxUploadBytes)

	in := &model.GenerationInput{}
	file, err := readUpload(c, field)
	switch {
	case err == nil:
		in.File = file
	case errors.Is(err, errMissingFile):
	default:
		h.logger.Debug("read upload failed", zap.String("field", field), zap.Error(err))
		respondError(c, uploadError(err))
		return nil, false
	}
	return in, true
}

func (h *generationHandler) record(kind model.GenerationKind, outcome string) {
	if h.metrics != nil {
		h.metrics.RecordGeneration(kind.String(), outcome)
	}
}

// bindJSON reports whether the body decoded into dst.
func bindJSON(c *gin.Context, dst any) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return false
	}
	return c.ShouldBindJSON(dst) == nil
}
