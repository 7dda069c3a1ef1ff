package gin

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/creatorkit/server/internal/model"
	apperrors "github.com/creatorkit/server/internal/utils/errors"
	"github.com/gin-gonic/gin"
)

// DefaultMaxUploadBytes bounds a multipart request when no limit is configured.
const DefaultMaxUploadBytes int64 = 11 << 20

// errMissingFile is returned by readUpload when the form has no such field.
var errMissingFile = errors.New("missing file")

// requireCaller returns the resolved caller or writes 401.
func requireCaller(c *gin.Context) (*model.Caller, bool) {
	caller, ok := CallerFromContext(c)
	if !ok {
		respondError(c, apperrors.Unauthorized(""))
		return nil, false
	}
	return caller, true
}

// limitBody caps the request body at maxBytes.
func limitBody(c *gin.Context, maxBytes int64) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
}

// readUpload reads the named multipart file into memory. The content type
// is sniffed from the bytes, not taken from the client.
func readUpload(c *gin.Context, field string) (*model.UploadedFile, error) {
	header, err := c.FormFile(field)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, err
		}
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, errMissingFile
		}
		return nil, fmt.Errorf("read form: %w", err)
	}
	return readFileHeader(header)
}

func readFileHeader(header *multipart.FileHeader) (*model.UploadedFile, error) {
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return &model.UploadedFile{
		Filename:    header.Filename,
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}

// uploadError maps a readUpload failure that is not a missing file.
func uploadError(err error) *apperrors.AppError {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apperrors.PayloadTooLarge(err)
	}
	return apperrors.BadRequest("invalid multipart form")
}
