package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels matched by errors.Is on an AppError.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
	ErrConflict     = errors.New("resource conflict")
	ErrTooLarge     = errors.New("payload too large")
	ErrInternal     = errors.New("internal error")
	ErrEntitlement  = errors.New("not entitled")
	ErrRateLimited  = errors.New("rate limited")
	ErrUpstream     = errors.New("upstream provider failed")
)

// AppError is an error with the HTTP status and body it should be rendered as.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Reason     string `json:"reason,omitempty"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another AppError by code, anything else through the wrapped error.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Code == t.Code
	}
	return errors.Is(e.Err, target)
}

// ErrorResponse is the JSON body of every failed request. Clients branch on
// success and show message.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// ToResponse converts an AppError to ErrorResponse.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Success: false,
		Message: e.Message,
		Code:    e.Code,
		Reason:  e.Reason,
	}
}

func newError(code string, status int, err error, message, fallback string) *AppError {
	if message == "" {
		message = fallback
	}
	return &AppError{Code: code, Message: message, StatusCode: status, Err: err}
}

// NotFound reports a missing resource, e.g. NotFound("Creation").
func NotFound(resource string) *AppError {
	return newError("NOT_FOUND", http.StatusNotFound, ErrNotFound, resource+" not found", "")
}

// Unauthorized is returned when no valid session accompanies the request.
func Unauthorized(message string) *AppError {
	return newError("UNAUTHORIZED", http.StatusUnauthorized, ErrUnauthorized, message, "Not authenticated")
}

func Forbidden(message string) *AppError {
	return newError("FORBIDDEN", http.StatusForbidden, ErrForbidden, message, "access denied")
}

// BadRequest reports invalid input. The message is shown to the user as is.
func BadRequest(message string) *AppError {
	return newError("BAD_REQUEST", http.StatusBadRequest, ErrBadRequest, message, "invalid request")
}

func Conflict(message string) *AppError {
	return newError("CONFLICT", http.StatusConflict, ErrConflict, message, "request conflicts with another in progress")
}

// PayloadTooLarge is returned when an upload exceeds the request body cap.
func PayloadTooLarge(err error) *AppError {
	return newError("PAYLOAD_TOO_LARGE", http.StatusRequestEntityTooLarge, errors.Join(ErrTooLarge, err), "", "file size exceeds allowed size")
}

// Internal hides the cause from the client; err is kept for logging.
func Internal(message string, err error) *AppError {
	return newError("INTERNAL_ERROR", http.StatusInternalServerError, errors.Join(ErrInternal, err), message, "internal server error")
}

// EntitlementDenied is the normal negative result for a caller who is over
// quota or not premium. It is delivered with 200 so clients that only read
// success and message behave as before.
func EntitlementDenied(reason, message string) *AppError {
	e := newError("ENTITLEMENT_DENIED", http.StatusOK, ErrEntitlement, message, "not entitled")
	e.Reason = reason
	return e
}

// UpstreamFailed is returned when a generation provider errors or times out.
func UpstreamFailed(message string, err error) *AppError {
	return newError("PROVIDER_FAILED", http.StatusBadGateway, errors.Join(ErrUpstream, err), message, "generation provider failed, please try again")
}

func RateLimited(message string) *AppError {
	return newError("RATE_LIMITED", http.StatusTooManyRequests, ErrRateLimited, message, "too many requests")
}
