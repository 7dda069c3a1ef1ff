package generation

import (
	"errors"
	"fmt"

	"github.com/creatorkit/server/internal/domain/entitlement"
)

// Domain errors for generation.
var (
	// Input errors
	ErrUnknownKind         = errors.New("unknown generation kind")
	ErrEmptyPrompt         = errors.New("prompt is required")
	ErrPromptTooLong       = errors.New("prompt is too long")
	ErrInvalidLength       = errors.New("length must be between 1 and 4096 tokens")
	ErrMissingImage        = errors.New("no image uploaded")
	ErrMissingObject       = errors.New("object name is required")
	ErrObjectMultiWord     = errors.New("please enter only one object name")
	ErrMissingResume       = errors.New("no resume uploaded")
	ErrFileTooLarge        = errors.New("file size exceeds allowed size")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrEmptyDocument       = errors.New("could not extract text from resume")

	// Provider errors
	ErrEmptyCompletion = errors.New("provider returned no content")
	ErrEmptyImage      = errors.New("provider returned no image data")
)

// FailureKind classifies why a generation did not produce a creation.
type FailureKind string

const (
	KindAuthentication FailureKind = "authentication"
	KindEntitlement    FailureKind = "entitlement"
	KindValidation     FailureKind = "validation"
	KindProvider       FailureKind = "provider"
	KindPersistence    FailureKind = "persistence"
)

// providerMessage is shown for every provider failure so clients offer a retry.
const providerMessage = "The generation service failed, please try again."

// persistenceMessage is shown when the result could not be stored.
const persistenceMessage = "Your result could not be saved, please try again."

// Failure is the structured error returned by the pipeline.
type Failure struct {
	Kind    FailureKind
	Message string
	// Reason is set for entitlement failures.
	Reason entitlement.DenyReason
	Err    error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// AsFailure extracts a *Failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

func invalid(err error) *Failure {
	return &Failure{Kind: KindValidation, Message: err.Error(), Err: err}
}

func denied(reason entitlement.DenyReason) *Failure {
	return &Failure{Kind: KindEntitlement, Message: reason.Message(), Reason: reason}
}

func providerFailed(err error) *Failure {
	return &Failure{Kind: KindProvider, Message: providerMessage, Err: err}
}

func persistenceFailed(err error) *Failure {
	return &Failure{Kind: KindPersistence, Message: persistenceMessage, Err: err}
}

// Unauthenticated builds the failure returned when no caller could be resolved.
func Unauthenticated(err error) *Failure {
	return &Failure{Kind: KindAuthentication, Message: "Not authenticated", Err: err}
}
