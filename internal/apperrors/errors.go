package apperrors

import (
	"errors"
	"fmt"
)

// ErrorType categorizes a domain error for HTTP mapping and logging.
type ErrorType string

const (
	ErrorTypeInvalidQuery      ErrorType = "invalid_query"
	ErrorTypeEmbeddingFailure  ErrorType = "embedding_failure"
	ErrorTypeGenerationFailure ErrorType = "generation_failure"
	ErrorTypeIndexUnavailable  ErrorType = "index_unavailable"
	ErrorTypeInternal          ErrorType = "internal"
)

// DomainError wraps a low-level cause with a stable type. The query
// orchestrator classifies every outbound failure into one of these;
// raw transport errors never reach the HTTP layer.
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

func New(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

func InvalidQuery(message string, err error) *DomainError {
	return New(ErrorTypeInvalidQuery, message, err)
}

func EmbeddingFailure(message string, err error) *DomainError {
	return New(ErrorTypeEmbeddingFailure, message, err)
}

func GenerationFailure(message string, err error) *DomainError {
	return New(ErrorTypeGenerationFailure, message, err)
}

func IndexUnavailable(message string, err error) *DomainError {
	return New(ErrorTypeIndexUnavailable, message, err)
}

func isType(err error, t ErrorType) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Type == t
	}
	return false
}

func IsInvalidQuery(err error) bool      { return isType(err, ErrorTypeInvalidQuery) }
func IsEmbeddingFailure(err error) bool  { return isType(err, ErrorTypeEmbeddingFailure) }
func IsGenerationFailure(err error) bool { return isType(err, ErrorTypeGenerationFailure) }
func IsIndexUnavailable(err error) bool  { return isType(err, ErrorTypeIndexUnavailable) }
