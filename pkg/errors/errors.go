package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNoInput            = errors.New("no file or text content provided")
	ErrBothInputs         = errors.New("both file and text content provided")
	ErrFileTooLarge       = errors.New("file exceeds maximum size")
	ErrInvalidFileType    = errors.New("invalid file type")
	ErrTextTooShort       = errors.New("text content too short")
	ErrTextTooLong        = errors.New("text content too long")
	ErrReviewNotFound     = errors.New("review not found")
	ErrBackendUnavailable = errors.New("backend review service unavailable")
	ErrBackendContract    = errors.New("backend response violated contract")
	ErrUploadRejected     = errors.New("upload rejected by scanner")
	ErrPollTimeout        = errors.New("polling attempts exhausted")
)

type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s' with value '%v': %s",
		e.Field, e.Value, e.Message)
}

type RetryableError struct {
	Err     error
	Message string
}

func (e RetryableError) Error() string {
	return fmt.Sprintf("retryable error: %s - %s", e.Message, e.Err.Error())
}

func (e RetryableError) Unwrap() error {
	return e.Err
}

func NewRetryableError(err error, message string) error {
	return RetryableError{
		Err:     err,
		Message: message,
	}
}

// IsRetryable reports whether err or anything it wraps is a RetryableError.
func IsRetryable(err error) bool {
	var re RetryableError
	return errors.As(err, &re)
}
