package storage

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// Operation names recorded on Error.
const (
	OpUpload    = "upload file"
	OpDelete    = "delete file"
	OpSignedURL = "generate signed URL"
)

// Error is returned by every storage operation that reaches the backend and fails.
// Message holds the underlying SDK error text.
type Error struct {
	Op      string
	Key     string
	Code    string // S3 API error code, empty when the failure was not an API error
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op, key string, err error) *Error {
	se := &Error{Op: op, Key: key, Message: err.Error(), Err: err}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		se.Code = apiErr.ErrorCode()
	}
	return se
}
