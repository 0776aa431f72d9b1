package errs

import (
	"errors"
	"fmt"
)

// Upload-specific sentinels. An upload error is scoped to the field whose
// trigger started it and must not affect uploads for other fields.
var (
	ErrInvalidFileType = errors.New("file is not an image")
	ErrFileTooLarge    = errors.New("file exceeds maximum upload size")
	ErrUploadFailed    = errors.New("image upload failed")
)

func NewInvalidFileTypeError(contentType string) *ClientErr {
	return &ClientErr{
		Kind:    KindUpload,
		err:     ErrInvalidFileType,
		Details: fmt.Sprintf("got content type %q, want image/*", contentType),
		Field:   "file",
	}
}

func NewFileTooLargeError(size, maxSize int64) *ClientErr {
	return &ClientErr{
		Kind:    KindUpload,
		err:     ErrFileTooLarge,
		Details: fmt.Sprintf("file is %d bytes, maximum is %d bytes", size, maxSize),
		Field:   "file",
	}
}

func NewUploadFailedError(cause error) *ClientErr {
	return &ClientErr{
		Kind:  KindUpload,
		err:   ErrUploadFailed,
		Cause: cause,
	}
}

func IsInvalidFileType(err error) bool {
	return errors.Is(err, ErrInvalidFileType)
}

func IsFileTooLarge(err error) bool {
	return errors.Is(err, ErrFileTooLarge)
}

func IsUploadFailed(err error) bool {
	return errors.Is(err, ErrUploadFailed)
}
