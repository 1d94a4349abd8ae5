package apperror

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrPersistence     = errors.New("save failed")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrUnsupportedFile = errors.New("unsupported file type")
)
