package service

import "errors"

var (
	ErrIDRequired        = errors.New("id is required")
	ErrNotFound          = errors.New("document not found")
	ErrReaderNil         = errors.New("reader is nil")
	ErrCourseNotFound    = errors.New("course not found")
	ErrPromotionFailed   = errors.New("document could not be published and was left pending")
	ErrIssuerUnavailable = errors.New("access url unavailable")
	ErrStorage           = errors.New("storage operation failed")
	ErrInvalidStatus     = errors.New("invalid status filter")
)
