package handlers

import (
	"errors"
	"net/http"

	"github.com/giygas/medtext-analyzer/annotator"
	"github.com/giygas/medtext-analyzer/upload"
	"github.com/giygas/medtext-analyzer/validation"
)

// Error kinds reported in the "kind" field of error responses
const (
	KindEmptyInput          = "empty_input"
	KindTextTooLong         = "text_too_long"
	KindInvalidEncoding     = "invalid_encoding"
	KindInvalidJSON         = "invalid_json"
	KindInvalidParameter    = "invalid_parameter"
	KindTooManyTexts        = "too_many_texts"
	KindRequestTooLarge     = "request_too_large"
	KindHeadersTooLarge     = "headers_too_large"
	KindRateLimited         = "rate_limited"
	KindUnsupportedFileType = "unsupported_file_type"
	KindFileRead            = "file_read_error"
	KindFileTooLarge        = "file_too_large"
	KindUnavailable         = "tables_unavailable"
	KindInternal            = "internal_error"
)

// classify maps an error to its HTTP status and kind. Unknown errors are internal.
func classify(err error) (int, string) {
	var maxBytes *http.MaxBytesError

	switch {
	case errors.Is(err, annotator.ErrEmptyInput):
		return http.StatusBadRequest, KindEmptyInput
	case errors.Is(err, validation.ErrTextTooLong):
		return http.StatusRequestEntityTooLarge, KindTextTooLong
	case errors.Is(err, validation.ErrInvalidEncoding):
		return http.StatusBadRequest, KindInvalidEncoding
	case errors.Is(err, upload.ErrUnsupportedFileType):
		return http.StatusUnsupportedMediaType, KindUnsupportedFileType
	case errors.Is(err, upload.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, KindFileTooLarge
	case errors.Is(err, upload.ErrFileRead):
		return http.StatusBadRequest, KindFileRead
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge, KindRequestTooLarge
	default:
		return http.StatusInternalServerError, KindInternal
	}
}
