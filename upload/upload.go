// Package upload turns an uploaded document into the raw text the annotation
// pipeline consumes. Only plain-text formats are read; binary documents such
// as PDF or Word files are rejected with ErrUnsupportedFileType.
package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/giygas/medtext-analyzer/referenceparser"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileRead            = errors.New("failed to read file")
	ErrFileTooLarge        = errors.New("file too large")
)

// DefaultMaxFileSize applies when a non-positive limit is given
const DefaultMaxFileSize = 2 * 1024 * 1024

var supportedExtensions = map[string]bool{
	".txt":  true,
	".text": true,
	".md":   true,
	".csv":  true,
	".tsv":  true,
	".log":  true,
}

// IsSupported reports whether filename has an extension ReadText accepts
func IsSupported(filename string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// ReadText reads at most limit bytes from r and returns them as UTF-8 text.
// Content that is not valid UTF-8 is decoded as ISO-8859-1. A leading BOM is dropped.
func ReadText(filename string, r io.Reader, limit int64) (string, error) {
	if !IsSupported(filename) {
		ext := filepath.Ext(filename)
		if ext == "" {
			ext = "(none)"
		}
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, ext)
	}

	if limit <= 0 {
		limit = DefaultMaxFileSize
	}

	content, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFileRead, err)
	}
	if int64(len(content)) > limit {
		return "", fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, limit)
	}

	decoded, err := io.ReadAll(referenceparser.DecodeText(content))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFileRead, err)
	}

	return strings.TrimPrefix(string(decoded), "\uFEFF"), nil
}

// ReadFile opens path and reads it with ReadText
func ReadFile(path string, limit int64) (string, error) {
	if !IsSupported(path) {
		return ReadText(path, nil, limit)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFileRead, err)
	}
	defer f.Close()

	return ReadText(path, f, limit)
}
