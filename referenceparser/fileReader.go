// Package referenceparser provides the reference tables used by the annotation
// pipeline: the compiled-in defaults and a loader for TSV replacements.
package referenceparser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// openTableFile reads name from dir and returns a UTF-8 reader over it.
// ok is false when the file does not exist.
func openTableFile(dir, name string) (r io.Reader, ok bool, err error) {
	path := filepath.Join(dir, filepath.Base(name))

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return DecodeText(content), true, nil
}

// DecodeText returns content as UTF-8. Anything that is not valid UTF-8 is
// taken to be ISO-8859-1, the usual encoding of exported drug lists.
func DecodeText(content []byte) io.Reader {
	if utf8.Valid(content) {
		return bytes.NewReader(content)
	}
	return charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(content))
}
