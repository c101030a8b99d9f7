//nolint:nolintlint,revive // utils is a common and acceptable package name for utility functions.
package utils

import (
	"errors"
	"io/fs"
	"mime"
	"os"
	"strings"
)

//nolint:gochecknoglobals // Immutable replacer used as a constant.
var pathSeparatorReplacer = strings.NewReplacer("/", "_", `\`, "_")

// IsTextContentType reports whether a response with this Content-Type can be dumped into a log:
// text/*, JSON or XHTML in UTF-8 or US-ASCII (or without a charset).
func IsTextContentType(contentType string) bool {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	isText := strings.HasPrefix(mediaType, "text/") ||
		mediaType == "application/json" ||
		mediaType == "application/xhtml+xml"
	if !isText {
		return false
	}

	switch strings.ToLower(params["charset"]) {
	case "", "utf-8", "us-ascii":
		return true
	default:
		return false
	}
}

// IsPathExist reports whether a file or folder exists at path.
func IsPathExist(path string) (bool, error) {
	_, err := os.Stat(path)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// ReplacePathSeparators turns "/" and "\" into "_" so that name stays a single path element.
func ReplacePathSeparators(name string) string {
	return pathSeparatorReplacer.Replace(name)
}
