package album

import (
	"net/url"
	"strings"
)

// ValidateURL reports whether rawURL is an absolute URL with both a scheme and a host.
func ValidateURL(rawURL string) bool {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	return parsedURL.Scheme != "" && parsedURL.Host != ""
}

// ExtractAlbumName returns the last path segment of the album URL with hyphens replaced by spaces.
// Escapes such as "%20" are kept as written. A URL ending with a slash yields an empty name.
func ExtractAlbumName(rawURL string) string {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	return strings.ReplaceAll(lastSegment(parsedURL.EscapedPath()), "-", " ")
}

// baseURL returns scheme://host of rawURL.
func baseURL(rawURL string) (string, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", ErrInvalidBaseURL
	}

	return parsedURL.Scheme + "://" + parsedURL.Host, nil
}

func lastSegment(p string) string {
	return p[strings.LastIndex(p, "/")+1:]
}

// repairPercentEscapes escapes every "%" that does not start a %XX sequence,
// so links like ".../100%.mp3" can still be parsed and requested.
func repairPercentEscapes(rawURL string) string {
	if !strings.Contains(rawURL, "%") {
		return rawURL
	}

	var builder strings.Builder

	builder.Grow(len(rawURL))

	for i := 0; i < len(rawURL); i++ {
		if rawURL[i] == '%' && (i+2 >= len(rawURL) || !isHexDigit(rawURL[i+1]) || !isHexDigit(rawURL[i+2])) {
			builder.WriteString("%25")

			continue
		}

		builder.WriteByte(rawURL[i])
	}

	return builder.String()
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
