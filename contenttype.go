package restdb

import (
	"fmt"
	"mime"
)

// ContentType identifies one of the supported wire formats.
type ContentType string

const (
	ContentTypeJSON       ContentType = "application/json"
	ContentTypeCSV        ContentType = "text/csv"
	ContentTypeFormData   ContentType = "multipart/form-data"
	ContentTypeURLEncoded ContentType = "application/x-www-form-urlencoded"
	// ContentTypeHTML is output only and rejected on the input path
	ContentTypeHTML ContentType = "text/html"
)

// ParseContentType parses a Content-Type header value into a supported input
// content type and its parameters (e.g. the multipart boundary).
func ParseContentType(header string) (ContentType, map[string]string, error) {
	if header == "" {
		return ContentTypeJSON, nil, nil
	}
	mediaType, mediaParams, err := mime.ParseMediaType(header)
	if err != nil {
		return "", nil, fmt.Errorf("malformed content type %q: %w", header, ErrUnsupportedContentType)
	}
	switch ContentType(mediaType) {
	case ContentTypeJSON, ContentTypeCSV, ContentTypeFormData, ContentTypeURLEncoded:
		return ContentType(mediaType), mediaParams, nil
	case ContentTypeHTML:
		return "", nil, fmt.Errorf("text/html is output only: %w", ErrUnsupportedContentType)
	}
	return "", nil, fmt.Errorf("content type %q: %w", mediaType, ErrUnsupportedContentType)
}
