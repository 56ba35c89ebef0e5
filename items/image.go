package items

import (
	"encoding/base64"
	"errors"
	"mime"
	"strings"
)

// ErrInvalidImage means the submitted image payload could not be decoded,
// or decoded to nothing.
var ErrInvalidImage = errors.New("invalid image encoding")

// DefaultContentType is used when an image payload does not declare a media
// type.
const DefaultContentType = "application/octet-stream"

// DecodeImage parses an image payload submitted as either a data URI
// ("data:image/png;base64,...") or a bare base64 string. It returns the
// declared content type and the decoded bytes.
//
// Only the media type segment of a data URI header is examined; any
// parameters after the first ';' are ignored. A header without a
// recognizable media type falls back to DefaultContentType, as does a bare
// payload.
func DecodeImage(payload string) (string, []byte, error) {
	contentType := DefaultContentType
	if strings.HasPrefix(payload, "data:") {
		i := strings.Index(payload, ",")
		if i == -1 {
			return "", nil, ErrInvalidImage
		}
		header := payload[len("data:"):i]
		payload = payload[i+1:]
		if j := strings.Index(header, ";"); j != -1 {
			header = header[:j]
		}
		if strings.Contains(header, "/") {
			contentType = header
		}
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, ErrInvalidImage
	}
	if len(data) == 0 {
		return "", nil, ErrInvalidImage
	}
	return contentType, data, nil
}

// ImageExtension picks a file extension, with the leading dot, for the
// given content type. Unknown types get ".bin". A few common image types
// are pinned so the choice does not depend on the host's mime tables.
func ImageExtension(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case DefaultContentType:
		return ".bin"
	}
	exts, err := mime.ExtensionsByType(contentType)
	if err != nil || len(exts) == 0 {
		return ".bin"
	}
	return exts[0]
}
