package base64

import (
	stdBase64 "encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	dataPrefix   = "data:"
	base64Marker = ";base64,"
)

var ErrInvalidDataURL = errors.New("invalid base64 data url")

// GetContentType returns the media type of a "data:<type>;base64,<payload>" string.
func GetContentType(file string) string {
	if !strings.HasPrefix(file, dataPrefix) {
		return ""
	}

	end := strings.Index(file, base64Marker)
	if end < len(dataPrefix) {
		return ""
	}

	return file[len(dataPrefix):end]
}

// Decode splits a data url into its payload bytes and media type.
func Decode(file string) ([]byte, string, error) {
	contentType := GetContentType(file)
	if contentType == "" {
		return nil, "", ErrInvalidDataURL
	}

	payload := file[strings.Index(file, base64Marker)+len(base64Marker):]

	data, err := stdBase64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidDataURL, err)
	}

	return data, contentType, nil
}
