// Package datauri encodes local images as self-contained base64 data URIs.
package datauri

import (
	"encoding/base64"
	"errors"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMIMEType is used when the file extension has no known mapping.
const DefaultMIMEType = "image/jpeg"

const (
	scheme       = "data:"
	base64Marker = ";base64,"
)

// ErrMalformed is returned by Decode for strings that are not base64 data URIs.
var ErrMalformed = errors.New("malformed data URI")

// Encode reads the file at path and returns it as
// "data:<mime>;base64,<payload>". File errors are returned as-is.
func Encode(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return FromBytes(path, data), nil
}

// FromBytes encodes data that is already in memory. name is only used to
// guess the MIME type.
func FromBytes(name string, data []byte) string {
	var b strings.Builder
	mimeType := MIMEType(name)

	b.Grow(len(scheme) + len(mimeType) + len(base64Marker) + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString(scheme)
	b.WriteString(mimeType)
	b.WriteString(base64Marker)
	b.WriteString(base64.StdEncoding.EncodeToString(data))

	return b.String()
}

// MIMEType guesses a media type from the extension of name, without
// parameters. Unknown or missing extensions yield DefaultMIMEType.
func MIMEType(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return DefaultMIMEType
	}

	guessed := mime.TypeByExtension(ext)
	if guessed == "" {
		return DefaultMIMEType
	}

	// Some tables append parameters such as "; charset=utf-8".
	mediaType, _, err := mime.ParseMediaType(guessed)
	if err != nil || !strings.Contains(mediaType, "/") {
		return DefaultMIMEType
	}

	return mediaType
}

// Decode splits a base64 data URI into its media type and raw bytes.
func Decode(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, scheme)
	if !ok {
		return "", nil, ErrMalformed
	}

	mediaType, payload, ok := strings.Cut(rest, base64Marker)
	if !ok {
		return "", nil, ErrMalformed
	}

	typ, subtype, ok := strings.Cut(mediaType, "/")
	if !ok || typ == "" || subtype == "" {
		return "", nil, ErrMalformed
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, errors.Join(ErrMalformed, err)
	}

	return mediaType, data, nil
}
