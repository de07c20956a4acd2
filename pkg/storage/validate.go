package storage

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
)

// Magic byte prefixes per MIME type. Content sniffing decides the type; the
// client-supplied filename and Content-Type header are never trusted.
var magicBytes = map[string][][]byte{
	"image/jpeg":      {{0xFF, 0xD8, 0xFF}},
	"image/png":       {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	"image/gif":       {{0x47, 0x49, 0x46, 0x38, 0x37, 0x61}, {0x47, 0x49, 0x46, 0x38, 0x39, 0x61}},
	"image/webp":      {{0x52, 0x49, 0x46, 0x46}},
	"application/pdf": {{0x25, 0x50, 0x44, 0x46}},
}

var imageMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var documentMIMETypes = map[string]bool{
	"application/pdf": true,
}

// DetectAndValidate sniffs the MIME type from content and verifies the magic
// bytes match. The allowed set is one of imageMIMETypes or documentMIMETypes.
func DetectAndValidate(data []byte, allowed map[string]bool) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty file")
	}

	detected := http.DetectContentType(data)
	// DetectContentType appends parameters for some types
	if idx := strings.Index(detected, ";"); idx >= 0 {
		detected = detected[:idx]
	}

	if !allowed[detected] {
		return "", fmt.Errorf("unsupported file type %s", detected)
	}

	prefixes, ok := magicBytes[detected]
	if !ok {
		return "", fmt.Errorf("unsupported file type %s", detected)
	}
	for _, prefix := range prefixes {
		if bytes.HasPrefix(data, prefix) {
			return detected, nil
		}
	}
	return "", fmt.Errorf("file content does not match detected type %s", detected)
}

// ValidateImage returns the detected MIME type for an allowed image upload.
func ValidateImage(data []byte) (string, error) {
	return DetectAndValidate(data, imageMIMETypes)
}

// ValidateDocument returns the detected MIME type for an allowed CV document.
func ValidateDocument(data []byte) (string, error) {
	return DetectAndValidate(data, documentMIMETypes)
}
