package services

import "strings"

// MaxImageBytes matches the bucket's upload policy.
const MaxImageBytes = 6 * 1024 * 1024

const (
	MaxCompletedImages = 5
	MaxProductImages   = 5
	MinDescriptionLen  = 10
)

// ImageFile is an in-memory upload candidate. All saga uploads are validated
// with the same type and size checks before any external effect.
type ImageFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

func validateImage(img ImageFile, label string) error {
	if img.Filename == "" || len(img.Data) == 0 {
		return &ValidationError{Field: label, Reason: "file is required"}
	}
	if !strings.HasPrefix(img.ContentType, "image/") {
		return &ValidationError{Field: label, Reason: "file must be an image"}
	}
	if len(img.Data) > MaxImageBytes {
		return &ValidationError{Field: label, Reason: "file exceeds the 6MB limit"}
	}
	return nil
}
