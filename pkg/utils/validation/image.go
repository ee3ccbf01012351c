// pkg/utils/validation/image.go
package validation

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var (
	ErrFileSize     = errors.New("file size exceeds the upload limit")
	ErrFileType     = errors.New("invalid file type. Allowed types: JPG, PNG, WEBP")
	ErrFileRequired = errors.New("no file provided")
)

const MaxImageSize = 10 * 1024 * 1024 // 10MB

var AllowedImageTypes = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ValidateImage checks an uploaded file against maxSize (MaxImageSize when <= 0)
// and the allowed extensions.
func ValidateImage(file *multipart.FileHeader, maxSize int64) error {
	if file == nil {
		return ErrFileRequired
	}

	if maxSize <= 0 {
		maxSize = MaxImageSize
	}
	if file.Size > maxSize {
		return ErrFileSize
	}

	ext := filepath.Ext(strings.ToLower(file.Filename))
	if !AllowedImageTypes[ext] {
		return ErrFileType
	}

	return nil
}

// ValidateImages checks every file and stops at the first failure.
func ValidateImages(files []*multipart.FileHeader, maxSize int64) error {
	if len(files) == 0 {
		return ErrFileRequired
	}
	for _, f := range files {
		if err := ValidateImage(f, maxSize); err != nil {
			return err
		}
	}
	return nil
}
