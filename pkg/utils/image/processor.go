package image

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"strings"

	"github.com/chai2010/webp"

	"flyer_builder/internal/model"
)

var (
	ErrInvalidDataURI    = errors.New("invalid data uri")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrImageTooLarge     = errors.New("image dimensions too large")
)

// MaxPixels caps width*height of an upload.
var MaxPixels = 40_000_000

var (
	AllowedImageTypes = map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
	}
)

// Ingest reads one uploaded image, checks that it decodes as jpeg, png or webp and
// returns it as a data URI preview. The original bytes are kept untouched.
func Ingest(name string, r io.Reader) (model.ImageAsset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.ImageAsset{}, fmt.Errorf("could not read %s: %w", name, err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return model.ImageAsset{}, fmt.Errorf("could not decode %s: %w", name, err)
	}
	contentType := "image/" + format
	if !AllowedImageTypes[contentType] {
		return model.ImageAsset{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(MaxPixels) {
		return model.ImageAsset{}, fmt.Errorf("%w: %s is %dx%d", ErrImageTooLarge, name, cfg.Width, cfg.Height)
	}

	return model.ImageAsset{Preview: DataURI(contentType, data), Name: name}, nil
}

// IngestFile opens and ingests a multipart upload.
func IngestFile(file *multipart.FileHeader) (model.ImageAsset, error) {
	src, err := file.Open()
	if err != nil {
		return model.ImageAsset{}, fmt.Errorf("could not open file: %w", err)
	}
	defer src.Close()

	return Ingest(file.Filename, src)
}

// IngestFiles ingests every upload in order. Nothing is returned unless all succeed.
func IngestFiles(files []*multipart.FileHeader) ([]model.ImageAsset, error) {
	out := make([]model.ImageAsset, 0, len(files))
	for _, f := range files {
		asset, err := IngestFile(f)
		if err != nil {
			return nil, err
		}
		out = append(out, asset)
	}
	return out, nil
}

// DataURI base64 encodes data under the given media type.
func DataURI(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURI splits a base64 data URI into its media type and payload.
func ParseDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	contentType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("%w: only base64 payloads are supported", ErrInvalidDataURI)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return contentType, data, nil
}

// DecodeDataURI decodes the image carried by a data URI.
func DecodeDataURI(uri string) (image.Image, error) {
	_, data, err := ParseDataURI(uri)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not decode image: %w", err)
	}
	return img, nil
}

// Encode writes img in format (jpeg, png or webp) and returns its content type.
func Encode(w io.Writer, img image.Image, format string) (string, error) {
	var err error
	switch format {
	case "jpeg", "jpg":
		format = "jpeg"
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: 85})
	case "png":
		err = png.Encode(w, img)
	case "webp":
		err = webp.Encode(w, img, &webp.Options{Lossless: false, Quality: 85})
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	if err != nil {
		return "", fmt.Errorf("could not encode image: %w", err)
	}
	return "image/" + format, nil
}
