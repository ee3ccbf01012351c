// Package qr renders QR codes that point at the agent contact page.
package qr

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// DefaultSize is the edge length in pixels of generated codes.
const DefaultSize = 512

var ErrEmptyContent = errors.New("qr content is empty")

// PNG encodes content as a size×size QR code with medium error correction.
func PNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = DefaultSize
	}

	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("could not encode qr: %w", err)
	}
	code, err = barcode.Scale(code, size, size)
	if err != nil {
		return nil, fmt.Errorf("could not scale qr: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		return nil, fmt.Errorf("could not encode png: %w", err)
	}
	return buf.Bytes(), nil
}
