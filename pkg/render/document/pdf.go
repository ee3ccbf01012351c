// Package document wraps a rendered bitmap into a single page PDF.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

var ErrInvalidPage = errors.New("page size must be positive")

const imageName = "flyer"

// PDFEncoder builds one page documents whose page size, in points, equals the
// logical canvas size. The image is placed at the origin and fills the page.
type PDFEncoder struct {
	Title   string
	Creator string
	// Now stamps the creation and modification dates; zero time.Now.
	Now func() time.Time
}

func NewPDFEncoder(title, creator string) *PDFEncoder {
	return &PDFEncoder{Title: title, Creator: creator, Now: time.Now}
}

// Encode embeds the PNG bytes on a width×height page.
func (e *PDFEncoder) Encode(pngData []byte, width, height float64) ([]byte, error) {
	if !(width > 0) || !(height > 0) {
		return nil, fmt.Errorf("%w: %vx%v", ErrInvalidPage, width, height)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	if e.Title != "" {
		pdf.SetTitle(e.Title, true)
	}
	if e.Creator != "" {
		pdf.SetCreator(e.Creator, true)
	}
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	stamp := now()
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)

	pdf.AddPage()
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imageName, opts, bytes.NewReader(pngData))
	pdf.ImageOptions(imageName, 0, 0, width, height, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("could not write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
