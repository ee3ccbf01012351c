// Package export turns a flyer layout into downloadable PNG and PDF files.
package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"time"

	"github.com/sirupsen/logrus"

	"flyer_builder/internal/flyer"
	"flyer_builder/pkg/logger"
	"flyer_builder/pkg/render/raster"
	imageutil "flyer_builder/pkg/utils/image"
)

type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// ParseFormat accepts "png" and "pdf".
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatPNG, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrFormat, s)
}

// Scale is the oversampling factor of exported bitmaps.
const Scale = 3

// Background replaces transparent regions in exports and previews.
var Background = color.White

// Rasterizer paints a layout into a bitmap.
type Rasterizer interface {
	Rasterize(ctx context.Context, layout flyer.Layout, opts raster.Options) (image.Image, error)
}

// DocumentEncoder wraps PNG bytes into a single page document of width×height.
type DocumentEncoder interface {
	Encode(pngData []byte, width, height float64) ([]byte, error)
}

// Sink receives finished artifacts and reports where they ended up. Remove undoes
// a Save given the location it returned.
type Sink interface {
	Save(ctx context.Context, a Artifact) (string, error)
	Remove(ctx context.Context, location string) error
}

// Artifact is a finished export held in memory. Width and Height are pixels for
// PNG and page units for PDF.
type Artifact struct {
	Filename    string   `json:"filename"`
	ContentType string   `json:"contentType"`
	Format      Format   `json:"format"`
	Width       float64  `json:"width"`
	Height      float64  `json:"height"`
	Data        []byte   `json:"-"`
	Locations   []string `json:"locations,omitempty"`
}

type Exporter struct {
	raster Rasterizer
	doc    DocumentEncoder
	sinks  []Sink
	log    *logrus.Logger
}

type Option func(*Exporter)

// WithSink adds a sink that every successful export is saved to.
func WithSink(s Sink) Option {
	return func(e *Exporter) { e.sinks = append(e.sinks, s) }
}

func WithLogger(l *logrus.Logger) Option {
	return func(e *Exporter) { e.log = l }
}

func New(r Rasterizer, doc DocumentEncoder, opts ...Option) *Exporter {
	e := &Exporter{raster: r, doc: doc, log: logger.Log}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Export dispatches on format.
func (e *Exporter) Export(ctx context.Context, format Format, layout flyer.Layout, title string) (Artifact, error) {
	switch format {
	case FormatPNG:
		return e.ExportPNG(ctx, layout, title)
	case FormatPDF:
		return e.ExportPDF(ctx, layout, title)
	}
	return Artifact{}, fmt.Errorf("%w: %q", ErrFormat, format)
}

// ExportPNG rasterizes layout at Scale on Background and encodes it as PNG.
// Nothing reaches a sink unless every step succeeded.
func (e *Exporter) ExportPNG(ctx context.Context, layout flyer.Layout, title string) (Artifact, error) {
	start := time.Now()
	data, bounds, err := e.renderPNG(ctx, layout, FormatPNG)
	if err != nil {
		return e.finish(ctx, FormatPNG, start, Artifact{}, err)
	}

	a := Artifact{
		Filename:    flyer.FileName(title, string(FormatPNG)),
		ContentType: "image/png",
		Format:      FormatPNG,
		Width:       float64(bounds.Dx()),
		Height:      float64(bounds.Dy()),
		Data:        data,
	}
	return e.finish(ctx, FormatPNG, start, a, nil)
}

// ExportPDF performs the same rasterization as ExportPNG and places the PNG on a
// single page sized to the unscaled layout.
func (e *Exporter) ExportPDF(ctx context.Context, layout flyer.Layout, title string) (Artifact, error) {
	start := time.Now()
	data, _, err := e.renderPNG(ctx, layout, FormatPDF)
	if err != nil {
		return e.finish(ctx, FormatPDF, start, Artifact{}, err)
	}

	doc, err := e.doc.Encode(data, layout.Width, layout.Height)
	if err != nil {
		return e.finish(ctx, FormatPDF, start, Artifact{}, fail("encode pdf", FormatPDF, ErrEncode, err))
	}

	a := Artifact{
		Filename:    flyer.FileName(title, string(FormatPDF)),
		ContentType: "application/pdf",
		Format:      FormatPDF,
		Width:       layout.Width,
		Height:      layout.Height,
		Data:        doc,
	}
	return e.finish(ctx, FormatPDF, start, a, nil)
}

func (e *Exporter) renderPNG(ctx context.Context, layout flyer.Layout, format Format) ([]byte, image.Rectangle, error) {
	img, err := e.raster.Rasterize(ctx, layout, raster.Options{Background: Background, Scale: Scale})
	if err != nil {
		return nil, image.Rectangle{}, fail("rasterize", format, ErrRasterize, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, image.Rectangle{}, fail("encode png", format, ErrEncode, err)
	}
	return buf.Bytes(), img.Bounds(), nil
}

// finish hands a successful artifact to the sinks and records metrics either way.
// A failing sink rolls back the saves that already succeeded.
func (e *Exporter) finish(ctx context.Context, format Format, start time.Time, a Artifact, err error) (Artifact, error) {
	if err == nil {
		err = e.save(ctx, format, &a)
	}

	exportsTotal.WithLabelValues(string(format), result(err)).Inc()
	exportDuration.WithLabelValues(string(format)).Observe(time.Since(start).Seconds())

	fields := logrus.Fields{"format": format, "duration": time.Since(start).String()}
	if err != nil {
		e.log.WithFields(fields).WithError(err).Error("flyer export failed")
		return Artifact{}, err
	}
	exportBytes.WithLabelValues(string(format)).Observe(float64(len(a.Data)))
	e.log.WithFields(fields).WithField("file", a.Filename).WithField("bytes", len(a.Data)).Info("flyer exported")
	return a, nil
}

func (e *Exporter) save(ctx context.Context, format Format, a *Artifact) error {
	for _, s := range e.sinks {
		loc, err := s.Save(ctx, *a)
		if err != nil {
			e.rollback(format, a.Locations)
			a.Locations = nil
			return fail("save "+a.Filename, format, ErrSink, err)
		}
		a.Locations = append(a.Locations, loc)
	}
	return nil
}

// rollback removes saved copies in reverse order, detached from the request context.
func (e *Exporter) rollback(format Format, locations []string) {
	ctx := context.Background()
	for i := len(locations) - 1; i >= 0; i-- {
		if err := e.sinks[i].Remove(ctx, locations[i]); err != nil {
			e.log.WithFields(logrus.Fields{"format": format, "location": locations[i]}).
				WithError(err).Error("could not roll back export")
		}
	}
}

// Preview renders layout at an arbitrary display scale as png or webp. Previews
// never reach the sinks.
func (e *Exporter) Preview(ctx context.Context, layout flyer.Layout, scale float64, format string) ([]byte, string, error) {
	img, err := e.raster.Rasterize(ctx, layout, raster.Options{Background: Background, Scale: scale})
	if err != nil {
		previewsTotal.WithLabelValues(string(layout.Template), result(err)).Inc()
		return nil, "", fail("rasterize preview", Format(format), ErrRasterize, err)
	}

	var buf bytes.Buffer
	contentType, err := imageutil.Encode(&buf, img, format)
	previewsTotal.WithLabelValues(string(layout.Template), result(err)).Inc()
	if err != nil {
		return nil, "", fail("encode preview", Format(format), ErrEncode, err)
	}
	return buf.Bytes(), contentType, nil
}
