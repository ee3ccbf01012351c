// Package raster paints a flyer layout tree into a bitmap.
package raster

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"flyer_builder/internal/flyer"
	imageutil "flyer_builder/pkg/utils/image"
)

var (
	ErrInvalidScale = errors.New("scale must be positive")
	ErrResource     = errors.New("could not load embedded resource")
)

// Options controls one rasterization. A nil Background leaves uncovered pixels transparent.
type Options struct {
	Background color.Color
	Scale      float64
}

// Rasterizer draws layouts with the Go font family. It is safe for concurrent use;
// faces and decoded images are kept per call.
type Rasterizer struct {
	regular *opentype.Font
	bold    *opentype.Font
	decode  func(string) (image.Image, error)
}

func New() (*Rasterizer, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("could not parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("could not parse bold font: %w", err)
	}
	return &Rasterizer{regular: regular, bold: bold, decode: imageutil.DecodeDataURI}, nil
}

// Rasterize paints layout at opts.Scale. The output is Width×Scale by Height×Scale pixels.
func (r *Rasterizer) Rasterize(ctx context.Context, layout flyer.Layout, opts Options) (image.Image, error) {
	if !(opts.Scale > 0) || math.IsInf(opts.Scale, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScale, opts.Scale)
	}

	w := int(math.Round(layout.Width * opts.Scale))
	h := int(math.Round(layout.Height * opts.Scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: empty canvas %dx%d", ErrInvalidScale, w, h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if opts.Background != nil {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	}

	p := &painter{
		r:      r,
		dst:    dst,
		scale:  opts.Scale,
		faces:  map[faceKey]font.Face{},
		images: map[string]image.Image{},
	}
	defer p.close()

	if err := p.paint(ctx, layout.Root); err != nil {
		return nil, err
	}
	return dst, nil
}

type faceKey struct {
	bold bool
	size float64
}

// painter holds the state of a single Rasterize call.
type painter struct {
	r      *Rasterizer
	dst    *image.RGBA
	scale  float64
	faces  map[faceKey]font.Face
	images map[string]image.Image
}

func (p *painter) close() {
	for _, f := range p.faces {
		f.Close()
	}
}

func (p *painter) paint(ctx context.Context, n flyer.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rect := p.pixelRect(n.Rect)
	switch n.Kind {
	case flyer.KindBox:
		p.fill(rect, n.Fill, n.Radius)
	case flyer.KindPlaceholder:
		p.fill(rect, n.Fill, n.Radius)
		if err := p.text(rect, n); err != nil {
			return err
		}
	case flyer.KindImage:
		if err := p.picture(rect, n); err != nil {
			return err
		}
	case flyer.KindText:
		if err := p.text(rect, n); err != nil {
			return err
		}
	}

	for _, c := range n.Children {
		if err := p.paint(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (p *painter) pixelRect(r flyer.Rect) image.Rectangle {
	s := p.scale
	return image.Rect(
		int(math.Round(r.X*s)),
		int(math.Round(r.Y*s)),
		int(math.Round((r.X+r.W)*s)),
		int(math.Round((r.Y+r.H)*s)),
	)
}

func (p *painter) picture(rect image.Rectangle, n flyer.Node) error {
	if rect.Empty() || n.Src == "" {
		return nil
	}

	src, ok := p.images[n.Src]
	if !ok {
		img, err := p.r.decode(n.Src)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrResource, n.Role, err)
		}
		p.images[n.Src] = img
		src = img
	}

	scaled := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, coverRect(src.Bounds(), rect.Dx(), rect.Dy()), draw.Src, nil)

	if n.Radius <= 0 {
		draw.Draw(p.dst, rect, scaled, image.Point{}, draw.Over)
		return nil
	}
	mask := roundedMask(rect.Dx(), rect.Dy(), float32(n.Radius*p.scale))
	draw.DrawMask(p.dst, rect, scaled, image.Point{}, mask, image.Point{}, draw.Over)
	return nil
}

// coverRect is the centered part of src with the aspect ratio of w×h, so scaling it
// into w×h fills the frame without distortion.
func coverRect(src image.Rectangle, w, h int) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	if sw <= 0 || sh <= 0 || w <= 0 || h <= 0 {
		return src
	}

	if sw*h > sh*w {
		cw := sh * w / h
		x0 := src.Min.X + (sw-cw)/2
		return image.Rect(x0, src.Min.Y, x0+cw, src.Max.Y)
	}
	ch := sw * h / w
	y0 := src.Min.Y + (sh-ch)/2
	return image.Rect(src.Min.X, y0, src.Max.X, y0+ch)
}
