package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// kappa places cubic control points so four curves approximate a circle.
const kappa = 0.5522847

func (p *painter) fill(rect image.Rectangle, c color.NRGBA, radius float64) {
	if c.A == 0 || rect.Empty() {
		return
	}
	src := image.NewUniform(c)
	if radius <= 0 {
		draw.Draw(p.dst, rect, src, image.Point{}, draw.Over)
		return
	}
	mask := roundedMask(rect.Dx(), rect.Dy(), float32(radius*p.scale))
	draw.DrawMask(p.dst, rect, src, image.Point{}, mask, image.Point{}, draw.Over)
}

// roundedMask returns an anti-aliased w×h alpha mask of a rectangle with corner radius r.
func roundedMask(w, h int, r float32) *image.Alpha {
	fw, fh := float32(w), float32(h)
	r = min(r, fw/2, fh/2)
	k := r * kappa

	z := vector.NewRasterizer(w, h)
	z.MoveTo(r, 0)
	z.LineTo(fw-r, 0)
	z.CubeTo(fw-r+k, 0, fw, r-k, fw, r)
	z.LineTo(fw, fh-r)
	z.CubeTo(fw, fh-r+k, fw-r+k, fh, fw-r, fh)
	z.LineTo(r, fh)
	z.CubeTo(r-k, fh, 0, fh-r+k, 0, fh-r)
	z.LineTo(0, r)
	z.CubeTo(0, r-k, r-k, 0, r, 0)
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}
