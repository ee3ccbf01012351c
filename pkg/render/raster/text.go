package raster

import (
	"fmt"
	"image"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"flyer_builder/internal/flyer"
)

const (
	lineSpacing = 1.25
	ellipsis    = "…"
)

func (p *painter) face(bold bool, size float64) (font.Face, error) {
	key := faceKey{bold: bold, size: size * p.scale}
	if f, ok := p.faces[key]; ok {
		return f, nil
	}

	src := p.r.regular
	if bold {
		src = p.r.bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{Size: key.size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, fmt.Errorf("could not create face: %w", err)
	}
	p.faces[key] = f
	return f, nil
}

// text draws n.Text wrapped to rect, clipped to rect and cut to n.MaxLines with an
// ellipsis on the last kept line.
func (p *painter) text(rect image.Rectangle, n flyer.Node) error {
	if strings.TrimSpace(n.Text) == "" || n.FontSize <= 0 || rect.Empty() {
		return nil
	}

	face, err := p.face(n.Bold, n.FontSize)
	if err != nil {
		return err
	}

	lines := wrap(face, n.Text, rect.Dx())
	if n.MaxLines > 0 && len(lines) > n.MaxLines {
		lines = lines[:n.MaxLines]
		lines[len(lines)-1] = truncate(face, lines[len(lines)-1], rect.Dx())
	}

	lineH := math.Ceil(n.FontSize*lineSpacing) * p.scale
	blockH := lineH * float64(len(lines))
	top := float64(rect.Min.Y)
	if n.Middle {
		top += (float64(rect.Dy()) - blockH) / 2
	}

	m := face.Metrics()
	ascent := float64(m.Ascent.Ceil())
	descent := float64(m.Descent.Ceil())
	// center the glyph box inside each line
	pad := (lineH - ascent - descent) / 2

	clip := p.dst.SubImage(rect).(*image.RGBA)
	d := font.Drawer{Dst: clip, Src: image.NewUniform(n.Color), Face: face}
	for i, line := range lines {
		width := d.MeasureString(line).Ceil()
		x := rect.Min.X
		switch n.Align {
		case flyer.AlignCenter:
			x += (rect.Dx() - width) / 2
		case flyer.AlignRight:
			x += rect.Dx() - width
		}
		y := top + float64(i)*lineH + pad + ascent
		d.Dot = fixed.P(x, int(math.Round(y)))
		d.DrawString(line)
	}
	return nil
}

// wrap breaks s into lines no wider than maxW. Explicit newlines always break;
// words longer than a line are split by rune.
func wrap(face font.Face, s string, maxW int) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		cur := ""
		for _, w := range words {
			next := w
			if cur != "" {
				next = cur + " " + w
			}
			if font.MeasureString(face, next).Ceil() <= maxW {
				cur = next
				continue
			}
			if cur != "" {
				lines = append(lines, cur)
			}
			cur = w
			for font.MeasureString(face, cur).Ceil() > maxW {
				head, tail := splitToFit(face, cur, maxW)
				lines = append(lines, head)
				cur = tail
			}
		}
		lines = append(lines, cur)
	}
	return lines
}

// splitToFit returns the longest prefix of s that fits maxW (at least one rune) and the rest.
func splitToFit(face font.Face, s string, maxW int) (string, string) {
	runes := []rune(s)
	n := 1
	for n < len(runes) && font.MeasureString(face, string(runes[:n+1])).Ceil() <= maxW {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}

// truncate appends an ellipsis to s, dropping runes until it fits maxW.
func truncate(face font.Face, s string, maxW int) string {
	runes := []rune(strings.TrimRight(s, " "))
	for len(runes) > 0 {
		out := string(runes) + ellipsis
		if font.MeasureString(face, out).Ceil() <= maxW {
			return out
		}
		runes = runes[:len(runes)-1]
	}
	return ellipsis
}
