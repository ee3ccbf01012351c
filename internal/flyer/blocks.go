package flyer

import (
	"image/color"
	"math"
)

// approxWidth estimates the rendered width of s at size. Only used to size pills
// and chips; the rasterizer clips anything that overflows.
func approxWidth(s string, size float64) float64 {
	return math.Ceil(float64(len([]rune(s))) * size * 0.6)
}

func lineHeight(size float64) float64 {
	return math.Ceil(size * 1.25)
}

var channelGlyphs = map[string]string{
	"phone":     "T",
	"email":     "@",
	"facebook":  "f",
	"telegram":  "tg",
	"instagram": "ig",
	"tiktok":    "tt",
}

// contactLine is a channel glyph followed by the value, aligned inside r.
func contactLine(item ContactItem, r Rect, size float64, c, glyphFill color.NRGBA, align Align) Node {
	g := size * 1.1
	line := box("contact-item", r, transparent, 0)
	valueW := math.Min(approxWidth(item.Value, size), r.W-g-10)

	gx := r.X
	if align == AlignRight {
		gx = r.Right() - valueW - 10 - g
	}
	glyph := placeholder("contact-glyph", Rect{X: gx, Y: r.Y + (r.H-g)/2, W: g, H: g},
		channelGlyphs[item.Key], glyphFill, c, g/2, size*0.55)
	value := text("contact-value", Rect{X: gx + g + 10, Y: r.Y, W: r.Right() - gx - g - 10, H: r.H},
		item.Value, size, false, c, AlignLeft, 1)
	value.Middle = true

	line.Children = append(line.Children, glyph, value)
	return line
}

// statRow lays chips left to right, wrapping onto a new row when they run out of width.
func statRow(chips []StatChip, r Rect, size, padX, chipH, gap float64) Node {
	row := box("stats", r, transparent, 0)
	x, y := r.X, r.Y
	for _, s := range chips {
		w := approxWidth(s.Label, size) + 2*padX
		if x > r.X && x+w > r.Right() {
			x = r.X
			y += chipH + gap
		}
		chip := placeholder("stat", Rect{X: x, Y: y, W: w, H: chipH}, s.Label, gray50, gray800, 12, size)
		row.Children = append(row.Children, chip)
		x += w + gap
	}
	return row
}

// avatar is the agent photo as a circle, or a labelled placeholder when missing.
func avatar(src string, r Rect, fill, labelColor color.NRGBA, labelSize float64) Node {
	if src != "" {
		return picture("agent-photo", r, src, r.W/2)
	}
	return placeholder("agent-photo", r, "Photo", fill, labelColor, r.W/2, labelSize)
}

// qrSlot is the agent QR code, or a labelled placeholder when missing.
func qrSlot(src string, r Rect, fill, labelColor color.NRGBA, labelSize float64) Node {
	if src != "" {
		return picture("agent-qr", r, src, 8)
	}
	return placeholder("agent-qr", r, "QR", fill, labelColor, 8, labelSize)
}

// pill is a rounded badge sized to its label.
func pill(role, label string, right, y, size float64, fill, c color.NRGBA) Node {
	w := approxWidth(label, size) + 2*size
	h := size * 2.25
	n := placeholder(role, Rect{X: right - w, Y: y, W: w, H: h}, label, fill, c, h/2, size)
	n.Bold = true
	return n
}

// splitRows puts the first ceil(n/2) items on the top row and the rest below.
func splitRows(items []ContactItem) ([]ContactItem, []ContactItem) {
	mid := (len(items) + 1) / 2
	return items[:mid], items[mid:]
}
