package flyer

import (
	"math"

	"flyer_builder/internal/model"
)

const (
	heroPadding = 48.0
	heroGap     = 28.0
	heroBottom  = 18.0
)

// renderHero builds the single column template: header, full bleed photos, then
// stats, the contact strip and the description.
func renderHero(brand string, d Derived, photos Arrangement) Node {
	canvas := Rect{W: CanvasWidth, H: CanvasHeight}
	root := box("canvas", canvas, white, 0)
	inner := canvas.Inset(heroPadding)

	header, headerBottom := heroHeader(brand, d, inner)
	root.Children = append(root.Children, header...)

	// bottom blocks are stacked upwards from the canvas padding
	var blocks []Node
	y := inner.Bottom()
	if d.Description != "" {
		h := 3 * lineHeight(20)
		y -= h
		blocks = append(blocks, text("description", Rect{X: inner.X, Y: y, W: inner.W, H: h},
			d.Description, 20, false, gray700, AlignLeft, 3))
		y -= heroBottom
	}

	stripH := heroContactHeight(d)
	y -= stripH
	blocks = append(blocks, heroContactStrip(d, Rect{X: inner.X, Y: y, W: inner.W, H: stripH}))

	if len(d.Stats) > 0 {
		y -= heroBottom + 52
		blocks = append(blocks, statRow(d.Stats, Rect{X: inner.X, Y: y, W: inner.W, H: 52}, 20, 18, 52, 12))
	}

	photoTop := headerBottom + heroGap
	photoArea := Rect{X: inner.X, Y: photoTop, W: inner.W, H: math.Max(0, y-heroGap-photoTop)}
	root.Children = append(root.Children, photos.Place(photoArea, 8))

	for i := len(blocks) - 1; i >= 0; i-- {
		root.Children = append(root.Children, blocks[i])
	}
	return root
}

// heroHeader returns the header nodes and the y coordinate where the header ends.
func heroHeader(brand string, d Derived, inner Rect) ([]Node, float64) {
	rightW := 340.0
	leftW := inner.W - rightW - 24

	nodes := []Node{
		text("brand", Rect{X: inner.X, Y: inner.Y, W: leftW, H: 20}, brand, 16, true, gray500, AlignLeft, 1),
		text("title", Rect{X: inner.X, Y: inner.Y + 28, W: leftW, H: 52}, d.Title, 46, true, gray900, AlignLeft, 1),
		text("address", Rect{X: inner.X, Y: inner.Y + 90, W: leftW, H: 28}, d.Address, 22, false, gray600, AlignLeft, 1),
	}

	priceY := inner.Y
	if d.Type != "" {
		nodes = append(nodes, pill("type", d.Type, inner.Right(), inner.Y, 16, gray100, gray700))
		priceY += 36 + 14
	}
	if d.Price != "" {
		nodes = append(nodes, text("price", Rect{X: inner.Right() - rightW, Y: priceY, W: rightW, H: 52},
			d.Price, 44, true, gray900, AlignRight, 1))
	}
	return nodes, inner.Y + 118
}

func heroContactLines(d Derived) int {
	if !d.HasContact() {
		return 1
	}
	return len(d.Contacts)
}

func heroContactHeight(d Derived) float64 {
	n := float64(heroContactLines(d))
	content := n*28 + (n-1)*8
	return math.Max(72, content) + 44
}

func heroContactStrip(d Derived, r Rect) Node {
	strip := box("contact", r, gray900, 24)
	in := r.Inset(22)

	photo := Rect{X: in.X, Y: in.Y + (in.H-64)/2, W: 64, H: 64}
	strip.Children = append(strip.Children,
		avatar(d.AgentPhoto, photo, white10, white70, 14),
		text("contact-label", Rect{X: photo.Right() + 16, Y: photo.Y, W: 300, H: 20}, "CONTACT", 14, false, white70, AlignLeft, 1),
		text("agent-name", Rect{X: photo.Right() + 16, Y: photo.Y + 24, W: 300, H: 36}, d.AgentName, 28, true, white, AlignLeft, 1),
	)

	qr := Rect{X: in.Right() - 72, Y: in.Y + (in.H-72)/2, W: 72, H: 72}
	strip.Children = append(strip.Children, qrSlot(d.AgentQRCode, qr, white10, white70, 14))

	lines := Rect{X: qr.X - 24 - 460, Y: in.Y, W: 460, H: in.H}
	if !d.HasContact() {
		fallback := text("contact-fallback", Rect{X: lines.X, Y: in.Y + (in.H-28)/2, W: lines.W, H: 28},
			FallbackContact, 20, false, white70, AlignRight, 1)
		strip.Children = append(strip.Children, fallback)
		return strip
	}

	n := float64(len(d.Contacts))
	y := in.Y + (in.H-(n*28+(n-1)*8))/2
	for _, item := range d.Contacts {
		strip.Children = append(strip.Children,
			contactLine(item, Rect{X: lines.X, Y: y, W: lines.W, H: 28}, 20, white85, white20, AlignRight))
		y += 36
	}
	return strip
}

func heroLayout(brand string, rec model.PropertyRecord, images []model.ImageAsset) Layout {
	d := Derive(rec, FallbackTitle)
	photos := ArrangePhotos(images)
	return Layout{
		Template: model.TemplateHero,
		Width:    CanvasWidth,
		Height:   CanvasHeight,
		Derived:  d,
		Photos:   photos,
		Root:     renderHero(brand, d, photos),
	}
}
