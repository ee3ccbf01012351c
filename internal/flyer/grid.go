package flyer

import (
	"flyer_builder/internal/model"
)

const (
	gridPadding    = 24.0
	gridGap        = 20.0
	gridHeaderH    = 150.0
	gridPhotoShare = 0.62
)

// renderGrid shares the Hero header, then splits the remaining height between the
// photo area and a bottom area holding the details card and the contact strip.
func renderGrid(brand string, d Derived, photos Arrangement) Node {
	canvas := Rect{W: CanvasWidth, H: CanvasHeight}
	root := box("canvas", canvas, gray50, 0)
	inner := canvas.Inset(gridPadding)

	root.Children = append(root.Children, gridHeader(brand, d, Rect{X: inner.X, Y: inner.Y, W: inner.W, H: gridHeaderH}))

	restY := inner.Y + gridHeaderH + gridGap
	rest := inner.Bottom() - restY
	photoH := rest*gridPhotoShare - gridGap/2
	photoArea := Rect{X: inner.X, Y: restY, W: inner.W, H: photoH}
	root.Children = append(root.Children, photos.Place(photoArea, 12))

	bottom := Rect{X: inner.X, Y: photoArea.Bottom() + gridGap, W: inner.W}
	bottom.H = inner.Bottom() - bottom.Y

	top, second := splitRows(d.Contacts)
	stripH := 96.0
	if len(second) > 0 {
		stripH = 132
	}
	strip := Rect{X: bottom.X, Y: bottom.Bottom() - stripH, W: bottom.W, H: stripH}
	card := Rect{X: bottom.X, Y: bottom.Y, W: bottom.W, H: strip.Y - gridGap - bottom.Y}

	root.Children = append(root.Children,
		gridDetailsCard(d, card),
		gridContactStrip(d, strip, top, second),
	)
	return root
}

func gridHeader(brand string, d Derived, r Rect) Node {
	header := box("header", r, white, 24)
	in := r.Inset(20)
	rightW := 300.0
	leftW := in.W - rightW - 20

	header.Children = append(header.Children,
		text("brand", Rect{X: in.X, Y: in.Y, W: leftW, H: 16}, brand, 12, true, gray500, AlignLeft, 1),
		text("title", Rect{X: in.X, Y: in.Y + 18, W: leftW, H: 2 * lineHeight(28)}, d.Title, 28, true, gray900, AlignLeft, 2),
		text("address", Rect{X: in.X, Y: in.Bottom() - 20, W: leftW, H: 20}, d.Address, 16, false, gray600, AlignLeft, 1),
	)

	priceY := in.Y
	if d.Type != "" {
		header.Children = append(header.Children, pill("type", d.Type, in.Right(), in.Y, 14, gray100, gray700))
		priceY += 32 + 10
	}
	if d.Price != "" {
		header.Children = append(header.Children,
			text("price", Rect{X: in.Right() - rightW, Y: priceY, W: rightW, H: 44}, d.Price, 36, true, gray900, AlignRight, 1))
	}
	return header
}

func gridDetailsCard(d Derived, r Rect) Node {
	card := box("details", r, white, 24)
	in := r.Inset(24)
	y := in.Y

	if len(d.Stats) > 0 {
		card.Children = append(card.Children, statRow(d.Stats, Rect{X: in.X, Y: y, W: in.W, H: 44}, 18, 16, 44, 10))
		y += 44 + 16
	}
	if d.Description != "" {
		h := min(3*lineHeight(18), in.Bottom()-y)
		if h > 0 {
			card.Children = append(card.Children,
				text("description", Rect{X: in.X, Y: y, W: in.W, H: h}, d.Description, 18, false, gray700, AlignLeft, 3))
		}
	}
	return card
}

func gridContactStrip(d Derived, r Rect, top, second []ContactItem) Node {
	strip := box("contact", r, gray900, 24)
	in := r.Inset(20)

	photo := Rect{X: in.X, Y: in.Y + (in.H-48)/2, W: 48, H: 48}
	strip.Children = append(strip.Children,
		avatar(d.AgentPhoto, photo, white10, white70, 12),
		text("agent-name", Rect{X: photo.Right() + 14, Y: in.Y + (in.H-28)/2, W: 200, H: 28}, d.AgentName, 22, true, white, AlignLeft, 1),
		box("divider", Rect{X: photo.Right() + 226, Y: in.Y, W: 1, H: in.H}, white20, 0),
	)

	qr := Rect{X: in.Right() - in.H, Y: in.Y, W: in.H, H: in.H}
	strip.Children = append(strip.Children, qrSlot(d.AgentQRCode, qr, white10, white70, 12))

	area := Rect{X: photo.Right() + 247, Y: in.Y, W: qr.X - 20 - (photo.Right() + 247), H: in.H}
	if !d.HasContact() {
		strip.Children = append(strip.Children,
			text("contact-fallback", Rect{X: area.X, Y: area.Y + (area.H-24)/2, W: area.W, H: 24},
				FallbackContact, 18, false, white70, AlignLeft, 1))
		return strip
	}

	rows := [][]ContactItem{top}
	if len(second) > 0 {
		rows = append(rows, second)
	}
	rowH := 24.0
	total := float64(len(rows))*rowH + float64(len(rows)-1)*16
	y := area.Y + (area.H-total)/2
	for _, items := range rows {
		row := box("contact-row", Rect{X: area.X, Y: y, W: area.W, H: rowH}, transparent, 0)
		cellW := area.W / float64(len(items))
		for j, item := range items {
			cell := Rect{X: area.X + float64(j)*cellW, Y: y, W: cellW - 12, H: rowH}
			row.Children = append(row.Children, contactLine(item, cell, 16, white85, white20, AlignLeft))
		}
		strip.Children = append(strip.Children, row)
		y += rowH + 16
	}
	return strip
}

func gridLayout(brand string, rec model.PropertyRecord, images []model.ImageAsset) Layout {
	d := Derive(rec, FallbackTitle)
	photos := ArrangePhotos(images)
	return Layout{
		Template: model.TemplateGrid,
		Width:    CanvasWidth,
		Height:   CanvasHeight,
		Derived:  d,
		Photos:   photos,
		Root:     renderGrid(brand, d, photos),
	}
}
