package flyer

import (
	"flyer_builder/internal/model"
)

const (
	minimalSideSlots    = 3
	minimalLeftW        = 320.0
	minimalColGap       = 32.0
	minimalContactSlots = 2
)

// renderMinimal draws the two column card: promo panel and side photos on the left,
// hero photo with about, features and contact on the right.
func renderMinimal(brand string, d Derived, images []model.ImageAsset) Node {
	canvas := Rect{W: CanvasWidth, H: CanvasHeight}
	root := box("canvas", canvas, cream, 0)
	card := box("card", canvas.Inset(24), white, 28)
	in := canvas.Inset(56)

	left := Rect{X: in.X, Y: in.Y, W: minimalLeftW, H: in.H}
	right := Rect{X: left.Right() + minimalColGap, Y: in.Y, W: in.W - minimalLeftW - minimalColGap, H: in.H}

	card.Children = append(card.Children, minimalLeftColumn(d, images, left)...)
	card.Children = append(card.Children, minimalRightColumn(brand, d, images, right)...)
	root.Children = append(root.Children, card)
	return root
}

func minimalLeftColumn(d Derived, images []model.ImageAsset, r Rect) []Node {
	promo := box("promo", Rect{X: r.X, Y: r.Y, W: r.W, H: 275}, sand, 20)
	p := promo.Rect.Inset(24)
	promo.Children = append(promo.Children,
		text("promo-kicker", Rect{X: p.X, Y: p.Y, W: p.W, H: 20}, "COME AND GET YOUR", 16, true, white85, AlignLeft, 1),
		text("promo-headline", Rect{X: p.X, Y: p.Y + 28, W: p.W, H: 2 * lineHeight(44)}, "DREAM\nHOME", 44, true, white, AlignLeft, 2),
		box("promo-divider", Rect{X: p.X, Y: p.Y + 146, W: 64, H: 3}, white70, 0),
	)
	if d.Price != "" {
		promo.Children = append(promo.Children,
			text("promo-label", Rect{X: p.X, Y: p.Y + 160, W: p.W, H: 20}, "We offered at", 16, false, white85, AlignLeft, 1),
			text("price", Rect{X: p.X, Y: p.Y + 186, W: p.W, H: 40}, d.Price, 32, true, white, AlignLeft, 1),
		)
	}
	nodes := []Node{promo}

	top := promo.Rect.Bottom() + 20
	slotH := (r.Bottom() - top - 20*float64(minimalSideSlots-1)) / float64(minimalSideSlots)
	for i := 0; i < minimalSideSlots; i++ {
		slot := Rect{X: r.X, Y: top + float64(i)*(slotH+20), W: r.W, H: slotH}
		if idx := i + 1; idx < len(images) {
			nodes = append(nodes, picture("side-photo", slot, images[idx].Preview, 16))
			continue
		}
		nodes = append(nodes, placeholder("side-photo", slot, "Add more photos", gray100, gray400, 16, 18))
	}
	return nodes
}

func minimalRightColumn(brand string, d Derived, images []model.ImageAsset, r Rect) []Node {
	nodes := []Node{
		text("brand", Rect{X: r.X, Y: r.Y, W: r.W, H: 16}, brand, 12, true, gray500, AlignRight, 1),
		text("headline", Rect{X: r.X, Y: r.Y + 16, W: r.W, H: 72}, "MINIMALISTIC", 60, true, sand, AlignLeft, 1),
		text("title", Rect{X: r.X, Y: r.Y + 92, W: r.W, H: 32}, d.Title, 26, true, gray900, AlignLeft, 1),
	}

	hero := Rect{X: r.X, Y: r.Y + 136, W: r.W, H: 420}
	if len(images) > 0 {
		nodes = append(nodes, picture("hero-photo", hero, images[0].Preview, 20))
	} else {
		nodes = append(nodes, placeholder("hero-photo", hero, "Add a hero photo", gray100, gray400, 20, 22))
	}
	if d.Type != "" {
		nodes = append(nodes, pill("type", d.Type, hero.Right()-16, hero.Y+16, 14, white85, gray800))
	}

	contactH := 230.0
	contact := Rect{X: r.X, Y: r.Bottom() - contactH, W: r.W, H: contactH}

	y := hero.Bottom() + 24
	if d.Description != "" {
		nodes = append(nodes,
			text("about-heading", Rect{X: r.X, Y: y, W: r.W, H: 28}, "About The Property", 22, true, gray900, AlignLeft, 1),
			text("description", Rect{X: r.X, Y: y + 34, W: r.W, H: 3 * lineHeight(16)}, d.Description, 16, false, gray600, AlignLeft, 3),
		)
		y += 34 + 3*lineHeight(16) + 20
	}

	nodes = append(nodes, text("features-heading", Rect{X: r.X, Y: y, W: r.W, H: 28}, "Property Features", 22, true, gray900, AlignLeft, 1))
	y += 36
	list := box("features", Rect{X: r.X, Y: y, W: r.W, H: contact.Y - 20 - y}, transparent, 0)
	rowH := 26.0
	colW := r.W / 2
	rows := (len(d.Features) + 1) / 2
	for i, f := range d.Features {
		col, row := i/rows, i%rows
		cell := Rect{X: r.X + float64(col)*colW, Y: y + float64(row)*rowH, W: colW - 12, H: rowH}
		list.Children = append(list.Children,
			box("feature", cell, transparent, 0,
				placeholder("feature-dot", Rect{X: cell.X, Y: cell.Y + 9, W: 8, H: 8}, "", sand, sand, 4, 1),
				text("feature-label", Rect{X: cell.X + 18, Y: cell.Y, W: cell.W - 18, H: rowH}, f, 16, false, gray700, AlignLeft, 1),
			))
	}
	nodes = append(nodes, list, minimalContactBox(d, contact))
	return nodes
}

func minimalContactBox(d Derived, r Rect) Node {
	cb := box("contact", r, sandLight, 20)
	in := r.Inset(20)

	qr := Rect{X: in.Right() - 96, Y: in.Y, W: 96, H: 96}
	photo := Rect{X: in.X, Y: in.Y, W: 72, H: 72}
	cb.Children = append(cb.Children,
		avatar(d.AgentPhoto, photo, white70, gray600, 12),
		text("contact-label", Rect{X: photo.Right() + 16, Y: in.Y + 6, W: 260, H: 18}, "CONTACT AGENT", 13, true, gray700, AlignLeft, 1),
		text("agent-name", Rect{X: photo.Right() + 16, Y: in.Y + 28, W: qr.X - photo.Right() - 32, H: 32}, d.AgentName, 24, true, gray900, AlignLeft, 1),
		qrSlot(d.AgentQRCode, qr, white70, gray600, 14),
	)

	y := in.Y + 104
	if !d.HasContact() {
		cb.Children = append(cb.Children,
			text("contact-fallback", Rect{X: in.X, Y: y, W: in.W, H: 24}, FallbackContact, 16, false, gray700, AlignLeft, 1))
	}
	// two slots, filled in channel order: phone, email, then socials
	colW := (in.W - 16) / 2
	for i, item := range d.Contacts[:min(minimalContactSlots, len(d.Contacts))] {
		cb.Children = append(cb.Children, contactLine(item,
			Rect{X: in.X + float64(i)*(colW+16), Y: y, W: colW, H: 24}, 16, gray900, white70, AlignLeft))
	}

	loc := Rect{X: in.X, Y: in.Bottom() - 48, W: in.W, H: 48}
	cb.Children = append(cb.Children,
		box("location", loc, white70, 12,
			text("address", Rect{X: loc.X + 14, Y: loc.Y + 4, W: loc.W - 28, H: 20}, d.Address, 15, true, gray900, AlignLeft, 1),
			text("location-title", Rect{X: loc.X + 14, Y: loc.Y + 24, W: loc.W - 28, H: 20}, d.Title, 13, false, gray600, AlignLeft, 1),
		))
	return cb
}

func minimalLayout(brand string, rec model.PropertyRecord, images []model.ImageAsset) Layout {
	d := Derive(rec, FallbackTitleDream)
	return Layout{
		Template: model.TemplateMinimal,
		Width:    CanvasWidth,
		Height:   CanvasHeight,
		Derived:  d,
		Photos:   ArrangePhotos(images),
		Root:     renderMinimal(brand, d, images),
	}
}
