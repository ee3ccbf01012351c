package flyer

import (
	"fmt"

	"flyer_builder/internal/model"
)

type ArrangementKind string

const (
	ArrangeEmpty   ArrangementKind = "empty"
	ArrangeSingle  ArrangementKind = "single"
	ArrangePair    ArrangementKind = "pair"
	ArrangeFeature ArrangementKind = "feature"
	ArrangeQuad    ArrangementKind = "quad"
)

const EmptyPhotosLabel = "Upload photos to preview the flyer"

// Panel is one cell of the photo grid, positioned on a Cols×Rows grid.
// Image is nil for the empty-state placeholder.
type Panel struct {
	Image   *model.ImageAsset `json:"image"`
	Col     int               `json:"col"`
	Row     int               `json:"row"`
	ColSpan int               `json:"colSpan"`
	RowSpan int               `json:"rowSpan"`
	Badge   string            `json:"badge,omitempty"`
}

type Arrangement struct {
	Kind   ArrangementKind `json:"kind"`
	Count  int             `json:"count"`
	Cols   int             `json:"cols"`
	Rows   int             `json:"rows"`
	Panels []Panel         `json:"panels"`
}

// ArrangePhotos picks the sub-layout for the image list. It depends only on
// len(images); with more than four images the fourth panel carries a "+N" badge.
func ArrangePhotos(images []model.ImageAsset) Arrangement {
	n := len(images)
	img := func(i int) *model.ImageAsset {
		a := images[i]
		return &a
	}

	switch {
	case n == 0:
		return Arrangement{Kind: ArrangeEmpty, Cols: 1, Rows: 1, Panels: []Panel{
			{ColSpan: 1, RowSpan: 1},
		}}
	case n == 1:
		return Arrangement{Kind: ArrangeSingle, Count: 1, Cols: 1, Rows: 1, Panels: []Panel{
			{Image: img(0), ColSpan: 1, RowSpan: 1},
		}}
	case n == 2:
		return Arrangement{Kind: ArrangePair, Count: 2, Cols: 2, Rows: 1, Panels: []Panel{
			{Image: img(0), ColSpan: 1, RowSpan: 1},
			{Image: img(1), Col: 1, ColSpan: 1, RowSpan: 1},
		}}
	case n == 3:
		return Arrangement{Kind: ArrangeFeature, Count: 3, Cols: 3, Rows: 2, Panels: []Panel{
			{Image: img(0), ColSpan: 2, RowSpan: 2},
			{Image: img(1), Col: 2, ColSpan: 1, RowSpan: 1},
			{Image: img(2), Col: 2, Row: 1, ColSpan: 1, RowSpan: 1},
		}}
	}

	a := Arrangement{Kind: ArrangeQuad, Count: n, Cols: 2, Rows: 2}
	for i := 0; i < 4; i++ {
		p := Panel{Image: img(i), Col: i % 2, Row: i / 2, ColSpan: 1, RowSpan: 1}
		if i == 3 && n > 4 {
			p.Badge = fmt.Sprintf("+%d", n-4)
		}
		a.Panels = append(a.Panels, p)
	}
	return a
}

// Place lays the arrangement into area with gap between cells.
func (a Arrangement) Place(area Rect, gap float64) Node {
	root := box("photos", area, transparent, 0)

	if a.Kind == ArrangeEmpty {
		root.Children = append(root.Children,
			placeholder("photo-placeholder", area, EmptyPhotosLabel, gray100, gray500, 24, 22))
		return root
	}

	radius := 16.0
	if a.Kind == ArrangeSingle {
		radius = 24
	}

	cellW := (area.W - gap*float64(a.Cols-1)) / float64(a.Cols)
	cellH := (area.H - gap*float64(a.Rows-1)) / float64(a.Rows)

	for _, p := range a.Panels {
		r := Rect{
			X: area.X + float64(p.Col)*(cellW+gap),
			Y: area.Y + float64(p.Row)*(cellH+gap),
			W: float64(p.ColSpan)*cellW + float64(p.ColSpan-1)*gap,
			H: float64(p.RowSpan)*cellH + float64(p.RowSpan-1)*gap,
		}
		root.Children = append(root.Children, picture("photo", r, p.Image.Preview, radius))
		if p.Badge != "" {
			overlay := placeholder("photo-badge", r, p.Badge, black40, white, radius, 48)
			overlay.Bold = true
			root.Children = append(root.Children, overlay)
		}
	}
	return root
}
