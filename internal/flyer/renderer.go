package flyer

import (
	"flyer_builder/internal/model"
)

// Renderer turns a record and its photos into a Layout. It holds no state besides
// the brand line, so concurrent calls are safe and repeated calls return equal output.
type Renderer struct {
	brand string
}

func NewRenderer(brand string) *Renderer {
	return &Renderer{brand: brand}
}

// Render resolves the layout for kind. Unknown kinds fall back to the hero template.
func (r *Renderer) Render(kind model.TemplateKind, rec model.PropertyRecord, images []model.ImageAsset) Layout {
	switch kind {
	case model.TemplateGrid:
		return gridLayout(r.brand, rec, images)
	case model.TemplateMinimal:
		return minimalLayout(r.brand, rec, images)
	default:
		return heroLayout(r.brand, rec, images)
	}
}
