package model

import "strings"

// TemplateKind selects the flyer layout.
type TemplateKind string

const (
	TemplateHero    TemplateKind = "hero"
	TemplateGrid    TemplateKind = "grid"
	TemplateMinimal TemplateKind = "minimal"
)

type TemplateOption struct {
	Key   TemplateKind `json:"key"`
	Label string       `json:"label"`
}

var Templates = []TemplateOption{
	{Key: TemplateHero, Label: "Hero"},
	{Key: TemplateGrid, Label: "Grid"},
	{Key: TemplateMinimal, Label: "Minimal"},
}

// ParseTemplateKind maps a user supplied key to a template, defaulting to hero.
func ParseTemplateKind(s string) TemplateKind {
	switch TemplateKind(strings.ToLower(strings.TrimSpace(s))) {
	case TemplateGrid:
		return TemplateGrid
	case TemplateMinimal:
		return TemplateMinimal
	default:
		return TemplateHero
	}
}
