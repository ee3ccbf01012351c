package flyer

import (
	"strings"

	"flyer_builder/internal/model"
)

// HasMinimumData reports whether there is enough to show a flyer at all: a title,
// an address or at least one photo.
func HasMinimumData(rec model.PropertyRecord, imageCount int) bool {
	return strings.TrimSpace(rec.PropertyTitle) != "" ||
		strings.TrimSpace(rec.Address) != "" ||
		imageCount > 0
}
