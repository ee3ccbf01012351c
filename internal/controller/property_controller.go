package controller

import (
	"github.com/gofiber/fiber/v2"

	"flyer_builder/internal/flyer"
	"flyer_builder/internal/middleware"
	"flyer_builder/internal/model"
	"flyer_builder/pkg/utils/validation"
)

var listingPolicy = validation.PolicyStrict

func InitPropertyController(policy validation.Policy) {
	listingPolicy = policy
}

type propertyResponse struct {
	Record model.PropertyRecord `json:"record"`
	Images []model.ImageAsset   `json:"images"`
	Errors validation.Errors    `json:"errors"`
	Ready  bool                 `json:"ready"`
}

func propertyState(rec model.PropertyRecord, images []model.ImageAsset) propertyResponse {
	if images == nil {
		images = []model.ImageAsset{}
	}
	return propertyResponse{
		Record: rec,
		Images: images,
		Errors: validation.ValidateListing(rec, len(images), listingPolicy),
		Ready:  flyer.HasMinimumData(rec, len(images)),
	}
}

// GetProperty returns the record being edited, its photos and the current
// validation messages.
func GetProperty(c *fiber.Ctx) error {
	snap := middleware.Workspace(c).Snapshot()
	return c.JSON(propertyState(snap.Record, snap.Images))
}

// UpdateProperty applies a partial update of the form fields.
func UpdateProperty(c *fiber.Ctx) error {
	var patch model.RecordPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	ws := middleware.Workspace(c)
	rec := ws.SetFormData(patch)
	return c.JSON(propertyState(rec, ws.Images()))
}

// ValidateProperty runs the listing rules; 422 carries every failing field.
func ValidateProperty(c *fiber.Ctx) error {
	snap := middleware.Workspace(c).Snapshot()
	errs := validation.ValidateListing(snap.Record, len(snap.Images), listingPolicy)
	if !errs.OK() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "Please fix the highlighted fields",
			"errors": errs,
		})
	}
	return c.JSON(fiber.Map{
		"valid": true,
	})
}

// ResetProperty clears the record and every uploaded image.
func ResetProperty(c *fiber.Ctx) error {
	middleware.Workspace(c).Reset()
	return c.JSON(fiber.Map{
		"message": "Workspace cleared",
	})
}
