package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type layoutQuery struct {
	Template string `query:"template" validate:"omitempty,oneof=hero grid minimal"`
}

type previewQuery struct {
	Template string  `query:"template" validate:"omitempty,oneof=hero grid minimal"`
	Width    float64 `query:"width" validate:"omitempty,gt=0"`
	Format   string  `query:"format" validate:"omitempty,oneof=png webp"`
}

type exportQuery struct {
	Template string `query:"template" validate:"omitempty,oneof=hero grid minimal"`
	Format   string `query:"format" validate:"omitempty,oneof=png pdf"`
}

// parseQuery binds and validates the query string into out. On failure it has
// already written the 400 response and returns false.
func parseQuery(c *fiber.Ctx, out interface{}) (bool, error) {
	if err := c.QueryParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid query parameters",
		})
	}
	if err := validate.Struct(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": describe(err),
		})
	}
	return true, nil
}

func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "oneof":
			msgs = append(msgs, strings.ToLower(fe.Field())+" must be one of: "+fe.Param())
		default:
			msgs = append(msgs, "invalid "+strings.ToLower(fe.Field()))
		}
	}
	return strings.Join(msgs, "; ")
}
