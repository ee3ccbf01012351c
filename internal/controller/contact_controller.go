package controller

import (
	"github.com/gofiber/fiber/v2"

	"flyer_builder/internal/middleware"
	"flyer_builder/internal/model"
	"flyer_builder/pkg/logger"
	imageutil "flyer_builder/pkg/utils/image"
	"flyer_builder/pkg/utils/qr"
)

const agentQRName = "contact-qr.png"

var contactPageURL string

func InitContactController(pageURL string) {
	contactPageURL = pageURL
}

// GetContact resolves the public contact page from its query parameters.
func GetContact(c *fiber.Ctx) error {
	var contact qr.Contact
	if err := c.QueryParser(&contact); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid query parameters",
		})
	}

	links := contact.Links()
	if len(links) == 0 {
		return c.JSON(fiber.Map{
			"title":   contact.Title(),
			"links":   []qr.Link{},
			"message": qr.NoContactMessage,
		})
	}
	return c.JSON(fiber.Map{
		"title": contact.Title(),
		"links": links,
	})
}

func contactFromRecord(rec model.PropertyRecord) qr.Contact {
	return qr.Contact{
		Name:      rec.AgentName,
		Phone:     rec.AgentPhone,
		Email:     rec.AgentEmail,
		Facebook:  rec.AgentFacebook,
		Telegram:  rec.AgentTelegram,
		Instagram: rec.AgentInstagram,
		Tiktok:    rec.AgentTiktok,
	}
}

// GenerateAgentQR stores a QR code pointing at the contact page built from the
// agent fields of the record.
func GenerateAgentQR(c *fiber.Ctx) error {
	ws := middleware.Workspace(c)
	contact := contactFromRecord(ws.Record())
	if len(contact.Links()) == 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Add at least one contact channel first",
		})
	}

	target, err := contact.URL(contactPageURL)
	if err != nil {
		logger.Log.WithError(err).Error("Contact page url is invalid")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not build contact link",
		})
	}

	data, err := qr.PNG(target, qr.DefaultSize)
	if err != nil {
		logger.Log.WithError(err).Error("QR generation failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not generate QR code",
		})
	}

	asset := &model.ImageAsset{Preview: imageutil.DataURI("image/png", data), Name: agentQRName}
	ws.SetAgentQRCode(asset)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"url":         target,
		"agentQrCode": asset,
	})
}
