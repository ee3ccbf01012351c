package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"flyer_builder/internal/middleware"
	"flyer_builder/internal/model"
	"flyer_builder/internal/store"
	imageutil "flyer_builder/pkg/utils/image"
	"flyer_builder/pkg/utils/validation"
)

var maxImageSize int64 = validation.MaxImageSize

func InitUploadController(maxSize int64) {
	if maxSize > 0 {
		maxImageSize = maxSize
	}
}

// UploadPropertyImages appends the "images" files to the photo list in the order
// they were sent.
func UploadPropertyImages(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}
	files := form.File["images"]

	if err := validation.ValidateImages(files, maxImageSize); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	assets, err := imageutil.IngestFiles(files)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	ws := middleware.Workspace(c)
	count, err := ws.AddImages(assets...)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Maximum image limit reached (16)",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Images uploaded successfully",
		"added":   len(assets),
		"count":   count,
		"images":  ws.Images(),
	})
}

// DeletePropertyImage removes one photo by position.
func DeletePropertyImage(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid image index",
		})
	}

	ws := middleware.Workspace(c)
	if err := ws.RemoveImage(index); err != nil {
		if errors.Is(err, store.ErrIndexOutOfRange) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Image not found",
			})
		}
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Image deleted successfully",
		"images":  ws.Images(),
	})
}

func singleImage(c *fiber.Ctx) (*model.ImageAsset, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, validation.ErrFileRequired
	}
	if err := validation.ValidateImage(file, maxImageSize); err != nil {
		return nil, err
	}
	asset, err := imageutil.IngestFile(file)
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func UploadAgentPhoto(c *fiber.Ctx) error {
	asset, err := singleImage(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	middleware.Workspace(c).SetAgentPhoto(asset)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Agent photo updated",
		"agentPhoto": asset,
	})
}

func DeleteAgentPhoto(c *fiber.Ctx) error {
	middleware.Workspace(c).SetAgentPhoto(nil)
	return c.JSON(fiber.Map{
		"message": "Agent photo removed",
	})
}

func UploadAgentQR(c *fiber.Ctx) error {
	asset, err := singleImage(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	middleware.Workspace(c).SetAgentQRCode(asset)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "QR code updated",
		"agentQrCode": asset,
	})
}

func DeleteAgentQR(c *fiber.Ctx) error {
	middleware.Workspace(c).SetAgentQRCode(nil)
	return c.JSON(fiber.Map{
		"message": "QR code removed",
	})
}
