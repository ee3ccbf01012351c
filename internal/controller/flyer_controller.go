package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"flyer_builder/internal/export"
	"flyer_builder/internal/flyer"
	"flyer_builder/internal/middleware"
	"flyer_builder/internal/model"
	"flyer_builder/internal/store"
	"flyer_builder/pkg/logger"
)

var (
	renderer *flyer.Renderer
	exporter *export.Exporter
)

func InitFlyerController(r *flyer.Renderer, e *export.Exporter) {
	renderer = r
	exporter = e
}

var errNoListingData = fiber.Map{"error": "no listing data yet"}

func GetTemplates(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"templates": model.Templates,
		"canvas": fiber.Map{
			"width":  flyer.CanvasWidth,
			"height": flyer.CanvasHeight,
		},
	})
}

// GetLayout returns the resolved layout tree together with the current display size.
func GetLayout(c *fiber.Ctx) error {
	var q layoutQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}

	ws := middleware.Workspace(c)
	snap := ws.Snapshot()
	layout := renderer.Render(model.ParseTemplateKind(q.Template), snap.Record, snap.Images)

	w, h := ws.Stage().DisplaySize()
	return c.JSON(fiber.Map{
		"layout": layout,
		"display": fiber.Map{
			"scale":  ws.Stage().Scale(),
			"width":  w,
			"height": h,
		},
	})
}

// GetPreview rasterizes the flyer at the display scale for the given container
// width. Without a width the last observed scale is used, or 1 if none was seen.
func GetPreview(c *fiber.Ctx) error {
	var q previewQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}

	ws := middleware.Workspace(c)
	snap := ws.Snapshot()
	if !flyer.HasMinimumData(snap.Record, len(snap.Images)) {
		return c.Status(fiber.StatusConflict).JSON(errNoListingData)
	}

	scale := ws.Stage().Scale()
	if q.Width > 0 {
		scale = ws.Stage().Observe(q.Width)
	}
	if scale <= 0 {
		scale = 1
	}
	format := q.Format
	if format == "" {
		format = "png"
	}

	layout := renderer.Render(model.ParseTemplateKind(q.Template), snap.Record, snap.Images)
	data, contentType, err := exporter.Preview(c.UserContext(), layout, scale, format)
	if err != nil {
		logger.Log.WithError(err).Error("Preview failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not render preview",
		})
	}

	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(data)
}

// ExportFlyer renders the chosen template and sends it as a download. Only one
// export per workspace runs at a time.
func ExportFlyer(c *fiber.Ctx) error {
	var q exportQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	if q.Format == "" {
		q.Format = string(export.FormatPNG)
	}
	format, err := export.ParseFormat(q.Format)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	ws := middleware.Workspace(c)
	snap := ws.Snapshot()
	if !flyer.HasMinimumData(snap.Record, len(snap.Images)) {
		return c.Status(fiber.StatusConflict).JSON(errNoListingData)
	}

	release, err := ws.BeginExport()
	if err != nil {
		if errors.Is(err, store.ErrExportInProgress) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Export already in progress",
			})
		}
		return err
	}
	defer release()

	layout := renderer.Render(model.ParseTemplateKind(q.Template), snap.Record, snap.Images)
	artifact, err := exporter.Export(c.UserContext(), format, layout, snap.Record.PropertyTitle)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Export failed. Please try again.",
		})
	}

	for _, loc := range artifact.Locations {
		c.Append("X-Flyer-Location", loc)
	}
	c.Attachment(artifact.Filename)
	c.Set(fiber.HeaderContentType, artifact.ContentType)
	return c.Send(artifact.Data)
}
