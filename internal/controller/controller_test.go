package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flyer_builder/internal/export"
	"flyer_builder/internal/flyer"
	"flyer_builder/internal/middleware"
	"flyer_builder/internal/store"
	"flyer_builder/pkg/render/document"
	"flyer_builder/pkg/render/raster"
	"flyer_builder/pkg/utils/validation"
)

// smallRaster keeps handler tests fast; the real rasterizer is covered elsewhere.
type smallRaster struct{}

func (smallRaster) Rasterize(_ context.Context, l flyer.Layout, opts raster.Options) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, int(l.Width*opts.Scale/100), int(l.Height*opts.Scale/100)))
	img.Set(0, 0, color.White)
	return img, nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	InitPropertyController(validation.PolicyStrict)
	InitUploadController(validation.MaxImageSize)
	InitFlyerController(flyer.NewRenderer("TESTBRAND"), export.New(smallRaster{}, document.NewPDFEncoder("TESTBRAND", "test")))
	InitContactController("https://example.com/contact")

	sessions := store.NewSessions(8, time.Hour)
	InitSessionController(sessions)
	app := fiber.New()
	api := app.Group("/api", middleware.Session(sessions, time.Hour))
	api.Get("/property", GetProperty)
	api.Put("/property", UpdateProperty)
	api.Delete("/property", ResetProperty)
	api.Post("/property/validate", ValidateProperty)
	api.Post("/property/images", middleware.CheckImageLimit(), UploadPropertyImages)
	api.Delete("/property/images/:index", DeletePropertyImage)
	api.Post("/agent/photo", UploadAgentPhoto)
	api.Delete("/agent/photo", DeleteAgentPhoto)
	api.Post("/agent/qr", UploadAgentQR)
	api.Post("/agent/qr/generate", GenerateAgentQR)
	api.Get("/templates", GetTemplates)
	api.Get("/flyer/layout", GetLayout)
	api.Get("/flyer/preview", GetPreview)
	api.Post("/flyer/export", ExportFlyer)
	api.Get("/contact", GetContact)
	api.Delete("/session", EndSession)
	return app
}

// client replays the session cookie like a browser would.
type client struct {
	t      *testing.T
	app    *fiber.App
	cookie *http.Cookie
}

func newClient(t *testing.T) *client {
	return &client{t: t, app: newTestApp(t)}
}

func (cl *client) do(method, target string, body io.Reader, contentType string) *http.Response {
	cl.t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cl.cookie != nil {
		req.AddCookie(cl.cookie)
	}
	resp, err := cl.app.Test(req, -1)
	require.NoError(cl.t, err)
	for _, ck := range resp.Cookies() {
		if ck.Name == middleware.SessionCookie {
			cl.cookie = &http.Cookie{Name: ck.Name, Value: ck.Value}
		}
	}
	return resp
}

func (cl *client) json(method, target string, payload interface{}) *http.Response {
	cl.t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(cl.t, err)
		body = bytes.NewReader(raw)
	}
	return cl.do(method, target, body, fiber.MIMEApplicationJSON)
}

func (cl *client) upload(target, field string, names ...string) *http.Response {
	cl.t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range names {
		part, err := w.CreateFormFile(field, name)
		require.NoError(cl.t, err)
		_, err = part.Write(pngBytes(cl.t))
		require.NoError(cl.t, err)
	}
	require.NoError(cl.t, w.Close())
	return cl.do(http.MethodPost, target, &buf, w.FormDataContentType())
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func photoNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("photo-%d.png", i)
	}
	return names
}

var validListing = map[string]string{
	"propertyTitle": "Sunny Villa",
	"address":       "12 Riverside Road",
	"price":         "250,000",
	"propertyType":  "villa",
	"bedrooms":      "3",
	"agentName":     "Dara Sok",
	"agentPhone":    "+855 12 345 678",
	"agentEmail":    "dara@example.com",
}

func TestGetPropertyStartsEmpty(t *testing.T) {
	cl := newClient(t)

	resp := cl.do(http.MethodGet, "/api/property", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, cl.cookie, "session cookie should be issued")

	body := decode(t, resp)
	assert.Equal(t, false, body["ready"])
	assert.Empty(t, body["images"])
	errs := body["errors"].(map[string]interface{})
	assert.Contains(t, errs, validation.FieldTitle)
	assert.Contains(t, errs, validation.FieldImages)
}

func TestSessionKeepsEdits(t *testing.T) {
	cl := newClient(t)

	resp := cl.json(http.MethodPut, "/api/property", map[string]string{"propertyTitle": "Sunny Villa"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode(t, cl.do(http.MethodGet, "/api/property", nil, ""))
	record := body["record"].(map[string]interface{})
	assert.Equal(t, "Sunny Villa", record["propertyTitle"])
	assert.Equal(t, true, body["ready"])

	other := &client{t: t, app: cl.app}
	body = decode(t, other.do(http.MethodGet, "/api/property", nil, ""))
	assert.Equal(t, "", body["record"].(map[string]interface{})["propertyTitle"])
}

func TestUpdatePropertyRejectsBadBody(t *testing.T) {
	cl := newClient(t)
	resp := cl.do(http.MethodPut, "/api/property", strings.NewReader("{"), fiber.MIMEApplicationJSON)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestValidateProperty(t *testing.T) {
	cl := newClient(t)

	resp := cl.do(http.MethodPost, "/api/property/validate", nil, "")
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	errs := decode(t, resp)["errors"].(map[string]interface{})
	assert.Contains(t, errs, validation.FieldAgentEmail)

	cl.json(http.MethodPut, "/api/property", validListing)
	require.Equal(t, fiber.StatusCreated, cl.upload("/api/property/images", "images", "front.png").StatusCode)

	resp = cl.do(http.MethodPost, "/api/property/validate", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestResetProperty(t *testing.T) {
	cl := newClient(t)
	cl.json(http.MethodPut, "/api/property", validListing)
	cl.upload("/api/property/images", "images", "front.png")

	require.Equal(t, fiber.StatusOK, cl.do(http.MethodDelete, "/api/property", nil, "").StatusCode)

	body := decode(t, cl.do(http.MethodGet, "/api/property", nil, ""))
	assert.Empty(t, body["images"])
	assert.Equal(t, "", body["record"].(map[string]interface{})["propertyTitle"])
}

func TestUploadAndDeleteImages(t *testing.T) {
	cl := newClient(t)

	resp := cl.upload("/api/property/images", "images", "a.png", "b.png", "c.png")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decode(t, resp)
	assert.EqualValues(t, 3, body["count"])
	images := body["images"].([]interface{})
	require.Len(t, images, 3)
	assert.Equal(t, "a.png", images[0].(map[string]interface{})["name"])
	assert.True(t, strings.HasPrefix(images[0].(map[string]interface{})["preview"].(string), "data:image/png;base64,"))

	assert.Equal(t, fiber.StatusBadRequest, cl.do(http.MethodDelete, "/api/property/images/first", nil, "").StatusCode)
	assert.Equal(t, fiber.StatusNotFound, cl.do(http.MethodDelete, "/api/property/images/9", nil, "").StatusCode)

	resp = cl.do(http.MethodDelete, "/api/property/images/1", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	images = decode(t, resp)["images"].([]interface{})
	require.Len(t, images, 2)
	assert.Equal(t, "c.png", images[1].(map[string]interface{})["name"])
}

func TestUploadRejectsUnsupportedFiles(t *testing.T) {
	cl := newClient(t)

	assert.Equal(t, fiber.StatusBadRequest, cl.upload("/api/property/images", "images", "plan.gif").StatusCode)
	assert.Equal(t, fiber.StatusBadRequest, cl.upload("/api/property/images", "images").StatusCode)
	assert.Equal(t, fiber.StatusBadRequest, cl.upload("/api/agent/photo", "file", "agent.bmp").StatusCode)
}

func TestImageLimit(t *testing.T) {
	cl := newClient(t)

	resp := cl.upload("/api/property/images", "images", photoNames(store.MaxImages+1)...)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, decode(t, cl.do(http.MethodGet, "/api/property", nil, ""))["images"])

	require.Equal(t, fiber.StatusCreated, cl.upload("/api/property/images", "images", photoNames(store.MaxImages)...).StatusCode)

	resp = cl.upload("/api/property/images", "images", "extra.png")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Maximum image limit reached (16)", decode(t, resp)["error"])
}

func TestAgentMedia(t *testing.T) {
	cl := newClient(t)

	resp := cl.upload("/api/agent/photo", "file", "agent.png")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp = cl.upload("/api/agent/qr", "file", "qr.png")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	record := decode(t, cl.do(http.MethodGet, "/api/property", nil, ""))["record"].(map[string]interface{})
	assert.Equal(t, "agent.png", record["agentPhoto"].(map[string]interface{})["name"])
	assert.Equal(t, "qr.png", record["agentQrCode"].(map[string]interface{})["name"])

	require.Equal(t, fiber.StatusOK, cl.do(http.MethodDelete, "/api/agent/photo", nil, "").StatusCode)
	record = decode(t, cl.do(http.MethodGet, "/api/property", nil, ""))["record"].(map[string]interface{})
	assert.Nil(t, record["agentPhoto"])
	assert.NotNil(t, record["agentQrCode"])
}

func TestGenerateAgentQR(t *testing.T) {
	cl := newClient(t)

	resp := cl.do(http.MethodPost, "/api/agent/qr/generate", nil, "")
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	cl.json(http.MethodPut, "/api/property", map[string]string{"agentName": "Dara", "agentPhone": "012345678"})
	resp = cl.do(http.MethodPost, "/api/agent/qr/generate", nil, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "https://example.com/contact?name=Dara&phone=012345678", body["url"])

	record := decode(t, cl.do(http.MethodGet, "/api/property", nil, ""))["record"].(map[string]interface{})
	qr := record["agentQrCode"].(map[string]interface{})
	assert.Equal(t, agentQRName, qr["name"])
	assert.True(t, strings.HasPrefix(qr["preview"].(string), "data:image/png;base64,"))
}

func TestGetContact(t *testing.T) {
	cl := newClient(t)

	body := decode(t, cl.do(http.MethodGet, "/api/contact?name=Dara&phone=012&telegram=https://t.me/dara", nil, ""))
	assert.Equal(t, "Dara", body["title"])
	links := body["links"].([]interface{})
	require.Len(t, links, 2)
	assert.Equal(t, "tel:012", links[0].(map[string]interface{})["href"])
	assert.Equal(t, "Telegram", links[1].(map[string]interface{})["label"])
	assert.NotContains(t, body, "message")

	body = decode(t, cl.do(http.MethodGet, "/api/contact", nil, ""))
	assert.Equal(t, "Contact Agent", body["title"])
	assert.Empty(t, body["links"])
	assert.Equal(t, "No contact methods were provided.", body["message"])
}

func TestTemplatesAndLayout(t *testing.T) {
	cl := newClient(t)

	body := decode(t, cl.do(http.MethodGet, "/api/templates", nil, ""))
	assert.Len(t, body["templates"], 3)

	resp := cl.do(http.MethodGet, "/api/flyer/layout?template=mosaic", nil, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body = decode(t, cl.do(http.MethodGet, "/api/flyer/layout?template=grid", nil, ""))
	layout := body["layout"].(map[string]interface{})
	assert.Equal(t, "grid", layout["template"])
	assert.EqualValues(t, flyer.CanvasWidth, layout["width"])
	assert.EqualValues(t, 0, body["display"].(map[string]interface{})["scale"])
}

func TestPreview(t *testing.T) {
	cl := newClient(t)

	resp := cl.do(http.MethodGet, "/api/flyer/preview", nil, "")
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "no listing data yet", decode(t, resp)["error"])

	cl.json(http.MethodPut, "/api/property", map[string]string{"propertyTitle": "Sunny Villa"})
	assert.Equal(t, fiber.StatusBadRequest, cl.do(http.MethodGet, "/api/flyer/preview?format=gif", nil, "").StatusCode)

	resp = cl.do(http.MethodGet, "/api/flyer/preview?width=540", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(5, 6), img.Bounds().Size())

	display := decode(t, cl.do(http.MethodGet, "/api/flyer/layout", nil, ""))["display"].(map[string]interface{})
	assert.EqualValues(t, 0.5, display["scale"])
	assert.EqualValues(t, 540, display["width"])
	assert.EqualValues(t, 675, display["height"])

	resp = cl.do(http.MethodGet, "/api/flyer/preview?format=webp", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/webp", resp.Header.Get("Content-Type"))
}

func TestExportFlyer(t *testing.T) {
	cl := newClient(t)

	resp := cl.do(http.MethodPost, "/api/flyer/export?format=pdf", nil, "")
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	assert.Equal(t, fiber.StatusBadRequest, cl.do(http.MethodPost, "/api/flyer/export?format=svg", nil, "").StatusCode)

	cl.json(http.MethodPut, "/api/property", map[string]string{"propertyTitle": "Sunny Villa!"})

	resp = cl.do(http.MethodPost, "/api/flyer/export?template=minimal&format=pdf", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="sunny-villa.pdf"`, resp.Header.Get("Content-Disposition"))
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	resp = cl.do(http.MethodPost, "/api/flyer/export", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(32, 40), img.Bounds().Size())
}

func TestEndSession(t *testing.T) {
	cl := newClient(t)
	cl.json(http.MethodPut, "/api/property", map[string]string{"propertyTitle": "Sunny Villa"})
	old := cl.cookie.Value

	resp := cl.do(http.MethodDelete, "/api/session", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	replay := &client{t: t, app: cl.app, cookie: &http.Cookie{Name: middleware.SessionCookie, Value: old}}
	body := decode(t, replay.do(http.MethodGet, "/api/property", nil, ""))
	assert.Equal(t, "", body["record"].(map[string]interface{})["propertyTitle"])
	assert.NotEqual(t, old, replay.cookie.Value)
}
