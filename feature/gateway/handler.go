package gateway

import (
	"encoding/base64"
	"errors"
	"io"
	"strings"

	"survey-gateway/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the storage gateway.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the storage gateway routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/storage")
	group.Get("/health", h.HandleHealth)
	group.Post("/objects", h.HandleUpload)
	group.Get("/objects", h.HandleResolve)
	group.Get("/listing", h.HandleListing)
}

// HandleHealth reports the currently resolved bucket.
// @Summary Storage Health
// @Description Runs the bucket resolution pipeline without side effects and reports which bucket the gateway would use.
// @Tags storage
// @Produce json
// @Success 200 {object} gateway.HealthReport "Resolved"
// @Failure 503 {object} gateway.HealthReport "No usable bucket"
// @Router /storage/health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report := h.service.Health(c.Context())
	if !report.OK {
		l.Error("storage health check failed", zap.String("diagnostics", report.Diagnostics))
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}
	return c.JSON(report)
}

// uploadRequest is the JSON body of POST /storage/objects.
type uploadRequest struct {
	// Path is the logical object path, e.g. "photos/2024-05-01/bud-1/173_lamp.jpg".
	Path string `json:"path"`
	// Payload is the base64-encoded binary content.
	Payload string `json:"payload"`
	// ContentType is optional; defaults to application/octet-stream.
	ContentType string `json:"contentType"`
}

// HandleUpload stores a payload at a logical path.
// @Summary Upload Object
// @Description Stores a binary payload, retrying across candidate buckets, and returns a signed download URL. Accepts JSON (base64 payload) or multipart (file + path fields).
// @Tags storage
// @Accept json
// @Accept mpfd
// @Produce json
// @Param request body gateway.uploadRequest true "Upload request"
// @Success 201 {object} gateway.UploadResult "Stored"
// @Failure 400 {object} map[string]string "Invalid path or payload"
// @Failure 500 {object} map[string]interface{} "All candidate buckets failed"
// @Router /storage/objects [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	path, contentType, payload, err := readUploadBody(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.service.Upload(c.Context(), path, contentType, payload)
	if err != nil {
		if errors.Is(err, ErrInvalidPath) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("upload failed", zap.String("path", path), zap.Error(err))

		var exhausted *UploadExhaustedError
		if errors.As(err, &exhausted) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":    exhausted.Error(),
				"attempts": exhausted.Attempts,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("object stored",
		zap.String("bucket", result.Bucket.Name),
		zap.String("path", result.Path),
		zap.Int("attempts", len(result.Attempts)))
	return c.Status(fiber.StatusCreated).JSON(result)
}

// readUploadBody extracts path, content type and payload from either a
// multipart form (how the mobile UI posts camera captures) or a JSON body
// with base64 payload.
func readUploadBody(c *fiber.Ctx) (string, string, []byte, error) {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return "", "", nil, errors.New("multipart upload requires a 'file' part")
		}
		f, err := fh.Open()
		if err != nil {
			return "", "", nil, err
		}
		defer f.Close()
		payload, err := io.ReadAll(f)
		if err != nil {
			return "", "", nil, err
		}
		return c.FormValue("path"), fh.Header.Get(fiber.HeaderContentType), payload, nil
	}

	var req uploadRequest
	if err := c.BodyParser(&req); err != nil {
		return "", "", nil, errors.New("request body must be JSON or multipart")
	}
	payload, err := base64.StdEncoding.DecodeString(req.Payload)
	if err != nil {
		return "", "", nil, errors.New("payload must be valid base64")
	}
	return req.Path, req.ContentType, payload, nil
}

// HandleResolve returns a signed download URL for one stored object.
// @Summary Resolve Object
// @Description Verifies the object exists in the resolved bucket and returns a signed download URL for it.
// @Tags storage
// @Produce json
// @Param path query string true "Logical object path"
// @Success 200 {object} gateway.FileEntry "Resolved"
// @Failure 400 {object} map[string]string "Invalid path"
// @Failure 404 {object} map[string]string "Object not found"
// @Failure 500 {object} map[string]string "Resolution failed"
// @Router /storage/objects [get]
func (h *Handler) HandleResolve(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	objectPath := c.Query("path")
	entry, err := h.service.ResolveFile(c.Context(), objectPath)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidPath):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, ErrObjectNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("object resolution failed", zap.String("path", objectPath), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(entry)
}

// HandleListing lists survey days, surveyors, or files with download URLs.
// @Summary Hierarchical Listing
// @Description Lists virtual folders (scope=days|surveyors) or objects with signed URLs (scope=files) under the photo root.
// @Tags storage
// @Produce json
// @Param scope query string false "days (default), surveyors or files"
// @Param day query string false "Survey day (YYYY-MM-DD); required for files"
// @Param surveyor query string false "Surveyor ID; required for files"
// @Param pageToken query string false "Opaque continuation token from a previous page"
// @Param limit query int false "Page size limit"
// @Success 200 {object} map[string]interface{} "Items and next page token"
// @Failure 400 {object} map[string]string "Unknown scope or missing parameter"
// @Failure 500 {object} map[string]string "Configuration error"
// @Router /storage/listing [get]
func (h *Handler) HandleListing(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	scope := c.Query("scope", "days")
	day := c.Query("day")
	surveyor := c.Query("surveyor")
	pageToken := c.Query("pageToken")
	limit := c.QueryInt("limit")
	ctx := c.Context()

	switch scope {
	case "days":
		page, err := h.service.ListDays(ctx, pageToken, limit)
		return writeFolderPage(c, l, page, err)
	case "surveyors":
		page, err := h.service.ListSurveyors(ctx, day, pageToken, limit)
		return writeFolderPage(c, l, page, err)
	case "files":
		if day == "" || surveyor == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "scope=files requires day and surveyor",
			})
		}
		entries, nextToken, err := h.service.ListFiles(ctx, day, surveyor, pageToken, limit)
		if err != nil {
			l.Error("file listing failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"items": entries, "nextPageToken": nextToken})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unknown scope: " + scope,
		})
	}
}

func writeFolderPage(c *fiber.Ctx, l *zap.Logger, page ListingPage, err error) error {
	if err != nil {
		l.Error("listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	items := page.Prefixes
	if items == nil {
		items = []string{}
	}
	return c.JSON(fiber.Map{"items": items, "nextPageToken": page.NextPageToken})
}
