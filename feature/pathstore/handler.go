package pathstore

import (
	"errors"

	"path-store/core/logger"
	"path-store/core/storage"
	"path-store/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the path store.
type Handler struct {
	store  *Store
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// RegisterRoutes registers the store routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/store")
	group.Get("/bucket", h.HandleGetBucket)
	group.Post("/bucket/init", h.HandleInitBucket)
	group.Delete("/bucket", h.HandleDestroyBucket)
	group.Post("/files", h.HandleUpload)
	group.Post("/files/copy", h.HandleCopy)
	group.Get("/files", h.HandleList)
	group.Delete("/files", h.HandleDelete)
}

type initBucketRequest struct {
	Public           bool     `json:"public"`
	FileSizeLimit    any      `json:"file_size_limit"`
	AllowedMimeTypes []string `json:"allowed_mime_types"`
}

type uploadRequest struct {
	Path        string `json:"path"`
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
}

type copyRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type deleteRequest struct {
	Paths []string `json:"paths"`
}

// HandleGetBucket returns the selected bucket and its public URL prefix.
func (h *Handler) HandleGetBucket(c *fiber.Ctx) error {
	name := h.store.BucketName()
	if name == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no bucket selected"})
	}
	return c.JSON(fiber.Map{
		"name":       name,
		"url_prefix": h.store.BucketURLPrefix(),
	})
}

// HandleInitBucket provisions the selected bucket (create or update).
func (h *Handler) HandleInitBucket(c *fiber.Ctx) error {
	var req initBucketRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	opts := toBucketOptions(req)
	if err := h.store.InitBucket(c.Context(), opts); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"bucket": h.store.BucketName(), "status": "initialized"})
}

// HandleDestroyBucket empties and deletes the selected bucket.
func (h *Handler) HandleDestroyBucket(c *fiber.Ctx) error {
	if err := h.store.DestroyBucket(c.Context()); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"bucket": h.store.BucketName(), "status": "destroyed"})
}

// HandleUpload stores the request content under the given path.
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	var req uploadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	path, err := h.store.Upload(c.Context(), []byte(req.Content), req.Path, req.ContentType)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"path": path})
}

// HandleCopy duplicates an object between two "/"-prefixed paths.
func (h *Handler) HandleCopy(c *fiber.Ctx) error {
	var req copyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	path, err := h.store.Copy(c.Context(), req.From, req.To)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"path": path})
}

// HandleList resolves the path query parameter to the files beneath it.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing path query parameter"})
	}

	files, err := h.store.ListAllFiles(c.Context(), path)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"files": files})
}

// HandleDelete removes every file beneath each of the given paths.
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	var req deleteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	removed, err := h.store.Delete(c.Context(), req.Paths)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"removed": removed})
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	l := logger.WithRayID(h.logger, c)
	l.Error("store operation failed", zap.String("path", c.Path()), zap.Error(err))

	var se *Error
	if errors.As(err, &se) {
		body := fiber.Map{"error": se.Message, "kind": string(se.Kind)}
		if len(se.Fields) > 0 {
			body["fields"] = se.Fields
		}
		return c.Status(statusFor(se.Kind)).JSON(body)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func statusFor(kind Kind) int {
	switch kind {
	case KindInvalidPath, KindInvalidInput:
		return fiber.StatusBadRequest
	case KindBucketNotSelected:
		return fiber.StatusConflict
	case KindBackend:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// toBucketOptions converts the request body. FileSizeLimit arrives as a
// JSON number or string and is normalized to its string form.
func toBucketOptions(req initBucketRequest) storage.BucketOptions {
	opts := storage.BucketOptions{
		Public:           req.Public,
		AllowedMimeTypes: req.AllowedMimeTypes,
	}
	if req.FileSizeLimit != nil {
		opts.FileSizeLimit = utils.ToString(req.FileSizeLimit)
	}
	return opts
}
