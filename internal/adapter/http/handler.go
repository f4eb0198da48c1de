package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/gofiber/fiber/v2"

	"resume-builder/internal/model"
	"resume-builder/internal/template"
	"resume-builder/internal/usecase"
)

// Handler is the editing-session boundary: it exposes the section store,
// persistence bridge and preview over local HTTP for the form UI.
type Handler struct {
	session *usecase.Session
	bridge  *usecase.Bridge
	preview *usecase.Preview
	render  usecase.Renderer
	logger  *slog.Logger

	mu            sync.Mutex
	pendingImport *model.Document
}

func NewHandler(s *usecase.Session, b *usecase.Bridge, p *usecase.Preview, r usecase.Renderer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{session: s, bridge: b, preview: p, render: r, logger: logger}
}

func (h *Handler) Register(app *fiber.App) {
	app.Get("/resume", h.GetDocument)
	app.Put("/resume/settings", h.PutSettings)
	app.Post("/resume/sections", h.AppendSection)
	app.Put("/resume/sections/:index", h.UpdateSection)
	app.Delete("/resume/sections/:index", h.RemoveSection)
	app.Get("/resume/export", h.Export)
	app.Post("/resume/import", h.Import)
	app.Post("/resume/import/confirm", h.ConfirmImport)
	app.Post("/resume/import/cancel", h.CancelImport)
	app.Get("/resume/pdf", h.DownloadPDF)
	app.Get("/preview", h.PreviewStatus)
	app.Get("/preview/pdf", h.PreviewPDF)
	app.Put("/preview/page", h.PreviewPage)
	app.Put("/preview/width", h.PreviewWidth)
}

func (h *Handler) GetDocument(c *fiber.Ctx) error {
	return c.JSON(h.session.Document())
}

func (h *Handler) PutSettings(c *fiber.Ctx) error {
	var settings model.Settings
	if err := c.BodyParser(&settings); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	h.session.SetSettings(settings)
	return c.JSON(h.session.Document().Settings)
}

func (h *Handler) AppendSection(c *fiber.Ctx) error {
	section, err := decodeSection(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.session.Append(section); err != nil {
		if errors.Is(err, usecase.ErrDuplicateSection) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return validationStatus(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"index": h.session.Len() - 1})
}

func (h *Handler) UpdateSection(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid index"})
	}
	section, err := decodeSection(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.session.Update(index, section); err != nil {
		switch {
		case errors.Is(err, usecase.ErrIndexOutOfRange):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, usecase.ErrTypeImmutable):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return validationStatus(c, err)
	}
	return c.JSON(fiber.Map{"index": index})
}

// RemoveSection deletes a section. Removal is irreversible, so the client
// must send confirm=true after showing its confirmation dialog.
func (h *Handler) RemoveSection(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid index"})
	}
	if c.Query("confirm") != "true" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "This action cannot be undone. Re-send with confirm=true to remove the section.",
		})
	}
	if err := h.session.Remove(index); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) Export(c *fiber.Ctx) error {
	data, err := h.bridge.Export(h.session.Document())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+usecase.ExportFilename+`"`)
	return c.Send(data)
}

// Import validates the uploaded blob and parks it until the user confirms
// the overwrite. The current document and store stay untouched.
func (h *Handler) Import(c *fiber.Ctx) error {
	doc, err := h.bridge.Import(c.Body())
	if err != nil {
		var ierr *usecase.ImportError
		if errors.As(err, &ierr) {
			h.logger.Info("import rejected", "kind", ierr.Kind)
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": ierr.Message,
				"kind":  ierr.Kind,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	h.mu.Lock()
	h.pendingImport = doc
	h.mu.Unlock()

	return c.JSON(fiber.Map{
		"sections": len(doc.Sections),
		"message":  "This action cannot be undone. This will permanently overwrite your current resume.",
	})
}

func (h *Handler) ConfirmImport(c *fiber.Ctx) error {
	h.mu.Lock()
	doc := h.pendingImport
	h.pendingImport = nil
	h.mu.Unlock()
	if doc == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "no import pending"})
	}
	if err := h.bridge.CommitImport(c.Context(), doc); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	h.session.Replace(doc)
	return c.JSON(h.session.Document())
}

func (h *Handler) CancelImport(c *fiber.Ctx) error {
	h.mu.Lock()
	h.pendingImport = nil
	h.mu.Unlock()
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF renders the latest document synchronously for the download
// action, independent of the debounced preview pipeline.
func (h *Handler) DownloadPDF(c *fiber.Ctx) error {
	lay := template.Build(h.session.Document())
	artifact, err := h.render.Render(context.Background(), lay)
	if err != nil {
		h.logger.Error("pdf download render failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "render failed"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="resume.pdf"`)
	return c.Send(artifact.PDF)
}

func (h *Handler) PreviewStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"state": h.preview.State(),
		"page":  h.preview.Page(),
		"pages": h.preview.PageCount(),
		"width": h.preview.Width(),
	})
}

func (h *Handler) PreviewPDF(c *fiber.Ctx) error {
	artifact := h.preview.Artifact()
	if artifact == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no render yet"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(artifact.PDF)
}

func (h *Handler) PreviewPage(c *fiber.Ctx) error {
	var req struct {
		Page int `json:"page"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	return c.JSON(fiber.Map{"page": h.preview.SetPage(req.Page)})
}

func (h *Handler) PreviewWidth(c *fiber.Ctx) error {
	var req struct {
		Available int `json:"available"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	return c.JSON(fiber.Map{"width": h.preview.FitWidth(req.Available)})
}

func decodeSection(body []byte) (model.Section, error) {
	var tag struct {
		Type model.SectionType `json:"type"`
	}
	if err := json.Unmarshal(body, &tag); err != nil {
		return nil, errors.New("invalid payload")
	}
	section, err := model.NewSection(tag.Type)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, section); err != nil {
		return nil, err
	}
	return section, nil
}

func validationStatus(c *fiber.Ctx, err error) error {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "validation failed",
			"issues": verr.Issues,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
