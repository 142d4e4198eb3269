package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"noticegen-web/internal/config"
	"noticegen-web/internal/models"
	"noticegen-web/internal/repository"
	"noticegen-web/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TemplateHandler struct {
	templateRepo *repository.TemplateRepository
	cfg          *config.Config
}

func NewTemplateHandler(templateRepo *repository.TemplateRepository, cfg *config.Config) *TemplateHandler {
	return &TemplateHandler{
		templateRepo: templateRepo,
		cfg:          cfg,
	}
}

func (h *TemplateHandler) GetTemplates(c *fiber.Ctx) error {
	templates, err := h.templateRepo.FindAll()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve templates", err)
	}

	return utils.SuccessResponse(c, "Templates retrieved successfully", fiber.Map{
		"templates": templates,
	})
}

func (h *TemplateHandler) UploadTemplate(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(int)

	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File is required", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".docx" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Only Word templates (.docx) are allowed", nil)
	}

	if file.Size > int64(h.cfg.UploadMaxSize) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File size exceeds maximum limit", nil)
	}

	name := c.FormValue("name")
	if name == "" {
		name = strings.TrimSuffix(file.Filename, ext)
	}

	storedPath := filepath.Join(h.cfg.TemplatePath, fmt.Sprintf("template_%s%s", uuid.New().String()[:8], ext))
	if err := c.SaveFile(file, storedPath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save template", err)
	}

	template := &models.NoticeTemplate{
		Name:       name,
		Filename:   file.Filename,
		StoredPath: storedPath,
		UploadedBy: userID,
	}

	// First template becomes the default automatically
	existing, err := h.templateRepo.FindAll()
	if err == nil && len(existing) == 0 {
		template.IsDefault = true
	}

	if err := h.templateRepo.Create(template); err != nil {
		os.Remove(storedPath)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create template", err)
	}

	return utils.CreatedResponse(c, "Template uploaded successfully", template)
}

func (h *TemplateHandler) SetDefaultTemplate(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid template ID", err)
	}

	if _, err := h.templateRepo.FindByID(id); err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Template not found", err)
	}

	if err := h.templateRepo.SetDefault(id); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to set default template", err)
	}

	return utils.SuccessResponse(c, "Default template updated successfully", nil)
}

func (h *TemplateHandler) DeleteTemplate(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid template ID", err)
	}

	template, err := h.templateRepo.FindByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Template not found", err)
	}

	if template.IsDefault {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot delete the default template", nil)
	}

	if err := h.templateRepo.Delete(id); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete template", err)
	}

	// Stored file removal is best-effort; the row is already gone
	if template.StoredPath != "" {
		os.Remove(template.StoredPath)
	}

	return utils.SuccessResponse(c, "Template deleted successfully", nil)
}

func (h *TemplateHandler) DownloadTemplate(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid template ID", err)
	}

	template, err := h.templateRepo.FindByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Template not found", err)
	}

	if _, err := os.Stat(template.StoredPath); os.IsNotExist(err) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Template file not found on disk", err)
	}

	return c.Download(template.StoredPath, template.Filename)
}
