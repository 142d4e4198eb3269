package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"noticegen-web/internal/models"
	"noticegen-web/internal/repository"
	"noticegen-web/internal/service"
	"noticegen-web/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type BankHandler struct {
	bankRepo      *repository.BankRepository
	noticeService *service.NoticeService
	excelService  *service.ExcelService
}

func NewBankHandler(
	bankRepo *repository.BankRepository,
	noticeService *service.NoticeService,
	excelService *service.ExcelService,
) *BankHandler {
	return &BankHandler{
		bankRepo:      bankRepo,
		noticeService: noticeService,
		excelService:  excelService,
	}
}

// GetBanks lists the merged bank table: built-in prefixes plus active
// overrides, optionally filtered by search.
func (h *BankHandler) GetBanks(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c)

	entries, err := h.noticeService.MergedBankList(params.Search)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve banks", err)
	}

	return utils.SuccessResponse(c, "Banks retrieved successfully", fiber.Map{
		"banks": entries,
		"total": len(entries),
	})
}

func (h *BankHandler) GetOverrides(c *fiber.Ctx) error {
	overrides, err := h.bankRepo.FindAll()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve overrides", err)
	}

	return utils.SuccessResponse(c, "Overrides retrieved successfully", fiber.Map{
		"overrides": overrides,
	})
}

func (h *BankHandler) CreateOverride(c *fiber.Ctx) error {
	var req models.BankOverrideRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := validateOverrideRequest(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	if existing, err := h.bankRepo.FindByPrefix(req.Prefix); err == nil && existing != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "An override for this prefix already exists", nil)
	}

	override := &models.BankOverride{
		Prefix:   req.Prefix,
		BankName: req.BankName,
		IsActive: req.IsActive,
	}

	if err := h.bankRepo.Create(override); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create override", err)
	}

	return utils.CreatedResponse(c, "Override created successfully", override)
}

func (h *BankHandler) UpdateOverride(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid override ID", err)
	}

	var req models.BankOverrideRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := validateOverrideRequest(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	override, err := h.bankRepo.FindByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Override not found", err)
	}

	override.Prefix = req.Prefix
	override.BankName = req.BankName
	override.IsActive = req.IsActive

	if err := h.bankRepo.Update(override); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update override", err)
	}

	return utils.SuccessResponse(c, "Override updated successfully", override)
}

func (h *BankHandler) DeleteOverride(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid override ID", err)
	}

	if err := h.bankRepo.Delete(id); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete override", err)
	}

	return utils.SuccessResponse(c, "Override deleted successfully", nil)
}

func (h *BankHandler) ImportOverrides(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File is required", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Only Excel files (.xlsx, .xls) are allowed", nil)
	}

	tempPath := filepath.Join("./storage/temp", fmt.Sprintf("overrides_%d%s", time.Now().Unix(), ext))
	if err := c.SaveFile(file, tempPath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save file", err)
	}
	defer os.Remove(tempPath)

	result, err := h.excelService.ParseOverridesWithValidation(tempPath)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to parse Excel file: "+err.Error(), err)
	}

	if result.ValidCount == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success":     false,
			"message":     "No valid overrides found in the file",
			"total_rows":  result.TotalRows,
			"valid_count": result.ValidCount,
			"error_count": result.ErrorCount,
			"errors":      getFirstNErrors(result.ValidationErrors, 10),
		})
	}

	imported := 0
	for i := range result.ValidOverrides {
		if err := h.bankRepo.Upsert(&result.ValidOverrides[i]); err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to import overrides: "+err.Error(), err)
		}
		imported++
	}

	message := "All overrides imported successfully"
	if result.ErrorCount > 0 {
		message = fmt.Sprintf("Import completed with %d errors. %d overrides imported successfully.", result.ErrorCount, imported)
	}

	return utils.SuccessResponse(c, message, fiber.Map{
		"total_rows":     result.TotalRows,
		"valid_count":    result.ValidCount,
		"error_count":    result.ErrorCount,
		"errors":         getFirstNErrors(result.ValidationErrors, 10),
		"total_imported": imported,
	})
}

func validateOverrideRequest(req *models.BankOverrideRequest) error {
	req.Prefix = strings.ToUpper(strings.TrimSpace(req.Prefix))
	req.BankName = strings.TrimSpace(req.BankName)

	if len(req.Prefix) != 4 {
		return fmt.Errorf("prefix must be exactly 4 characters")
	}
	for _, r := range req.Prefix {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("prefix must contain only letters")
		}
	}
	if req.BankName == "" {
		return fmt.Errorf("bank name is required")
	}
	if len(req.BankName) > 200 {
		return fmt.Errorf("bank name must be at most 200 characters")
	}
	return nil
}
