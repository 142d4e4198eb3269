package handler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"noticegen-web/internal/config"
	"noticegen-web/internal/models"
	"noticegen-web/internal/repository"
	"noticegen-web/internal/service"
	"noticegen-web/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

type NoticeHandler struct {
	noticeRepo    *repository.NoticeRepository
	noticeService *service.NoticeService
	excelService  *service.ExcelService
	asynqClient   *asynq.Client
	redis         *redis.Client
	cfg           *config.Config
}

func NewNoticeHandler(
	noticeRepo *repository.NoticeRepository,
	noticeService *service.NoticeService,
	excelService *service.ExcelService,
	asynqClient *asynq.Client,
	redisClient *redis.Client,
	cfg *config.Config,
) *NoticeHandler {
	return &NoticeHandler{
		noticeRepo:    noticeRepo,
		noticeService: noticeService,
		excelService:  excelService,
		asynqClient:   asynqClient,
		redis:         redisClient,
		cfg:           cfg,
	}
}

func (h *NoticeHandler) UploadBatch(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(int)

	// Get uploaded file
	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File is required", err)
	}

	// Validate file type
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".xlsx" && ext != ".xls" && ext != ".csv" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Only Excel or CSV files (.xlsx, .xls, .csv) are allowed", nil)
	}

	// Validate file size
	if file.Size > int64(h.cfg.UploadMaxSize) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File size exceeds maximum limit", nil)
	}

	// Generation runs in the worker; refuse the upload when no queue is
	// available rather than leaving an orphaned pending batch behind.
	if h.asynqClient == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Background job processing is not available (Redis not connected)", nil)
	}

	var opts models.BatchUploadOptions
	if err := c.BodyParser(&opts); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid form options", err)
	}

	// Save file
	filePath := filepath.Join(h.cfg.UploadPath, fmt.Sprintf("recipients_%s%s", uuid.New().String()[:8], ext))
	if err := c.SaveFile(file, filePath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save file", err)
	}

	batch, result, err := h.noticeService.CreateBatch(userID, filePath, file.Filename, opts)
	if err != nil {
		// Parsing succeeded but nothing usable remained
		if result != nil && result.ValidCount == 0 {
			if len(result.ValidationErrors) > 0 {
				errorReportPath := filepath.Join("./storage/exports", fmt.Sprintf("import_errors_%s.xlsx", time.Now().Format("20060102_150405")))
				if reportErr := h.excelService.GenerateImportErrorReport(result, errorReportPath); reportErr == nil {
					result.ErrorReportPath = errorReportPath
				}
			}

			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success":           false,
				"message":           "No valid recipients found in the file",
				"total_rows":        result.TotalRows,
				"valid_count":       result.ValidCount,
				"error_count":       result.ErrorCount,
				"errors":            getFirstNErrors(result.ValidationErrors, 10),
				"error_report_path": result.ErrorReportPath,
			})
		}
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to create batch: "+err.Error(), err)
	}

	// Generate an error report for the skipped rows
	if len(result.ValidationErrors) > 0 {
		errorReportPath := filepath.Join("./storage/exports", fmt.Sprintf("import_errors_%s.xlsx", time.Now().Format("20060102_150405")))
		if reportErr := h.excelService.GenerateImportErrorReport(result, errorReportPath); reportErr == nil {
			result.ErrorReportPath = errorReportPath
		}
	}

	// Queue generation
	payload, _ := json.Marshal(fiber.Map{
		"batch_id":   batch.ID,
		"batch_code": batch.BatchCode,
	})

	task := asynq.NewTask("notice:generate", payload)
	info, err := h.asynqClient.Enqueue(task)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to queue generation task", err)
	}

	return utils.SuccessResponse(c, "Recipients file uploaded successfully", fiber.Map{
		"batch":             batch,
		"job_id":            info.ID,
		"total_rows":        result.TotalRows,
		"valid_count":       result.ValidCount,
		"error_count":       result.ErrorCount,
		"total_groups":      batch.TotalGroups,
		"errors":            getFirstNErrors(result.ValidationErrors, 10),
		"error_report_path": result.ErrorReportPath,
		"preview":           getPreview(result.ValidRecipients, 10),
	})
}

func (h *NoticeHandler) GetBatches(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c)
	offset := utils.GetOffset(params.Page, params.Limit)

	batches, total, err := h.noticeRepo.FindBatches(params.Limit, offset, params.Status, params.Search)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve batches", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, total)

	responseData := fiber.Map{
		"batches":    batches,
		"pagination": pagination,
	}

	return utils.PaginatedResponseBuilder(c, "Batches retrieved successfully", responseData, pagination)
}

func (h *NoticeHandler) GetBatchDetail(c *fiber.Ctx) error {
	batch, err := h.noticeRepo.FindBatchByCode(c.Params("batch_code"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Batch not found", err)
	}

	return utils.SuccessResponse(c, "Batch retrieved successfully", batch)
}

func (h *NoticeHandler) GetRecipients(c *fiber.Ctx) error {
	batch, err := h.noticeRepo.FindBatchByCode(c.Params("batch_code"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Batch not found", err)
	}

	params := utils.GetPaginationParams(c)
	offset := utils.GetOffset(params.Page, params.Limit)

	recipients, total, err := h.noticeRepo.FindRecipients(batch.ID, params.Limit, offset)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve recipients", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, total)

	responseData := fiber.Map{
		"recipients": recipients,
		"pagination": pagination,
	}

	return utils.PaginatedResponseBuilder(c, "Recipients retrieved successfully", responseData, pagination)
}

func (h *NoticeHandler) GetNotices(c *fiber.Ctx) error {
	batch, err := h.noticeRepo.FindBatchByCode(c.Params("batch_code"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Batch not found", err)
	}

	notices, err := h.noticeRepo.FindNoticesByBatch(batch.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve notices", err)
	}

	return utils.SuccessResponse(c, "Notices retrieved successfully", fiber.Map{
		"batch_code": batch.BatchCode,
		"notices":    notices,
	})
}

// GetProgress reports live generation progress. The worker mirrors progress
// into Redis; when the key is missing the persisted batch counters serve as
// the fallback.
func (h *NoticeHandler) GetProgress(c *fiber.Ctx) error {
	batch, err := h.noticeRepo.FindBatchByCode(c.Params("batch_code"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Batch not found", err)
	}

	if h.redis != nil {
		key := fmt.Sprintf("notice:progress:%d", batch.ID)
		if raw, err := h.redis.Get(c.Context(), key).Result(); err == nil {
			var progress models.BatchProgress
			if err := json.Unmarshal([]byte(raw), &progress); err == nil {
				progress.Status = batch.Status
				return utils.SuccessResponse(c, "Progress retrieved successfully", progress)
			}
		}
	}

	progress := models.BatchProgress{
		BatchID:     batch.ID,
		BatchCode:   batch.BatchCode,
		Status:      batch.Status,
		TotalGroups: batch.TotalGroups,
		Done:        batch.GeneratedCount + batch.FailedCount,
		Generated:   batch.GeneratedCount,
		Failed:      batch.FailedCount,
	}

	return utils.SuccessResponse(c, "Progress retrieved successfully", progress)
}

func (h *NoticeHandler) CancelBatch(c *fiber.Ctx) error {
	batch, err := h.noticeRepo.FindBatchByCode(c.Params("batch_code"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Batch not found", err)
	}

	if err := h.noticeService.CancelBatch(batch); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	return utils.SuccessResponse(c, "Cancellation requested", fiber.Map{
		"batch_code": batch.BatchCode,
		"status":     models.BatchStatusCancelled,
	})
}

func (h *NoticeHandler) DeleteBatch(c *fiber.Ctx) error {
	batch, err := h.noticeRepo.FindBatchByCode(c.Params("batch_code"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Batch not found", err)
	}

	if batch.Status == models.BatchStatusProcessing {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot delete a batch while it is processing", nil)
	}

	if err := h.noticeRepo.DeleteNoticesByBatch(batch.ID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete notices", err)
	}
	if err := h.noticeRepo.DeleteRecipientsByBatch(batch.ID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete recipients", err)
	}
	if err := h.noticeRepo.DeleteBatch(batch.ID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete batch", err)
	}

	// Output files are best-effort cleanup
	if batch.OutputDir != "" {
		os.RemoveAll(batch.OutputDir)
	}

	return utils.SuccessResponse(c, "Batch deleted successfully", nil)
}

func (h *NoticeHandler) ExportBatches(c *fiber.Ctx) error {
	batches, err := h.noticeRepo.FindAllBatches()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve batches", err)
	}

	exportFileName := fmt.Sprintf("batches_export_%s.xlsx", time.Now().Format("20060102_150405"))
	exportPath := filepath.Join("./storage/exports", exportFileName)

	if err := h.excelService.ExportBatches(batches, exportPath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export batches", err)
	}

	return c.Download(exportPath, exportFileName)
}

// DownloadArchive sends every generated notice of a batch as one zip. The
// archive is staged under exports first so a mid-stream failure never leaves
// a truncated body on the wire.
func (h *NoticeHandler) DownloadArchive(c *fiber.Ctx) error {
	batch, err := h.noticeRepo.FindBatchByCode(c.Params("batch_code"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Batch not found", err)
	}

	archiveFileName := fmt.Sprintf("notices_%s.zip", batch.BatchCode)
	archivePath := filepath.Join("./storage/exports", archiveFileName)

	f, err := os.Create(archivePath)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create archive", err)
	}

	if err := h.noticeService.ArchiveBatch(batch, f); err != nil {
		f.Close()
		os.Remove(archivePath)
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to build archive: "+err.Error(), err)
	}
	if err := f.Close(); err != nil {
		os.Remove(archivePath)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to finalize archive", err)
	}

	return c.Download(archivePath, archiveFileName)
}

func (h *NoticeHandler) DownloadNotice(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid notice ID", err)
	}

	record, err := h.noticeRepo.FindNoticeByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Notice not found", err)
	}

	if record.Status != models.NoticeStatusGenerated {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Notice was not generated: "+record.ErrorMessage, nil)
	}

	batch, err := h.noticeRepo.FindBatchByID(record.BatchID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Batch not found", err)
	}

	filePath := h.noticeService.NoticePath(batch, record)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Notice file not found on disk", err)
	}

	return c.Download(filePath, record.Filename)
}

func (h *NoticeHandler) DownloadRecipientsTemplate(c *fiber.Ctx) error {
	templateFileName := "recipients_import_template.xlsx"
	templatePath := filepath.Join("./storage/exports", templateFileName)

	if err := h.excelService.GenerateRecipientsTemplate(templatePath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate template", err)
	}

	return c.Download(templatePath, templateFileName)
}

// DownloadErrorReport downloads an import error report file
func (h *NoticeHandler) DownloadErrorReport(c *fiber.Ctx) error {
	filename := c.Params("filename")
	if filename == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Filename is required", nil)
	}

	// Validate filename to prevent directory traversal
	if !isValidFilename(filename) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid filename", nil)
	}

	filePath := filepath.Join("./storage/exports", filename)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Error report file not found", err)
	}

	return c.Download(filePath, filename)
}

// getPreview returns the first rows of an import for the upload response
func getPreview(recipients []models.BatchRecipient, limit int) []models.BatchRecipient {
	if len(recipients) > limit {
		return recipients[:limit]
	}
	return recipients
}

// getFirstNErrors returns the first n errors from a slice
func getFirstNErrors(errors []models.RowValidationError, n int) []models.RowValidationError {
	if len(errors) <= n {
		return errors
	}
	return errors[:n]
}

// isValidFilename validates filename to prevent directory traversal
func isValidFilename(filename string) bool {
	if len(filename) == 0 || len(filename) > 255 {
		return false
	}

	dangerousChars := []string{"..", "/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	for _, char := range dangerousChars {
		if strings.Contains(filename, char) {
			return false
		}
	}

	return strings.HasPrefix(filename, "import_errors_") && strings.HasSuffix(filename, ".xlsx")
}
