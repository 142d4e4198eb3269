package service

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"noticegen-web/internal/config"
	"noticegen-web/internal/ifsc"
	"noticegen-web/internal/models"
	"noticegen-web/internal/notice"
	"noticegen-web/internal/repository"
	"noticegen-web/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NoticeService owns the batch lifecycle: importing recipients, resolving
// bank names through the override layer, driving document generation for the
// worker, and packaging outputs for download.
type NoticeService struct {
	noticeRepo   *repository.NoticeRepository
	templateRepo *repository.TemplateRepository
	bankRepo     *repository.BankRepository
	excelService *ExcelService
	cfg          *config.Config
	log          *logrus.Logger
}

func NewNoticeService(
	noticeRepo *repository.NoticeRepository,
	templateRepo *repository.TemplateRepository,
	bankRepo *repository.BankRepository,
	excelService *ExcelService,
	cfg *config.Config,
) *NoticeService {
	return &NoticeService{
		noticeRepo:   noticeRepo,
		templateRepo: templateRepo,
		bankRepo:     bankRepo,
		excelService: excelService,
		cfg:          cfg,
		log:          utils.GetLogger(),
	}
}

// NewBatchCode generates a short unique batch identifier
func NewBatchCode() string {
	return fmt.Sprintf("NTC-%s", uuid.New().String()[:8])
}

// CreateBatch imports a recipients file, persists the batch with its valid
// rows, and returns the import result so the caller can report validation
// errors. The batch is created in pending status; generation runs in the
// worker.
func (s *NoticeService) CreateBatch(userID int, filePath, originalFilename string, opts models.BatchUploadOptions) (*models.NoticeBatch, *models.RecipientImportResult, error) {
	template, err := s.resolveTemplate(opts.TemplateID)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.excelService.ParseRecipientsWithValidation(filePath)
	if err != nil {
		return nil, nil, err
	}

	if result.ValidCount == 0 {
		return nil, result, fmt.Errorf("no valid recipients found in the file")
	}

	// Resolve display names up front so recipients carry them
	resolve := s.BankResolver()
	groups := 0
	seen := make(map[string]bool)
	for i := range result.ValidRecipients {
		code := result.ValidRecipients[i].RoutingCode
		result.ValidRecipients[i].BankName = resolve(code)
		if !seen[code] {
			seen[code] = true
			groups++
		}
	}

	batchCode := NewBatchCode()
	batch := &models.NoticeBatch{
		BatchCode:   batchCode,
		UserID:      userID,
		TemplateID:  template.ID,
		Filename:    originalFilename,
		Placeholder: defaultString(opts.Placeholder, s.cfg.NoticePlaceholder),
		Tone:        defaultString(opts.Tone, s.cfg.NoticeTone),
		FontName:    defaultString(opts.FontName, s.cfg.NoticeFontName),
		FontSize:    defaultInt(opts.FontSize, s.cfg.NoticeFontSize),
		TotalRows:   result.TotalRows,
		InvalidRows: result.ErrorCount,
		TotalGroups: groups,
		Status:      models.BatchStatusPending,
		OutputDir:   filepath.Join(s.cfg.NoticeOutputPath, batchCode),
	}

	if err := s.noticeRepo.CreateBatch(batch); err != nil {
		return nil, result, fmt.Errorf("create batch: %w", err)
	}

	for i := range result.ValidRecipients {
		result.ValidRecipients[i].BatchID = batch.ID
	}
	if err := s.noticeRepo.BulkInsertRecipients(result.ValidRecipients); err != nil {
		return nil, result, fmt.Errorf("insert recipients: %w", err)
	}

	return batch, result, nil
}

func (s *NoticeService) resolveTemplate(templateID int) (*models.NoticeTemplate, error) {
	if templateID > 0 {
		template, err := s.templateRepo.FindByID(templateID)
		if err != nil {
			return nil, fmt.Errorf("template %d not found", templateID)
		}
		return template, nil
	}

	template, err := s.templateRepo.FindDefault()
	if err != nil {
		return nil, fmt.Errorf("no notice template uploaded yet")
	}
	return template, nil
}

// BankResolver snapshots the active overrides and returns a resolver that
// consults them before the built-in prefix table.
func (s *NoticeService) BankResolver() func(code string) string {
	overrides := map[string]string{}
	rows, err := s.bankRepo.FindActive()
	if err != nil {
		s.log.WithError(err).Warn("could not load bank overrides, using built-in table only")
	} else {
		for _, row := range rows {
			overrides[strings.ToUpper(row.Prefix)] = row.BankName
		}
	}

	return func(code string) string {
		if len(code) >= 4 {
			if name, ok := overrides[strings.ToUpper(code[:4])]; ok {
				return name
			}
		}
		return ifsc.BankName(code)
	}
}

// MergedBankList layers overrides onto the built-in table, filtered by an
// optional search term against prefix or name.
func (s *NoticeService) MergedBankList(search string) ([]models.BankEntry, error) {
	banks := ifsc.Banks()
	overridden := map[string]bool{}

	rows, err := s.bankRepo.FindActive()
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		prefix := strings.ToUpper(row.Prefix)
		banks[prefix] = row.BankName
		overridden[prefix] = true
	}

	search = strings.ToLower(strings.TrimSpace(search))
	entries := make([]models.BankEntry, 0, len(banks))
	for prefix, name := range banks {
		if search != "" &&
			!strings.Contains(strings.ToLower(prefix), search) &&
			!strings.Contains(strings.ToLower(name), search) {
			continue
		}
		entries = append(entries, models.BankEntry{
			Prefix:     prefix,
			BankName:   name,
			Overridden: overridden[prefix],
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Prefix < entries[j].Prefix })
	return entries, nil
}

// GenerateBatch runs document generation for a persisted batch. Each finished
// notice is recorded and progress is pushed through onProgress; a batch whose
// status changes to cancelled stops before the next notice.
func (s *NoticeService) GenerateBatch(ctx context.Context, batch *models.NoticeBatch, onProgress func(models.BatchProgress)) (*notice.Summary, error) {
	template, err := s.templateRepo.FindByID(batch.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("load template %d: %w", batch.TemplateID, err)
	}

	recipients, err := s.noticeRepo.AllRecipients(batch.ID)
	if err != nil {
		return nil, fmt.Errorf("load recipients: %w", err)
	}

	rows := make([]notice.AccountRecord, 0, len(recipients))
	for _, r := range recipients {
		rows = append(rows, notice.AccountRecord{
			AccountNo:   r.AccountNo,
			AccountName: r.AccountName,
			RoutingCode: r.RoutingCode,
		})
	}

	grouped, _ := notice.GroupByRoutingCode(rows)
	if grouped.Len() == 0 {
		return nil, fmt.Errorf("batch has no valid recipient groups")
	}

	genCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	generated, failed := 0, 0
	gen := &notice.Generator{
		TemplatePath: template.StoredPath,
		OutputDir:    batch.OutputDir,
		Options: notice.Options{
			Placeholder: batch.Placeholder,
			Tone:        notice.Tone(batch.Tone),
			FontName:    batch.FontName,
			FontSize:    batch.FontSize,
		},
		ResolveBank: s.BankResolver(),
		OnNotice: func(done, total int, res notice.NoticeResult) {
			record := &models.GeneratedNotice{
				BatchID:     batch.ID,
				RoutingCode: res.RoutingCode,
				BankName:    res.BankName,
				Filename:    res.Filename,
				RecordCount: res.RecordCount,
				Status:      models.NoticeStatusGenerated,
			}
			if res.Err != nil {
				record.Status = models.NoticeStatusFailed
				record.ErrorMessage = res.Err.Error()
				failed++
			} else {
				generated++
			}

			if err := s.noticeRepo.CreateNotice(record); err != nil {
				s.log.WithError(err).WithField("batch_code", batch.BatchCode).Error("failed to record notice")
			}
			if err := s.noticeRepo.UpdateBatchProgress(batch.ID, generated, failed); err != nil {
				s.log.WithError(err).WithField("batch_code", batch.BatchCode).Error("failed to update batch progress")
			}

			if onProgress != nil {
				onProgress(models.BatchProgress{
					BatchID:     batch.ID,
					BatchCode:   batch.BatchCode,
					Status:      models.BatchStatusProcessing,
					TotalGroups: total,
					Done:        done,
					Generated:   generated,
					Failed:      failed,
					CurrentBank: res.BankName,
				})
			}

			// Honor cancellation between notices
			status, statusErr := s.noticeRepo.BatchStatus(batch.ID)
			if statusErr == nil && status == models.BatchStatusCancelled {
				cancel()
			}
		},
	}

	summary, err := gen.Generate(genCtx, grouped)
	if err != nil && errors.Is(err, context.Canceled) && ctx.Err() == nil {
		// The batch was cancelled through the API, not the worker shutting down
		return summary, nil
	}
	return summary, err
}

// FinalStatus maps a generation summary to the batch's terminal status
func FinalStatus(summary *notice.Summary) string {
	switch {
	case summary.Generated == 0 && summary.Failed > 0:
		return models.BatchStatusFailed
	case summary.Failed > 0:
		return models.BatchStatusCompletedWithErrors
	default:
		return models.BatchStatusCompleted
	}
}

// CancelBatch requests cancellation; only pending or processing batches can
// be cancelled.
func (s *NoticeService) CancelBatch(batch *models.NoticeBatch) error {
	if batch.Status != models.BatchStatusPending && batch.Status != models.BatchStatusProcessing {
		return fmt.Errorf("batch %s is %s and cannot be cancelled", batch.BatchCode, batch.Status)
	}
	return s.noticeRepo.UpdateBatchStatus(batch.ID, models.BatchStatusCancelled)
}

// NoticePath returns the on-disk path of a generated notice
func (s *NoticeService) NoticePath(batch *models.NoticeBatch, record *models.GeneratedNotice) string {
	return filepath.Join(batch.OutputDir, record.Filename)
}

// ArchiveBatch writes a zip of the batch's generated notices to w
func (s *NoticeService) ArchiveBatch(batch *models.NoticeBatch, w io.Writer) error {
	notices, err := s.noticeRepo.FindNoticesByBatch(batch.ID)
	if err != nil {
		return fmt.Errorf("load notices: %w", err)
	}

	zw := zip.NewWriter(w)
	added := 0
	for _, record := range notices {
		if record.Status != models.NoticeStatusGenerated {
			continue
		}

		path := s.NoticePath(batch, &record)
		src, err := os.Open(path)
		if err != nil {
			s.log.WithError(err).WithField("filename", record.Filename).Warn("skipping missing notice file")
			continue
		}

		dst, err := zw.Create(record.Filename)
		if err != nil {
			src.Close()
			return fmt.Errorf("add %s to archive: %w", record.Filename, err)
		}
		if _, err := io.Copy(dst, src); err != nil {
			src.Close()
			return fmt.Errorf("write %s to archive: %w", record.Filename, err)
		}
		src.Close()
		added++
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	if added == 0 {
		return fmt.Errorf("batch %s has no generated notices to archive", batch.BatchCode)
	}
	return nil
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func defaultInt(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
