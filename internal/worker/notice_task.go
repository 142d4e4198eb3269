package worker

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"noticegen-web/internal/config"
	"noticegen-web/internal/models"
	"noticegen-web/internal/repository"
	"noticegen-web/internal/service"
	"noticegen-web/internal/utils"

	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NoticeTaskHandler runs notice generation for a batch in the background.
// Generation errors are split into permanent failures, which mark the batch
// failed and consume the task, and transient ones (worker shutdown), which
// are returned so asynq retries.
type NoticeTaskHandler struct {
	redis         *redis.Client
	cfg           *config.Config
	noticeRepo    *repository.NoticeRepository
	noticeService *service.NoticeService
	log           *logrus.Logger
}

func NewNoticeTaskHandler(db *sqlx.DB, redisClient *redis.Client, cfg *config.Config) *NoticeTaskHandler {
	noticeRepo := repository.NewNoticeRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	bankRepo := repository.NewBankRepository(db)
	excelService := service.NewExcelService()
	noticeService := service.NewNoticeService(noticeRepo, templateRepo, bankRepo, excelService, cfg)

	return &NoticeTaskHandler{
		redis:         redisClient,
		cfg:           cfg,
		noticeRepo:    noticeRepo,
		noticeService: noticeService,
		log:           utils.GetLogger(),
	}
}

type NoticeTaskPayload struct {
	BatchID   int    `json:"batch_id"`
	BatchCode string `json:"batch_code"`
}

func (h *NoticeTaskHandler) Handle(ctx context.Context, task *asynq.Task) error {
	var payload NoticeTaskPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	log := h.log.WithFields(logrus.Fields{
		"batch_id":   payload.BatchID,
		"batch_code": payload.BatchCode,
	})
	log.Info("starting notice generation")

	batch, err := h.noticeRepo.FindBatchByID(payload.BatchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("batch no longer exists, skipping")
			return nil
		}
		return fmt.Errorf("load batch %d: %w", payload.BatchID, err)
	}

	switch batch.Status {
	case models.BatchStatusCancelled:
		log.Info("batch was cancelled before generation started, skipping")
		return nil
	case models.BatchStatusCompleted, models.BatchStatusCompletedWithErrors, models.BatchStatusFailed:
		log.Infof("batch is already %s, skipping", batch.Status)
		return nil
	}

	if err := h.noticeRepo.UpdateBatchStatus(batch.ID, models.BatchStatusProcessing); err != nil {
		return fmt.Errorf("mark batch processing: %w", err)
	}

	summary, err := h.noticeService.GenerateBatch(ctx, batch, func(p models.BatchProgress) {
		h.writeProgress(ctx, p)
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			// Worker is shutting down; leave the batch for the retry
			return err
		}
		log.WithError(err).Error("notice generation failed")
		if markErr := h.noticeRepo.MarkBatchFailed(batch.ID, err.Error()); markErr != nil {
			log.WithError(markErr).Error("failed to mark batch failed")
		}
		// Permanent failure, retrying will not help
		return nil
	}

	// An API-side cancellation keeps its status; otherwise the summary
	// decides the terminal status.
	finalStatus := service.FinalStatus(summary)
	if status, statusErr := h.noticeRepo.BatchStatus(batch.ID); statusErr == nil && status == models.BatchStatusCancelled {
		finalStatus = models.BatchStatusCancelled
	}

	if err := h.noticeRepo.FinalizeBatch(batch.ID, finalStatus, summary.Generated, summary.Failed, ""); err != nil {
		log.WithError(err).Error("failed to finalize batch")
	}

	h.writeProgress(ctx, models.BatchProgress{
		BatchID:     batch.ID,
		BatchCode:   batch.BatchCode,
		Status:      finalStatus,
		TotalGroups: summary.Groups,
		Done:        summary.Generated + summary.Failed,
		Generated:   summary.Generated,
		Failed:      summary.Failed,
	})

	log.WithFields(logrus.Fields{
		"status":    finalStatus,
		"generated": summary.Generated,
		"failed":    summary.Failed,
	}).Info("notice generation finished")

	return nil
}

func (h *NoticeTaskHandler) writeProgress(ctx context.Context, p models.BatchProgress) {
	if h.redis == nil {
		return
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	key := fmt.Sprintf("notice:progress:%d", p.BatchID)
	if err := h.redis.Set(ctx, key, raw, time.Hour).Err(); err != nil {
		h.log.WithError(err).Warn("failed to write progress to redis")
	}
}
