package service

import (
	"noticegen-web/internal/models"
	"noticegen-web/internal/repository"
)

type StatsService struct {
	statsRepo *repository.StatsRepository
}

func NewStatsService(statsRepo *repository.StatsRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

// Summary aggregates the dashboard counters
func (s *StatsService) Summary() (*models.SummaryStats, error) {
	totalBatches, err := s.statsRepo.CountBatches()
	if err != nil {
		return nil, err
	}

	byStatus, err := s.statsRepo.CountBatchesByStatus()
	if err != nil {
		return nil, err
	}

	totalRecipients, err := s.statsRepo.CountRecipients()
	if err != nil {
		return nil, err
	}

	generated, failed, err := s.statsRepo.CountNoticesByStatus()
	if err != nil {
		return nil, err
	}

	return &models.SummaryStats{
		TotalBatches:     totalBatches,
		TotalNotices:     generated + failed,
		TotalRecipients:  totalRecipients,
		BatchesByStatus:  byStatus,
		NoticesGenerated: generated,
		NoticesFailed:    failed,
	}, nil
}

// TopBanks lists the banks with the most generated notices
func (s *StatsService) TopBanks(limit int) ([]models.BankStat, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.statsRepo.TopBanks(limit)
}
