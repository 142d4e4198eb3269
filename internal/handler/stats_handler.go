package handler

import (
	"strconv"

	"noticegen-web/internal/service"
	"noticegen-web/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

func (h *StatsHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.statsService.Summary()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve statistics", err)
	}

	return utils.SuccessResponse(c, "Statistics retrieved successfully", summary)
}

func (h *StatsHandler) GetTopBanks(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	banks, err := h.statsService.TopBanks(limit)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve bank statistics", err)
	}

	return utils.SuccessResponse(c, "Bank statistics retrieved successfully", fiber.Map{
		"banks": banks,
	})
}
