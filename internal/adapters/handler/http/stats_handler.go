package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/habit-horizon/internal/core/domain"
	"github.com/comitanigiacomo/habit-horizon/internal/core/services"
)

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats", h.GetSnapshot)
	r.GET("/stats/trend", h.GetWeeklyTrend)
}

func (h *StatsHandler) GetSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.GetSnapshot())
}

// GetWeeklyTrend returns six weeks oldest first, percentages clamped to
// 0..100 and rounded for display.
func (h *StatsHandler) GetWeeklyTrend(c *gin.Context) {
	points := h.svc.GetWeeklyTrend()

	type trendPoint struct {
		WeekStart  string `json:"week_start"`
		Percentage int    `json:"percentage"`
	}
	out := make([]trendPoint, 0, len(points))
	for _, p := range points {
		out = append(out, trendPoint{
			WeekStart:  domain.DayKey(p.WeekStart),
			Percentage: p.Rounded(),
		})
	}
	c.JSON(http.StatusOK, out)
}
