package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-horizon/internal/core/domain"
	"github.com/comitanigiacomo/habit-horizon/internal/core/services"
)

type HabitHandler struct {
	habits   *services.HabitService
	checkins *services.CheckInService
	logger   *zap.Logger
}

func NewHabitHandler(habits *services.HabitService, checkins *services.CheckInService, logger *zap.Logger) *HabitHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HabitHandler{
		habits:   habits,
		checkins: checkins,
		logger:   logger,
	}
}

type createHabitRequest struct {
	Name      string `json:"name" binding:"required"`
	Goal      string `json:"goal"`
	Frequency string `json:"frequency"`
	// Tags accepts either a list or a comma separated string.
	Tags any `json:"tags"`
}

type toggleRequest struct {
	Date string `json:"date"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.GET("", h.List)
		habits.POST("", h.Create)
		habits.GET("/:id", h.Get)
		habits.DELETE("/:id", h.Delete)
		habits.GET("/:id/days", h.RecentDays)
		habits.POST("/:id/toggle", h.Toggle)
	}
	router.GET("/tags", h.Tags)
}

func (h *HabitHandler) List(c *gin.Context) {
	filter := services.HabitFilter{
		Query: c.Query("q"),
		Tag:   c.Query("tag"),
	}
	c.JSON(http.StatusOK, h.habits.List(filter))
}

func (h *HabitHandler) Get(c *gin.Context) {
	habit, err := h.habits.GetByID(c.Param("id"))
	if err != nil {
		handleError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Create(c *gin.Context) {
	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tags, ok := parseTags(req.Tags)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tags must be a list of strings or a comma separated string"})
		return
	}

	habit, err := h.habits.Create(c.Request.Context(), services.CreateHabitInput{
		Name:      req.Name,
		Goal:      req.Goal,
		Frequency: req.Frequency,
		Tags:      tags,
	})
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

// Delete is idempotent: removing an unknown id still answers 204.
func (h *HabitHandler) Delete(c *gin.Context) {
	h.habits.Delete(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *HabitHandler) RecentDays(c *gin.Context) {
	days := services.DefaultRecentDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be an integer"})
			return
		}
		days = n
	}

	strip, err := h.checkins.RecentDays(c.Param("id"), days)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, strip)
}

func (h *HabitHandler) Toggle(c *gin.Context) {
	// The body is optional; without one today is toggled.
	var req toggleRequest
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	habit, err := h.checkins.Toggle(c.Request.Context(), services.ToggleInput{
		HabitID: c.Param("id"),
		Day:     req.Date,
	})
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Tags(c *gin.Context) {
	c.JSON(http.StatusOK, h.habits.Tags())
}

func parseTags(raw any) ([]string, bool) {
	switch v := raw.(type) {
	case nil:
		return []string{}, true
	case string:
		return domain.SplitTags(v), true
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			tags = append(tags, s)
		}
		return domain.NormalizeTags(tags), true
	default:
		return nil, false
	}
}
