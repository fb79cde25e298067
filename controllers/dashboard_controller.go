package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Luis14-code/front-app-nutri/services"
	"github.com/Luis14-code/front-app-nutri/utils"
)

type DashboardController struct {
	Days      *services.DayService
	Adherence *services.AdherenceService
	Gemini    *services.GeminiService
}

func NewDashboardController(days *services.DayService, adherence *services.AdherenceService, gemini *services.GeminiService) *DashboardController {
	return &DashboardController{Days: days, Adherence: adherence, Gemini: gemini}
}

// dateParam reads the ?date= query, defaulting to today.
func dateParam(c *gin.Context) (string, bool) {
	raw := c.DefaultQuery("date", time.Now().Format("2006-01-02"))
	if _, err := time.Parse("2006-01-02", raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
		return "", false
	}
	return raw, true
}

// GetDay returns the day's meal list, materializing it from the plan on
// first access.
func (h *DashboardController) GetDay(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	date, ok := dateParam(c)
	if !ok {
		return
	}

	meals, err := h.Days.GetDay(userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":   date,
		"meals":  meals,
		"points": services.DailyPoints(meals),
	})
}

// Toggle flips one meal's done flag.
func (h *DashboardController) Toggle(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	date, ok := dateParam(c)
	if !ok {
		return
	}

	meals, err := h.Days.Toggle(userID, date, c.Param("id"))
	if errors.Is(err, services.ErrMealNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":   date,
		"meals":  meals,
		"points": services.DailyPoints(meals),
	})
}

// AddExtra analyzes a free-text food description and appends it as an
// off-plan log. A failed analysis leaves the day untouched.
func (h *DashboardController) AddExtra(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	date, ok := dateParam(c)
	if !ok {
		return
	}

	var body struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	analysis := h.Gemini.AnalyzeFood(body.Text)
	meals, err := h.Days.AddExtra(userID, date, analysis)
	if errors.Is(err, services.ErrNoAnalysis) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "could not analyze the food description"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"date": date, "meals": meals})
}

// Balance returns the day's calorie balance and coaching message.
func (h *DashboardController) Balance(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	date, ok := dateParam(c)
	if !ok {
		return
	}

	balance, err := h.Days.DayBalance(userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, balance)
}

// LogActivity records a physical activity with its estimated burn.
func (h *DashboardController) LogActivity(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	date, ok := dateParam(c)
	if !ok {
		return
	}

	var body struct {
		Type     string `json:"type" binding:"required"`
		Duration int    `json:"duration" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activity, err := h.Days.LogActivity(userID, date, body.Type, body.Duration)
	if errors.Is(err, services.ErrInvalidActivity) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, activity)
}

// ListActivities returns the day's logged activities.
func (h *DashboardController) ListActivities(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	date, ok := dateParam(c)
	if !ok {
		return
	}

	activities, err := h.Days.ListActivities(userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": activities, "options": utils.ActivityOptions})
}

// Calendar classifies every day of the requested month.
func (h *DashboardController) Calendar(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	raw := c.DefaultQuery("month", time.Now().Format("2006-01"))
	month, err := time.Parse("2006-01", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month, want YYYY-MM"})
		return
	}

	days, err := h.Adherence.Calendar(userID, month.Year(), month.Month())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"month": raw, "days": days})
}
