package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Luis14-code/front-app-nutri/models"
	"github.com/Luis14-code/front-app-nutri/services"
)

type StudentController struct {
	Roster    *services.RosterService
	Users     *services.UserService
	Plans     *services.MealPlanService
	Adherence *services.AdherenceService
	Reports   *services.ReportService
}

func NewStudentController(
	roster *services.RosterService,
	users *services.UserService,
	plans *services.MealPlanService,
	adherence *services.AdherenceService,
	reports *services.ReportService,
) *StudentController {
	return &StudentController{
		Roster:    roster,
		Users:     users,
		Plans:     plans,
		Adherence: adherence,
		Reports:   reports,
	}
}

// periodParam reads ?period= against the fixed option list. Default 7.
func periodParam(c *gin.Context) (int, bool) {
	raw := c.DefaultQuery("period", "7")
	period, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period"})
		return 0, false
	}
	for _, opt := range services.PeriodOptions {
		if period == opt {
			return period, true
		}
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "period must be one of 7, 15, 30, 365"})
	return 0, false
}

// studentParam resolves :id and verifies the caller's roster membership.
func (h *StudentController) studentParam(c *gin.Context) (uint, bool) {
	nutritionistID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return 0, false
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return 0, false
	}
	studentID := uint(id)

	member, err := h.Roster.Member(nutritionistID, studentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return 0, false
	}
	if !member {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not on your roster"})
		return 0, false
	}
	return studentID, true
}

// List returns the roster with windowed stats. ?search= filters by name.
func (h *StudentController) List(c *gin.Context) {
	nutritionistID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	period, ok := periodParam(c)
	if !ok {
		return
	}

	cards, err := h.Roster.ListStudents(nutritionistID, period, c.Query("search"), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cards)
}

// Add looks up a student by email and appends them to the roster.
func (h *StudentController) Add(c *gin.Context) {
	nutritionistID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student, err := h.Roster.AddStudent(nutritionistID, body.Email)
	if errors.Is(err, services.ErrStudentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, services.ErrAlreadyRostered) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":    student.ID,
		"name":  student.Name,
		"email": student.Email,
	})
}

// Get returns the student detail view: profile, active target, and plan.
func (h *StudentController) Get(c *gin.Context) {
	studentID, ok := h.studentParam(c)
	if !ok {
		return
	}

	student, err := h.Users.FindByID(studentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	target, err := h.Users.LatestTarget(studentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	plan, err := h.Plans.GetPlan(studentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    student.ID,
		"name":  student.Name,
		"email": student.Email,
		"nutrition": gin.H{
			"goal":            target.Goal,
			"calories_target": target.CaloriesTarget,
			"protein_target":  target.ProteinTarget,
			"carbs_target":    target.CarbsTarget,
			"lean_mass":       target.LeanMass,
			"fat_lost":        target.FatLost,
		},
		"meal_plan":    plan,
		"goal_options": models.GoalOptions,
	})
}

// SetTargets appends a new target snapshot for the student.
func (h *StudentController) SetTargets(c *gin.Context) {
	studentID, ok := h.studentParam(c)
	if !ok {
		return
	}

	var body services.TargetInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	target, err := h.Users.SetTargets(studentID, body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, target)
}

// GetMealPlan returns the student's current plan with totals.
func (h *StudentController) GetMealPlan(c *gin.Context) {
	studentID, ok := h.studentParam(c)
	if !ok {
		return
	}

	plan, err := h.Plans.GetPlan(studentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plan)
}

// PutMealPlan replaces the student's plan wholesale from the editor payload.
func (h *StudentController) PutMealPlan(c *gin.Context) {
	studentID, ok := h.studentParam(c)
	if !ok {
		return
	}

	var body struct {
		Slots []struct {
			Key   string            `json:"key" binding:"required"`
			Time  string            `json:"time"`
			Items []models.PlanItem `json:"items"`
		} `json:"slots" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft := services.NewPlanDraft(nil)
	for _, slot := range body.Slots {
		draft = draft.SetItems(slot.Key, slot.Items)
		draft = draft.SetTime(slot.Key, slot.Time)
	}
	saved := draft.Save()

	if err := h.Plans.ReplacePlan(studentID, saved); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, saved)
}

// GetAdherence aggregates the student's window into the adherence report.
func (h *StudentController) GetAdherence(c *gin.Context) {
	studentID, ok := h.studentParam(c)
	if !ok {
		return
	}
	period, ok := periodParam(c)
	if !ok {
		return
	}

	report, err := h.Adherence.Report(studentID, period, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// PostReport writes the deterministic behaviour analysis text.
func (h *StudentController) PostReport(c *gin.Context) {
	studentID, ok := h.studentParam(c)
	if !ok {
		return
	}

	report, err := h.Reports.Report(studentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}
