package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luis14-code/front-app-nutri/models"
)

func newDayFixture(t *testing.T) (*DayService, *MealPlanService, uint) {
	db := newTestDB(t)
	users := NewUserService(db)
	plans := NewMealPlanService(db)
	days := NewDayService(db, plans, users)

	student := newTestUser(t, db, "ana@test.com", "Ana Silva", models.RoleStudent)
	require.NoError(t, plans.EnsurePlan(student.ID))
	return days, plans, student.ID
}

func seedPlan(t *testing.T, plans *MealPlanService, userID uint) {
	draft := NewPlanDraft(nil).
		SetItems(models.SlotBreakfast, []models.PlanItem{
			{Food: "Ovos", Weight: 150, Cals: 210, Prot: 18, Carb: 2},
		}).
		SetItems(models.SlotLunch, []models.PlanItem{
			{Food: "Frango", Weight: 150, Cals: 330, Prot: 62},
			{Food: "Arroz", Weight: 200, Cals: 260, Prot: 5, Carb: 56},
		})
	require.NoError(t, plans.ReplacePlan(userID, draft.Save()))
}

func TestGetDayMaterializesOnce(t *testing.T) {
	days, plans, userID := newDayFixture(t)
	seedPlan(t, plans, userID)

	first, err := days.GetDay(userID, "2026-08-30")
	require.NoError(t, err)
	require.Len(t, first, 2)

	// a second read serves the same stored entries, ids included
	second, err := days.GetDay(userID, "2026-08-30")
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[1].ID, second[1].ID)
}

func TestGetDayFallsBackWhenPlanEmpty(t *testing.T) {
	days, _, userID := newDayFixture(t)

	meals, err := days.GetDay(userID, "2026-08-30")
	require.NoError(t, err)
	require.Len(t, meals, 2)
	assert.Equal(t, "Café da Manhã", meals[0].Name)
	assert.Equal(t, "Almoço", meals[1].Name)
}

func TestTogglePersistsAcrossReads(t *testing.T) {
	days, plans, userID := newDayFixture(t)
	seedPlan(t, plans, userID)

	meals, err := days.GetDay(userID, "2026-08-30")
	require.NoError(t, err)

	updated, err := days.Toggle(userID, "2026-08-30", meals[0].ID)
	require.NoError(t, err)
	assert.True(t, updated[0].Done)
	assert.False(t, updated[1].Done)

	reread, err := days.GetDay(userID, "2026-08-30")
	require.NoError(t, err)
	assert.True(t, reread[0].Done)
}

func TestToggleUnknownEntry(t *testing.T) {
	days, plans, userID := newDayFixture(t)
	seedPlan(t, plans, userID)

	_, err := days.GetDay(userID, "2026-08-30")
	require.NoError(t, err)

	_, err = days.Toggle(userID, "2026-08-30", "no-such-id")
	assert.ErrorIs(t, err, ErrMealNotFound)
}

func TestAddExtraPersists(t *testing.T) {
	days, plans, userID := newDayFixture(t)
	seedPlan(t, plans, userID)

	analysis := &FoodAnalysis{FoodName: "Pastel", Calories: 300, Protein: 8, Carbs: 25}
	updated, err := days.AddExtra(userID, "2026-08-30", analysis)
	require.NoError(t, err)
	require.Len(t, updated, 3)

	reread, err := days.GetDay(userID, "2026-08-30")
	require.NoError(t, err)
	require.Len(t, reread, 3)
	assert.Equal(t, "Pastel", reread[2].Food)
	assert.True(t, reread[2].Done)
	assert.True(t, reread[2].IsExtra)
}

func TestAddExtraNilAnalysisLeavesDayUntouched(t *testing.T) {
	days, plans, userID := newDayFixture(t)
	seedPlan(t, plans, userID)

	_, err := days.AddExtra(userID, "2026-08-30", nil)
	assert.ErrorIs(t, err, ErrNoAnalysis)

	meals, err := days.GetDay(userID, "2026-08-30")
	require.NoError(t, err)
	assert.Len(t, meals, 2)
}

func TestLogActivityDerivesBurn(t *testing.T) {
	days, _, userID := newDayFixture(t)

	act, err := days.LogActivity(userID, "2026-08-30", "Corrida", 30)
	require.NoError(t, err)
	// 9.8 MET × 70 kg × 0.5 h
	assert.Equal(t, 343.0, act.Calories)
	assert.NotEmpty(t, act.ActivityID)

	listed, err := days.ListActivities(userID, "2026-08-30")
	require.NoError(t, err)
	require.Len(t, listed, 1)
}

func TestLogActivityValidation(t *testing.T) {
	days, _, userID := newDayFixture(t)

	_, err := days.LogActivity(userID, "2026-08-30", "", 30)
	assert.ErrorIs(t, err, ErrInvalidActivity)

	_, err = days.LogActivity(userID, "2026-08-30", "Corrida", 0)
	assert.ErrorIs(t, err, ErrInvalidActivity)

	// unknown custom activity is accepted with zero burn
	act, err := days.LogActivity(userID, "2026-08-30", "Escalada", 45)
	require.NoError(t, err)
	assert.Equal(t, 0.0, act.Calories)
}

func TestDayBalanceUsesLatestTarget(t *testing.T) {
	days, plans, userID := newDayFixture(t)
	seedPlan(t, plans, userID)
	require.NoError(t, days.db.Create(&models.NutritionTarget{
		UserID: userID, Goal: models.GoalWeightLoss, CaloriesTarget: 2000,
	}).Error)

	meals, err := days.GetDay(userID, "2026-08-30")
	require.NoError(t, err)
	_, err = days.Toggle(userID, "2026-08-30", meals[1].ID) // lunch, 590 kcal
	require.NoError(t, err)

	balance, err := days.DayBalance(userID, "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, 590.0, balance.Consumed)
	assert.Equal(t, 1410.0, balance.Delta)
	assert.True(t, balance.Deficit)
	assert.Equal(t, "Déficit de 1410 kcal", balance.Status)
}
