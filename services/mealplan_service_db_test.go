package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luis14-code/front-app-nutri/models"
)

func TestEnsurePlanCreatesSixSlotsOnce(t *testing.T) {
	db := newTestDB(t)
	plans := NewMealPlanService(db)
	student := newTestUser(t, db, "ana@test.com", "Ana Silva", models.RoleStudent)

	require.NoError(t, plans.EnsurePlan(student.ID))
	require.NoError(t, plans.EnsurePlan(student.ID)) // idempotent

	var count int64
	require.NoError(t, db.Model(&models.MealSlot{}).Where("user_id = ?", student.ID).Count(&count).Error)
	assert.EqualValues(t, 6, count)
}

func TestReplacePlanRoundTrip(t *testing.T) {
	db := newTestDB(t)
	plans := NewMealPlanService(db)
	student := newTestUser(t, db, "ana@test.com", "Ana Silva", models.RoleStudent)
	require.NoError(t, plans.EnsurePlan(student.ID))

	draft := NewPlanDraft(nil).
		SetTime(models.SlotBreakfast, "08:00").
		SetItems(models.SlotBreakfast, []models.PlanItem{
			{Food: "Ovos", Weight: 150, Cals: 210, Prot: 18, Carb: 2},
			{Food: "Aveia", Weight: 40, Cals: 150, Prot: 5, Carb: 27},
		})
	require.NoError(t, plans.ReplacePlan(student.ID, draft.Save()))

	got, err := plans.GetPlan(student.ID)
	require.NoError(t, err)
	require.Len(t, got.Slots, 6)

	breakfast := got.Slot(models.SlotBreakfast)
	require.NotNil(t, breakfast)
	assert.Equal(t, "08:00", breakfast.Time)
	require.Len(t, breakfast.Items, 2)
	assert.Equal(t, "Ovos", breakfast.Items[0].Food)
	assert.Equal(t, "Aveia", breakfast.Items[1].Food)
	assert.Equal(t, 360.0, breakfast.TotalCals)
}

func TestReplacePlanRewritesItems(t *testing.T) {
	db := newTestDB(t)
	plans := NewMealPlanService(db)
	student := newTestUser(t, db, "ana@test.com", "Ana Silva", models.RoleStudent)
	require.NoError(t, plans.EnsurePlan(student.ID))

	first := NewPlanDraft(nil).SetItems(models.SlotLunch, []models.PlanItem{
		{Food: "Frango", Cals: 330},
		{Food: "Arroz", Cals: 260},
	})
	require.NoError(t, plans.ReplacePlan(student.ID, first.Save()))

	second := NewPlanDraft(nil).SetItems(models.SlotLunch, []models.PlanItem{
		{Food: "Peixe", Cals: 280},
	})
	require.NoError(t, plans.ReplacePlan(student.ID, second.Save()))

	got, err := plans.GetPlan(student.ID)
	require.NoError(t, err)

	lunch := got.Slot(models.SlotLunch)
	require.Len(t, lunch.Items, 1)
	assert.Equal(t, "Peixe", lunch.Items[0].Food)

	// no orphaned item rows survive the rewrite
	var count int64
	require.NoError(t, db.Model(&models.PlanItem{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
