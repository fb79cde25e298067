package config

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Luis14-code/front-app-nutri/models"
)

func newSeededDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.NutritionTarget{},
		&models.MealSlot{},
		&models.PlanItem{},
		&models.DayEntry{},
		&models.Activity{},
		&models.DailySummary{},
		&models.ExtraFood{},
		&models.Roster{},
		&models.Recipe{},
		&models.RecipeLike{},
	))

	Seed(db)
	return db
}

func TestSeedLoadsDemoDataset(t *testing.T) {
	db := newSeededDB(t)

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 5, users) // one nutritionist, four students

	var nutri models.User
	require.NoError(t, db.First(&nutri, "email = ?", "nutri@test.com").Error)
	assert.Equal(t, models.RoleNutritionist, nutri.Role)

	var roster int64
	require.NoError(t, db.Model(&models.Roster{}).Count(&roster).Error)
	assert.EqualValues(t, 4, roster)

	// every student gets six plan slots and thirty days of history
	var ana models.User
	require.NoError(t, db.First(&ana, "email = ?", "ana@test.com").Error)

	var slots, days, activities int64
	require.NoError(t, db.Model(&models.MealSlot{}).Where("user_id = ?", ana.ID).Count(&slots).Error)
	require.NoError(t, db.Model(&models.DailySummary{}).Where("user_id = ?", ana.ID).Count(&days).Error)
	require.NoError(t, db.Model(&models.Activity{}).Where("user_id = ?", ana.ID).Count(&activities).Error)
	assert.EqualValues(t, 6, slots)
	assert.EqualValues(t, 30, days)
	assert.EqualValues(t, 4, activities)

	var recipes int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&recipes).Error)
	assert.EqualValues(t, 3, recipes)
}

func TestSeedIsIdempotent(t *testing.T) {
	db := newSeededDB(t)
	Seed(db)

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 5, users)
}
