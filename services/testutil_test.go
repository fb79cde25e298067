package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Luis14-code/front-app-nutri/models"
)

// newTestDB opens a private in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
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
	)
	require.NoError(t, err)
	return db
}

// newTestUser inserts a user directly; password hashing is skipped because
// these tests never authenticate.
func newTestUser(t *testing.T, db *gorm.DB, email, name, role string) *models.User {
	t.Helper()
	user := models.User{Email: email, Password: "x", Name: name, Role: role}
	require.NoError(t, db.Create(&user).Error)
	return &user
}
