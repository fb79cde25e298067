package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luis14-code/front-app-nutri/models"
)

func newAuthFixture(t *testing.T) *AuthService {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	return NewAuthService(db, NewMealPlanService(db))
}

func TestRegisterStudentGetsDefaults(t *testing.T) {
	auth := newAuthFixture(t)

	user, err := auth.Register("ana@test.com", "123456", "Ana Silva", models.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.NotEqual(t, "123456", user.Password) // stored hashed

	users := NewUserService(auth.db)
	target, err := users.LatestTarget(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Manutenção", target.Goal)
	assert.Equal(t, 2000.0, target.CaloriesTarget)

	var slots int64
	require.NoError(t, auth.db.Model(&models.MealSlot{}).Where("user_id = ?", user.ID).Count(&slots).Error)
	assert.EqualValues(t, 6, slots)
}

func TestRegisterNutritionistSkipsStudentSetup(t *testing.T) {
	auth := newAuthFixture(t)

	user, err := auth.Register("nutri@test.com", "123456", "Dra. Ana", models.RoleNutritionist)
	require.NoError(t, err)

	var slots int64
	require.NoError(t, auth.db.Model(&models.MealSlot{}).Where("user_id = ?", user.ID).Count(&slots).Error)
	assert.Zero(t, slots)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	auth := newAuthFixture(t)
	_, err := auth.Register("x@test.com", "123456", "X", "admin")
	assert.Error(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth := newAuthFixture(t)

	_, err := auth.Register("ana@test.com", "123456", "Ana", models.RoleStudent)
	require.NoError(t, err)

	_, err = auth.Register("ana@test.com", "outra", "Outra Ana", models.RoleStudent)
	assert.EqualError(t, err, "email already registered")
}

func TestAuthenticate(t *testing.T) {
	auth := newAuthFixture(t)
	_, err := auth.Register("ana@test.com", "123456", "Ana", models.RoleStudent)
	require.NoError(t, err)

	token, user, err := auth.Authenticate("ana@test.com", "123456")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "ana@test.com", user.Email)

	_, _, err = auth.Authenticate("ana@test.com", "errada")
	assert.EqualError(t, err, "invalid email or password")

	_, _, err = auth.Authenticate("ninguem@test.com", "123456")
	assert.EqualError(t, err, "invalid email or password")
}
