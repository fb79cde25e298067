package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Luis14-code/front-app-nutri/models"
	"github.com/Luis14-code/front-app-nutri/utils"
)

type AuthService struct {
	db    *gorm.DB
	plans *MealPlanService
}

func NewAuthService(db *gorm.DB, plans *MealPlanService) *AuthService {
	return &AuthService{db: db, plans: plans}
}

// Register creates a user with a hashed password. Students also get their
// default target snapshot and an empty six-slot plan.
func (s *AuthService) Register(email, password, name, role string) (*models.User, error) {
	if role != models.RoleStudent && role != models.RoleNutritionist {
		return nil, errors.New("role must be student or nutritionist")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:    email,
		Password: hashed,
		Name:     name,
		Role:     role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, errors.New("email already registered")
	}

	if role == models.RoleStudent {
		target := models.NutritionTarget{
			UserID:         user.ID,
			Goal:           defaultGoal,
			CaloriesTarget: defaultCaloriesTarget,
			ProteinTarget:  defaultProteinTarget,
			CarbsTarget:    defaultCarbsTarget,
		}
		if err := s.db.Create(&target).Error; err != nil {
			return nil, err
		}
		if err := s.plans.EnsurePlan(user.ID); err != nil {
			return nil, err
		}
	}

	return &user, nil
}

// Authenticate checks credentials and mints a JWT carrying email and role.
func (s *AuthService) Authenticate(email, password string) (string, *models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return "", nil, errors.New("invalid email or password")
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", nil, errors.New("invalid email or password")
	}

	token, err := utils.GenerateJWT(user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}
