package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Luis14-code/front-app-nutri/models"
)

// Defaults applied when a student has no target snapshot yet.
const (
	defaultCaloriesTarget = 2000
	defaultProteinTarget  = 150
	defaultCarbsTarget    = 200
	defaultGoal           = "Manutenção"
)

type UserService struct{ db *gorm.DB }

func NewUserService(db *gorm.DB) *UserService { return &UserService{db: db} }

func (s *UserService) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}

func (s *UserService) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}

// LatestTarget returns the newest target snapshot, or the defaults when the
// student has none.
func (s *UserService) LatestTarget(userID uint) (models.NutritionTarget, error) {
	var target models.NutritionTarget
	err := s.db.Where("user_id = ?", userID).
		Order("id DESC").
		First(&target).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NutritionTarget{
			UserID:         userID,
			Goal:           defaultGoal,
			CaloriesTarget: defaultCaloriesTarget,
			ProteinTarget:  defaultProteinTarget,
			CarbsTarget:    defaultCarbsTarget,
		}, nil
	}
	if err != nil {
		return models.NutritionTarget{}, err
	}
	return target, nil
}

// TargetInput is a nutritionist's target edit.
type TargetInput struct {
	Goal           string  `json:"goal"`
	CaloriesTarget float64 `json:"calories_target" binding:"required,gt=0"`
	ProteinTarget  float64 `json:"protein_target" binding:"required,gt=0"`
	CarbsTarget    float64 `json:"carbs_target" binding:"required,gt=0"`
	LeanMass       float64 `json:"lean_mass"`
	FatLost        float64 `json:"fat_lost"`
}

// SetTargets appends a new immutable target snapshot for the student.
// Earlier snapshots are never rewritten.
func (s *UserService) SetTargets(studentID uint, in TargetInput) (*models.NutritionTarget, error) {
	if _, err := s.FindByID(studentID); err != nil {
		return nil, err
	}

	goal := in.Goal
	if goal == "" {
		goal = defaultGoal
	}
	target := models.NutritionTarget{
		UserID:         studentID,
		Goal:           goal,
		CaloriesTarget: in.CaloriesTarget,
		ProteinTarget:  in.ProteinTarget,
		CarbsTarget:    in.CarbsTarget,
		LeanMass:       in.LeanMass,
		FatLost:        in.FatLost,
	}
	if err := s.db.Create(&target).Error; err != nil {
		return nil, err
	}
	return &target, nil
}

// Profile is the authenticated user's own view.
func (s *UserService) Profile(userID uint) (map[string]interface{}, error) {
	user, err := s.FindByID(userID)
	if err != nil {
		return nil, err
	}
	target, err := s.LatestTarget(userID)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
		"gamification": map[string]interface{}{
			"total_points": user.TotalPoints,
			"streak":       user.Streak,
			"best_streak":  user.BestStreak,
		},
		"nutrition": map[string]interface{}{
			"goal":            target.Goal,
			"calories_target": target.CaloriesTarget,
			"protein_target":  target.ProteinTarget,
			"carbs_target":    target.CarbsTarget,
			"lean_mass":       target.LeanMass,
			"fat_lost":        target.FatLost,
		},
	}, nil
}
