package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Luis14-code/front-app-nutri/models"
)

var (
	// ErrStudentNotFound: the email matches no student in the directory.
	ErrStudentNotFound = errors.New("student not found")
	// ErrAlreadyRostered: the student is already on this nutritionist's roster.
	ErrAlreadyRostered = errors.New("student already on roster")
)

// StudentCard is the roster list view: one student plus their windowed stats.
type StudentCard struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Goal           string  `json:"goal"`
	CompletionRate int     `json:"completion_rate"`
	CompletedMeals int     `json:"completed_meals"`
	TotalMeals     int     `json:"total_meals"`
	CalsBurned     float64 `json:"cals_burned"`
	CalDifference  float64 `json:"cal_difference"`
	ActivityCount  int     `json:"activity_count"`
}

type RosterService struct {
	db        *gorm.DB
	users     *UserService
	adherence *AdherenceService
}

func NewRosterService(db *gorm.DB, users *UserService, adherence *AdherenceService) *RosterService {
	return &RosterService{db: db, users: users, adherence: adherence}
}

// AddStudent looks the email up in the student directory and appends the
// match to the nutritionist's roster. A miss or an existing membership
// returns a nil student and leaves the roster untouched.
func (s *RosterService) AddStudent(nutritionistID uint, email string) (*models.User, error) {
	var student models.User
	err := s.db.Where("email = ? AND role = ?", email, models.RoleStudent).
		First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}

	var existing models.Roster
	err = s.db.Where("nutritionist_id = ? AND student_id = ?", nutritionistID, student.ID).
		First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyRostered
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	entry := models.Roster{NutritionistID: nutritionistID, StudentID: student.ID}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// Member reports whether the student is on the nutritionist's roster.
func (s *RosterService) Member(nutritionistID, studentID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Roster{}).
		Where("nutritionist_id = ? AND student_id = ?", nutritionistID, studentID).
		Count(&count).Error
	return count > 0, err
}

// ListStudents returns every rostered student as a card with stats for the
// window ending at ref. An optional search term filters by name substring.
func (s *RosterService) ListStudents(nutritionistID uint, periodDays int, search string, ref time.Time) ([]StudentCard, error) {
	var entries []models.Roster
	err := s.db.Where("nutritionist_id = ?", nutritionistID).
		Order("id ASC").Find(&entries).Error
	if err != nil {
		return nil, err
	}

	cards := make([]StudentCard, 0, len(entries))
	for _, entry := range entries {
		student, err := s.users.FindByID(entry.StudentID)
		if err != nil {
			continue // student removed; skip the stale row
		}
		if search != "" && !strings.Contains(strings.ToLower(student.Name), strings.ToLower(search)) {
			continue
		}

		report, err := s.adherence.Report(student.ID, periodDays, ref)
		if err != nil {
			return nil, err
		}
		target, err := s.users.LatestTarget(student.ID)
		if err != nil {
			return nil, err
		}

		cards = append(cards, StudentCard{
			ID:             student.ID,
			Name:           student.Name,
			Email:          student.Email,
			Goal:           target.Goal,
			CompletionRate: report.CompletionRate,
			CompletedMeals: report.CompletedMeals,
			TotalMeals:     report.TotalMeals,
			CalsBurned:     report.TotalCalsBurned,
			CalDifference:  report.CalDifference,
			ActivityCount:  report.ActivityCount,
		})
	}
	return cards, nil
}
