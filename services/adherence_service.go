package services

import (
	"math"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/Luis14-code/front-app-nutri/models"
)

// PeriodOptions are the selectable analysis windows; 365 stands in for the
// entire recorded period.
var PeriodOptions = []int{7, 15, 30, 365}

// FailurePoint is one entry of the extra-food frequency ranking.
type FailurePoint struct {
	Food  string `json:"food"`
	Count int    `json:"count"`
}

// AdherenceReport is the rolled-up view of a student's window.
type AdherenceReport struct {
	PeriodDays     int `json:"period_days"`
	TotalDays      int `json:"total_days"`
	TotalMeals     int `json:"total_meals"`
	CompletedMeals int `json:"completed_meals"`
	CompletionRate int `json:"completion_rate"` // percent, 0..100

	TotalCalsConsumed float64 `json:"total_cals_consumed"`
	TotalCalsBurned   float64 `json:"total_cals_burned"`
	NetCals           float64 `json:"net_cals"`
	TargetCals        float64 `json:"target_cals"`
	CalDifference     float64 `json:"cal_difference"`

	DaysOverTarget int            `json:"days_over_target"`
	ExtraFoodCals  float64        `json:"extra_food_cals"`
	TopFailures    []FailurePoint `json:"top_failures"`

	ActivityCount int `json:"activity_count"`
}

// windowStart returns the first date (inclusive) of a periodDays window
// ending at ref. Dates compare lexicographically in "2006-01-02" form.
func windowStart(ref time.Time, periodDays int) string {
	return ref.AddDate(0, 0, -(periodDays - 1)).Format("2006-01-02")
}

// FilterWindow keeps the summaries and activities inside the window.
func FilterWindow(
	summaries []models.DailySummary,
	activities []models.Activity,
	periodDays int,
	ref time.Time,
) ([]models.DailySummary, []models.Activity) {
	start := windowStart(ref, periodDays)

	var fs []models.DailySummary
	for _, d := range summaries {
		if d.Date >= start {
			fs = append(fs, d)
		}
	}
	var fa []models.Activity
	for _, a := range activities {
		if a.Date >= start {
			fa = append(fa, a)
		}
	}
	return fs, fa
}

// Aggregate rolls a window of daily summaries into the adherence report.
// The reference date is explicit so callers (and tests) control "today".
func Aggregate(
	summaries []models.DailySummary,
	activities []models.Activity,
	periodDays int,
	target models.NutritionTarget,
	ref time.Time,
) AdherenceReport {
	fs, fa := FilterWindow(summaries, activities, periodDays, ref)

	report := AdherenceReport{
		PeriodDays:    periodDays,
		TotalDays:     len(fs),
		ActivityCount: len(fa),
	}

	type seen struct {
		count int
		first int
	}
	failures := map[string]*seen{}
	order := 0

	for _, day := range fs {
		report.TotalMeals += day.TotalMeals
		report.CompletedMeals += day.MealsCompleted
		report.TotalCalsConsumed += day.CalsConsumed
		report.TotalCalsBurned += day.CalsBurned
		if day.CalsConsumed > day.CalsTarget {
			report.DaysOverTarget++
		}
		for _, food := range day.ExtraFood {
			report.ExtraFoodCals += food.Cals
			if f, ok := failures[food.Food]; ok {
				f.count++
			} else {
				failures[food.Food] = &seen{count: 1, first: order}
				order++
			}
		}
	}

	if report.TotalMeals > 0 {
		report.CompletionRate = int(math.Round(100 * float64(report.CompletedMeals) / float64(report.TotalMeals)))
	}

	report.NetCals = report.TotalCalsConsumed - report.TotalCalsBurned
	report.TargetCals = target.CaloriesTarget * float64(len(fs))
	report.CalDifference = report.NetCals - report.TargetCals

	ranked := make([]FailurePoint, 0, len(failures))
	for food, f := range failures {
		ranked = append(ranked, FailurePoint{Food: food, Count: f.count})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return failures[ranked[i].Food].first < failures[ranked[j].Food].first
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	report.TopFailures = ranked

	return report
}

// Day statuses for the adherence calendar.
const (
	DayStatusCompleted = "completed"
	DayStatusPartial   = "partial"
	DayStatusMissed    = "missed"
	DayStatusEmpty     = "empty"
)

// DayStatus is one cell of the calendar.
type DayStatus struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

// MonthStatuses classifies every day of the month against the summaries:
// all meals done, some done, none done, or no record at all.
func MonthStatuses(summaries []models.DailySummary, year int, month time.Month) []DayStatus {
	byDate := make(map[string]models.DailySummary, len(summaries))
	for _, d := range summaries {
		byDate[d.Date] = d
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()

	out := make([]DayStatus, 0, days)
	for i := 0; i < days; i++ {
		date := first.AddDate(0, 0, i).Format("2006-01-02")
		status := DayStatusEmpty
		if d, ok := byDate[date]; ok {
			switch {
			case d.MealsCompleted == d.TotalMeals:
				status = DayStatusCompleted
			case d.MealsCompleted > 0:
				status = DayStatusPartial
			default:
				status = DayStatusMissed
			}
		}
		out = append(out, DayStatus{Date: date, Status: status})
	}
	return out
}

// AdherenceService loads a student's history and runs the aggregator.
type AdherenceService struct {
	db    *gorm.DB
	users *UserService
}

func NewAdherenceService(db *gorm.DB, users *UserService) *AdherenceService {
	return &AdherenceService{db: db, users: users}
}

func (s *AdherenceService) history(userID uint) ([]models.DailySummary, []models.Activity, error) {
	var summaries []models.DailySummary
	err := s.db.Preload("ExtraFood").
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&summaries).Error
	if err != nil {
		return nil, nil, err
	}

	var activities []models.Activity
	err = s.db.Where("user_id = ?", userID).
		Order("date ASC").
		Find(&activities).Error
	if err != nil {
		return nil, nil, err
	}
	return summaries, activities, nil
}

// Report aggregates the student's window ending at ref.
func (s *AdherenceService) Report(userID uint, periodDays int, ref time.Time) (*AdherenceReport, error) {
	summaries, activities, err := s.history(userID)
	if err != nil {
		return nil, err
	}
	target, err := s.users.LatestTarget(userID)
	if err != nil {
		return nil, err
	}

	report := Aggregate(summaries, activities, periodDays, target, ref)
	return &report, nil
}

// History returns the windowed raw records for the detail view.
func (s *AdherenceService) History(userID uint, periodDays int, ref time.Time) ([]models.DailySummary, []models.Activity, error) {
	summaries, activities, err := s.history(userID)
	if err != nil {
		return nil, nil, err
	}
	fs, fa := FilterWindow(summaries, activities, periodDays, ref)
	return fs, fa, nil
}

// Calendar returns the month's day statuses for the dashboard calendar.
func (s *AdherenceService) Calendar(userID uint, year int, month time.Month) ([]DayStatus, error) {
	var summaries []models.DailySummary
	err := s.db.Where("user_id = ?", userID).Find(&summaries).Error
	if err != nil {
		return nil, err
	}
	return MonthStatuses(summaries, year, month), nil
}
