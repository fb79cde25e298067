package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Luis14-code/front-app-nutri/models"
	"github.com/Luis14-code/front-app-nutri/utils"
)

// ErrNoAnalysis signals that the food-text collaborator returned nothing;
// the day's meal list stays as it was.
var ErrNoAnalysis = errors.New("food analysis unavailable")

// ErrInvalidActivity signals a rejected activity payload.
var ErrInvalidActivity = errors.New("activity requires a type and a positive duration")

// ErrMealNotFound signals a toggle against an id the day does not hold.
var ErrMealNotFound = errors.New("meal not found")

// DayMeal is one meal of the student's day as shown on the dashboard:
// either a realized plan slot or an extra log.
type DayMeal struct {
	ID      string            `json:"id"`
	SlotKey string            `json:"slot_key,omitempty"`
	Name    string            `json:"name"`
	Time    string            `json:"time"`
	Food    string            `json:"food"`
	Cals    float64           `json:"cals"`
	Prot    float64           `json:"prot"`
	Carb    float64           `json:"carb"`
	Done    bool              `json:"done"`
	IsPlan  bool              `json:"is_plan"`
	IsExtra bool              `json:"is_extra"`
	Items   []models.PlanItem `json:"items,omitempty"`
}

// FoodAnalysis is the structured result of the food-text collaborator.
type FoodAnalysis struct {
	FoodName string  `json:"food_name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
}

// BuildDayMeals realizes a plan into the day's meal list: one entry per
// non-empty slot in day order, done=false. An absent or empty plan yields
// two placeholder meals so the day never starts blank.
func BuildDayMeals(plan *MealPlanView) []DayMeal {
	if plan.Empty() {
		return []DayMeal{
			{ID: uuid.NewString(), Name: "Café da Manhã", Time: "08:00", Food: "Refeição Padrão", Cals: 350, Prot: 20, Carb: 30},
			{ID: uuid.NewString(), Name: "Almoço", Time: "12:30", Food: "Refeição Padrão", Cals: 500, Prot: 35, Carb: 45},
		}
	}

	meals := make([]DayMeal, 0, len(plan.Slots))
	for _, slot := range plan.Slots {
		if len(slot.Items) == 0 {
			continue
		}
		meals = append(meals, DayMeal{
			ID:      uuid.NewString(),
			SlotKey: slot.Key,
			Name:    slot.Name,
			Time:    slot.Time,
			Food:    describeItems(slot.Items),
			Cals:    slot.TotalCals,
			Prot:    slot.TotalProt,
			Carb:    slot.TotalCarb,
			IsPlan:  true,
			Items:   slot.Items,
		})
	}
	return meals
}

func describeItems(items []models.PlanItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s (%sg)", it.Food, trimFloat(it.Weight)))
	}
	return strings.Join(parts, ", ")
}

func trimFloat(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%g", v)
}

// ToggleDone flips the done flag of exactly the meal with the given id.
// Unaffected entries are returned as-is, so reactive readers see only one
// element change.
func ToggleDone(meals []DayMeal, id string) []DayMeal {
	out := make([]DayMeal, len(meals))
	for i, m := range meals {
		if m.ID == id {
			m.Done = !m.Done
		}
		out[i] = m
	}
	return out
}

// AppendExtra appends an always-done extra entry built from the analysis.
// A nil analysis leaves the list unchanged and reports ErrNoAnalysis.
func AppendExtra(meals []DayMeal, analysis *FoodAnalysis, at string) ([]DayMeal, error) {
	if analysis == nil {
		return meals, ErrNoAnalysis
	}
	extra := DayMeal{
		ID:      uuid.NewString(),
		Name:    "Registro Extra",
		Time:    at,
		Food:    analysis.FoodName,
		Cals:    analysis.Calories,
		Prot:    analysis.Protein,
		Carb:    analysis.Carbs,
		Done:    true,
		IsExtra: true,
	}
	return append(append([]DayMeal(nil), meals...), extra), nil
}

// DayBalance is the day's calorie ledger plus the goal-aware verdict.
type DayBalance struct {
	Consumed float64 `json:"consumed"`
	Burned   float64 `json:"burned"`
	Net      float64 `json:"net"`
	Delta    float64 `json:"delta"`
	Deficit  bool    `json:"deficit"`
	Status   string  `json:"status"`
	Message  string  `json:"message"`

	ProtConsumed float64 `json:"prot_consumed"`
	ProtTarget   float64 `json:"prot_target"`
	CarbConsumed float64 `json:"carb_consumed"`
	CarbTarget   float64 `json:"carb_target"`
	DailyPoints  int     `json:"daily_points"`
}

// Balance computes consumed (done meals only), burned, net and the
// deficit/surplus verdict. The message follows the goal×balance policy:
// a deficit is praise only when the goal is weight loss, and a surplus is
// praise for every other goal.
func Balance(meals []DayMeal, activities []models.Activity, target models.NutritionTarget) DayBalance {
	var b DayBalance
	for _, m := range meals {
		if !m.Done {
			continue
		}
		b.Consumed += m.Cals
		b.ProtConsumed += m.Prot
		b.CarbConsumed += m.Carb
	}
	for _, a := range activities {
		b.Burned += a.Calories
	}

	b.ProtTarget = target.ProteinTarget
	b.CarbTarget = target.CarbsTarget

	b.Net = b.Consumed - b.Burned
	b.Delta = target.CaloriesTarget - b.Net
	b.Deficit = b.Delta > 0

	if b.Deficit {
		b.Status = fmt.Sprintf("Déficit de %s kcal", trimFloat(math.Abs(b.Delta)))
	} else {
		b.Status = fmt.Sprintf("Superávit de %s kcal", trimFloat(math.Abs(b.Delta)))
	}

	wantsDeficit := target.Goal == models.GoalWeightLoss
	switch {
	case wantsDeficit && b.Deficit:
		b.Message = "Parabéns! Você está no caminho certo para o déficit calórico."
	case wantsDeficit && !b.Deficit:
		b.Message = "Atenção: Você ultrapassou o limite calórico para perda de peso."
	case !wantsDeficit && b.Deficit:
		b.Message = "Atenção: Você está em déficit calórico, ajuste suas refeições."
	default:
		b.Message = "Parabéns! Você está no caminho certo para o superávit calórico."
	}

	b.DailyPoints = DailyPoints(meals)
	return b
}

// DailyPoints awards 10 points per completed meal plus a 50-point bonus
// when everything is done.
func DailyPoints(meals []DayMeal) int {
	if len(meals) == 0 {
		return 0
	}
	completed := 0
	for _, m := range meals {
		if m.Done {
			completed++
		}
	}
	points := completed * 10
	if completed == len(meals) {
		points += 50
	}
	return points
}

// DayService materializes and mutates the per-day meal list and the
// activity log.
type DayService struct {
	db    *gorm.DB
	plans *MealPlanService
	users *UserService
}

func NewDayService(db *gorm.DB, plans *MealPlanService, users *UserService) *DayService {
	return &DayService{db: db, plans: plans, users: users}
}

// GetDay returns the student's meal list for the date, deriving it from the
// current plan on first access. Later reads serve the stored entries, so
// toggles survive within the day without ever touching the plan.
func (s *DayService) GetDay(userID uint, date string) ([]DayMeal, error) {
	var rows []models.DayEntry
	if err := s.db.Where("user_id = ? AND date = ?", userID, date).
		Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	plan, err := s.plans.GetPlan(userID)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		meals := BuildDayMeals(plan)
		for _, m := range meals {
			if err := s.db.Create(entryFromMeal(userID, date, m)).Error; err != nil {
				return nil, err
			}
		}
		return meals, nil
	}

	meals := make([]DayMeal, 0, len(rows))
	for _, row := range rows {
		m := mealFromEntry(row)
		if m.IsPlan {
			if slot := plan.Slot(m.SlotKey); slot != nil {
				m.Items = slot.Items
			}
		}
		meals = append(meals, m)
	}
	return meals, nil
}

// Toggle flips one entry's done flag and returns the updated day.
func (s *DayService) Toggle(userID uint, date, entryID string) ([]DayMeal, error) {
	meals, err := s.GetDay(userID, date)
	if err != nil {
		return nil, err
	}

	found := false
	for _, m := range meals {
		if m.ID == entryID {
			found = true
			break
		}
	}
	if !found {
		return meals, fmt.Errorf("%w: %s on %s", ErrMealNotFound, entryID, date)
	}

	updated := ToggleDone(meals, entryID)
	for _, m := range updated {
		if m.ID != entryID {
			continue
		}
		err := s.db.Model(&models.DayEntry{}).
			Where("user_id = ? AND entry_id = ?", userID, m.ID).
			Update("done", m.Done).Error
		if err != nil {
			return nil, err
		}
	}
	return updated, nil
}

// AddExtra appends an analyzed extra log to the day. A nil analysis leaves
// the stored day untouched.
func (s *DayService) AddExtra(userID uint, date string, analysis *FoodAnalysis) ([]DayMeal, error) {
	meals, err := s.GetDay(userID, date)
	if err != nil {
		return nil, err
	}

	updated, err := AppendExtra(meals, analysis, time.Now().Format("15:04"))
	if err != nil {
		return meals, err
	}

	extra := updated[len(updated)-1]
	if err := s.db.Create(entryFromMeal(userID, date, extra)).Error; err != nil {
		return nil, err
	}
	return updated, nil
}

// LogActivity validates and appends one activity, deriving its burn from
// the MET table.
func (s *DayService) LogActivity(userID uint, date, activityType string, duration int) (*models.Activity, error) {
	if strings.TrimSpace(activityType) == "" || duration <= 0 {
		return nil, ErrInvalidActivity
	}

	met, ok := utils.MetValue(activityType)
	if !ok {
		met = 0 // custom activity
	}

	act := models.Activity{
		ActivityID: uuid.NewString(),
		UserID:     userID,
		Date:       date,
		Type:       activityType,
		Duration:   duration,
		Calories:   utils.CaloriesBurned(met, duration),
		Timestamp:  time.Now().Format("15:04"),
	}
	if err := s.db.Create(&act).Error; err != nil {
		return nil, err
	}
	return &act, nil
}

// ListActivities returns the day's activities in log order.
func (s *DayService) ListActivities(userID uint, date string) ([]models.Activity, error) {
	var acts []models.Activity
	err := s.db.Where("user_id = ? AND date = ?", userID, date).
		Order("id ASC").Find(&acts).Error
	return acts, err
}

// DayBalance assembles the day's ledger from stored entries, activities and
// the student's active target.
func (s *DayService) DayBalance(userID uint, date string) (*DayBalance, error) {
	meals, err := s.GetDay(userID, date)
	if err != nil {
		return nil, err
	}
	acts, err := s.ListActivities(userID, date)
	if err != nil {
		return nil, err
	}
	target, err := s.users.LatestTarget(userID)
	if err != nil {
		return nil, err
	}

	b := Balance(meals, acts, target)
	return &b, nil
}

func entryFromMeal(userID uint, date string, m DayMeal) *models.DayEntry {
	return &models.DayEntry{
		UserID:  userID,
		Date:    date,
		EntryID: m.ID,
		SlotKey: m.SlotKey,
		Name:    m.Name,
		Time:    m.Time,
		Food:    m.Food,
		Cals:    m.Cals,
		Prot:    m.Prot,
		Carb:    m.Carb,
		Done:    m.Done,
		IsPlan:  m.IsPlan,
		IsExtra: m.IsExtra,
	}
}

func mealFromEntry(row models.DayEntry) DayMeal {
	return DayMeal{
		ID:      row.EntryID,
		SlotKey: row.SlotKey,
		Name:    row.Name,
		Time:    row.Time,
		Food:    row.Food,
		Cals:    row.Cals,
		Prot:    row.Prot,
		Carb:    row.Carb,
		Done:    row.Done,
		IsPlan:  row.IsPlan,
		IsExtra: row.IsExtra,
	}
}
