package models

import "gorm.io/gorm"

// The six fixed meal slots of a plan, in day order.
const (
	SlotBreakfast      = "breakfast"
	SlotMorningSnack   = "morning_snack"
	SlotLunch          = "lunch"
	SlotAfternoonSnack = "afternoon_snack"
	SlotDinner         = "dinner"
	SlotSupper         = "supper"
)

var SlotOrder = []string{
	SlotBreakfast,
	SlotMorningSnack,
	SlotLunch,
	SlotAfternoonSnack,
	SlotDinner,
	SlotSupper,
}

var SlotNames = map[string]string{
	SlotBreakfast:      "Café da Manhã",
	SlotMorningSnack:   "Lanche da Manhã",
	SlotLunch:          "Almoço",
	SlotAfternoonSnack: "Lanche da Tarde",
	SlotDinner:         "Jantar",
	SlotSupper:         "Ceia",
}

// MealSlot is one named slot of a student's plan. Totals are never stored;
// they are recomputed from Items on every read.
type MealSlot struct {
	gorm.Model
	UserID uint   `gorm:"index;not null"`
	Key    string `gorm:"size:32;index;not null"`
	Name   string
	Time   string     `gorm:"size:5"` // "HH:MM" or empty
	Items  []PlanItem `gorm:"foreignKey:SlotID"`
}

type PlanItem struct {
	gorm.Model
	SlotID   uint `gorm:"index;not null"`
	Position int
	Food     string
	Weight   float64 // grams
	Cals     float64
	Prot     float64
	Carb     float64
}
