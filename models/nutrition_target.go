package models

import "gorm.io/gorm"

// NutritionTarget is an immutable snapshot of a student's goals. Every
// nutritionist edit appends a new row; the latest row is the active target.
type NutritionTarget struct {
	gorm.Model
	UserID         uint `gorm:"index;not null"`
	Goal           string
	CaloriesTarget float64 // kcal
	ProteinTarget  float64 // g
	CarbsTarget    float64 // g
	LeanMass       float64 // kg gained
	FatLost        float64 // kg lost
}

// GoalOptions mirrors the fixed list offered to nutritionists.
var GoalOptions = []string{
	"Perda de Gordura",
	"Ganho de Massa Muscular",
	"Hipertrofia",
	"Ganho de Desempenho nos Estudos",
	"Manutenção",
	"Definição Muscular",
}

const (
	GoalWeightLoss  = "Perda de Peso"
	GoalHypertrophy = "Hipertrofia"
)
