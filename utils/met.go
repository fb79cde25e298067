package utils

import "math"

// assumedBodyWeightKg is the fixed weight used by the burn formula for every
// user. TODO(product): decide whether to read the student's real weight here.
const assumedBodyWeightKg = 70.0

// ActivityOption pairs an activity label with its MET multiplier.
type ActivityOption struct {
	Name     string  `json:"name"`
	MetValue float64 `json:"met_value"`
}

// ActivityOptions lists the selectable activity types. "Personalizado"
// carries MET 0 so custom activities burn nothing unless extended later.
var ActivityOptions = []ActivityOption{
	{Name: "Corrida", MetValue: 9.8},
	{Name: "Caminhada", MetValue: 3.5},
	{Name: "Musculação", MetValue: 6.0},
	{Name: "Ciclismo", MetValue: 7.5},
	{Name: "Natação", MetValue: 8.0},
	{Name: "Yoga", MetValue: 2.5},
	{Name: "Futebol", MetValue: 10.0},
	{Name: "Dança", MetValue: 5.0},
	{Name: "Personalizado", MetValue: 0},
}

// MetValue looks up the MET multiplier for an activity label.
func MetValue(activityType string) (float64, bool) {
	for _, a := range ActivityOptions {
		if a.Name == activityType {
			return a.MetValue, true
		}
	}
	return 0, false
}

// CaloriesBurned estimates kcal as MET × weight (kg) × duration (hours).
func CaloriesBurned(metValue float64, durationMinutes int) float64 {
	hours := float64(durationMinutes) / 60.0
	return math.Round(metValue * assumedBodyWeightKg * hours)
}
