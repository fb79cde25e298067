package models

import "gorm.io/gorm"

// Activity is an append-only physical-activity record. Calories are derived
// once at creation from the MET formula, never recomputed.
type Activity struct {
	gorm.Model
	ActivityID string `gorm:"size:36;uniqueIndex;not null"`
	UserID     uint   `gorm:"index;not null"`
	Date       string `gorm:"size:10;index;not null"` // "2006-01-02"
	Type       string
	Duration   int     // minutes
	Calories   float64 // kcal burned
	Timestamp  string  `gorm:"size:5"` // "HH:MM"
}
