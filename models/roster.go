package models

import "gorm.io/gorm"

// Roster associates a nutritionist with a student. The unique pair index
// backs the at-most-one-membership-per-student invariant.
type Roster struct {
	gorm.Model
	NutritionistID uint `gorm:"index:idx_roster_pair,unique;not null"`
	StudentID      uint `gorm:"index:idx_roster_pair,unique;not null"`
}
