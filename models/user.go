package models

import (
	"gorm.io/gorm"
)

const (
	RoleStudent      = "student"
	RoleNutritionist = "nutritionist"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
	Name     string
	Role     string `gorm:"size:16;not null"`

	TotalPoints int
	Streak      int
	BestStreak  int
}
