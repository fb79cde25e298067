package models

import "gorm.io/gorm"

// DailySummary is the historical record of one elapsed day. Rows are written
// once per day and never edited afterwards; only the aggregator reads them.
type DailySummary struct {
	gorm.Model
	UserID         uint   `gorm:"index;not null"`
	Date           string `gorm:"size:10;index;not null"` // "2006-01-02"
	MealsCompleted int
	TotalMeals     int
	CalsConsumed   float64
	CalsBurned     float64
	CalsTarget     float64
	ProtConsumed   float64
	CarbConsumed   float64
	ExtraFood      []ExtraFood `gorm:"foreignKey:SummaryID"`
}

// ExtraFood is one unplanned consumption logged on a summarized day.
type ExtraFood struct {
	gorm.Model
	SummaryID uint `gorm:"index;not null"`
	Food      string
	Cals      float64
	Prot      float64
	Carb      float64
}
