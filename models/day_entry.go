package models

import "gorm.io/gorm"

// DayEntry is one meal of a student's day: either the realization of a plan
// slot or an ad-hoc extra log. Entries are created when the day is first
// opened and mutated only through toggling/appending; the plan itself is
// never touched.
type DayEntry struct {
	gorm.Model
	UserID  uint   `gorm:"index;not null"`
	Date    string `gorm:"size:10;index;not null"` // "2006-01-02"
	EntryID string `gorm:"size:36;uniqueIndex;not null"`
	SlotKey string `gorm:"size:32"`
	Name    string
	Time    string `gorm:"size:5"`
	Food    string
	Cals    float64
	Prot    float64
	Carb    float64
	Done    bool
	IsPlan  bool
	IsExtra bool
}
