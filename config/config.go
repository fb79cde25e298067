package config

import (
	"log"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/Luis14-code/front-app-nutri/models"
)

// InitDB opens the in-memory database and migrates the schema. All state is
// process-local demo data; nothing survives a restart.
func InitDB() *gorm.DB {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment as-is")
	}

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.NutritionTarget{},
		&models.MealSlot{},
		&models.PlanItem{},
		&models.DayEntry{},
		&models.Activity{},
		&models.DailySummary{},
		&models.ExtraFood{},
		&models.Roster{},
		&models.Recipe{},
		&models.RecipeLike{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	return db
}
