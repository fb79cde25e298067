package config

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Luis14-code/front-app-nutri/models"
	"github.com/Luis14-code/front-app-nutri/utils"
)

const demoPassword = "123456"

type seedStudent struct {
	name           string
	email          string
	goal           string
	caloriesTarget float64
	proteinTarget  float64
	carbsTarget    float64
}

var seedStudents = []seedStudent{
	{"Ana Silva", "ana@test.com", "Hipertrofia", 2500, 180, 300},
	{"Bruno Costa", "bruno@test.com", models.GoalWeightLoss, 1800, 120, 200},
	{"Carla Mendes", "carla@test.com", "Manutenção", 2200, 150, 250},
	{"Daniel Pereira", "daniel@test.com", "Hipertrofia", 3000, 220, 400},
}

// Seed loads the demo dataset: one nutritionist, four students with plans and
// thirty days of history, and the starter recipe feed. Idempotent: a second
// call on a populated database is a no-op.
func Seed(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		log.Fatalf("seed: %v", err)
	}
	if count > 0 {
		return
	}

	hash, err := utils.HashPassword(demoPassword)
	if err != nil {
		log.Fatalf("seed: hash password: %v", err)
	}

	nutri := models.User{
		Email:       "nutri@test.com",
		Password:    hash,
		Name:        "Dra. Ana",
		Role:        models.RoleNutritionist,
		TotalPoints: 5000,
		Streak:      50,
		BestStreak:  100,
	}
	if err := db.Create(&nutri).Error; err != nil {
		log.Fatalf("seed: create nutritionist: %v", err)
	}

	today := time.Now()
	for i, ss := range seedStudents {
		rng := rand.New(rand.NewSource(int64(i + 1)))

		student := models.User{
			Email:       ss.email,
			Password:    hash,
			Name:        ss.name,
			Role:        models.RoleStudent,
			TotalPoints: rng.Intn(2000) + 500,
			Streak:      rng.Intn(20),
			BestStreak:  rng.Intn(50),
		}
		if err := db.Create(&student).Error; err != nil {
			log.Fatalf("seed: create student %s: %v", ss.email, err)
		}

		target := models.NutritionTarget{
			UserID:         student.ID,
			Goal:           ss.goal,
			CaloriesTarget: ss.caloriesTarget,
			ProteinTarget:  ss.proteinTarget,
			CarbsTarget:    ss.carbsTarget,
		}
		if err := db.Create(&target).Error; err != nil {
			log.Fatalf("seed: create target: %v", err)
		}

		seedMealPlan(db, student.ID)
		seedHistory(db, student.ID, ss, rng, today)
		seedActivities(db, student.ID, today)

		if err := db.Create(&models.Roster{NutritionistID: nutri.ID, StudentID: student.ID}).Error; err != nil {
			log.Fatalf("seed: roster: %v", err)
		}
	}

	seedRecipes(db)
	log.Println("seeded demo dataset")
}

func seedMealPlan(db *gorm.DB, userID uint) {
	times := map[string]string{
		models.SlotBreakfast:      "08:00",
		models.SlotLunch:          "12:30",
		models.SlotAfternoonSnack: "16:00",
		models.SlotDinner:         "20:00",
		models.SlotSupper:         "22:00",
	}
	items := map[string][]models.PlanItem{
		models.SlotBreakfast: {
			{Food: "Ovos mexidos", Weight: 100, Cals: 150, Prot: 12, Carb: 1},
			{Food: "Tapioca", Weight: 50, Cals: 150, Prot: 1, Carb: 35},
		},
		models.SlotLunch: {
			{Food: "Frango grelhado", Weight: 150, Cals: 250, Prot: 40, Carb: 0},
			{Food: "Arroz integral", Weight: 100, Cals: 120, Prot: 2, Carb: 25},
			{Food: "Brócolis", Weight: 100, Cals: 30, Prot: 3, Carb: 5},
		},
		models.SlotAfternoonSnack: {
			{Food: "Iogurte natural", Weight: 170, Cals: 100, Prot: 6, Carb: 10},
			{Food: "Whey Protein", Weight: 30, Cals: 120, Prot: 24, Carb: 2},
		},
		models.SlotDinner: {
			{Food: "Salada completa com Atum", Weight: 300, Cals: 300, Prot: 28, Carb: 10},
		},
		models.SlotSupper: {
			{Food: "Caseína", Weight: 30, Cals: 120, Prot: 24, Carb: 2},
		},
	}

	for _, key := range models.SlotOrder {
		slot := models.MealSlot{
			UserID: userID,
			Key:    key,
			Name:   models.SlotNames[key],
			Time:   times[key],
		}
		for pos, it := range items[key] {
			it.Position = pos
			slot.Items = append(slot.Items, it)
		}
		if err := db.Create(&slot).Error; err != nil {
			log.Fatalf("seed: meal slot %s: %v", key, err)
		}
	}
}

func seedHistory(db *gorm.DB, userID uint, ss seedStudent, rng *rand.Rand, today time.Time) {
	for i := 0; i < 30; i++ {
		date := today.AddDate(0, 0, -(29 - i))
		weekend := date.Weekday() == time.Sunday || date.Weekday() == time.Saturday

		mealsCompleted := 4
		if weekend && rng.Float64() <= 0.3 {
			mealsCompleted = 2
		}

		var calsConsumed float64
		if mealsCompleted == 4 {
			calsConsumed = ss.caloriesTarget + float64(rng.Intn(200))
		} else {
			calsConsumed = ss.caloriesTarget - float64(rng.Intn(300))
		}

		summary := models.DailySummary{
			UserID:         userID,
			Date:           date.Format("2006-01-02"),
			MealsCompleted: mealsCompleted,
			TotalMeals:     4,
			CalsConsumed:   calsConsumed,
			CalsBurned:     float64(rng.Intn(500)),
			CalsTarget:     ss.caloriesTarget,
			ProtConsumed:   float64(int(ss.proteinTarget * (calsConsumed / ss.caloriesTarget))),
			CarbConsumed:   float64(int(ss.carbsTarget * (calsConsumed / ss.caloriesTarget))),
		}

		if weekend && rng.Float64() > 0.5 {
			summary.ExtraFood = append(summary.ExtraFood,
				models.ExtraFood{Food: "Pizza", Cals: 400, Prot: 20, Carb: 40})
		} else if rng.Float64() > 0.8 {
			summary.ExtraFood = append(summary.ExtraFood,
				models.ExtraFood{Food: "Barra de Chocolate", Cals: 250, Prot: 5, Carb: 30})
		}

		if err := db.Create(&summary).Error; err != nil {
			log.Fatalf("seed: daily summary: %v", err)
		}
	}
}

func seedActivities(db *gorm.DB, userID uint, today time.Time) {
	seedActs := []struct {
		daysAgo  int
		typ      string
		duration int
		calories float64
	}{
		{7, "Corrida", 30, 343},
		{5, "Musculação", 60, 420},
		{3, "Ciclismo", 45, 394},
		{2, "Natação", 30, 280},
	}
	for _, a := range seedActs {
		act := models.Activity{
			ActivityID: uuid.NewString(),
			UserID:     userID,
			Date:       today.AddDate(0, 0, -a.daysAgo).Format("2006-01-02"),
			Type:       a.typ,
			Duration:   a.duration,
			Calories:   a.calories,
			Timestamp:  fmt.Sprintf("%02d:00", 7+a.daysAgo%3),
		}
		if err := db.Create(&act).Error; err != nil {
			log.Fatalf("seed: activity: %v", err)
		}
	}
}

func seedRecipes(db *gorm.DB) {
	recipes := []models.Recipe{
		{
			Title:        "Omelete de Espinafre",
			Description:  "Rica em proteína e ferro.",
			Likes:        120,
			Author:       "Chef IA ✨",
			Category:     "lunch",
			Ingredients:  []string{"3 Ovos", "50g Espinafre", "Sal"},
			Instructions: []string{"Bata os ovos", "Misture o espinafre", "Frite"},
		},
		{
			Title:        "Shake Pós-Treino",
			Description:  "Recuperação muscular rápida.",
			Likes:        60,
			Author:       "Eu",
			Category:     "pre_workout",
			Ingredients:  []string{"Whey Protein", "Banana", "Água"},
			Instructions: []string{"Bata tudo"},
		},
		{
			Title:        "Salada de Frango",
			Description:  "Leve e refrescante.",
			Likes:        30,
			Author:       "Dra. Ana",
			Category:     "dinner",
			Ingredients:  []string{"Frango desfiado", "Alface", "Tomate"},
			Instructions: []string{"Misture tudo"},
		},
	}
	for i := range recipes {
		if err := db.Create(&recipes[i]).Error; err != nil {
			log.Fatalf("seed: recipe: %v", err)
		}
	}
}
