package models

import "gorm.io/gorm"

type Recipe struct {
	gorm.Model
	Title        string `gorm:"not null"`
	Description  string
	Likes        int
	Author       string
	Category     string   `gorm:"size:32;index"`
	Ingredients  []string `gorm:"serializer:json"`
	Instructions []string `gorm:"serializer:json"`
}

// RecipeLike records a like; the unique pair keeps likes at one per user.
type RecipeLike struct {
	gorm.Model
	UserID   uint `gorm:"index:idx_recipe_like,unique;not null"`
	RecipeID uint `gorm:"index:idx_recipe_like,unique;not null"`
}
