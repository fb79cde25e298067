package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Luis14-code/front-app-nutri/models"
)

// ErrAlreadyLiked: the user has already liked this recipe.
var ErrAlreadyLiked = errors.New("recipe already liked")

type RecipeService struct {
	db     *gorm.DB
	gemini *GeminiService
}

func NewRecipeService(db *gorm.DB, gemini *GeminiService) *RecipeService {
	return &RecipeService{db: db, gemini: gemini}
}

// RecipeInput is a user-submitted recipe for the community feed.
type RecipeInput struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// List returns the feed ordered by likes (trending first). An empty
// category means no filter.
func (s *RecipeService) List(category string) ([]models.Recipe, error) {
	q := s.db.Order("likes DESC, id ASC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var recipes []models.Recipe
	if err := q.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Add stores a community recipe authored by the given user.
func (s *RecipeService) Add(author string, in RecipeInput) (*models.Recipe, error) {
	recipe := models.Recipe{
		Title:        in.Title,
		Description:  in.Description,
		Author:       author,
		Category:     in.Category,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
	}
	if err := s.db.Create(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Like records one like per user per recipe and bumps the counter.
func (s *RecipeService) Like(userID, recipeID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.First(&recipe, recipeID).Error; err != nil {
		return nil, errors.New("recipe not found")
	}

	var existing models.RecipeLike
	err := s.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyLiked
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.RecipeLike{UserID: userID, RecipeID: recipeID}).Error; err != nil {
			return err
		}
		return tx.Model(&recipe).Update("likes", gorm.Expr("likes + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	recipe.Likes++
	return &recipe, nil
}

// Generate asks the assistant for a recipe built from the ingredient list
// and adds it to the feed under the AI author name.
func (s *RecipeService) Generate(ingredients string) (*models.Recipe, error) {
	draft := s.gemini.GenerateRecipe(ingredients)
	recipe := models.Recipe{
		Title:        draft.Title,
		Description:  draft.Description,
		Author:       "Chef NutriLife (IA)",
		Category:     draft.Category,
		Ingredients:  draft.Ingredients,
		Instructions: draft.Instructions,
	}
	if err := s.db.Create(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}
