package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luis14-code/front-app-nutri/models"
)

func newRecipeFixture(t *testing.T) (*RecipeService, uint) {
	db := newTestDB(t)
	// no API key: generation always uses the local fallback
	gemini := &GeminiService{client: &http.Client{Timeout: time.Second}}
	svc := NewRecipeService(db, gemini)

	user := newTestUser(t, db, "ana@test.com", "Ana Silva", models.RoleStudent)
	return svc, user.ID
}

func TestRecipeListTrendingFirst(t *testing.T) {
	svc, _ := newRecipeFixture(t)
	require.NoError(t, svc.db.Create(&models.Recipe{Title: "Salada", Likes: 3, Category: "lunch"}).Error)
	require.NoError(t, svc.db.Create(&models.Recipe{Title: "Panqueca", Likes: 12, Category: "breakfast"}).Error)
	require.NoError(t, svc.db.Create(&models.Recipe{Title: "Omelete", Likes: 7, Category: "breakfast"}).Error)

	all, err := svc.List("")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Panqueca", all[0].Title)
	assert.Equal(t, "Omelete", all[1].Title)
	assert.Equal(t, "Salada", all[2].Title)

	breakfast, err := svc.List("breakfast")
	require.NoError(t, err)
	require.Len(t, breakfast, 2)
	assert.Equal(t, "Panqueca", breakfast[0].Title)
}

func TestRecipeAdd(t *testing.T) {
	svc, _ := newRecipeFixture(t)

	recipe, err := svc.Add("Ana Silva", RecipeInput{
		Title:       "Frango Grelhado",
		Category:    "lunch",
		Ingredients: []string{"frango", "limão"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Silva", recipe.Author)
	assert.NotZero(t, recipe.ID)

	listed, err := svc.List("")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, []string{"frango", "limão"}, listed[0].Ingredients)
}

func TestRecipeLikeOncePerUser(t *testing.T) {
	svc, userID := newRecipeFixture(t)
	seed := models.Recipe{Title: "Salada", Likes: 3}
	require.NoError(t, svc.db.Create(&seed).Error)

	liked, err := svc.Like(userID, seed.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, liked.Likes)

	_, err = svc.Like(userID, seed.ID)
	assert.ErrorIs(t, err, ErrAlreadyLiked)

	var stored models.Recipe
	require.NoError(t, svc.db.First(&stored, seed.ID).Error)
	assert.Equal(t, 4, stored.Likes)
}

func TestRecipeLikeUnknownRecipe(t *testing.T) {
	svc, userID := newRecipeFixture(t)
	_, err := svc.Like(userID, 999)
	assert.Error(t, err)
}

func TestRecipeGenerateStoresDraft(t *testing.T) {
	svc, _ := newRecipeFixture(t)

	recipe, err := svc.Generate("frango, batata doce")
	require.NoError(t, err)
	assert.Equal(t, "Chef NutriLife (IA)", recipe.Author)
	assert.NotZero(t, recipe.ID)

	listed, err := svc.List("")
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}
