package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Luis14-code/front-app-nutri/controllers"
	"github.com/Luis14-code/front-app-nutri/middlewares"
	"github.com/Luis14-code/front-app-nutri/models"
	"github.com/Luis14-code/front-app-nutri/services"
)

// SetupRouter wires every service and controller onto the engine. All
// state flows in through db; nothing here touches globals.
func SetupRouter(db *gorm.DB) *gin.Engine {
	users := services.NewUserService(db)
	plans := services.NewMealPlanService(db)
	gemini := services.NewGeminiService()
	auth := services.NewAuthService(db, plans)
	days := services.NewDayService(db, plans, users)
	adherence := services.NewAdherenceService(db, users)
	roster := services.NewRosterService(db, users, adherence)
	reports := services.NewReportService(db, users)
	recipes := services.NewRecipeService(db, gemini)
	hub := services.NewChatHub()

	authCtl := controllers.NewAuthController(auth)
	userCtl := controllers.NewUserController(db, users)
	dashCtl := controllers.NewDashboardController(days, adherence, gemini)
	recipeCtl := controllers.NewRecipeController(recipes, users)
	chatCtl := controllers.NewChatController(hub, gemini, users, recipes)
	studentCtl := controllers.NewStudentController(roster, users, plans, adherence, reports)

	r := gin.Default()

	// Public auth routes
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authCtl.Register)
		authGroup.POST("/login", authCtl.Login)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware(db))
	{
		user.GET("/profile", userCtl.GetProfile)
		user.PUT("/profile", userCtl.UpdateProfile)
	}

	// Student dashboard
	dashboard := r.Group("/dashboard")
	dashboard.Use(middlewares.AuthMiddleware(db))
	{
		dashboard.GET("/day", dashCtl.GetDay)
		dashboard.POST("/meals/:id/toggle", dashCtl.Toggle)
		dashboard.POST("/extras", dashCtl.AddExtra)
		dashboard.GET("/balance", dashCtl.Balance)
		dashboard.GET("/activities", dashCtl.ListActivities)
		dashboard.POST("/activities", dashCtl.LogActivity)
		dashboard.GET("/calendar", dashCtl.Calendar)
	}

	// Community recipe feed
	recipeGroup := r.Group("/recipes")
	recipeGroup.Use(middlewares.AuthMiddleware(db))
	{
		recipeGroup.GET("", recipeCtl.List)
		recipeGroup.POST("", recipeCtl.Add)
		recipeGroup.POST("/:id/like", recipeCtl.Like)
		recipeGroup.POST("/generate", recipeCtl.Generate)
	}

	// Assistant chat: stateless POST plus a live websocket session
	chat := r.Group("/")
	chat.Use(middlewares.AuthMiddleware(db))
	{
		chat.POST("/chat", chatCtl.Chat)
		chat.GET("/ws/chat", chatCtl.ChatWS)
	}

	// Nutritionist dashboard
	students := r.Group("/students")
	students.Use(middlewares.AuthMiddleware(db), middlewares.RequireRole(models.RoleNutritionist))
	{
		students.GET("", studentCtl.List)
		students.POST("", studentCtl.Add)
		students.GET("/:id", studentCtl.Get)
		students.PUT("/:id/targets", studentCtl.SetTargets)
		students.GET("/:id/mealplan", studentCtl.GetMealPlan)
		students.PUT("/:id/mealplan", studentCtl.PutMealPlan)
		students.GET("/:id/adherence", studentCtl.GetAdherence)
		students.POST("/:id/report", studentCtl.PostReport)
	}

	return r
}
