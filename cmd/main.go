package main

import (
	"os"

	"github.com/Luis14-code/front-app-nutri/config"
	"github.com/Luis14-code/front-app-nutri/routes"
)

func main() {
	db := config.InitDB()
	config.Seed(db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter(db)
	r.Run(":" + port)
}
