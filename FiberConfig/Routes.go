package FiberConfig

import (
	"fmt"
	"os"

	"Wander/Clusterer"
	"Wander/Controllers"
	"Wander/Gemini"
	"Wander/Models"
	"Wander/TripOptimizer"
	"Wander/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize handlers
	clusterController := Clusterer.NewClusterController()
	optimizerController := TripOptimizer.NewOptimizerController()
	itineraryController := Gemini.NewItineraryController()
	tripController := Controllers.NewTripController(db)

	// API group
	api := app.Group("/api")

	// Itinerary engine routes. These are stateless and need no auth.
	api.Get("/cluster", clusterController.Test)
	api.Post("/cluster", clusterController.GetClusters)
	api.Get("/multicluster", clusterController.MultiTest)
	api.Post("/multicluster", clusterController.GetMultiCityClusters)
	api.Post("/trip-optimizer", optimizerController.Optimize)
	api.Get("/llm", itineraryController.Test)
	api.Post("/llm", itineraryController.PlanItinerary)

	// Auth routes
	api.Post("/signup", Controllers.Register)
	api.Post("/login", Controllers.Login)
	api.Get("/validate-token", Controllers.ValidateToken)
	api.Get("/user", Controllers.User)
	api.Post("/logout", Controllers.Logout)

	// Trip routes
	trips := api.Group("/trips", middleware.Verify(1))
	trips.Get("/recommended", tripController.GetRecommendedTrips)
	trips.Get("/user/:user_id", tripController.GetUserTrips)
	trips.Get("/:id", tripController.GetTrip)
	trips.Get("/:id/export", tripController.ExportTrip)
	trips.Post("/", tripController.CreateTrip)
	trips.Post("/full", tripController.CreateFullTrip)
	trips.Post("/:id/days", tripController.CreateDay)
	trips.Post("/days/:day_id/activities", tripController.CreateActivity)
	trips.Put("/:id", tripController.UpdateTrip)
	trips.Put("/activities/:activity_id", tripController.UpdateActivity)
	trips.Delete("/activities/:activity_id", tripController.DeleteActivity)
	trips.Delete("/days/:day_id", tripController.DeleteDay)
	trips.Delete("/:id", tripController.DeleteTrip)
}

func FiberConfig() {
	fmt.Println("Server Up...")
	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression, // 2
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*", // Allow all origins
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true, // Important for cookies
		MaxAge:           300,  // Max age for preflight requests caching (5 minutes)
	}))

	SetupRoutes(app, Models.DB)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	app.Listen(":" + port)
}
