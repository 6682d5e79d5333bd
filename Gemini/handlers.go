package Gemini

import (
	"github.com/gofiber/fiber/v2"
)

// ItineraryController handles the LLM itinerary endpoints
type ItineraryController struct {
	Dispenser *KeyDispenser
}

// NewItineraryController creates a new ItineraryController
func NewItineraryController() *ItineraryController {
	return &ItineraryController{Dispenser: NewKeyDispenser()}
}

// Test confirms the endpoint is reachable
func (c *ItineraryController) Test(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"message": "Gemini LLM Endpoint", "success": true})
}

// ItineraryRequest is the structure of the incoming request
type ItineraryRequest struct {
	UserStayDays   int `json:"user_stay_days"`
	MaxHoursPerDay int `json:"max_hours_per_day"`
}

// PlanItinerary generates a clustered multi-day itinerary from the model.
func (c *ItineraryController) PlanItinerary(ctx *fiber.Ctx) error {
	req := ItineraryRequest{UserStayDays: 1, MaxHoursPerDay: 8}
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body: " + err.Error()})
	}
	if req.UserStayDays < 1 {
		req.UserStayDays = 1
	}
	if req.MaxHoursPerDay < 1 {
		req.MaxHoursPerDay = 8
	}

	itinerary, err := GenerateItinerary(ctx.UserContext(), c.Dispenser, req.UserStayDays, req.MaxHoursPerDay)
	if err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(itinerary)
}
