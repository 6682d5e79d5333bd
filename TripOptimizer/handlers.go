package TripOptimizer

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OptimizerController handles the single-day routing API endpoint
type OptimizerController struct {
	Validate *validator.Validate
}

// NewOptimizerController creates a new OptimizerController
func NewOptimizerController() *OptimizerController {
	return &OptimizerController{Validate: validator.New()}
}

// Test confirms the endpoint is reachable
func (c *OptimizerController) Test(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"message": "Trip Optimizer Endpoint", "success": true})
}

// Optimize builds and solves the day's routing model, searching alternate
// meal-role assignments when the default one is infeasible.
func (c *OptimizerController) Optimize(ctx *fiber.Ctx) error {
	var req RouteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest(ctx, "Invalid request body: "+err.Error())
	}

	if err := c.Validate.Struct(req); err != nil {
		return badRequest(ctx, "Missing required fields")
	}
	if msg, ok := validateShape(&req); !ok {
		return badRequest(ctx, msg)
	}

	applyWindowDefaults(&req)

	route, err := PlanDay(&req)
	if err != nil {
		if errors.Is(err, ErrInfeasibleDay) {
			return ctx.Status(fiber.StatusNotFound).JSON(RouteResponse{
				Route: []RouteStopOut{}, Success: false, Error: "No solution found",
			})
		}
		return badRequest(ctx, err.Error())
	}

	return ctx.JSON(RouteResponse{Route: route, Success: true})
}

func badRequest(ctx *fiber.Ctx, msg string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(RouteResponse{
		Route: []RouteStopOut{}, Success: false, Error: msg,
	})
}

// validateShape enforces the structural rules the struct tags cannot express.
func validateShape(req *RouteRequest) (string, bool) {
	n := len(req.Stops)
	if len(req.TravelTimeMatrix) != n {
		return "Length of stops and travel_time_matrix must match", false
	}
	for _, row := range req.TravelTimeMatrix {
		if len(row) != n {
			return "Length of stops and travel_time_matrix must match", false
		}
	}

	depots := 0
	for _, s := range req.Stops {
		if s.IsDepot {
			depots++
		}
	}
	if depots != 1 {
		return "Exactly one depot stop is required", false
	}

	if req.DayWindow.EndHour <= req.DayWindow.StartHour {
		return "day_window end_hour must be after start_hour", false
	}
	return "", true
}

func applyWindowDefaults(req *RouteRequest) {
	if req.FreeSpaceDefaults.TravelMinutes <= 0 {
		req.FreeSpaceDefaults.TravelMinutes = 15
	}
	if req.FreeSpaceDefaults.ServiceMinutes <= 0 {
		req.FreeSpaceDefaults.ServiceMinutes = 60
	}
}

// PlanDay runs augmentation, role selection and the feasibility search for a
// single validated request and formats the timed route.
func PlanDay(req *RouteRequest) ([]RouteStopOut, error) {
	// The depot contributes no service time regardless of input.
	for i := range req.Stops {
		if req.Stops[i].IsDepot {
			req.Stops[i].DurationMinutes = 0
		}
	}

	totalService := 0
	for _, s := range req.Stops {
		totalService += s.DurationMinutes
	}

	lunchActive, dinnerActive := ActiveRoles(req.DayWindow, req.MealWindows, totalService)
	required := 0
	if lunchActive {
		required++
	}
	if dinnerActive {
		required++
	}

	stops, matrix := AugmentStops(req.Stops, req.TravelTimeMatrix, required, req.FreeSpaceDefaults)

	depot := 0
	serviceTimes := make([]int, len(stops))
	droppable := make([]bool, len(stops))
	var eligible []int
	for i, s := range stops {
		serviceTimes[i] = s.DurationMinutes
		if s.IsDepot {
			depot = i
		}
		// The depot can never host a meal role: its two route positions
		// bypass the window check entirely.
		if s.MealEligible && !s.IsDepot {
			eligible = append(eligible, i)
		}
		droppable[i] = req.AllowDrops && !s.MealEligible && !s.IsDepot
	}

	model := &RouteModel{
		TravelTimes:  matrix,
		ServiceTimes: serviceTimes,
		Depot:        depot,
		Horizon:      (req.DayWindow.EndHour - req.DayWindow.StartHour) * 60,
		LunchNode:    -1,
		DinnerNode:   -1,
		AllowDrops:   req.AllowDrops,
		Droppable:    droppable,
	}
	if lunchActive {
		model.LunchWindow = windowOffsets(*req.MealWindows.Lunch, req.DayWindow)
	}
	if dinnerActive {
		model.DinnerWindow = windowOffsets(*req.MealWindows.Dinner, req.DayWindow)
	}

	var (
		result     *RouteResult
		err        error
		lunchNode  = -1
		dinnerNode = -1
	)

	switch {
	case lunchActive && dinnerActive:
		var state SearchState
		result, state, err = SearchMealAssignments(eligible, func(lunch, dinner int) (*RouteResult, error) {
			model.LunchNode, model.DinnerNode = lunch, dinner
			return model.Solve()
		})
		if err == nil {
			lunchNode = eligible[state.LunchPtr]
			dinnerNode = eligible[state.DinnerPtr]
		}
	case lunchActive:
		var ptr int
		result, ptr, err = SearchSingleRole(eligible, func(node int) (*RouteResult, error) {
			model.LunchNode = node
			return model.Solve()
		})
		if err == nil {
			lunchNode = eligible[ptr]
		}
	case dinnerActive:
		var ptr int
		result, ptr, err = SearchSingleRole(eligible, func(node int) (*RouteResult, error) {
			model.DinnerNode = node
			return model.Solve()
		})
		if err == nil {
			dinnerNode = eligible[ptr]
		}
	default:
		result, err = model.Solve()
		if errors.Is(err, ErrNoSolution) {
			err = ErrInfeasibleDay
		}
	}
	if err != nil {
		return nil, err
	}

	return formatRoute(stops, req.DayWindow, result, lunchNode, dinnerNode), nil
}

func windowOffsets(w MealWindow, day DayWindow) [2]int {
	return [2]int{(w.StartHour - day.StartHour) * 60, (w.EndHour - day.StartHour) * 60}
}

func formatRoute(stops []Stop, day DayWindow, result *RouteResult, lunchNode, dinnerNode int) []RouteStopOut {
	route := make([]RouteStopOut, 0, len(result.Order))
	for pos, node := range result.Order {
		t := result.Arrivals[pos]

		role := RoleAttraction
		switch {
		case pos == 0:
			role = RoleStart
		case pos == len(result.Order)-1:
			role = RoleEnd
		case node == lunchNode:
			role = RoleLunch
		case node == dinnerNode:
			role = RoleDinner
		}

		route = append(route, RouteStopOut{
			NodeID:         stops[node].ID,
			ArrivalTime:    fmt.Sprintf("%02d:%02d", day.StartHour+t/60, t%60),
			ServiceMinutes: stops[node].DurationMinutes,
			Role:           role,
		})
	}
	return route
}
