package Clusterer

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ClusterController handles the cluster allocation API endpoints
type ClusterController struct {
	Validate *validator.Validate
}

// NewClusterController creates a new ClusterController
func NewClusterController() *ClusterController {
	return &ClusterController{Validate: validator.New()}
}

// Test confirms the endpoint is reachable
func (c *ClusterController) Test(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"message": "Cluster Endpoint", "success": true})
}

// GetClusters clusters the provided locations and returns both allocation
// solutions: the user preference fill and the cluster-balanced optimal split.
func (c *ClusterController) GetClusters(ctx *fiber.Ctx) error {
	var req ClusterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body: " + err.Error()})
	}

	if err := c.Validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	applyDefaults(&req)

	return ctx.JSON(Solve(req))
}

func applyDefaults(req *ClusterRequest) {
	if req.RequestedDays < 1 {
		req.RequestedDays = 1
	}
	if req.MaxHoursPerDay < 1 {
		req.MaxHoursPerDay = 1
	}
}
