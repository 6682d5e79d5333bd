package Clusterer

import (
	"fmt"
	"runtime"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

// GetMultiCityClusters solves each city's clustering request independently.
// Cities are separate optimization instances with no shared state, so they run
// on a pool sized to the available cores; results are reassembled by index.
func (c *ClusterController) GetMultiCityClusters(ctx *fiber.Ctx) error {
	var req MultiClusterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body: " + err.Error()})
	}

	if len(req.Cities) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "At least one city must be provided"})
	}

	// Validate everything up front so a bad city fails fast with its name.
	for i := range req.Cities {
		if err := c.Validate.Struct(req.Cities[i]); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("City '%s': Missing required fields", req.Cities[i].City),
			})
		}
		applyDefaults(&req.Cities[i].ClusterRequest)
	}

	results := make([]CityClusterResponse, len(req.Cities))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i := range req.Cities {
		g.Go(func() error {
			results[i] = CityClusterResponse{
				City:     req.Cities[i].City,
				Solution: Solve(req.Cities[i].ClusterRequest),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(MultiClusterResponse{Cities: results})
}

// MultiTest confirms the endpoint is reachable
func (c *ClusterController) MultiTest(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"message": "Multi-cluster Endpoint", "success": true})
}
