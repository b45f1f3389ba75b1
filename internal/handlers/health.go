package handlers

import (
	"palenque/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck reports liveness plus database reachability.
func HealthCheck(c *fiber.Ctx) error {
	status := "ok"
	dbStatus := "up"

	if repositories.DB != nil {
		if sqlDB, err := repositories.DB.DB(); err != nil || sqlDB.Ping() != nil {
			status = "degraded"
			dbStatus = "down"
		}
	} else {
		status = "degraded"
		dbStatus = "down"
	}

	return c.JSON(fiber.Map{
		"status":   status,
		"database": dbStatus,
	})
}
