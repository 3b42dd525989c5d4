package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
)

// InitMetrics creates the Prometheus middleware for the given service name.
// Call once per process; the collectors register globally.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// Metrics returns the request-metrics middleware for the app.
func Metrics(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
