package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/repository"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	Store repository.ProjectionStore
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.Store)
	stock.Get("/families", stockHandler.ListFamilies)
	stock.Get("/families/:keyword", stockHandler.GetFamily)
}
