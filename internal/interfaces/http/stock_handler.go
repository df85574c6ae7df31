package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mikkovaltonen/mrp-pipeline/internal/application/dto"
	"github.com/mikkovaltonen/mrp-pipeline/internal/domain"
	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/repository"
)

// StockHandler serves the stored stock projections, the same documents the
// planning dashboard reads.
type StockHandler struct {
	store repository.ProjectionStore
}

// NewStockHandler builds the handler.
func NewStockHandler(store repository.ProjectionStore) *StockHandler {
	return &StockHandler{store: store}
}

// ListFamilies returns every substrate family's totals.
// GET /api/stock/families
func (h *StockHandler) ListFamilies(c *fiber.Ctx) error {
	groups, err := h.store.ListFamilies(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}

	out := make([]dto.FamilyGroupDTO, 0, len(groups))
	for _, g := range groups {
		out = append(out, dto.FromFamilyGroup(g))
	}
	return c.JSON(out)
}

// GetFamily returns one substrate family with its material projections.
// GET /api/stock/families/:keyword
func (h *StockHandler) GetFamily(c *fiber.Ctx) error {
	keyword := c.Params("keyword")

	group, err := h.store.GetFamily(c.Context(), keyword)
	if err != nil {
		if errors.Is(err, domain.ErrFamilyNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code: "NOT_FOUND", Message: "substrate family not found: " + keyword,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}

	return c.JSON(dto.FromFamilyGroup(group))
}
