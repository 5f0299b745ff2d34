package catalog

import (
	"shareabite-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// GET /api/v1/catalog/browse?city=&category=&page=&per_page=
func (h *Handlers) Browse(c *fiber.Ctx) error {
	listings, pagination, err := h.Service.Browse(c.Context(), BrowseInput{
		City:     c.Query("city"),
		Category: c.Query("category"),
		Page:     c.QueryInt("page", 1),
		PerPage:  c.QueryInt("per_page", 0),
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Catalog fetched successfully", listings, pagination)
}
