package admin

import (
	"shareabite-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// GET /api/v1/admin/overview
func (h *Handlers) Overview(c *fiber.Ctx) error {
	stats, err := h.Service.Overview(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Overview fetched successfully", stats, nil)
}

// GET /api/v1/admin/list-listings?page=&per_page=
func (h *Handlers) ListListings(c *fiber.Ctx) error {
	items, meta, err := h.Service.ListListings(c.Context(), pageInput(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Listings fetched successfully", items, meta)
}

// GET /api/v1/admin/list-requests?page=&per_page=
func (h *Handlers) ListRequests(c *fiber.Ctx) error {
	items, meta, err := h.Service.ListRequests(c.Context(), pageInput(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Requests fetched successfully", items, meta)
}

// GET /api/v1/admin/list-profiles?page=&per_page=
func (h *Handlers) ListProfiles(c *fiber.Ctx) error {
	items, meta, err := h.Service.ListProfiles(c.Context(), pageInput(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Profiles fetched successfully", items, meta)
}

func pageInput(c *fiber.Ctx) PageInput {
	return PageInput{
		Page:    c.QueryInt("page", 1),
		PerPage: c.QueryInt("per_page", 0),
	}
}
