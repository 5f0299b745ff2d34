package requestevents

import (
	"shareabite-backend/internal/middleware"
	"shareabite-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// GET /api/v1/request-events/get-merchant-request-events
func (h *Handlers) GetMerchantRequestEvents(c *fiber.Ctx) error {
	merchantID, err := uuid.Parse(middleware.GetUserID(c))
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	events, err := h.Service.GetMerchantRequestEvents(c.Context(), merchantID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Request events fetched successfully", events, nil)
}
