package profile

import (
	"shareabite-backend/internal/middleware"
	"shareabite-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// GET /api/v1/profile/view-profile
func (h *Handlers) ViewProfile(c *fiber.Ctx) error {
	userID, err := uuid.Parse(middleware.GetUserID(c))
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	p, err := h.Service.ViewProfile(c.Context(), userID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Profile fetched successfully", p, nil)
}

// PATCH /api/v1/profile/update-profile
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	userID, err := uuid.Parse(middleware.GetUserID(c))
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	var body struct {
		FullName *string `json:"full_name"`
		Password *string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	p, err := h.Service.UpdateProfile(c.Context(), UpdateProfileInput{
		UserID:   userID,
		FullName: body.FullName,
		Password: body.Password,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Profile updated successfully", p, nil)
}
