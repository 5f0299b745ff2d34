package requests

import (
	"shareabite-backend/internal/middleware"
	"shareabite-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *Service
}

// POST /api/v1/requests/create-request
func (h *Handlers) CreateRequest(c *fiber.Ctx) error {
	var body struct {
		FoodID   string  `json:"food_id"`
		Quantity int     `json:"quantity"`
		Notes    *string `json:"notes"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if body.FoodID == "" {
		return response.Error(c, "food_id is required", fiber.StatusBadRequest, nil)
	}
	foodID, err := uuid.Parse(body.FoodID)
	if err != nil {
		return response.Error(c, "Invalid food_id format", fiber.StatusBadRequest, nil)
	}
	userID, err := actorUserID(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	req, err := h.Service.CreateRequest(c.Context(), CreateRequestInput{
		FoodID:   foodID,
		UserID:   userID,
		Quantity: body.Quantity,
		Notes:    body.Notes,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Request created successfully", req, nil)
}

// GET /api/v1/requests/get-user-requests
func (h *Handlers) GetUserRequests(c *fiber.Ctx) error {
	userID, err := actorUserID(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	reqs, err := h.Service.GetUserRequests(c.Context(), userID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Requests fetched successfully", reqs, nil)
}

// GET /api/v1/requests/get-merchant-requests
func (h *Handlers) GetMerchantRequests(c *fiber.Ctx) error {
	merchantID, err := actorUserID(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	reqs, err := h.Service.GetMerchantRequests(c.Context(), merchantID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Merchant requests fetched successfully", reqs, nil)
}

// PATCH /api/v1/requests/transition-request
func (h *Handlers) TransitionRequest(c *fiber.Ctx) error {
	var body struct {
		RequestID string `json:"request_id"`
		Status    string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil || body.RequestID == "" || body.Status == "" {
		return response.Error(c, "request_id and status are required", fiber.StatusBadRequest, nil)
	}
	requestID, err := uuid.Parse(body.RequestID)
	if err != nil {
		return response.Error(c, "Invalid request_id format", fiber.StatusBadRequest, nil)
	}
	merchantID, err := actorUserID(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	req, err := h.Service.TransitionRequest(c.Context(), TransitionInput{
		RequestID:  requestID,
		MerchantID: merchantID,
		NewStatus:  body.Status,
	})
	if err != nil {
		log.Info().Str("request_id", body.RequestID).Str("status", body.Status).Err(err).
			Msg("request transition rejected")
		return response.FromError(c, err)
	}
	return response.Success(c, "Request "+req.Status, req, nil)
}

func actorUserID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(middleware.GetUserID(c))
}
