package listings

import (
	"time"

	"shareabite-backend/internal/middleware"
	"shareabite-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

type listingBody struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Category        *string `json:"category"`
	Quantity        *int    `json:"quantity"`
	Available       *int    `json:"available_quantity"`
	ExpiryAt        *string `json:"expiry_at"`
	PickupTimeStart *string `json:"pickup_time_start"`
	PickupTimeEnd   *string `json:"pickup_time_end"`
	Location        *string `json:"location"`
	City            *string `json:"city"`
	ImageURL        *string `json:"image_url"`
}

// POST /api/v1/listings/create-listing
func (h *Handlers) CreateListing(c *fiber.Ctx) error {
	var body listingBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	merchantID, err := actorUserID(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	in := CreateListingInput{MerchantID: merchantID}
	if body.Title != nil {
		in.Title = *body.Title
	}
	if body.Description != nil {
		in.Description = *body.Description
	}
	if body.Category != nil {
		in.Category = *body.Category
	}
	if body.Quantity != nil {
		in.Quantity = *body.Quantity
	}
	if body.ExpiryAt != nil {
		t, err := time.Parse(time.RFC3339, *body.ExpiryAt)
		if err != nil {
			return response.Error(c, "expiry_at must be an RFC3339 timestamp", fiber.StatusBadRequest, nil)
		}
		in.ExpiryAt = t
	}
	if body.PickupTimeStart != nil {
		in.PickupTimeStart = *body.PickupTimeStart
	}
	if body.PickupTimeEnd != nil {
		in.PickupTimeEnd = *body.PickupTimeEnd
	}
	if body.Location != nil {
		in.Location = *body.Location
	}
	if body.City != nil {
		in.City = *body.City
	}
	if body.ImageURL != nil {
		in.ImageURL = *body.ImageURL
	}

	listing, err := h.Service.CreateListing(c.Context(), in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Listing created successfully", listing, nil)
}

// PUT /api/v1/listings/edit-listing/:listing_id
func (h *Handlers) EditListing(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing_id format", fiber.StatusBadRequest, nil)
	}
	var body listingBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	merchantID, err := actorUserID(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	in := EditListingInput{
		ListingID:         listingID,
		MerchantID:        merchantID,
		Title:             body.Title,
		Description:       body.Description,
		Category:          body.Category,
		Quantity:          body.Quantity,
		AvailableQuantity: body.Available,
		PickupTimeStart:   body.PickupTimeStart,
		PickupTimeEnd:     body.PickupTimeEnd,
		Location:          body.Location,
		City:              body.City,
		ImageURL:          body.ImageURL,
	}
	if body.ExpiryAt != nil {
		t, err := time.Parse(time.RFC3339, *body.ExpiryAt)
		if err != nil {
			return response.Error(c, "expiry_at must be an RFC3339 timestamp", fiber.StatusBadRequest, nil)
		}
		in.ExpiryAt = &t
	}

	listing, err := h.Service.EditListing(c.Context(), in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Listing updated successfully", listing, nil)
}

// POST /api/v1/listings/archive-listing
func (h *Handlers) ArchiveListing(c *fiber.Ctx) error {
	return h.setArchived(c, true, "Listing archived successfully")
}

// POST /api/v1/listings/unarchive-listing
func (h *Handlers) UnarchiveListing(c *fiber.Ctx) error {
	return h.setArchived(c, false, "Listing unarchived successfully")
}

func (h *Handlers) setArchived(c *fiber.Ctx, archived bool, message string) error {
	var body struct {
		ListingID string `json:"listing_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.ListingID == "" {
		return response.Error(c, "listing_id is required", fiber.StatusBadRequest, nil)
	}
	listingID, err := uuid.Parse(body.ListingID)
	if err != nil {
		return response.Error(c, "Invalid listing_id format", fiber.StatusBadRequest, nil)
	}
	merchantID, err := actorUserID(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	listing, err := h.Service.SetArchived(c.Context(), listingID, merchantID, archived)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, message, listing, nil)
}

// DELETE /api/v1/listings/delete-listing/:listing_id
func (h *Handlers) DeleteListing(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing_id format", fiber.StatusBadRequest, nil)
	}
	merchantID, err := actorUserID(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	if err := h.Service.DeleteListing(c.Context(), listingID, merchantID); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Listing deleted successfully", nil, nil)
}

// GET /api/v1/listings/get-merchant-listings
func (h *Handlers) GetMerchantListings(c *fiber.Ctx) error {
	merchantID, err := actorUserID(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	listings, err := h.Service.GetMerchantListings(c.Context(), merchantID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Merchant listings fetched successfully", listings, nil)
}

// GET /api/v1/listings/get-listing/:listing_id
func (h *Handlers) GetListingByID(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing_id format", fiber.StatusBadRequest, nil)
	}
	listing, err := h.Service.GetListingByID(c.Context(), listingID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Listing fetched successfully", listing, nil)
}

func actorUserID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(middleware.GetUserID(c))
}
