package listings

import (
	"context"
	"time"

	"shareabite-backend/internal/domain"
	"shareabite-backend/internal/pkg/apperrors"
	"shareabite-backend/internal/pkg/validation"
	"shareabite-backend/internal/requests"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service owns merchant-side listing CRUD. Every write enforces the
// quantity invariant 0 <= available_quantity <= quantity; the original
// frontend trusted the caller here, which let careless writes corrupt
// availability.
type Service struct {
	DB *gorm.DB
}

type CreateListingInput struct {
	MerchantID      uuid.UUID
	Title           string
	Description     string
	Category        string
	Quantity        int
	ExpiryAt        time.Time
	PickupTimeStart string
	PickupTimeEnd   string
	Location        string
	City            string
	ImageURL        string
}

func (s *Service) CreateListing(ctx context.Context, in CreateListingInput) (*domain.Listing, error) {
	if in.Title == "" {
		return nil, apperrors.Validation("Missing required field: title")
	}
	if in.Category == "" {
		return nil, apperrors.Validation("Missing required field: category")
	}
	if in.Quantity <= 0 {
		return nil, apperrors.Validation("Quantity must be greater than 0")
	}
	if in.ExpiryAt.IsZero() {
		return nil, apperrors.Validation("Missing required field: expiry_at")
	}
	if !validation.IsValidClockTime(in.PickupTimeStart) || !validation.IsValidClockTime(in.PickupTimeEnd) {
		return nil, apperrors.Validation("Pickup window must be two HH:MM times")
	}
	if in.Location == "" {
		return nil, apperrors.Validation("Missing required field: location")
	}
	if in.City == "" {
		return nil, apperrors.Validation("Missing required field: city")
	}

	listing := &domain.Listing{
		MerchantID:        in.MerchantID,
		Title:             in.Title,
		Description:       in.Description,
		Category:          in.Category,
		Quantity:          in.Quantity,
		AvailableQuantity: in.Quantity,
		ExpiryAt:          in.ExpiryAt,
		PickupTimeStart:   in.PickupTimeStart,
		PickupTimeEnd:     in.PickupTimeEnd,
		Location:          in.Location,
		City:              in.City,
		ImageURL:          in.ImageURL,
		Status:            domain.ListingStatusAvailable,
	}
	if err := s.DB.WithContext(ctx).Create(listing).Error; err != nil {
		return nil, err
	}
	return listing, nil
}

type EditListingInput struct {
	ListingID  uuid.UUID
	MerchantID uuid.UUID

	Title             *string
	Description       *string
	Category          *string
	Quantity          *int
	AvailableQuantity *int
	ExpiryAt          *time.Time
	PickupTimeStart   *string
	PickupTimeEnd     *string
	Location          *string
	City              *string
	ImageURL          *string
}

// EditListing rewrites any subset of fields for the owner. Quantity writes
// are checked against the invariant as a pair: the new available must not
// exceed the new total.
func (s *Service) EditListing(ctx context.Context, in EditListingInput) (*domain.Listing, error) {
	listing, err := s.ownedListing(ctx, in.ListingID, in.MerchantID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		if *in.Title == "" {
			return nil, apperrors.Validation("Title must not be empty")
		}
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Category != nil {
		if *in.Category == "" {
			return nil, apperrors.Validation("Category must not be empty")
		}
		updates["category"] = *in.Category
	}

	newQuantity := listing.Quantity
	if in.Quantity != nil {
		if *in.Quantity <= 0 {
			return nil, apperrors.Validation("Quantity must be greater than 0")
		}
		newQuantity = *in.Quantity
		updates["quantity"] = newQuantity
	}
	newAvailable := listing.AvailableQuantity
	if in.AvailableQuantity != nil {
		if *in.AvailableQuantity < 0 {
			return nil, apperrors.Validation("Available quantity must not be negative")
		}
		newAvailable = *in.AvailableQuantity
		updates["available_quantity"] = newAvailable
	}
	if newAvailable > newQuantity {
		return nil, apperrors.Validation("Available quantity must not exceed quantity")
	}
	// Shrinking the total below current availability silently breaks the
	// invariant too; clamp by rejecting.
	if in.Quantity != nil && in.AvailableQuantity == nil && listing.AvailableQuantity > newQuantity {
		return nil, apperrors.Validation("Available quantity must not exceed quantity")
	}

	if in.ExpiryAt != nil {
		if in.ExpiryAt.IsZero() {
			return nil, apperrors.Validation("expiry_at must be a valid timestamp")
		}
		updates["expiry_at"] = *in.ExpiryAt
	}
	if in.PickupTimeStart != nil {
		if !validation.IsValidClockTime(*in.PickupTimeStart) {
			return nil, apperrors.Validation("pickup_time_start must be HH:MM")
		}
		updates["pickup_time_start"] = *in.PickupTimeStart
	}
	if in.PickupTimeEnd != nil {
		if !validation.IsValidClockTime(*in.PickupTimeEnd) {
			return nil, apperrors.Validation("pickup_time_end must be HH:MM")
		}
		updates["pickup_time_end"] = *in.PickupTimeEnd
	}
	if in.Location != nil {
		updates["location"] = *in.Location
	}
	if in.City != nil {
		updates["city"] = *in.City
	}
	if in.ImageURL != nil {
		updates["image_url"] = *in.ImageURL
	}

	if len(updates) == 0 {
		return nil, apperrors.Validation("No valid changes provided")
	}
	if err := s.DB.WithContext(ctx).Model(listing).Updates(updates).Error; err != nil {
		return nil, err
	}
	s.DB.WithContext(ctx).Where("id = ?", in.ListingID).First(listing)
	return listing, nil
}

// SetArchived flips the listing between available and archived. Quantities
// are untouched, so archive followed by unarchive restores the listing to
// the catalog unchanged.
func (s *Service) SetArchived(ctx context.Context, listingID, merchantID uuid.UUID, archived bool) (*domain.Listing, error) {
	listing, err := s.ownedListing(ctx, listingID, merchantID)
	if err != nil {
		return nil, err
	}
	status := domain.ListingStatusAvailable
	if archived {
		status = domain.ListingStatusArchived
	}
	if listing.Status == status {
		return listing, nil
	}
	listing.Status = status
	if err := s.DB.WithContext(ctx).Save(listing).Error; err != nil {
		return nil, err
	}
	return listing, nil
}

// DeleteListing removes a listing permanently. Deletion is refused while
// pending or approved requests still reference it; rejected and completed
// requests keep their denormalized copy and survive the delete.
func (s *Service) DeleteListing(ctx context.Context, listingID, merchantID uuid.UUID) error {
	listing, err := s.ownedListing(ctx, listingID, merchantID)
	if err != nil {
		return err
	}

	var active int64
	if err := s.DB.WithContext(ctx).Model(&domain.Request{}).
		Where("food_id = ? AND status IN ?", listingID, []string{string(requests.StatusPending), string(requests.StatusApproved)}).
		Count(&active).Error; err != nil {
		return err
	}
	if active > 0 {
		return apperrors.Validation("Listing has active requests and cannot be deleted")
	}
	return s.DB.WithContext(ctx).Delete(listing).Error
}

// GetMerchantListings returns all of the owner's listings, newest first,
// regardless of status.
func (s *Service) GetMerchantListings(ctx context.Context, merchantID uuid.UUID) ([]domain.Listing, error) {
	var listings []domain.Listing
	if err := s.DB.WithContext(ctx).Where("merchant_id = ?", merchantID).Order("created_at DESC").Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (s *Service) GetListingByID(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error) {
	if listingID == uuid.Nil {
		return nil, apperrors.Validation("listing_id is required")
	}
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &apperrors.NotFoundError{Resource: "Listing"}
		}
		return nil, err
	}
	return &listing, nil
}

func (s *Service) ownedListing(ctx context.Context, listingID, merchantID uuid.UUID) (*domain.Listing, error) {
	if listingID == uuid.Nil {
		return nil, apperrors.Validation("listing_id is required")
	}
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &apperrors.NotFoundError{Resource: "Listing"}
		}
		return nil, err
	}
	if listing.MerchantID != merchantID {
		return nil, &apperrors.ForbiddenError{Msg: "Only the owning merchant may modify this listing"}
	}
	return &listing, nil
}
