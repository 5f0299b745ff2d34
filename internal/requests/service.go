package requests

import (
	"context"
	"encoding/json"
	"time"

	"shareabite-backend/internal/domain"
	"shareabite-backend/internal/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service owns the request workflow: creation by users, status transitions
// by the owning merchant, and the append-only event trail.
type Service struct {
	DB *gorm.DB
	// ReserveOnApprove enables the conditional availability decrement when a
	// request is approved. The original flow never reconciled quantities;
	// keep false to preserve that behavior.
	ReserveOnApprove bool
}

type CreateRequestInput struct {
	FoodID   uuid.UUID
	UserID   uuid.UUID
	Quantity int
	Notes    *string
}

// CreateRequest creates a pending request against an available listing.
// MerchantID and the pickup window are denormalized from the listing.
func (s *Service) CreateRequest(ctx context.Context, in CreateRequestInput) (*domain.Request, error) {
	if in.FoodID == uuid.Nil {
		return nil, apperrors.Validation("food_id is required")
	}
	if in.Quantity < 1 {
		return nil, apperrors.Validation("Requested quantity must be at least 1")
	}

	var req *domain.Request
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing domain.Listing
		if err := tx.Where("id = ?", in.FoodID).First(&listing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return &apperrors.NotFoundError{Resource: "Listing"}
			}
			return err
		}
		if listing.Status != domain.ListingStatusAvailable || listing.AvailableQuantity <= 0 {
			return apperrors.Validation("Listing is not available for requests")
		}
		if in.Quantity > listing.AvailableQuantity {
			return apperrors.Validation("Requested quantity exceeds available quantity")
		}

		req = &domain.Request{
			FoodID:     listing.ID,
			UserID:     in.UserID,
			MerchantID: listing.MerchantID,
			Quantity:   in.Quantity,
			PickupTime: listing.PickupTimeStart + " - " + listing.PickupTimeEnd,
			Notes:      in.Notes,
			Status:     string(StatusPending),
		}
		if err := tx.Create(req).Error; err != nil {
			return err
		}

		eventData, _ := json.Marshal(map[string]interface{}{
			"quantity":      req.Quantity,
			"listing_title": listing.Title,
		})
		return tx.Create(&domain.RequestEvent{
			RequestID:   req.ID,
			EventType:   domain.RequestEventCreated,
			ActorUserID: in.UserID,
			EventData:   datatypes.JSON(eventData),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// GetUserRequests returns the requester's own requests, newest first.
// Requesters have read-only access: no mutation path exists for them.
func (s *Service) GetUserRequests(ctx context.Context, userID uuid.UUID) ([]domain.Request, error) {
	var reqs []domain.Request
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// MerchantRequest is a request joined with its listing and requester profile
// for the merchant's review view.
type MerchantRequest struct {
	domain.Request
	ListingTitle      string `json:"listing_title"`
	ListingLocation   string `json:"listing_location"`
	RequesterFullName string `json:"requester_full_name"`
	RequesterEmail    string `json:"requester_email"`
}

// GetMerchantRequests returns all requests against the merchant's listings,
// newest first, enriched with listing and requester data.
func (s *Service) GetMerchantRequests(ctx context.Context, merchantID uuid.UUID) ([]MerchantRequest, error) {
	var reqs []domain.Request
	if err := s.DB.WithContext(ctx).Where("merchant_id = ?", merchantID).Order("created_at DESC").Find(&reqs).Error; err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return []MerchantRequest{}, nil
	}

	listingIDs := map[uuid.UUID]bool{}
	userIDs := map[uuid.UUID]bool{}
	for _, r := range reqs {
		listingIDs[r.FoodID] = true
		userIDs[r.UserID] = true
	}

	listingMap := map[uuid.UUID]domain.Listing{}
	{
		ids := make([]uuid.UUID, 0, len(listingIDs))
		for id := range listingIDs {
			ids = append(ids, id)
		}
		var listings []domain.Listing
		s.DB.WithContext(ctx).Where("id IN ?", ids).Find(&listings)
		for _, l := range listings {
			listingMap[l.ID] = l
		}
	}

	profileMap := map[uuid.UUID]domain.Profile{}
	{
		ids := make([]uuid.UUID, 0, len(userIDs))
		for id := range userIDs {
			ids = append(ids, id)
		}
		var profiles []domain.Profile
		s.DB.WithContext(ctx).Where("user_id IN ?", ids).Find(&profiles)
		for _, p := range profiles {
			profileMap[p.UserID] = p
		}
	}

	out := make([]MerchantRequest, len(reqs))
	for i, r := range reqs {
		mr := MerchantRequest{Request: r}
		if l, ok := listingMap[r.FoodID]; ok {
			mr.ListingTitle = l.Title
			mr.ListingLocation = l.Location + ", " + l.City
		}
		if p, ok := profileMap[r.UserID]; ok {
			mr.RequesterFullName = p.FullName
			mr.RequesterEmail = p.Email
		}
		out[i] = mr
	}
	return out, nil
}

type TransitionInput struct {
	RequestID  uuid.UUID
	MerchantID uuid.UUID
	NewStatus  string
}

// TransitionRequest applies a status change on behalf of the owning
// merchant. The move is validated against the state machine before any
// write; the status update and its audit event commit in one transaction.
// With ReserveOnApprove on, approval also decrements the listing's
// availability behind a conditional update, so two merchants racing over
// the same stock cannot oversell it.
func (s *Service) TransitionRequest(ctx context.Context, in TransitionInput) (*domain.Request, error) {
	next, err := ParseStatus(in.NewStatus)
	if err != nil {
		return nil, err
	}

	var req domain.Request
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", in.RequestID).First(&req).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return &apperrors.NotFoundError{Resource: "Request"}
			}
			return err
		}
		if req.MerchantID != in.MerchantID {
			return &apperrors.ForbiddenError{Msg: "Only the owning merchant may update this request"}
		}

		current := Status(req.Status)
		if err := current.Validate(next); err != nil {
			return err
		}

		if next == StatusApproved && s.ReserveOnApprove {
			res := tx.Model(&domain.Listing{}).
				Where("id = ? AND available_quantity >= ?", req.FoodID, req.Quantity).
				UpdateColumn("available_quantity", gorm.Expr("available_quantity - ?", req.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperrors.Validation("Insufficient available quantity to approve request")
			}
		}

		req.Status = string(next)
		if err := tx.Save(&req).Error; err != nil {
			return err
		}

		eventData, _ := json.Marshal(map[string]interface{}{
			"from": string(current),
			"to":   string(next),
			"at":   time.Now().UTC(),
		})
		return tx.Create(&domain.RequestEvent{
			RequestID:   req.ID,
			EventType:   next.EventType(),
			ActorUserID: in.MerchantID,
			EventData:   datatypes.JSON(eventData),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}
