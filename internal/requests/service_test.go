package requests

import (
	"context"
	"testing"
	"time"

	"shareabite-backend/internal/domain"
	"shareabite-backend/internal/pkg/apperrors"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRequestsTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Listing{}, &domain.Request{}, &domain.RequestEvent{}, &domain.Profile{},
	))
	return &Service{DB: db}, db
}

func seedListing(t *testing.T, db *gorm.DB, merchantID uuid.UUID, quantity int) *domain.Listing {
	listing := &domain.Listing{
		MerchantID:        merchantID,
		Title:             "Bread",
		Category:          "bakery",
		Quantity:          quantity,
		AvailableQuantity: quantity,
		ExpiryAt:          time.Now().Add(48 * time.Hour),
		PickupTimeStart:   "17:00",
		PickupTimeEnd:     "19:00",
		Location:          "12 Main St",
		City:              "Lagos",
		Status:            domain.ListingStatusAvailable,
	}
	require.NoError(t, db.Create(listing).Error)
	return listing
}

func TestCreateRequest_Lifecycle(t *testing.T) {
	svc, db := setupRequestsTest(t)
	ctx := context.Background()
	merchantID := uuid.New()
	userID := uuid.New()
	listing := seedListing(t, db, merchantID, 10)

	req, err := svc.CreateRequest(ctx, CreateRequestInput{
		FoodID:   listing.ID,
		UserID:   userID,
		Quantity: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", req.Status)
	assert.Equal(t, merchantID, req.MerchantID)
	assert.Equal(t, "17:00 - 19:00", req.PickupTime)

	// Creation never touches availability
	var fresh domain.Listing
	require.NoError(t, db.First(&fresh, "id = ?", listing.ID).Error)
	assert.Equal(t, 10, fresh.AvailableQuantity)

	// CREATED event written
	var events []domain.RequestEvent
	require.NoError(t, db.Where("request_id = ?", req.ID).Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, domain.RequestEventCreated, events[0].EventType)
	assert.Equal(t, userID, events[0].ActorUserID)
}

func TestCreateRequest_QuantityBounds(t *testing.T) {
	svc, db := setupRequestsTest(t)
	ctx := context.Background()
	listing := seedListing(t, db, uuid.New(), 5)

	_, err := svc.CreateRequest(ctx, CreateRequestInput{FoodID: listing.ID, UserID: uuid.New(), Quantity: 0})
	var valErr *apperrors.ValidationError
	require.ErrorAs(t, err, &valErr)

	_, err = svc.CreateRequest(ctx, CreateRequestInput{FoodID: listing.ID, UserID: uuid.New(), Quantity: 6})
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Error(), "exceeds available")
}

func TestCreateRequest_UnavailableListing(t *testing.T) {
	svc, db := setupRequestsTest(t)
	ctx := context.Background()

	archived := seedListing(t, db, uuid.New(), 5)
	require.NoError(t, db.Model(archived).Update("status", domain.ListingStatusArchived).Error)
	_, err := svc.CreateRequest(ctx, CreateRequestInput{FoodID: archived.ID, UserID: uuid.New(), Quantity: 1})
	var valErr *apperrors.ValidationError
	require.ErrorAs(t, err, &valErr)

	depleted := seedListing(t, db, uuid.New(), 5)
	require.NoError(t, db.Model(depleted).Update("available_quantity", 0).Error)
	_, err = svc.CreateRequest(ctx, CreateRequestInput{FoodID: depleted.ID, UserID: uuid.New(), Quantity: 1})
	require.ErrorAs(t, err, &valErr)

	_, err = svc.CreateRequest(ctx, CreateRequestInput{FoodID: uuid.New(), UserID: uuid.New(), Quantity: 1})
	var nfErr *apperrors.NotFoundError
	require.ErrorAs(t, err, &nfErr)
}

func TestTransitionRequest_ApproveThenComplete(t *testing.T) {
	svc, db := setupRequestsTest(t)
	ctx := context.Background()
	merchantID := uuid.New()
	listing := seedListing(t, db, merchantID, 10)

	req, err := svc.CreateRequest(ctx, CreateRequestInput{FoodID: listing.ID, UserID: uuid.New(), Quantity: 3})
	require.NoError(t, err)

	updated, err := svc.TransitionRequest(ctx, TransitionInput{RequestID: req.ID, MerchantID: merchantID, NewStatus: "approved"})
	require.NoError(t, err)
	assert.Equal(t, "approved", updated.Status)

	updated, err = svc.TransitionRequest(ctx, TransitionInput{RequestID: req.ID, MerchantID: merchantID, NewStatus: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", updated.Status)

	// One event per step: CREATED, APPROVED, COMPLETED
	var events []domain.RequestEvent
	require.NoError(t, db.Where("request_id = ?", req.ID).Order("created_at").Find(&events).Error)
	require.Len(t, events, 3)
	assert.Equal(t, domain.RequestEventApproved, events[1].EventType)
	assert.Equal(t, domain.RequestEventCompleted, events[2].EventType)
}

func TestTransitionRequest_IllegalMoves(t *testing.T) {
	svc, db := setupRequestsTest(t)
	ctx := context.Background()
	merchantID := uuid.New()
	listing := seedListing(t, db, merchantID, 10)

	req, err := svc.CreateRequest(ctx, CreateRequestInput{FoodID: listing.ID, UserID: uuid.New(), Quantity: 1})
	require.NoError(t, err)

	var transErr *apperrors.InvalidTransitionError

	// pending -> completed skips approval
	_, err = svc.TransitionRequest(ctx, TransitionInput{RequestID: req.ID, MerchantID: merchantID, NewStatus: "completed"})
	require.ErrorAs(t, err, &transErr)

	// Unknown status string
	_, err = svc.TransitionRequest(ctx, TransitionInput{RequestID: req.ID, MerchantID: merchantID, NewStatus: "cancelled"})
	require.ErrorAs(t, err, &transErr)

	// Terminal states accept nothing
	_, err = svc.TransitionRequest(ctx, TransitionInput{RequestID: req.ID, MerchantID: merchantID, NewStatus: "rejected"})
	require.NoError(t, err)
	_, err = svc.TransitionRequest(ctx, TransitionInput{RequestID: req.ID, MerchantID: merchantID, NewStatus: "approved"})
	require.ErrorAs(t, err, &transErr)

	// Failed transition leaves the row untouched
	var fresh domain.Request
	require.NoError(t, db.First(&fresh, "id = ?", req.ID).Error)
	assert.Equal(t, "rejected", fresh.Status)
}

func TestTransitionRequest_OwnershipEnforced(t *testing.T) {
	svc, db := setupRequestsTest(t)
	ctx := context.Background()
	listing := seedListing(t, db, uuid.New(), 10)

	req, err := svc.CreateRequest(ctx, CreateRequestInput{FoodID: listing.ID, UserID: uuid.New(), Quantity: 1})
	require.NoError(t, err)

	_, err = svc.TransitionRequest(ctx, TransitionInput{RequestID: req.ID, MerchantID: uuid.New(), NewStatus: "approved"})
	var fbErr *apperrors.ForbiddenError
	require.ErrorAs(t, err, &fbErr)
}

func TestTransitionRequest_ReserveOnApprove(t *testing.T) {
	svc, db := setupRequestsTest(t)
	svc.ReserveOnApprove = true
	ctx := context.Background()
	merchantID := uuid.New()
	listing := seedListing(t, db, merchantID, 5)

	req, err := svc.CreateRequest(ctx, CreateRequestInput{FoodID: listing.ID, UserID: uuid.New(), Quantity: 3})
	require.NoError(t, err)

	_, err = svc.TransitionRequest(ctx, TransitionInput{RequestID: req.ID, MerchantID: merchantID, NewStatus: "approved"})
	require.NoError(t, err)

	var fresh domain.Listing
	require.NoError(t, db.First(&fresh, "id = ?", listing.ID).Error)
	assert.Equal(t, 2, fresh.AvailableQuantity)
}

func TestTransitionRequest_ReserveOnApprove_InsufficientStock(t *testing.T) {
	svc, db := setupRequestsTest(t)
	svc.ReserveOnApprove = true
	ctx := context.Background()
	merchantID := uuid.New()
	listing := seedListing(t, db, merchantID, 5)

	req, err := svc.CreateRequest(ctx, CreateRequestInput{FoodID: listing.ID, UserID: uuid.New(), Quantity: 4})
	require.NoError(t, err)

	// Stock drained between creation and approval
	require.NoError(t, db.Model(&domain.Listing{}).Where("id = ?", listing.ID).Update("available_quantity", 2).Error)

	_, err = svc.TransitionRequest(ctx, TransitionInput{RequestID: req.ID, MerchantID: merchantID, NewStatus: "approved"})
	var valErr *apperrors.ValidationError
	require.ErrorAs(t, err, &valErr)

	// The rejected approval rolls back: status stays pending, stock unchanged
	var fresh domain.Request
	require.NoError(t, db.First(&fresh, "id = ?", req.ID).Error)
	assert.Equal(t, "pending", fresh.Status)
	var freshListing domain.Listing
	require.NoError(t, db.First(&freshListing, "id = ?", listing.ID).Error)
	assert.Equal(t, 2, freshListing.AvailableQuantity)
}

func TestGetMerchantRequests_Enriched(t *testing.T) {
	svc, db := setupRequestsTest(t)
	ctx := context.Background()
	merchantID := uuid.New()
	userID := uuid.New()
	listing := seedListing(t, db, merchantID, 10)
	require.NoError(t, db.Create(&domain.Profile{
		UserID:   userID,
		FullName: "Ada Obi",
		Email:    "ada@example.com",
	}).Error)

	_, err := svc.CreateRequest(ctx, CreateRequestInput{FoodID: listing.ID, UserID: userID, Quantity: 2})
	require.NoError(t, err)

	out, err := svc.GetMerchantRequests(ctx, merchantID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Bread", out[0].ListingTitle)
	assert.Equal(t, "12 Main St, Lagos", out[0].ListingLocation)
	assert.Equal(t, "Ada Obi", out[0].RequesterFullName)
	assert.Equal(t, "ada@example.com", out[0].RequesterEmail)

	// Another merchant sees nothing
	out, err = svc.GetMerchantRequests(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestGetUserRequests_OwnOnly(t *testing.T) {
	svc, db := setupRequestsTest(t)
	ctx := context.Background()
	listing := seedListing(t, db, uuid.New(), 10)
	alice := uuid.New()
	bob := uuid.New()

	_, err := svc.CreateRequest(ctx, CreateRequestInput{FoodID: listing.ID, UserID: alice, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.CreateRequest(ctx, CreateRequestInput{FoodID: listing.ID, UserID: bob, Quantity: 2})
	require.NoError(t, err)

	out, err := svc.GetUserRequests(ctx, alice)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, alice, out[0].UserID)
}
