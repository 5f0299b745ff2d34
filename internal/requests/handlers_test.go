package requests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"shareabite-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRequestHandlers(t *testing.T, sessionUserID string) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Listing{}, &domain.Request{}, &domain.RequestEvent{}, &domain.Profile{},
	))

	h := &Handlers{Service: &Service{DB: db}}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id": sessionUserID,
			"role":    "user",
		})
		return c.Next()
	})
	app.Post("/create-request", h.CreateRequest)
	app.Patch("/transition-request", h.TransitionRequest)
	app.Get("/get-user-requests", h.GetUserRequests)
	return app, db
}

func TestCreateRequestHandler_Success(t *testing.T) {
	userID := uuid.New()
	app, db := setupRequestHandlers(t, userID.String())

	listing := &domain.Listing{
		MerchantID: uuid.New(), Title: "Soup", Category: "meals",
		Quantity: 4, AvailableQuantity: 4,
		ExpiryAt:        time.Now().Add(24 * time.Hour),
		PickupTimeStart: "12:00", PickupTimeEnd: "13:00",
		Location: "1 Pot Ln", City: "Lagos",
		Status: domain.ListingStatusAvailable,
	}
	require.NoError(t, db.Create(listing).Error)

	body, _ := json.Marshal(map[string]interface{}{"food_id": listing.ID.String(), "quantity": 2})
	req := httptest.NewRequest("POST", "/create-request", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&out)
	assert.Equal(t, "success", out["status"])
	data, _ := out["data"].(map[string]interface{})
	require.NotNil(t, data)
	assert.Equal(t, "pending", data["status"])
}

func TestCreateRequestHandler_BadFoodID(t *testing.T) {
	app, _ := setupRequestHandlers(t, uuid.New().String())

	body, _ := json.Marshal(map[string]interface{}{"food_id": "nope", "quantity": 1})
	req := httptest.NewRequest("POST", "/create-request", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	body, _ = json.Marshal(map[string]interface{}{"quantity": 1})
	req = httptest.NewRequest("POST", "/create-request", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestTransitionRequestHandler_Conflict(t *testing.T) {
	merchantID := uuid.New()
	app, db := setupRequestHandlers(t, merchantID.String())

	request := &domain.Request{
		FoodID: uuid.New(), UserID: uuid.New(), MerchantID: merchantID,
		Quantity: 1, PickupTime: "12:00 - 13:00", Status: "rejected",
	}
	require.NoError(t, db.Create(request).Error)

	body, _ := json.Marshal(map[string]string{"request_id": request.ID.String(), "status": "approved"})
	req := httptest.NewRequest("PATCH", "/transition-request", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var out map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&out)
	assert.Equal(t, "error", out["status"])
}

func TestTransitionRequestHandler_MissingFields(t *testing.T) {
	app, _ := setupRequestHandlers(t, uuid.New().String())

	body, _ := json.Marshal(map[string]string{"request_id": uuid.New().String()})
	req := httptest.NewRequest("PATCH", "/transition-request", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestGetUserRequestsHandler_NoSession(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Request{}))

	h := &Handlers{Service: &Service{DB: db}}
	app := fiber.New()
	app.Get("/get-user-requests", h.GetUserRequests)

	resp, err := app.Test(httptest.NewRequest("GET", "/get-user-requests", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
