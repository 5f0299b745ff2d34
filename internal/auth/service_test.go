package auth

import (
	"context"
	"testing"

	"shareabite-backend/internal/domain"
	"shareabite-backend/internal/pkg/apperrors"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Profile{}, &domain.UserRole{}))
	return &Service{DB: db}, db
}

func TestVerifyUser_Nil(t *testing.T) {
	u, err := VerifyUser(nil)
	assert.Nil(t, u)
	assert.Equal(t, ErrNotAuthenticated, err)
}

func TestVerifyUser_NoUserID(t *testing.T) {
	u, err := VerifyUser(map[string]interface{}{
		"full_name": "Test",
		"email":     "a@b.com",
	})
	assert.Nil(t, u)
	assert.Equal(t, ErrNotAuthenticated, err)
}

func TestVerifyUser_Valid(t *testing.T) {
	u, err := VerifyUser(map[string]interface{}{
		"user_id":   "550e8400-e29b-41d4-a716-446655440000",
		"full_name": "Test User",
		"email":     "test@example.com",
		"role":      "merchant",
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", u.UserID)
	assert.Equal(t, "Test User", u.FullName)
	assert.Equal(t, "merchant", u.Role)
}

func TestRegister_CreatesAllThreeRows(t *testing.T) {
	svc, db := setupAuthService(t)

	authed, err := svc.Register(context.Background(), RegisterInput{
		Email:    "Ada@Example.com",
		Password: "Pass123!word",
		FullName: "  ada   obi ",
		Role:     "merchant",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", authed.User.Email)
	assert.Equal(t, "Ada Obi", authed.FullName)
	assert.Equal(t, "merchant", authed.Role)

	var role domain.UserRole
	require.NoError(t, db.Where("user_id = ?", authed.User.UserID).First(&role).Error)
	assert.Equal(t, "merchant", role.Role)
	var profile domain.Profile
	require.NoError(t, db.Where("user_id = ?", authed.User.UserID).First(&profile).Error)
	assert.Equal(t, "Ada Obi", profile.FullName)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := setupAuthService(t)
	ctx := context.Background()
	var valErr *apperrors.ValidationError

	cases := []RegisterInput{
		{Email: "not-an-email", Password: "Pass123!word", FullName: "Ada Obi", Role: "user"},
		{Email: "a@b.com", Password: "short", FullName: "Ada Obi", Role: "user"},
		{Email: "a@b.com", Password: "Pass123!word", FullName: "", Role: "user"},
		{Email: "a@b.com", Password: "Pass123!word", FullName: "Ada Obi", Role: "admin"},
		{Email: "a@b.com", Password: "Pass123!word", FullName: "Ada Obi", Role: "superuser"},
	}
	for _, in := range cases {
		_, err := svc.Register(ctx, in)
		require.ErrorAs(t, err, &valErr, "%+v", in)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := setupAuthService(t)
	ctx := context.Background()

	in := RegisterInput{Email: "dup@example.com", Password: "Pass123!word", FullName: "First User", Role: "user"}
	_, err := svc.Register(ctx, in)
	require.NoError(t, err)

	in.FullName = "Second User"
	_, err = svc.Register(ctx, in)
	var valErr *apperrors.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Error(), "already registered")
}

func TestFindByEmailAndPassword(t *testing.T) {
	svc, db := setupAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{
		Email: "login@example.com", Password: "Pass123!word", FullName: "Log In", Role: "user",
	})
	require.NoError(t, err)

	authed, err := svc.FindByEmailAndPassword("login@example.com", "Pass123!word")
	require.NoError(t, err)
	assert.Equal(t, "Log In", authed.FullName)
	assert.Equal(t, "user", authed.Role)

	_, err = svc.FindByEmailAndPassword("login@example.com", "wrongpass")
	assert.Equal(t, ErrIncorrectPassword, err)

	_, err = svc.FindByEmailAndPassword("missing@example.com", "Pass123!word")
	assert.Equal(t, ErrInvalidEmail, err)

	_, err = svc.FindByEmailAndPassword("", "")
	assert.Equal(t, ErrEmailPasswordRequired, err)

	// Account without a role assignment is treated as broken
	require.NoError(t, db.Where("role = ?", "user").Delete(&domain.UserRole{}).Error)
	_, err = svc.FindByEmailAndPassword("login@example.com", "Pass123!word")
	assert.Equal(t, ErrNotAuthenticated, err)
}
