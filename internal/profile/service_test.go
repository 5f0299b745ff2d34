package profile

import (
	"context"
	"testing"

	"shareabite-backend/internal/domain"
	"shareabite-backend/internal/pkg/apperrors"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupProfileTest(t *testing.T) (*Service, *gorm.DB, uuid.UUID) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Profile{}))

	userID := uuid.New()
	require.NoError(t, db.Create(&domain.User{
		UserID: userID, Email: "user@example.com", PasswordHash: "old-hash",
	}).Error)
	require.NoError(t, db.Create(&domain.Profile{
		UserID: userID, FullName: "Old Name", Email: "user@example.com",
	}).Error)
	return &Service{DB: db}, db, userID
}

func TestViewProfile(t *testing.T) {
	svc, _, userID := setupProfileTest(t)

	p, err := svc.ViewProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Old Name", p.FullName)

	_, err = svc.ViewProfile(context.Background(), uuid.New())
	var nfErr *apperrors.NotFoundError
	require.ErrorAs(t, err, &nfErr)
}

func TestUpdateProfile_FullName(t *testing.T) {
	svc, _, userID := setupProfileTest(t)

	name := "  new   name "
	p, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: userID, FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "New Name", p.FullName)

	bad := "robert); DROP--"
	_, err = svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: userID, FullName: &bad})
	var valErr *apperrors.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestUpdateProfile_Password(t *testing.T) {
	svc, db, userID := setupProfileTest(t)

	pw := "NewPass123!"
	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: userID, Password: &pw})
	require.NoError(t, err)

	var u domain.User
	require.NoError(t, db.First(&u, "user_id = ?", userID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(pw)))

	weak := "short"
	_, err = svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: userID, Password: &weak})
	var valErr *apperrors.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestUpdateProfile_NoFields(t *testing.T) {
	svc, _, userID := setupProfileTest(t)

	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: userID})
	var valErr *apperrors.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestUpdateProfile_UnknownUser(t *testing.T) {
	svc, _, _ := setupProfileTest(t)

	name := "Someone Else"
	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: uuid.New(), FullName: &name})
	var nfErr *apperrors.NotFoundError
	require.ErrorAs(t, err, &nfErr)
}
