package profile

import (
	"context"
	"strings"
	"unicode"

	"shareabite-backend/internal/domain"
	"shareabite-backend/internal/pkg/apperrors"
	"shareabite-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service owns the profile read/update operations. Email and role are
// immutable after registration; only the display name and password change.
type Service struct {
	DB *gorm.DB
}

func (s *Service) ViewProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	var p domain.Profile
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &apperrors.NotFoundError{Resource: "Profile"}
		}
		return nil, err
	}
	return &p, nil
}

type UpdateProfileInput struct {
	UserID   uuid.UUID
	FullName *string
	Password *string
}

func (s *Service) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*domain.Profile, error) {
	if in.FullName == nil && in.Password == nil {
		return nil, apperrors.Validation("No valid update fields provided")
	}

	if in.FullName != nil {
		trimmed := strings.TrimSpace(*in.FullName)
		if trimmed == "" || !validation.IsValidFullName(trimmed) {
			return nil, apperrors.Validation("Full name contains invalid characters")
		}
		normalized := titleCase(trimmed)
		res := s.DB.WithContext(ctx).Model(&domain.Profile{}).
			Where("user_id = ?", in.UserID).
			Update("full_name", normalized)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, &apperrors.NotFoundError{Resource: "Profile"}
		}
	}

	if in.Password != nil {
		if !validation.IsValidPassword(*in.Password) {
			return nil, apperrors.Validation("Invalid password format")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), 10)
		if err != nil {
			return nil, err
		}
		res := s.DB.WithContext(ctx).Model(&domain.User{}).
			Where("user_id = ?", in.UserID).
			Update("password_hash", string(hash))
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, &apperrors.NotFoundError{Resource: "User"}
		}
	}

	return s.ViewProfile(ctx, in.UserID)
}

func titleCase(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	var b strings.Builder
	capitalize := true
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !capitalize {
				b.WriteRune(' ')
				capitalize = true
			}
			continue
		}
		if capitalize {
			b.WriteRune(unicode.ToUpper(r))
			capitalize = false
		} else {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
