package auth

import (
	"context"
	"strings"
	"unicode"

	"shareabite-backend/internal/constants"
	"shareabite-backend/internal/domain"
	"shareabite-backend/internal/pkg/apperrors"
	"shareabite-backend/internal/pkg/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthedUser is the resolved identity: credential row plus profile and role.
type AuthedUser struct {
	User     domain.User
	FullName string
	Role     string
}

// SessionUserShape is the object stored in session and returned by /me.
type SessionUserShape struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// UserFinder abstracts credential lookup (GORM in production, doubles in tests).
type UserFinder interface {
	FindByEmailAndPassword(email, password string) (*AuthedUser, error)
}

// Service implements registration and login over users/profiles/user_roles.
type Service struct {
	DB *gorm.DB
}

var _ UserFinder = (*Service)(nil)

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Register creates the credential row, profile, and role assignment in one
// transaction. The role is fixed at this point and never changes; admin is
// not self-assignable.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthedUser, error) {
	if in.Email == "" || !validation.IsValidEmail(in.Email) {
		return nil, apperrors.Validation("Invalid email format")
	}
	if in.Password == "" || !validation.IsValidPassword(in.Password) {
		return nil, apperrors.Validation("Invalid password format")
	}
	trimmed := strings.TrimSpace(in.FullName)
	if trimmed == "" || !validation.IsValidFullName(trimmed) {
		return nil, apperrors.Validation("Full name is required (letters, spaces, hyphens, and apostrophes only)")
	}
	if !constants.IsSelfAssignableRole(in.Role) {
		return nil, apperrors.Validation("Role must be one of: user, merchant")
	}

	email := strings.TrimSpace(strings.ToLower(in.Email))
	fullName := titleCaseAndNormalize(trimmed)

	var existing domain.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, apperrors.Validation("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 10)
	if err != nil {
		return nil, err
	}

	u := &domain.User{Email: email, PasswordHash: string(hash)}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		if err := tx.Create(&domain.Profile{UserID: u.UserID, FullName: fullName, Email: email}).Error; err != nil {
			return err
		}
		return tx.Create(&domain.UserRole{UserID: u.UserID, Role: in.Role}).Error
	})
	if err != nil {
		return nil, err
	}
	return &AuthedUser{User: *u, FullName: fullName, Role: in.Role}, nil
}

// FindByEmailAndPassword verifies credentials and loads profile + role.
func (s *Service) FindByEmailAndPassword(email, password string) (*AuthedUser, error) {
	if email == "" || password == "" {
		return nil, ErrEmailPasswordRequired
	}
	var u domain.User
	if err := s.DB.Where("email = ?", strings.ToLower(email)).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvalidEmail
		}
		return nil, err
	}
	if u.PasswordHash == "" {
		return nil, ErrInvalidEmail
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrIncorrectPassword
	}

	out := &AuthedUser{User: u}
	var profile domain.Profile
	if err := s.DB.Where("user_id = ?", u.UserID).First(&profile).Error; err == nil {
		out.FullName = profile.FullName
	}
	var role domain.UserRole
	if err := s.DB.Where("user_id = ?", u.UserID).First(&role).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// Identity without a role assignment cannot be dispatched to
			// any dashboard; treat as a broken account.
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}
	out.Role = role.Role
	return out, nil
}

// VerifyUser validates the session user map and returns the shape for /me.
func VerifyUser(sessionUser interface{}) (*SessionUserShape, error) {
	if sessionUser == nil {
		return nil, ErrNotAuthenticated
	}
	m, ok := sessionUser.(map[string]interface{})
	if !ok {
		return nil, ErrNotAuthenticated
	}
	userID, _ := m["user_id"].(string)
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	return &SessionUserShape{
		UserID:   userID,
		FullName: str(m["full_name"]),
		Email:    str(m["email"]),
		Role:     str(m["role"]),
	}, nil
}

func str(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func titleCaseAndNormalize(s string) string {
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
