package auth

import "shareabite-backend/internal/pkg/apperrors"

var (
	ErrEmailPasswordRequired = &apperrors.AuthError{Msg: "Email and password are required"}
	ErrInvalidEmail          = &apperrors.AuthError{Msg: "Invalid Email"}
	ErrIncorrectPassword     = &apperrors.AuthError{Msg: "Incorrect Password"}
	ErrNotAuthenticated      = &apperrors.AuthError{Msg: "Not authenticated"}
)
