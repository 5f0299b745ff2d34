package response

import (
	"errors"

	"shareabite-backend/internal/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
)

// SuccessBody is the standardized success JSON shape.
type SuccessBody struct {
	Status   string      `json:"status"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data"`
	Metadata interface{} `json:"metadata,omitempty"`
}

// ErrorBody is the standardized error JSON shape.
type ErrorBody struct {
	Status string      `json:"status"`
	Error  ErrorDetail `json:"error"`
}

// ErrorDetail is the nested error object.
type ErrorDetail struct {
	Message    string      `json:"message"`
	StatusCode int         `json:"statusCode"`
	Details    interface{} `json:"details,omitempty"`
}

// Pagination is the metadata shape for paginated list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

const statusSuccess = "success"
const statusError = "error"

// Success sends a 200 OK response with the standard success format.
func Success(c *fiber.Ctx, message string, data interface{}, metadata interface{}) error {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return c.Status(fiber.StatusOK).JSON(SuccessBody{
		Status:   statusSuccess,
		Message:  message,
		Data:     data,
		Metadata: metadata,
	})
}

// SuccessCreated sends a 201 Created response with the standard success format.
func SuccessCreated(c *fiber.Ctx, message string, data interface{}, metadata interface{}) error {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return c.Status(fiber.StatusCreated).JSON(SuccessBody{
		Status:   statusSuccess,
		Message:  message,
		Data:     data,
		Metadata: metadata,
	})
}

// Error sends a response with the standard error format.
func Error(c *fiber.Ctx, message string, statusCode int, details interface{}) error {
	if details == nil {
		details = map[string]interface{}{}
	}
	return c.Status(statusCode).JSON(ErrorBody{
		Status: statusError,
		Error: ErrorDetail{
			Message:    message,
			StatusCode: statusCode,
			Details:    details,
		},
	})
}

// Unauthorized sends 401 with the same shape as other errors.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusUnauthorized, nil)
}

// FromError maps the error taxonomy to HTTP status codes and sends the
// standard error envelope. Unknown errors are treated as opaque backend
// failures and surfaced as 500 without their message.
func FromError(c *fiber.Ctx, err error) error {
	var (
		valErr   *apperrors.ValidationError
		authErr  *apperrors.AuthError
		transErr *apperrors.InvalidTransitionError
		nfErr    *apperrors.NotFoundError
		fbErr    *apperrors.ForbiddenError
	)
	switch {
	case errors.As(err, &valErr):
		return Error(c, valErr.Error(), fiber.StatusBadRequest, nil)
	case errors.As(err, &authErr):
		return Error(c, authErr.Error(), fiber.StatusUnauthorized, nil)
	case errors.As(err, &transErr):
		return Error(c, transErr.Error(), fiber.StatusConflict, nil)
	case errors.As(err, &nfErr):
		return Error(c, nfErr.Error(), fiber.StatusNotFound, nil)
	case errors.As(err, &fbErr):
		return Error(c, fbErr.Error(), fiber.StatusForbidden, nil)
	default:
		return Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
}
