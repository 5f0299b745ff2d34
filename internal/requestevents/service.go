package requestevents

import (
	"context"

	"shareabite-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// GetMerchantRequestEvents returns the workflow trail for every request
// against the merchant's listings, newest first. Events are written by the
// requests module; this is a read-only view.
func (s *Service) GetMerchantRequestEvents(ctx context.Context, merchantID uuid.UUID) ([]domain.RequestEvent, error) {
	var requestIDs []uuid.UUID
	if err := s.DB.WithContext(ctx).Model(&domain.Request{}).
		Where("merchant_id = ?", merchantID).
		Pluck("id", &requestIDs).Error; err != nil {
		return nil, err
	}
	if len(requestIDs) == 0 {
		return []domain.RequestEvent{}, nil
	}

	var events []domain.RequestEvent
	if err := s.DB.WithContext(ctx).Where("request_id IN ?", requestIDs).
		Order("created_at DESC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
