package catalog

import (
	"context"

	"shareabite-backend/internal/domain"
	"shareabite-backend/internal/pkg/response"

	"gorm.io/gorm"
)

// Service serves the public catalog: the read-only view users browse.
type Service struct {
	DB *gorm.DB
}

const (
	defaultPerPage = 6
	maxPerPage     = 50
)

type BrowseInput struct {
	City     string
	Category string
	Page     int
	PerPage  int
}

// Browse returns available listings with stock, newest first. Archived
// listings and zero-availability listings never appear, whatever their
// other fields say. Pagination happens in the query, not on a fetched
// slice, with the total reported in metadata.
func (s *Service) Browse(ctx context.Context, in BrowseInput) ([]domain.Listing, *response.Pagination, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	perPage := in.PerPage
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	q := s.DB.WithContext(ctx).Model(&domain.Listing{}).
		Where("status = ? AND available_quantity > ?", domain.ListingStatusAvailable, 0)
	if in.City != "" {
		q = q.Where("city = ?", in.City)
	}
	if in.Category != "" {
		q = q.Where("category = ?", in.Category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var listings []domain.Listing
	if err := q.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&listings).Error; err != nil {
		return nil, nil, err
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	return listings, &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}
