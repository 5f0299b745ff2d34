package admin

import (
	"context"

	"shareabite-backend/internal/constants"
	"shareabite-backend/internal/domain"
	"shareabite-backend/internal/pkg/response"

	"gorm.io/gorm"
)

// Service serves the read-only aggregate views. No mutation path exists
// here: everything is a projection over the other modules' tables.
type Service struct {
	DB *gorm.DB
}

// Overview is the platform activity summary.
type Overview struct {
	Users     int64 `json:"users"`
	Merchants int64 `json:"merchants"`
	Listings  int64 `json:"listings"`
	Requests  int64 `json:"requests"`
}

func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	var out Overview
	db := s.DB.WithContext(ctx)
	if err := db.Model(&domain.UserRole{}).Where("role = ?", constants.RoleUser).Count(&out.Users).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.UserRole{}).Where("role = ?", constants.RoleMerchant).Count(&out.Merchants).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Listing{}).Count(&out.Listings).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Request{}).Count(&out.Requests).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

type PageInput struct {
	Page    int
	PerPage int
}

const (
	defaultPerPage = 5
	maxPerPage     = 100
)

func (p *PageInput) normalize() (page, perPage int) {
	page = p.Page
	if page < 1 {
		page = 1
	}
	perPage = p.PerPage
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

// ListListings pages all listings regardless of status, newest first.
func (s *Service) ListListings(ctx context.Context, in PageInput) ([]domain.Listing, *response.Pagination, error) {
	var items []domain.Listing
	meta, err := s.paged(ctx, &domain.Listing{}, in, &items)
	return items, meta, err
}

// ListRequests pages all requests, newest first.
func (s *Service) ListRequests(ctx context.Context, in PageInput) ([]domain.Request, *response.Pagination, error) {
	var items []domain.Request
	meta, err := s.paged(ctx, &domain.Request{}, in, &items)
	return items, meta, err
}

// ListProfiles pages all profiles, newest first.
func (s *Service) ListProfiles(ctx context.Context, in PageInput) ([]domain.Profile, *response.Pagination, error) {
	var items []domain.Profile
	meta, err := s.paged(ctx, &domain.Profile{}, in, &items)
	return items, meta, err
}

func (s *Service) paged(ctx context.Context, model interface{}, in PageInput, dest interface{}) (*response.Pagination, error) {
	page, perPage := in.normalize()
	q := s.DB.WithContext(ctx).Model(model)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}
	if err := q.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(dest).Error; err != nil {
		return nil, err
	}
	return &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: int((total + int64(perPage) - 1) / int64(perPage)),
	}, nil
}
