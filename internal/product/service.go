package product

import (
	"context"
	"errors"
	"strings"
	"time"

	"spice-catalog-backend/internal/apperr"
	"spice-catalog-backend/internal/database"
	"spice-catalog-backend/internal/pagination"
	"spice-catalog-backend/internal/validate"

	"go.uber.org/zap"
)

type Service struct {
	repo Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *zap.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.Named("product.service"),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Product, error) {
	req.normalize()
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = StatusActive
	}
	now := s.now()
	p := &Product{
		Title:                req.Title,
		Category:             req.Category,
		Subcategory:          req.Subcategory,
		Description:          req.Description,
		Origin:               req.Origin,
		BiologicalBackground: req.BiologicalBackground,
		Usage:                req.Usage,
		KeyCharacteristics:   req.KeyCharacteristics,
		DisplayPhoto:         req.DisplayPhoto,
		AdditionalPhotos:     req.AdditionalPhotos,
		Status:               status,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("product created", zap.String("product_id", p.ID.Hex()), zap.String("category", p.Category))
	return p, nil
}

// List returns one page of products. Callers without admin access only see
// active products regardless of the requested status.
func (s *Service) List(ctx context.Context, filter ListFilter, page pagination.Params, admin bool) (*ListResult, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	if !admin {
		filter.Status = StatusActive
	} else if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperr.Validation("status must be one of: active, inactive")
	}

	products, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	return &ListResult{Products: products, Pagination: page.Meta(total)}, nil
}

// Get hides inactive products from callers without admin access.
func (s *Service) Get(ctx context.Context, rawID string, admin bool) (*Product, error) {
	id, ok := database.ParseID(rawID)
	if !ok {
		return nil, apperr.NotFound("Product")
	}
	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("Product")
	}
	if err != nil {
		return nil, err
	}
	if !admin && p.Status != StatusActive {
		return nil, apperr.NotFound("Product")
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, rawID string, req UpdateRequest) (*Product, error) {
	id, ok := database.ParseID(rawID)
	if !ok {
		return nil, apperr.NotFound("Product")
	}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	p, err := s.repo.Update(ctx, id, req.patch(s.now()))
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("Product")
	}
	if err != nil {
		return nil, err
	}
	s.log.Info("product updated", zap.String("product_id", p.ID.Hex()))
	return p, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, ok := database.ParseID(rawID)
	if !ok {
		return apperr.NotFound("Product")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Product")
		}
		return err
	}
	s.log.Info("product deleted", zap.String("product_id", id.Hex()))
	return nil
}
