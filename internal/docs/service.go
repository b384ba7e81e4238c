package docs

import (
	"context"
	"errors"
	"time"

	"spice-catalog-backend/internal/apperr"
	"spice-catalog-backend/internal/database"
	"spice-catalog-backend/internal/validate"

	"go.mongodb.org/mongo-driver/bson/primitive"
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
		log:  log.Named("documentation.service"),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Document, error) {
	req.normalize()
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = StatusActive
	}
	now := s.now()
	d := &Document{Title: req.Title, Image: req.Image, Status: status, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	s.log.Info("document created", zap.String("document_id", d.ID.Hex()))
	return d, nil
}

// List forces the active filter for callers without admin access.
func (s *Service) List(ctx context.Context, status Status, admin bool) ([]Document, error) {
	if !admin {
		status = StatusActive
	} else if status != "" && !status.Valid() {
		return nil, apperr.Validation("status must be one of: active, inactive")
	}
	return s.repo.List(ctx, status)
}

func (s *Service) Get(ctx context.Context, rawID string, admin bool) (*Document, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if !admin && d.Status != StatusActive {
		return nil, apperr.NotFound("Document")
	}
	return d, nil
}

func (s *Service) Update(ctx context.Context, rawID string, req UpdateRequest) (*Document, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	d, err := s.repo.Update(ctx, id, req.changes(), s.now())
	if err != nil {
		return nil, notFound(err)
	}
	return d, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.log.Info("document deleted", zap.String("document_id", id.Hex()))
	return nil
}

func parseID(raw string) (primitive.ObjectID, error) {
	id, ok := database.ParseID(raw)
	if !ok {
		return id, apperr.NotFound("Document")
	}
	return id, nil
}

func notFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound("Document")
	}
	return err
}
