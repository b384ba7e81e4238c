package category

import (
	"context"
	"errors"
	"strings"
	"time"

	"spice-catalog-backend/internal/apperr"
	"spice-catalog-backend/internal/cache"
	"spice-catalog-backend/internal/database"
	"spice-catalog-backend/internal/validate"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	cachePrefix = "categories:"
	listKey     = "list"
	listTTL     = 5 * time.Minute
)

// ListCache stores the rendered category list between writes.
type ListCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

func NewListCache(client *redis.Client) ListCache {
	return cache.NewJSON(client, cachePrefix)
}

type Service struct {
	repo  Repository
	cache ListCache
	log   *zap.Logger
	now   func() time.Time
}

func NewService(repo Repository, listCache ListCache, log *zap.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: listCache,
		log:   log.Named("category.service"),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	var categories []Category
	hit, err := s.cache.Get(ctx, listKey, &categories)
	if err != nil {
		s.log.Warn("category cache read failed", zap.Error(err))
	}
	if hit {
		return categories, nil
	}

	categories, err = s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, listKey, categories, listTTL); err != nil {
		s.log.Warn("category cache write failed", zap.Error(err))
	}
	return categories, nil
}

func (s *Service) Get(ctx context.Context, rawID string) (*Category, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.classify(err)
	}
	return c, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByName(ctx, req.Name); err == nil {
		return nil, duplicateName()
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	now := s.now()
	c := &Category{
		Name:          req.Name,
		Subcategories: cleanSubcategories(req.Subcategories),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, s.classify(err)
	}
	s.invalidate(ctx)
	s.log.Info("category created", zap.String("category_id", c.ID.Hex()), zap.String("name", c.Name))
	return c, nil
}

// Update renames the category and replaces its subcategory list when given.
func (s *Service) Update(ctx context.Context, rawID string, req UpdateRequest) (*Category, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.classify(err)
	}

	changed := false
	if req.Name != nil {
		if name := strings.TrimSpace(*req.Name); name != "" && name != c.Name {
			c.Name = name
			changed = true
		}
	}
	if req.Subcategories != nil {
		c.Subcategories = cleanSubcategories(*req.Subcategories)
		changed = true
	}
	if !changed {
		return c, nil
	}

	c.UpdatedAt = s.now()
	if err := s.repo.Replace(ctx, c); err != nil {
		return nil, s.classify(err)
	}
	s.invalidate(ctx)
	return c, nil
}

// Delete removes the category. Products keep their category string.
func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.classify(err)
	}
	s.invalidate(ctx)
	s.log.Info("category deleted", zap.String("category_id", id.Hex()))
	return nil
}

// Ensure creates the named category when it does not exist yet and reports
// whether it did.
func (s *Service) Ensure(ctx context.Context, name string, subcategories []string) (bool, error) {
	_, err := s.repo.FindByName(ctx, name)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, err
	}
	if _, err := s.Create(ctx, CreateRequest{Name: name, Subcategories: subcategories}); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, listKey); err != nil {
		s.log.Warn("category cache invalidation failed", zap.Error(err))
	}
}

func (s *Service) classify(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return apperr.NotFound("Category")
	case errors.Is(err, ErrDuplicateName):
		return duplicateName()
	}
	return err
}

func parseID(raw string) (primitive.ObjectID, error) {
	id, ok := database.ParseID(raw)
	if !ok {
		return id, apperr.NotFound("Category")
	}
	return id, nil
}

func duplicateName() error {
	return apperr.Conflict(apperr.CodeDuplicate, "Category already exists")
}
