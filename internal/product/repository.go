package product

import (
	"context"
	"errors"
	"strings"

	"spice-catalog-backend/internal/memstore"
	"spice-catalog-backend/internal/pagination"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("product not found")

type Repository interface {
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Product, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]Product, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, patch *Patch) (*Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// NewRepository picks the MongoDB repository, or the memory one when db is nil.
func NewRepository(db *mongo.Database) Repository {
	if db == nil {
		return NewMemoryRepository()
	}
	return NewMongoRepository(db)
}

type MemoryRepository struct {
	store *memstore.Store[Product]
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		store: memstore.New(func(p *Product) *primitive.ObjectID { return &p.ID }),
	}
}

func (r *MemoryRepository) Create(_ context.Context, p *Product) error {
	*p = r.store.Insert(*p)
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id primitive.ObjectID) (*Product, error) {
	p, ok := r.store.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) List(_ context.Context, filter ListFilter, page pagination.Params) ([]Product, int64, error) {
	matched := r.store.Filter(func(p *Product) bool {
		if filter.Status != "" && p.Status != filter.Status {
			return false
		}
		return filter.Category == "" || strings.EqualFold(p.Category, filter.Category)
	})
	start, end := page.Window(len(matched))
	return matched[start:end], int64(len(matched)), nil
}

func (r *MemoryRepository) Update(_ context.Context, id primitive.ObjectID, patch *Patch) (*Product, error) {
	p, found, _ := r.store.Update(id, func(p *Product) error {
		patch.Apply(p)
		return nil
	})
	if !found {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	if !r.store.Delete(id) {
		return ErrNotFound
	}
	return nil
}
