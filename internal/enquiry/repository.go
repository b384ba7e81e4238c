package enquiry

import (
	"context"
	"errors"
	"time"

	"spice-catalog-backend/internal/memstore"
	"spice-catalog-backend/internal/pagination"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("enquiry not found")

type Repository interface {
	Create(ctx context.Context, e *Enquiry) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Enquiry, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]Enquiry, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status Status, at time.Time) (*Enquiry, error)
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
	store *memstore.Store[Enquiry]
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		store: memstore.New(func(e *Enquiry) *primitive.ObjectID { return &e.ID }),
	}
}

func (r *MemoryRepository) Create(_ context.Context, e *Enquiry) error {
	*e = r.store.Insert(*e)
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id primitive.ObjectID) (*Enquiry, error) {
	e, ok := r.store.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (r *MemoryRepository) List(_ context.Context, filter ListFilter, page pagination.Params) ([]Enquiry, int64, error) {
	matched := r.store.Filter(func(e *Enquiry) bool {
		return (filter.Type == "" || e.Type == filter.Type) &&
			(filter.Status == "" || e.Status == filter.Status)
	})
	start, end := page.Window(len(matched))
	return matched[start:end], int64(len(matched)), nil
}

func (r *MemoryRepository) UpdateStatus(_ context.Context, id primitive.ObjectID, status Status, at time.Time) (*Enquiry, error) {
	e, found, _ := r.store.Update(id, func(e *Enquiry) error {
		e.Status = status
		e.UpdatedAt = at
		return nil
	})
	if !found {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	if !r.store.Delete(id) {
		return ErrNotFound
	}
	return nil
}
