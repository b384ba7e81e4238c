package docs

import (
	"context"
	"errors"
	"time"

	"spice-catalog-backend/internal/memstore"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("document not found")

type Repository interface {
	Create(ctx context.Context, d *Document) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Document, error)
	// List returns documents newest first. An empty status matches all.
	List(ctx context.Context, status Status) ([]Document, error)
	Update(ctx context.Context, id primitive.ObjectID, changes Changes, at time.Time) (*Document, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

func NewRepository(db *mongo.Database) Repository {
	if db == nil {
		return NewMemoryRepository()
	}
	return NewMongoRepository(db)
}

type MemoryRepository struct {
	store *memstore.Store[Document]
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		store: memstore.New(func(d *Document) *primitive.ObjectID { return &d.ID }),
	}
}

func (r *MemoryRepository) Create(_ context.Context, d *Document) error {
	*d = r.store.Insert(*d)
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id primitive.ObjectID) (*Document, error) {
	d, ok := r.store.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (r *MemoryRepository) List(_ context.Context, status Status) ([]Document, error) {
	return r.store.Filter(func(d *Document) bool {
		return status == "" || d.Status == status
	}), nil
}

func (r *MemoryRepository) Update(_ context.Context, id primitive.ObjectID, changes Changes, at time.Time) (*Document, error) {
	d, found, _ := r.store.Update(id, func(d *Document) error {
		changes.apply(d)
		if !changes.Empty() {
			d.UpdatedAt = at
		}
		return nil
	})
	if !found {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	if !r.store.Delete(id) {
		return ErrNotFound
	}
	return nil
}
