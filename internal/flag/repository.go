package flag

import (
	"context"
	"errors"

	"spice-catalog-backend/internal/memstore"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("flag not found")

type Repository interface {
	Create(ctx context.Context, f *Flag) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Flag, error)
	List(ctx context.Context) ([]Flag, error)
	Replace(ctx context.Context, f *Flag) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

func NewRepository(db *mongo.Database) Repository {
	if db == nil {
		return NewMemoryRepository()
	}
	return NewMongoRepository(db)
}

type MemoryRepository struct {
	store *memstore.Store[Flag]
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: memstore.New(func(f *Flag) *primitive.ObjectID { return &f.ID })}
}

func (r *MemoryRepository) Create(_ context.Context, f *Flag) error {
	*f = r.store.Insert(*f)
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id primitive.ObjectID) (*Flag, error) {
	f, ok := r.store.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &f, nil
}

func (r *MemoryRepository) List(context.Context) ([]Flag, error) {
	return r.store.Filter(nil), nil
}

func (r *MemoryRepository) Replace(_ context.Context, f *Flag) error {
	if _, found, _ := r.store.Update(f.ID, func(stored *Flag) error {
		*stored = *f
		return nil
	}); !found {
		return ErrNotFound
	}
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	if !r.store.Delete(id) {
		return ErrNotFound
	}
	return nil
}
