package category

import (
	"context"
	"errors"
	"slices"
	"strings"

	"spice-catalog-backend/internal/memstore"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound      = errors.New("category not found")
	ErrDuplicateName = errors.New("category name already exists")
)

type Repository interface {
	Create(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Category, error)
	// FindByName matches case-insensitively.
	FindByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	Replace(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

func NewRepository(db *mongo.Database) Repository {
	if db == nil {
		return NewMemoryRepository()
	}
	return NewMongoRepository(db)
}

type MemoryRepository struct {
	store *memstore.Store[Category]
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		store: memstore.New(func(c *Category) *primitive.ObjectID { return &c.ID }),
	}
}

func (r *MemoryRepository) Create(_ context.Context, c *Category) error {
	if _, exists := r.store.Find(func(o *Category) bool { return strings.EqualFold(o.Name, c.Name) }); exists {
		return ErrDuplicateName
	}
	*c = r.store.Insert(*c)
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id primitive.ObjectID) (*Category, error) {
	c, ok := r.store.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *MemoryRepository) FindByName(_ context.Context, name string) (*Category, error) {
	c, ok := r.store.Find(func(o *Category) bool { return strings.EqualFold(o.Name, name) })
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

// List orders categories by name.
func (r *MemoryRepository) List(context.Context) ([]Category, error) {
	categories := r.store.Filter(nil)
	slices.SortStableFunc(categories, func(a, b Category) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return categories, nil
}

func (r *MemoryRepository) Replace(_ context.Context, c *Category) error {
	_, clash := r.store.Find(func(o *Category) bool {
		return o.ID != c.ID && strings.EqualFold(o.Name, c.Name)
	})
	if clash {
		return ErrDuplicateName
	}
	_, found, _ := r.store.Update(c.ID, func(stored *Category) error {
		*stored = *c
		return nil
	})
	if !found {
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
