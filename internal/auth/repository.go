package auth

import (
	"context"
	"errors"
	"time"

	"spice-catalog-backend/internal/memstore"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound       = errors.New("admin not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Repository persists admins. FindByEmail is the only lookup that returns the
// password hash.
type Repository interface {
	Create(ctx context.Context, admin *Admin) error
	FindByEmail(ctx context.Context, email string) (*Admin, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*Admin, error)
	List(ctx context.Context) ([]Admin, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
	SetActive(ctx context.Context, id primitive.ObjectID, active bool, at time.Time) (*Admin, error)
}

// NewRepository picks the MongoDB repository, or the memory one when db is nil.
func NewRepository(db *mongo.Database) Repository {
	if db == nil {
		return NewMemoryRepository()
	}
	return NewMongoRepository(db)
}

type MemoryRepository struct {
	store *memstore.Store[Admin]
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		store: memstore.New(func(a *Admin) *primitive.ObjectID { return &a.ID }),
	}
}

func (r *MemoryRepository) Create(_ context.Context, admin *Admin) error {
	if _, exists := r.store.Find(func(a *Admin) bool { return a.Email == admin.Email }); exists {
		return ErrDuplicateEmail
	}
	*admin = r.store.Insert(*admin)
	return nil
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (*Admin, error) {
	admin, ok := r.store.Find(func(a *Admin) bool { return a.Email == email })
	if !ok {
		return nil, ErrNotFound
	}
	return &admin, nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id primitive.ObjectID) (*Admin, error) {
	admin, ok := r.store.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	admin.Password = ""
	return &admin, nil
}

func (r *MemoryRepository) List(context.Context) ([]Admin, error) {
	admins := r.store.Filter(nil)
	for i := range admins {
		admins[i].Password = ""
	}
	return admins, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	if !r.store.Delete(id) {
		return ErrNotFound
	}
	return nil
}

func (r *MemoryRepository) SetLastLogin(_ context.Context, id primitive.ObjectID, at time.Time) error {
	_, found, _ := r.store.Update(id, func(a *Admin) error {
		a.LastLogin = &at
		a.UpdatedAt = at
		return nil
	})
	if !found {
		return ErrNotFound
	}
	return nil
}

func (r *MemoryRepository) SetActive(_ context.Context, id primitive.ObjectID, active bool, at time.Time) (*Admin, error) {
	admin, found, _ := r.store.Update(id, func(a *Admin) error {
		a.IsActive = active
		a.UpdatedAt = at
		return nil
	})
	if !found {
		return nil, ErrNotFound
	}
	admin.Password = ""
	return &admin, nil
}
