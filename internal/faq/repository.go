package faq

import (
	"context"
	"errors"

	"spice-catalog-backend/internal/memstore"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("faq not found")

type Repository interface {
	Create(ctx context.Context, f *Faq) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Faq, error)
	List(ctx context.Context) ([]Faq, error)
	Replace(ctx context.Context, f *Faq) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

func NewRepository(db *mongo.Database) Repository {
	if db == nil {
		return &memoryRepository{store: memstore.New(func(f *Faq) *primitive.ObjectID { return &f.ID })}
	}
	return &mongoRepository{coll: db.Collection("faqs")}
}

type memoryRepository struct {
	store *memstore.Store[Faq]
}

func (r *memoryRepository) Create(_ context.Context, f *Faq) error {
	*f = r.store.Insert(*f)
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id primitive.ObjectID) (*Faq, error) {
	f, ok := r.store.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &f, nil
}

// List returns FAQs oldest first, the order they are shown on the site.
func (r *memoryRepository) List(context.Context) ([]Faq, error) {
	faqs := r.store.Filter(nil)
	for i, j := 0, len(faqs)-1; i < j; i, j = i+1, j-1 {
		faqs[i], faqs[j] = faqs[j], faqs[i]
	}
	return faqs, nil
}

func (r *memoryRepository) Replace(_ context.Context, f *Faq) error {
	_, found, _ := r.store.Update(f.ID, func(stored *Faq) error {
		*stored = *f
		return nil
	})
	if !found {
		return ErrNotFound
	}
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	if !r.store.Delete(id) {
		return ErrNotFound
	}
	return nil
}

type mongoRepository struct {
	coll *mongo.Collection
}

func (r *mongoRepository) Create(ctx context.Context, f *Faq) error {
	res, err := r.coll.InsertOne(ctx, f)
	if err != nil {
		return err
	}
	f.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Faq, error) {
	var f Faq
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *mongoRepository) List(ctx context.Context) ([]Faq, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	faqs := []Faq{}
	if err := cur.All(ctx, &faqs); err != nil {
		return nil, err
	}
	return faqs, nil
}

func (r *mongoRepository) Replace(ctx context.Context, f *Faq) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": f.ID}, f)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
