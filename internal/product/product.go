package product

import (
	"strings"
	"time"

	"spice-catalog-backend/internal/pagination"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

type Product struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title                string             `bson:"title" json:"title"`
	Category             string             `bson:"category" json:"category"`
	Subcategory          string             `bson:"subcategory,omitempty" json:"subcategory,omitempty"`
	Description          string             `bson:"description" json:"description"`
	Origin               string             `bson:"origin" json:"origin"`
	BiologicalBackground string             `bson:"biologicalBackground" json:"biologicalBackground"`
	Usage                string             `bson:"usage" json:"usage"`
	KeyCharacteristics   string             `bson:"keyCharacteristics" json:"keyCharacteristics"`
	DisplayPhoto         string             `bson:"displayPhoto" json:"displayPhoto"`
	AdditionalPhotos     []string           `bson:"additionalPhotos" json:"additionalPhotos"`
	Status               Status             `bson:"status" json:"status"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type CreateRequest struct {
	Title                string   `json:"title" validate:"required"`
	Category             string   `json:"category" validate:"required"`
	Subcategory          string   `json:"subcategory"`
	Description          string   `json:"description" validate:"required"`
	Origin               string   `json:"origin" validate:"required"`
	BiologicalBackground string   `json:"biologicalBackground" validate:"required"`
	Usage                string   `json:"usage" validate:"required"`
	KeyCharacteristics   string   `json:"keyCharacteristics" validate:"required"`
	DisplayPhoto         string   `json:"displayPhoto" validate:"required"`
	AdditionalPhotos     []string `json:"additionalPhotos"`
	Status               Status   `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (r *CreateRequest) normalize() {
	for _, f := range []*string{
		&r.Title, &r.Category, &r.Subcategory, &r.Description, &r.Origin,
		&r.BiologicalBackground, &r.Usage, &r.KeyCharacteristics, &r.DisplayPhoto,
	} {
		*f = strings.TrimSpace(*f)
	}
	r.AdditionalPhotos = cleanPhotos(r.AdditionalPhotos)
	r.Status = Status(strings.TrimSpace(string(r.Status)))
}

// UpdateRequest is a partial patch. Nil fields are left untouched.
type UpdateRequest struct {
	Title                *string   `json:"title"`
	Category             *string   `json:"category"`
	Subcategory          *string   `json:"subcategory"`
	Description          *string   `json:"description"`
	Origin               *string   `json:"origin"`
	BiologicalBackground *string   `json:"biologicalBackground"`
	Usage                *string   `json:"usage"`
	KeyCharacteristics   *string   `json:"keyCharacteristics"`
	DisplayPhoto         *string   `json:"displayPhoto"`
	AdditionalPhotos     *[]string `json:"additionalPhotos"`
	Status               *Status   `json:"status" validate:"omitnil,oneof=active inactive"`
}

// Patch is the resolved set of field changes applied by a repository.
type Patch struct {
	fields bson.D
	apply  []func(*Product)
}

func (p *Patch) set(key string, value any, apply func(*Product)) {
	p.fields = append(p.fields, bson.E{Key: key, Value: value})
	p.apply = append(p.apply, apply)
}

func (p *Patch) Empty() bool { return len(p.fields) == 0 }

// Apply mutates prod in place.
func (p *Patch) Apply(prod *Product) {
	for _, fn := range p.apply {
		fn(prod)
	}
}

// Set returns the $set document for the patch.
func (p *Patch) Set() bson.D { return p.fields }

// patch resolves the request: text fields change only when non-empty after trimming,
// subcategory and additionalPhotos change whenever present.
func (r UpdateRequest) patch(now time.Time) *Patch {
	p := &Patch{}
	text := []struct {
		key   string
		value *string
		dst   func(*Product) *string
	}{
		{"title", r.Title, func(p *Product) *string { return &p.Title }},
		{"category", r.Category, func(p *Product) *string { return &p.Category }},
		{"description", r.Description, func(p *Product) *string { return &p.Description }},
		{"origin", r.Origin, func(p *Product) *string { return &p.Origin }},
		{"biologicalBackground", r.BiologicalBackground, func(p *Product) *string { return &p.BiologicalBackground }},
		{"usage", r.Usage, func(p *Product) *string { return &p.Usage }},
		{"keyCharacteristics", r.KeyCharacteristics, func(p *Product) *string { return &p.KeyCharacteristics }},
		{"displayPhoto", r.DisplayPhoto, func(p *Product) *string { return &p.DisplayPhoto }},
	}
	for _, t := range text {
		if t.value == nil {
			continue
		}
		v := strings.TrimSpace(*t.value)
		if v == "" {
			continue
		}
		dst := t.dst
		p.set(t.key, v, func(prod *Product) { *dst(prod) = v })
	}

	if r.Subcategory != nil {
		v := strings.TrimSpace(*r.Subcategory)
		p.set("subcategory", v, func(prod *Product) { prod.Subcategory = v })
	}
	if r.AdditionalPhotos != nil {
		photos := cleanPhotos(*r.AdditionalPhotos)
		p.set("additionalPhotos", photos, func(prod *Product) { prod.AdditionalPhotos = photos })
	}
	if r.Status != nil {
		v := *r.Status
		p.set("status", v, func(prod *Product) { prod.Status = v })
	}
	if !p.Empty() {
		p.set("updatedAt", now, func(prod *Product) { prod.UpdatedAt = now })
	}
	return p
}

func cleanPhotos(in []string) []string {
	out := make([]string, 0, len(in))
	for _, photo := range in {
		if photo = strings.TrimSpace(photo); photo != "" {
			out = append(out, photo)
		}
	}
	return out
}

// ListFilter narrows List results. Zero fields match everything.
type ListFilter struct {
	Status   Status
	Category string
}

type ListResult struct {
	Products   []Product       `json:"products"`
	Pagination pagination.Meta `json:"pagination"`
}
