package flag

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Flag is a destination country shown in the export map.
type Flag struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	ImageURL  string             `bson:"imageUrl" json:"imageUrl"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Request struct {
	Name     string `json:"name" validate:"required"`
	ImageURL string `json:"imageUrl" validate:"required"`
}

func (r *Request) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
}

type UpdateRequest struct {
	Name     *string `json:"name"`
	ImageURL *string `json:"imageUrl"`
}

func (r UpdateRequest) apply(f *Flag) bool {
	changed := false
	for _, field := range []struct {
		value *string
		dst   *string
	}{
		{r.Name, &f.Name},
		{r.ImageURL, &f.ImageURL},
	} {
		if field.value == nil {
			continue
		}
		if v := strings.TrimSpace(*field.value); v != "" {
			*field.dst = v
			changed = true
		}
	}
	return changed
}
