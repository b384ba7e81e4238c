package category

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups products. By convention only the Spice category carries
// subcategories.
type Category struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	Subcategories []string           `bson:"subcategories" json:"subcategories"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type CreateRequest struct {
	Name          string   `json:"name" validate:"required"`
	Subcategories []string `json:"subcategories"`
}

type UpdateRequest struct {
	Name          *string   `json:"name"`
	Subcategories *[]string `json:"subcategories"`
}

// cleanSubcategories trims names, drops empties and removes case-insensitive
// duplicates while keeping the first spelling.
func cleanSubcategories(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, name := range in {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}
