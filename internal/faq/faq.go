package faq

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Faq struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Question  string             `bson:"question" json:"question"`
	Answer    string             `bson:"answer" json:"answer"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Request struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

func (r *Request) normalize() {
	r.Question = strings.TrimSpace(r.Question)
	r.Answer = strings.TrimSpace(r.Answer)
}

// UpdateRequest changes only the non-empty fields.
type UpdateRequest struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
}

func (r UpdateRequest) apply(f *Faq) bool {
	changed := false
	if r.Question != nil {
		if v := strings.TrimSpace(*r.Question); v != "" {
			f.Question = v
			changed = true
		}
	}
	if r.Answer != nil {
		if v := strings.TrimSpace(*r.Answer); v != "" {
			f.Answer = v
			changed = true
		}
	}
	return changed
}
