package docs

import (
	"strings"
	"time"

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

// Document is a certificate or compliance record shown on the public site.
type Document struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title     string             `bson:"title" json:"title"`
	Image     string             `bson:"image" json:"image"`
	Status    Status             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type CreateRequest struct {
	Title  string `json:"title" validate:"required"`
	Image  string `json:"image" validate:"required"`
	Status Status `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (r *CreateRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Image = strings.TrimSpace(r.Image)
	r.Status = Status(strings.TrimSpace(string(r.Status)))
}

type UpdateRequest struct {
	Title  *string `json:"title"`
	Image  *string `json:"image"`
	Status *Status `json:"status" validate:"omitnil,oneof=active inactive"`
}

// Changes holds the resolved fields of an update. Nil fields are left untouched.
type Changes struct {
	Title  *string
	Image  *string
	Status *Status
}

func (c Changes) Empty() bool {
	return c.Title == nil && c.Image == nil && c.Status == nil
}

func (c Changes) apply(d *Document) {
	if c.Title != nil {
		d.Title = *c.Title
	}
	if c.Image != nil {
		d.Image = *c.Image
	}
	if c.Status != nil {
		d.Status = *c.Status
	}
}

func (r UpdateRequest) changes() Changes {
	var c Changes
	if v := trimmed(r.Title); v != "" {
		c.Title = &v
	}
	if v := trimmed(r.Image); v != "" {
		c.Image = &v
	}
	if r.Status != nil {
		c.Status = r.Status
	}
	return c
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
