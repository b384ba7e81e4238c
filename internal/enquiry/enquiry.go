package enquiry

import (
	"encoding/json"
	"strings"
	"time"

	"spice-catalog-backend/internal/pagination"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Type string

const (
	TypeGeneral  Type = "general"
	TypeProduct  Type = "product"
	TypeSupplier Type = "supplier"
	TypeBuyer    Type = "buyer"
)

func (t Type) Valid() bool {
	switch t {
	case TypeGeneral, TypeProduct, TypeSupplier, TypeBuyer:
		return true
	}
	return false
}

type Status string

const (
	StatusPending Status = "pending"
	StatusRead    Status = "read"
	StatusReplied Status = "replied"
	StatusClosed  Status = "closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusRead, StatusReplied, StatusClosed:
		return true
	}
	return false
}

// Supplier holds the fields of a supplier enquiry.
type Supplier struct {
	Company        string   `bson:"company,omitempty" json:"company,omitempty"`
	CompanyWebsite string   `bson:"companyWebsite,omitempty" json:"companyWebsite,omitempty"`
	Certifications string   `bson:"certifications,omitempty" json:"certifications,omitempty"`
	Categories     []string `bson:"categories,omitempty" json:"categories,omitempty"`
}

// Buyer holds the fields of a buyer enquiry.
type Buyer struct {
	YearsInBusiness    string   `bson:"yearsInBusiness,omitempty" json:"yearsInBusiness,omitempty"`
	AnticipatedVolume  string   `bson:"anticipatedVolume,omitempty" json:"anticipatedVolume,omitempty"`
	DistributionModel  string   `bson:"distributionModel,omitempty" json:"distributionModel,omitempty"`
	ProductsOfInterest []string `bson:"productsOfInterest,omitempty" json:"productsOfInterest,omitempty"`
}

// Enquiry is a lead submitted from the public site. At most one of Supplier and
// Buyer is set, matching Type.
type Enquiry struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Name        string              `bson:"name" json:"name"`
	Email       string              `bson:"email" json:"email"`
	Phone       string              `bson:"phone,omitempty" json:"phone,omitempty"`
	Message     string              `bson:"message" json:"message"`
	Type        Type                `bson:"type" json:"type"`
	ProductID   *primitive.ObjectID `bson:"productId,omitempty" json:"productId,omitempty"`
	ProductName string              `bson:"productName,omitempty" json:"productName,omitempty"`
	Supplier    *Supplier           `bson:"supplier,omitempty" json:"supplier,omitempty"`
	Buyer       *Buyer              `bson:"buyer,omitempty" json:"buyer,omitempty"`
	Status      Status              `bson:"status" json:"status"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// ProductSummary is the product projection attached to an enquiry detail.
type ProductSummary struct {
	ID           primitive.ObjectID `json:"_id"`
	Title        string             `json:"title"`
	DisplayPhoto string             `json:"displayPhoto"`
	Category     string             `json:"category"`
}

// Detail is an enquiry with its referenced product resolved. Product is nil when the
// enquiry has no product or the product was deleted.
type Detail struct {
	Enquiry
	Product *ProductSummary `json:"product"`
}

// StringList accepts either a JSON array or a comma separated string.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*l = strings.Split(joined, ",")
	return nil
}

// CreateRequest is the flat public form payload.
type CreateRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	Message     string `json:"message" validate:"required"`
	Type        Type   `json:"type" validate:"omitempty,oneof=general product supplier buyer"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`

	Company        string     `json:"company"`
	CompanyWebsite string     `json:"companyWebsite"`
	Certifications string     `json:"certifications"`
	Categories     StringList `json:"categories"`

	YearsInBusiness    string     `json:"yearsInBusiness"`
	AnticipatedVolume  string     `json:"anticipatedVolume"`
	DistributionModel  string     `json:"distributionModel"`
	ProductsOfInterest StringList `json:"productsOfInterest"`
}

func (r *CreateRequest) normalize() {
	for _, f := range []*string{
		&r.Name, &r.Email, &r.Phone, &r.Message, &r.ProductID, &r.ProductName,
		&r.Company, &r.CompanyWebsite, &r.Certifications,
		&r.YearsInBusiness, &r.AnticipatedVolume, &r.DistributionModel,
	} {
		*f = strings.TrimSpace(*f)
	}
	r.Email = strings.ToLower(r.Email)
	r.Type = Type(strings.ToLower(strings.TrimSpace(string(r.Type))))
}

// supplier returns nil when no supplier field was provided.
func (r *CreateRequest) supplier() *Supplier {
	s := &Supplier{
		Company:        r.Company,
		CompanyWebsite: r.CompanyWebsite,
		Certifications: r.Certifications,
		Categories:     compact(r.Categories),
	}
	if s.Company == "" && s.CompanyWebsite == "" && s.Certifications == "" && len(s.Categories) == 0 {
		return nil
	}
	return s
}

func (r *CreateRequest) buyer() *Buyer {
	b := &Buyer{
		YearsInBusiness:    r.YearsInBusiness,
		AnticipatedVolume:  r.AnticipatedVolume,
		DistributionModel:  r.DistributionModel,
		ProductsOfInterest: compact(r.ProductsOfInterest),
	}
	if b.YearsInBusiness == "" && b.AnticipatedVolume == "" && b.DistributionModel == "" && len(b.ProductsOfInterest) == 0 {
		return nil
	}
	return b
}

func compact(in []string) []string {
	var out []string
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

type StatusRequest struct {
	Status Status `json:"status" validate:"required,oneof=pending read replied closed"`
}

// ListFilter narrows List results. Zero fields match everything.
type ListFilter struct {
	Type   Type
	Status Status
}

type ListResult struct {
	Enquiries  []Enquiry       `json:"enquiries"`
	Pagination pagination.Meta `json:"pagination"`
}
