package enquiry

import (
	"context"
	"errors"
	"time"

	"spice-catalog-backend/internal/apperr"
	"spice-catalog-backend/internal/database"
	"spice-catalog-backend/internal/pagination"
	"spice-catalog-backend/internal/product"
	"spice-catalog-backend/internal/validate"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ProductLookup resolves the product an enquiry refers to.
type ProductLookup interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*product.Product, error)
}

type Service struct {
	repo     Repository
	products ProductLookup
	log      *zap.Logger
	now      func() time.Time
}

func NewService(repo Repository, products product.Repository, log *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		products: products,
		log:      log.Named("enquiry.service"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a public submission. The product id is checked for format only.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Enquiry, error) {
	req.normalize()
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	typ := req.Type
	if typ == "" {
		typ = TypeGeneral
	}

	now := s.now()
	e := &Enquiry{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Message:     req.Message,
		Type:        typ,
		ProductName: req.ProductName,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.ProductID != "" {
		id, ok := database.ParseID(req.ProductID)
		if !ok {
			return nil, apperr.New(apperr.KindValidation, apperr.CodeInvalidID, "Invalid product id")
		}
		e.ProductID = &id
	}
	switch typ {
	case TypeSupplier:
		e.Supplier = req.supplier()
	case TypeBuyer:
		e.Buyer = req.buyer()
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	s.log.Info("enquiry received", zap.String("enquiry_id", e.ID.Hex()), zap.String("type", string(e.Type)))
	return e, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter, page pagination.Params) (*ListResult, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, apperr.Validation("type must be one of: general, product, supplier, buyer")
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperr.Validation("status must be one of: pending, read, replied, closed")
	}

	enquiries, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	return &ListResult{Enquiries: enquiries, Pagination: page.Meta(total)}, nil
}

// Get returns the enquiry with its product resolved. A product that no longer
// exists yields a nil summary.
func (s *Service) Get(ctx context.Context, rawID string) (*Detail, error) {
	e, err := s.find(ctx, rawID)
	if err != nil {
		return nil, err
	}

	detail := &Detail{Enquiry: *e}
	if e.ProductID == nil {
		return detail, nil
	}
	p, err := s.products.FindByID(ctx, *e.ProductID)
	switch {
	case errors.Is(err, product.ErrNotFound):
		s.log.Debug("enquiry references a missing product",
			zap.String("enquiry_id", e.ID.Hex()), zap.String("product_id", e.ProductID.Hex()))
	case err != nil:
		return nil, err
	default:
		detail.Product = &ProductSummary{
			ID:           p.ID,
			Title:        p.Title,
			DisplayPhoto: p.DisplayPhoto,
			Category:     p.Category,
		}
	}
	return detail, nil
}

func (s *Service) UpdateStatus(ctx context.Context, rawID string, req StatusRequest) (*Enquiry, error) {
	id, ok := database.ParseID(rawID)
	if !ok {
		return nil, apperr.NotFound("Enquiry")
	}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	e, err := s.repo.UpdateStatus(ctx, id, req.Status, s.now())
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("Enquiry")
	}
	return e, err
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, ok := database.ParseID(rawID)
	if !ok {
		return apperr.NotFound("Enquiry")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Enquiry")
		}
		return err
	}
	return nil
}

func (s *Service) find(ctx context.Context, rawID string) (*Enquiry, error) {
	id, ok := database.ParseID(rawID)
	if !ok {
		return nil, apperr.NotFound("Enquiry")
	}
	e, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("Enquiry")
	}
	return e, err
}
