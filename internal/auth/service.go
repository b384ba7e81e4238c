package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spice-catalog-backend/internal/apperr"
	"spice-catalog-backend/internal/config"
	"spice-catalog-backend/internal/database"
	"spice-catalog-backend/internal/validate"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// The same message is returned for unknown email, inactive account and wrong password.
const invalidCredentialsMessage = "Invalid email or password"

var errInvalidCredentials = apperr.New(apperr.KindUnauthorized, apperr.CodeInvalidCredentials, invalidCredentialsMessage)

type Params struct {
	fx.In

	Repo   Repository
	Tokens *TokenService
	Config config.Config
	Log    *zap.Logger
}

type Service struct {
	repo        Repository
	tokens      *TokenService
	allowSignup bool
	log         *zap.Logger
	now         func() time.Time
}

func NewService(p Params) *Service {
	return &Service{
		repo:        p.Repo,
		tokens:      p.Tokens,
		allowSignup: p.Config.AllowPublicSignup,
		log:         p.Log.Named("auth.service"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Signup registers a new account from the public endpoint.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*AuthResult, error) {
	if !s.allowSignup {
		return nil, apperr.Forbidden("Public signup is disabled")
	}
	req.normalize()
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if req.Role == RoleSuperadmin {
		return nil, apperr.Validation("The superadmin role cannot be self-assigned")
	}

	admin, err := s.register(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.issue(admin)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	admin, err := s.repo.FindByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !admin.IsActive || !CheckPassword(admin.Password, req.Password) {
		return nil, errInvalidCredentials
	}

	now := s.now()
	if err := s.repo.SetLastLogin(ctx, admin.ID, now); err != nil {
		s.log.Warn("failed to record last login", zap.String("admin_id", admin.ID.Hex()), zap.Error(err))
	} else {
		admin.LastLogin = &now
	}
	admin.Password = ""

	s.log.Info("admin logged in", zap.String("admin_id", admin.ID.Hex()))
	return s.issue(admin)
}

// Authenticate resolves a raw bearer token to an active admin.
func (s *Service) Authenticate(ctx context.Context, raw string) (*Admin, error) {
	claims, err := s.tokens.Verify(raw)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnauthorized, apperr.CodeUnauthorized, "Not authorized, token failed", err)
	}

	id, ok := database.ParseID(claims.AdminID)
	if !ok {
		return nil, apperr.Unauthorized("Not authorized, token failed")
	}

	admin, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.Unauthorized("Not authorized, admin not found")
	}
	if err != nil {
		return nil, err
	}
	if !admin.IsActive {
		return nil, apperr.Unauthorized("Account is deactivated")
	}
	return admin, nil
}

// CreateAdmin registers an account on behalf of a superadmin.
func (s *Service) CreateAdmin(ctx context.Context, req CreateAdminRequest) (*Admin, error) {
	req.normalize()
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	admin, err := s.register(ctx, req)
	if err != nil {
		return nil, err
	}
	s.log.Info("admin created", zap.String("admin_id", admin.ID.Hex()), zap.String("role", string(admin.Role)))
	return admin, nil
}

func (s *Service) ListAdmins(ctx context.Context) ([]Admin, error) {
	return s.repo.List(ctx)
}

func (s *Service) DeleteAdmin(ctx context.Context, rawID string) error {
	target, err := s.find(ctx, rawID)
	if err != nil {
		return err
	}
	if target.Role == RoleSuperadmin {
		return apperr.New(apperr.KindValidation, apperr.CodeCannotDeleteSuperadmin, "Cannot delete superadmin")
	}

	if err := s.repo.Delete(ctx, target.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Admin")
		}
		return err
	}
	s.log.Info("admin deleted", zap.String("admin_id", target.ID.Hex()))
	return nil
}

// SetActive activates or deactivates an account. Superadmins cannot be deactivated.
func (s *Service) SetActive(ctx context.Context, rawID string, active bool) (*Admin, error) {
	target, err := s.find(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if target.Role == RoleSuperadmin && !active {
		return nil, apperr.Validation("Cannot deactivate superadmin")
	}

	admin, err := s.repo.SetActive(ctx, target.ID, active, s.now())
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("Admin")
	}
	return admin, err
}

// EnsureSuperadmin creates the superadmin when no account uses the email yet.
// It reports whether an account was created.
func (s *Service) EnsureSuperadmin(ctx context.Context, name, email, password string) (bool, error) {
	_, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, err
	}
	_, err = s.CreateAdmin(ctx, CreateAdminRequest{Name: name, Email: email, Password: password, Role: RoleSuperadmin})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) find(ctx context.Context, rawID string) (*Admin, error) {
	id, ok := database.ParseID(rawID)
	if !ok {
		return nil, apperr.NotFound("Admin")
	}
	admin, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("Admin")
	}
	return admin, err
}

func (s *Service) register(ctx context.Context, req SignupRequest) (*Admin, error) {
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, duplicateEmail()
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = RoleAdmin
	}

	now := s.now()
	admin := &Admin{
		Name:      req.Name,
		Email:     req.Email,
		Password:  hashed,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, duplicateEmail()
		}
		return nil, err
	}
	admin.Password = ""
	return admin, nil
}

func (s *Service) issue(admin *Admin) (*AuthResult, error) {
	token, err := s.tokens.Issue(admin)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Admin: admin}, nil
}

func duplicateEmail() error {
	return apperr.Conflict(apperr.CodeDuplicateEmail, "Admin with this email already exists")
}
