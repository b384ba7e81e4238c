package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spice-catalog-backend/internal/auth"
	"spice-catalog-backend/internal/auth/authtest"
	"spice-catalog-backend/internal/config"
	"spice-catalog-backend/internal/httpx"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func setupRouter(env *authtest.Env) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(httpx.ErrorHandler(zap.NewNop(), false))
	api := r.Group("/api")
	auth.NewHandler(env.Service, env.Middleware).Register(api, func(c *gin.Context) { c.Next() })
	return r
}

func do(t *testing.T, r http.Handler, method, path, bearer string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestSignupIssuesTokenWithoutPassword(t *testing.T) {
	env := authtest.New(t)
	r := setupRouter(env)

	w, body := do(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"name": "Asha", "email": "Asha@Example.com ", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, body.Success)
	assert.NotContains(t, w.Body.String(), "password")

	var res struct {
		Token string     `json:"token"`
		Admin auth.Admin `json:"admin"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &res))
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "asha@example.com", res.Admin.Email)
	assert.Equal(t, auth.RoleAdmin, res.Admin.Role)
	assert.True(t, res.Admin.IsActive)

	w, _ = do(t, r, http.MethodGet, "/api/auth/me", "Bearer "+res.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	env := authtest.New(t)
	r := setupRouter(env)
	payload := gin.H{"name": "Asha", "email": "asha@example.com", "password": "secret1"}

	w, _ := do(t, r, http.MethodPost, "/api/auth/signup", "", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	payload["email"] = "ASHA@example.com"
	w, body := do(t, r, http.MethodPost, "/api/auth/signup", "", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "DUPLICATE_EMAIL", body.Error)
}

func TestSignupValidation(t *testing.T) {
	env := authtest.New(t)
	r := setupRouter(env)

	cases := []struct {
		name    string
		payload gin.H
		code    string
	}{
		{"missing fields", gin.H{"email": "a@b.com"}, "MISSING_FIELD"},
		{"bad email", gin.H{"name": "A", "email": "nope", "password": "secret1"}, "INVALID_FIELD"},
		{"short password", gin.H{"name": "A", "email": "a@b.com", "password": "123"}, "INVALID_FIELD"},
		{"self superadmin", gin.H{"name": "A", "email": "a@b.com", "password": "secret1", "role": "superadmin"}, "INVALID_FIELD"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := do(t, r, http.MethodPost, "/api/auth/signup", "", tc.payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.code, body.Error)
			assert.False(t, body.Success)
		})
	}
}

func TestSignupDisabled(t *testing.T) {
	env := authtest.New(t)
	env.Service = auth.NewService(auth.Params{
		Repo:   env.Repo,
		Tokens: env.Tokens,
		Config: config.Config{AllowPublicSignup: false},
		Log:    zap.NewNop(),
	})
	r := setupRouter(env)

	w, _ := do(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{"name": "A", "email": "a@b.com", "password": "secret1"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLoginFailuresShareMessage(t *testing.T) {
	env := authtest.New(t)
	env.CreateAdmin(t, "staff@example.com", auth.RoleAdmin, true)
	env.CreateAdmin(t, "gone@example.com", auth.RoleAdmin, false)
	r := setupRouter(env)

	wrongPassword, bodyA := do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "staff@example.com", "password": "nope"})
	unknown, bodyB := do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "who@example.com", "password": "nope"})
	inactive, bodyC := do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "gone@example.com", "password": authtest.Password})

	for _, w := range []*httptest.ResponseRecorder{wrongPassword, unknown, inactive} {
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
	assert.Equal(t, bodyA.Message, bodyB.Message)
	assert.Equal(t, bodyA.Message, bodyC.Message)
	assert.Equal(t, "INVALID_CREDENTIALS", bodyA.Error)
}

func TestLoginStampsLastLogin(t *testing.T) {
	env := authtest.New(t)
	admin := env.CreateAdmin(t, "staff@example.com", auth.RoleAdmin, true)
	r := setupRouter(env)

	w, body := do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "STAFF@example.com", "password": authtest.Password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res auth.AuthResult
	require.NoError(t, json.Unmarshal(body.Data, &res))
	assert.NotEmpty(t, res.Token)

	stored, err := env.Repo.FindByID(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLogin)
}

func TestProtectRejections(t *testing.T) {
	env := authtest.New(t)
	r := setupRouter(env)

	w, body := do(t, r, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not authorized, no token", body.Message)

	w, _ = do(t, r, http.MethodGet, "/api/auth/me", "Bearer not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	inactive := env.CreateAdmin(t, "gone@example.com", auth.RoleAdmin, false)
	w, body = do(t, r, http.MethodGet, "/api/auth/me", env.Bearer(t, inactive), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Account is deactivated", body.Message)

	removed := env.CreateAdmin(t, "removed@example.com", auth.RoleAdmin, true)
	bearer := env.Bearer(t, removed)
	require.NoError(t, env.Repo.Delete(context.Background(), removed.ID))
	w, _ = do(t, r, http.MethodGet, "/api/auth/me", bearer, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectRejectsExpiredToken(t *testing.T) {
	env := authtest.New(t)
	admin := env.CreateAdmin(t, "staff@example.com", auth.RoleAdmin, true)
	r := setupRouter(env)

	short, err := auth.NewTokenService(authtest.Secret, time.Nanosecond)
	require.NoError(t, err)
	token, err := short.Issue(admin)
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)

	w, _ := do(t, r, http.MethodGet, "/api/auth/me", "Bearer "+token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSuperadminGate(t *testing.T) {
	env := authtest.New(t)
	r := setupRouter(env)

	w, body := do(t, r, http.MethodGet, "/api/auth/admins", env.StaffBearer(t), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", body.Error)

	super := env.CreateAdmin(t, "root@example.com", auth.RoleSuperadmin, true)
	w, body = do(t, r, http.MethodGet, "/api/auth/admins", env.Bearer(t, super), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var admins []auth.Admin
	require.NoError(t, json.Unmarshal(body.Data, &admins))
	assert.Len(t, admins, 2)
	assert.NotContains(t, w.Body.String(), "$2a$")
}

func TestCreateAdminAssignsRequestedRole(t *testing.T) {
	env := authtest.New(t)
	super := env.CreateAdmin(t, "root@example.com", auth.RoleSuperadmin, true)
	r := setupRouter(env)

	w, body := do(t, r, http.MethodPost, "/api/auth/create-admin", env.Bearer(t, super), gin.H{
		"name": "Second", "email": "second@example.com", "password": "secret1", "role": "superadmin",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created auth.Admin
	require.NoError(t, json.Unmarshal(body.Data, &created))
	assert.Equal(t, auth.RoleSuperadmin, created.Role)

	w, body = do(t, r, http.MethodPost, "/api/auth/create-admin", env.Bearer(t, super), gin.H{
		"name": "Again", "email": "second@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "DUPLICATE_EMAIL", body.Error)
}

func TestDeleteAdmin(t *testing.T) {
	env := authtest.New(t)
	super := env.CreateAdmin(t, "root@example.com", auth.RoleSuperadmin, true)
	other := env.CreateAdmin(t, "root2@example.com", auth.RoleSuperadmin, true)
	staff := env.CreateAdmin(t, "staff@example.com", auth.RoleAdmin, true)
	r := setupRouter(env)
	bearer := env.Bearer(t, super)

	w, body := do(t, r, http.MethodDelete, "/api/auth/admins/"+other.ID.Hex(), bearer, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CANNOT_DELETE_SUPERADMIN", body.Error)
	_, err := env.Repo.FindByID(context.Background(), other.ID)
	assert.NoError(t, err)

	w, _ = do(t, r, http.MethodDelete, "/api/auth/admins/"+staff.ID.Hex(), bearer, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	_, err = env.Repo.FindByID(context.Background(), staff.ID)
	assert.ErrorIs(t, err, auth.ErrNotFound)

	w, _ = do(t, r, http.MethodDelete, "/api/auth/admins/"+staff.ID.Hex(), bearer, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, r, http.MethodDelete, "/api/auth/admins/not-an-id", bearer, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetAdminStatus(t *testing.T) {
	env := authtest.New(t)
	super := env.CreateAdmin(t, "root@example.com", auth.RoleSuperadmin, true)
	staff := env.CreateAdmin(t, "staff@example.com", auth.RoleAdmin, true)
	r := setupRouter(env)
	bearer := env.Bearer(t, super)
	staffBearer := env.Bearer(t, staff)

	w, body := do(t, r, http.MethodPut, "/api/auth/admins/"+staff.ID.Hex()+"/status", bearer, gin.H{"isActive": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated auth.Admin
	require.NoError(t, json.Unmarshal(body.Data, &updated))
	assert.False(t, updated.IsActive)

	w, _ = do(t, r, http.MethodGet, "/api/auth/me", staffBearer, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(t, r, http.MethodPut, "/api/auth/admins/"+super.ID.Hex()+"/status", bearer, gin.H{"isActive": false})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = do(t, r, http.MethodPut, "/api/auth/admins/"+staff.ID.Hex()+"/status", bearer, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_FIELD", body.Error)
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	env := authtest.New(t)
	r := setupRouter(env)

	for _, bearer := range []string{"", "Bearer garbage"} {
		w, body := do(t, r, http.MethodPost, "/api/auth/logout", bearer, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, body.Success)
	}
}

func TestEnsureSuperadminIsIdempotent(t *testing.T) {
	env := authtest.New(t)
	ctx := context.Background()

	created, err := env.Service.EnsureSuperadmin(ctx, "Root", "root@example.com", "secret1")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = env.Service.EnsureSuperadmin(ctx, "Root", "ROOT@example.com", "secret1")
	require.NoError(t, err)
	assert.False(t, created)

	admins, err := env.Service.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, auth.RoleSuperadmin, admins[0].Role)
}
