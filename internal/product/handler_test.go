package product_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"spice-catalog-backend/internal/auth"
	"spice-catalog-backend/internal/auth/authtest"
	"spice-catalog-backend/internal/httpx"
	"spice-catalog-backend/internal/product"

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

type fixture struct {
	router *gin.Engine
	bearer string
}

func setup(t *testing.T) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := authtest.New(t)
	svc := product.NewService(product.NewMemoryRepository(), zap.NewNop())

	r := gin.New()
	r.Use(httpx.ErrorHandler(zap.NewNop(), false))
	product.NewHandler(svc, env.Middleware).Register(r.Group("/api"))
	return fixture{router: r, bearer: env.StaffBearer(t)}
}

func (f fixture) do(t *testing.T, method, path string, authed bool, body any) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", f.bearer)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func validPayload(title string) gin.H {
	return gin.H{
		"title":                title,
		"category":             "Spice",
		"subcategory":          "Whole",
		"description":          "Aromatic bark",
		"origin":               "Sri Lanka",
		"biologicalBackground": "Cinnamomum verum",
		"usage":                "Baking",
		"keyCharacteristics":   "Sweet, woody",
		"displayPhoto":         "https://cdn.example.com/cinnamon.jpg",
		"additionalPhotos":     []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
	}
}

func (f fixture) create(t *testing.T, payload gin.H) product.Product {
	t.Helper()
	code, env := f.do(t, http.MethodPost, "/api/products", true, payload)
	require.Equal(t, http.StatusCreated, code, env.Message)
	var p product.Product
	require.NoError(t, json.Unmarshal(env.Data, &p))
	return p
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	f := setup(t)
	created := f.create(t, validPayload("Ceylon Cinnamon"))
	assert.Equal(t, product.StatusActive, created.Status)

	code, env := f.do(t, http.MethodGet, "/api/products/"+created.ID.Hex(), false, nil)
	require.Equal(t, http.StatusOK, code)

	var got product.Product
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Ceylon Cinnamon", got.Title)
	assert.Equal(t, "Spice", got.Category)
	assert.Equal(t, "Whole", got.Subcategory)
	assert.Equal(t, "Cinnamomum verum", got.BiologicalBackground)
	assert.Equal(t, "Sweet, woody", got.KeyCharacteristics)
	assert.Equal(t, created.AdditionalPhotos, got.AdditionalPhotos)
}

func TestCreateRequiresAuthAndFields(t *testing.T) {
	f := setup(t)

	code, _ := f.do(t, http.MethodPost, "/api/products", false, validPayload("Clove"))
	assert.Equal(t, http.StatusUnauthorized, code)

	payload := validPayload("Clove")
	payload["origin"] = "   "
	delete(payload, "displayPhoto")
	code, env := f.do(t, http.MethodPost, "/api/products", true, payload)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "MISSING_FIELD", env.Error)
	assert.Contains(t, env.Message, "origin")
	assert.Contains(t, env.Message, "displayPhoto")

	payload = validPayload("Clove")
	payload["status"] = "archived"
	code, env = f.do(t, http.MethodPost, "/api/products", true, payload)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_FIELD", env.Error)
}

func TestPartialUpdate(t *testing.T) {
	f := setup(t)
	created := f.create(t, validPayload("Black Pepper"))

	code, env := f.do(t, http.MethodPut, "/api/products/"+created.ID.Hex(), true, gin.H{
		"origin":           "Kerala",
		"title":            "",
		"subcategory":      "",
		"additionalPhotos": []string{},
	})
	require.Equal(t, http.StatusOK, code, env.Message)

	var updated product.Product
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Kerala", updated.Origin)
	assert.Equal(t, "Black Pepper", updated.Title, "empty text fields are ignored")
	assert.Empty(t, updated.Subcategory)
	assert.Empty(t, updated.AdditionalPhotos)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.DisplayPhoto, updated.DisplayPhoto)

	code, env = f.do(t, http.MethodPut, "/api/products/"+created.ID.Hex(), true, gin.H{"status": "gone"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_FIELD", env.Error)

	code, env = f.do(t, http.MethodPut, "/api/products/"+created.ID.Hex(), true, gin.H{"origin": "India", "status": ""})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_FIELD", env.Error)

	code, env = f.do(t, http.MethodGet, "/api/products/"+created.ID.Hex(), true, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Kerala", updated.Origin, "a rejected update changes nothing")

	code, _ = f.do(t, http.MethodPut, "/api/products/000000000000000000000000", true, gin.H{"origin": "x"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestDeleteThenGetIsNotFound(t *testing.T) {
	f := setup(t)
	created := f.create(t, validPayload("Cardamom"))

	code, _ := f.do(t, http.MethodDelete, "/api/products/"+created.ID.Hex(), true, nil)
	require.Equal(t, http.StatusOK, code)

	code, env := f.do(t, http.MethodGet, "/api/products/"+created.ID.Hex(), false, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Product not found", env.Message)

	code, _ = f.do(t, http.MethodGet, "/api/products/not-an-id", false, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestListPagination(t *testing.T) {
	f := setup(t)
	for i := 0; i < 12; i++ {
		f.create(t, validPayload(fmt.Sprintf("Spice %02d", i)))
	}

	code, env := f.do(t, http.MethodGet, "/api/products?page=2&limit=5", false, nil)
	require.Equal(t, http.StatusOK, code)

	var res product.ListResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Len(t, res.Products, 5)
	assert.Equal(t, 2, res.Pagination.CurrentPage)
	assert.Equal(t, 3, res.Pagination.TotalPages)
	assert.EqualValues(t, 12, res.Pagination.TotalItems)
	assert.Equal(t, 5, res.Pagination.ItemsPerPage)
	assert.Equal(t, "Spice 06", res.Products[0].Title, "newest first")

	code, env = f.do(t, http.MethodGet, "/api/products?page=3&limit=5", false, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Len(t, res.Products, 2)

	code, env = f.do(t, http.MethodGet, "/api/products?page=100000000000000000&limit=100", false, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Empty(t, res.Products)
	assert.EqualValues(t, 12, res.Pagination.TotalItems)
}

func TestListCategoryIsCaseInsensitiveExact(t *testing.T) {
	f := setup(t)
	f.create(t, validPayload("Turmeric"))
	tea := validPayload("Green Tea")
	tea["category"] = "Tea"
	f.create(t, tea)
	blend := validPayload("Spice Blend")
	blend["category"] = "Spices"
	f.create(t, blend)

	code, env := f.do(t, http.MethodGet, "/api/products?category=sPiCe", false, nil)
	require.Equal(t, http.StatusOK, code)

	var res product.ListResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.Len(t, res.Products, 1)
	assert.Equal(t, "Turmeric", res.Products[0].Title)
}

func TestInactiveProductsHiddenFromPublic(t *testing.T) {
	f := setup(t)
	f.create(t, validPayload("Nutmeg"))
	hidden := validPayload("Mace")
	hidden["status"] = "inactive"
	inactive := f.create(t, hidden)

	var res product.ListResult
	_, env := f.do(t, http.MethodGet, "/api/products?status=inactive", false, nil)
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.Len(t, res.Products, 1)
	assert.Equal(t, "Nutmeg", res.Products[0].Title)

	_, env = f.do(t, http.MethodGet, "/api/products?status=inactive", true, nil)
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.Len(t, res.Products, 1)
	assert.Equal(t, "Mace", res.Products[0].Title)

	code, _ := f.do(t, http.MethodGet, "/api/products/"+inactive.ID.Hex(), false, nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = f.do(t, http.MethodGet, "/api/products/"+inactive.ID.Hex(), true, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestUserRoleSeesOnlyActiveProducts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	env := authtest.New(t)
	svc := product.NewService(product.NewMemoryRepository(), zap.NewNop())
	r := gin.New()
	r.Use(httpx.ErrorHandler(zap.NewNop(), false))
	product.NewHandler(svc, env.Middleware).Register(r.Group("/api"))

	staff := fixture{router: r, bearer: env.StaffBearer(t)}
	hidden := validPayload("Star Anise")
	hidden["status"] = "inactive"
	inactive := staff.create(t, hidden)

	user := fixture{router: r, bearer: env.Bearer(t, env.CreateAdmin(t, "viewer@example.com", auth.RoleUser, true))}

	var res product.ListResult
	code, resp := user.do(t, http.MethodGet, "/api/products?status=inactive", true, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(resp.Data, &res))
	assert.Empty(t, res.Products)

	code, _ = user.do(t, http.MethodGet, "/api/products/"+inactive.ID.Hex(), true, nil)
	assert.Equal(t, http.StatusNotFound, code)
}
