package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spice-catalog-backend/internal/auth"
	"spice-catalog-backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func testConfig() config.Config {
	return config.Config{
		AppName:           "spice-catalog-test",
		Environment:       config.EnvDevelopment,
		Port:              "0",
		LogLevel:          "error",
		StorageDriver:     config.StorageMemory,
		JWTSecret:         "test-secret",
		JWTExpire:         time.Hour,
		AllowPublicSignup: true,
		CORSOrigins:       []string{"http://localhost:3000"},
		Gemini:            config.GeminiConfig{Model: "gemini-test", BaseURL: "http://127.0.0.1:1"},
		RateLimitRequests: 20,
		RateLimitWindow:   15 * time.Minute,
	}
}

func TestGraphIsValid(t *testing.T) {
	require.NoError(t, fx.ValidateApp(Options(testConfig())))
}

type client struct {
	t      *testing.T
	engine *gin.Engine
	token  string
}

func (c *client) call(method, path string, body any) (int, map[string]json.RawMessage) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)

	var out map[string]json.RawMessage
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func TestCatalogFlow(t *testing.T) {
	var engine *gin.Engine
	app := fx.New(Options(testConfig()), fx.Populate(&engine), fx.NopLogger)
	require.NoError(t, app.Err())

	c := &client{t: t, engine: engine}

	code, _ := c.call(http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, code)

	code, body := c.call(http.MethodPost, "/api/auth/signup", gin.H{
		"name": "Owner", "email": "owner@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, code)
	var signup auth.AuthResult
	require.NoError(t, json.Unmarshal(body["data"], &signup))
	c.token = signup.Token

	code, body = c.call(http.MethodPost, "/api/products", gin.H{
		"title": "Green Cardamom", "category": "Spice", "description": "Pods",
		"origin": "Idukki", "biologicalBackground": "Elettaria cardamomum",
		"usage": "Tea, sweets", "keyCharacteristics": "8mm bold", "displayPhoto": "https://cdn.example.com/c.jpg",
	})
	require.Equal(t, http.StatusCreated, code)
	var product struct {
		ID string `json:"_id"`
	}
	require.NoError(t, json.Unmarshal(body["data"], &product))

	c.token = ""
	code, body = c.call(http.MethodPost, "/api/enquiries", gin.H{
		"name": "Buyer", "email": "buyer@example.com", "message": "Quote for 2 tonnes",
		"type": "product", "productId": product.ID,
	})
	require.Equal(t, http.StatusCreated, code)
	var enquiry struct {
		ID     string `json:"_id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(body["data"], &enquiry))
	assert.Equal(t, "pending", enquiry.Status)

	code, _ = c.call(http.MethodGet, "/api/enquiries/"+enquiry.ID, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	c.token = signup.Token
	code, body = c.call(http.MethodGet, "/api/enquiries/"+enquiry.ID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body["data"]), "Green Cardamom")

	code, body = c.call(http.MethodGet, "/api/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, `"NOT_FOUND"`, string(body["error"]))

	code, _ = c.call(http.MethodPost, "/api/gemini/generate-product-details", gin.H{"productName": "Clove"})
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestMetricsEndpoint(t *testing.T) {
	var engine *gin.Engine
	app := fx.New(Options(testConfig()), fx.Populate(&engine), fx.NopLogger)
	require.NoError(t, app.Err())

	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/faqs", nil))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `spice_catalog_http_requests_total{method="GET",route="/api/faqs",status="200"} 1`)
}
