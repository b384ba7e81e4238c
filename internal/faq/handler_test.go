package faq_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"spice-catalog-backend/internal/auth/authtest"
	"spice-catalog-backend/internal/faq"
	"spice-catalog-backend/internal/httpx"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setup(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := authtest.New(t)
	r := gin.New()
	r.Use(httpx.ErrorHandler(zap.NewNop(), false))
	faq.NewHandler(faq.NewRepository(nil), env.Middleware, zap.NewNop()).Register(r.Group("/api"))
	return r, env.StaffBearer(t)
}

func request(t *testing.T, r http.Handler, method, path, bearer string, body any) (int, httpx.Envelope, json.RawMessage) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var raw struct {
		httpx.Envelope
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw), w.Body.String())
	return w.Code, raw.Envelope, raw.Data
}

func TestFaqLifecycle(t *testing.T) {
	r, bearer := setup(t)

	code, _, _ := request(t, r, http.MethodPost, "/api/faqs", "", gin.H{"question": "MOQ?", "answer": "1 tonne"})
	assert.Equal(t, http.StatusUnauthorized, code, "writes require a token")

	code, env, _ := request(t, r, http.MethodPost, "/api/faqs", bearer, gin.H{"question": "MOQ?"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "MISSING_FIELD", env.Error)

	code, _, data := request(t, r, http.MethodPost, "/api/faqs", bearer, gin.H{"question": "MOQ?", "answer": "1 tonne"})
	require.Equal(t, http.StatusCreated, code)
	var created faq.Faq
	require.NoError(t, json.Unmarshal(data, &created))

	_, _, data = request(t, r, http.MethodPost, "/api/faqs", bearer, gin.H{"question": "Shipping?", "answer": "FOB Kochi"})
	var second faq.Faq
	require.NoError(t, json.Unmarshal(data, &second))

	code, _, data = request(t, r, http.MethodGet, "/api/faqs", "", nil)
	require.Equal(t, http.StatusOK, code)
	var all []faq.Faq
	require.NoError(t, json.Unmarshal(data, &all))
	require.Len(t, all, 2)
	assert.Equal(t, created.ID, all[0].ID)

	code, _, data = request(t, r, http.MethodPut, "/api/faqs/"+created.ID.Hex(), bearer, gin.H{"answer": "500 kg", "question": " "})
	require.Equal(t, http.StatusOK, code)
	var updated faq.Faq
	require.NoError(t, json.Unmarshal(data, &updated))
	assert.Equal(t, "MOQ?", updated.Question)
	assert.Equal(t, "500 kg", updated.Answer)

	code, _, _ = request(t, r, http.MethodDelete, "/api/faqs/"+created.ID.Hex(), bearer, nil)
	require.Equal(t, http.StatusOK, code)
	code, env, _ = request(t, r, http.MethodGet, "/api/faqs/"+created.ID.Hex(), "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "FAQ not found", env.Message)

	code, _, _ = request(t, r, http.MethodDelete, "/api/faqs/bad", bearer, nil)
	assert.Equal(t, http.StatusNotFound, code)
}
