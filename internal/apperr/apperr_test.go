package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, KindValidation.Status())
	assert.Equal(t, http.StatusBadRequest, KindConflict.Status())
	assert.Equal(t, http.StatusUnauthorized, KindUnauthorized.Status())
	assert.Equal(t, http.StatusForbidden, KindForbidden.Status())
	assert.Equal(t, http.StatusNotFound, KindNotFound.Status())
	assert.Equal(t, http.StatusTooManyRequests, KindRateLimited.Status())
	assert.Equal(t, http.StatusBadGateway, KindUpstream.Status())
	assert.Equal(t, http.StatusServiceUnavailable, KindUnavailable.Status())
	assert.Equal(t, http.StatusInternalServerError, KindInternal.Status())
}

func TestAsThroughWrapping(t *testing.T) {
	base := NotFound("Product")
	wrapped := fmt.Errorf("loading: %w", base)

	got, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "Product not found", got.Message)
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestIsComparesKindAndCode(t *testing.T) {
	err := fmt.Errorf("signup: %w", Conflict(CodeDuplicateEmail, "Email already registered"))

	assert.ErrorIs(t, err, Conflict(CodeDuplicateEmail, "any message"))
	assert.NotErrorIs(t, err, Conflict(CodeDuplicate, "any message"))
}

func TestMissingFieldsMessage(t *testing.T) {
	err := MissingFields("title", "origin")
	assert.Equal(t, "Please provide all required fields: title, origin", err.Message)
	assert.Equal(t, []string{"title", "origin"}, err.Fields)
}
