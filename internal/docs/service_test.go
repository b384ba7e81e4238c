package docs

import (
	"context"
	"testing"

	"spice-catalog-backend/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService() *Service {
	return NewService(NewMemoryRepository(), zap.NewNop())
}

func TestCreateDefaultsAndValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	d, err := svc.Create(ctx, CreateRequest{Title: " FSSAI licence ", Image: "https://cdn.example.com/fssai.png"})
	require.NoError(t, err)
	assert.Equal(t, "FSSAI licence", d.Title)
	assert.Equal(t, StatusActive, d.Status)

	_, err = svc.Create(ctx, CreateRequest{Title: "No image"})
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.CodeMissingField, appErr.Code)
	assert.Equal(t, []string{"image"}, appErr.Fields)

	_, err = svc.Create(ctx, CreateRequest{Title: "x", Image: "y", Status: "draft"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestPublicVisibility(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	active, err := svc.Create(ctx, CreateRequest{Title: "ISO 22000", Image: "a.png"})
	require.NoError(t, err)
	hidden, err := svc.Create(ctx, CreateRequest{Title: "Draft", Image: "b.png", Status: StatusInactive})
	require.NoError(t, err)

	public, err := svc.List(ctx, StatusInactive, false)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, active.ID, public[0].ID)

	all, err := svc.List(ctx, "", true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, hidden.ID, all[0].ID, "newest first")

	_, err = svc.Get(ctx, hidden.ID.Hex(), false)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	_, err = svc.Get(ctx, hidden.ID.Hex(), true)
	assert.NoError(t, err)

	_, err = svc.List(ctx, "bogus", true)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestUpdateAndDelete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	d, err := svc.Create(ctx, CreateRequest{Title: "Halal", Image: "h.png"})
	require.NoError(t, err)

	title, empty, inactive := "Halal certificate", "", StatusInactive
	updated, err := svc.Update(ctx, d.ID.Hex(), UpdateRequest{Title: &title, Image: &empty, Status: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Halal certificate", updated.Title)
	assert.Equal(t, "h.png", updated.Image)
	assert.Equal(t, StatusInactive, updated.Status)

	blank := Status("")
	_, err = svc.Update(ctx, d.ID.Hex(), UpdateRequest{Title: &title, Status: &blank})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "a present status must be valid")
	got, err := svc.Get(ctx, d.ID.Hex(), true)
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, got.Status)

	require.NoError(t, svc.Delete(ctx, d.ID.Hex()))
	_, err = svc.Get(ctx, d.ID.Hex(), true)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(svc.Delete(ctx, d.ID.Hex())))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(svc.Delete(ctx, "zzz")))
}
