package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseID(t *testing.T) {
	id := primitive.NewObjectID()

	got, ok := ParseID(" " + id.Hex() + " ")
	assert.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = ParseID("not-an-id")
	assert.False(t, ok)
	_, ok = ParseID("")
	assert.False(t, ok)
}

func TestMemoryPinger(t *testing.T) {
	assert.NoError(t, NewPinger(nil).Ping(context.Background()))
}
