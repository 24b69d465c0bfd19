package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

func TestValidateUpload(t *testing.T) {
	const maxBytes = 5 * 1024 * 1024

	assert.NoError(t, ValidateUpload(1024, maxBytes, "image/jpeg", imageTypes))
	assert.NoError(t, ValidateUpload(maxBytes, maxBytes, "image/gif", imageTypes))

	assert.ErrorIs(t, ValidateUpload(maxBytes+1, maxBytes, "image/png", imageTypes), ErrTooLarge)
	assert.ErrorIs(t, ValidateUpload(1024, maxBytes, "application/pdf", imageTypes), ErrInvalidType)
	assert.ErrorIs(t, ValidateUpload(1024, maxBytes, "", imageTypes), ErrInvalidType)
}

func TestImageURL(t *testing.T) {
	id := primitive.NewObjectID()
	assert.Equal(t, "/api/images/"+id.Hex(), ImageURL(id))
	assert.Empty(t, ImageURL(primitive.NilObjectID))
}
