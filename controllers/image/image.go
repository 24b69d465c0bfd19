package imageControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fancystore-backend/storage"
)

// GET /api/images/:id — streams a stored blob with its recorded content type.
func Serve(store *storage.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid image ID"})
			return
		}
		contentType, err := store.ContentType(id)
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Image not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch image"})
			return
		}
		c.Header("Content-Type", contentType)
		c.Status(http.StatusOK)
		if err := store.Stream(c.Writer, id); err != nil {
			// Headers are already out; nothing left to do but cut the stream.
			c.Abort()
		}
	}
}
