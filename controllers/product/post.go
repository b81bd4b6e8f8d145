package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/offanish/proshop/models"
	"gorm.io/gorm"
)

// CreateProduct inserts a placeholder product the admin edits afterwards.
// POST /products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		product := models.Product{
			Name:         "Sample name",
			Price:        0,
			Image:        "/images/sample.jpg",
			Brand:        "Sample brand",
			Category:     "Sample category",
			CountInStock: 0,
			NumReviews:   0,
			Description:  "Sample description",
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
