package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/offanish/proshop/models"
	"gorm.io/gorm"
)

type UpdateProductInput struct {
	Name         *string  `json:"name"`
	Price        *float64 `json:"price"`
	Description  *string  `json:"description"`
	Image        *string  `json:"image"`
	Brand        *string  `json:"brand"`
	Category     *string  `json:"category"`
	CountInStock *int     `json:"countInStock"`
}

// UpdateProduct overwrites the supplied product fields.
// PUT /products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Price != nil {
			updates["price"] = *input.Price
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.Image != nil {
			updates["image"] = *input.Image
		}
		if input.Brand != nil {
			updates["brand"] = *input.Brand
		}
		if input.Category != nil {
			updates["category"] = *input.Category
		}
		if input.CountInStock != nil {
			if *input.CountInStock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "countInStock cannot be negative"})
				return
			}
			updates["count_in_stock"] = *input.CountInStock
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
				return
			}
		}

		c.JSON(http.StatusOK, product)
	}
}
