package productcontroller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/offanish/proshop/models"
	"gorm.io/gorm"
)

type CreateReviewInput struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

// CreateReview appends a review and recomputes the product's aggregate
// rating. One review per user per product.
// POST /products/:id/reviews
func CreateReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input CreateReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.Preload("Reviews").First(&product, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		for _, r := range product.Reviews {
			if r.UserID == userID {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product already reviewed"})
				return
			}
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		review := models.Review{
			ProductID: product.ID,
			UserID:    userID,
			Name:      user.Name,
			Rating:    input.Rating,
			Comment:   input.Comment,
			CreatedAt: time.Now(),
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&review).Error; err != nil {
				return err
			}

			total := input.Rating
			for _, r := range product.Reviews {
				total += r.Rating
			}
			numReviews := len(product.Reviews) + 1

			return tx.Model(&product).Updates(map[string]interface{}{
				"num_reviews": numReviews,
				"rating":      float64(total) / float64(numReviews),
			}).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add review"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Review added"})
	}
}
