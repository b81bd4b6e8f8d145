package productcontroller

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/offanish/proshop/models"
	"gorm.io/gorm"
)

const pageSize = 10

// GetProducts returns one catalog page, optionally filtered by keyword.
// Query params: /products?keyword=&pageNumber=
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		keyword := c.Query("keyword")
		page, err := strconv.Atoi(c.DefaultQuery("pageNumber", "1"))
		if err != nil || page < 1 {
			page = 1
		}

		// Session makes the query safely reusable for Count and Find
		query := db.Model(&models.Product{}).Session(&gorm.Session{})
		if keyword != "" {
			query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+keyword+"%")
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		var products []models.Product
		if err := query.
			Order("created_at desc").
			Limit(pageSize).
			Offset(pageSize * (page - 1)).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		if products == nil {
			products = []models.Product{}
		}

		c.JSON(http.StatusOK, gin.H{
			"products": products,
			"page":     page,
			"pages":    int(math.Ceil(float64(count) / float64(pageSize))),
		})
	}
}

// GetTopProducts returns the three highest-rated products.
// GET /products/top
func GetTopProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.
			Order("rating desc").
			Limit(3).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch top products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
