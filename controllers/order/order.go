package orderControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/offanish/proshop/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// -------- Request Structs --------

type OrderItemInput struct {
	ProductID uint `json:"product" binding:"required"`
	Qty       int  `json:"qty" binding:"required,min=1"`
}

type CreateOrderInput struct {
	OrderItems      []OrderItemInput       `json:"orderItems" binding:"required"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress" binding:"required"`
	PaymentMethod   string                 `json:"paymentMethod" binding:"required"`
}

type PayOrderInput struct {
	TransactionID string `json:"id"`
	Status        string `json:"status"`
	UpdateTime    string `json:"updateTime"`
	EmailAddress  string `json:"emailAddress"`
}

var freeShippingThreshold = decimal.NewFromInt(100)

// -------- Helpers --------

// computeTotals derives shipping/tax/total from the items subtotal,
// rounded to cents. Shipping is free above the threshold, tax is 15%.
func computeTotals(itemsPrice decimal.Decimal) (shipping, tax, total decimal.Decimal) {
	shipping = decimal.NewFromInt(10)
	if itemsPrice.GreaterThan(freeShippingThreshold) {
		shipping = decimal.Zero
	}
	tax = itemsPrice.Mul(decimal.NewFromFloat(0.15)).Round(2)
	total = itemsPrice.Add(shipping).Add(tax).Round(2)
	return shipping, tax, total
}

// -------- Core Logic --------

// CreateOrder snapshots the submitted lines into a durable order. Prices
// are recomputed from the catalog and stock is re-verified and deducted in
// the same transaction.
// POST /orders
func CreateOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input CreateOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if len(input.OrderItems) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No order items"})
			return
		}

		var order models.Order
		err := db.Transaction(func(tx *gorm.DB) error {
			itemsPrice := decimal.Zero
			var orderItems []models.OrderItem

			// sqlite (tests) serializes writers on its own and has no FOR UPDATE
			productQuery := tx
			if tx.Dialector.Name() == "postgres" {
				productQuery = tx.Clauses(clause.Locking{Strength: "UPDATE"})
			}

			for _, item := range input.OrderItems {
				var product models.Product
				if err := productQuery.First(&product, item.ProductID).Error; err != nil {
					return errors.New("product not found")
				}

				if product.CountInStock < item.Qty {
					return errors.New("insufficient stock for product: " + product.Name)
				}

				product.CountInStock -= item.Qty
				if err := tx.Save(&product).Error; err != nil {
					return err
				}

				lineTotal := decimal.NewFromFloat(product.Price).Mul(decimal.NewFromInt(int64(item.Qty)))
				itemsPrice = itemsPrice.Add(lineTotal)

				orderItems = append(orderItems, models.OrderItem{
					ProductID: product.ID,
					Name:      product.Name,
					Image:     product.Image,
					Price:     product.Price,
					Qty:       item.Qty,
				})
			}

			itemsPrice = itemsPrice.Round(2)
			shipping, tax, total := computeTotals(itemsPrice)

			order = models.Order{
				UserID:          userID,
				Items:           orderItems,
				ShippingAddress: input.ShippingAddress,
				PaymentMethod:   input.PaymentMethod,
				ItemsPrice:      itemsPrice.InexactFloat64(),
				ShippingPrice:   shipping.InexactFloat64(),
				TaxPrice:        tax.InexactFloat64(),
				TotalPrice:      total.InexactFloat64(),
				CreatedAt:       time.Now(),
			}
			return tx.Create(&order).Error
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		broadcastNewOrder(order)

		c.JSON(http.StatusCreated, order)
	}
}

// GetOrderByID returns one order. Non-admins can only read their own.
// GET /orders/:id
func GetOrderByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.Preload("Items").First(&order, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		if order.UserID != c.GetString("user_id") && !c.GetBool("is_admin") {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to view this order"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// PayOrder records the payment receipt. Paid orders stay paid.
// PUT /orders/:id/pay
func PayOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input PayOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var order models.Order
		if err := db.Preload("Items").First(&order, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		if order.UserID != c.GetString("user_id") && !c.GetBool("is_admin") {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to pay this order"})
			return
		}
		if order.IsPaid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order is already paid"})
			return
		}

		now := time.Now()
		order.IsPaid = true
		order.PaidAt = &now
		order.PaymentResult = models.PaymentResult{
			TransactionID: input.TransactionID,
			Status:        input.Status,
			UpdateTime:    input.UpdateTime,
			EmailAddress:  input.EmailAddress,
		}

		if err := db.Save(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// DeliverOrder flips the delivered flag. Only paid orders can ship.
// PUT /orders/:id/deliver (admin)
func DeliverOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.Preload("Items").First(&order, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		if !order.IsPaid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order is not paid"})
			return
		}
		if order.IsDelivered {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order is already delivered"})
			return
		}

		now := time.Now()
		order.IsDelivered = true
		order.DeliveredAt = &now

		if err := db.Save(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// GetMyOrders lists the caller's orders, newest first.
// GET /orders/myorders
func GetMyOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").
			Where("user_id = ?", c.GetString("user_id")).
			Order("created_at desc").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		if orders == nil {
			orders = []models.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GetAllOrders lists every order.
// GET /orders (admin)
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").
			Order("created_at desc").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		if orders == nil {
			orders = []models.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}
