package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Image        string         `json:"image"`
	Brand        string         `json:"brand"`
	Category     string         `json:"category"`
	Description  string         `json:"description"`
	Price        float64        `gorm:"not null" json:"price"`
	CountInStock int            `gorm:"not null;default:0;check:count_in_stock >= 0" json:"countInStock"`
	Rating       float64        `json:"rating"`
	NumReviews   int            `json:"numReviews"`
	Reviews      []Review       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"reviews"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// Review is owned by its product and removed with it.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"index" json:"-"`
	UserID    string    `gorm:"not null" json:"user"`
	Name      string    `json:"name"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}
