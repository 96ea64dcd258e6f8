package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/kendall-kelly/marketplace-api/utils"
	"gorm.io/gorm"
)

// Listing represents a classified ad offered for sale
type Listing struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	Description   *string   `gorm:"type:text" json:"description"`
	Price         float64   `gorm:"not null;check:price >= 0" json:"price"`
	Category      string    `gorm:"not null;index" json:"category"`
	SellerEmail   string    `gorm:"not null" json:"seller_email"`
	ImageURL      *string   `json:"image_url"`
	Location      *string   `json:"location"`
	CategoryLabel string    `gorm:"-" json:"category_label"` // computed, display name of Category
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Listing model
func (Listing) TableName() string {
	return "listings"
}

// BeforeCreate assigns a fresh identifier so every insert yields a new row
func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// AfterCreate fills computed fields on the row returned to the caller
func (l *Listing) AfterCreate(tx *gorm.DB) error {
	l.CategoryLabel = utils.HumanizeSlug(l.Category)
	return nil
}

// AfterFind fills computed fields on rows loaded from the database
func (l *Listing) AfterFind(tx *gorm.DB) error {
	l.CategoryLabel = utils.HumanizeSlug(l.Category)
	return nil
}
