package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message represents a buyer's contact message about a listing.
// Messages are write-only: nothing in the API reads them back.
type Message struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ListingID   string    `gorm:"not null;index" json:"listing_id"` // not enforced as a foreign key
	BuyerEmail  string    `json:"buyer_email"`
	SellerEmail string    `json:"seller_email"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for the Message model
func (Message) TableName() string {
	return "messages"
}

// BeforeCreate assigns the message identifier
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// All returns every persisted model, in migration order
func All() []interface{} {
	return []interface{}{&Listing{}, &Message{}}
}
