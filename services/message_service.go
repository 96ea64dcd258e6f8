package services

import (
	"context"

	"github.com/kendall-kelly/marketplace-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewMessage is a buyer's contact request about a listing
type NewMessage struct {
	ListingID   string
	BuyerEmail  string
	SellerEmail string
	Message     string
}

// Validate checks the fields a message cannot be sent without
func (n NewMessage) Validate() error {
	if isBlank(n.Message) || isBlank(n.ListingID) {
		return newValidationError("VALIDATION_ERROR", "Message and listing ID are required")
	}
	return nil
}

// MessageService stores buyer-to-seller messages
type MessageService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewMessageService creates a message service backed by db
func NewMessageService(db *gorm.DB, logger *zap.Logger) *MessageService {
	return &MessageService{db: db, logger: logger}
}

// Send persists a message and returns the inserted rows. The listing is not
// looked up; emails are stored exactly as given.
func (s *MessageService) Send(ctx context.Context, input NewMessage) ([]models.Message, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	messages := []models.Message{{
		ListingID:   input.ListingID,
		BuyerEmail:  input.BuyerEmail,
		SellerEmail: input.SellerEmail,
		Message:     input.Message,
	}}

	if err := s.db.WithContext(ctx).Create(&messages).Error; err != nil {
		s.logger.Error("Error inserting message",
			zap.String("listing_id", input.ListingID), zap.Error(err))
		return nil, &BackendError{Code: "DATABASE_ERROR", Message: "Failed to send message", Err: err}
	}

	s.logger.Info("Message sent", zap.String("listing_id", input.ListingID))
	return messages, nil
}
