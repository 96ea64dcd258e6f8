package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/marketplace-api/services"
	"go.uber.org/zap"
)

// SendMessageRequest represents the request body for contacting a seller.
// Required fields are checked by the message service so that a missing
// listing ID and a missing message produce the same error.
type SendMessageRequest struct {
	ListingID   string `json:"listing_id"`
	BuyerEmail  string `json:"buyer_email"`
	SellerEmail string `json:"seller_email"`
	Message     string `json:"message"`
}

// MessageController serves buyer-to-seller messaging
type MessageController struct {
	messages *services.MessageService
	logger   *zap.Logger
}

// NewMessageController creates a message controller
func NewMessageController(messages *services.MessageService, logger *zap.Logger) *MessageController {
	return &MessageController{messages: messages, logger: logger}
}

// SendMessage handles POST /api/messages - sends a message to a listing's seller
func (mc *MessageController) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, mc.logger, invalidBody(err))
		return
	}

	messages, err := mc.messages.Send(c.Request.Context(), services.NewMessage{
		ListingID:   req.ListingID,
		BuyerEmail:  req.BuyerEmail,
		SellerEmail: req.SellerEmail,
		Message:     req.Message,
	})
	if err != nil {
		respondError(c, mc.logger, err)
		return
	}

	c.JSON(http.StatusCreated, messages)
}
