package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/marketplace-api/services"
	"go.uber.org/zap"
)

// CreateListingRequest represents the request body for creating a listing
type CreateListingRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Category    string   `json:"category" binding:"required"`
	SellerEmail string   `json:"seller_email" binding:"required"`
	ImageURL    *string  `json:"image_url"`
	Location    *string  `json:"location"`
}

// ListingController serves listing browse, lookup, search and creation
type ListingController struct {
	listings *services.ListingService
	logger   *zap.Logger
}

// NewListingController creates a listing controller
func NewListingController(listings *services.ListingService, logger *zap.Logger) *ListingController {
	return &ListingController{listings: listings, logger: logger}
}

// ListListings handles GET /api/listings?page=&limit=&category= - one page of listings, newest first
func (lc *ListingController) ListListings(c *gin.Context) {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		respondError(c, lc.logger, err)
		return
	}
	limit, err := queryInt(c, "limit", services.DefaultPageSize)
	if err != nil {
		respondError(c, lc.logger, err)
		return
	}

	// A present-but-empty category is rejected, so keep the distinction
	var category *string
	if value, ok := c.GetQuery("category"); ok {
		category = &value
	}

	lc.logger.Debug("Fetching listings", zap.Int("page", page), zap.Int("limit", limit))

	listings, err := lc.listings.ListByPage(c.Request.Context(), page, limit, category)
	if err != nil {
		respondError(c, lc.logger, err)
		return
	}

	c.JSON(http.StatusOK, listings)
}

// GetListing handles GET /api/listings/:id - a single listing
func (lc *ListingController) GetListing(c *gin.Context) {
	listing, err := lc.listings.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, lc.logger, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// CreateListing handles POST /api/listings - creates a new listing
func (lc *ListingController) CreateListing(c *gin.Context) {
	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, lc.logger, &services.ValidationError{
			Code:    "VALIDATION_ERROR",
			Message: "missing required fields",
			Details: err.Error(),
		})
		return
	}

	listing, err := lc.listings.Create(c.Request.Context(), services.NewListing{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		SellerEmail: req.SellerEmail,
		ImageURL:    req.ImageURL,
		Location:    req.Location,
	})
	if err != nil {
		respondError(c, lc.logger, err)
		return
	}

	c.JSON(http.StatusCreated, listing)
}

// SearchListings handles GET /api/search?q=&limit= - substring search over title and description
func (lc *ListingController) SearchListings(c *gin.Context) {
	limit, err := queryInt(c, "limit", services.DefaultPageSize)
	if err != nil {
		respondError(c, lc.logger, err)
		return
	}

	listings, err := lc.listings.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		respondError(c, lc.logger, err)
		return
	}

	c.JSON(http.StatusOK, listings)
}

// queryInt reads an integer query parameter, falling back to def when it is absent or empty
func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &services.ValidationError{
			Code:    "INVALID_" + strings.ToUpper(key),
			Message: key + " must be an integer",
		}
	}
	return value, nil
}
