package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/kendall-kelly/marketplace-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// DefaultPageSize is used when a caller does not ask for a limit
	DefaultPageSize = 10
	// MaxPageSize caps limit on listing and search queries
	MaxPageSize = 100
	// MinSearchQueryLength is the shortest accepted search query, in characters
	MinSearchQueryLength = 3
)

// NewListing holds the fields a seller submits for a new listing
type NewListing struct {
	Title       string
	Description *string
	Price       *float64
	Category    string
	SellerEmail string
	ImageURL    *string
	Location    *string
}

// Validate checks the required fields before anything touches the database
func (n NewListing) Validate() error {
	if isBlank(n.Title) || n.Price == nil || isBlank(n.Category) || isBlank(n.SellerEmail) {
		return &ValidationError{
			Code:    "VALIDATION_ERROR",
			Message: "missing required fields",
			Details: "title, price, category and seller_email are required",
		}
	}
	if *n.Price < 0 {
		return &ValidationError{
			Code:    "VALIDATION_ERROR",
			Message: "price must not be negative",
		}
	}
	return nil
}

// ListingService answers listing queries and creates listings
type ListingService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewListingService creates a listing service backed by db
func NewListingService(db *gorm.DB, logger *zap.Logger) *ListingService {
	return &ListingService{db: db, logger: logger}
}

// PageRange returns the inclusive, zero-based row range covered by a page
func PageRange(page, limit int) (start, end int) {
	return (page - 1) * limit, page*limit - 1
}

// ListByPage returns one page of listings, newest first. A non-nil category
// restricts results to that exact slug; a non-nil empty category is rejected.
func (s *ListingService) ListByPage(ctx context.Context, page, limit int, category *string) ([]models.Listing, error) {
	if page < 1 {
		return nil, newValidationError("INVALID_PAGE", "page must be a positive integer")
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	if category != nil && *category == "" {
		return nil, newValidationError("CATEGORY_REQUIRED", "category required")
	}

	listings := []models.Listing{}
	// Offsets past math.MaxInt cannot hold any rows
	if page-1 > math.MaxInt/limit {
		return listings, nil
	}

	start, _ := PageRange(page, limit)
	query := s.db.WithContext(ctx).Model(&models.Listing{})
	if category != nil {
		query = query.Where("category = ?", *category)
	}

	err := newestFirst(query).Offset(start).Limit(limit).Find(&listings).Error
	if err != nil {
		s.logger.Error("Failed to list listings",
			zap.Int("page", page), zap.Int("limit", limit), zap.Error(err))
		return nil, newDatabaseError(err)
	}

	return listings, nil
}

// GetByID returns a single listing
func (s *ListingService) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	if id == "" {
		return nil, newValidationError("INVALID_REQUEST", "Listing ID is required")
	}

	var listing models.Listing
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&listing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Code: "LISTING_NOT_FOUND", Message: "Listing not found"}
	}
	if err != nil {
		s.logger.Error("Failed to fetch listing", zap.String("id", id), zap.Error(err))
		return nil, &BackendError{Code: "DATABASE_ERROR", Message: "Failed to fetch listing", Err: err}
	}

	return &listing, nil
}

// Search returns up to limit listings whose title or description contains
// query, ignoring case, newest first
func (s *ListingService) Search(ctx context.Context, query string, limit int) ([]models.Listing, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinSearchQueryLength {
		return nil, newValidationError("QUERY_TOO_SHORT", "Query must be at least 3 characters long.")
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	s.logger.Debug("Searching listings", zap.String("query", query), zap.Int("limit", limit))

	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	listings := []models.Listing{}
	err := newestFirst(s.db.WithContext(ctx).Model(&models.Listing{})).
		Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, pattern, pattern).
		Limit(limit).
		Find(&listings).Error
	if err != nil {
		s.logger.Error("Search failed", zap.String("query", query), zap.Error(err))
		return nil, newDatabaseError(err)
	}

	return listings, nil
}

// Create validates and inserts a new listing. Fields are stored exactly as
// submitted. Every call inserts a new row; identical submissions are not
// de-duplicated.
func (s *ListingService) Create(ctx context.Context, input NewListing) (*models.Listing, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	listing := models.Listing{
		Title:       input.Title,
		Description: input.Description,
		Price:       *input.Price,
		Category:    input.Category,
		SellerEmail: input.SellerEmail,
		ImageURL:    input.ImageURL,
		Location:    input.Location,
	}

	if err := s.db.WithContext(ctx).Create(&listing).Error; err != nil {
		s.logger.Error("Failed to create listing", zap.Error(err))
		return nil, newDatabaseError(err)
	}

	s.logger.Info("Listing created",
		zap.String("id", listing.ID), zap.String("category", listing.Category))
	return &listing, nil
}

// newestFirst orders by creation time, breaking ties on id so that paging
// is stable when timestamps collide
func newestFirst(query *gorm.DB) *gorm.DB {
	return query.Order("created_at DESC").Order("id DESC")
}

func validateLimit(limit int) error {
	if limit < 1 || limit > MaxPageSize {
		return newValidationError("INVALID_LIMIT", "limit must be between 1 and 100")
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
