package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/marketplace-api/models"
	"github.com/kendall-kelly/marketplace-api/services"
	"github.com/kendall-kelly/marketplace-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	return testutil.NewTestDB(t)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

func setupListingRouter(db *gorm.DB) *gin.Engine {
	lc := NewListingController(services.NewListingService(db, zap.NewNop()), zap.NewNop())

	router := setupTestRouter()
	router.GET("/listings", lc.ListListings)
	router.GET("/listings/:id", lc.GetListing)
	router.POST("/listings", lc.CreateListing)
	router.GET("/search", lc.SearchListings)
	return router
}

func closeTestDB(t *testing.T, db *gorm.DB) {
	testutil.CloseDB(t, db)
}

func createListings(t *testing.T, db *gorm.DB, n int, category string) []models.Listing {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	listings := make([]models.Listing, 0, n)
	for i := 1; i <= n; i++ {
		listing := models.Listing{
			Title:       fmt.Sprintf("Listing %d", i),
			Price:       float64(i * 10),
			Category:    category,
			SellerEmail: "seller@example.com",
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, db.Create(&listing).Error)
		listings = append(listings, listing)
	}
	return listings
}

func doRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewBuffer(payload)
	} else {
		reader = &bytes.Buffer{}
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	var response []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	return response
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	return response
}

func TestListListings_Pagination(t *testing.T) {
	db := setupTestDB(t)
	createListings(t, db, 5, "electronics")
	router := setupListingRouter(db)

	tests := []struct {
		name           string
		queryParams    string
		expectedTitles []string
	}{
		{
			name:           "Default pagination",
			queryParams:    "",
			expectedTitles: []string{"Listing 5", "Listing 4", "Listing 3", "Listing 2", "Listing 1"},
		},
		{
			name:           "Page 1 with limit 2",
			queryParams:    "?page=1&limit=2",
			expectedTitles: []string{"Listing 5", "Listing 4"},
		},
		{
			name:           "Page 2 with limit 2",
			queryParams:    "?page=2&limit=2",
			expectedTitles: []string{"Listing 3", "Listing 2"},
		},
		{
			name:           "Page 3 with limit 2",
			queryParams:    "?page=3&limit=2",
			expectedTitles: []string{"Listing 1"},
		},
		{
			name:           "Page past the end",
			queryParams:    "?page=4&limit=2",
			expectedTitles: []string{},
		},
		{
			name:           "Page whose offset overflows",
			queryParams:    "?page=4611686018427387904&limit=4",
			expectedTitles: []string{},
		},
		{
			name:           "Empty values fall back to defaults",
			queryParams:    "?page=&limit=",
			expectedTitles: []string{"Listing 5", "Listing 4", "Listing 3", "Listing 2", "Listing 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodGet, "/listings"+tt.queryParams, nil)
			assert.Equal(t, http.StatusOK, w.Code)

			titles := []string{}
			for _, item := range decodeList(t, w) {
				titles = append(titles, item["title"].(string))
			}
			assert.Equal(t, tt.expectedTitles, titles)
		})
	}
}

func TestListListings_CategoryFilter(t *testing.T) {
	db := setupTestDB(t)
	createListings(t, db, 3, "pets-animals")
	createListings(t, db, 2, "automotive")
	router := setupListingRouter(db)

	w := doRequest(router, http.MethodGet, "/listings?category=pets-animals", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	items := decodeList(t, w)
	assert.Len(t, items, 3)
	for _, item := range items {
		assert.Equal(t, "pets-animals", item["category"])
		assert.Equal(t, "Pets & Animals", item["category_label"])
	}
}

func TestListListings_BadParams(t *testing.T) {
	router := setupListingRouter(setupTestDB(t))

	tests := []struct {
		name          string
		queryParams   string
		expectedError string
		expectedCode  string
	}{
		{"Empty category", "?category=", "category required", "CATEGORY_REQUIRED"},
		{"Non-numeric page", "?page=abc", "page must be an integer", "INVALID_PAGE"},
		{"Zero page", "?page=0", "page must be a positive integer", "INVALID_PAGE"},
		{"Negative limit", "?limit=-5", "limit must be between 1 and 100", "INVALID_LIMIT"},
		{"Huge limit", "?limit=1000", "limit must be between 1 and 100", "INVALID_LIMIT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodGet, "/listings"+tt.queryParams, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			response := decodeObject(t, w)
			assert.Equal(t, tt.expectedError, response["error"])
			assert.Equal(t, tt.expectedCode, response["code"])
		})
	}
}

func TestListListings_BackendError(t *testing.T) {
	db := setupTestDB(t)
	router := setupListingRouter(db)
	closeTestDB(t, db)

	w := doRequest(router, http.MethodGet, "/listings", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	response := decodeObject(t, w)
	assert.Equal(t, "DATABASE_ERROR", response["code"])
	assert.NotEmpty(t, response["error"])
}

func TestGetListing(t *testing.T) {
	db := setupTestDB(t)
	listings := createListings(t, db, 2, "books-media")
	router := setupListingRouter(db)

	w := doRequest(router, http.MethodGet, "/listings/"+listings[0].ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := decodeObject(t, w)
	assert.Equal(t, listings[0].ID, response["id"])
	assert.Equal(t, "Listing 1", response["title"])
	assert.Equal(t, float64(10), response["price"])
	assert.Equal(t, "Books & Media", response["category_label"])
	assert.Nil(t, response["description"])
}

func TestGetListing_NotFound(t *testing.T) {
	router := setupListingRouter(setupTestDB(t))

	w := doRequest(router, http.MethodGet, "/listings/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	response := decodeObject(t, w)
	assert.Equal(t, "Listing not found", response["error"])
	assert.Equal(t, "LISTING_NOT_FOUND", response["code"])
}

func TestGetListing_BackendError(t *testing.T) {
	db := setupTestDB(t)
	router := setupListingRouter(db)
	closeTestDB(t, db)

	w := doRequest(router, http.MethodGet, "/listings/any", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to fetch listing", decodeObject(t, w)["error"])
}

func TestCreateListing(t *testing.T) {
	validBody := func() map[string]interface{} {
		return map[string]interface{}{
			"title":        "Road bike",
			"description":  "54cm frame",
			"price":        350.5,
			"category":     "sports-outdoors",
			"seller_email": "seller@example.com",
			"image_url":    "https://cdn.example.com/bike.jpg",
			"location":     "Denver, CO",
		}
	}

	tests := []struct {
		name           string
		mutate         func(body map[string]interface{})
		expectedStatus int
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name:           "All fields",
			mutate:         func(map[string]interface{}) {},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				assert.NotEmpty(t, response["id"])
				assert.Equal(t, "Road bike", response["title"])
				assert.Equal(t, "54cm frame", response["description"])
				assert.Equal(t, 350.5, response["price"])
				assert.Equal(t, "sports-outdoors", response["category"])
				assert.Equal(t, "seller@example.com", response["seller_email"])
				assert.Equal(t, "https://cdn.example.com/bike.jpg", response["image_url"])
				assert.Equal(t, "Denver, CO", response["location"])
				assert.NotEmpty(t, response["created_at"])
			},
		},
		{
			name: "Optional fields omitted default to null",
			mutate: func(body map[string]interface{}) {
				delete(body, "description")
				delete(body, "image_url")
				delete(body, "location")
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				assert.Nil(t, response["description"])
				assert.Nil(t, response["image_url"])
				assert.Nil(t, response["location"])
			},
		},
		{
			name:           "Free item",
			mutate:         func(body map[string]interface{}) { body["price"] = 0 },
			expectedStatus: http.StatusCreated,
		},
		{name: "Missing title", mutate: func(b map[string]interface{}) { delete(b, "title") }, expectedStatus: http.StatusBadRequest},
		{name: "Empty title", mutate: func(b map[string]interface{}) { b["title"] = "" }, expectedStatus: http.StatusBadRequest},
		{name: "Blank title", mutate: func(b map[string]interface{}) { b["title"] = "   " }, expectedStatus: http.StatusBadRequest},
		{name: "Missing price", mutate: func(b map[string]interface{}) { delete(b, "price") }, expectedStatus: http.StatusBadRequest},
		{name: "Negative price", mutate: func(b map[string]interface{}) { b["price"] = -1 }, expectedStatus: http.StatusBadRequest},
		{name: "Price as text", mutate: func(b map[string]interface{}) { b["price"] = "cheap" }, expectedStatus: http.StatusBadRequest},
		{name: "Missing category", mutate: func(b map[string]interface{}) { delete(b, "category") }, expectedStatus: http.StatusBadRequest},
		{name: "Missing seller email", mutate: func(b map[string]interface{}) { delete(b, "seller_email") }, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			router := setupListingRouter(db)

			body := validBody()
			tt.mutate(body)
			w := doRequest(router, http.MethodPost, "/listings", body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			response := decodeObject(t, w)
			var count int64
			db.Model(&models.Listing{}).Count(&count)

			if tt.expectedStatus == http.StatusBadRequest {
				assert.Equal(t, "VALIDATION_ERROR", response["code"])
				assert.NotEmpty(t, response["error"])
				assert.Zero(t, count, "no row should be persisted")
				return
			}

			assert.Equal(t, int64(1), count)
			if tt.checkResponse != nil {
				tt.checkResponse(t, response)
			}
		})
	}
}

func TestCreateListing_MissingFieldsMessage(t *testing.T) {
	router := setupListingRouter(setupTestDB(t))

	w := doRequest(router, http.MethodPost, "/listings", map[string]interface{}{"title": "Only a title"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	response := decodeObject(t, w)
	assert.Equal(t, "missing required fields", response["error"])
	assert.NotEmpty(t, response["details"])
}

func TestCreateListing_NotIdempotent(t *testing.T) {
	db := setupTestDB(t)
	router := setupListingRouter(db)
	body := map[string]interface{}{
		"title": "Desk", "price": 40, "category": "home-garden", "seller_email": "s@example.com",
	}

	first := decodeObject(t, doRequest(router, http.MethodPost, "/listings", body))
	second := decodeObject(t, doRequest(router, http.MethodPost, "/listings", body))

	assert.NotEqual(t, first["id"], second["id"])
}

func TestCreateListing_InvalidJSON(t *testing.T) {
	router := setupListingRouter(setupTestDB(t))

	req, _ := http.NewRequest(http.MethodPost, "/listings", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateListing_BackendError(t *testing.T) {
	db := setupTestDB(t)
	router := setupListingRouter(db)
	closeTestDB(t, db)

	w := doRequest(router, http.MethodPost, "/listings", map[string]interface{}{
		"title": "Desk", "price": 40, "category": "home-garden", "seller_email": "s@example.com",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decodeObject(t, w)["error"], "closed")
}

func TestSearchListings(t *testing.T) {
	db := setupTestDB(t)
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	seed := []models.Listing{
		{Title: "Canon camera", Description: strPtr("Mirrorless body"), CreatedAt: base},
		{Title: "Tripod", Description: strPtr("Works with any CAMERA"), CreatedAt: base.Add(time.Hour)},
		{Title: "Camera bag", CreatedAt: base.Add(2 * time.Hour)},
		{Title: "Bookshelf", Description: strPtr("Oak"), CreatedAt: base.Add(3 * time.Hour)},
	}
	for i := range seed {
		seed[i].Price = 20
		seed[i].Category = "electronics"
		seed[i].SellerEmail = "s@example.com"
		require.NoError(t, db.Create(&seed[i]).Error)
	}
	router := setupListingRouter(db)

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedTitles []string
	}{
		{"Matches title or description", "?q=camera", http.StatusOK, []string{"Camera bag", "Tripod", "Canon camera"}},
		{"Limit caps results", "?q=camera&limit=2", http.StatusOK, []string{"Camera bag", "Tripod"}},
		{"No matches", "?q=piano", http.StatusOK, []string{}},
		{"Query too short", "?q=ca", http.StatusBadRequest, nil},
		{"Missing query", "", http.StatusBadRequest, nil},
		{"Bad limit", "?q=camera&limit=x", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodGet, "/search"+tt.query, nil)
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus != http.StatusOK {
				assert.NotEmpty(t, decodeObject(t, w)["error"])
				return
			}

			titles := []string{}
			for _, item := range decodeList(t, w) {
				titles = append(titles, item["title"].(string))
			}
			assert.Equal(t, tt.expectedTitles, titles)
		})
	}
}

func TestSearchListings_ShortQueryMessage(t *testing.T) {
	router := setupListingRouter(setupTestDB(t))

	w := doRequest(router, http.MethodGet, "/search?q=ab", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Query must be at least 3 characters long.", decodeObject(t, w)["error"])
}

func strPtr(s string) *string {
	return &s
}
