package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/marketplace-api/utils"
)

// ListCategories handles GET /api/categories - the fixed category catalog
func ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, utils.Categories)
}

// GetCategory handles GET /api/categories/:slug - the display name for a slug.
// Unknown slugs are humanized rather than rejected.
func GetCategory(c *gin.Context) {
	slug := c.Param("slug")

	name := utils.HumanizeSlug(slug)
	category, known := utils.FindCategory(slug)
	if known {
		name = category.Name
	}

	c.JSON(http.StatusOK, gin.H{
		"value": slug,
		"name":  name,
		"known": known,
	})
}
