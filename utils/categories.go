package utils

// Category is one entry of the fixed category catalog
type Category struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Href  string `json:"href"`
}

// Categories lists every category a listing can be filed under, in menu order
var Categories = []Category{
	{Name: "Electronics", Value: "electronics", Href: "/categories/electronics"},
	{Name: "Fashion", Value: "fashion", Href: "/categories/fashion"},
	{Name: "Home & Garden", Value: "home-garden", Href: "/categories/home-garden"},
	{Name: "Sports & Outdoors", Value: "sports-outdoors", Href: "/categories/sports-outdoors"},
	{Name: "Toys & Games", Value: "toys-games", Href: "/categories/toys-games"},
	{Name: "Automotive", Value: "automotive", Href: "/categories/automotive"},
	{Name: "Health & Beauty", Value: "health-beauty", Href: "/categories/health-beauty"},
	{Name: "Books & Media", Value: "books-media", Href: "/categories/books-media"},
	{Name: "Collectibles & Art", Value: "collectibles-art", Href: "/categories/collectibles-art"},
	{Name: "Music & Instruments", Value: "music-instruments", Href: "/categories/music-instruments"},
	{Name: "Pets & Animals", Value: "pets-animals", Href: "/categories/pets-animals"},
}

// FindCategory looks a category up by its slug
func FindCategory(value string) (Category, bool) {
	for _, category := range Categories {
		if category.Value == value {
			return category, true
		}
	}
	return Category{}, false
}
