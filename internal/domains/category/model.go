package category

import "storefront/internal/shared/dto"

// Category groups products in the catalog
type Category = dto.Category

// DefaultSeed is the storefront's category tree (flat)
var DefaultSeed = []Category{
	{ID: "c1", Name: "Apparel", Description: "Tailored essentials for every day"},
	{ID: "c2", Name: "Accessories", Description: "Finish every look with thoughtful details"},
	{ID: "c3", Name: "Home & Living", Description: "Objects that make your space feel like you"},
}
