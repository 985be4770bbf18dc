package model

import (
	"time"

	"storefront/internal/shared/dto"

	"github.com/shopspring/decimal"
)

func seedProduct(id, name, description string, price int64, categoryID, image string, gallery []string, inventory int, featured bool, rating float64, created string) dto.Product {
	createdAt, err := time.Parse(time.RFC3339, created)
	if err != nil {
		panic(err)
	}
	return dto.Product{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       decimal.NewFromInt(price),
		Currency:    dto.DefaultCurrency,
		CategoryID:  categoryID,
		Image:       image,
		Gallery:     gallery,
		Inventory:   inventory,
		Featured:    featured,
		Rating:      rating,
		CreatedAt:   createdAt,
	}
}

// DefaultSeed returns a fresh copy of the demo catalog
func DefaultSeed() []dto.Product {
	return []dto.Product{
		seedProduct("p1", "Everyday Linen Shirt", "Breathable linen shirt with a relaxed fit and corozo buttons.",
			78, "c1", "/images/products/linen-shirt.jpg",
			[]string{"/images/products/linen-shirt.jpg", "/images/products/linen-shirt-detail.jpg"},
			42, true, 4.6, "2024-02-01T08:00:00Z"),
		seedProduct("p2", "Ridge Knit Sweater", "Organic cotton sweater with a modern textured stitch.",
			96, "c1", "/images/products/ridge-knit.jpg",
			[]string{"/images/products/ridge-knit.jpg", "/images/products/ridge-knit-detail.jpg"},
			15, true, 4.8, "2024-02-15T08:00:00Z"),
		seedProduct("p3", "Sierra Canvas Tote", "Durable canvas tote with interior organization and leather trim.",
			68, "c2", "/images/products/sierra-tote.jpg",
			[]string{"/images/products/sierra-tote.jpg", "/images/products/sierra-tote-detail.jpg"},
			30, true, 4.7, "2024-01-28T08:00:00Z"),
		seedProduct("p4", "Marble Keep Cup", "Handmade ceramic tumbler finished with a satin glaze.",
			32, "c3", "/images/products/marble-cup.jpg",
			[]string{"/images/products/marble-cup.jpg"},
			60, false, 4.5, "2024-01-20T08:00:00Z"),
		seedProduct("p5", "Cloud Cotton Throw", "Supremely soft throw woven from recycled cotton blends.",
			120, "c3", "/images/products/cloud-throw.jpg",
			[]string{"/images/products/cloud-throw.jpg", "/images/products/cloud-throw-detail.jpg"},
			22, true, 4.9, "2024-02-20T08:00:00Z"),
		seedProduct("p6", "Arc Leather Belt", "Vegetable-tanned leather belt finished with brushed brass hardware.",
			58, "c2", "/images/products/arc-belt.jpg",
			[]string{"/images/products/arc-belt.jpg"},
			45, false, 4.3, "2024-01-12T08:00:00Z"),
		seedProduct("p7", "Summit Quilted Jacket", "Insulated jacket crafted with recycled fill and water-resistant shell.",
			168, "c1", "/images/products/summit-jacket.jpg",
			[]string{"/images/products/summit-jacket.jpg", "/images/products/summit-jacket-detail.jpg"},
			12, false, 4.4, "2023-12-28T08:00:00Z"),
		seedProduct("p8", "Aero Wool Scarf", "Featherweight merino scarf with ombré gradient.",
			54, "c2", "/images/products/aero-scarf.jpg",
			[]string{"/images/products/aero-scarf.jpg"},
			80, false, 4.2, "2024-02-05T08:00:00Z"),
		seedProduct("p9", "Lumen Table Lamp", "Sculptural table lamp with warm LED illumination and linen shade.",
			210, "c3", "/images/products/lumen-lamp.jpg",
			[]string{"/images/products/lumen-lamp.jpg", "/images/products/lumen-lamp-detail.jpg"},
			18, false, 4.6, "2024-01-05T08:00:00Z"),
	}
}
