package admin

import (
	"fmt"
	"strings"

	"go-storefront/models"
	"go-storefront/utils"
)

const (
	MaxShortDescription = 200
	MinImages           = 2
	MaxImages           = 5
)

// ValidateProduct checks a create/update payload before it is sent
func ValidateProduct(in models.ProductInput) utils.FieldErrors {
	errs := utils.FieldErrors{}

	if strings.TrimSpace(in.Title) == "" {
		errs["title"] = "Title is required"
	}
	switch short := strings.TrimSpace(in.ShortDescription); {
	case short == "":
		errs["shortDescription"] = "Short description is required"
	case len([]rune(short)) > MaxShortDescription:
		errs["shortDescription"] = fmt.Sprintf("Short description must be at most %d characters", MaxShortDescription)
	}
	if strings.TrimSpace(in.FullDescription) == "" {
		errs["fullDescription"] = "Full description is required"
	}
	if strings.TrimSpace(in.Category) == "" {
		errs["category"] = "Category is required"
	}
	if in.Price <= 0 {
		errs["price"] = "Price must be greater than 0"
	}

	switch {
	case len(in.Images) < MinImages:
		errs["images"] = fmt.Sprintf("Minimum %d images required", MinImages)
	case len(in.Images) > MaxImages:
		errs["images"] = fmt.Sprintf("Maximum %d images allowed", MaxImages)
	default:
		for _, img := range in.Images {
			if !utils.IsAbsoluteURL(strings.TrimSpace(img)) {
				errs["images"] = "Every image must be a valid URL"
				break
			}
		}
	}

	if in.Stock < 0 {
		errs["stock"] = "Stock cannot be negative"
	}
	if len(in.Sizes) == 0 {
		errs["sizes"] = "Select at least one size"
	}
	if len(in.Colors) == 0 {
		errs["colors"] = "Add at least one color"
	}
	return errs
}

// FilterProducts keeps products whose title contains search and whose
// category matches; "all" or "" matches every category
func FilterProducts(products []models.Product, search, category string) []models.Product {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if search != "" && !strings.Contains(strings.ToLower(p.Title), search) {
			continue
		}
		if category != "" && category != "all" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}
