package mapping

import (
	"fmt"

	"archie-core-vtex-connector/internal/domain"
)

const defaultCatalogName = "NONAME"

// SKUSuggestion builds the catalog suggestion for one variant of a product.
// variant carries the storefront lookup (collection title); currency comes from the shop record.
func SKUSuggestion(product *domain.ProductPayload, pv domain.ProductVariant, variant *domain.Variant, sellerID, currency string) *domain.SKUSuggestion {
	skuName := fmt.Sprintf("%s-%d", sellerID, pv.ID)

	brand := product.Vendor
	if brand == "" {
		brand = defaultCatalogName
	}
	category := defaultCatalogName
	if variant != nil && variant.CollectionTitle != "" {
		category = variant.CollectionTitle
	}

	specs := Specifications(product.Options, pv)
	return &domain.SKUSuggestion{
		ProductName:              product.Title + " " + pv.Title,
		ProductID:                product.ID,
		ProductDescription:       product.BodyHTML,
		BrandName:                brand,
		SkuName:                  skuName,
		SellerID:                 sellerID,
		Height:                   1,
		Width:                    1,
		Length:                   1,
		WeightKg:                 pv.Weight,
		RefID:                    skuName,
		SellerStockKeepingUnitID: pv.ID,
		CategoryFullPath:         category,
		SkuSpecifications:        specs,
		ProductSpecifications:    specs,
		Images:                   Images(product.Images),
		MeasurementUnit:          "un",
		UnitMultiplier:           1,
		AvailableQuantity:        pv.InventoryQuantity,
		Pricing: domain.SuggestedPricing{
			Currency:       currency,
			SalePrice:      pv.Price.InexactFloat64(),
			CurrencySymbol: currency,
		},
	}
}

// Specifications lists the option values set on the variant, one per product option
func Specifications(options []domain.ProductOption, pv domain.ProductVariant) []domain.Specification {
	specs := make([]domain.Specification, 0, len(options))
	for _, opt := range options {
		value := pv.Option(opt.Position)
		if value == "" {
			continue
		}
		specs = append(specs, domain.Specification{
			FieldName:   opt.Name,
			FieldValues: []string{value},
		})
	}
	return specs
}

// Images maps product images to suggestion images
func Images(images []domain.ProductImage) []domain.SuggestedImage {
	out := make([]domain.SuggestedImage, 0, len(images))
	for _, img := range images {
		out = append(out, domain.SuggestedImage{
			ImageName: fmt.Sprintf("Image%d", img.ID),
			ImageURL:  img.Src,
		})
	}
	return out
}
