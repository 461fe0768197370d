package mapping

import (
	"encoding/json"

	"archie-core-vtex-connector/internal/domain"

	"github.com/shopspring/decimal"
)

const domesticZone = "Domestic"

// QuoteItems prices every simulated cart line from its resolved variant.
// variants must be indexed like req.Items.
func QuoteItems(req *domain.SimulationRequest, variants []*domain.Variant, sellerID string) []domain.QuoteItem {
	items := make([]domain.QuoteItem, len(req.Items))
	for i, item := range req.Items {
		variant := variants[i]
		price := ToMinorUnits(variant.Price)
		availability := domain.AvailabilityUnavailable
		if variant.InventoryQuantity != 0 {
			availability = domain.AvailabilityAvailable
		}
		items[i] = domain.QuoteItem{
			ID:                  item.ID,
			RequestIndex:        i,
			Quantity:            item.Quantity,
			Price:               price,
			ListPrice:           price,
			SellingPrice:        price,
			MeasurementUnit:     "un",
			Seller:              sellerID,
			UnitMultiplier:      1,
			AttachmentOfferings: []json.RawMessage{},
			Offerings:           []json.RawMessage{},
			PriceTags:           []json.RawMessage{},
			Availability:        availability,
		}
	}
	return items
}

// DomesticShippingCost returns the first price-based rate of the Domestic zone
// in minor units, or 0 when there is none.
func DomesticShippingCost(zones []domain.ShippingZone) int64 {
	for _, zone := range zones {
		if zone.Name != domesticZone {
			continue
		}
		if len(zone.PriceBasedShippingRates) == 0 {
			return 0
		}
		return ToMinorUnits(zone.PriceBasedShippingRates[0].Price)
	}
	return 0
}

// SplitShipping spreads total evenly over count items, rounded half-up
func SplitShipping(total int64, count int) int64 {
	if count <= 0 {
		return 0
	}
	return decimal.NewFromInt(total).Div(decimal.NewFromInt(int64(count))).Round(0).IntPart()
}

// LogisticsLines builds the delivery quote of every simulated cart line
func LogisticsLines(req *domain.SimulationRequest, variants []*domain.Variant, shippingPerItem int64) []domain.LogisticsLine {
	lines := make([]domain.LogisticsLine, len(req.Items))
	for i, item := range req.Items {
		stock := variants[i].InventoryQuantity
		lines[i] = domain.LogisticsLine{
			ItemIndex:    i,
			Quantity:     item.Quantity,
			StockBalance: stock,
			ShipsTo:      []string{req.Country},
			Slas: []domain.SLA{{
				ID:               "Normal",
				DeliveryChannel:  "delivery",
				Name:             "Normal",
				ShippingEstimate: "1bd",
				Price:            shippingPerItem,
			}},
			DeliveryChannels: []domain.DeliveryChannel{{
				ID:           "delivery",
				StockBalance: stock,
			}},
		}
	}
	return lines
}

// SimulationResponse assembles the quote returned to the marketplace
func SimulationResponse(req *domain.SimulationRequest, items []domain.QuoteItem, logistics []domain.LogisticsLine) *domain.SimulationResponse {
	return &domain.SimulationResponse{
		Country:        req.Country,
		PostalCode:     req.PostalCode,
		GeoCoordinates: req.GeoCoordinates,
		PickupPoints:   []json.RawMessage{},
		Messages:       []json.RawMessage{},
		Items:          items,
		LogisticsInfo:  logistics,
	}
}
