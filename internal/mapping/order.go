package mapping

import (
	"fmt"
	"strconv"
	"strings"

	"archie-core-vtex-connector/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	shippingCode  = "INT.TP"
	shippingTitle = "Standard"
)

// StorefrontOrder translates a marketplace order into the storefront
// order-create payload. variants must be indexed like order.Items.
func StorefrontOrder(order *domain.MarketplaceOrder, variants []*domain.Variant) (*domain.StorefrontOrder, error) {
	if len(variants) != len(order.Items) {
		return nil, fmt.Errorf("got %d variants for %d items", len(variants), len(order.Items))
	}

	lineItems := make([]domain.StorefrontLineItem, 0, len(order.Items))
	for i, item := range order.Items {
		variantID, err := item.ID.Int64()
		if err != nil {
			return nil, err
		}
		multiplier := effectiveMultiplier(item.UnitMultiplier)
		lineItems = append(lineItems, domain.StorefrontLineItem{
			Title:     variants[i].Title,
			VariantID: variantID,
			Quantity:  int(decimal.NewFromInt(int64(item.Quantity)).Mul(multiplier).Round(0).IntPart()),
			Price:     FromMinorUnits(item.Price.Div(multiplier)),
		})
	}

	shipping := decimal.Zero
	for _, leg := range order.ShippingData.LogisticsInfo {
		shipping = shipping.Add(leg.Price)
	}

	profile := order.ClientProfileData
	addr := order.ShippingData.Address
	address := domain.StorefrontAddress{
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Address1:  strings.TrimSpace(addr.Street + " " + addr.Number),
		Phone:     profile.Phone,
		City:      addr.City,
		Province:  addr.State,
		Country:   addr.Country,
		Zip:       addr.PostalCode,
	}

	return &domain.StorefrontOrder{
		LineItems: lineItems,
		ShippingLines: []domain.StorefrontShipping{{
			Code:  shippingCode,
			Title: shippingTitle,
			Price: FromMinorUnits(shipping),
		}},
		Customer: domain.StorefrontCustomer{
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
			Email:     profile.Email,
		},
		BillingAddress:    address,
		ShippingAddress:   address,
		Email:             profile.Email,
		Reference:         order.MarketplaceOrderID,
		FinancialStatus:   "pending",
		FulfillmentStatus: "fulfilled",
		Transactions: []domain.StorefrontTransaction{{
			Amount: FromMinorUnits(order.MarketplacePaymentValue),
			Kind:   "authorization",
			Status: "success",
		}},
	}, nil
}

// PlacementAck builds the response VTEX expects once the storefront order exists
func PlacementAck(order *domain.MarketplaceOrder, echo domain.PlacementEcho, storefrontOrderID int64) domain.PlacementAck {
	return domain.PlacementAck{
		MarketplaceOrderID: order.MarketplaceOrderID,
		OrderID:            strconv.FormatInt(storefrontOrderID, 10),
		FollowUpEmail:      order.ClientProfileData.Email,
		Items:              echo.Items,
		ClientProfileData:  echo.ClientProfileData,
		ShippingData:       echo.ShippingData,
	}
}
