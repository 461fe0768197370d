package domain

import "github.com/shopspring/decimal"

// StorefrontOrder is the order-create payload sent to the storefront.
// Monetary values are decimal strings in the shop currency.
type StorefrontOrder struct {
	LineItems         []StorefrontLineItem    `json:"line_items"`
	ShippingLines     []StorefrontShipping    `json:"shipping_lines"`
	Customer          StorefrontCustomer      `json:"customer"`
	BillingAddress    StorefrontAddress       `json:"billing_address"`
	ShippingAddress   StorefrontAddress       `json:"shipping_address"`
	Email             string                  `json:"email"`
	Reference         string                  `json:"reference"`
	FinancialStatus   string                  `json:"financial_status"`
	FulfillmentStatus string                  `json:"fulfillment_status"`
	Transactions      []StorefrontTransaction `json:"transactions"`
}

// StorefrontLineItem is a storefront order line
type StorefrontLineItem struct {
	Title     string `json:"title"`
	VariantID int64  `json:"variant_id"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

// StorefrontShipping is a storefront shipping line
type StorefrontShipping struct {
	Code  string `json:"code"`
	Title string `json:"title"`
	Price string `json:"price"`
}

// StorefrontCustomer is the buyer attached to a storefront order
type StorefrontCustomer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// StorefrontAddress is a storefront postal address
type StorefrontAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address1  string `json:"address1"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
	Province  string `json:"province"`
	Country   string `json:"country"`
	Zip       string `json:"zip"`
}

// StorefrontTransaction is a payment transaction on a storefront order
type StorefrontTransaction struct {
	Amount string `json:"amount"`
	Kind   string `json:"kind"`
	Status string `json:"status"`
}

// Variant is the storefront variant data needed to quote or place an order
type Variant struct {
	ID                int64
	Title             string
	Price             decimal.Decimal
	InventoryQuantity int
	CollectionTitle   string
}

// ShippingZone is a storefront shipping zone with its price-based rates
type ShippingZone struct {
	Name                    string         `json:"name"`
	PriceBasedShippingRates []ShippingRate `json:"price_based_shipping_rates"`
}

// ShippingRate is a price-based shipping rate
type ShippingRate struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ShopInfo is the subset of the storefront shop record the connector uses
type ShopInfo struct {
	Domain   string
	Currency string
}

// ProductPayload is the body of a products/update webhook
type ProductPayload struct {
	ID       int64            `json:"id"`
	Title    string           `json:"title"`
	BodyHTML string           `json:"body_html"`
	Vendor   string           `json:"vendor"`
	Variants []ProductVariant `json:"variants"`
	Options  []ProductOption  `json:"options"`
	Images   []ProductImage   `json:"images"`
}

// ProductVariant is a variant embedded in a product webhook
type ProductVariant struct {
	ID                int64           `json:"id"`
	Title             string          `json:"title"`
	Price             decimal.Decimal `json:"price"`
	Weight            float64         `json:"weight"`
	InventoryQuantity int             `json:"inventory_quantity"`
	Option1           *string         `json:"option1"`
	Option2           *string         `json:"option2"`
	Option3           *string         `json:"option3"`
}

// Option returns the variant value for the option at position (1-based)
func (v ProductVariant) Option(position int) string {
	var opt *string
	switch position {
	case 1:
		opt = v.Option1
	case 2:
		opt = v.Option2
	case 3:
		opt = v.Option3
	}
	if opt == nil {
		return ""
	}
	return *opt
}

// ProductOption is a product option definition
type ProductOption struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// ProductImage is a product image
type ProductImage struct {
	ID  int64  `json:"id"`
	Src string `json:"src"`
}

// OrderPayload is the body of the orders/* webhooks
type OrderPayload struct {
	ID                int64                `json:"id"`
	Reference         string               `json:"reference"`
	CurrentTotalPrice decimal.Decimal      `json:"current_total_price"`
	LineItems         []OrderPayloadLine   `json:"line_items"`
	Fulfillments      []FulfillmentPayload `json:"fulfillments"`
}

// OrderPayloadLine is a line of a storefront order webhook
type OrderPayloadLine struct {
	VariantID int64           `json:"variant_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// FulfillmentPayload is a fulfillment embedded in an order webhook
type FulfillmentPayload struct {
	ID              int64  `json:"id"`
	TrackingNumber  string `json:"tracking_number"`
	TrackingCompany string `json:"tracking_company"`
	TrackingURL     string `json:"tracking_url"`
}

// FromMarketplace reports whether the storefront order was placed by the marketplace
func (o OrderPayload) FromMarketplace() bool {
	return o.Reference != ""
}
