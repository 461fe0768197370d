package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// SkuID is a marketplace SKU identifier. VTEX sends it as a string but
// older integrations post plain numbers, so both are accepted.
type SkuID string

// UnmarshalJSON accepts either a JSON string or a JSON number
func (id *SkuID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = SkuID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid sku id %s: %w", data, err)
	}
	*id = SkuID(n.String())
	return nil
}

// Int64 returns the id as the numeric storefront variant id it mirrors
func (id SkuID) Int64() (int64, error) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("sku id %q is not a storefront variant id: %w", string(id), err)
	}
	return n, nil
}

// MarketplaceOrder is one element of the array VTEX posts to place an order.
// Monetary values are integer minor units.
type MarketplaceOrder struct {
	MarketplaceOrderID      string          `json:"marketplaceOrderId"`
	MarketplacePaymentValue decimal.Decimal `json:"marketplacePaymentValue"`
	Items                   []OrderItem     `json:"items"`
	ClientProfileData       ClientProfile   `json:"clientProfileData"`
	ShippingData            ShippingData    `json:"shippingData"`
}

// OrderItem is a marketplace order line
type OrderItem struct {
	ID             SkuID           `json:"id"`
	Quantity       int             `json:"quantity"`
	Seller         string          `json:"seller,omitempty"`
	UnitMultiplier decimal.Decimal `json:"unitMultiplier"`
	Price          decimal.Decimal `json:"price"`
}

// ClientProfile is the buyer profile attached to a marketplace order
type ClientProfile struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// ShippingData carries the delivery address and per-leg shipping costs
type ShippingData struct {
	Address       MarketplaceAddress `json:"address"`
	LogisticsInfo []LogisticsLeg     `json:"logisticsInfo"`
}

// MarketplaceAddress is a VTEX postal address
type MarketplaceAddress struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}

// LogisticsLeg is the shipping cost of one order item
type LogisticsLeg struct {
	ItemIndex   int             `json:"itemIndex"`
	SelectedSla string          `json:"selectedSla,omitempty"`
	Price       decimal.Decimal `json:"price"`
}

// PlacementEcho keeps the inbound JSON of the order parts VTEX expects back verbatim
type PlacementEcho struct {
	Items             json.RawMessage `json:"items"`
	ClientProfileData json.RawMessage `json:"clientProfileData"`
	ShippingData      json.RawMessage `json:"shippingData"`
}

// PlacementAck is returned to VTEX once the storefront order exists
type PlacementAck struct {
	MarketplaceOrderID string          `json:"marketplaceOrderId"`
	OrderID            string          `json:"orderId"`
	FollowUpEmail      string          `json:"followUpEmail"`
	Items              json.RawMessage `json:"items"`
	ClientProfileData  json.RawMessage `json:"clientProfileData"`
	ShippingData       json.RawMessage `json:"shippingData"`
	PaymentData        json.RawMessage `json:"paymentData"`
}

// OrderActionRequest is the body VTEX posts to cancel or fulfill an order
type OrderActionRequest struct {
	MarketplaceOrderID string `json:"marketplaceOrderId"`
}

// OrderAck acknowledges a marketplace cancel or fulfill call
type OrderAck struct {
	Date               string  `json:"date"`
	MarketplaceOrderID string  `json:"marketplaceOrderId"`
	OrderID            string  `json:"orderId"`
	Receipt            *string `json:"receipt"`
}

// SimulationRequest is a VTEX cart simulation (fulfillment quote) request
type SimulationRequest struct {
	Items          []SimulationItem `json:"items"`
	Country        string           `json:"country"`
	PostalCode     string           `json:"postalCode"`
	GeoCoordinates json.RawMessage  `json:"geoCoordinates"`
}

// SimulationItem is one cart line to quote
type SimulationItem struct {
	ID       SkuID  `json:"id"`
	Quantity int    `json:"quantity"`
	Seller   string `json:"seller,omitempty"`
}

// SimulationResponse is the quote returned to VTEX
type SimulationResponse struct {
	Country        string            `json:"country"`
	PostalCode     string            `json:"postalCode"`
	GeoCoordinates json.RawMessage   `json:"geoCoordinates"`
	PickupPoints   []json.RawMessage `json:"pickupPoints"`
	Messages       []json.RawMessage `json:"messages"`
	Items          []QuoteItem       `json:"items"`
	LogisticsInfo  []LogisticsLine   `json:"logisticsInfo"`
}

// QuoteItem is the price and availability of one simulated cart line
type QuoteItem struct {
	ID                  SkuID             `json:"id"`
	RequestIndex        int               `json:"requestIndex"`
	Quantity            int               `json:"quantity"`
	Price               int64             `json:"price"`
	ListPrice           int64             `json:"listPrice"`
	SellingPrice        int64             `json:"sellingPrice"`
	MeasurementUnit     string            `json:"measurementUnit"`
	MerchantName        *string           `json:"merchantName"`
	PriceValidUntil     *string           `json:"priceValidUntil"`
	Seller              string            `json:"seller"`
	UnitMultiplier      int               `json:"unitMultiplier"`
	AttachmentOfferings []json.RawMessage `json:"attachmentOfferings"`
	Offerings           []json.RawMessage `json:"offerings"`
	PriceTags           []json.RawMessage `json:"priceTags"`
	Availability        string            `json:"availability"`
}

// Availability values reported in a quote
const (
	AvailabilityAvailable   = "available"
	AvailabilityUnavailable = "unavailable"
)

// LogisticsLine is the delivery quote of one simulated cart line
type LogisticsLine struct {
	ItemIndex        int               `json:"itemIndex"`
	Quantity         int               `json:"quantity"`
	StockBalance     int               `json:"stockBalance"`
	ShipsTo          []string          `json:"shipsTo"`
	Slas             []SLA             `json:"slas"`
	DeliveryChannels []DeliveryChannel `json:"deliveryChannels"`
}

// SLA is a named delivery option
type SLA struct {
	ID               string `json:"id"`
	DeliveryChannel  string `json:"deliveryChannel"`
	Name             string `json:"name"`
	ShippingEstimate string `json:"shippingEstimate"`
	Price            int64  `json:"price"`
}

// DeliveryChannel reports stock per delivery channel
type DeliveryChannel struct {
	ID           string `json:"id"`
	StockBalance int    `json:"stockBalance"`
}

// Invoice notifies VTEX that a storefront order was paid
type Invoice struct {
	Type          string        `json:"type"`
	InvoiceNumber string        `json:"invoiceNumber"`
	InvoiceValue  int64         `json:"invoiceValue"`
	IssuanceDate  string        `json:"issuanceDate"`
	Items         []InvoiceItem `json:"items"`
}

// InvoiceItem is an invoiced order line in minor units
type InvoiceItem struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// TrackingUpdate is the partial invoice update carrying shipment tracking
type TrackingUpdate struct {
	TrackingNumber string `json:"trackingNumber"`
	Courier        string `json:"courier"`
	TrackingURL    string `json:"trackingUrl"`
}

// SKUSuggestion proposes a storefront variant to the VTEX catalog
type SKUSuggestion struct {
	ProductName              string           `json:"ProductName"`
	ProductID                int64            `json:"ProductId"`
	ProductDescription       string           `json:"ProductDescription"`
	BrandName                string           `json:"BrandName"`
	SkuName                  string           `json:"SkuName"`
	SellerID                 string           `json:"SellerId"`
	Height                   float64          `json:"Height"`
	Width                    float64          `json:"Width"`
	Length                   float64          `json:"Length"`
	WeightKg                 float64          `json:"WeightKg"`
	RefID                    string           `json:"RefId"`
	SellerStockKeepingUnitID int64            `json:"SellerStockKeepingUnitId"`
	CategoryFullPath         string           `json:"CategoryFullPath"`
	SkuSpecifications        []Specification  `json:"SkuSpecifications"`
	ProductSpecifications    []Specification  `json:"ProductSpecifications"`
	Images                   []SuggestedImage `json:"Images"`
	MeasurementUnit          string           `json:"MeasurementUnit"`
	UnitMultiplier           int              `json:"UnitMultiplier"`
	AvailableQuantity        int              `json:"AvailableQuantity"`
	Pricing                  SuggestedPricing `json:"Pricing"`
}

// Specification is a named SKU attribute
type Specification struct {
	FieldName   string   `json:"FieldName"`
	FieldValues []string `json:"FieldValues"`
}

// SuggestedImage is an image attached to a SKU suggestion
type SuggestedImage struct {
	ImageName string `json:"imageName"`
	ImageURL  string `json:"imageUrl"`
}

// SuggestedPricing is the sale price of a SKU suggestion
type SuggestedPricing struct {
	Currency       string  `json:"Currency"`
	SalePrice      float64 `json:"SalePrice"`
	CurrencySymbol string  `json:"CurrencySymbol"`
}
