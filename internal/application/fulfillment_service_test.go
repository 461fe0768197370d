package application

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"archie-core-vtex-connector/internal/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testShop = "demo.myshopify.com"

func newTestFulfillment(t *testing.T) (*FulfillmentService, *fakeShopify, *fakeSettingsRepo) {
	t.Helper()
	repo := newFakeSettingsRepo()
	repo.seed(domain.ShopSettings{
		Shop:         testShop,
		AccountName:  "acme",
		AppKey:       "key",
		AppToken:     "secret",
		SellerID:     "seller1",
		AccessToken:  "tok",
		ShopifyToken: "shpat_x",
	})
	shopify := &fakeShopify{
		variants: map[int64]*domain.Variant{
			1: {ID: 1, Title: "Red shirt", Price: decimal.RequireFromString("5.00"), InventoryQuantity: 3},
			2: {ID: 2, Title: "Blue shirt", Price: decimal.RequireFromString("7.50"), InventoryQuantity: 0},
		},
		createOrderID: 4501,
	}
	settings := NewSettingsService(repo, prefixEncryption{}, zerolog.Nop())
	svc := NewFulfillmentService(settings, shopify, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC) }
	return svc, shopify, repo
}

func TestFulfillmentAuthenticate(t *testing.T) {
	svc, shopify, _ := newTestFulfillment(t)

	settings, err := svc.Authenticate(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, testShop, settings.Shop)
	assert.Equal(t, "shpat_x", settings.ShopifyToken)
	assert.Equal(t, "secret", settings.AppToken)

	for _, token := range []string{"", "nope"} {
		_, err := svc.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	}
	assert.Zero(t, shopify.callCount())
}

func TestSimulateKeepsRequestOrder(t *testing.T) {
	svc, shopify, _ := newTestFulfillment(t)
	// The first item resolves last
	shopify.variantDelay = map[int64]time.Duration{1: 30 * time.Millisecond}
	shopify.zones = []domain.ShippingZone{
		{Name: "International"},
		{Name: "Domestic", PriceBasedShippingRates: []domain.ShippingRate{{Name: "Standard", Price: decimal.RequireFromString("10.00")}}},
	}

	settings, err := svc.Authenticate(context.Background(), "tok")
	require.NoError(t, err)

	resp, err := svc.Simulate(context.Background(), settings, &domain.SimulationRequest{
		Items:      []domain.SimulationItem{{ID: "1", Quantity: 1}, {ID: "2", Quantity: 4}},
		Country:    "USA",
		PostalCode: "10001",
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 2)
	assert.Equal(t, domain.SkuID("1"), resp.Items[0].ID)
	assert.Equal(t, 0, resp.Items[0].RequestIndex)
	assert.Equal(t, int64(500), resp.Items[0].Price)
	assert.Equal(t, domain.AvailabilityAvailable, resp.Items[0].Availability)
	assert.Equal(t, domain.SkuID("2"), resp.Items[1].ID)
	assert.Equal(t, int64(750), resp.Items[1].Price)
	assert.Equal(t, domain.AvailabilityUnavailable, resp.Items[1].Availability)
	assert.Equal(t, "seller1", resp.Items[1].Seller)

	require.Len(t, resp.LogisticsInfo, 2)
	assert.Equal(t, 0, resp.LogisticsInfo[0].ItemIndex)
	assert.Equal(t, int64(500), resp.LogisticsInfo[0].Slas[0].Price)
	assert.Equal(t, []string{"USA"}, resp.LogisticsInfo[1].ShipsTo)
}

func TestSimulateWithoutDomesticZone(t *testing.T) {
	svc, _, _ := newTestFulfillment(t)
	settings, err := svc.Authenticate(context.Background(), "tok")
	require.NoError(t, err)

	resp, err := svc.Simulate(context.Background(), settings, &domain.SimulationRequest{
		Items: []domain.SimulationItem{{ID: "1", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.LogisticsInfo[0].Slas[0].Price)
}

func TestSimulateUnknownVariant(t *testing.T) {
	svc, _, _ := newTestFulfillment(t)
	settings, err := svc.Authenticate(context.Background(), "tok")
	require.NoError(t, err)

	_, err = svc.Simulate(context.Background(), settings, &domain.SimulationRequest{
		Items: []domain.SimulationItem{{ID: "1", Quantity: 1}, {ID: "99", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrVariantNotFound)
}

const placementBody = `[{
	"marketplaceOrderId": "MKT-1",
	"marketplacePaymentValue": 1000,
	"items": [{"id": "1", "quantity": 2, "unitMultiplier": 1, "price": 500, "seller": "1"}],
	"clientProfileData": {"email": "ana@example.com", "firstName": "Ana", "lastName": "Silva", "phone": "555"},
	"shippingData": {"address": {"street": "Main", "number": "10", "city": "Springfield", "state": "IL", "country": "USA", "postalCode": "62701"}, "logisticsInfo": [{"itemIndex": 0, "price": 250}]}
}]`

func TestPlaceOrder(t *testing.T) {
	svc, shopify, _ := newTestFulfillment(t)
	settings, err := svc.Authenticate(context.Background(), "tok")
	require.NoError(t, err)

	acks, err := svc.PlaceOrder(context.Background(), settings, []byte(placementBody))
	require.NoError(t, err)

	require.Len(t, shopify.createdOrders, 1)
	order := shopify.createdOrders[0]
	require.Len(t, order.LineItems, 1)
	assert.Equal(t, 2, order.LineItems[0].Quantity)
	assert.Equal(t, "5.00", order.LineItems[0].Price)
	assert.Equal(t, "Red shirt", order.LineItems[0].Title)
	assert.Equal(t, "10.00", order.Transactions[0].Amount)
	assert.Equal(t, "2.50", order.ShippingLines[0].Price)
	assert.Equal(t, "MKT-1", order.Reference)

	require.Len(t, acks, 1)
	assert.Equal(t, "4501", acks[0].OrderID)
	assert.Equal(t, "ana@example.com", acks[0].FollowUpEmail)

	raw, err := json.Marshal(acks)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"paymentData":null`)
	assert.Contains(t, string(raw), `"items":[{"id":"1","quantity":2,"unitMultiplier":1,"price":500,"seller":"1"}]`)
}

func TestPlaceOrderAbortsOnVariantFailure(t *testing.T) {
	svc, shopify, _ := newTestFulfillment(t)
	settings, err := svc.Authenticate(context.Background(), "tok")
	require.NoError(t, err)

	body := `[{"marketplaceOrderId":"MKT-2","items":[{"id":"1","quantity":1,"price":500},{"id":"404","quantity":1,"price":100}]}]`
	_, err = svc.PlaceOrder(context.Background(), settings, []byte(body))
	assert.ErrorIs(t, err, domain.ErrVariantNotFound)
	assert.Empty(t, shopify.createdOrders)
}

func TestPlaceOrderInvalidPayload(t *testing.T) {
	svc, _, _ := newTestFulfillment(t)
	settings, err := svc.Authenticate(context.Background(), "tok")
	require.NoError(t, err)

	for _, body := range []string{`{}`, `[]`, `not json`} {
		_, err := svc.PlaceOrder(context.Background(), settings, []byte(body))
		assert.ErrorIs(t, err, domain.ErrInvalidPayload, body)
	}
}

func TestPlaceOrderRemoteFailure(t *testing.T) {
	svc, shopify, _ := newTestFulfillment(t)
	shopify.createErr = errors.New("boom")
	settings, err := svc.Authenticate(context.Background(), "tok")
	require.NoError(t, err)

	_, err = svc.PlaceOrder(context.Background(), settings, []byte(placementBody))
	assert.ErrorContains(t, err, "failed to create storefront order")
}

func TestCancelAndFulfillOrder(t *testing.T) {
	svc, shopify, _ := newTestFulfillment(t)
	settings, err := svc.Authenticate(context.Background(), "tok")
	require.NoError(t, err)

	ack, err := svc.CancelOrder(context.Background(), settings, "4501", domain.OrderActionRequest{MarketplaceOrderID: "MKT-1"})
	require.NoError(t, err)
	assert.Equal(t, []int64{4501}, shopify.cancelled)
	assert.Equal(t, "2024-03-09 14:5:7", ack.Date)
	assert.Equal(t, "MKT-1", ack.MarketplaceOrderID)
	assert.Equal(t, "4501", ack.OrderID)
	assert.Nil(t, ack.Receipt)

	_, err = svc.CancelOrder(context.Background(), settings, "abc", domain.OrderActionRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	before := shopify.callCount()
	ack, err = svc.FulfillOrder(context.Background(), settings, "4501", domain.OrderActionRequest{MarketplaceOrderID: "MKT-1"})
	require.NoError(t, err)
	assert.Equal(t, "4501", ack.OrderID)
	assert.Equal(t, before, shopify.callCount())
}
