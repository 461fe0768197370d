package mapping

import (
	"encoding/json"
	"testing"
	"time"

	"archie-core-vtex-connector/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderWebhookPayload = `{
	"id": 450789469,
	"reference": "MKT-1001",
	"current_total_price": "15.50",
	"line_items": [{"variant_id": 808950810, "quantity": 2, "price": "5.25"}],
	"fulfillments": [{"id": 255858046, "tracking_number": "1Z2345", "tracking_company": "UPS", "tracking_url": "https://ups.example/1Z2345"}]
}`

func TestInvoice(t *testing.T) {
	var order domain.OrderPayload
	require.NoError(t, json.Unmarshal([]byte(orderWebhookPayload), &order))

	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	got := Invoice(&order, now)

	assert.Equal(t, "Output", got.Type)
	assert.Equal(t, "450789469", got.InvoiceNumber)
	assert.Equal(t, int64(1550), got.InvoiceValue)
	assert.Equal(t, "2024-03-05T14:07:09Z", got.IssuanceDate)
	assert.Equal(t, []domain.InvoiceItem{{ID: "808950810", Quantity: 2, Price: 525}}, got.Items)
}

func TestTracking(t *testing.T) {
	tests := []struct {
		name   string
		order  domain.OrderPayload
		wantOK bool
	}{
		{name: "no fulfillments", order: domain.OrderPayload{}},
		{name: "empty tracking number", order: domain.OrderPayload{Fulfillments: []domain.FulfillmentPayload{{TrackingCompany: "UPS"}}}},
		{name: "tracked", order: domain.OrderPayload{Fulfillments: []domain.FulfillmentPayload{{TrackingNumber: "1Z", TrackingCompany: "UPS", TrackingURL: "u"}}}, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			update, ok := Tracking(&tt.order)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, &domain.TrackingUpdate{TrackingNumber: "1Z", Courier: "UPS", TrackingURL: "u"}, update)
			} else {
				assert.Nil(t, update)
			}
		})
	}
}

func TestTracking_NullTrackingNumber(t *testing.T) {
	var order domain.OrderPayload
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "fulfillments": [{"tracking_number": null}]}`), &order))
	_, ok := Tracking(&order)
	assert.False(t, ok)
}

func TestOrderAck(t *testing.T) {
	ack := OrderAck("MKT-1", "MKT-1", time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC))
	assert.Equal(t, "2024-03-05 14:7:9", ack.Date)

	body, err := json.Marshal(ack)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-03-05 14:7:9","marketplaceOrderId":"MKT-1","orderId":"MKT-1","receipt":null}`, string(body))
}
