package mapping

import (
	"strconv"
	"time"

	"archie-core-vtex-connector/internal/domain"
)

// InvoiceNumber is the marketplace invoice number of a storefront order
func InvoiceNumber(order *domain.OrderPayload) string {
	return strconv.FormatInt(order.ID, 10)
}

// Invoice builds the outbound invoice notification for a paid storefront order
func Invoice(order *domain.OrderPayload, now time.Time) *domain.Invoice {
	items := make([]domain.InvoiceItem, 0, len(order.LineItems))
	for _, line := range order.LineItems {
		items = append(items, domain.InvoiceItem{
			ID:       strconv.FormatInt(line.VariantID, 10),
			Quantity: line.Quantity,
			Price:    ToMinorUnits(line.Price),
		})
	}
	return &domain.Invoice{
		Type:          "Output",
		InvoiceNumber: InvoiceNumber(order),
		InvoiceValue:  ToMinorUnits(order.CurrentTotalPrice),
		IssuanceDate:  now.UTC().Format(time.RFC3339),
		Items:         items,
	}
}

// Tracking builds the tracking update from the first fulfillment.
// ok is false when the order carries no tracking number.
func Tracking(order *domain.OrderPayload) (update *domain.TrackingUpdate, ok bool) {
	if len(order.Fulfillments) == 0 || order.Fulfillments[0].TrackingNumber == "" {
		return nil, false
	}
	f := order.Fulfillments[0]
	return &domain.TrackingUpdate{
		TrackingNumber: f.TrackingNumber,
		Courier:        f.TrackingCompany,
		TrackingURL:    f.TrackingURL,
	}, true
}

// ackDateLayout is the timestamp format of cancel and fulfill acknowledgements
const ackDateLayout = "2006-01-02 15:4:5"

// OrderAck acknowledges a marketplace cancel or fulfill call
func OrderAck(marketplaceOrderID, orderID string, now time.Time) domain.OrderAck {
	return domain.OrderAck{
		Date:               now.Format(ackDateLayout),
		MarketplaceOrderID: marketplaceOrderID,
		OrderID:            orderID,
	}
}
