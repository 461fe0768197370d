package domain

// Storefront webhook topics the connector subscribes to
const (
	TopicAppUninstalled  = "app/uninstalled"
	TopicProductsUpdate  = "products/update"
	TopicOrdersCancelled = "orders/cancelled"
	TopicOrdersPaid      = "orders/paid"
	TopicOrdersUpdated   = "orders/updated"
)

// WebhookTopics lists every topic registered for an installed shop
var WebhookTopics = []string{
	TopicAppUninstalled,
	TopicProductsUpdate,
	TopicOrdersCancelled,
	TopicOrdersPaid,
	TopicOrdersUpdated,
}

// WebhookEvent represents a verified inbound storefront webhook
type WebhookEvent struct {
	Topic   string
	Shop    string
	Payload []byte
}

// WebhookSubscription is a webhook registered on the storefront
type WebhookSubscription struct {
	Topic   string
	Address string
}
