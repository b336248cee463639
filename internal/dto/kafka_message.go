package dto

const (
	EventProductCreated         = "product_created"
	EventProductDeleted         = "product_deleted"
	EventProductFeaturedToggled = "product_featured_toggled"

	// Emitted by the product command service.
	EventAddProduct    = "add_product"
	EventUpdateProduct = "update_product"
	EventDeleteProduct = "delete_product"
)

type KafkaMessage struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}
