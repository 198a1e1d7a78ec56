package dto

// ItemQuantity producto y cantidad de una línea de pedido.
type ItemQuantity struct {
	OrderItemID string
	ProductID   string
	Quantity    int64
}

// FulfillmentReport resultado de canFulfillOrder: demanda agregada de todo el pedido.
type FulfillmentReport struct {
	OrderID    string        `json:"order_id"`
	CanFulfill bool          `json:"can_fulfill"`
	Shortages  []ShortageDTO `json:"shortages,omitempty"`
	Message    string        `json:"message"`
}

// ProcessOrderResult resultado de processOrder / completeOrder.
type ProcessOrderResult struct {
	OrderID          string        `json:"order_id"`
	Success          bool          `json:"success"`
	AlreadyProcessed bool          `json:"already_processed"`
	FailedItemID     string        `json:"failed_item_id,omitempty"`
	Shortages        []ShortageDTO `json:"shortages,omitempty"`
	Message          string        `json:"message"`
}
