package domain

// OrderItem — позиция заказа. PriceAtTime и ProductNameSnapshot
// копируются из товара в момент создания заказа и больше не меняются:
// последующие правки товара не должны искажать исторические заказы.
type OrderItem struct {
	ID                  string
	OrderID             string
	ProductID           string
	Quantity            int32
	PriceAtTime         int64 // в миллимах
	ProductNameSnapshot string
}

func NewOrderItem(id, orderID, productID string, quantity int32, priceAtTime int64, nameSnapshot string) *OrderItem {
	return &OrderItem{
		ID:                  id,
		OrderID:             orderID,
		ProductID:           productID,
		Quantity:            quantity,
		PriceAtTime:         priceAtTime,
		ProductNameSnapshot: nameSnapshot,
	}
}
