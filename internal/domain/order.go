package domain

import "time"

type OrderStatus string

const (
	OrderStatusPlaced         OrderStatus = "Placed"
	OrderStatusPreparing      OrderStatus = "Preparing"
	OrderStatusOutForDelivery OrderStatus = "Out for Delivery"
	OrderStatusDelivered      OrderStatus = "Delivered"
)

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered
}

// Next returns the status that follows s in the fixed progression, or false
// when s is terminal or unknown.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case OrderStatusPlaced:
		return OrderStatusPreparing, true
	case OrderStatusPreparing:
		return OrderStatusOutForDelivery, true
	case OrderStatusOutForDelivery:
		return OrderStatusDelivered, true
	default:
		return s, false
	}
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// DeliveryMeta is the delivery contact captured at checkout. Record-keeping
// only; the tracker never interprets it.
type DeliveryMeta struct {
	Address string `json:"address" bson:"address"`
	City    string `json:"city" bson:"city"`
	ZipCode string `json:"zipCode" bson:"zip_code"`
	Phone   string `json:"phone" bson:"phone"`
	Email   string `json:"email,omitempty" bson:"email,omitempty"`
}

// Order is the cart state frozen at checkout time plus its tracked status.
// Items are a value copy; later cart mutations must not show up here.
type Order struct {
	OrderID   string       `json:"orderId" bson:"order_id"`
	UserID    string       `json:"userId" bson:"user_id"`
	Items     []CartLine   `json:"items" bson:"items"`
	Total     float64      `json:"total" bson:"total"`
	Status    OrderStatus  `json:"status" bson:"status"`
	Delivery  DeliveryMeta `json:"delivery" bson:"delivery"`
	CreatedAt time.Time    `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time    `json:"updatedAt" bson:"updated_at"`
}
