package domain

import "time"

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	}
	return false
}

// OrderItem is one line of an order. Product is only set when the order was
// loaded with its product details.
type OrderItem struct {
	ProductID       string   `json:"productId"`
	Product         *Product `json:"product,omitempty"`
	Quantity        int      `json:"quantity"`
	PriceAtPurchase float64  `json:"priceAtPurchase"`
}

type Order struct {
	ID            string        `json:"_id"`
	OrderID       string        `json:"orderId"`
	CustomerID    string        `json:"customerId"`
	Customer      *Customer     `json:"customer,omitempty"`
	CustomerName  string        `json:"customerName"`
	Products      []OrderItem   `json:"products"`
	TotalAmount   float64       `json:"totalAmount"`
	Status        OrderStatus   `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	PhoneNumber   string        `json:"phoneNumber"`
	Email         string        `json:"email"`
	History       []OrderEvent  `json:"history,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// ProductIDs returns the distinct product ids referenced by the order.
func (o *Order) ProductIDs() []string {
	seen := make(map[string]struct{}, len(o.Products))
	ids := make([]string, 0, len(o.Products))
	for _, item := range o.Products {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

// OrderEvent is an audit record of a back-office change to an order.
type OrderEvent struct {
	OrderID   string    `json:"orderId"`
	Field     string    `json:"field"`
	Value     string    `json:"value"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	OrderFieldStatus        = "status"
	OrderFieldPaymentStatus = "paymentStatus"
)

// MonthlySales is one month of the sales chart.
type MonthlySales struct {
	Name  string  `json:"name"`
	Sales float64 `json:"sales"`
}

// StatusCount is one slice of the order status distribution.
type StatusCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}
