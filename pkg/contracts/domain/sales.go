package domain

import (
	"time"
)

// Order represents one row of the orders dataset.
type Order struct {
	OrderID           string `json:"order_id" csv:"order_id"`
	CustomerID        string `json:"customer_id" csv:"customer_id"`
	Status            string `json:"order_status" csv:"order_status"`
	PurchaseTimestamp string `json:"order_purchase_timestamp" csv:"order_purchase_timestamp"` // raw text until cleaning
}

// OrderItem represents one row of the order items dataset. An order may have
// multiple items; each item references exactly one product.
type OrderItem struct {
	OrderID      string    `json:"order_id" csv:"order_id"`
	ProductID    string    `json:"product_id" csv:"product_id"`
	Price        NullFloat `json:"price" csv:"price"`
	FreightValue NullFloat `json:"freight_value" csv:"freight_value"`
}

// Product represents one row of the products dataset.
type Product struct {
	ProductID    string `json:"product_id" csv:"product_id"`
	CategoryName string `json:"product_category_name" csv:"product_category_name"`
}

// Customer represents one row of the customers dataset.
type Customer struct {
	CustomerID string `json:"customer_id" csv:"customer_id"`
	State      string `json:"customer_state" csv:"customer_state"`
}

// NullFloat is a float value that may be absent. Absent values propagate as
// nulls through sums instead of collapsing to zero.
type NullFloat struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// Float returns a valid NullFloat holding v.
func Float(v float64) NullFloat {
	return NullFloat{Value: v, Valid: true}
}

// Add returns the null-propagating sum of two values: the result is null
// when either operand is null.
func (f NullFloat) Add(other NullFloat) NullFloat {
	if !f.Valid || !other.Valid {
		return NullFloat{}
	}
	return NullFloat{Value: f.Value + other.Value, Valid: true}
}

// SalesRecord is one merged (order, order item) row enriched with product and
// customer attributes. Sales, PurchaseTime and Month are filled by the
// cleaning and metric stages; the record is held in memory for the duration
// of a run and never persisted.
type SalesRecord struct {
	OrderID           string    `json:"order_id"`
	CustomerID        string    `json:"customer_id"`
	Status            string    `json:"order_status"`
	PurchaseTimestamp string    `json:"order_purchase_timestamp"`
	PurchaseTime      time.Time `json:"purchase_time"`
	TimeValid         bool      `json:"time_valid"`
	ProductID         string    `json:"product_id"`
	CategoryName      string    `json:"product_category_name"`
	State             string    `json:"customer_state"`
	Price             NullFloat `json:"price"`
	FreightValue      NullFloat `json:"freight_value"`
	Sales             NullFloat `json:"sales"`
	Month             int       `json:"month"` // 1-12, 0 when the timestamp is null
}
