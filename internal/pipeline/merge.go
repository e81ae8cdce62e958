package pipeline

import (
	"log/slog"

	"salescli/pkg/contracts/domain"
)

// MergeStats counts the rows dropped by each inner join so that silent data
// loss stays auditable.
type MergeStats struct {
	ItemsIn                int `json:"items_in"`
	Merged                 int `json:"merged"`
	DroppedMissingOrder    int `json:"dropped_missing_order"`
	DroppedMissingProduct  int `json:"dropped_missing_product"`
	DroppedMissingCustomer int `json:"dropped_missing_customer"`
}

// Dropped returns the total number of item rows lost across the three joins.
func (s MergeStats) Dropped() int {
	return s.DroppedMissingOrder + s.DroppedMissingProduct + s.DroppedMissingCustomer
}

// Merge performs the three inner joins of the pipeline: Orders⨝Items on
// order_id, then Products on product_id, then Customers on customer_id.
// Order items drive the join, so the result never exceeds len(items). A row
// survives only when all three keys resolve; misses are counted per join.
func Merge(orders []domain.Order, items []domain.OrderItem, products []domain.Product, customers []domain.Customer) ([]domain.SalesRecord, MergeStats) {
	orderByID := make(map[string]domain.Order, len(orders))
	for _, order := range orders {
		orderByID[order.OrderID] = order
	}

	productByID := make(map[string]domain.Product, len(products))
	for _, product := range products {
		productByID[product.ProductID] = product
	}

	customerByID := make(map[string]domain.Customer, len(customers))
	for _, customer := range customers {
		customerByID[customer.CustomerID] = customer
	}

	stats := MergeStats{ItemsIn: len(items)}
	records := make([]domain.SalesRecord, 0, len(items))

	for _, item := range items {
		order, ok := orderByID[item.OrderID]
		if !ok {
			stats.DroppedMissingOrder++
			continue
		}

		product, ok := productByID[item.ProductID]
		if !ok {
			stats.DroppedMissingProduct++
			continue
		}

		customer, ok := customerByID[order.CustomerID]
		if !ok {
			stats.DroppedMissingCustomer++
			continue
		}

		records = append(records, domain.SalesRecord{
			OrderID:           item.OrderID,
			CustomerID:        order.CustomerID,
			Status:            order.Status,
			PurchaseTimestamp: order.PurchaseTimestamp,
			ProductID:         item.ProductID,
			CategoryName:      product.CategoryName,
			State:             customer.State,
			Price:             item.Price,
			FreightValue:      item.FreightValue,
		})
	}

	stats.Merged = len(records)
	return records, stats
}

// LogValue lets MergeStats render as a structured log group.
func (s MergeStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("items_in", s.ItemsIn),
		slog.Int("merged", s.Merged),
		slog.Int("dropped_missing_order", s.DroppedMissingOrder),
		slog.Int("dropped_missing_product", s.DroppedMissingProduct),
		slog.Int("dropped_missing_customer", s.DroppedMissingCustomer),
	)
}
