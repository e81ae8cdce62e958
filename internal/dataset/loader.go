package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	apperrors "salescli/internal/errors"
	"salescli/pkg/contracts/domain"
)

// ctxCheckInterval is how many rows are read between context checks.
const ctxCheckInterval = 1024

// Loader parses the located dataset files into typed in-memory tables.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new dataset loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// table is one parsed CSV file: a header column map plus its data rows.
type table struct {
	columns map[string]int
	rows    [][]string
}

// LoadOrders parses the orders dataset.
func (l *Loader) LoadOrders(ctx context.Context, path string) ([]domain.Order, error) {
	t, err := l.readTable(ctx, path, []string{"order_id", "customer_id", "order_status", "order_purchase_timestamp"})
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(t.rows))
	for _, row := range t.rows {
		orders = append(orders, domain.Order{
			OrderID:           t.cell(row, "order_id"),
			CustomerID:        t.cell(row, "customer_id"),
			Status:            t.cell(row, "order_status"),
			PurchaseTimestamp: t.cell(row, "order_purchase_timestamp"),
		})
	}

	l.logLoaded(ctx, "orders", path, len(orders))
	return orders, nil
}

// LoadOrderItems parses the order items dataset. Unparsable price or freight
// cells become null values rather than aborting the load.
func (l *Loader) LoadOrderItems(ctx context.Context, path string) ([]domain.OrderItem, error) {
	t, err := l.readTable(ctx, path, []string{"order_id", "product_id", "price", "freight_value"})
	if err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(t.rows))
	for _, row := range t.rows {
		items = append(items, domain.OrderItem{
			OrderID:      t.cell(row, "order_id"),
			ProductID:    t.cell(row, "product_id"),
			Price:        parseNullFloat(t.cell(row, "price")),
			FreightValue: parseNullFloat(t.cell(row, "freight_value")),
		})
	}

	l.logLoaded(ctx, "order_items", path, len(items))
	return items, nil
}

// LoadProducts parses the products dataset.
func (l *Loader) LoadProducts(ctx context.Context, path string) ([]domain.Product, error) {
	t, err := l.readTable(ctx, path, []string{"product_id", "product_category_name"})
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(t.rows))
	for _, row := range t.rows {
		products = append(products, domain.Product{
			ProductID:    t.cell(row, "product_id"),
			CategoryName: t.cell(row, "product_category_name"),
		})
	}

	l.logLoaded(ctx, "products", path, len(products))
	return products, nil
}

// LoadCustomers parses the customers dataset.
func (l *Loader) LoadCustomers(ctx context.Context, path string) ([]domain.Customer, error) {
	t, err := l.readTable(ctx, path, []string{"customer_id", "customer_state"})
	if err != nil {
		return nil, err
	}

	customers := make([]domain.Customer, 0, len(t.rows))
	for _, row := range t.rows {
		customers = append(customers, domain.Customer{
			CustomerID: t.cell(row, "customer_id"),
			State:      t.cell(row, "customer_state"),
		})
	}

	l.logLoaded(ctx, "customers", path, len(customers))
	return customers, nil
}

// readTable parses a delimited text file and maps column positions by header
// name, verifying that every required column is present. Extra columns are
// carried along untouched; rows shorter than the header are padded with
// empty cells by the cell accessor.
func (l *Loader) readTable(ctx context.Context, path string, required []string) (*table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open dataset file", err).
			WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read dataset header", err).
			WithContext("path", path)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		columns[strings.TrimSpace(name)] = i
	}

	for _, col := range required {
		if _, exists := columns[col]; !exists {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("required column %q missing", col), nil).
				WithContext("path", path).
				WithContext("columns", header)
		}
	}

	var rows [][]string
	for {
		if len(rows)%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewParsingError("failed to read dataset row", err).
				WithContext("path", path).
				WithContext("row", len(rows)+2)
		}
		rows = append(rows, row)
	}

	return &table{columns: columns, rows: rows}, nil
}

// cell returns the trimmed value of the named column in row, or the empty
// string when the row is too short.
func (t *table) cell(row []string, column string) string {
	idx, exists := t.columns[column]
	if !exists || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNullFloat parses a numeric cell; empty or malformed cells become null.
func parseNullFloat(raw string) domain.NullFloat {
	if raw == "" {
		return domain.NullFloat{}
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return domain.NullFloat{}
	}
	return domain.Float(value)
}

func (l *Loader) logLoaded(ctx context.Context, dataset, path string, rows int) {
	l.logger.InfoContext(ctx, "dataset loaded",
		slog.String("dataset", dataset),
		slog.String("path", path),
		slog.Int("rows", rows))
}
