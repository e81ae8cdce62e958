package dataset

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "salescli/internal/errors"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoader_LoadOrders(t *testing.T) {
	path := writeCSV(t, `order_id,customer_id,order_status,order_purchase_timestamp,order_approved_at
o1,c1,delivered,2017-10-02 10:56:33,2017-10-02 11:07:15
o2,c2,shipped,2018-07-24 20:41:37,
`)

	loader := NewLoader(slog.Default())
	orders, err := loader.LoadOrders(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, "o1", orders[0].OrderID)
	assert.Equal(t, "c1", orders[0].CustomerID)
	assert.Equal(t, "delivered", orders[0].Status)
	assert.Equal(t, "2017-10-02 10:56:33", orders[0].PurchaseTimestamp)
	assert.Equal(t, "shipped", orders[1].Status)
}

func TestLoader_LoadOrders_MissingColumn(t *testing.T) {
	path := writeCSV(t, "order_id,customer_id,order_purchase_timestamp\no1,c1,2017-10-02 10:56:33\n")

	loader := NewLoader(slog.Default())
	_, err := loader.LoadOrders(context.Background(), path)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
	assert.Contains(t, err.Error(), "order_status")
}

func TestLoader_LoadOrderItems(t *testing.T) {
	path := writeCSV(t, `order_id,order_item_id,product_id,price,freight_value
o1,1,p1,58.90,13.29
o1,2,p2,,8.70
o2,1,p3,bogus,4.50
`)

	loader := NewLoader(slog.Default())
	items, err := loader.LoadOrderItems(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.True(t, items[0].Price.Valid)
	assert.InDelta(t, 58.90, items[0].Price.Value, 1e-9)
	assert.InDelta(t, 13.29, items[0].FreightValue.Value, 1e-9)

	// Empty and malformed cells become nulls, not errors
	assert.False(t, items[1].Price.Valid)
	assert.True(t, items[1].FreightValue.Valid)
	assert.False(t, items[2].Price.Valid)
}

func TestLoader_LoadProducts_BOMHeader(t *testing.T) {
	path := writeCSV(t, "\ufeffproduct_id,product_category_name\np1,beleza_saude\np2,\n")

	loader := NewLoader(slog.Default())
	products, err := loader.LoadProducts(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "beleza_saude", products[0].CategoryName)
	assert.Empty(t, products[1].CategoryName)
}

func TestLoader_LoadCustomers(t *testing.T) {
	path := writeCSV(t, `customer_id,customer_zip_code_prefix,customer_city,customer_state
c1,14409,franca,SP
c2,09790,sao bernardo do campo,RJ
`)

	loader := NewLoader(slog.Default())
	customers, err := loader.LoadCustomers(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, customers, 2)

	assert.Equal(t, "SP", customers[0].State)
	assert.Equal(t, "RJ", customers[1].State)
}

func TestLoader_MissingFile(t *testing.T) {
	loader := NewLoader(slog.Default())
	_, err := loader.LoadOrders(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}

func TestLoader_ShortRow(t *testing.T) {
	path := writeCSV(t, "customer_id,customer_state\nc1\n")

	loader := NewLoader(slog.Default())
	customers, err := loader.LoadCustomers(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, customers, 1)

	// Missing trailing cells read as empty
	assert.Equal(t, "c1", customers[0].CustomerID)
	assert.Empty(t, customers[0].State)
}
