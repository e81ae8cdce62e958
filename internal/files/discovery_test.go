package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "salescli/internal/errors"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
}

func TestDiscovery_FindArchiveFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "data.zip")
	touch(t, dir, "more.ZIP")
	touch(t, dir, "notes.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.zip"), 0755)) // directories are skipped

	discovery := NewDiscovery(dir)
	archives, err := discovery.FindArchiveFiles(".")
	require.NoError(t, err)

	names := make([]string, len(archives))
	for i, f := range archives {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"data.zip", "more.ZIP"}, names)
}

func TestDiscovery_FindCSVFiles_MissingDir(t *testing.T) {
	discovery := NewDiscovery(t.TempDir())
	_, err := discovery.FindCSVFiles("nope")
	assert.Error(t, err)
}

func TestDiscovery_LocateDatasets(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "olist_orders_dataset.csv")
	touch(t, dir, "olist_order_items_dataset.csv")
	touch(t, dir, "olist_products_dataset.csv")
	touch(t, dir, "olist_customers_dataset.csv")
	touch(t, dir, "olist_geolocation_dataset.csv") // extra dataset is ignored

	discovery := NewDiscovery(dir)
	paths, err := discovery.LocateDatasets(".")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "olist_orders_dataset.csv"), paths.Orders)
	assert.Equal(t, filepath.Join(dir, "olist_order_items_dataset.csv"), paths.OrderItems)
	assert.Equal(t, filepath.Join(dir, "olist_products_dataset.csv"), paths.Products)
	assert.Equal(t, filepath.Join(dir, "olist_customers_dataset.csv"), paths.Customers)
}

func TestDiscovery_LocateDatasets_Missing(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "olist_orders_dataset.csv")
	touch(t, dir, "olist_order_items_dataset.csv")
	touch(t, dir, "olist_products_dataset.csv")
	// customers dataset missing

	discovery := NewDiscovery(dir)
	_, err := discovery.LocateDatasets(".")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
	assert.Contains(t, err.Error(), CustomersToken)
}

func TestDiscovery_LocateDatasets_Ambiguous(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "olist_orders_dataset.csv")
	touch(t, dir, "copy_of_orders_dataset.csv")
	touch(t, dir, "olist_order_items_dataset.csv")
	touch(t, dir, "olist_products_dataset.csv")
	touch(t, dir, "olist_customers_dataset.csv")

	discovery := NewDiscovery(dir)
	_, err := discovery.LocateDatasets(".")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
	assert.Contains(t, err.Error(), "olist_orders_dataset.csv")
	assert.Contains(t, err.Error(), "copy_of_orders_dataset.csv")
}

func TestDiscovery_LocateDatasets_CaseSensitive(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "OLIST_ORDERS_DATASET.csv") // wrong case does not match
	touch(t, dir, "olist_order_items_dataset.csv")
	touch(t, dir, "olist_products_dataset.csv")
	touch(t, dir, "olist_customers_dataset.csv")

	discovery := NewDiscovery(dir)
	_, err := discovery.LocateDatasets(".")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
}
