package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "salescli/internal/errors"
)

// Dataset filename tokens. A dataset file is recognized when its name
// contains the token as a case-sensitive substring and carries a .csv suffix.
const (
	OrdersToken     = "orders_dataset"
	OrderItemsToken = "order_items_dataset"
	ProductsToken   = "products_dataset"
	CustomersToken  = "customers_dataset"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// DatasetPaths holds the resolved path of each required dataset file.
type DatasetPaths struct {
	Orders     string
	OrderItems string
	Products   string
	Customers  string
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindArchiveFiles finds all ZIP archives in the specified directory
func (d *Discovery) FindArchiveFiles(dir string) ([]FileInfo, error) {
	return d.findBySuffix(dir, ".zip")
}

// FindCSVFiles finds all CSV files in the specified directory
func (d *Discovery) FindCSVFiles(dir string) ([]FileInfo, error) {
	return d.findBySuffix(dir, ".csv")
}

// findBySuffix lists regular files in dir whose lowercased name carries the
// given suffix, sorted by name for deterministic iteration.
func (d *Discovery) findBySuffix(dir, suffix string) ([]FileInfo, error) {
	// If dir is already absolute, use it directly
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), suffix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// LocateDatasets resolves the four required dataset files in dir. Each token
// must match exactly one CSV filename: zero matches fail with a dataset
// not-found error, more than one fails listing every candidate so the
// operator can remove the ambiguity.
func (d *Discovery) LocateDatasets(dir string) (DatasetPaths, error) {
	csvFiles, err := d.FindCSVFiles(dir)
	if err != nil {
		return DatasetPaths{}, err
	}

	var paths DatasetPaths
	targets := []struct {
		token string
		dest  *string
	}{
		{OrdersToken, &paths.Orders},
		{OrderItemsToken, &paths.OrderItems},
		{ProductsToken, &paths.Products},
		{CustomersToken, &paths.Customers},
	}

	for _, target := range targets {
		path, err := locateOne(csvFiles, target.token)
		if err != nil {
			return DatasetPaths{}, err
		}
		*target.dest = path
	}

	return paths, nil
}

// locateOne finds the single file whose name contains token.
func locateOne(csvFiles []FileInfo, token string) (string, error) {
	var matches []FileInfo
	for _, file := range csvFiles {
		if strings.Contains(file.Name, token) {
			matches = append(matches, file)
		}
	}

	switch len(matches) {
	case 0:
		return "", apperrors.NewNotFoundError(fmt.Sprintf("dataset file matching %q", token))
	case 1:
		return matches[0].Path, nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}
		return "", apperrors.NewValidationError(
			fmt.Sprintf("multiple files match dataset token %q: %s", token, strings.Join(names, ", ")))
	}
}
