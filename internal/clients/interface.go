package clients

import (
	"context"

	"shopify-product-service/internal/models"
)

// MaxChildItems caps the matrix children read for one parent item.
// Children beyond this count are not turned into variants.
const MaxChildItems = 25

// ItemRepository defines read access to NetSuite items
type ItemRepository interface {
	// FindActiveItemBySKU returns the active item whose item id equals sku.
	// It returns models.ErrItemNotFound when there is none.
	FindActiveItemBySKU(ctx context.Context, sku string) (*models.Item, error)

	// ListActiveChildren returns up to limit active matrix children of a parent.
	ListActiveChildren(ctx context.Context, parentID string, limit int) ([]models.Item, error)

	// LoadRecord loads the full record of an item.
	LoadRecord(ctx context.Context, recordType models.RecordType, internalID string) (*models.Record, error)
}

// ProductSubmitter sends an assembled product to the Shopify product endpoint
type ProductSubmitter interface {
	Submit(ctx context.Context, store models.Store, product *models.Product) (*models.CreatedProduct, error)
}

// ConfigurationError reports a client that cannot run because a setting is missing
type ConfigurationError struct {
	Client  string
	Setting string
}

func (e *ConfigurationError) Error() string {
	return e.Client + " is not configured: " + e.Setting + " is required"
}
