package services

import (
	"shopify-product-service/internal/models"
)

// FieldMapper resolves the per-store NetSuite field ids.
type FieldMapper struct {
	table models.StoreFieldTable
}

// NewFieldMapper creates a field mapper over a copy of table.
// A nil table selects the production defaults.
func NewFieldMapper(table models.StoreFieldTable) *FieldMapper {
	if table == nil {
		table = models.DefaultStoreFieldTable()
	}
	return &FieldMapper{table: table.Clone()}
}

// ResolveFields returns the field mapping for a raw store value.
func (m *FieldMapper) ResolveFields(store string) (models.Store, models.FieldMapping, error) {
	s, err := models.ParseStore(store)
	if err != nil {
		return "", models.FieldMapping{}, err
	}
	mapping, ok := m.table[s]
	if !ok {
		return "", models.FieldMapping{}, models.ErrInvalidStore
	}
	return s, mapping, nil
}
