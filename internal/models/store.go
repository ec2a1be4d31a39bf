package models

import "fmt"

// Store identifies the Shopify storefront a product is prepared for.
type Store string

const (
	StoreRetail       Store = "retail"
	StoreWholesale    Store = "wholesale"
	StoreProfessional Store = "professional"
	StoreWarehouse    Store = "warehouse"
	StoreBarberCart   Store = "barbercart"
)

// Stores lists every supported store in display order.
var Stores = []Store{StoreRetail, StoreWholesale, StoreProfessional, StoreWarehouse, StoreBarberCart}

// ParseStore validates a raw store value. Matching is exact.
func ParseStore(value string) (Store, error) {
	for _, s := range Stores {
		if string(s) == value {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStore, value)
}

// FieldMapping holds the NetSuite field ids resolved for one store.
type FieldMapping struct {
	Price          string `json:"price"`
	CompareAtPrice string `json:"compareAtPrice"`
	Description    string `json:"description"`
	Tags           string `json:"tags"`
}

// StoreFieldTable maps each store to its NetSuite field ids.
// It is treated as immutable once built.
type StoreFieldTable map[Store]FieldMapping

// DefaultStoreFieldTable returns a fresh copy of the production field table.
func DefaultStoreFieldTable() StoreFieldTable {
	return StoreFieldTable{
		StoreRetail: {
			Price:          FieldBasePrice,
			CompareAtPrice: FieldCompareAtPrice,
			Description:    FieldDescription,
			Tags:           FieldTags,
		},
		StoreWholesale: {
			Price:          FieldWholesalePrice,
			CompareAtPrice: FieldCompareAtPriceWholesale,
			Description:    FieldDescriptionWholesale,
			Tags:           FieldTagsWholesale,
		},
		StoreProfessional: {
			Price:          FieldProfessionalPrice,
			CompareAtPrice: FieldCompareAtPriceProfessional,
			Description:    FieldDescriptionProfessional,
			Tags:           FieldTagsProfessional,
		},
		StoreWarehouse: {
			Price:          FieldWarehousePrice,
			CompareAtPrice: FieldCompareAtPriceWarehouse,
			Description:    FieldDescriptionWarehouse,
			Tags:           FieldTagsWarehouse,
		},
		// Barber cart prices come from the retail columns.
		StoreBarberCart: {
			Price:          FieldBasePrice,
			CompareAtPrice: FieldCompareAtPrice,
			Description:    FieldDescriptionBarberCart,
			Tags:           FieldTagsBarberCart,
		},
	}
}

// Clone returns a copy that can be modified without touching the receiver.
func (t StoreFieldTable) Clone() StoreFieldTable {
	out := make(StoreFieldTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
