package models

import (
	"fmt"
	"strings"
)

// NetSuite item field ids.
const (
	FieldInternalID  = "internalid"
	FieldType        = "type"
	FieldDisplayName = "displayname"
	FieldName        = "name"
	FieldItemID      = "itemid"
	FieldMatrix      = "matrix"
	FieldUPCCode     = "upccode"
	FieldWeight      = "weight"
	FieldWeightUnit  = "weightunit"
	FieldBrand       = "custitem_sp_brand"
	FieldProductType = "custitem_fa_shpfy_prodtype"
	FieldSize        = "custitem_sp_size"
	FieldColor       = "custitem_sp_color"

	FieldBasePrice                  = "baseprice"
	FieldCompareAtPrice             = "custitem_fa_shpfy_compare_at_price"
	FieldDescription                = "custitem_fa_shpfy_prod_description"
	FieldTags                       = "custitem_fa_shpfy_tags"
	FieldWholesalePrice             = "price2"
	FieldCompareAtPriceWholesale    = "custitem_fa_shpfy_compare_at_price_ws"
	FieldDescriptionWholesale       = "custitem_fa_shpfy_prod_description_ws"
	FieldTagsWholesale              = "custitem_fa_shpfy_tags_ws"
	FieldProfessionalPrice          = "custitem_fa_shpfy_professional_price"
	FieldCompareAtPriceProfessional = "custitem_fa_shpfy_compare_at_price_pro"
	FieldDescriptionProfessional    = "custitem_fa_shpfy_prod_description_pro"
	FieldTagsProfessional           = "custitem_fa_shpfy_tags_pro"
	FieldWarehousePrice             = "custitem_fa_shpfy_warehouse_price"
	FieldCompareAtPriceWarehouse    = "custitem_fa_shpfy_compare_at_price_wh"
	FieldDescriptionWarehouse       = "custitem_fa_shpfy_prod_description_wh"
	FieldTagsWarehouse              = "custitem_fa_shpfy_tags_wh"
	FieldBarberCartPrice            = "custitem_fa_shpfy_price_cc"
	FieldCompareAtPriceBarberCart   = "custitem_fa_shpfy_compare_at_price_cc"
	FieldDescriptionBarberCart      = "custitem_fa_shpfy_prod_description_cc"
	FieldTagsBarberCart             = "custitem_fa_shpfy_tags_cc"
)

// RecordType is the NetSuite search type of an item.
type RecordType string

const (
	RecordTypeInventoryItem RecordType = "InvtPart"
	RecordTypeAssemblyItem  RecordType = "Assembly"
	RecordTypeKitItem       RecordType = "Kit"
)

var recordPaths = map[RecordType]string{
	RecordTypeInventoryItem: "inventoryItem",
	RecordTypeAssemblyItem:  "assemblyItem",
	RecordTypeKitItem:       "kitItem",
}

// RecordPath returns the REST record name used to load an item of this type.
func (t RecordType) RecordPath() (string, error) {
	path, ok := recordPaths[t]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedRecordType, string(t))
	}
	return path, nil
}

// Record is a flat view of a NetSuite record keyed by field id.
// Values holds raw values; Texts holds display text for select fields.
type Record struct {
	Values map[string]string
	Texts  map[string]string
}

// NewRecord builds a record from raw values only.
func NewRecord(values map[string]string) Record {
	return Record{Values: values}
}

// Value returns the raw value of a field, or "".
func (r Record) Value(fieldID string) string {
	return r.Values[fieldID]
}

// Text returns the display text of a field, falling back to its raw value.
func (r Record) Text(fieldID string) string {
	if text, ok := r.Texts[fieldID]; ok {
		return text
	}
	return r.Values[fieldID]
}

// Truthy reports whether a field holds a usable value.
// Empty strings, zero amounts and NetSuite false flags are not truthy.
func (r Record) Truthy(fieldID string) bool {
	return IsTruthy(r.Value(fieldID))
}

// IsTruthy applies the record truthiness rules to a raw value.
func IsTruthy(value string) bool {
	v := strings.TrimSpace(value)
	switch strings.ToLower(v) {
	case "", "f", "false", "null":
		return false
	}
	if strings.Trim(v, "0.") == "" {
		return false
	}
	return true
}

// Item is an active NetSuite item found by search.
type Item struct {
	InternalID string
	Type       RecordType
	IsMatrix   bool
	Record
}

// ItemID returns the item's code, "<parent> : <variant>" for matrix children.
func (i *Item) ItemID() string {
	return i.Value(FieldItemID)
}

// DisplayName returns the item's display name.
func (i *Item) DisplayName() string {
	return i.Value(FieldDisplayName)
}
