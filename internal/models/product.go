package models

// WeightUnit is the Shopify weight unit enum.
type WeightUnit string

const (
	WeightUnitPounds    WeightUnit = "POUNDS"
	WeightUnitOunces    WeightUnit = "OUNCES"
	WeightUnitKilograms WeightUnit = "KILOGRAMS"
	WeightUnitGrams     WeightUnit = "GRAMS"
)

// Product is the Shopify product document built from a NetSuite item.
type Product struct {
	Vendor          string    `json:"vendor"`
	Title           string    `json:"title"`
	ProductType     string    `json:"productType"`
	Tags            []string  `json:"tags"`
	DescriptionHTML string    `json:"descriptionHtml"`
	Variants        []Variant `json:"variants"`
}

// Variant is one purchasable option of a product.
type Variant struct {
	OptionValues   []OptionValue `json:"optionValues"`
	Price          string        `json:"price"`
	CompareAtPrice string        `json:"compareAtPrice,omitempty"`
	InventoryItem  InventoryItem `json:"inventoryItem"`
	Barcode        string        `json:"barcode"`
}

// PrimaryOptionValue returns the first option value, or "".
func (v Variant) PrimaryOptionValue() string {
	if len(v.OptionValues) == 0 {
		return ""
	}
	return v.OptionValues[0].Name
}

// OptionValue pairs an option name with the variant's value for it.
type OptionValue struct {
	OptionName string `json:"optionName"`
	Name       string `json:"name"`
}

type InventoryItem struct {
	SKU         string      `json:"sku"`
	Measurement Measurement `json:"measurement"`
}

type Measurement struct {
	Weight Weight `json:"weight"`
}

// Weight carries a nil Unit when NetSuite's unit code is not recognised.
type Weight struct {
	Value float64     `json:"value"`
	Unit  *WeightUnit `json:"unit"`
}

// CreatedProduct is what the product endpoint reports for a new product.
type CreatedProduct struct {
	URL              string `json:"url"`
	LegacyResourceID string `json:"legacyResourceId"`
}

// CreateProductResult is the data returned to callers of CREATE_PRODUCT.
type CreateProductResult struct {
	Product *CreatedProduct `json:"product"`
}
