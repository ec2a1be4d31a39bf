package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopify-product-service/internal/clients"
	"shopify-product-service/internal/models"
)

var retailMapping = models.DefaultStoreFieldTable()[models.StoreRetail]

func TestBuildVariants_NonMatrix(t *testing.T) {
	items := newMemoryItems()
	builder := NewVariantBuilder(items, nil)
	item := simpleItem("100", "ABC123")

	variants, err := builder.BuildVariants(context.Background(), &item, &item.Record, retailMapping)
	require.NoError(t, err)
	require.Len(t, variants, 1)

	v := variants[0]
	assert.Equal(t, []models.OptionValue{{OptionName: "Title", Name: "Default Title"}}, v.OptionValues)
	assert.Equal(t, "129.50", v.Price)
	assert.Equal(t, "149.99", v.CompareAtPrice)
	assert.Equal(t, "ABC123", v.InventoryItem.SKU)
	assert.Equal(t, "012345678905", v.Barcode)
	assert.Equal(t, 1.5, v.InventoryItem.Measurement.Weight.Value)
	require.NotNil(t, v.InventoryItem.Measurement.Weight.Unit)
	assert.Equal(t, models.WeightUnitPounds, *v.InventoryItem.Measurement.Weight.Unit)
}

func TestBuildVariants_NonMatrixCompareFromLoadedRecord(t *testing.T) {
	builder := NewVariantBuilder(newMemoryItems(), nil)
	item := simpleItem("100", "ABC123")
	loaded := models.NewRecord(map[string]string{models.FieldCompareAtPrice: "0.00"})

	variants, err := builder.BuildVariants(context.Background(), &item, &loaded, retailMapping)
	require.NoError(t, err)
	assert.Empty(t, variants[0].CompareAtPrice)
}

func TestBuildVariants_NonMatrixUnknownUnit(t *testing.T) {
	builder := NewVariantBuilder(newMemoryItems(), nil)
	item := simpleItem("100", "ABC123")
	item.Texts = map[string]string{models.FieldWeightUnit: "stone"}

	variants, err := builder.BuildVariants(context.Background(), &item, &item.Record, retailMapping)
	require.NoError(t, err)
	assert.Nil(t, variants[0].InventoryItem.Measurement.Weight.Unit)
	assert.Equal(t, 1.5, variants[0].InventoryItem.Measurement.Weight.Value)
}

func TestBuildVariants_MatrixSortedBySize(t *testing.T) {
	items := newMemoryItems()
	items.children["200"] = []models.Item{
		matrixChild("201", "TEE", "TEE-L", "L"),
		matrixChild("202", "TEE", "TEE-S", "S"),
		matrixChild("203", "TEE", "TEE-M", "M"),
	}
	builder := NewVariantBuilder(items, nil)
	parent := models.Item{InternalID: "200", Type: models.RecordTypeInventoryItem, IsMatrix: true}

	variants, err := builder.BuildVariants(context.Background(), &parent, &parent.Record, retailMapping)
	require.NoError(t, err)
	require.Len(t, variants, 3)
	assert.Equal(t, []string{"S", "M", "L"}, optionNames(variants))
	assert.Equal(t, clients.MaxChildItems, items.childLimit)

	s := variants[0]
	assert.Equal(t, "Size", s.OptionValues[0].OptionName)
	assert.Equal(t, "TEE-S", s.InventoryItem.SKU)
	assert.Equal(t, "UPC-TEE-S", s.Barcode)
	assert.Equal(t, "24.00", s.Price)
	assert.Empty(t, s.CompareAtPrice)
	require.NotNil(t, s.InventoryItem.Measurement.Weight.Unit)
	assert.Equal(t, models.WeightUnitOunces, *s.InventoryItem.Measurement.Weight.Unit)
}

func TestBuildVariants_MatrixOptionPriority(t *testing.T) {
	sized := matrixChild("301", "KIT", "KIT-A", "S")
	sized.Values[models.FieldColor] = "Red"

	colored := matrixChild("302", "KIT", "KIT-B", "")
	colored.Values[models.FieldColor] = "Blue"
	colored.Values[models.FieldCompareAtPrice] = "30"

	plain := matrixChild("303", "KIT", "KIT-C", "")

	items := newMemoryItems()
	items.children["300"] = []models.Item{sized, colored, plain}
	builder := NewVariantBuilder(items, nil)
	parent := models.Item{InternalID: "300", IsMatrix: true}

	variants, err := builder.BuildVariants(context.Background(), &parent, &parent.Record, retailMapping)
	require.NoError(t, err)
	require.Len(t, variants, 3)

	// "S" triggers size ordering; colors and generated options rank last.
	assert.Equal(t, models.OptionValue{OptionName: "Size", Name: "S"}, variants[0].OptionValues[0])
	assert.Equal(t, models.OptionValue{OptionName: "Color", Name: "Blue"}, variants[1].OptionValues[0])
	assert.Equal(t, "30.00", variants[1].CompareAtPrice)
	assert.Equal(t, models.OptionValue{OptionName: "Options", Name: "Option 2"}, variants[2].OptionValues[0])
}

func TestBuildVariants_MatrixCappedAtLimit(t *testing.T) {
	items := newMemoryItems()
	for i := 0; i < 30; i++ {
		items.children["400"] = append(items.children["400"], matrixChild("c", "P", "P-X", ""))
	}
	builder := NewVariantBuilder(items, nil)
	parent := models.Item{InternalID: "400", IsMatrix: true}

	variants, err := builder.BuildVariants(context.Background(), &parent, &parent.Record, retailMapping)
	require.NoError(t, err)
	assert.Len(t, variants, clients.MaxChildItems)
}

func TestBuildVariants_MatrixWithoutChildren(t *testing.T) {
	builder := NewVariantBuilder(newMemoryItems(), nil)
	parent := models.Item{InternalID: "500", IsMatrix: true}

	variants, err := builder.BuildVariants(context.Background(), &parent, &parent.Record, retailMapping)
	require.NoError(t, err)
	assert.Empty(t, variants)
}

func TestChildSKU(t *testing.T) {
	assert.Equal(t, "TEE-S", childSKU("TEE : TEE-S"))
	assert.Equal(t, "B", childSKU("A : B : C"))
	assert.Equal(t, "STANDALONE", childSKU("STANDALONE"))
}

func TestFormatPrice(t *testing.T) {
	tests := map[string]string{
		"":       "",
		"12":     "12.00",
		"12.5":   "12.50",
		"12.345": "12.35",
		" 9.99 ": "9.99",
		"n/a":    "n/a",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatPrice(in), in)
	}
}
