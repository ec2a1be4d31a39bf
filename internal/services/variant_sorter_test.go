package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shopify-product-service/internal/models"
)

func sizedVariants(sizes ...string) []models.Variant {
	variants := make([]models.Variant, len(sizes))
	for i, s := range sizes {
		variants[i] = models.Variant{
			OptionValues:  []models.OptionValue{{OptionName: "Size", Name: s}},
			InventoryItem: models.InventoryItem{SKU: "SKU-" + s},
		}
	}
	return variants
}

func optionNames(variants []models.Variant) []string {
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.PrimaryOptionValue()
	}
	return names
}

func TestSortVariants(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"extra small table", []string{"L", "XS", "M", "S"}, []string{"XS", "S", "M", "L"}},
		{"base table", []string{"S", "XL"}, []string{"S", "XL"}},
		{"base table reversed", []string{"3XL", "XL", "L", "M", "S"}, []string{"S", "M", "L", "XL", "3XL"}},
		{"youth sizes", []string{"YL", "YS", "YXS", "YM"}, []string{"YXS", "YS", "YM", "YL"}},
		{"no size signal", []string{"XL", "M"}, []string{"XL", "M"}},
		{"lower case values still need S", []string{"m", "s"}, []string{"m", "s"}},
		{"lower case values ranked", []string{"xl", "m", "S"}, []string{"S", "m", "xl"}},
		{"unknown sizes last and stable", []string{"OS", "L", "S", "Tall"}, []string{"S", "L", "OS", "Tall"}},
		{"colors untouched", []string{"Red", "Blue"}, []string{"Red", "Blue"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sizedVariants(tt.in...)
			got := SortVariants(in)
			assert.Equal(t, tt.want, optionNames(got))
			assert.Equal(t, tt.in, optionNames(in), "input reordered")
		})
	}
}

func TestSortVariants_KeepsVariantData(t *testing.T) {
	got := SortVariants(sizedVariants("M", "S"))
	assert.Equal(t, "SKU-S", got[0].InventoryItem.SKU)
	assert.Equal(t, "SKU-M", got[1].InventoryItem.SKU)
}

func TestSortVariants_Empty(t *testing.T) {
	assert.Empty(t, SortVariants(nil))
}
