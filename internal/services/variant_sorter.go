package services

import (
	"math"
	"sort"
	"strings"

	"shopify-product-service/internal/models"
)

var (
	sizeRanksWithExtraSmall = map[string]int{
		"xs": 1, "yxs": 1,
		"s": 2, "ys": 2,
		"m": 3, "ym": 3,
		"l": 4, "yl": 4,
		"xl": 5, "yxl": 5,
		"2xl": 6, "y2xl": 6,
		"3xl": 7, "y3xl": 7,
		"4xl": 8, "y4xl": 8,
		"5xl": 9, "y5xl": 9,
	}
	sizeRanks = map[string]int{
		"s":   1,
		"m":   2,
		"l":   3,
		"xl":  4,
		"2xl": 5,
		"3xl": 6,
		"4xl": 7,
		"5xl": 8,
	}
)

// SortVariants orders sized variants from smallest to largest.
// Variants are only reordered when one of them is sized "S" or "YS";
// sizes missing from the table go last in their original order.
func SortVariants(variants []models.Variant) []models.Variant {
	sized, extraSmall := false, false
	for _, v := range variants {
		switch v.PrimaryOptionValue() {
		case "S", "YS":
			sized = true
		case "XS", "YXS":
			extraSmall = true
		}
	}

	sorted := make([]models.Variant, len(variants))
	copy(sorted, variants)
	if !sized {
		return sorted
	}

	ranks := sizeRanks
	if extraSmall {
		ranks = sizeRanksWithExtraSmall
	}
	rank := func(v models.Variant) int {
		if r, ok := ranks[strings.ToLower(v.PrimaryOptionValue())]; ok {
			return r
		}
		return math.MaxInt
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return rank(sorted[i]) < rank(sorted[j])
	})
	return sorted
}
