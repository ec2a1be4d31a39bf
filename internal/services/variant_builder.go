package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"shopify-product-service/internal/clients"
	"shopify-product-service/internal/models"
)

const (
	childItemSeparator = " : "
	defaultOptionName  = "Title"
	defaultOptionValue = "Default Title"
)

// VariantBuilder turns a NetSuite item into Shopify variants
type VariantBuilder struct {
	items  clients.ItemRepository
	logger *logrus.Entry
}

// NewVariantBuilder creates a new variant builder
func NewVariantBuilder(items clients.ItemRepository, logger *logrus.Logger) *VariantBuilder {
	if logger == nil {
		logger = logrus.New()
	}
	return &VariantBuilder{
		items:  items,
		logger: logger.WithField("component", "variant-builder"),
	}
}

// BuildVariants returns the variants of item for the given field mapping.
// Matrix parents yield one variant per active child, sorted by size;
// other items yield a single default variant. record is the item's
// loaded full record.
func (b *VariantBuilder) BuildVariants(ctx context.Context, item *models.Item, record *models.Record, mapping models.FieldMapping) ([]models.Variant, error) {
	if !item.IsMatrix {
		return []models.Variant{b.defaultVariant(item, record, mapping)}, nil
	}

	children, err := b.items.ListActiveChildren(ctx, item.InternalID, clients.MaxChildItems)
	if err != nil {
		return nil, fmt.Errorf("failed to list matrix children of item %s: %w", item.InternalID, err)
	}
	if len(children) > clients.MaxChildItems {
		children = children[:clients.MaxChildItems]
	}

	variants := make([]models.Variant, 0, len(children))
	for i := range children {
		variants = append(variants, childVariant(&children[i], i, mapping))
	}

	b.logger.WithFields(logrus.Fields{
		"parentId": item.InternalID,
		"children": len(children),
	}).Debug("Built matrix variants")

	return SortVariants(variants), nil
}

func (b *VariantBuilder) defaultVariant(item *models.Item, record *models.Record, mapping models.FieldMapping) models.Variant {
	v := models.Variant{
		OptionValues: []models.OptionValue{{OptionName: defaultOptionName, Name: defaultOptionValue}},
		Price:        formatPrice(item.Value(mapping.Price)),
		InventoryItem: models.InventoryItem{
			SKU:         item.ItemID(),
			Measurement: measurement(&item.Record),
		},
		Barcode: item.Value(models.FieldUPCCode),
	}
	if record != nil && record.Truthy(mapping.CompareAtPrice) {
		v.CompareAtPrice = formatPrice(record.Value(mapping.CompareAtPrice))
	}
	return v
}

func childVariant(child *models.Item, index int, mapping models.FieldMapping) models.Variant {
	v := models.Variant{
		OptionValues: []models.OptionValue{childOption(child, index)},
		Price:        formatPrice(child.Value(mapping.Price)),
		InventoryItem: models.InventoryItem{
			SKU:         childSKU(child.ItemID()),
			Measurement: measurement(&child.Record),
		},
		Barcode: child.Value(models.FieldUPCCode),
	}
	if child.Truthy(mapping.CompareAtPrice) {
		v.CompareAtPrice = formatPrice(child.Value(mapping.CompareAtPrice))
	}
	return v
}

func childOption(child *models.Item, index int) models.OptionValue {
	if size := child.Text(models.FieldSize); size != "" {
		return models.OptionValue{OptionName: "Size", Name: size}
	}
	if color := child.Text(models.FieldColor); color != "" {
		return models.OptionValue{OptionName: "Color", Name: color}
	}
	return models.OptionValue{OptionName: "Options", Name: "Option " + strconv.Itoa(index)}
}

// childSKU takes the variant part of a "<parent> : <variant>" item id.
func childSKU(itemID string) string {
	parts := strings.Split(itemID, childItemSeparator)
	if len(parts) < 2 {
		return itemID
	}
	return parts[1]
}

func measurement(r *models.Record) models.Measurement {
	return models.Measurement{
		Weight: models.Weight{
			Value: parseWeight(r.Value(models.FieldWeight)),
			Unit:  NormalizeWeightUnit(r.Text(models.FieldWeightUnit)),
		},
	}
}

func parseWeight(raw string) float64 {
	w, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return w
}

// formatPrice renders a NetSuite amount with two decimals.
// Values that are not numbers pass through unchanged.
func formatPrice(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return raw
	}
	return d.StringFixed(2)
}
