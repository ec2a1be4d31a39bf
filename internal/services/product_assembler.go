package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"shopify-product-service/internal/clients"
	"shopify-product-service/internal/models"
)

// ProductAssembler builds a validated Shopify product from a NetSuite item
type ProductAssembler struct {
	fields   *FieldMapper
	items    clients.ItemRepository
	variants *VariantBuilder
	logger   *logrus.Entry
}

// NewProductAssembler creates a new product assembler
func NewProductAssembler(fields *FieldMapper, items clients.ItemRepository, variants *VariantBuilder, logger *logrus.Logger) *ProductAssembler {
	if logger == nil {
		logger = logrus.New()
	}
	return &ProductAssembler{
		fields:   fields,
		items:    items,
		variants: variants,
		logger:   logger.WithField("component", "product-assembler"),
	}
}

// AssembleProduct builds the product for item in the given store.
// A product missing required fields is never returned; the error is a
// *models.RequiredFieldsError naming all of them.
func (a *ProductAssembler) AssembleProduct(ctx context.Context, store string, item *models.Item) (*models.Product, error) {
	_, mapping, err := a.fields.ResolveFields(store)
	if err != nil {
		return nil, err
	}

	record, err := a.items.LoadRecord(ctx, item.Type, item.InternalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load item record %s: %w", item.InternalID, err)
	}

	product := &models.Product{
		Vendor:          record.Text(models.FieldBrand),
		Title:           record.Value(models.FieldDisplayName),
		ProductType:     record.Text(models.FieldProductType),
		Tags:            SplitTags(record.Value(mapping.Tags)),
		DescriptionHTML: StripPresentationalAttributes(record.Value(mapping.Description)),
	}

	a.logger.WithFields(logrus.Fields{
		"itemId":     item.InternalID,
		"recordType": item.Type,
		"tags":       product.Tags,
	}).Debug("Loaded item record")

	product.Variants, err = a.variants.BuildVariants(ctx, item, record, mapping)
	if err != nil {
		return nil, err
	}

	if missing := CheckRequiredFields(product); len(missing) > 0 {
		return nil, &models.RequiredFieldsError{Fields: missing}
	}
	return product, nil
}

// SplitTags turns a NetSuite tags field into a tag list.
// Spaces are removed before splitting on commas; empty tags are dropped.
func SplitTags(raw string) []string {
	tags := []string{}
	for _, tag := range strings.Split(strings.ReplaceAll(raw, " ", ""), ",") {
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// CheckRequiredFields returns the names of required fields that are unset.
// Tags and description are optional; weight must be non-zero.
func CheckRequiredFields(p *models.Product) []string {
	var missing []string
	add := func(name string) {
		for _, m := range missing {
			if m == name {
				return
			}
		}
		missing = append(missing, name)
	}

	if p.Vendor == "" {
		add("vendor")
	}
	if p.Title == "" {
		add("title")
	}
	if p.ProductType == "" {
		add("productType")
	}
	if len(p.Variants) == 0 {
		add("variants")
	}
	for _, v := range p.Variants {
		if v.Price == "" {
			add("price")
		}
		if v.InventoryItem.SKU == "" {
			add("sku")
		}
		if v.Barcode == "" {
			add("barcode")
		}
		if v.InventoryItem.Measurement.Weight.Value == 0 {
			add("weight")
		}
	}
	return missing
}
