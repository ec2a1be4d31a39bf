package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"shopify-product-service/internal/clients"
	"shopify-product-service/internal/models"
	"shopify-product-service/internal/repository"
)

// memoryItems is an in-memory ItemRepository.
type memoryItems struct {
	bySKU      map[string]*models.Item
	children   map[string][]models.Item
	records    map[string]*models.Record
	lookups    int
	childLimit int
}

var _ clients.ItemRepository = (*memoryItems)(nil)

func newMemoryItems() *memoryItems {
	return &memoryItems{
		bySKU:    map[string]*models.Item{},
		children: map[string][]models.Item{},
		records:  map[string]*models.Record{},
	}
}

func (m *memoryItems) addItem(item models.Item) {
	m.bySKU[item.ItemID()] = &item
	rec := item.Record
	m.records[item.InternalID] = &rec
}

func (m *memoryItems) FindActiveItemBySKU(ctx context.Context, sku string) (*models.Item, error) {
	m.lookups++
	item, ok := m.bySKU[sku]
	if !ok {
		return nil, models.ErrItemNotFound
	}
	return item, nil
}

func (m *memoryItems) ListActiveChildren(ctx context.Context, parentID string, limit int) ([]models.Item, error) {
	m.childLimit = limit
	children := m.children[parentID]
	if len(children) > limit {
		children = children[:limit]
	}
	return children, nil
}

func (m *memoryItems) LoadRecord(ctx context.Context, recordType models.RecordType, internalID string) (*models.Record, error) {
	if _, err := recordType.RecordPath(); err != nil {
		return nil, err
	}
	rec, ok := m.records[internalID]
	if !ok {
		return nil, models.ErrItemNotFound
	}
	return rec, nil
}

// MockSubmitter is a mock implementation of clients.ProductSubmitter
type MockSubmitter struct {
	mock.Mock
}

var _ clients.ProductSubmitter = (*MockSubmitter)(nil)

func (m *MockSubmitter) Submit(ctx context.Context, store models.Store, product *models.Product) (*models.CreatedProduct, error) {
	args := m.Called(ctx, store, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CreatedProduct), args.Error(1)
}

// MockRecorder is a mock implementation of SubmissionRecorder
type MockRecorder struct {
	mock.Mock
}

var _ SubmissionRecorder = (*MockRecorder)(nil)

func (m *MockRecorder) RecordSubmission(ctx context.Context, submission *models.ProductSubmission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

// MockPublisher is a mock implementation of ProductEventPublisher
type MockPublisher struct {
	mock.Mock
}

var _ ProductEventPublisher = (*MockPublisher)(nil)

func (m *MockPublisher) PublishProductCreated(ctx context.Context, store models.Store, product *models.Product, created *models.CreatedProduct) error {
	args := m.Called(ctx, store, product, created)
	return args.Error(0)
}

// MockSubmissionStore is a mock implementation of SubmissionStore
type MockSubmissionStore struct {
	mock.Mock
}

var _ SubmissionStore = (*MockSubmissionStore)(nil)

func (m *MockSubmissionStore) Create(ctx context.Context, submission *models.ProductSubmission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionStore) List(ctx context.Context, opts repository.SubmissionListOptions) ([]models.ProductSubmission, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProductSubmission), args.Error(1)
}

// simpleItem builds a non-matrix retail-ready item.
func simpleItem(id, sku string) models.Item {
	return models.Item{
		InternalID: id,
		Type:       models.RecordTypeInventoryItem,
		Record: models.Record{
			Values: map[string]string{
				models.FieldInternalID:     id,
				models.FieldItemID:         sku,
				models.FieldDisplayName:    "Pro Clipper",
				models.FieldUPCCode:        "012345678905",
				models.FieldWeight:         "1.5",
				models.FieldWeightUnit:     "1",
				models.FieldBrand:          "12",
				models.FieldProductType:    "7",
				models.FieldBasePrice:      "129.5",
				models.FieldCompareAtPrice: "149.99",
				models.FieldDescription:    `<p class="lead" style="color:red">Cordless clipper</p>`,
				models.FieldTags:           "clippers, cordless ,, pro",
			},
			Texts: map[string]string{
				models.FieldWeightUnit:  "lb",
				models.FieldBrand:       "Andis",
				models.FieldProductType: "Clippers",
			},
		},
	}
}

// matrixChild builds an active child of a matrix parent.
func matrixChild(id, parentCode, variantCode, size string) models.Item {
	return models.Item{
		InternalID: id,
		Type:       models.RecordTypeInventoryItem,
		Record: models.Record{
			Values: map[string]string{
				models.FieldItemID:     parentCode + " : " + variantCode,
				models.FieldUPCCode:    "UPC-" + variantCode,
				models.FieldWeight:     "8",
				models.FieldBasePrice:  "24",
				models.FieldSize:       size,
				models.FieldWeightUnit: "oz",
			},
		},
	}
}
