package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"shopify-product-service/internal/clients"
	"shopify-product-service/internal/models"
)

// SubmissionRecorder stores the outcome of product submissions
type SubmissionRecorder interface {
	RecordSubmission(ctx context.Context, submission *models.ProductSubmission) error
}

// ProductEventPublisher announces products created in Shopify
type ProductEventPublisher interface {
	PublishProductCreated(ctx context.Context, store models.Store, product *models.Product, created *models.CreatedProduct) error
}

// ProductService runs the preview and create actions
type ProductService struct {
	fields    *FieldMapper
	items     clients.ItemRepository
	assembler *ProductAssembler
	submitter clients.ProductSubmitter
	recorder  SubmissionRecorder
	publisher ProductEventPublisher
	logger    *logrus.Entry
}

// ProductServiceOption configures optional collaborators
type ProductServiceOption func(*ProductService)

// WithSubmissionRecorder enables the submission audit trail.
func WithSubmissionRecorder(r SubmissionRecorder) ProductServiceOption {
	return func(s *ProductService) { s.recorder = r }
}

// WithEventPublisher enables product.created events.
func WithEventPublisher(p ProductEventPublisher) ProductServiceOption {
	return func(s *ProductService) { s.publisher = p }
}

// NewProductService wires the product pipeline.
func NewProductService(fields *FieldMapper, items clients.ItemRepository, submitter clients.ProductSubmitter, logger *logrus.Logger, opts ...ProductServiceOption) *ProductService {
	if logger == nil {
		logger = logrus.New()
	}
	if fields == nil {
		fields = NewFieldMapper(nil)
	}
	s := &ProductService{
		fields:    fields,
		items:     items,
		assembler: NewProductAssembler(fields, items, NewVariantBuilder(items, logger), logger),
		submitter: submitter,
		logger:    logger.WithField("component", "product-service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Preview looks up the active item with the given SKU and assembles its
// product for store.
func (s *ProductService) Preview(ctx context.Context, store, sku string) (*models.Product, error) {
	if _, _, err := s.fields.ResolveFields(store); err != nil {
		return nil, err
	}

	item, err := s.items.FindActiveItemBySKU(ctx, sku)
	if errors.Is(err, models.ErrItemNotFound) || (err == nil && item == nil) {
		return nil, fmt.Errorf("%w for SKU %q", models.ErrItemNotFound, sku)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up SKU %q: %w", sku, err)
	}

	s.logger.WithFields(logrus.Fields{
		"sku":        sku,
		"itemId":     item.InternalID,
		"recordType": item.Type,
		"matrix":     item.IsMatrix,
	}).Debug("Found item")

	return s.assembler.AssembleProduct(ctx, store, item)
}

// Submit forwards product to the Shopify product endpoint and relays the
// created product. Failures are reported once and never retried.
func (s *ProductService) Submit(ctx context.Context, store string, product *models.Product) (*models.CreateProductResult, error) {
	st, err := models.ParseStore(store)
	if err != nil {
		return nil, err
	}

	created, err := s.submitter.Submit(ctx, st, product)
	s.recordSubmission(ctx, st, product, created, err)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if pubErr := s.publisher.PublishProductCreated(ctx, st, product, created); pubErr != nil {
			s.logger.WithError(pubErr).Warn("Failed to publish product created event")
		}
	}
	return &models.CreateProductResult{Product: created}, nil
}

func (s *ProductService) recordSubmission(ctx context.Context, store models.Store, product *models.Product, created *models.CreatedProduct, submitErr error) {
	if s.recorder == nil {
		return
	}
	b := models.NewProductSubmission(store, product).WithRequestID(RequestIDFromContext(ctx))
	if submitErr != nil {
		b.WithError(submitErr)
	} else {
		b.WithCreated(created)
	}
	if err := s.recorder.RecordSubmission(ctx, b.Build()); err != nil {
		s.logger.WithError(err).Warn("Failed to record product submission")
	}
}

// ValidateRequest checks the arguments every action needs.
func ValidateRequest(req *models.ActionRequest) error {
	if req == nil || req.Action == "" {
		return &models.MissingArgumentError{Argument: "action", Method: http.MethodPost}
	}
	if req.Payload == nil {
		return &models.MissingArgumentError{Argument: "payload", Method: http.MethodPost}
	}
	return nil
}

// Dispatch runs one action and converts its outcome into an envelope.
// It always returns exactly one envelope, including on panic.
func (s *ProductService) Dispatch(ctx context.Context, req *models.ActionRequest) (env models.Envelope) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.WithField("panic", fmt.Sprint(r)).Error("Action panicked")
			env = models.Failed(models.DefaultErrorMessage)
		}
	}()

	if err := ValidateRequest(req); err != nil {
		return models.Failed(err.Error())
	}

	log := s.logger.WithFields(logrus.Fields{
		"action":    req.Action,
		"store":     req.Payload.ShopifyStore,
		"requestId": RequestIDFromContext(ctx),
	})

	var (
		data interface{}
		err  error
	)
	switch req.Action {
	case models.ActionGetPreview:
		if req.Payload.SKU == "" {
			err = &models.MissingArgumentError{Argument: "sku", Method: http.MethodPost}
			break
		}
		log = log.WithField("sku", req.Payload.SKU)
		data, err = s.Preview(ctx, req.Payload.ShopifyStore, req.Payload.SKU)
	case models.ActionCreateProduct:
		if req.Payload.Product == nil {
			err = &models.MissingArgumentError{Argument: "product", Method: http.MethodPost}
			break
		}
		data, err = s.Submit(ctx, req.Payload.ShopifyStore, req.Payload.Product)
	default:
		log.Warn("Invalid action")
		return models.Failed("Invalid action")
	}

	if err != nil {
		log.WithError(err).Warn("Action failed")
		return models.Failed(err.Error())
	}
	log.Info("Action completed")
	return models.Succeeded(data)
}
