package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus is the outcome of a CREATE_PRODUCT call.
type SubmissionStatus string

const (
	SubmissionSucceeded SubmissionStatus = "SUCCEEDED"
	SubmissionFailed    SubmissionStatus = "FAILED"
)

// ProductSubmission is the audit row written for every product submission.
type ProductSubmission struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Store            Store            `gorm:"type:varchar(50);not null;index:idx_product_submissions_store" json:"store"`
	Title            string           `gorm:"type:varchar(255)" json:"title"`
	SKU              string           `gorm:"type:varchar(255);index:idx_product_submissions_sku" json:"sku"`
	VariantCount     int              `gorm:"not null" json:"variantCount"`
	Status           SubmissionStatus `gorm:"type:varchar(20);not null;index:idx_product_submissions_status" json:"status"`
	ShopifyProductID *string          `gorm:"type:varchar(64)" json:"shopifyProductId,omitempty"`
	ShopifyURL       *string          `gorm:"type:text" json:"shopifyUrl,omitempty"`
	ErrorMessage     *string          `gorm:"type:text" json:"errorMessage,omitempty"`
	RequestID        *string          `gorm:"type:varchar(255)" json:"requestId,omitempty"`
	CreatedAt        time.Time        `gorm:"not null;index:idx_product_submissions_created" json:"createdAt"`
}

// TableName specifies the table name for ProductSubmission
func (ProductSubmission) TableName() string {
	return "shopify_product_submissions"
}

// ProductSubmissionBuilder helps construct submission audit rows
type ProductSubmissionBuilder struct {
	submission *ProductSubmission
}

// NewProductSubmission starts a submission row for a product sent to a store.
func NewProductSubmission(store Store, product *Product) *ProductSubmissionBuilder {
	s := &ProductSubmission{
		ID:        uuid.New(),
		Store:     store,
		CreatedAt: time.Now(),
	}
	if product != nil {
		s.Title = product.Title
		s.VariantCount = len(product.Variants)
		if len(product.Variants) > 0 {
			s.SKU = product.Variants[0].InventoryItem.SKU
		}
	}
	return &ProductSubmissionBuilder{submission: s}
}

// WithCreated marks the submission as succeeded.
func (b *ProductSubmissionBuilder) WithCreated(created *CreatedProduct) *ProductSubmissionBuilder {
	b.submission.Status = SubmissionSucceeded
	if created != nil {
		id, url := created.LegacyResourceID, created.URL
		b.submission.ShopifyProductID = &id
		b.submission.ShopifyURL = &url
	}
	return b
}

// WithError marks the submission as failed.
func (b *ProductSubmissionBuilder) WithError(err error) *ProductSubmissionBuilder {
	b.submission.Status = SubmissionFailed
	if err != nil {
		msg := err.Error()
		b.submission.ErrorMessage = &msg
	}
	return b
}

// WithRequestID records the inbound request id.
func (b *ProductSubmissionBuilder) WithRequestID(requestID string) *ProductSubmissionBuilder {
	if requestID != "" {
		b.submission.RequestID = &requestID
	}
	return b
}

// Build returns the constructed submission
func (b *ProductSubmissionBuilder) Build() *ProductSubmission {
	return b.submission
}
