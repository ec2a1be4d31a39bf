package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"shopify-product-service/internal/models"
	"shopify-product-service/internal/repository"
)

// SubmissionStore is the persistence the audit service writes to
type SubmissionStore interface {
	Create(ctx context.Context, submission *models.ProductSubmission) error
	List(ctx context.Context, opts repository.SubmissionListOptions) ([]models.ProductSubmission, error)
}

// AuditService keeps the audit trail of product submissions
type AuditService struct {
	store SubmissionStore
}

// NewAuditService creates a new audit service
func NewAuditService(store SubmissionStore) *AuditService {
	return &AuditService{store: store}
}

// RecordSubmission stores one submission outcome
func (s *AuditService) RecordSubmission(ctx context.Context, submission *models.ProductSubmission) error {
	if submission.ID == uuid.Nil {
		submission.ID = uuid.New()
	}
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = time.Now()
	}
	return s.store.Create(ctx, submission)
}

// RecentSubmissions lists the latest submissions, optionally for one store
func (s *AuditService) RecentSubmissions(ctx context.Context, store string, limit int) ([]models.ProductSubmission, error) {
	opts := repository.SubmissionListOptions{Limit: limit}
	if store != "" {
		st, err := models.ParseStore(store)
		if err != nil {
			return nil, err
		}
		opts.Store = st
	}
	return s.store.List(ctx, opts)
}
