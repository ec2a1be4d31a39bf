package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shopify-product-service/internal/models"
)

const maxSubmissionPageSize = 100

// SubmissionListOptions filters submission queries
type SubmissionListOptions struct {
	Store  models.Store
	Status models.SubmissionStatus
	Limit  int
}

// SubmissionRepository handles database operations for product submissions
type SubmissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create stores a submission row
func (r *SubmissionRepository) Create(ctx context.Context, submission *models.ProductSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

// GetByID retrieves a submission by ID
func (r *SubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ProductSubmission, error) {
	var submission models.ProductSubmission
	err := r.db.WithContext(ctx).First(&submission, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// List retrieves the most recent submissions, newest first
func (r *SubmissionRepository) List(ctx context.Context, opts SubmissionListOptions) ([]models.ProductSubmission, error) {
	limit := opts.Limit
	if limit <= 0 || limit > maxSubmissionPageSize {
		limit = maxSubmissionPageSize
	}

	query := r.db.WithContext(ctx)
	if opts.Store != "" {
		query = query.Where("store = ?", opts.Store)
	}
	if opts.Status != "" {
		query = query.Where("status = ?", opts.Status)
	}

	var submissions []models.ProductSubmission
	err := query.Order("created_at DESC").Limit(limit).Find(&submissions).Error
	return submissions, err
}
