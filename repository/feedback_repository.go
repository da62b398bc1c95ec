package repository

import (
	"context"

	"github.com/SrikarVamsi/Gem/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FeedbackRepository handles database operations for verdict feedback
type FeedbackRepository struct {
	db *pgxpool.Pool
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create stores one feedback record
func (r *FeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	query := `
		INSERT INTO feedback (content, label, helpful, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return r.db.QueryRow(
		ctx, query,
		feedback.Content,
		string(feedback.Label),
		feedback.Helpful,
		feedback.Notes,
	).Scan(&feedback.ID, &feedback.CreatedAt)
}
