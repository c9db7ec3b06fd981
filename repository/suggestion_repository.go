package repository

import (
	"context"
	"fmt"

	"pitboss/database"
	"pitboss/models"

	"github.com/jackc/pgx/v5"
)

// SuggestionRepository implements the service.SuggestionRepository interface
type SuggestionRepository struct {
	q queryable
}

// NewSuggestionRepository creates a new suggestion repository
func NewSuggestionRepository(db *database.DB) *SuggestionRepository {
	return &SuggestionRepository{q: db.Pool}
}

func newSuggestionRepositoryWithTx(tx queryable) *SuggestionRepository {
	return &SuggestionRepository{q: tx}
}

// Create inserts a new suggestion row
func (r *SuggestionRepository) Create(ctx context.Context, s *models.Suggestion) error {
	query := `
		INSERT INTO suggestions (author_id, guild_id, title, description, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		s.AuthorID, s.GuildID, s.Title, s.Description, s.Status,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create suggestion: %w", err)
	}

	return nil
}

// GetByID returns a suggestion by its ID
func (r *SuggestionRepository) GetByID(ctx context.Context, id int64) (*models.Suggestion, error) {
	query := `
		SELECT id, author_id, guild_id, title, description, status, message_id, thread_id, created_at, updated_at
		FROM suggestions
		WHERE id = $1
	`

	var s models.Suggestion
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.AuthorID,
		&s.GuildID,
		&s.Title,
		&s.Description,
		&s.Status,
		&s.MessageID,
		&s.ThreadID,
		&s.CreatedAt,
		&s.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestion %d: %w", id, err)
	}

	return &s, nil
}

// SetMessageIDs stores the Discord message and thread IDs after posting
func (r *SuggestionRepository) SetMessageIDs(ctx context.Context, id, messageID, threadID int64) error {
	query := `
		UPDATE suggestions
		SET message_id = $2, thread_id = $3, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := r.q.Exec(ctx, query, id, messageID, threadID); err != nil {
		return fmt.Errorf("failed to set message IDs for suggestion %d: %w", id, err)
	}

	return nil
}

// UpdateStatus transitions a suggestion to a new review status
func (r *SuggestionRepository) UpdateStatus(ctx context.Context, id int64, status models.SubmissionStatus) error {
	query := `UPDATE suggestions SET status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update status for suggestion %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("suggestion %d not found", id)
	}

	return nil
}
