package repository

import (
	"context"
	"fmt"

	"pitboss/database"
	"pitboss/models"

	"github.com/jackc/pgx/v5"
)

// BugReportRepository implements the service.BugReportRepository interface
type BugReportRepository struct {
	q queryable
}

// NewBugReportRepository creates a new bug report repository
func NewBugReportRepository(db *database.DB) *BugReportRepository {
	return &BugReportRepository{q: db.Pool}
}

func newBugReportRepositoryWithTx(tx queryable) *BugReportRepository {
	return &BugReportRepository{q: tx}
}

// Create inserts a new bug report row
func (r *BugReportRepository) Create(ctx context.Context, b *models.BugReport) error {
	query := `
		INSERT INTO bug_reports (author_id, guild_id, title, description, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		b.AuthorID, b.GuildID, b.Title, b.Description, b.Status,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create bug report: %w", err)
	}

	return nil
}

// GetByID returns a bug report by its ID
func (r *BugReportRepository) GetByID(ctx context.Context, id int64) (*models.BugReport, error) {
	query := `
		SELECT id, author_id, guild_id, title, description, status, message_id, created_at, updated_at
		FROM bug_reports
		WHERE id = $1
	`

	var b models.BugReport
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.AuthorID,
		&b.GuildID,
		&b.Title,
		&b.Description,
		&b.Status,
		&b.MessageID,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bug report %d: %w", id, err)
	}

	return &b, nil
}

// SetMessageID stores the Discord message ID after posting
func (r *BugReportRepository) SetMessageID(ctx context.Context, id, messageID int64) error {
	query := `UPDATE bug_reports SET message_id = $2, updated_at = NOW() WHERE id = $1`

	if _, err := r.q.Exec(ctx, query, id, messageID); err != nil {
		return fmt.Errorf("failed to set message ID for bug report %d: %w", id, err)
	}

	return nil
}

// UpdateStatus transitions a bug report to a new review status
func (r *BugReportRepository) UpdateStatus(ctx context.Context, id int64, status models.SubmissionStatus) error {
	query := `UPDATE bug_reports SET status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update status for bug report %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bug report %d not found", id)
	}

	return nil
}
