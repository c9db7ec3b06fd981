package repository

import (
	"context"
	"fmt"

	"pitboss/database"
	"pitboss/models"
)

// AuditRepository implements the service.AuditRepository interface
type AuditRepository struct {
	q queryable
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *database.DB) *AuditRepository {
	return &AuditRepository{q: db.Pool}
}

func newAuditRepositoryWithTx(tx queryable) *AuditRepository {
	return &AuditRepository{q: tx}
}

// Record appends an audit log entry
func (r *AuditRepository) Record(ctx context.Context, entry *models.AuditEntry) error {
	query := `
		INSERT INTO audit_log (guild_id, category, actor_id, detail)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		entry.GuildID, entry.Category, entry.ActorID, entry.Detail,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}

	return nil
}

// GetRecent returns the newest entries for a guild, newest first
func (r *AuditRepository) GetRecent(ctx context.Context, guildID int64, limit int) ([]*models.AuditEntry, error) {
	query := `
		SELECT id, guild_id, category, actor_id, detail, created_at
		FROM audit_log
		WHERE guild_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	var entries []*models.AuditEntry
	for rows.Next() {
		var entry models.AuditEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.GuildID,
			&entry.Category,
			&entry.ActorID,
			&entry.Detail,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
