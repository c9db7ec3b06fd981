package repository

import (
	"context"
	"fmt"

	"pitboss/database"
	"pitboss/models"

	"github.com/jackc/pgx/v5"
)

// GiveawayRepository implements the service.GiveawayRepository interface
type GiveawayRepository struct {
	q queryable
}

// NewGiveawayRepository creates a new giveaway repository
func NewGiveawayRepository(db *database.DB) *GiveawayRepository {
	return &GiveawayRepository{q: db.Pool}
}

func newGiveawayRepositoryWithTx(tx queryable) *GiveawayRepository {
	return &GiveawayRepository{q: tx}
}

// Create inserts a new giveaway row keyed by its Discord message ID
func (r *GiveawayRepository) Create(ctx context.Context, g *models.Giveaway) error {
	query := `
		INSERT INTO giveaways (message_id, channel_id, guild_id, prize, creator_id, winner_count, ends_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query,
		g.MessageID, g.ChannelID, g.GuildID, g.Prize, g.CreatorID, g.WinnerCount, g.EndsAt,
	).Scan(&g.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create giveaway %d: %w", g.MessageID, err)
	}

	return nil
}

// GetByMessageID returns the giveaway for a Discord message, if any
func (r *GiveawayRepository) GetByMessageID(ctx context.Context, messageID int64) (*models.Giveaway, error) {
	query := `
		SELECT message_id, channel_id, guild_id, prize, creator_id, winner_count, ends_at, concluded, created_at
		FROM giveaways
		WHERE message_id = $1
	`

	var g models.Giveaway
	err := r.q.QueryRow(ctx, query, messageID).Scan(
		&g.MessageID,
		&g.ChannelID,
		&g.GuildID,
		&g.Prize,
		&g.CreatorID,
		&g.WinnerCount,
		&g.EndsAt,
		&g.Concluded,
		&g.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get giveaway %d: %w", messageID, err)
	}

	return &g, nil
}

// GetOpen returns all giveaways that have not concluded
func (r *GiveawayRepository) GetOpen(ctx context.Context) ([]*models.Giveaway, error) {
	query := `
		SELECT message_id, channel_id, guild_id, prize, creator_id, winner_count, ends_at, concluded, created_at
		FROM giveaways
		WHERE NOT concluded
		ORDER BY ends_at
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query open giveaways: %w", err)
	}
	defer rows.Close()

	var giveaways []*models.Giveaway
	for rows.Next() {
		var g models.Giveaway
		if err := rows.Scan(
			&g.MessageID,
			&g.ChannelID,
			&g.GuildID,
			&g.Prize,
			&g.CreatorID,
			&g.WinnerCount,
			&g.EndsAt,
			&g.Concluded,
			&g.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan giveaway: %w", err)
		}
		giveaways = append(giveaways, &g)
	}

	return giveaways, rows.Err()
}

// MarkConcluded flags a giveaway as finished
func (r *GiveawayRepository) MarkConcluded(ctx context.Context, messageID int64) error {
	query := `UPDATE giveaways SET concluded = TRUE WHERE message_id = $1 AND NOT concluded`

	tag, err := r.q.Exec(ctx, query, messageID)
	if err != nil {
		return fmt.Errorf("failed to conclude giveaway %d: %w", messageID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("giveaway %d not found or already concluded", messageID)
	}

	return nil
}
