package repository

import (
	"context"
	"fmt"
	"time"

	"pitboss/database"
	"pitboss/models"

	"github.com/jackc/pgx/v5"
)

// SubscriptionRepository implements the service.SubscriptionRepository interface
type SubscriptionRepository struct {
	q queryable
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *database.DB) *SubscriptionRepository {
	return &SubscriptionRepository{q: db.Pool}
}

func newSubscriptionRepositoryWithTx(tx queryable) *SubscriptionRepository {
	return &SubscriptionRepository{q: tx}
}

// Upsert writes the subscription row for a user, overwriting any existing one
func (r *SubscriptionRepository) Upsert(ctx context.Context, sub *models.Subscription) error {
	query := `
		INSERT INTO subscriptions (discord_id, guild_id, tier, role_id, active, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (discord_id, guild_id) DO UPDATE
		SET tier = EXCLUDED.tier,
		    role_id = EXCLUDED.role_id,
		    active = EXCLUDED.active,
		    expires_at = EXCLUDED.expires_at,
		    updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		sub.DiscordID, sub.GuildID, sub.Tier, sub.RoleID, sub.Active, sub.ExpiresAt,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert subscription for user %d: %w", sub.DiscordID, err)
	}

	return nil
}

// GetByDiscordID returns the subscription row for a user, if any
func (r *SubscriptionRepository) GetByDiscordID(ctx context.Context, discordID, guildID int64) (*models.Subscription, error) {
	query := `
		SELECT id, discord_id, guild_id, tier, role_id, active, expires_at, created_at, updated_at
		FROM subscriptions
		WHERE discord_id = $1 AND guild_id = $2
	`

	var sub models.Subscription
	err := r.q.QueryRow(ctx, query, discordID, guildID).Scan(
		&sub.ID,
		&sub.DiscordID,
		&sub.GuildID,
		&sub.Tier,
		&sub.RoleID,
		&sub.Active,
		&sub.ExpiresAt,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription for user %d: %w", discordID, err)
	}

	return &sub, nil
}

// Deactivate marks a subscription inactive
func (r *SubscriptionRepository) Deactivate(ctx context.Context, discordID, guildID int64) error {
	query := `
		UPDATE subscriptions
		SET active = FALSE, updated_at = NOW()
		WHERE discord_id = $1 AND guild_id = $2 AND active
	`

	tag, err := r.q.Exec(ctx, query, discordID, guildID)
	if err != nil {
		return fmt.Errorf("failed to deactivate subscription for user %d: %w", discordID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no active subscription for user %d", discordID)
	}

	return nil
}

// GetExpired returns all active subscriptions whose expiry has passed
func (r *SubscriptionRepository) GetExpired(ctx context.Context, now time.Time) ([]*models.Subscription, error) {
	query := `
		SELECT id, discord_id, guild_id, tier, role_id, active, expires_at, created_at, updated_at
		FROM subscriptions
		WHERE active AND expires_at <= $1
		ORDER BY expires_at
	`

	rows, err := r.q.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query expired subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []*models.Subscription
	for rows.Next() {
		var sub models.Subscription
		if err := rows.Scan(
			&sub.ID,
			&sub.DiscordID,
			&sub.GuildID,
			&sub.Tier,
			&sub.RoleID,
			&sub.Active,
			&sub.ExpiresAt,
			&sub.CreatedAt,
			&sub.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, &sub)
	}

	return subs, rows.Err()
}
