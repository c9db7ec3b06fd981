package repository

import (
	"context"
	"fmt"

	"pitboss/database"
	"pitboss/models"

	"github.com/jackc/pgx/v5"
)

// UserRepository implements the service.UserRepository interface
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

// GetByDiscordID retrieves a user by Discord ID within a guild
func (r *UserRepository) GetByDiscordID(ctx context.Context, discordID, guildID int64) (*models.User, error) {
	query := `
		SELECT discord_id, guild_id, username, wallet, bank, off_economy, created_at, updated_at
		FROM users
		WHERE discord_id = $1 AND guild_id = $2
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, discordID, guildID).Scan(
		&user.DiscordID,
		&user.GuildID,
		&user.Username,
		&user.Wallet,
		&user.Bank,
		&user.OffEconomy,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", discordID, err)
	}

	return &user, nil
}

// Create inserts a new user row with zero balances
func (r *UserRepository) Create(ctx context.Context, discordID, guildID int64, username string) (*models.User, error) {
	query := `
		INSERT INTO users (discord_id, guild_id, username)
		VALUES ($1, $2, $3)
		RETURNING discord_id, guild_id, username, wallet, bank, off_economy, created_at, updated_at
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, discordID, guildID, username).Scan(
		&user.DiscordID,
		&user.GuildID,
		&user.Username,
		&user.Wallet,
		&user.Bank,
		&user.OffEconomy,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user %d: %w", discordID, err)
	}

	return &user, nil
}

// UpdateBalances sets wallet and bank for a user, leaving all other columns alone
func (r *UserRepository) UpdateBalances(ctx context.Context, discordID, guildID, wallet, bank int64) error {
	query := `
		UPDATE users
		SET wallet = $3, bank = $4, updated_at = NOW()
		WHERE discord_id = $1 AND guild_id = $2
	`

	tag, err := r.q.Exec(ctx, query, discordID, guildID, wallet, bank)
	if err != nil {
		return fmt.Errorf("failed to update balances for user %d: %w", discordID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", discordID)
	}

	return nil
}

// SetOffEconomy sets the off-economy flag for a user
func (r *UserRepository) SetOffEconomy(ctx context.Context, discordID, guildID int64, offEconomy bool) error {
	query := `
		UPDATE users
		SET off_economy = $3, updated_at = NOW()
		WHERE discord_id = $1 AND guild_id = $2
	`

	tag, err := r.q.Exec(ctx, query, discordID, guildID, offEconomy)
	if err != nil {
		return fmt.Errorf("failed to set off-economy flag for user %d: %w", discordID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", discordID)
	}

	return nil
}

// Summarize aggregates economy figures across a guild
func (r *UserRepository) Summarize(ctx context.Context, guildID int64) (*models.EconomySummary, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(wallet), 0),
			COALESCE(SUM(bank), 0),
			COUNT(*) FILTER (WHERE off_economy)
		FROM users
		WHERE guild_id = $1
	`

	var summary models.EconomySummary
	err := r.q.QueryRow(ctx, query, guildID).Scan(
		&summary.UserCount,
		&summary.TotalWallet,
		&summary.TotalBank,
		&summary.OffEconomyCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize economy for guild %d: %w", guildID, err)
	}

	return &summary, nil
}
