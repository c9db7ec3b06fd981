package repository

import (
	"context"
	"fmt"

	"pitboss/database"
	"pitboss/models"

	"github.com/jackc/pgx/v5"
)

// ShopRepository implements the service.ShopRepository interface
type ShopRepository struct {
	q queryable
}

// NewShopRepository creates a new shop repository
func NewShopRepository(db *database.DB) *ShopRepository {
	return &ShopRepository{q: db.Pool}
}

func newShopRepositoryWithTx(tx queryable) *ShopRepository {
	return &ShopRepository{q: tx}
}

// Create inserts a new shop item
func (r *ShopRepository) Create(ctx context.Context, item *models.ShopItem) error {
	query := `
		INSERT INTO shop_items (guild_id, name, description, price, role_id, enabled)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		item.GuildID, item.Name, item.Description, item.Price, item.RoleID, item.Enabled,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create shop item %q: %w", item.Name, err)
	}

	return nil
}

// GetByName returns a shop item by its guild-unique name
func (r *ShopRepository) GetByName(ctx context.Context, guildID int64, name string) (*models.ShopItem, error) {
	query := `
		SELECT id, guild_id, name, description, price, role_id, enabled, created_at, updated_at
		FROM shop_items
		WHERE guild_id = $1 AND name = $2
	`

	var item models.ShopItem
	err := r.q.QueryRow(ctx, query, guildID, name).Scan(
		&item.ID,
		&item.GuildID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.RoleID,
		&item.Enabled,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shop item %q: %w", name, err)
	}

	return &item, nil
}

// GetAll returns every shop item for a guild
func (r *ShopRepository) GetAll(ctx context.Context, guildID int64) ([]*models.ShopItem, error) {
	query := `
		SELECT id, guild_id, name, description, price, role_id, enabled, created_at, updated_at
		FROM shop_items
		WHERE guild_id = $1
		ORDER BY price
	`

	rows, err := r.q.Query(ctx, query, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shop items: %w", err)
	}
	defer rows.Close()

	var items []*models.ShopItem
	for rows.Next() {
		var item models.ShopItem
		if err := rows.Scan(
			&item.ID,
			&item.GuildID,
			&item.Name,
			&item.Description,
			&item.Price,
			&item.RoleID,
			&item.Enabled,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shop item: %w", err)
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

// SetEnabled toggles whether an item is purchasable
func (r *ShopRepository) SetEnabled(ctx context.Context, guildID int64, name string, enabled bool) error {
	query := `
		UPDATE shop_items
		SET enabled = $3, updated_at = NOW()
		WHERE guild_id = $1 AND name = $2
	`

	tag, err := r.q.Exec(ctx, query, guildID, name, enabled)
	if err != nil {
		return fmt.Errorf("failed to toggle shop item %q: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("shop item %q not found", name)
	}

	return nil
}

// Delete removes an item from the shop
func (r *ShopRepository) Delete(ctx context.Context, guildID int64, name string) error {
	query := `DELETE FROM shop_items WHERE guild_id = $1 AND name = $2`

	tag, err := r.q.Exec(ctx, query, guildID, name)
	if err != nil {
		return fmt.Errorf("failed to delete shop item %q: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("shop item %q not found", name)
	}

	return nil
}
