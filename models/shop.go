package models

import "time"

// ShopItem is a purchasable entry in the casino bot's shop. This bot only
// administers the table; the casino bot serves purchases from it.
type ShopItem struct {
	ID          int64     `db:"id"`
	GuildID     int64     `db:"guild_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Price       int64     `db:"price"`
	RoleID      int64     `db:"role_id"`
	Enabled     bool      `db:"enabled"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
