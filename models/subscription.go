package models

import "time"

// Subscription represents a user's premium tier in a guild.
// At most one row per user+guild; a new grant overwrites the old one.
type Subscription struct {
	ID        int64     `db:"id"`
	DiscordID int64     `db:"discord_id"`
	GuildID   int64     `db:"guild_id"`
	Tier      string    `db:"tier"`
	RoleID    int64     `db:"role_id"`
	Active    bool      `db:"active"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Expired reports whether the subscription is past its expiry
func (s *Subscription) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
