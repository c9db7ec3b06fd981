package models

import (
	"time"
)

// User represents a community member's economy record
type User struct {
	DiscordID  int64     `db:"discord_id"`
	GuildID    int64     `db:"guild_id"`
	Username   string    `db:"username"`
	Wallet     int64     `db:"wallet"`
	Bank       int64     `db:"bank"`
	OffEconomy bool      `db:"off_economy"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Total returns the combined wallet and bank balance
func (u *User) Total() int64 {
	return u.Wallet + u.Bank
}

// EconomySummary aggregates guild-wide economy figures for reporting
type EconomySummary struct {
	UserCount       int
	TotalWallet     int64
	TotalBank       int64
	OffEconomyCount int
}
