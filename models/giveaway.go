package models

import "time"

// Giveaway represents a scheduled prize drawing tied to a Discord message.
// The participant set lives only in memory; rows persist the schedule so
// timers can be re-armed after a restart.
type Giveaway struct {
	MessageID   int64     `db:"message_id"`
	ChannelID   int64     `db:"channel_id"`
	GuildID     int64     `db:"guild_id"`
	Prize       string    `db:"prize"`
	CreatorID   int64     `db:"creator_id"`
	WinnerCount int       `db:"winner_count"`
	EndsAt      time.Time `db:"ends_at"`
	Concluded   bool      `db:"concluded"`
	CreatedAt   time.Time `db:"created_at"`
}

// GiveawayResult is returned when a giveaway concludes
type GiveawayResult struct {
	Giveaway     *Giveaway
	WinnerIDs    []int64
	Participants int
}
