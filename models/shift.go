package models

import "time"

// Shift represents a staff work session with hourly pay.
// An open shift has a nil ClockOut.
type Shift struct {
	ID         int64      `db:"id"`
	DiscordID  int64      `db:"discord_id"`
	GuildID    int64      `db:"guild_id"`
	Role       string     `db:"role"`
	HourlyRate int64      `db:"hourly_rate"`
	ClockIn    time.Time  `db:"clock_in"`
	ClockOut   *time.Time `db:"clock_out"`
	Earnings   int64      `db:"earnings"`
}

// Duration returns the elapsed time of the shift, using now for open shifts
func (s *Shift) Duration(now time.Time) time.Duration {
	end := now
	if s.ClockOut != nil {
		end = *s.ClockOut
	}
	return end.Sub(s.ClockIn)
}

// ShiftReceipt is returned to the user when a shift is closed
type ShiftReceipt struct {
	DiscordID int64
	Role      string
	Duration  time.Duration
	Earnings  int64
}
