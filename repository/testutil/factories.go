package testutil

import (
	"time"

	"pitboss/models"
)

// CreateTestShift creates an open shift with default values
func CreateTestShift(discordID, guildID int64) *models.Shift {
	return &models.Shift{
		DiscordID:  discordID,
		GuildID:    guildID,
		Role:       "dealer",
		HourlyRate: 250,
		ClockIn:    time.Now().Add(-2 * time.Hour),
	}
}

// CreateTestGiveaway creates an unconcluded giveaway keyed by messageID
func CreateTestGiveaway(messageID, guildID int64) *models.Giveaway {
	return &models.Giveaway{
		MessageID:   messageID,
		ChannelID:   messageID + 1,
		GuildID:     guildID,
		Prize:       "10,000 chips",
		CreatorID:   42,
		WinnerCount: 1,
		EndsAt:      time.Now().Add(time.Hour).Truncate(time.Second),
	}
}

// CreateTestSubscription creates an active subscription with default values
func CreateTestSubscription(discordID, guildID int64) *models.Subscription {
	return &models.Subscription{
		DiscordID: discordID,
		GuildID:   guildID,
		Tier:      "high-roller",
		RoleID:    777,
		Active:    true,
		ExpiresAt: time.Now().Add(30 * 24 * time.Hour),
	}
}
