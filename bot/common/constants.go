package common

// Discord color constants
const (
	ColorPrimary = 0x5865F2 // Discord blurple
	ColorSuccess = 0x57F287 // Green
	ColorDanger  = 0xED4245 // Red
	ColorWarning = 0xFEE75C // Yellow
	ColorInfo    = 0x3498DB // Blue
	ColorGold    = 0xF1C40F // Gold, used for giveaways
)

// Giveaway constants
const (
	MinGiveawayDuration = 60          // seconds
	MaxGiveawayDuration = 30 * 86400  // 30 days in seconds
	MaxGiveawayWinners  = 20
)

// Moderation constants
const (
	MaxTimeoutDuration = 28 * 86400 // Discord's ceiling, 28 days in seconds
)

// UI constants
const (
	MaxAuditEntries = 25
)
