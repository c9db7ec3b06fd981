package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string
	DiscordGuildID string

	// Database configuration
	DatabaseURL      string
	DatabaseMaxConns int32
	DatabaseMinConns int32

	// Authorization
	ManagerRoleID string  // role allowed to run admin commands
	StaffRoleID   string  // role allowed to clock shifts
	DeveloperIDs  []int64 // Discord IDs with unconditional access

	// Channels
	AuditChannelID      string
	SuggestionChannelID string
	BugReportChannelID  string

	// Shift pay table: shift role name -> chips per hour
	ShiftPayRates map[string]int64

	// Casino bot sibling service
	CasinoBaseURL string
	CasinoAPIKey  string

	// Subscription sweep interval
	SubscriptionSweepInterval time.Duration

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from the environment, reading a .env file if present
func load() (*Config, error) {
	// Missing .env is fine; real environment variables take precedence
	_ = godotenv.Load()

	config := &Config{
		// Discord
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID: os.Getenv("DISCORD_GUILD_ID"),

		// Database
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Authorization
		ManagerRoleID: os.Getenv("MANAGER_ROLE_ID"),
		StaffRoleID:   os.Getenv("STAFF_ROLE_ID"),

		// Channels
		AuditChannelID:      os.Getenv("AUDIT_CHANNEL_ID"),
		SuggestionChannelID: os.Getenv("SUGGESTION_CHANNEL_ID"),
		BugReportChannelID:  os.Getenv("BUG_REPORT_CHANNEL_ID"),

		// Casino bot
		CasinoBaseURL: os.Getenv("CASINO_API_BASE_URL"),
		CasinoAPIKey:  os.Getenv("CASINO_API_KEY"),

		// Defaults
		ShiftPayRates:             map[string]int64{"dealer": 250, "host": 180, "security": 150},
		SubscriptionSweepInterval: 15 * time.Minute,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Parse developer Discord IDs
	if devIDs := os.Getenv("DEVELOPER_DISCORD_IDS"); devIDs != "" {
		for _, idStr := range strings.Split(devIDs, ",") {
			idStr = strings.TrimSpace(idStr)
			if idStr == "" {
				continue
			}
			if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
				config.DeveloperIDs = append(config.DeveloperIDs, id)
			}
		}
	}

	// Override pay table if set, format "dealer:250,host:180"
	if rates := os.Getenv("SHIFT_PAY_RATES"); rates != "" {
		parsed, err := parsePayRates(rates)
		if err != nil {
			return nil, fmt.Errorf("invalid SHIFT_PAY_RATES: %w", err)
		}
		config.ShiftPayRates = parsed
	}

	// Pool sizing, zero means the database package defaults
	if maxConns := os.Getenv("DATABASE_MAX_CONNS"); maxConns != "" {
		n, err := strconv.ParseInt(maxConns, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid DATABASE_MAX_CONNS: %w", err)
		}
		config.DatabaseMaxConns = int32(n)
	}
	if minConns := os.Getenv("DATABASE_MIN_CONNS"); minConns != "" {
		n, err := strconv.ParseInt(minConns, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid DATABASE_MIN_CONNS: %w", err)
		}
		config.DatabaseMinConns = int32(n)
	}

	if interval := os.Getenv("SUBSCRIPTION_SWEEP_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			return nil, fmt.Errorf("invalid SUBSCRIPTION_SWEEP_INTERVAL: %w", err)
		}
		config.SubscriptionSweepInterval = d
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}

// parsePayRates parses a comma-separated role:rate list
func parsePayRates(s string) (map[string]int64, error) {
	rates := make(map[string]int64)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("expected role:rate, got %q", pair)
		}
		rate, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid rate for role %q: %w", parts[0], err)
		}
		rates[strings.ToLower(strings.TrimSpace(parts[0]))] = rate
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("no pay rates defined")
	}
	return rates, nil
}

// IsDeveloper reports whether the Discord ID belongs to a configured developer
func (c *Config) IsDeveloper(discordID int64) bool {
	for _, id := range c.DeveloperIDs {
		if id == discordID {
			return true
		}
	}
	return false
}
