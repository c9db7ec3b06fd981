package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"pitboss/bot"
	"pitboss/casino"
	"pitboss/config"
	"pitboss/database"
	"pitboss/events"
	"pitboss/repository"
	"pitboss/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting pitboss bot...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL, database.PoolSettings{
		MaxConns: cfg.DatabaseMaxConns,
		MinConns: cfg.DatabaseMinConns,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize event bus
	log.Println("Initializing event bus...")
	eventBus := events.NewBus()
	log.Println("Event bus initialized successfully")

	// Initialize unit of work factory
	log.Println("Initializing unit of work factory...")
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)
	log.Println("Unit of work factory initialized successfully")

	// Initialize services
	log.Println("Initializing services...")
	economyService := service.NewEconomyService(uowFactory)
	subscriptionService := service.NewSubscriptionService(uowFactory)
	giveawayService := service.NewGiveawayService(uowFactory)
	shiftService := service.NewShiftService(uowFactory, cfg.ShiftPayRates)
	suggestionService := service.NewSuggestionService(uowFactory)
	shopService := service.NewShopService(uowFactory)
	auditService := service.NewAuditService(uowFactory)
	log.Println("Services initialized successfully")

	// Initialize casino API client
	casinoClient := casino.NewClient(cfg.CasinoBaseURL, cfg.CasinoAPIKey)

	// Initialize Discord bot
	log.Println("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:               cfg.DiscordToken,
		GuildID:             cfg.DiscordGuildID,
		ManagerRoleID:       cfg.ManagerRoleID,
		StaffRoleID:         cfg.StaffRoleID,
		DeveloperIDs:        cfg.DeveloperIDs,
		AuditChannelID:      cfg.AuditChannelID,
		SuggestionChannelID: cfg.SuggestionChannelID,
		BugReportChannelID:  cfg.BugReportChannelID,
		ShiftPayRates:       cfg.ShiftPayRates,
		SweepInterval:       cfg.SubscriptionSweepInterval,
	}
	discordBot, err := bot.New(botConfig, economyService, subscriptionService, giveawayService, shiftService, suggestionService, shopService, auditService, casinoClient, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Println("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Printf("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down bot...")

	// Close Discord bot connection, disarming giveaway timers and the sweep
	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Close database connection
	log.Println("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Println("Shutdown completed")
	}

	return nil
}
