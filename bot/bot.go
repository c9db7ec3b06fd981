package bot

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"pitboss/bot/common"
	"pitboss/bot/features/audit"
	"pitboss/bot/features/economy"
	"pitboss/bot/features/giveaways"
	"pitboss/bot/features/moderation"
	"pitboss/bot/features/sessions"
	"pitboss/bot/features/shifts"
	"pitboss/bot/features/shop"
	"pitboss/bot/features/subscriptions"
	"pitboss/bot/features/suggestions"
	"pitboss/casino"
	"pitboss/events"
	"pitboss/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token               string
	GuildID             string
	ManagerRoleID       string
	StaffRoleID         string
	DeveloperIDs        []int64
	AuditChannelID      string
	SuggestionChannelID string
	BugReportChannelID  string
	ShiftPayRates       map[string]int64
	SweepInterval       time.Duration
}

type Bot struct {
	config  Config
	session *discordgo.Session

	economyFeature      *economy.Feature
	subscriptionFeature *subscriptions.Feature
	giveawayFeature     *giveaways.Feature
	shiftFeature        *shifts.Feature
	suggestionFeature   *suggestions.Feature
	moderationFeature   *moderation.Feature
	sessionFeature      *sessions.Feature
	shopFeature         *shop.Feature
	auditFeature        *audit.Feature

	giveawayService service.GiveawayService
	shiftService    service.ShiftService
	eventBus        *events.Bus

	sweepDone chan struct{}
}

func New(
	config Config,
	economyService service.EconomyService,
	subscriptionService service.SubscriptionService,
	giveawayService service.GiveawayService,
	shiftService service.ShiftService,
	suggestionService service.SuggestionService,
	shopService service.ShopService,
	auditService service.AuditService,
	casinoClient *casino.Client,
	eventBus *events.Bus,
) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsAll

	auth := common.Authorizer{
		ManagerRoleID: config.ManagerRoleID,
		StaffRoleID:   config.StaffRoleID,
		DeveloperIDs:  config.DeveloperIDs,
	}

	bot := &Bot{
		config:              config,
		session:             dg,
		economyFeature:      economy.New(economyService, casinoClient, auth),
		subscriptionFeature: subscriptions.New(subscriptionService, auth),
		giveawayFeature:     giveaways.New(giveawayService, auth),
		shiftFeature:        shifts.New(shiftService, auth, config.ShiftPayRates),
		suggestionFeature:   suggestions.New(suggestionService, auth, config.SuggestionChannelID, config.BugReportChannelID),
		moderationFeature:   moderation.New(auth, eventBus),
		sessionFeature:      sessions.New(casinoClient, auth, eventBus),
		shopFeature:         shop.New(shopService, auth),
		auditFeature:        audit.New(auditService, auth, config.AuditChannelID),
		giveawayService:     giveawayService,
		shiftService:        shiftService,
		eventBus:            eventBus,
		sweepDone:           make(chan struct{}),
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Register component interaction handlers
	dg.AddHandler(bot.handleComponentInteractions)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Every auditable event gets a row and an audit channel post
	eventBus.SubscribeAll(bot.auditFeature.EventHandler(dg))

	// Giveaway conclusions announce on Discord regardless of whether the
	// timer or a manager ended them
	eventBus.Subscribe(events.EventTypeGiveawayConcluded, bot.giveawayFeature.AnnounceConcluded(dg))

	// Reload runtime state lost in the restart
	ctx := context.Background()
	if err := giveawayService.SyncFromDatabase(ctx); err != nil {
		log.Errorf("Failed to sync giveaways on startup: %v", err)
	}
	if err := shiftService.SyncFromDatabase(ctx); err != nil {
		log.Errorf("Failed to sync open shifts on startup: %v", err)
	}

	// Start the subscription expiry sweep
	go bot.startSubscriptionSweep()

	return bot, nil
}

func (b *Bot) Close() error {
	close(b.sweepDone)
	b.giveawayService.Stop()
	return b.session.Close()
}

// startSubscriptionSweep periodically expires past-due subscriptions
func (b *Bot) startSubscriptionSweep() {
	interval := b.config.SweepInterval
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.subscriptionFeature.SweepExpired(context.Background(), b.session)
		case <-b.sweepDone:
			return
		}
	}
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "economy":
		b.economyFeature.HandleCommand(s, i)
	case "subscription":
		b.subscriptionFeature.HandleCommand(s, i)
	case "giveaway":
		b.giveawayFeature.HandleCommand(s, i)
	case "shift":
		b.shiftFeature.HandleCommand(s, i)
	case "suggest":
		b.suggestionFeature.HandleSuggest(s, i)
	case "bugreport":
		b.suggestionFeature.HandleBugReport(s, i)
	case "suggestion":
		b.suggestionFeature.HandleResolve(s, i)
	case "timeout":
		b.moderationFeature.HandleTimeout(s, i)
	case "untimeout":
		b.moderationFeature.HandleUntimeout(s, i)
	case "casino":
		b.sessionFeature.HandleCommand(s, i)
	case "shop":
		b.shopFeature.HandleCommand(s, i)
	case "audit":
		b.auditFeature.HandleCommand(s, i)
	}
}

func (b *Bot) handleComponentInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	b.giveawayFeature.HandleComponent(s, i)
}
