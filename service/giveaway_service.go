package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"pitboss/events"
	"pitboss/models"

	log "github.com/sirupsen/logrus"
)

// runtimeGiveaway holds the in-memory participant set for a running giveaway.
// Participants are never persisted; a recovered giveaway starts empty.
type runtimeGiveaway struct {
	participants map[int64]struct{}
}

// giveawayService implements the GiveawayService interface
type giveawayService struct {
	uowFactory UnitOfWorkFactory

	mu      sync.Mutex
	running map[int64]*runtimeGiveaway // message ID -> participants
	timers  map[int64]*time.Timer      // message ID -> one-shot conclusion timer
}

// NewGiveawayService creates a new giveaway service
func NewGiveawayService(uowFactory UnitOfWorkFactory) GiveawayService {
	return &giveawayService{
		uowFactory: uowFactory,
		running:    make(map[int64]*runtimeGiveaway),
		timers:     make(map[int64]*time.Timer),
	}
}

// Start persists a giveaway and arms its conclusion timer
func (s *giveawayService) Start(ctx context.Context, g *models.Giveaway) error {
	if g.WinnerCount < 1 {
		g.WinnerCount = 1
	}
	if !g.EndsAt.After(time.Now()) {
		return fmt.Errorf("end time must be in the future")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.GiveawayRepository().Create(ctx, g); err != nil {
		return fmt.Errorf("failed to create giveaway: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.arm(g.MessageID, g.EndsAt)
	return nil
}

// Enter adds a participant to a running giveaway
func (s *giveawayService) Enter(messageID, discordID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rt, ok := s.running[messageID]
	if !ok {
		return ErrGiveawayNotFound
	}
	rt.participants[discordID] = struct{}{}
	return nil
}

// Conclude draws winners, marks the row concluded and disarms the timer
func (s *giveawayService) Conclude(ctx context.Context, messageID int64) (*models.GiveawayResult, error) {
	s.mu.Lock()
	rt := s.running[messageID]
	if timer, ok := s.timers[messageID]; ok {
		timer.Stop()
		delete(s.timers, messageID)
	}
	delete(s.running, messageID)
	s.mu.Unlock()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	g, err := uow.GiveawayRepository().GetByMessageID(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get giveaway: %w", err)
	}
	if g == nil {
		return nil, ErrGiveawayNotFound
	}
	if g.Concluded {
		return nil, ErrGiveawayConcluded
	}

	if err := uow.GiveawayRepository().MarkConcluded(ctx, messageID); err != nil {
		return nil, fmt.Errorf("failed to mark giveaway concluded: %w", err)
	}
	g.Concluded = true

	var participants []int64
	if rt != nil {
		for id := range rt.participants {
			participants = append(participants, id)
		}
	}

	winners := drawWinners(participants, g.WinnerCount)

	uow.EventBus().Publish(events.GiveawayConcludedEvent{
		MessageID:    messageID,
		ChannelID:    g.ChannelID,
		GuildID:      g.GuildID,
		Prize:        g.Prize,
		WinnerIDs:    winners,
		Participants: len(participants),
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.GiveawayResult{
		Giveaway:     g,
		WinnerIDs:    winners,
		Participants: len(participants),
	}, nil
}

// Recover re-arms a giveaway from a surviving Discord message. The
// participant set is rebuilt empty because entries are never persisted.
func (s *giveawayService) Recover(ctx context.Context, g *models.Giveaway) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	existing, err := uow.GiveawayRepository().GetByMessageID(ctx, g.MessageID)
	if err != nil {
		return fmt.Errorf("failed to check existing giveaway: %w", err)
	}
	if existing != nil {
		return ErrGiveawayExists
	}

	if g.WinnerCount < 1 {
		g.WinnerCount = 1
	}

	if err := uow.GiveawayRepository().Create(ctx, g); err != nil {
		return fmt.Errorf("failed to create giveaway: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.arm(g.MessageID, g.EndsAt)
	return nil
}

// SyncFromDatabase re-arms timers for all unconcluded rows. Rows already
// past due conclude immediately.
func (s *giveawayService) SyncFromDatabase(ctx context.Context) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	open, err := uow.GiveawayRepository().GetOpen(ctx)
	uow.Rollback()
	if err != nil {
		return fmt.Errorf("failed to load open giveaways: %w", err)
	}

	for _, g := range open {
		s.arm(g.MessageID, g.EndsAt)
	}

	log.WithField("count", len(open)).Info("Re-armed giveaway timers from database")
	return nil
}

// Active returns the message IDs of giveaways with armed timers
func (s *giveawayService) Active() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.running))
	for id := range s.running {
		ids = append(ids, id)
	}
	return ids
}

// Stop disarms all timers without concluding anything
func (s *giveawayService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}

// arm registers runtime state and schedules the one-shot conclusion timer
func (s *giveawayService) arm(messageID int64, endsAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.running[messageID]; !ok {
		s.running[messageID] = &runtimeGiveaway{participants: make(map[int64]struct{})}
	}

	if timer, ok := s.timers[messageID]; ok {
		timer.Stop()
	}

	delay := time.Until(endsAt)
	if delay < 0 {
		delay = 0
	}

	s.timers[messageID] = time.AfterFunc(delay, func() {
		if _, err := s.Conclude(context.Background(), messageID); err != nil {
			log.WithFields(log.Fields{
				"messageID": messageID,
				"error":     err,
			}).Error("Failed to conclude giveaway on timer")
		}
	})
}

// drawWinners picks up to n distinct winners uniformly from the participants
func drawWinners(participants []int64, n int) []int64 {
	if len(participants) == 0 || n <= 0 {
		return nil
	}

	shuffled := make([]int64, len(participants))
	copy(shuffled, participants)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}
