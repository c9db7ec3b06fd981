package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"pitboss/events"
	"pitboss/models"

	log "github.com/sirupsen/logrus"
)

// shiftService implements the ShiftService interface. Open shifts are
// cached in a mutex-guarded map and reconciled with the database at startup.
type shiftService struct {
	uowFactory UnitOfWorkFactory
	payRates   map[string]int64

	mu   sync.Mutex
	open map[int64]*models.Shift // discord ID -> open shift
}

// NewShiftService creates a new shift service with the configured pay table
func NewShiftService(uowFactory UnitOfWorkFactory, payRates map[string]int64) ShiftService {
	return &shiftService{
		uowFactory: uowFactory,
		payRates:   payRates,
		open:       make(map[int64]*models.Shift),
	}
}

// ClockIn opens a shift for a user in the given staff role
func (s *shiftService) ClockIn(ctx context.Context, discordID, guildID int64, role string) (*models.Shift, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	rate, ok := s.payRates[role]
	if !ok {
		return nil, ErrUnknownShiftRole
	}

	s.mu.Lock()
	if _, clockedIn := s.open[discordID]; clockedIn {
		s.mu.Unlock()
		return nil, ErrAlreadyClockedIn
	}
	s.mu.Unlock()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	// The map may be stale after a restart; the partial unique index on
	// open shifts is the authoritative guard.
	existing, err := uow.ShiftRepository().GetOpenByUser(ctx, discordID, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to check open shift: %w", err)
	}
	if existing != nil {
		s.remember(existing)
		return nil, ErrAlreadyClockedIn
	}

	shift := &models.Shift{
		DiscordID:  discordID,
		GuildID:    guildID,
		Role:       role,
		HourlyRate: rate,
		ClockIn:    time.Now(),
	}
	if err := uow.ShiftRepository().Create(ctx, shift); err != nil {
		return nil, fmt.Errorf("failed to create shift: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.remember(shift)
	return shift, nil
}

// ClockOut closes the user's open shift and computes earnings
func (s *shiftService) ClockOut(ctx context.Context, discordID, guildID int64) (*models.ShiftReceipt, error) {
	s.mu.Lock()
	shift, ok := s.open[discordID]
	s.mu.Unlock()
	if !ok {
		return nil, ErrNotClockedIn
	}

	receipt, err := s.closeShift(ctx, shift, false)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	delete(s.open, discordID)
	s.mu.Unlock()

	return receipt, nil
}

// ClockOutAll closes every open shift, used for end-of-day cleanup
func (s *shiftService) ClockOutAll(ctx context.Context, guildID int64) ([]*models.ShiftReceipt, error) {
	s.mu.Lock()
	var shifts []*models.Shift
	for _, shift := range s.open {
		if shift.GuildID == guildID {
			shifts = append(shifts, shift)
		}
	}
	s.mu.Unlock()

	var receipts []*models.ShiftReceipt
	for _, shift := range shifts {
		receipt, err := s.closeShift(ctx, shift, true)
		if err != nil {
			log.WithFields(log.Fields{
				"discordID": shift.DiscordID,
				"error":     err,
			}).Error("Failed to close shift during bulk clock-out")
			continue
		}
		receipts = append(receipts, receipt)

		s.mu.Lock()
		delete(s.open, shift.DiscordID)
		s.mu.Unlock()
	}

	return receipts, nil
}

// Status returns the user's open shift, if any
func (s *shiftService) Status(discordID int64) (*models.Shift, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	shift, ok := s.open[discordID]
	return shift, ok
}

// TotalEarnings sums a user's closed-shift earnings
func (s *shiftService) TotalEarnings(ctx context.Context, discordID, guildID int64) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	total, err := uow.ShiftRepository().TotalEarnings(ctx, discordID, guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to total earnings: %w", err)
	}

	return total, nil
}

// SyncFromDatabase reloads open shifts into memory at startup
func (s *shiftService) SyncFromDatabase(ctx context.Context) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	shifts, err := uow.ShiftRepository().GetAllOpen(ctx)
	uow.Rollback()
	if err != nil {
		return fmt.Errorf("failed to load open shifts: %w", err)
	}

	s.mu.Lock()
	for _, shift := range shifts {
		s.open[shift.DiscordID] = shift
	}
	s.mu.Unlock()

	log.WithField("count", len(shifts)).Info("Synced open shifts from database")
	return nil
}

// closeShift stamps the clock-out, computes earnings and emits the event
func (s *shiftService) closeShift(ctx context.Context, shift *models.Shift, forced bool) (*models.ShiftReceipt, error) {
	now := time.Now()
	duration := now.Sub(shift.ClockIn)
	earnings := computeEarnings(duration, shift.HourlyRate)

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.ShiftRepository().Close(ctx, shift.ID, now, earnings); err != nil {
		return nil, fmt.Errorf("failed to close shift: %w", err)
	}

	uow.EventBus().Publish(events.ShiftClosedEvent{
		TargetID: shift.DiscordID,
		GuildID:  shift.GuildID,
		Role:     shift.Role,
		Duration: duration,
		Earnings: earnings,
		Forced:   forced,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.ShiftReceipt{
		DiscordID: shift.DiscordID,
		Role:      shift.Role,
		Duration:  duration,
		Earnings:  earnings,
	}, nil
}

func (s *shiftService) remember(shift *models.Shift) {
	s.mu.Lock()
	s.open[shift.DiscordID] = shift
	s.mu.Unlock()
}

// computeEarnings rounds elapsed time to the nearest minute before applying
// the hourly rate, so a few seconds of lag never change the payout.
func computeEarnings(d time.Duration, hourlyRate int64) int64 {
	minutes := int64(d.Round(time.Minute) / time.Minute)
	return minutes * hourlyRate / 60
}
