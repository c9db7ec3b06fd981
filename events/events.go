package events

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceAdjusted     EventType = "balance_adjusted"
	EventTypeEconomyFlagToggled  EventType = "economy_flag_toggled"
	EventTypeSubscriptionGranted EventType = "subscription_granted"
	EventTypeSubscriptionRevoked EventType = "subscription_revoked"
	EventTypeShiftClosed         EventType = "shift_closed"
	EventTypeGiveawayConcluded   EventType = "giveaway_concluded"
	EventTypeMemberTimedOut      EventType = "member_timed_out"
	EventTypeShopChanged         EventType = "shop_changed"
	EventTypeCasinoIntervention  EventType = "casino_intervention"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceAdjustedEvent records an admin adjustment to a user's balances
type BalanceAdjustedEvent struct {
	ActorID     int64
	TargetID    int64
	GuildID     int64
	WalletDelta int64
	BankDelta   int64
	NewWallet   int64
	NewBank     int64
	Reason      string
}

func (e BalanceAdjustedEvent) Type() EventType { return EventTypeBalanceAdjusted }

// EconomyFlagToggledEvent records an off-economy flag change
type EconomyFlagToggledEvent struct {
	ActorID    int64
	TargetID   int64
	GuildID    int64
	OffEconomy bool
}

func (e EconomyFlagToggledEvent) Type() EventType { return EventTypeEconomyFlagToggled }

// SubscriptionGrantedEvent records a subscription grant or renewal
type SubscriptionGrantedEvent struct {
	ActorID   int64
	TargetID  int64
	GuildID   int64
	Tier      string
	RoleID    int64
	ExpiresAt time.Time
}

func (e SubscriptionGrantedEvent) Type() EventType { return EventTypeSubscriptionGranted }

// SubscriptionRevokedEvent records a manual revoke or an expiry sweep
type SubscriptionRevokedEvent struct {
	ActorID  int64 // zero when revoked by the expiry sweep
	TargetID int64
	GuildID  int64
	Tier     string
	RoleID   int64
	Expired  bool
}

func (e SubscriptionRevokedEvent) Type() EventType { return EventTypeSubscriptionRevoked }

// ShiftClosedEvent records a completed staff shift
type ShiftClosedEvent struct {
	TargetID int64
	GuildID  int64
	Role     string
	Duration time.Duration
	Earnings int64
	Forced   bool // true when closed by a bulk clock-out
}

func (e ShiftClosedEvent) Type() EventType { return EventTypeShiftClosed }

// GiveawayConcludedEvent records a finished giveaway drawing
type GiveawayConcludedEvent struct {
	MessageID    int64
	ChannelID    int64
	GuildID      int64
	Prize        string
	WinnerIDs    []int64
	Participants int
}

func (e GiveawayConcludedEvent) Type() EventType { return EventTypeGiveawayConcluded }

// MemberTimedOutEvent records a moderation timeout or its removal
type MemberTimedOutEvent struct {
	ActorID  int64
	TargetID int64
	GuildID  int64
	Duration time.Duration // zero when the timeout was cleared
	Reason   string
	Removed  bool
}

func (e MemberTimedOutEvent) Type() EventType { return EventTypeMemberTimedOut }

// ShopChangedEvent records an admin edit to the shop table
type ShopChangedEvent struct {
	ActorID  int64
	GuildID  int64
	ItemName string
	Action   string // "added", "removed", "enabled", "disabled"
}

func (e ShopChangedEvent) Type() EventType { return EventTypeShopChanged }

// CasinoInterventionEvent records an admin action against the casino bot's sessions
type CasinoInterventionEvent struct {
	ActorID  int64
	GuildID  int64
	TargetID int64 // zero for bulk operations
	Action   string
}

func (e CasinoInterventionEvent) Type() EventType { return EventTypeCasinoIntervention }

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// SubscribeAll adds a handler for every known event type
func (b *Bus) SubscribeAll(handler Handler) {
	for _, t := range []EventType{
		EventTypeBalanceAdjusted,
		EventTypeEconomyFlagToggled,
		EventTypeSubscriptionGranted,
		EventTypeSubscriptionRevoked,
		EventTypeShiftClosed,
		EventTypeGiveawayConcluded,
		EventTypeMemberTimedOut,
		EventTypeShopChanged,
		EventTypeCasinoIntervention,
	} {
		b.Subscribe(t, handler)
	}
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking the emitter
	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}

// TransactionalBus stashes events published during a unit of work and
// flushes them to the underlying bus only after the transaction commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all pending events. Called after a successful commit.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	// Events outlive the transaction context
	eventCtx := context.Background()
	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard drops pending events. Called after a rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
