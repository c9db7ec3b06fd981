package service

import "errors"

// Sentinel errors surfaced to command handlers so they can show a
// specific message instead of a generic failure embed.
var (
	ErrAlreadyClockedIn  = errors.New("already clocked in")
	ErrNotClockedIn      = errors.New("not clocked in")
	ErrUnknownShiftRole  = errors.New("unknown shift role")
	ErrGiveawayExists    = errors.New("giveaway already exists")
	ErrGiveawayNotFound  = errors.New("giveaway not found")
	ErrGiveawayConcluded = errors.New("giveaway already concluded")
	ErrNoParticipants    = errors.New("giveaway has no participants")
	ErrNoSubscription    = errors.New("no active subscription")
	ErrUserNotFound      = errors.New("user not found")
	ErrNegativeBalance   = errors.New("adjustment would make a balance negative")
	ErrItemExists        = errors.New("shop item already exists")
	ErrItemNotFound      = errors.New("shop item not found")
)
