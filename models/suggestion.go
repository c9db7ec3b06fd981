package models

import "time"

// SubmissionStatus is the review state of a suggestion or bug report
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusDenied   SubmissionStatus = "denied"
	StatusResolved SubmissionStatus = "resolved"
)

// ValidStatus reports whether s is a known submission status
func ValidStatus(s string) bool {
	switch SubmissionStatus(s) {
	case StatusPending, StatusApproved, StatusDenied, StatusResolved:
		return true
	}
	return false
}

// Suggestion represents a community suggestion posted to the suggestion channel
type Suggestion struct {
	ID          int64            `db:"id"`
	AuthorID    int64            `db:"author_id"`
	GuildID     int64            `db:"guild_id"`
	Title       string           `db:"title"`
	Description string           `db:"description"`
	Status      SubmissionStatus `db:"status"`
	MessageID   int64            `db:"message_id"`
	ThreadID    int64            `db:"thread_id"`
	CreatedAt   time.Time        `db:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at"`
}

// BugReport represents a reported defect in the casino bot or server tooling
type BugReport struct {
	ID          int64            `db:"id"`
	AuthorID    int64            `db:"author_id"`
	GuildID     int64            `db:"guild_id"`
	Title       string           `db:"title"`
	Description string           `db:"description"`
	Status      SubmissionStatus `db:"status"`
	MessageID   int64            `db:"message_id"`
	CreatedAt   time.Time        `db:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at"`
}
