package repository

import (
	"context"
	"fmt"
	"time"

	"pitboss/database"
	"pitboss/models"

	"github.com/jackc/pgx/v5"
)

// ShiftRepository implements the service.ShiftRepository interface
type ShiftRepository struct {
	q queryable
}

// NewShiftRepository creates a new shift repository
func NewShiftRepository(db *database.DB) *ShiftRepository {
	return &ShiftRepository{q: db.Pool}
}

func newShiftRepositoryWithTx(tx queryable) *ShiftRepository {
	return &ShiftRepository{q: tx}
}

// Create inserts a new open shift row
func (r *ShiftRepository) Create(ctx context.Context, shift *models.Shift) error {
	query := `
		INSERT INTO shifts (discord_id, guild_id, role, hourly_rate, clock_in)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.q.QueryRow(ctx, query,
		shift.DiscordID, shift.GuildID, shift.Role, shift.HourlyRate, shift.ClockIn,
	).Scan(&shift.ID)
	if err != nil {
		return fmt.Errorf("failed to create shift for user %d: %w", shift.DiscordID, err)
	}

	return nil
}

// GetOpenByUser returns the open shift for a user, if any
func (r *ShiftRepository) GetOpenByUser(ctx context.Context, discordID, guildID int64) (*models.Shift, error) {
	query := `
		SELECT id, discord_id, guild_id, role, hourly_rate, clock_in, clock_out, earnings
		FROM shifts
		WHERE discord_id = $1 AND guild_id = $2 AND clock_out IS NULL
	`

	var shift models.Shift
	err := r.q.QueryRow(ctx, query, discordID, guildID).Scan(
		&shift.ID,
		&shift.DiscordID,
		&shift.GuildID,
		&shift.Role,
		&shift.HourlyRate,
		&shift.ClockIn,
		&shift.ClockOut,
		&shift.Earnings,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get open shift for user %d: %w", discordID, err)
	}

	return &shift, nil
}

// GetAllOpen returns every open shift, used for the startup sync
func (r *ShiftRepository) GetAllOpen(ctx context.Context) ([]*models.Shift, error) {
	query := `
		SELECT id, discord_id, guild_id, role, hourly_rate, clock_in, clock_out, earnings
		FROM shifts
		WHERE clock_out IS NULL
		ORDER BY clock_in
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query open shifts: %w", err)
	}
	defer rows.Close()

	var shifts []*models.Shift
	for rows.Next() {
		var shift models.Shift
		if err := rows.Scan(
			&shift.ID,
			&shift.DiscordID,
			&shift.GuildID,
			&shift.Role,
			&shift.HourlyRate,
			&shift.ClockIn,
			&shift.ClockOut,
			&shift.Earnings,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, &shift)
	}

	return shifts, rows.Err()
}

// Close stamps a shift's clock-out time and earnings
func (r *ShiftRepository) Close(ctx context.Context, shiftID int64, clockOut time.Time, earnings int64) error {
	query := `
		UPDATE shifts
		SET clock_out = $2, earnings = $3
		WHERE id = $1 AND clock_out IS NULL
	`

	tag, err := r.q.Exec(ctx, query, shiftID, clockOut, earnings)
	if err != nil {
		return fmt.Errorf("failed to close shift %d: %w", shiftID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("shift %d not found or already closed", shiftID)
	}

	return nil
}

// TotalEarnings sums the closed-shift earnings for a user
func (r *ShiftRepository) TotalEarnings(ctx context.Context, discordID, guildID int64) (int64, error) {
	query := `
		SELECT COALESCE(SUM(earnings), 0)
		FROM shifts
		WHERE discord_id = $1 AND guild_id = $2 AND clock_out IS NOT NULL
	`

	var total int64
	if err := r.q.QueryRow(ctx, query, discordID, guildID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to total earnings for user %d: %w", discordID, err)
	}

	return total, nil
}
