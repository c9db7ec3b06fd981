package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatChips formats a chip amount with thousand separators
func FormatChips(amount int64) string {
	str := fmt.Sprintf("%d", amount)

	// Add commas for thousands, keeping the sign out of the grouping
	negative := strings.HasPrefix(str, "-")
	if negative {
		str = str[1:]
	}

	n := len(str)
	if n > 3 {
		var result strings.Builder
		for i, digit := range str {
			if i > 0 && (n-i)%3 == 0 {
				result.WriteRune(',')
			}
			result.WriteRune(digit)
		}
		str = result.String()
	}

	if negative {
		return "-" + str
	}
	return str
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}

// FormatDuration renders a duration as a compact "2h 15m" style string
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}

	d = d.Round(time.Minute)
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", minutes)
	case minutes == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
}

// ParseCompactDuration parses the compact duration strings used by commands,
// e.g. "45m", "2h", "1d", "1d12h". Plain time.ParseDuration units also work.
func ParseCompactDuration(input string) (time.Duration, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return 0, fmt.Errorf("empty duration")
	}

	// time.ParseDuration has no day unit, expand it first
	if idx := strings.IndexRune(input, 'd'); idx > 0 {
		days, err := strconv.Atoi(input[:idx])
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", input)
		}
		rest := input[idx+1:]
		d := time.Duration(days) * 24 * time.Hour
		if rest == "" {
			return d, nil
		}
		tail, err := time.ParseDuration(rest)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", input)
		}
		return d + tail, nil
	}

	d, err := time.ParseDuration(input)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", input)
	}
	return d, nil
}
