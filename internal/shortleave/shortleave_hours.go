package shortleave

import (
	"strings"
	"time"

	"github.com/andreicionca/motivare-absente/internal/domain"
	shortleaveerrors "github.com/andreicionca/motivare-absente/internal/shortleave/errors"
)

const clockLayout = "15:04"

func parseClock(v string) (time.Time, error) {
	t, err := time.Parse(clockLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, shortleaveerrors.ErrInvalidTimeFormat
	}
	return t, nil
}

// RequestedHours rounds the interval between two HH:MM clock times up to
// whole hours, so 08:00-09:30 is 2.
func RequestedHours(start, end string) (int, error) {
	s, err := parseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := parseClock(end)
	if err != nil {
		return 0, err
	}
	if !e.After(s) {
		return 0, shortleaveerrors.ErrInvalidTimeRange
	}

	minutes := int(e.Sub(s) / time.Minute)
	return (minutes + 59) / 60, nil
}

// DeductedHours counts only personal leaves against the quota.
func DeductedHours(category string, requested int) int {
	if domain.CountsTowardQuota(domain.KindShortLeave, category) {
		return requested
	}
	return 0
}
