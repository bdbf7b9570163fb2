package excuse

import (
	"context"
	"time"

	"github.com/andreicionca/motivare-absente/internal/domain"
	"github.com/andreicionca/motivare-absente/internal/holiday"
	"github.com/andreicionca/motivare-absente/internal/schoolday"
)

// DeductedHours is nonzero only for long-leave excuses, where it counts the
// school days of the period against the holidays currently configured.
func DeductedHours(ctx context.Context, holidays holiday.Service, hoursPerDay int, category string, start, end time.Time) (int, error) {
	if !domain.CountsTowardQuota(domain.KindExcuse, category) {
		return 0, nil
	}
	ranges, err := holidays.Ranges(ctx, start, end)
	if err != nil {
		return 0, err
	}
	return schoolday.Hours(start, end, ranges, hoursPerDay), nil
}
