package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/andreicionca/motivare-absente/internal/schoolday"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	Ranges(ctx context.Context, from, to time.Time) ([]schoolday.Range, error)
	List(ctx context.Context, from, to time.Time) ([]HolidayResponse, error)
}

type service struct {
	repo   Repository
	group  singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{repo: repo, logger: l}
}

// load collapses concurrent lookups of the same window into one query. The
// query outlives any single caller; a caller whose context ends stops waiting
// without failing the others.
func (s *service) load(ctx context.Context, from, to time.Time) ([]Holiday, error) {
	key := fmt.Sprintf("%s:%s", from.Format(dateLayout), to.Format(dateLayout))
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		return s.repo.FindOverlapping(shared, schoolday.Day(from), schoolday.Day(to))
	})

	select {
	case <-ctx.Done():
		s.logger.Debug("holiday lookup abandoned", zap.String("window", key), zap.Error(ctx.Err()))
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			s.logger.Error("load holidays failed", zap.String("window", key), zap.Error(res.Err))
			return nil, res.Err
		}
		if res.Shared {
			s.logger.Debug("holiday lookup shared", zap.String("window", key))
		}
		return res.Val.([]Holiday), nil
	}
}

func (s *service) Ranges(ctx context.Context, from, to time.Time) ([]schoolday.Range, error) {
	holidays, err := s.load(ctx, from, to)
	if err != nil {
		return nil, err
	}
	ranges := make([]schoolday.Range, len(holidays))
	for i, h := range holidays {
		ranges[i] = schoolday.Range{Start: h.StartDate, End: h.EndDate}
	}
	return ranges, nil
}

func (s *service) List(ctx context.Context, from, to time.Time) ([]HolidayResponse, error) {
	holidays, err := s.load(ctx, from, to)
	if err != nil {
		return nil, err
	}
	resp := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		resp[i] = HolidayResponse{
			ID:        h.ID.String(),
			Name:      h.Name,
			StartDate: h.StartDate.Format(dateLayout),
		}
		if h.EndDate != nil {
			v := h.EndDate.Format(dateLayout)
			resp[i].EndDate = &v
		}
	}
	return resp, nil
}
