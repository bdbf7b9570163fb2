package request

import (
	"bytes"
	"context"

	"github.com/andreicionca/motivare-absente/internal/domain"
	"github.com/andreicionca/motivare-absente/internal/excuse"
	"github.com/andreicionca/motivare-absente/internal/quota"
	"github.com/andreicionca/motivare-absente/internal/shortleave"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const statsSheet = "Statistici"

func (s *service) ClassStats(ctx context.Context, p domain.Principal) (ClassStatsResponse, error) {
	class, err := teacherClass(p, "")
	if err != nil {
		return ClassStatsResponse{}, err
	}

	students, err := s.students.ListStudentsByClass(ctx, class)
	if err != nil {
		s.logger.Error("class stats students failed", zap.String("class", class), zap.Error(err))
		return ClassStatsResponse{}, err
	}
	excuses, err := s.excuses.ListByClass(ctx, class)
	if err != nil {
		s.logger.Error("class stats excuses failed", zap.String("class", class), zap.Error(err))
		return ClassStatsResponse{}, err
	}
	leaves, err := s.shortLeaves.ListByClass(ctx, class)
	if err != nil {
		s.logger.Error("class stats short leaves failed", zap.String("class", class), zap.Error(err))
		return ClassStatsResponse{}, err
	}

	byExcuse := groupExcuses(excuses)
	byLeave := groupShortLeaves(leaves)
	res := ClassStatsResponse{Class: class, Students: make([]StudentStatsResponse, 0, len(students))}
	for _, st := range students {
		id := st.ID.String()
		stats := quota.Stats(
			excuse.QuotaEntries(byExcuse[id]),
			shortleave.QuotaEntries(byLeave[id]),
			s.settings.QuotaCeiling,
		)
		res.Students = append(res.Students, StudentStatsResponse{
			StudentID:      id,
			StudentName:    st.FullName(),
			TotalRequests:  stats.TotalRequests,
			Finalized:      stats.Finalized,
			FinalizedHours: stats.FinalizedHours,
			Quota:          stats.Quota,
		})
		res.TotalRequests += stats.TotalRequests
		res.Finalized += stats.Finalized
		res.FinalizedHours += stats.FinalizedHours
		res.QuotaUsed += stats.Quota.Used
	}
	return res, nil
}

// StatsWorkbook lays the class statistics out as one sheet with a totals row.
func StatsWorkbook(stats ClassStatsResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", statsSheet); err != nil {
		return nil, err
	}

	header := []interface{}{
		"Elev", "Total cereri", "Finalizate", "Ore finalizate",
		"Ore din cota", "Ore ramase", "Cota depasita",
	}
	if err := f.SetSheetRow(statsSheet, "A1", &header); err != nil {
		return nil, err
	}

	row := 2
	for _, st := range stats.Students {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		values := []interface{}{
			st.StudentName, st.TotalRequests, st.Finalized, st.FinalizedHours,
			st.Quota.Used, st.Quota.Remaining, yesNo(st.Quota.Exceeded),
		}
		if err := f.SetSheetRow(statsSheet, cell, &values); err != nil {
			return nil, err
		}
		row++
	}

	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return nil, err
	}
	totals := []interface{}{"Total " + stats.Class, stats.TotalRequests, stats.Finalized, stats.FinalizedHours, stats.QuotaUsed}
	if err := f.SetSheetRow(statsSheet, cell, &totals); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func yesNo(v bool) string {
	if v {
		return "da"
	}
	return "nu"
}
