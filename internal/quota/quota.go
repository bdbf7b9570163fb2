// Package quota derives the personal-leave hours a student has consumed.
// The figure is always recomputed from source records and never stored.
package quota

import (
	"github.com/andreicionca/motivare-absente/internal/domain"
)

type Entry struct {
	Kind          domain.RequestKind
	Category      string
	Status        string
	HoursDeducted int
}

func (e Entry) counts() bool {
	return e.Status == finalizedLabel(e.Kind) && domain.CountsTowardQuota(e.Kind, e.Category)
}

func finalizedLabel(kind domain.RequestKind) string {
	return domain.LabelFor(kind, domain.StageFinalized)
}

// Total sums hours of finalized quota-counting records only.
func Total(excuses, shortLeaves []Entry) int {
	total := 0
	for _, group := range [][]Entry{excuses, shortLeaves} {
		for _, e := range group {
			if !e.counts() || e.HoursDeducted <= 0 {
				continue
			}
			total += e.HoursDeducted
		}
	}
	return total
}

type Summary struct {
	Used      int  `json:"used"`
	Ceiling   int  `json:"ceiling"`
	Remaining int  `json:"remaining"`
	Exceeded  bool `json:"exceeded"`
}

func Summarize(used, ceiling int) Summary {
	remaining := ceiling - used
	if remaining < 0 {
		remaining = 0
	}
	return Summary{
		Used:      used,
		Ceiling:   ceiling,
		Remaining: remaining,
		Exceeded:  used > ceiling,
	}
}

// StudentStats is the per student view shown to the homeroom teacher.
type StudentStats struct {
	TotalRequests  int     `json:"total_requests"`
	Finalized      int     `json:"finalized"`
	FinalizedHours int     `json:"finalized_hours"`
	Quota          Summary `json:"quota"`
}

// Stats counts every request and the hours of all finalized ones, while the
// quota part only sees quota-counting categories.
func Stats(excuses, shortLeaves []Entry, ceiling int) StudentStats {
	st := StudentStats{TotalRequests: len(excuses) + len(shortLeaves)}
	for _, group := range [][]Entry{excuses, shortLeaves} {
		for _, e := range group {
			if e.Status != finalizedLabel(e.Kind) {
				continue
			}
			st.Finalized++
			if e.HoursDeducted > 0 {
				st.FinalizedHours += e.HoursDeducted
			}
		}
	}
	st.Quota = Summarize(Total(excuses, shortLeaves), ceiling)
	return st
}
