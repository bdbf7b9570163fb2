package client

import (
	"strings"

	"github.com/andreicionca/motivare-absente/internal/domain"
	"github.com/andreicionca/motivare-absente/internal/excuse"
	"github.com/andreicionca/motivare-absente/internal/shortleave"
)

// Item is one request of either kind as the views list it.
type Item struct {
	Kind        domain.RequestKind
	ID          string
	StudentID   string
	StudentName string
	Category    string
	Status      string
	Stage       domain.Stage
	Start       string
	End         string
	Hours       int
	Reason      string
}

// Key identifies an item across both kinds.
func (i Item) Key() ItemKey {
	return ItemKey{Kind: i.Kind, ID: i.ID}
}

type ItemKey struct {
	Kind domain.RequestKind
	ID   string
}

// Filter narrows the loaded lists without touching the server. Zero values
// match everything.
type Filter struct {
	Kind  domain.RequestKind
	Stage domain.Stage
	Query string
}

func (f Filter) Match(i Item) bool {
	if f.Kind != "" && f.Kind != i.Kind {
		return false
	}
	if f.Stage != "" && f.Stage != i.Stage {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		return strings.Contains(strings.ToLower(i.StudentName), q) ||
			strings.Contains(strings.ToLower(i.Reason), q)
	}
	return true
}

func itemsOf(excuses []excuse.ExcuseResponse, leaves []shortleave.ShortLeaveResponse) []Item {
	items := make([]Item, 0, len(excuses)+len(leaves))
	for _, e := range excuses {
		it := Item{
			Kind:        domain.KindExcuse,
			ID:          e.ID,
			StudentID:   e.StudentID,
			StudentName: e.StudentName,
			Category:    e.Category,
			Status:      e.Status,
			Stage:       domain.Stage(e.Stage),
			Start:       e.PeriodStart,
			End:         e.PeriodStart,
			Hours:       e.HoursDeducted,
		}
		if e.PeriodEnd != nil {
			it.End = *e.PeriodEnd
		}
		if e.Reason != nil {
			it.Reason = *e.Reason
		}
		items = append(items, it)
	}
	for _, l := range leaves {
		items = append(items, Item{
			Kind:        domain.KindShortLeave,
			ID:          l.ID,
			StudentID:   l.StudentID,
			StudentName: l.StudentName,
			Category:    l.Category,
			Status:      l.Status,
			Stage:       domain.Stage(l.Stage),
			Start:       l.Date + " " + l.StartTime,
			End:         l.Date + " " + l.EndTime,
			Hours:       l.HoursDeducted,
			Reason:      l.Reason,
		})
	}
	return items
}

func filterItems(items []Item, f Filter) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}
