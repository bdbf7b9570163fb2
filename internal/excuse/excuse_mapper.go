package excuse

import (
	"time"

	"github.com/andreicionca/motivare-absente/internal/domain"
)

const dateLayout = "2006-01-02"

func ToResponse(e Excuse) ExcuseResponse {
	resp := ExcuseResponse{
		ID:            e.ID.String(),
		Kind:          string(domain.KindExcuse),
		StudentID:     e.StudentID.String(),
		Category:      e.Category,
		PeriodStart:   e.PeriodStart.Format(dateLayout),
		Reason:        e.Reason,
		EvidenceURL:   e.EvidenceURL,
		SubmittedBy:   e.SubmittedBy,
		HoursDeducted: e.HoursDeducted,
		Status:        e.Status,
		Stage:         string(e.RequestStatus().Stage),
		ReviewNote:    e.ReviewNote,
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
	}
	if e.PeriodEnd != nil {
		v := e.PeriodEnd.Format(dateLayout)
		resp.PeriodEnd = &v
	}
	if e.ProcessedAt != nil {
		v := e.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &v
	}
	return resp
}

func ToListResponse(list []Excuse) []ExcuseResponse {
	out := make([]ExcuseResponse, len(list))
	for i, e := range list {
		out[i] = ToResponse(e)
	}
	return out
}
