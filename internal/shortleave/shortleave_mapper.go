package shortleave

import (
	"time"

	"github.com/andreicionca/motivare-absente/internal/domain"
)

const dateLayout = "2006-01-02"

func ToResponse(l ShortLeave) ShortLeaveResponse {
	resp := ShortLeaveResponse{
		ID:               l.ID.String(),
		Kind:             string(domain.KindShortLeave),
		StudentID:        l.StudentID.String(),
		Category:         l.Category,
		Date:             l.Date.Format(dateLayout),
		StartTime:        l.StartTime,
		EndTime:          l.EndTime,
		RequestedHours:   l.RequestedHours,
		HoursDeducted:    l.HoursDeducted,
		Reason:           l.Reason,
		SubmittedBy:      l.SubmittedBy,
		GuardianApproved: l.GuardianApproved,
		Status:           l.Status,
		Stage:            string(l.RequestStatus().Stage),
		ReviewNote:       l.ReviewNote,
		CreatedAt:        l.CreatedAt.Format(time.RFC3339),
	}
	if l.TeacherAcceptedAt != nil {
		v := l.TeacherAcceptedAt.Format(time.RFC3339)
		resp.TeacherAcceptedAt = &v
	}
	if l.ProcessedAt != nil {
		v := l.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &v
	}
	return resp
}

func ToListResponse(list []ShortLeave) []ShortLeaveResponse {
	out := make([]ShortLeaveResponse, len(list))
	for i, l := range list {
		out[i] = ToResponse(l)
	}
	return out
}
