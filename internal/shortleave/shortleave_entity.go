package shortleave

import (
	"time"

	"github.com/andreicionca/motivare-absente/internal/domain"
	"github.com/andreicionca/motivare-absente/internal/quota"

	"github.com/google/uuid"
)

type ShortLeave struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	StudentID         uuid.UUID `gorm:"type:uuid;not null;index:idx_short_leaves_student"`
	Category          string    `gorm:"type:varchar(20);not null"`
	Date              time.Time `gorm:"type:date;not null"`
	StartTime         string    `gorm:"type:varchar(5);not null"`
	EndTime           string    `gorm:"type:varchar(5);not null"`
	RequestedHours    int       `gorm:"not null"`
	HoursDeducted     int       `gorm:"not null"`
	Reason            string    `gorm:"type:text;not null"`
	SubmittedBy       string    `gorm:"type:varchar(10);not null"`
	GuardianApproved  bool      `gorm:"not null;default:false"`
	Status            string    `gorm:"type:varchar(20);not null;index:idx_short_leaves_status"`
	ReviewNote        *string   `gorm:"type:text"`
	TeacherAcceptedAt *time.Time
	ProcessedAt       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ShortLeave) TableName() string {
	return "short_leave_requests"
}

func (l ShortLeave) RequestStatus() domain.RequestStatus {
	st, ok := domain.ParseStatus(domain.KindShortLeave, l.Status, l.GuardianApproved)
	if !ok {
		return domain.RequestStatus{Kind: domain.KindShortLeave, Label: l.Status}
	}
	return st
}

func (l ShortLeave) QuotaEntry() quota.Entry {
	return quota.Entry{
		Kind:          domain.KindShortLeave,
		Category:      l.Category,
		Status:        l.Status,
		HoursDeducted: l.HoursDeducted,
	}
}

func QuotaEntries(list []ShortLeave) []quota.Entry {
	out := make([]quota.Entry, len(list))
	for i, l := range list {
		out[i] = l.QuotaEntry()
	}
	return out
}
