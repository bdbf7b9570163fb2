package excuse

import (
	"time"

	"github.com/andreicionca/motivare-absente/internal/domain"
	"github.com/andreicionca/motivare-absente/internal/quota"

	"github.com/google/uuid"
)

type Excuse struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	StudentID        uuid.UUID  `gorm:"type:uuid;not null;index:idx_excuses_student"`
	Category         string     `gorm:"type:varchar(20);not null"`
	PeriodStart      time.Time  `gorm:"type:date;not null"`
	PeriodEnd        *time.Time `gorm:"type:date"`
	Reason           *string    `gorm:"type:text"`
	EvidenceURL      string     `gorm:"type:text;not null"`
	EvidencePublicID string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_excuses_evidence_public_id"`
	SubmittedBy      string     `gorm:"type:varchar(10);not null"`
	HoursDeducted    int        `gorm:"not null"`
	Status           string     `gorm:"type:varchar(20);not null;index:idx_excuses_status"`
	ReviewNote       *string    `gorm:"type:text"`
	ProcessedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Excuse) TableName() string {
	return "excuse_records"
}

// End returns the last day covered; single-day records have no stored end.
func (e Excuse) End() time.Time {
	if e.PeriodEnd != nil {
		return *e.PeriodEnd
	}
	return e.PeriodStart
}

func (e Excuse) RequestStatus() domain.RequestStatus {
	st, ok := domain.ParseStatus(domain.KindExcuse, e.Status, false)
	if !ok {
		return domain.RequestStatus{Kind: domain.KindExcuse, Label: e.Status}
	}
	return st
}

func (e Excuse) QuotaEntry() quota.Entry {
	return quota.Entry{
		Kind:          domain.KindExcuse,
		Category:      e.Category,
		Status:        e.Status,
		HoursDeducted: e.HoursDeducted,
	}
}

func QuotaEntries(list []Excuse) []quota.Entry {
	out := make([]quota.Entry, len(list))
	for i, e := range list {
		out[i] = e.QuotaEntry()
	}
	return out
}
