package holiday

import (
	"time"

	"github.com/google/uuid"
)

// Holiday is a configured interval without classes. EndDate is optional.
type Holiday struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string     `gorm:"type:varchar(150)"`
	StartDate time.Time  `gorm:"type:date;not null;index:idx_holidays_dates"`
	EndDate   *time.Time `gorm:"type:date;index:idx_holidays_dates"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
