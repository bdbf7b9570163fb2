package domain

const (
	ExcuseMedical   = "medical"
	ExcuseLongLeave = "long_leave"
	ExcuseOther     = "other"

	ShortLeavePersonal      = "personal"
	ShortLeaveMedicalUrgent = "medical_urgent"
)

func ValidCategory(kind RequestKind, category string) bool {
	switch kind {
	case KindExcuse:
		return category == ExcuseMedical || category == ExcuseLongLeave || category == ExcuseOther
	case KindShortLeave:
		return category == ShortLeavePersonal || category == ShortLeaveMedicalUrgent
	}
	return false
}

// CountsTowardQuota is true for long-leave excuses and personal short leaves.
func CountsTowardQuota(kind RequestKind, category string) bool {
	return (kind == KindExcuse && category == ExcuseLongLeave) ||
		(kind == KindShortLeave && category == ShortLeavePersonal)
}
