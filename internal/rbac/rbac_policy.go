package rbac

import "github.com/andreicionca/motivare-absente/internal/domain"

const (
	ResourceExcuse     = "excuse"
	ResourceShortLeave = "short_leave"
	ResourceRequest    = "request"
	ResourceEvidence   = "evidence"
	ResourceHoliday    = "holiday"
	ResourceClass      = "class"

	ActionSubmit    = "submit"
	ActionWithdraw  = "withdraw"
	ActionReadOwn   = "read_own"
	ActionReadClass = "read_class"
	ActionReview    = "review"
	ActionFinalize  = "finalize"
	ActionExport    = "export"
	ActionUpload    = "upload"
	ActionRead      = "read"
)

type Permission struct {
	Role     domain.Role
	Resource string
	Action   string
}

// DefaultPolicy is the fixed permission table of the three school roles.
func DefaultPolicy() []Permission {
	var out []Permission
	for _, role := range []domain.Role{domain.RoleStudent, domain.RoleParent} {
		out = append(out,
			Permission{role, ResourceExcuse, ActionSubmit},
			Permission{role, ResourceExcuse, ActionWithdraw},
			Permission{role, ResourceShortLeave, ActionSubmit},
			Permission{role, ResourceShortLeave, ActionWithdraw},
			Permission{role, ResourceRequest, ActionReadOwn},
			Permission{role, ResourceEvidence, ActionUpload},
			Permission{role, ResourceHoliday, ActionRead},
		)
	}
	out = append(out,
		Permission{domain.RoleParent, ResourceRequest, ActionReview},
		Permission{domain.RoleTeacher, ResourceRequest, ActionReadClass},
		Permission{domain.RoleTeacher, ResourceRequest, ActionReview},
		Permission{domain.RoleTeacher, ResourceRequest, ActionFinalize},
		Permission{domain.RoleTeacher, ResourceRequest, ActionExport},
		Permission{domain.RoleTeacher, ResourceClass, ActionRead},
		Permission{domain.RoleTeacher, ResourceHoliday, ActionRead},
	)
	return out
}
