package domain

// RequestKind discriminates the two request families sharing one lifecycle.
type RequestKind string

const (
	KindExcuse     RequestKind = "excuse"
	KindShortLeave RequestKind = "short_leave"
)

func (k RequestKind) Valid() bool {
	return k == KindExcuse || k == KindShortLeave
}

type Stage string

const (
	StageSubmitted        Stage = "submitted"
	StageAwaitingGuardian Stage = "awaiting_guardian"
	StageAwaitingTeacher  Stage = "awaiting_teacher"
	StageApproved         Stage = "approved"
	StageRejected         Stage = "rejected"
	StageFinalized        Stage = "finalized"
)

// Persisted labels. Each kind keeps its own vocabulary in the store.
const (
	ExcusePending   = "pending"
	ExcuseApproved  = "approved"
	ExcuseRejected  = "rejected"
	ExcuseFinalized = "finalized"

	ShortLeaveSubmitted       = "submitted"
	ShortLeaveParentApproved  = "parent_approved"
	ShortLeaveTeacherAccepted = "teacher_accepted"
	ShortLeaveRejected        = "rejected"
	ShortLeaveFinalized       = "finalized"
)

// RequestStatus is a persisted label lifted onto the shared stage machine.
type RequestStatus struct {
	Kind  RequestKind `json:"kind"`
	Label string      `json:"label"`
	Stage Stage       `json:"stage"`
}

// ParseStatus maps a stored label to its stage. guardianApproved tells a
// student-submitted short leave (needs the guardian) from a parent one.
func ParseStatus(kind RequestKind, label string, guardianApproved bool) (RequestStatus, bool) {
	st := RequestStatus{Kind: kind, Label: label}
	switch kind {
	case KindExcuse:
		switch label {
		case ExcusePending:
			st.Stage = StageSubmitted
		case ExcuseApproved:
			st.Stage = StageApproved
		case ExcuseRejected:
			st.Stage = StageRejected
		case ExcuseFinalized:
			st.Stage = StageFinalized
		default:
			return RequestStatus{}, false
		}
	case KindShortLeave:
		switch label {
		case ShortLeaveSubmitted:
			if guardianApproved {
				st.Stage = StageAwaitingTeacher
			} else {
				st.Stage = StageAwaitingGuardian
			}
		case ShortLeaveParentApproved:
			st.Stage = StageAwaitingTeacher
		case ShortLeaveTeacherAccepted:
			st.Stage = StageApproved
		case ShortLeaveRejected:
			st.Stage = StageRejected
		case ShortLeaveFinalized:
			st.Stage = StageFinalized
		default:
			return RequestStatus{}, false
		}
	default:
		return RequestStatus{}, false
	}
	return st, true
}

// TargetStage resolves a label sent by a client as the desired new status.
func TargetStage(kind RequestKind, label string) (Stage, bool) {
	switch kind {
	case KindExcuse:
		switch label {
		case ExcuseApproved:
			return StageApproved, true
		case ExcuseRejected:
			return StageRejected, true
		case ExcuseFinalized:
			return StageFinalized, true
		}
	case KindShortLeave:
		switch label {
		case ShortLeaveParentApproved:
			return StageAwaitingTeacher, true
		case ShortLeaveTeacherAccepted:
			return StageApproved, true
		case ShortLeaveRejected:
			return StageRejected, true
		case ShortLeaveFinalized:
			return StageFinalized, true
		}
	}
	return "", false
}

// LabelFor returns the persisted label for a stage reached by a transition.
func LabelFor(kind RequestKind, stage Stage) string {
	if kind == KindExcuse {
		switch stage {
		case StageSubmitted:
			return ExcusePending
		case StageApproved:
			return ExcuseApproved
		case StageRejected:
			return ExcuseRejected
		case StageFinalized:
			return ExcuseFinalized
		}
		return ""
	}
	switch stage {
	case StageSubmitted, StageAwaitingGuardian:
		return ShortLeaveSubmitted
	case StageAwaitingTeacher:
		return ShortLeaveParentApproved
	case StageApproved:
		return ShortLeaveTeacherAccepted
	case StageRejected:
		return ShortLeaveRejected
	case StageFinalized:
		return ShortLeaveFinalized
	}
	return ""
}

// IsPending reports whether the request still waits for someone.
func (s Stage) IsPending() bool {
	return s == StageSubmitted || s == StageAwaitingGuardian || s == StageAwaitingTeacher
}

// IsWithdrawable holds only before anyone other than the submitter acted.
// A parent-submitted short leave already awaits the teacher but is still
// withdrawable, so the check reads the stored label rather than the stage.
func (s RequestStatus) IsWithdrawable() bool {
	switch s.Kind {
	case KindExcuse:
		return s.Label == ExcusePending
	case KindShortLeave:
		return s.Label == ShortLeaveSubmitted
	}
	return false
}

func (s Stage) IsTerminal() bool {
	return s == StageFinalized || s == StageRejected
}

// CanTransition checks a review step. Finalization is not a review step and
// is only reachable through the batch finalize operation.
func CanTransition(kind RequestKind, from, to Stage, actor Role) bool {
	if from.IsTerminal() || to == StageFinalized {
		return false
	}
	switch actor {
	case RoleParent:
		return kind == KindShortLeave && from == StageAwaitingGuardian &&
			(to == StageAwaitingTeacher || to == StageRejected)
	case RoleTeacher:
		switch to {
		case StageApproved:
			return from.IsPending()
		case StageRejected:
			if kind == KindShortLeave {
				return from != StageFinalized
			}
			return from == StageSubmitted
		}
	}
	return false
}
