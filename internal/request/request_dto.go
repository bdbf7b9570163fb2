package request

import (
	"github.com/andreicionca/motivare-absente/internal/excuse"
	"github.com/andreicionca/motivare-absente/internal/quota"
	"github.com/andreicionca/motivare-absente/internal/shortleave"
)

type ListForStudentRequest struct {
	StudentID string `json:"student_id"`
}

type ListForTeacherRequest struct {
	Class string `json:"class"`
}

type UpdateStatusRequest struct {
	Kind      string  `json:"kind"`
	RecordID  string  `json:"record_id"`
	NewStatus string  `json:"new_status"`
	Reason    *string `json:"reason"`
}

type DeletePendingRequest struct {
	Kind     string `json:"kind"`
	RecordID string `json:"record_id"`
}

// BatchRequest selects records of both kinds for finalize and export.
type BatchRequest struct {
	ExcuseIDs     []string `json:"excuse_ids"`
	ShortLeaveIDs []string `json:"short_leave_ids"`
}

type StudentRequestsResponse struct {
	StudentID   string                          `json:"student_id"`
	Excuses     []excuse.ExcuseResponse         `json:"excuses"`
	ShortLeaves []shortleave.ShortLeaveResponse `json:"short_leaves"`
	Quota       quota.Summary                   `json:"quota"`
}

type ClassRequestsResponse struct {
	Class       string                          `json:"class"`
	Excuses     []excuse.ExcuseResponse         `json:"excuses"`
	ShortLeaves []shortleave.ShortLeaveResponse `json:"short_leaves"`
	Quota       map[string]quota.Summary        `json:"quota"`
}

type StatusUpdateResponse struct {
	Kind     string `json:"kind"`
	RecordID string `json:"record_id"`
	Status   string `json:"status"`
	Stage    string `json:"stage"`
}

type BatchIDs struct {
	ExcuseIDs     []string `json:"excuse_ids"`
	ShortLeaveIDs []string `json:"short_leave_ids"`
}

type FinalizeBatchResponse struct {
	Finalized BatchIDs                 `json:"finalized"`
	Skipped   BatchIDs                 `json:"skipped"`
	Quota     map[string]quota.Summary `json:"quota"`
}

type DeletePendingResponse struct {
	Kind                     string `json:"kind"`
	RecordID                 string `json:"record_id"`
	EvidenceReleaseScheduled bool   `json:"evidence_release_scheduled"`
}

type ExportItem struct {
	StudentName string `json:"studentName"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Reason      string `json:"reason"`
	ReasonType  string `json:"reasonType"`
}

type ExportScriptResponse struct {
	Script  string       `json:"script"`
	Items   []ExportItem `json:"items"`
	Skipped BatchIDs     `json:"skipped"`
}

type StudentStatsResponse struct {
	StudentID      string        `json:"student_id"`
	StudentName    string        `json:"student_name"`
	TotalRequests  int           `json:"total_requests"`
	Finalized      int           `json:"finalized"`
	FinalizedHours int           `json:"finalized_hours"`
	Quota          quota.Summary `json:"quota"`
}

type ClassStatsResponse struct {
	Class          string                 `json:"class"`
	Students       []StudentStatsResponse `json:"students"`
	TotalRequests  int                    `json:"total_requests"`
	Finalized      int                    `json:"finalized"`
	FinalizedHours int                    `json:"finalized_hours"`
	QuotaUsed      int                    `json:"quota_used"`
}
