package excuse

type SubmitExcuseRequest struct {
	StudentID        string  `json:"student_id"`
	Category         string  `json:"category"`
	PeriodStart      string  `json:"period_start"`
	PeriodEnd        *string `json:"period_end"`
	Reason           *string `json:"reason"`
	EvidenceURL      string  `json:"evidence_url"`
	EvidencePublicID string  `json:"evidence_public_id"`
	SubmittedBy      string  `json:"submitted_by"`
}

type ExcuseResponse struct {
	ID            string  `json:"id"`
	Kind          string  `json:"kind"`
	StudentID     string  `json:"student_id"`
	StudentName   string  `json:"student_name,omitempty"`
	Category      string  `json:"category"`
	PeriodStart   string  `json:"period_start"`
	PeriodEnd     *string `json:"period_end"`
	Reason        *string `json:"reason"`
	EvidenceURL   string  `json:"evidence_url"`
	SubmittedBy   string  `json:"submitted_by"`
	HoursDeducted int     `json:"hours_deducted"`
	Status        string  `json:"status"`
	Stage         string  `json:"stage"`
	ReviewNote    *string `json:"review_note,omitempty"`
	ProcessedAt   *string `json:"processed_at"`
	CreatedAt     string  `json:"created_at"`
}
