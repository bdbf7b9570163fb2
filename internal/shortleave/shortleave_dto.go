package shortleave

type SubmitShortLeaveRequest struct {
	StudentID   string `json:"student_id"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Reason      string `json:"reason"`
	SubmittedBy string `json:"submitted_by"`
}

type ShortLeaveResponse struct {
	ID                string  `json:"id"`
	Kind              string  `json:"kind"`
	StudentID         string  `json:"student_id"`
	StudentName       string  `json:"student_name,omitempty"`
	Category          string  `json:"category"`
	Date              string  `json:"date"`
	StartTime         string  `json:"start_time"`
	EndTime           string  `json:"end_time"`
	RequestedHours    int     `json:"requested_hours"`
	HoursDeducted     int     `json:"hours_deducted"`
	Reason            string  `json:"reason"`
	SubmittedBy       string  `json:"submitted_by"`
	GuardianApproved  bool    `json:"guardian_approved"`
	Status            string  `json:"status"`
	Stage             string  `json:"stage"`
	ReviewNote        *string `json:"review_note,omitempty"`
	TeacherAcceptedAt *string `json:"teacher_accepted_at"`
	ProcessedAt       *string `json:"processed_at"`
	CreatedAt         string  `json:"created_at"`
}
