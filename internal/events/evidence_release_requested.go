package events

import "time"

const (
	EvidenceReleaseTopic         = "excuse.evidence.release.v1"
	EvidenceReleaseRequestedType = "evidence_release_requested"
)

// EvidenceReleaseRequestedEvent asks the media host to drop an image whose
// excuse record was withdrawn.
type EvidenceReleaseRequestedEvent struct {
	EventType   string    `json:"event_type"`
	RecordID    string    `json:"record_id"`
	PublicID    string    `json:"public_id"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
