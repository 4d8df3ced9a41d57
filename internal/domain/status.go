package domain

// Application statuses a tracked job can be in. Jobs with no recorded
// status are "Not Applied".
const (
	StatusNotApplied = "Not Applied"
	StatusApplied    = "Applied"
	StatusRejected   = "Rejected"
	StatusSelected   = "Selected"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusNotApplied, StatusApplied, StatusRejected, StatusSelected:
		return true
	}
	return false
}

// StatusChange is one entry in the bounded status history, newest first.
type StatusChange struct {
	JobID     int64  `json:"jobId"`
	Status    string `json:"status"`
	ChangedAt string `json:"changedAt"` // RFC3339
}
