package fleet

import "time"

// Notification types.
const (
	NotificationJobCreated   = "job_created"
	NotificationJobUpdated   = "job_updated"
	NotificationJobCompleted = "job_completed"
)

// Notification is an entry in the local notification feed. The feed is
// ordered newest-first; new entries are prepended.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
	JobID     string    `json:"jobId,omitempty"`
}
