package fleet

import (
	"errors"
	"time"
)

// Job types.
const (
	JobTypeInspection  = "Inspection"
	JobTypeRepair      = "Repair"
	JobTypeReplacement = "Replacement"
	JobTypePreventive  = "Preventive"
)

// Job priorities.
const (
	JobPriorityLow      = "Low"
	JobPriorityMedium   = "Medium"
	JobPriorityHigh     = "High"
	JobPriorityCritical = "Critical"
)

// Job statuses.
const (
	JobStatusOpen       = "Open"
	JobStatusInProgress = "In Progress"
	JobStatusCompleted  = "Completed"
	JobStatusCancelled  = "Cancelled"
)

// Job represents a maintenance job scheduled against a component. ShipID is
// a denormalized copy of the component's ship, stamped at creation time.
type Job struct {
	ID                 string    `json:"id"`
	ComponentID        string    `json:"componentId"`
	ShipID             string    `json:"shipId"`
	Type               string    `json:"type"`
	Priority           string    `json:"priority"`
	Status             string    `json:"status"`
	AssignedEngineerID string    `json:"assignedEngineerId"`
	ScheduledDate      time.Time `json:"scheduledDate"`
	CompletedDate      time.Time `json:"completedDate,omitempty"`
	Description        string    `json:"description,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// ValidJobType reports whether value is a known job type.
func ValidJobType(value string) bool {
	switch value {
	case JobTypeInspection, JobTypeRepair, JobTypeReplacement, JobTypePreventive:
		return true
	default:
		return false
	}
}

// ValidJobPriority reports whether value is a known priority.
func ValidJobPriority(value string) bool {
	switch value {
	case JobPriorityLow, JobPriorityMedium, JobPriorityHigh, JobPriorityCritical:
		return true
	default:
		return false
	}
}

// ValidJobStatus reports whether value is a known job status.
func ValidJobStatus(value string) bool {
	switch value {
	case JobStatusOpen, JobStatusInProgress, JobStatusCompleted, JobStatusCancelled:
		return true
	default:
		return false
	}
}

// Validate checks job invariants. The component reference is checked against
// the store by the input layer.
func (j Job) Validate() error {
	if j.ComponentID == "" {
		return errors.New("job: empty component id")
	}
	if !ValidJobType(j.Type) {
		return errors.New("job: invalid type")
	}
	if !ValidJobPriority(j.Priority) {
		return errors.New("job: invalid priority")
	}
	if !ValidJobStatus(j.Status) {
		return errors.New("job: invalid status")
	}
	if j.AssignedEngineerID == "" {
		return errors.New("job: empty assigned engineer id")
	}
	if j.ScheduledDate.IsZero() {
		return errors.New("job: missing scheduled date")
	}
	return nil
}

// JobPatch is a partial update; nil fields are left unchanged.
type JobPatch struct {
	Type               *string    `json:"type"`
	Priority           *string    `json:"priority"`
	Status             *string    `json:"status"`
	AssignedEngineerID *string    `json:"assignedEngineerId"`
	ScheduledDate      *time.Time `json:"scheduledDate"`
	CompletedDate      *time.Time `json:"completedDate"`
	Description        *string    `json:"description"`
}
