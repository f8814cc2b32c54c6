package dashboard

import (
	"time"

	fleet "fleetdock/internal/fleet/domain"
)

// KPI is the headline dashboard snapshot.
type KPI struct {
	TotalShips        int `json:"totalShips"`
	OverdueComponents int `json:"overdueComponents"`
	JobsInProgress    int `json:"jobsInProgress"`
	CompletedJobs     int `json:"completedJobs"`
}

// Snapshot derives the KPI figures from the current collections. A component
// is overdue when its next maintenance date lies before now.
func Snapshot(ships []fleet.Ship, components []fleet.Component, jobs []fleet.Job, now time.Time) KPI {
	kpi := KPI{TotalShips: len(ships)}
	for _, component := range components {
		if component.NextMaintenanceDate.IsZero() {
			continue
		}
		if component.NextMaintenanceDate.Before(now) {
			kpi.OverdueComponents++
		}
	}
	for _, job := range jobs {
		switch job.Status {
		case fleet.JobStatusInProgress:
			kpi.JobsInProgress++
		case fleet.JobStatusCompleted:
			kpi.CompletedJobs++
		}
	}
	return kpi
}
