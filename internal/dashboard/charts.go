package dashboard

import fleet "fleetdock/internal/fleet/domain"

// Slice is one labelled value in a distribution.
type Slice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Charts bundles the dashboard distributions.
type Charts struct {
	JobStatus   []Slice `json:"jobStatus"`
	JobPriority []Slice `json:"jobPriority"`
	ShipStatus  []Slice `json:"shipStatus"`
}

// BuildCharts derives the chart distributions in their fixed display order.
func BuildCharts(ships []fleet.Ship, jobs []fleet.Job) Charts {
	return Charts{
		JobStatus:   distribution(jobs, jobStatus, []string{fleet.JobStatusOpen, fleet.JobStatusInProgress, fleet.JobStatusCompleted, fleet.JobStatusCancelled}),
		JobPriority: distribution(jobs, jobPriority, []string{fleet.JobPriorityLow, fleet.JobPriorityMedium, fleet.JobPriorityHigh, fleet.JobPriorityCritical}),
		ShipStatus:  distribution(ships, shipStatus, []string{fleet.ShipStatusActive, fleet.ShipStatusUnderMaintenance, fleet.ShipStatusInactive}),
	}
}

func jobStatus(job fleet.Job) string     { return job.Status }
func jobPriority(job fleet.Job) string   { return job.Priority }
func shipStatus(ship fleet.Ship) string  { return ship.Status }

func distribution[T any](items []T, key func(T) string, order []string) []Slice {
	counts := make(map[string]int, len(order))
	for _, item := range items {
		counts[key(item)]++
	}
	out := make([]Slice, 0, len(order))
	for _, name := range order {
		out = append(out, Slice{Name: name, Value: counts[name]})
	}
	return out
}
