package dashboard

import (
	"time"

	fleet "fleetdock/internal/fleet/domain"
)

// Day is one calendar day with its scheduled jobs.
type Day struct {
	Date time.Time   `json:"date"`
	Jobs []fleet.Job `json:"jobs"`
}

// JobsOn returns the jobs scheduled on the same calendar day as date.
func JobsOn(jobs []fleet.Job, date time.Time) []fleet.Job {
	var out []fleet.Job
	for _, job := range jobs {
		if sameDay(job.ScheduledDate, date) {
			out = append(out, job)
		}
	}
	return out
}

// Month returns every day of the given month with its scheduled jobs,
// including empty days, in calendar order.
func Month(jobs []fleet.Job, year int, month time.Month) []Day {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	out := make([]Day, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		out = append(out, Day{Date: date, Jobs: JobsOn(jobs, date)})
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
