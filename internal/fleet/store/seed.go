package store

import (
	"time"

	fleet "fleetdock/internal/fleet/domain"
)

// Fixed bootstrap dataset, written once per collection when no persisted
// snapshot exists.

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// SeedShips returns the initial ship records.
func SeedShips() []fleet.Ship {
	return []fleet.Ship{
		{ID: "s1", Name: "Ever Given", IMO: "9811000", Flag: "Panama", Status: fleet.ShipStatusActive, CreatedAt: date(2024, time.January, 15)},
		{ID: "s2", Name: "Maersk Alabama", IMO: "9164263", Flag: "USA", Status: fleet.ShipStatusUnderMaintenance, CreatedAt: date(2024, time.February, 10)},
	}
}

// SeedComponents returns the initial component records.
func SeedComponents() []fleet.Component {
	return []fleet.Component{
		{ID: "c1", ShipID: "s1", Name: "Main Engine", SerialNumber: "ME-1234", InstallDate: date(2020, time.January, 10), LastMaintenanceDate: date(2024, time.March, 12), NextMaintenanceDate: date(2025, time.March, 12)},
		{ID: "c2", ShipID: "s2", Name: "Radar", SerialNumber: "RAD-5678", InstallDate: date(2021, time.July, 18), LastMaintenanceDate: date(2023, time.December, 1), NextMaintenanceDate: date(2024, time.December, 1)},
		{ID: "c3", ShipID: "s1", Name: "Navigation System", SerialNumber: "NAV-9012", InstallDate: date(2021, time.March, 22), LastMaintenanceDate: date(2024, time.January, 15), NextMaintenanceDate: date(2025, time.January, 15)},
	}
}

// SeedJobs returns the initial job records.
func SeedJobs() []fleet.Job {
	return []fleet.Job{
		{ID: "j1", ComponentID: "c1", ShipID: "s1", Type: fleet.JobTypeInspection, Priority: fleet.JobPriorityHigh, Status: fleet.JobStatusOpen, AssignedEngineerID: "3", ScheduledDate: date(2025, time.June, 5), Description: "Routine engine inspection", CreatedAt: date(2024, time.December, 1)},
		{ID: "j2", ComponentID: "c2", ShipID: "s2", Type: fleet.JobTypeRepair, Priority: fleet.JobPriorityCritical, Status: fleet.JobStatusInProgress, AssignedEngineerID: "3", ScheduledDate: date(2025, time.May, 28), Description: "Radar calibration and repair", CreatedAt: date(2024, time.November, 28)},
	}
}
