package fleet

import (
	"errors"
	"time"
)

// Component represents an installed part of a ship.
type Component struct {
	ID                  string    `json:"id"`
	ShipID              string    `json:"shipId"`
	Name                string    `json:"name"`
	SerialNumber        string    `json:"serialNumber"`
	InstallDate         time.Time `json:"installDate"`
	LastMaintenanceDate time.Time `json:"lastMaintenanceDate"`
	// NextMaintenanceDate is computed from the last maintenance date when
	// the component is created or updated, never re-derived afterwards.
	NextMaintenanceDate time.Time `json:"nextMaintenanceDate"`
}

// NextMaintenance returns the due date one year after the last maintenance,
// preserving month and day.
func NextMaintenance(lastMaintenance time.Time) time.Time {
	return lastMaintenance.AddDate(1, 0, 0)
}

// Validate checks component invariants. The ship reference itself is checked
// against the store by the input layer.
func (c Component) Validate() error {
	if c.ShipID == "" {
		return errors.New("component: empty ship id")
	}
	if c.Name == "" {
		return errors.New("component: empty name")
	}
	if c.SerialNumber == "" {
		return errors.New("component: empty serial number")
	}
	if c.InstallDate.IsZero() {
		return errors.New("component: missing install date")
	}
	if c.LastMaintenanceDate.IsZero() {
		return errors.New("component: missing last maintenance date")
	}
	return nil
}

// ComponentPatch is a partial update; nil fields are left unchanged.
type ComponentPatch struct {
	Name                *string    `json:"name"`
	SerialNumber        *string    `json:"serialNumber"`
	InstallDate         *time.Time `json:"installDate"`
	LastMaintenanceDate *time.Time `json:"lastMaintenanceDate"`
	NextMaintenanceDate *time.Time `json:"nextMaintenanceDate"`
}
