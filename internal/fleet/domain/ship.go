package fleet

import (
	"errors"
	"regexp"
	"time"
)

// Ship statuses.
const (
	ShipStatusActive           = "Active"
	ShipStatusUnderMaintenance = "Under Maintenance"
	ShipStatusInactive         = "Inactive"
)

var imoPattern = regexp.MustCompile(`^\d{7}$`)

// Ship represents a vessel under maintenance management.
type Ship struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IMO       string    `json:"imo"`
	Flag      string    `json:"flag"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ValidShipStatus reports whether value is a known ship status.
func ValidShipStatus(value string) bool {
	switch value {
	case ShipStatusActive, ShipStatusUnderMaintenance, ShipStatusInactive:
		return true
	default:
		return false
	}
}

// ValidIMO reports whether value is a well-formed 7-digit IMO number.
func ValidIMO(value string) bool {
	return imoPattern.MatchString(value)
}

// Validate checks ship invariants. Called by the input layer before the
// store is invoked; the store itself trusts its caller.
func (s Ship) Validate() error {
	if s.Name == "" {
		return errors.New("ship: empty name")
	}
	if !ValidIMO(s.IMO) {
		return errors.New("ship: IMO number must be 7 digits")
	}
	if s.Flag == "" {
		return errors.New("ship: empty flag")
	}
	if !ValidShipStatus(s.Status) {
		return errors.New("ship: invalid status")
	}
	return nil
}

// ShipPatch is a partial update; nil fields are left unchanged.
type ShipPatch struct {
	Name   *string `json:"name"`
	IMO    *string `json:"imo"`
	Flag   *string `json:"flag"`
	Status *string `json:"status"`
}
