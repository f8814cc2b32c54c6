package fleet

import (
	"testing"
	"time"
)

func TestValidIMO(t *testing.T) {
	valid := []string{"9811000", "0000000", "1234567"}
	for _, value := range valid {
		if !ValidIMO(value) {
			t.Fatalf("expected %q valid", value)
		}
	}
	invalid := []string{"", "123456", "12345678", "12a4567", " 1234567", "1234567 "}
	for _, value := range invalid {
		if ValidIMO(value) {
			t.Fatalf("expected %q invalid", value)
		}
	}
}

func TestShipValidate(t *testing.T) {
	ship := Ship{Name: "Ever Given", IMO: "9811000", Flag: "Panama", Status: ShipStatusActive}
	if err := ship.Validate(); err != nil {
		t.Fatalf("expected valid ship, got %v", err)
	}

	bad := ship
	bad.IMO = "98110"
	if err := bad.Validate(); err == nil {
		t.Fatal("expected short IMO rejected")
	}

	bad = ship
	bad.Status = "Docked"
	if err := bad.Validate(); err == nil {
		t.Fatal("expected unknown status rejected")
	}
}

func TestNextMaintenancePlusOneYear(t *testing.T) {
	last := time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)
	next := NextMaintenance(last)
	want := time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("expected %s, got %s", want, next)
	}
}

func TestJobValidate(t *testing.T) {
	job := Job{
		ComponentID:        "c1",
		Type:               JobTypeInspection,
		Priority:           JobPriorityHigh,
		Status:             JobStatusOpen,
		AssignedEngineerID: "3",
		ScheduledDate:      time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC),
	}
	if err := job.Validate(); err != nil {
		t.Fatalf("expected valid job, got %v", err)
	}

	bad := job
	bad.Priority = "Urgent"
	if err := bad.Validate(); err == nil {
		t.Fatal("expected unknown priority rejected")
	}

	bad = job
	bad.ScheduledDate = time.Time{}
	if err := bad.Validate(); err == nil {
		t.Fatal("expected missing scheduled date rejected")
	}
}

func TestComponentValidate(t *testing.T) {
	component := Component{
		ShipID:              "s1",
		Name:                "Main Engine",
		SerialNumber:        "ME-1234",
		InstallDate:         time.Date(2020, time.January, 10, 0, 0, 0, 0, time.UTC),
		LastMaintenanceDate: time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC),
	}
	if err := component.Validate(); err != nil {
		t.Fatalf("expected valid component, got %v", err)
	}
	bad := component
	bad.SerialNumber = ""
	if err := bad.Validate(); err == nil {
		t.Fatal("expected missing serial rejected")
	}
}
