package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	fleet "fleetdock/internal/fleet/domain"
	"fleetdock/internal/storage"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func sequentialIDs() func(prefix string) string {
	next := 0
	return func(prefix string) string {
		next++
		return fmt.Sprintf("%s-%d", prefix, next)
	}
}

func openTestStore(t *testing.T, kv storage.KV) *Store {
	t.Helper()
	s, err := Open(context.Background(), kv,
		WithClock(fixedClock{now: time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)}),
		WithIDFunc(sequentialIDs()),
	)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func TestOpenSeedsEmptyStorage(t *testing.T) {
	kv := storage.NewMemory()
	s := openTestStore(t, kv)

	if got := len(s.Ships()); got != 2 {
		t.Fatalf("expected 2 seeded ships, got %d", got)
	}
	if got := len(s.Components()); got != 3 {
		t.Fatalf("expected 3 seeded components, got %d", got)
	}
	if got := len(s.Jobs()); got != 2 {
		t.Fatalf("expected 2 seeded jobs, got %d", got)
	}
	if got := len(s.Notifications()); got != 0 {
		t.Fatalf("expected empty notification feed, got %d", got)
	}

	// The bootstrap must have written every collection, the empty feed included.
	for _, key := range []string{"ships", "components", "jobs", "notifications"} {
		if _, ok, _ := kv.Get(context.Background(), key); !ok {
			t.Fatalf("expected %s snapshot written on bootstrap", key)
		}
	}
}

func TestOpenLoadsPersistedSnapshotVerbatim(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	first := openTestStore(t, kv)

	ship, err := first.AddShip(ctx, fleet.Ship{Name: "Atlantic Carrier", IMO: "1234567", Flag: "Norway", Status: fleet.ShipStatusActive})
	if err != nil {
		t.Fatalf("add ship: %v", err)
	}
	if _, err := first.AddJob(ctx, fleet.Job{ComponentID: "c1", Type: fleet.JobTypePreventive, Priority: fleet.JobPriorityLow, Status: fleet.JobStatusOpen, AssignedEngineerID: "3", ScheduledDate: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)}); err != nil {
		t.Fatalf("add job: %v", err)
	}

	// Simulated restart: a fresh store over the same storage.
	second := openTestStore(t, kv)
	ships := second.Ships()
	if len(ships) != 3 {
		t.Fatalf("expected 3 ships after reload, got %d", len(ships))
	}
	reloaded, ok := second.ShipByID(ship.ID)
	if !ok {
		t.Fatalf("expected ship %s to survive reload", ship.ID)
	}
	if reloaded != ship {
		t.Fatalf("reloaded ship differs: %+v vs %+v", reloaded, ship)
	}
	if len(second.Notifications()) != 1 {
		t.Fatalf("expected notification feed to survive reload, got %d entries", len(second.Notifications()))
	}
}

func TestAddShipAssignsIdentityAndTimestamp(t *testing.T) {
	s := openTestStore(t, storage.NewMemory())

	ship, err := s.AddShip(context.Background(), fleet.Ship{Name: "Baltic Trader", IMO: "7654321", Flag: "Denmark", Status: fleet.ShipStatusInactive})
	if err != nil {
		t.Fatalf("add ship: %v", err)
	}
	if ship.ID == "" {
		t.Fatal("expected assigned id")
	}
	if ship.CreatedAt.IsZero() {
		t.Fatal("expected assigned creation timestamp")
	}
	if _, ok := s.ShipByID(ship.ID); !ok {
		t.Fatal("expected ship retrievable by id")
	}
}

func TestUpdateShipMergesPatch(t *testing.T) {
	s := openTestStore(t, storage.NewMemory())

	status := fleet.ShipStatusInactive
	updated, err := s.UpdateShip(context.Background(), "s1", fleet.ShipPatch{Status: &status})
	if err != nil {
		t.Fatalf("update ship: %v", err)
	}
	if updated.Status != fleet.ShipStatusInactive {
		t.Fatalf("expected patched status, got %q", updated.Status)
	}
	if updated.Name != "Ever Given" {
		t.Fatalf("expected untouched name, got %q", updated.Name)
	}
}

func TestUpdateShipMissingIDIsSilentNoop(t *testing.T) {
	kv := storage.NewMemory()
	s := openTestStore(t, kv)
	before := s.Ships()

	name := "Ghost"
	updated, err := s.UpdateShip(context.Background(), "nope", fleet.ShipPatch{Name: &name})
	if err != nil {
		t.Fatalf("expected no error on missing id, got %v", err)
	}
	if updated != (fleet.Ship{}) {
		t.Fatalf("expected zero ship, got %+v", updated)
	}
	after := s.Ships()
	if len(after) != len(before) {
		t.Fatalf("collection changed: %d vs %d", len(after), len(before))
	}
	// The unchanged collection is still rewritten to storage.
	if _, ok, _ := kv.Get(context.Background(), "ships"); !ok {
		t.Fatal("expected ships snapshot present")
	}
}

func TestDeleteShipCascadesExactly(t *testing.T) {
	s := openTestStore(t, storage.NewMemory())

	if err := s.DeleteShip(context.Background(), "s1"); err != nil {
		t.Fatalf("delete ship: %v", err)
	}
	if _, ok := s.ShipByID("s1"); ok {
		t.Fatal("expected s1 removed")
	}
	if _, ok := s.ShipByID("s2"); !ok {
		t.Fatal("expected s2 untouched")
	}

	// c1 and c3 belong to s1; c2 belongs to s2 and must remain.
	if _, ok := s.ComponentByID("c1"); ok {
		t.Fatal("expected c1 cascaded")
	}
	if _, ok := s.ComponentByID("c3"); ok {
		t.Fatal("expected c3 cascaded")
	}
	if _, ok := s.ComponentByID("c2"); !ok {
		t.Fatal("expected c2 untouched")
	}

	// j1 carries shipId s1; j2 carries s2.
	if _, ok := s.JobByID("j1"); ok {
		t.Fatal("expected j1 cascaded")
	}
	if _, ok := s.JobByID("j2"); !ok {
		t.Fatal("expected j2 untouched")
	}
}

func TestDeleteComponentCascadesJobsOnly(t *testing.T) {
	s := openTestStore(t, storage.NewMemory())

	if err := s.DeleteComponent(context.Background(), "c1"); err != nil {
		t.Fatalf("delete component: %v", err)
	}
	if _, ok := s.ComponentByID("c1"); ok {
		t.Fatal("expected c1 removed")
	}
	if _, ok := s.JobByID("j1"); ok {
		t.Fatal("expected j1 cascaded with its component")
	}
	if _, ok := s.JobByID("j2"); !ok {
		t.Fatal("expected j2 untouched")
	}
	if _, ok := s.ShipByID("s1"); !ok {
		t.Fatal("expected owning ship untouched")
	}
}

func TestAddJobStampsShipIDAndNotifies(t *testing.T) {
	s := openTestStore(t, storage.NewMemory())

	job, err := s.AddJob(context.Background(), fleet.Job{
		ComponentID:        "c2",
		ShipID:             "wrong", // must be overwritten from the component
		Type:               fleet.JobTypeRepair,
		Priority:           fleet.JobPriorityMedium,
		Status:             fleet.JobStatusOpen,
		AssignedEngineerID: "3",
		ScheduledDate:      time.Date(2025, time.August, 2, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("add job: %v", err)
	}
	if job.ShipID != "s2" {
		t.Fatalf("expected denormalized ship id s2, got %q", job.ShipID)
	}

	feed := s.Notifications()
	if len(feed) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(feed))
	}
	if feed[0].Type != fleet.NotificationJobCreated {
		t.Fatalf("expected job_created, got %q", feed[0].Type)
	}
	if feed[0].Message != "New Repair job created for Radar" {
		t.Fatalf("unexpected message: %q", feed[0].Message)
	}
	if feed[0].JobID != job.ID {
		t.Fatalf("expected notification linked to %s, got %s", job.ID, feed[0].JobID)
	}
}

func TestUpdateJobStatusNotificationMatrix(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, storage.NewMemory())

	completed := fleet.JobStatusCompleted
	if _, err := s.UpdateJob(ctx, "j1", fleet.JobPatch{Status: &completed}); err != nil {
		t.Fatalf("update job: %v", err)
	}
	feed := s.Notifications()
	if len(feed) != 1 || feed[0].Type != fleet.NotificationJobCompleted {
		t.Fatalf("expected one job_completed notification, got %+v", feed)
	}
	if feed[0].Message != "Job Completed for Main Engine" {
		t.Fatalf("unexpected message: %q", feed[0].Message)
	}

	cancelled := fleet.JobStatusCancelled
	if _, err := s.UpdateJob(ctx, "j2", fleet.JobPatch{Status: &cancelled}); err != nil {
		t.Fatalf("update job: %v", err)
	}
	feed = s.Notifications()
	if len(feed) != 2 || feed[0].Type != fleet.NotificationJobUpdated {
		t.Fatalf("expected job_updated on non-completed status, got %+v", feed[0])
	}
	if feed[0].Message != "Job Cancelled for Radar" {
		t.Fatalf("unexpected message: %q", feed[0].Message)
	}

	// A patch without a status field emits nothing.
	description := "tightened mounting bolts"
	if _, err := s.UpdateJob(ctx, "j1", fleet.JobPatch{Description: &description}); err != nil {
		t.Fatalf("update job: %v", err)
	}
	if got := len(s.Notifications()); got != 2 {
		t.Fatalf("expected no notification for statusless patch, got %d entries", got)
	}

	// A status patch against a missing id emits nothing either.
	if _, err := s.UpdateJob(ctx, "missing", fleet.JobPatch{Status: &completed}); err != nil {
		t.Fatalf("update missing job: %v", err)
	}
	if got := len(s.Notifications()); got != 2 {
		t.Fatalf("expected no notification for missing job, got %d entries", got)
	}
}

func TestDeleteJobNoCascadeNoNotification(t *testing.T) {
	s := openTestStore(t, storage.NewMemory())

	if err := s.DeleteJob(context.Background(), "j1"); err != nil {
		t.Fatalf("delete job: %v", err)
	}
	if _, ok := s.JobByID("j1"); ok {
		t.Fatal("expected j1 removed")
	}
	if _, ok := s.ComponentByID("c1"); !ok {
		t.Fatal("expected component untouched")
	}
	if got := len(s.Notifications()); got != 0 {
		t.Fatalf("expected no notification on delete, got %d", got)
	}
}

func TestNotificationsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, storage.NewMemory())

	for i := 0; i < 5; i++ {
		if _, err := s.AddNotification(ctx, fleet.Notification{Message: fmt.Sprintf("n%d", i), Type: fleet.NotificationJobUpdated}); err != nil {
			t.Fatalf("add notification: %v", err)
		}
	}
	feed := s.Notifications()
	if len(feed) != 5 {
		t.Fatalf("expected 5 notifications, got %d", len(feed))
	}
	if feed[0].Message != "n4" {
		t.Fatalf("expected most recent first, got %q", feed[0].Message)
	}
	if feed[4].Message != "n0" {
		t.Fatalf("expected oldest last, got %q", feed[4].Message)
	}
}

func TestMarkAndDismissNotification(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, storage.NewMemory())

	added, err := s.AddNotification(ctx, fleet.Notification{Message: "check engine", Type: fleet.NotificationJobCreated})
	if err != nil {
		t.Fatalf("add notification: %v", err)
	}
	if added.Read {
		t.Fatal("expected new notification unread")
	}

	if err := s.MarkNotificationRead(ctx, added.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if feed := s.Notifications(); !feed[0].Read {
		t.Fatal("expected notification marked read")
	}

	if err := s.DismissNotification(ctx, added.ID); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	if got := len(s.Notifications()); got != 0 {
		t.Fatalf("expected empty feed after dismissal, got %d", got)
	}

	// Dismissing an unknown id is a silent no-op.
	if err := s.DismissNotification(ctx, "missing"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestJobsByComponentAndShipFilters(t *testing.T) {
	s := openTestStore(t, storage.NewMemory())

	if jobs := s.JobsByComponent("c1"); len(jobs) != 1 || jobs[0].ID != "j1" {
		t.Fatalf("unexpected jobs for c1: %+v", jobs)
	}
	if jobs := s.JobsByShip("s2"); len(jobs) != 1 || jobs[0].ID != "j2" {
		t.Fatalf("unexpected jobs for s2: %+v", jobs)
	}
	if components := s.ComponentsByShip("s1"); len(components) != 2 {
		t.Fatalf("expected 2 components on s1, got %d", len(components))
	}
	if jobs := s.JobsByShip("missing"); jobs != nil {
		t.Fatalf("expected nil for unknown ship, got %+v", jobs)
	}
}
