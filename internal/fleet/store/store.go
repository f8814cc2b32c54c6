package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	fleet "fleetdock/internal/fleet/domain"
	"fleetdock/internal/storage"
)

// Storage keys, one snapshot per collection.
const (
	keyShips         = "ships"
	keyComponents    = "components"
	keyJobs          = "jobs"
	keyNotifications = "notifications"
)

// Clock provides time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// Store is the single source of truth for ships, components, jobs and the
// notification feed. Every mutation updates the in-memory collection and
// rewrites its full snapshot to storage before returning. Mutations that
// target a missing id are silent no-ops: the collection is persisted
// unchanged and no error is reported.
type Store struct {
	mu            sync.RWMutex
	kv            storage.KV
	clock         Clock
	newID         func(prefix string) string
	ships         []fleet.Ship
	components    []fleet.Component
	jobs          []fleet.Job
	notifications []fleet.Notification
}

// Option customizes the store.
type Option func(*Store)

// WithClock assigns a clock.
func WithClock(clock Clock) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithIDFunc assigns an id generator, keyed by entity prefix.
func WithIDFunc(fn func(prefix string) string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// Open loads the persisted snapshots from kv, seeding any collection that
// has never been written. Seeding is a one-time bootstrap: a present
// snapshot is loaded verbatim, with no migration or reconciliation.
func Open(ctx context.Context, kv storage.KV, opts ...Option) (*Store, error) {
	if kv == nil {
		return nil, errors.New("store: nil storage")
	}
	s := &Store{
		kv:    kv,
		clock: systemClock{},
		newID: NewID,
	}
	for _, opt := range opts {
		opt(s)
	}

	var err error
	if s.ships, err = loadOrSeed(ctx, kv, keyShips, SeedShips()); err != nil {
		return nil, err
	}
	if s.components, err = loadOrSeed(ctx, kv, keyComponents, SeedComponents()); err != nil {
		return nil, err
	}
	if s.jobs, err = loadOrSeed(ctx, kv, keyJobs, SeedJobs()); err != nil {
		return nil, err
	}
	if s.notifications, err = loadOrSeed(ctx, kv, keyNotifications, []fleet.Notification{}); err != nil {
		return nil, err
	}
	return s, nil
}

func loadOrSeed[T any](ctx context.Context, kv storage.KV, key string, seed []T) ([]T, error) {
	data, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("store: load %s: %w", key, err)
	}
	if !ok {
		encoded, err := json.Marshal(seed)
		if err != nil {
			return nil, fmt.Errorf("store: encode %s seed: %w", key, err)
		}
		if err := kv.Put(ctx, key, encoded); err != nil {
			return nil, fmt.Errorf("store: write %s seed: %w", key, err)
		}
		return seed, nil
	}
	var loaded []T
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", key, err)
	}
	return loaded, nil
}

// persistLocked rewrites the full snapshot for key. Callers hold the write lock.
func (s *Store) persistLocked(ctx context.Context, key string, collection any) error {
	encoded, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := s.kv.Put(ctx, key, encoded); err != nil {
		return fmt.Errorf("store: persist %s: %w", key, err)
	}
	return nil
}

// AddShip assigns an identity and creation timestamp, appends the ship and
// persists the collection. The store performs no field validation; that is
// the input layer's concern.
func (s *Store) AddShip(ctx context.Context, ship fleet.Ship) (fleet.Ship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ship.ID = s.newID("shp")
	ship.CreatedAt = s.clock.Now()
	s.ships = append(s.ships, ship)
	if err := s.persistLocked(ctx, keyShips, s.ships); err != nil {
		return fleet.Ship{}, err
	}
	return ship, nil
}

// UpdateShip merges non-nil patch fields onto the matching ship. A missing
// id is a silent no-op; the zero Ship is returned.
func (s *Store) UpdateShip(ctx context.Context, id string, patch fleet.ShipPatch) (fleet.Ship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated fleet.Ship
	for i := range s.ships {
		if s.ships[i].ID != id {
			continue
		}
		if patch.Name != nil {
			s.ships[i].Name = *patch.Name
		}
		if patch.IMO != nil {
			s.ships[i].IMO = *patch.IMO
		}
		if patch.Flag != nil {
			s.ships[i].Flag = *patch.Flag
		}
		if patch.Status != nil {
			s.ships[i].Status = *patch.Status
		}
		updated = s.ships[i]
		break
	}
	if err := s.persistLocked(ctx, keyShips, s.ships); err != nil {
		return fleet.Ship{}, err
	}
	return updated, nil
}

// DeleteShip removes the ship and cascades to every component and job whose
// ship id matches. Jobs are removed by their own denormalized ship id, not
// by re-deriving through components. All three snapshots are rewritten.
func (s *Store) DeleteShip(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ships := s.ships[:0]
	for _, ship := range s.ships {
		if ship.ID != id {
			ships = append(ships, ship)
		}
	}
	s.ships = ships

	components := s.components[:0]
	for _, component := range s.components {
		if component.ShipID != id {
			components = append(components, component)
		}
	}
	s.components = components

	jobs := s.jobs[:0]
	for _, job := range s.jobs {
		if job.ShipID != id {
			jobs = append(jobs, job)
		}
	}
	s.jobs = jobs

	if err := s.persistLocked(ctx, keyShips, s.ships); err != nil {
		return err
	}
	if err := s.persistLocked(ctx, keyComponents, s.components); err != nil {
		return err
	}
	return s.persistLocked(ctx, keyJobs, s.jobs)
}

// AddComponent assigns an identity, appends and persists. The caller
// supplies the already-computed next maintenance date.
func (s *Store) AddComponent(ctx context.Context, component fleet.Component) (fleet.Component, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	component.ID = s.newID("cmp")
	s.components = append(s.components, component)
	if err := s.persistLocked(ctx, keyComponents, s.components); err != nil {
		return fleet.Component{}, err
	}
	return component, nil
}

// UpdateComponent merges non-nil patch fields onto the matching component.
// A missing id is a silent no-op; the zero Component is returned.
func (s *Store) UpdateComponent(ctx context.Context, id string, patch fleet.ComponentPatch) (fleet.Component, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated fleet.Component
	for i := range s.components {
		if s.components[i].ID != id {
			continue
		}
		if patch.Name != nil {
			s.components[i].Name = *patch.Name
		}
		if patch.SerialNumber != nil {
			s.components[i].SerialNumber = *patch.SerialNumber
		}
		if patch.InstallDate != nil {
			s.components[i].InstallDate = *patch.InstallDate
		}
		if patch.LastMaintenanceDate != nil {
			s.components[i].LastMaintenanceDate = *patch.LastMaintenanceDate
		}
		if patch.NextMaintenanceDate != nil {
			s.components[i].NextMaintenanceDate = *patch.NextMaintenanceDate
		}
		updated = s.components[i]
		break
	}
	if err := s.persistLocked(ctx, keyComponents, s.components); err != nil {
		return fleet.Component{}, err
	}
	return updated, nil
}

// DeleteComponent removes the component and cascades to every job whose
// component id matches. The owning ship is untouched.
func (s *Store) DeleteComponent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	components := s.components[:0]
	for _, component := range s.components {
		if component.ID != id {
			components = append(components, component)
		}
	}
	s.components = components

	jobs := s.jobs[:0]
	for _, job := range s.jobs {
		if job.ComponentID != id {
			jobs = append(jobs, job)
		}
	}
	s.jobs = jobs

	if err := s.persistLocked(ctx, keyComponents, s.components); err != nil {
		return err
	}
	return s.persistLocked(ctx, keyJobs, s.jobs)
}

// AddJob assigns an identity and creation timestamp, stamps the denormalized
// ship id from the referenced component, appends, persists and emits a
// job_created notification. The notification message embeds the component's
// name as it reads at this moment; later renames do not rewrite it.
func (s *Store) AddJob(ctx context.Context, job fleet.Job) (fleet.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job.ID = s.newID("job")
	job.CreatedAt = s.clock.Now()
	componentName := ""
	for _, component := range s.components {
		if component.ID == job.ComponentID {
			componentName = component.Name
			job.ShipID = component.ShipID
			break
		}
	}
	s.jobs = append(s.jobs, job)
	if err := s.persistLocked(ctx, keyJobs, s.jobs); err != nil {
		return fleet.Job{}, err
	}

	notification := fleet.Notification{
		Message: fmt.Sprintf("New %s job created for %s", job.Type, componentName),
		Type:    fleet.NotificationJobCreated,
		JobID:   job.ID,
	}
	if err := s.addNotificationLocked(ctx, notification); err != nil {
		return fleet.Job{}, err
	}
	return job, nil
}

// UpdateJob merges non-nil patch fields onto the matching job. When the
// patch carries a status, a notification is emitted: job_completed if the
// new status is exactly "Completed", job_updated otherwise. The component
// name is resolved from the pre-update job's component id. A patch without
// a status emits nothing; a missing id is a silent no-op.
func (s *Store) UpdateJob(ctx context.Context, id string, patch fleet.JobPatch) (fleet.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated fleet.Job
	found := false
	componentID := ""
	for i := range s.jobs {
		if s.jobs[i].ID != id {
			continue
		}
		found = true
		componentID = s.jobs[i].ComponentID
		if patch.Type != nil {
			s.jobs[i].Type = *patch.Type
		}
		if patch.Priority != nil {
			s.jobs[i].Priority = *patch.Priority
		}
		if patch.Status != nil {
			s.jobs[i].Status = *patch.Status
		}
		if patch.AssignedEngineerID != nil {
			s.jobs[i].AssignedEngineerID = *patch.AssignedEngineerID
		}
		if patch.ScheduledDate != nil {
			s.jobs[i].ScheduledDate = *patch.ScheduledDate
		}
		if patch.CompletedDate != nil {
			s.jobs[i].CompletedDate = *patch.CompletedDate
		}
		if patch.Description != nil {
			s.jobs[i].Description = *patch.Description
		}
		updated = s.jobs[i]
		break
	}
	if err := s.persistLocked(ctx, keyJobs, s.jobs); err != nil {
		return fleet.Job{}, err
	}

	if patch.Status != nil && found {
		componentName := ""
		for _, component := range s.components {
			if component.ID == componentID {
				componentName = component.Name
				break
			}
		}
		notificationType := fleet.NotificationJobUpdated
		if *patch.Status == fleet.JobStatusCompleted {
			notificationType = fleet.NotificationJobCompleted
		}
		notification := fleet.Notification{
			Message: fmt.Sprintf("Job %s for %s", *patch.Status, componentName),
			Type:    notificationType,
			JobID:   id,
		}
		if err := s.addNotificationLocked(ctx, notification); err != nil {
			return fleet.Job{}, err
		}
	}
	return updated, nil
}

// DeleteJob removes the job. No cascade, no notification.
func (s *Store) DeleteJob(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := s.jobs[:0]
	for _, job := range s.jobs {
		if job.ID != id {
			jobs = append(jobs, job)
		}
	}
	s.jobs = jobs
	return s.persistLocked(ctx, keyJobs, s.jobs)
}

// AddNotification assigns an identity and timestamp, prepends (the feed is
// newest-first) and persists.
func (s *Store) AddNotification(ctx context.Context, notification fleet.Notification) (fleet.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.addNotificationLocked(ctx, notification); err != nil {
		return fleet.Notification{}, err
	}
	return s.notifications[0], nil
}

func (s *Store) addNotificationLocked(ctx context.Context, notification fleet.Notification) error {
	notification.ID = s.newID("ntf")
	notification.Timestamp = s.clock.Now()
	s.notifications = append([]fleet.Notification{notification}, s.notifications...)
	return s.persistLocked(ctx, keyNotifications, s.notifications)
}

// MarkNotificationRead sets the read flag on the matching notification.
// A missing id is a silent no-op.
func (s *Store) MarkNotificationRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			break
		}
	}
	return s.persistLocked(ctx, keyNotifications, s.notifications)
}

// DismissNotification removes the matching notification.
func (s *Store) DismissNotification(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications := s.notifications[:0]
	for _, notification := range s.notifications {
		if notification.ID != id {
			notifications = append(notifications, notification)
		}
	}
	s.notifications = notifications
	return s.persistLocked(ctx, keyNotifications, s.notifications)
}
