package application

import (
	"context"
	"errors"
	"log"
	"time"

	"fleetdock/internal/audit"
	"fleetdock/internal/auth"
	fleet "fleetdock/internal/fleet/domain"
	"fleetdock/internal/fleet/store"
	"fleetdock/internal/observability/metrics"
)

// Clock provides time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// Service is the authorization-enforcing facade over the domain store. The
// store itself trusts its callers; every mutation here is checked against
// the caller's role from the request context, audited and counted.
type Service struct {
	store    *store.Store
	auditLog audit.Logger
	logger   *log.Logger
	clock    Clock
}

// ServiceOption customizes the service.
type ServiceOption func(*Service)

// WithClock assigns a clock.
func WithClock(clock Clock) ServiceOption {
	return func(s *Service) {
		s.clock = clock
	}
}

// NewService constructs the fleet application service.
func NewService(st *store.Store, auditLog audit.Logger, logger *log.Logger, opts ...ServiceOption) (*Service, error) {
	if st == nil {
		return nil, errors.New("fleet: nil store")
	}
	if auditLog == nil {
		return nil, errors.New("fleet: nil audit logger")
	}
	if logger == nil {
		return nil, errors.New("fleet: nil logger")
	}
	s := &Service{store: st, auditLog: auditLog, logger: logger, clock: systemClock{}}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) allow(ctx context.Context, action auth.Action, entity, op string) error {
	if auth.Allows(auth.RoleFromContext(ctx), action) {
		return nil
	}
	metrics.ObserveMutationDenied(entity, op)
	return auth.ErrForbidden
}

// record appends an audit entry; audit failures are logged, never fatal to
// the already-committed mutation.
func (s *Service) record(ctx context.Context, action, resourceType, resourceID string) {
	entry := audit.Entry{
		ID:           audit.NewID(),
		Actor:        auth.SubjectFromContext(ctx),
		Role:         string(auth.RoleFromContext(ctx)),
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.auditLog.Log(ctx, entry); err != nil {
		s.logger.Printf("audit log error: %v", err)
	}
}

// CreateShip adds a ship. Requires the create permission.
func (s *Service) CreateShip(ctx context.Context, ship fleet.Ship) (fleet.Ship, error) {
	if err := s.allow(ctx, auth.ActionCreate, "ship", "create"); err != nil {
		return fleet.Ship{}, err
	}
	created, err := s.store.AddShip(ctx, ship)
	metrics.ObserveMutation("ship", "create", err)
	if err != nil {
		return fleet.Ship{}, err
	}
	s.record(ctx, "create", "ship", created.ID)
	return created, nil
}

// UpdateShip patches a ship. Requires the update permission.
func (s *Service) UpdateShip(ctx context.Context, id string, patch fleet.ShipPatch) (fleet.Ship, error) {
	if err := s.allow(ctx, auth.ActionUpdate, "ship", "update"); err != nil {
		return fleet.Ship{}, err
	}
	updated, err := s.store.UpdateShip(ctx, id, patch)
	metrics.ObserveMutation("ship", "update", err)
	if err != nil {
		return fleet.Ship{}, err
	}
	s.record(ctx, "update", "ship", id)
	return updated, nil
}

// DeleteShip removes a ship and its dependents. Requires the delete
// permission.
func (s *Service) DeleteShip(ctx context.Context, id string) error {
	if err := s.allow(ctx, auth.ActionDelete, "ship", "delete"); err != nil {
		return err
	}
	err := s.store.DeleteShip(ctx, id)
	metrics.ObserveMutation("ship", "delete", err)
	if err != nil {
		return err
	}
	s.record(ctx, "delete", "ship", id)
	return nil
}

// CreateComponent adds a component. Requires the create permission.
func (s *Service) CreateComponent(ctx context.Context, component fleet.Component) (fleet.Component, error) {
	if err := s.allow(ctx, auth.ActionCreate, "component", "create"); err != nil {
		return fleet.Component{}, err
	}
	created, err := s.store.AddComponent(ctx, component)
	metrics.ObserveMutation("component", "create", err)
	if err != nil {
		return fleet.Component{}, err
	}
	s.record(ctx, "create", "component", created.ID)
	return created, nil
}

// UpdateComponent patches a component. Requires the update permission.
func (s *Service) UpdateComponent(ctx context.Context, id string, patch fleet.ComponentPatch) (fleet.Component, error) {
	if err := s.allow(ctx, auth.ActionUpdate, "component", "update"); err != nil {
		return fleet.Component{}, err
	}
	updated, err := s.store.UpdateComponent(ctx, id, patch)
	metrics.ObserveMutation("component", "update", err)
	if err != nil {
		return fleet.Component{}, err
	}
	s.record(ctx, "update", "component", id)
	return updated, nil
}

// DeleteComponent removes a component and its jobs. Requires the delete
// permission.
func (s *Service) DeleteComponent(ctx context.Context, id string) error {
	if err := s.allow(ctx, auth.ActionDelete, "component", "delete"); err != nil {
		return err
	}
	err := s.store.DeleteComponent(ctx, id)
	metrics.ObserveMutation("component", "delete", err)
	if err != nil {
		return err
	}
	s.record(ctx, "delete", "component", id)
	return nil
}

// CreateJob adds a job and emits its job_created notification. Requires the
// create permission.
func (s *Service) CreateJob(ctx context.Context, job fleet.Job) (fleet.Job, error) {
	if err := s.allow(ctx, auth.ActionCreate, "job", "create"); err != nil {
		return fleet.Job{}, err
	}
	created, err := s.store.AddJob(ctx, job)
	metrics.ObserveMutation("job", "create", err)
	if err != nil {
		return fleet.Job{}, err
	}
	metrics.ObserveNotification(fleet.NotificationJobCreated)
	s.record(ctx, "create", "job", created.ID)
	return created, nil
}

// UpdateJob patches a job; a status patch emits the matching notification.
// Requires the update permission.
func (s *Service) UpdateJob(ctx context.Context, id string, patch fleet.JobPatch) (fleet.Job, error) {
	if err := s.allow(ctx, auth.ActionUpdate, "job", "update"); err != nil {
		return fleet.Job{}, err
	}
	updated, err := s.store.UpdateJob(ctx, id, patch)
	metrics.ObserveMutation("job", "update", err)
	if err != nil {
		return fleet.Job{}, err
	}
	if patch.Status != nil && updated.ID != "" {
		if *patch.Status == fleet.JobStatusCompleted {
			metrics.ObserveNotification(fleet.NotificationJobCompleted)
		} else {
			metrics.ObserveNotification(fleet.NotificationJobUpdated)
		}
	}
	s.record(ctx, "update", "job", id)
	return updated, nil
}

// DeleteJob removes a job. Requires the delete permission.
func (s *Service) DeleteJob(ctx context.Context, id string) error {
	if err := s.allow(ctx, auth.ActionDelete, "job", "delete"); err != nil {
		return err
	}
	err := s.store.DeleteJob(ctx, id)
	metrics.ObserveMutation("job", "delete", err)
	if err != nil {
		return err
	}
	s.record(ctx, "delete", "job", id)
	return nil
}

// MarkNotificationRead flags a feed entry as read. Feed management maps to
// the update permission, open to every role.
func (s *Service) MarkNotificationRead(ctx context.Context, id string) error {
	if err := s.allow(ctx, auth.ActionUpdate, "notification", "read"); err != nil {
		return err
	}
	err := s.store.MarkNotificationRead(ctx, id)
	metrics.ObserveMutation("notification", "read", err)
	return err
}

// DismissNotification removes a feed entry.
func (s *Service) DismissNotification(ctx context.Context, id string) error {
	if err := s.allow(ctx, auth.ActionUpdate, "notification", "dismiss"); err != nil {
		return err
	}
	err := s.store.DismissNotification(ctx, id)
	metrics.ObserveMutation("notification", "dismiss", err)
	return err
}

// Read passthroughs. Every role carries the read permission; the check
// still rejects unauthenticated contexts.

func (s *Service) readAllowed(ctx context.Context) error {
	if auth.Allows(auth.RoleFromContext(ctx), auth.ActionRead) {
		return nil
	}
	return auth.ErrForbidden
}

// Ships lists the ship collection.
func (s *Service) Ships(ctx context.Context) ([]fleet.Ship, error) {
	if err := s.readAllowed(ctx); err != nil {
		return nil, err
	}
	return s.store.Ships(), nil
}

// Components lists the component collection.
func (s *Service) Components(ctx context.Context) ([]fleet.Component, error) {
	if err := s.readAllowed(ctx); err != nil {
		return nil, err
	}
	return s.store.Components(), nil
}

// Jobs lists the job collection.
func (s *Service) Jobs(ctx context.Context) ([]fleet.Job, error) {
	if err := s.readAllowed(ctx); err != nil {
		return nil, err
	}
	return s.store.Jobs(), nil
}

// Notifications lists the feed, newest first.
func (s *Service) Notifications(ctx context.Context) ([]fleet.Notification, error) {
	if err := s.readAllowed(ctx); err != nil {
		return nil, err
	}
	return s.store.Notifications(), nil
}

// ShipByID looks up a ship.
func (s *Service) ShipByID(ctx context.Context, id string) (fleet.Ship, bool, error) {
	if err := s.readAllowed(ctx); err != nil {
		return fleet.Ship{}, false, err
	}
	ship, ok := s.store.ShipByID(id)
	return ship, ok, nil
}

// ComponentByID looks up a component.
func (s *Service) ComponentByID(ctx context.Context, id string) (fleet.Component, bool, error) {
	if err := s.readAllowed(ctx); err != nil {
		return fleet.Component{}, false, err
	}
	component, ok := s.store.ComponentByID(id)
	return component, ok, nil
}

// JobByID looks up a job.
func (s *Service) JobByID(ctx context.Context, id string) (fleet.Job, bool, error) {
	if err := s.readAllowed(ctx); err != nil {
		return fleet.Job{}, false, err
	}
	job, ok := s.store.JobByID(id)
	return job, ok, nil
}

// ComponentsByShip lists a ship's components.
func (s *Service) ComponentsByShip(ctx context.Context, shipID string) ([]fleet.Component, error) {
	if err := s.readAllowed(ctx); err != nil {
		return nil, err
	}
	return s.store.ComponentsByShip(shipID), nil
}

// JobsByShip lists a ship's jobs by denormalized ship id.
func (s *Service) JobsByShip(ctx context.Context, shipID string) ([]fleet.Job, error) {
	if err := s.readAllowed(ctx); err != nil {
		return nil, err
	}
	return s.store.JobsByShip(shipID), nil
}

// JobsByComponent lists a component's jobs.
func (s *Service) JobsByComponent(ctx context.Context, componentID string) ([]fleet.Job, error) {
	if err := s.readAllowed(ctx); err != nil {
		return nil, err
	}
	return s.store.JobsByComponent(componentID), nil
}
