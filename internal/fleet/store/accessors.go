package store

import fleet "fleetdock/internal/fleet/domain"

// Read accessors are pure and re-scan the in-memory collections on every
// call. No secondary index is maintained; the data volume is a single small
// fleet.

// Ships returns a copy of the ship collection in insertion order.
func (s *Store) Ships() []fleet.Ship {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]fleet.Ship, len(s.ships))
	copy(out, s.ships)
	return out
}

// Components returns a copy of the component collection in insertion order.
func (s *Store) Components() []fleet.Component {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]fleet.Component, len(s.components))
	copy(out, s.components)
	return out
}

// Jobs returns a copy of the job collection in insertion order.
func (s *Store) Jobs() []fleet.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]fleet.Job, len(s.jobs))
	copy(out, s.jobs)
	return out
}

// Notifications returns a copy of the feed, newest first.
func (s *Store) Notifications() []fleet.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]fleet.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// ShipByID looks up a ship.
func (s *Store) ShipByID(id string) (fleet.Ship, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ship := range s.ships {
		if ship.ID == id {
			return ship, true
		}
	}
	return fleet.Ship{}, false
}

// ComponentByID looks up a component.
func (s *Store) ComponentByID(id string) (fleet.Component, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, component := range s.components {
		if component.ID == id {
			return component, true
		}
	}
	return fleet.Component{}, false
}

// JobByID looks up a job.
func (s *Store) JobByID(id string) (fleet.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, job := range s.jobs {
		if job.ID == id {
			return job, true
		}
	}
	return fleet.Job{}, false
}

// ComponentsByShip returns the components installed on a ship.
func (s *Store) ComponentsByShip(shipID string) []fleet.Component {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []fleet.Component
	for _, component := range s.components {
		if component.ShipID == shipID {
			out = append(out, component)
		}
	}
	return out
}

// JobsByShip returns the jobs whose denormalized ship id matches.
func (s *Store) JobsByShip(shipID string) []fleet.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []fleet.Job
	for _, job := range s.jobs {
		if job.ShipID == shipID {
			out = append(out, job)
		}
	}
	return out
}

// JobsByComponent returns the jobs scheduled against a component.
func (s *Store) JobsByComponent(componentID string) []fleet.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []fleet.Job
	for _, job := range s.jobs {
		if job.ComponentID == componentID {
			out = append(out, job)
		}
	}
	return out
}
