// Package repository implements the in-memory activity registry.
// State lives for the lifetime of the process and is never persisted.
package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Shivanand-hulikatti/activity-signup/internal/model"
)

// ErrNotFound is returned when a requested activity does not exist.
var ErrNotFound = errors.New("activity not found")

// ErrAlreadyRegistered is returned when the same email signs up twice.
var ErrAlreadyRegistered = errors.New("student already signed up for this activity")

// ErrParticipantNotFound is returned when unregistering an email that is not
// on the roster. It matches ErrNotFound under errors.Is.
var ErrParticipantNotFound = fmt.Errorf("student not registered for this activity: %w", ErrNotFound)

// ErrActivityFull is returned when capacity is enforced and no spots remain.
var ErrActivityFull = errors.New("activity is full")

// Options tune registry behaviour.
type Options struct {
	// EnforceCapacity rejects signups once max_participants is reached.
	EnforceCapacity bool
}

type entry struct {
	mu       sync.Mutex
	activity model.Activity
}

// ActivityRepository holds every activity keyed by name.
//
// The set of activities is fixed at construction, so the index map is never
// written after NewActivityRepository returns and needs no lock. Each roster
// is guarded by its own mutex, which serialises the check-then-mutate
// sequence in Signup and Unregister per activity.
type ActivityRepository struct {
	order   []string
	entries map[string]*entry
	opts    Options
}

// NewActivityRepository builds a registry from seed. Later duplicates of a
// name replace earlier ones but keep the first position.
func NewActivityRepository(seed []model.Activity, opts Options) *ActivityRepository {
	r := &ActivityRepository{
		entries: make(map[string]*entry, len(seed)),
		opts:    opts,
	}
	for _, a := range seed {
		if _, ok := r.entries[a.Name]; !ok {
			r.order = append(r.order, a.Name)
		}
		r.entries[a.Name] = &entry{activity: a.Clone()}
	}
	return r
}

// List returns a snapshot of all activities in seed order.
func (r *ActivityRepository) List(ctx context.Context) ([]model.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]model.Activity, 0, len(r.order))
	for _, name := range r.order {
		e := r.entries[name]
		e.mu.Lock()
		out = append(out, e.activity.Clone())
		e.mu.Unlock()
	}
	return out, nil
}

// Get returns a snapshot of a single activity or ErrNotFound.
func (r *ActivityRepository) Get(ctx context.Context, name string) (*model.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e, ok := r.entries[name]
	if !ok {
		return nil, ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	a := e.activity.Clone()
	return &a, nil
}

// Signup appends email to the activity's roster.
func (r *ActivityRepository) Signup(ctx context.Context, name, email string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e, ok := r.entries[name]
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.activity.HasParticipant(email) {
		return ErrAlreadyRegistered
	}
	if r.opts.EnforceCapacity && e.activity.IsFull() {
		return ErrActivityFull
	}
	e.activity.Participants = append(e.activity.Participants, email)
	return nil
}

// Unregister removes email from the activity's roster, keeping the order of
// the remaining participants.
func (r *ActivityRepository) Unregister(ctx context.Context, name, email string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e, ok := r.entries[name]
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ps := e.activity.Participants
	for i, p := range ps {
		if p == email {
			e.activity.Participants = append(ps[:i:i], ps[i+1:]...)
			return nil
		}
	}
	return ErrParticipantNotFound
}
