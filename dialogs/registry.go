// Package dialogs keeps the server-side state of open tender dialogs.
//
// Every dialog owns a context that is cancelled when the dialog is closed or
// swept, so reference loads and submissions started on its behalf are
// aborted with it.
package dialogs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase/tools/store"

	"tenderdesk/services"
)

var (
	// ErrDialogNotFound is returned for unknown, closed or expired dialog ids.
	ErrDialogNotFound = errors.New("dialog not found")
	// ErrSubmitInFlight is returned when a dialog is submitted twice before
	// the first request resolved.
	ErrSubmitInFlight = errors.New("a submission is already in progress")
)

// Kind tells the two dialog flavours apart.
type Kind string

const (
	KindResale Kind = "resale"
	KindTender Kind = "tender"
)

// Dialog is one open modal. Form state is only touched inside Do.
type Dialog struct {
	ID      string
	Kind    Kind
	Session services.Session

	// Resale dialogs
	Resale  *services.ResaleForm
	RefData services.ReferenceData

	// Tender dialogs
	Tender *services.TenderForm

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	lastSeen time.Time
	inFlight atomic.Bool
}

// Context is cancelled when the dialog closes.
func (d *Dialog) Context() context.Context {
	return d.ctx
}

// Closed reports whether the dialog was closed or swept.
func (d *Dialog) Closed() bool {
	return d.ctx.Err() != nil
}

// Do runs fn with exclusive access to the dialog's form state.
func (d *Dialog) Do(fn func() error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Closed() {
		return ErrDialogNotFound
	}
	d.lastSeen = time.Now()
	return fn()
}

// BeginSubmit claims the dialog's single submission slot.
func (d *Dialog) BeginSubmit() error {
	if !d.inFlight.CompareAndSwap(false, true) {
		return ErrSubmitInFlight
	}
	return nil
}

// EndSubmit releases the submission slot.
func (d *Dialog) EndSubmit() {
	d.inFlight.Store(false)
}

// Submitting reports whether a submission is running.
func (d *Dialog) Submitting() bool {
	return d.inFlight.Load()
}

func (d *Dialog) idleSince() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastSeen
}

// Registry holds every open dialog keyed by id.
type Registry struct {
	base    context.Context
	dialogs *store.Store[string, *Dialog]
}

// NewRegistry returns an empty registry. Dialog contexts derive from base.
func NewRegistry(base context.Context) *Registry {
	return &Registry{
		base:    base,
		dialogs: store.New[string, *Dialog](nil),
	}
}

// Open creates a dialog, lets setup populate it and then registers it.
// setup may use d.Context() for requests made on the dialog's behalf.
func (r *Registry) Open(kind Kind, session services.Session, setup func(d *Dialog)) *Dialog {
	ctx, cancel := context.WithCancel(r.base)
	d := &Dialog{
		ID:       uuid.NewString(),
		Kind:     kind,
		Session:  session,
		ctx:      ctx,
		cancel:   cancel,
		lastSeen: time.Now(),
	}
	if setup != nil {
		setup(d)
	}
	r.dialogs.Set(d.ID, d)
	return d
}

// Get returns an open dialog of the given kind. An empty kind matches any.
func (r *Registry) Get(id string, kind Kind) (*Dialog, error) {
	d, ok := r.dialogs.GetOk(id)
	if !ok || d.Closed() || (kind != "" && d.Kind != kind) {
		return nil, ErrDialogNotFound
	}
	return d, nil
}

// Close cancels the dialog's context and forgets it. It reports whether the
// dialog was open.
func (r *Registry) Close(id string) bool {
	d, ok := r.dialogs.GetOk(id)
	if !ok {
		return false
	}
	r.dialogs.Remove(id)
	d.cancel()
	return true
}

// Sweep closes dialogs idle for longer than maxIdle and returns how many.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	swept := 0
	for id, d := range r.dialogs.GetAll() {
		if d.Submitting() || d.idleSince().After(cutoff) {
			continue
		}
		if r.Close(id) {
			swept++
		}
	}
	return swept
}

// Len returns the number of open dialogs.
func (r *Registry) Len() int {
	return r.dialogs.Length()
}
