// Package workflow implements the form workflows and the processing
// trigger. A workflow moves through
//
//	Editing → Submitting → {SuccessShown, ErrorShown} → Editing
//
// and holds a single-flight gate so at most one submission is in flight.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/medidonate/medidonate/internal/journal"
)

// ErrBusy is returned while a submission or processing run is in flight.
var ErrBusy = errors.New("operation already in progress")

// MissingFieldsError lists required fields that are empty.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// FieldError is a field whose text could not be converted.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Explain turns a Begin error into text for the form.
func Explain(err error) string {
	var missing *MissingFieldsError
	if errors.As(err, &missing) {
		return "Please fill in all required fields (" + strings.Join(missing.Fields, ", ") + ")"
	}
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		return "Please enter a whole number for " + fieldErr.Field
	}
	if errors.Is(err, ErrBusy) {
		return "A submission is already in progress"
	}
	return err.Error()
}

// State is the workflow's position in its lifecycle.
type State int

const (
	StateEditing State = iota
	StateSubmitting
	StateSuccessShown
	StateErrorShown
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateSuccessShown:
		return "success"
	case StateErrorShown:
		return "error"
	default:
		return "unknown"
	}
}

// Fields is a form's editable values.
type Fields[F any] interface {
	// Missing names the required fields that are empty.
	Missing() []string
	// Check reports values that cannot be converted for sending.
	Check() error
	// Carry returns the fields to keep after a completed interaction.
	Carry() F
}

// Recorder persists interaction outcomes. It is satisfied by
// *journal.Journal.
type Recorder interface {
	Record(ctx context.Context, e journal.Entry) (journal.Entry, error)
}

// SendFunc performs the network call for a snapshot of the fields.
type SendFunc[F any] func(ctx context.Context, fields F) Outcome

// Option configures a Workflow or Processor.
type Option func(*options)

type options struct {
	recorder Recorder
	logger   *slog.Logger
}

// WithRecorder records every outcome to r.
func WithRecorder(r Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// WithLogger sets the logger. The default is slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) record(ctx context.Context, name string, out Outcome) {
	if out.Err != nil {
		o.logger.Warn("interaction failed", "workflow", name, "error", out.Err)
	} else {
		o.logger.Info("interaction completed", "workflow", name, "kind", out.Kind.String())
	}

	if o.recorder == nil {
		return
	}

	if _, err := o.recorder.Record(ctx, journal.Entry{
		Workflow: name,
		Kind:     out.Kind.String(),
		Message:  out.Message,
	}); err != nil {
		o.logger.Warn("recording outcome", "workflow", name, "error", err)
	}
}

// Workflow is a form submission state machine.
type Workflow[F Fields[F]] struct {
	name string
	send SendFunc[F]
	opts options
	gate Gate

	mu      sync.Mutex
	state   State
	fields  F
	outcome Outcome
}

// New creates a workflow starting in Editing with the given initial fields.
func New[F Fields[F]](name string, initial F, send SendFunc[F], opts ...Option) *Workflow[F] {
	return &Workflow[F]{
		name:   name,
		send:   send,
		opts:   buildOptions(opts),
		fields: initial,
	}
}

// Name identifies the workflow in logs and the journal.
func (w *Workflow[F]) Name() string {
	return w.name
}

// State returns the current state.
func (w *Workflow[F]) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Fields returns a copy of the current field values.
func (w *Workflow[F]) Fields() F {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fields
}

// Outcome returns the last shown outcome.
func (w *Workflow[F]) Outcome() Outcome {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.outcome
}

// Busy reports whether a submission is in flight.
func (w *Workflow[F]) Busy() bool {
	return w.gate.Busy()
}

// Edit applies fn to the fields. Editing is refused while submitting;
// a shown result is dismissed and the workflow returns to Editing.
func (w *Workflow[F]) Edit(fn func(*F)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateSubmitting {
		return ErrBusy
	}

	w.state = StateEditing
	w.outcome = Outcome{}
	fn(&w.fields)
	return nil
}

// Dismiss returns a shown result to Editing without changing fields.
func (w *Workflow[F]) Dismiss() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateSuccessShown || w.state == StateErrorShown {
		w.state = StateEditing
	}
}

// Begin validates the fields and takes the single-flight gate. It returns
// the snapshot to send. ErrBusy, *MissingFieldsError and *FieldError leave
// the state unchanged.
func (w *Workflow[F]) Begin() (F, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var zero F

	if missing := w.fields.Missing(); len(missing) > 0 {
		return zero, &MissingFieldsError{Fields: missing}
	}

	if err := w.fields.Check(); err != nil {
		return zero, err
	}

	if !w.gate.TryAcquire() {
		return zero, ErrBusy
	}

	w.state = StateSubmitting
	w.outcome = Outcome{}
	return w.fields, nil
}

// Send performs the network call for a snapshot returned by Begin and
// records the outcome. It does not change the workflow's state; call
// Complete with the result. Send is safe to run off the UI goroutine.
func (w *Workflow[F]) Send(ctx context.Context, snapshot F) Outcome {
	out := w.send(ctx, snapshot)
	w.opts.record(ctx, w.name, out)
	return out
}

// Complete shows the outcome and releases the gate. Completed interactions
// reset the fields through Carry; failures keep them.
func (w *Workflow[F]) Complete(out Outcome) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateSubmitting {
		return
	}

	w.outcome = out
	if out.Kind == KindSuccess {
		w.state = StateSuccessShown
	} else {
		w.state = StateErrorShown
	}

	if out.Completed() {
		w.fields = w.fields.Carry()
	}

	w.gate.Release()
}

// Submit runs Begin, Send and Complete in sequence.
func (w *Workflow[F]) Submit(ctx context.Context) (Outcome, error) {
	snapshot, err := w.Begin()
	if err != nil {
		return Outcome{}, err
	}

	out := w.Send(ctx, snapshot)
	w.Complete(out)
	return out, nil
}
