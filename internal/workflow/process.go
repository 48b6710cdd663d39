package workflow

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/medidonate/medidonate/internal/api"
)

// RequestProcessor runs server-side allocation.
type RequestProcessor interface {
	ProcessRequests(ctx context.Context) error
}

// Refresh is a re-fetch run after a successful processing run.
type Refresh struct {
	Name string
	Fn   func(ctx context.Context) error
}

// Processor triggers allocation over pending requests. At most one run
// is in flight. A run that fails is not rolled back and triggers no
// re-fetch.
type Processor struct {
	client RequestProcessor
	opts   options
	gate   Gate
}

// NewProcessor builds a processing trigger.
func NewProcessor(c RequestProcessor, opts ...Option) *Processor {
	return &Processor{client: c, opts: buildOptions(opts)}
}

// Start takes the in-flight guard.
func (p *Processor) Start() error {
	if !p.gate.TryAcquire() {
		return ErrBusy
	}
	return nil
}

// Finish releases the guard taken by Start.
func (p *Processor) Finish() {
	p.gate.Release()
}

// Busy reports whether a run is in flight.
func (p *Processor) Busy() bool {
	return p.gate.Busy()
}

// Process issues one processing call and records the outcome. The caller
// holds the guard. Server failures read as MsgProcessFailed whatever the
// response body says; only transport errors get their own message.
func (p *Processor) Process(ctx context.Context) Outcome {
	out := Success(MsgProcessed)
	if err := p.client.ProcessRequests(ctx); err != nil {
		out = Outcome{Kind: KindFailed, Message: MsgProcessFailed, Err: err}
		var transportErr *api.TransportError
		if errors.As(err, &transportErr) {
			out.Message = NetworkErrorMessage
		}
		p.opts.logger.Warn("processing requests failed", "error", err)
	}
	p.opts.record(ctx, ProcessRequestsName, out)
	return out
}

// Run takes the guard, processes, and on success runs every refresh
// concurrently. Refresh failures are logged and do not change the outcome.
func (p *Processor) Run(ctx context.Context, refreshes ...Refresh) (Outcome, error) {
	if err := p.Start(); err != nil {
		return Outcome{}, err
	}
	defer p.Finish()

	out := p.Process(ctx)
	if out.Kind != KindSuccess {
		return out, nil
	}

	var g errgroup.Group
	for _, r := range refreshes {
		r := r
		g.Go(func() error {
			if err := r.Fn(ctx); err != nil {
				p.opts.logger.Warn("refresh failed", "refresh", r.Name, "error", err)
			}
			return nil
		})
	}
	// Every task logs its own failure and returns nil, so Wait only joins.
	_ = g.Wait()

	return out, nil
}
