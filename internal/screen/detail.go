package screen

import (
	"context"
	"fmt"

	"github.com/Alijeyrad/libremedic_admin/internal/fetchstate"
)

// Detail is the read-only screen of one record. Any failure leaves it in
// the not-found state.
type Detail[T, F any] struct {
	kind    Kind[T, F]
	backend Backend[T]
	state   *fetchstate.Tracker[T]
}

func NewDetail[T, F any](kind Kind[T, F], backend Backend[T]) *Detail[T, F] {
	return &Detail[T, F]{kind: kind, backend: backend, state: fetchstate.NewTracker[T]()}
}

func (d *Detail[T, F]) Load(ctx context.Context, id int64) (T, error) {
	ctx, tok := d.state.Begin(ctx)

	env := d.backend.Get(ctx, id)
	if !env.Success {
		d.state.Reject(tok, RequestMessage(env.Error, d.kind.Labels.LoadFailed))
		var zero T
		return zero, fmt.Errorf("%w: %s %d", ErrNotFound, d.kind.Name, id)
	}

	d.state.Resolve(tok, env.Data)
	return env.Data, nil
}

func (d *Detail[T, F]) State() fetchstate.State[T] { return d.state.State() }

// NotFound reports whether the last load failed.
func (d *Detail[T, F]) NotFound() bool { return d.state.State().IsFailed() }

// BackPath is the link shown on the not-found panel.
func (d *Detail[T, F]) BackPath() string { return d.kind.ListPath() }

func (d *Detail[T, F]) Close() { d.state.Close() }
