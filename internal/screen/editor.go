package screen

import (
	"context"
	"fmt"

	"github.com/Alijeyrad/libremedic_admin/internal/form"
)

// Editor is the create or edit screen of one resource.
type Editor[T, F any] struct {
	kind    Kind[T, F]
	backend Backend[T]
	notify  Notifier
	id      int64
	form    *form.Form[F]
}

// NewCreator returns an editor for a new record.
func NewCreator[T, F any](kind Kind[T, F], backend Backend[T], n Notifier) *Editor[T, F] {
	if n == nil {
		n = Discard
	}
	return &Editor[T, F]{
		kind:    kind,
		backend: backend,
		notify:  n,
		form:    form.New(kind.Blank(), kind.Schema(false)),
	}
}

// NewUpdater returns an editor for record id without fetching it, for
// callers that already hold the full form record.
func NewUpdater[T, F any](kind Kind[T, F], backend Backend[T], n Notifier, id int64) *Editor[T, F] {
	e := NewCreator(kind, backend, n)
	e.id = id
	e.form = form.New(kind.Blank(), kind.Schema(true))
	return e
}

// OpenEditor fetches record id and returns an editor pre-populated with it.
func OpenEditor[T, F any](ctx context.Context, kind Kind[T, F], backend Backend[T], n Notifier, id int64) (*Editor[T, F], error) {
	if n == nil {
		n = Discard
	}
	env := backend.Get(ctx, id)
	if !env.Success {
		failure(n, RequestMessage(env.Error, kind.Labels.LoadFailed))
		return nil, fmt.Errorf("%w: %s %d", ErrNotFound, kind.Name, id)
	}

	f := form.New(kind.Blank(), kind.Schema(true))
	f.SetData(kind.ToForm(env.Data))

	return &Editor[T, F]{kind: kind, backend: backend, notify: n, id: id, form: f}, nil
}

func (e *Editor[T, F]) Form() *form.Form[F] { return e.form }

func (e *Editor[T, F]) Editing() bool { return e.id != 0 }

func (e *Editor[T, F]) ID() int64 { return e.id }

// Submit validates the form and, only when it is valid, creates or updates
// the record. It returns the path to navigate to on success.
func (e *Editor[T, F]) Submit(ctx context.Context) (string, error) {
	if e.form.Submitting() {
		return "", ErrBusy
	}

	if !e.form.ValidateForm() {
		failure(e.notify, MsgFixErrors)
		return "", ErrValidation
	}

	payload, err := e.kind.ToPayload(e.form.Data(), e.Editing())
	if err != nil {
		failure(e.notify, MsgFixErrors)
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	e.form.SetSubmitting(true)
	defer e.form.SetSubmitting(false)

	labels := e.kind.Labels
	if e.Editing() {
		env := e.backend.Update(ctx, e.id, payload)
		if !env.Success {
			msg := RequestMessage(env.Error, labels.UpdateFailed)
			failure(e.notify, msg)
			return "", fmt.Errorf("%w: %s", ErrRequest, msg)
		}
		success(e.notify, labels.Updated)
		return e.kind.ListPath(), nil
	}

	env := e.backend.Create(ctx, payload)
	if !env.Success {
		msg := RequestMessage(env.Error, labels.CreateFailed)
		failure(e.notify, msg)
		return "", fmt.Errorf("%w: %s", ErrRequest, msg)
	}
	success(e.notify, labels.Created)
	return e.kind.ListPath(), nil
}
