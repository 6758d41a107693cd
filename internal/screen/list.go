package screen

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/Alijeyrad/libremedic_admin/internal/fetchstate"
)

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// Confirmed approves every prompt. The HTTP front-end uses it once the
// caller has sent confirm=true.
var Confirmed Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })

// List is the collection screen of one resource.
type List[T, F any] struct {
	kind    Kind[T, F]
	backend Backend[T]
	notify  Notifier
	state   *fetchstate.Tracker[[]T]

	mu       sync.Mutex
	deleting bool
}

func NewList[T, F any](kind Kind[T, F], backend Backend[T], n Notifier) *List[T, F] {
	if n == nil {
		n = Discard
	}
	return &List[T, F]{
		kind:    kind,
		backend: backend,
		notify:  n,
		state:   fetchstate.NewTracker[[]T](),
	}
}

// Load fetches the whole collection once.
func (l *List[T, F]) Load(ctx context.Context) fetchstate.State[[]T] {
	ctx, tok := l.state.Begin(ctx)

	env := l.backend.List(ctx)
	if !env.Success {
		msg := RequestMessage(env.Error, l.kind.Labels.LoadFailed)
		if l.state.Reject(tok, msg) {
			failure(l.notify, msg)
		}
		return l.state.State()
	}

	items := env.Data
	if items == nil {
		items = []T{}
	}
	l.state.Resolve(tok, items)
	return l.state.State()
}

// Retry reloads after a failure.
func (l *List[T, F]) Retry(ctx context.Context) fetchstate.State[[]T] { return l.Load(ctx) }

func (l *List[T, F]) State() fetchstate.State[[]T] { return l.state.State() }

// Filter returns the loaded records matching term, ignoring case. A blank
// term returns everything.
func (l *List[T, F]) Filter(term string) []T {
	st := l.state.State()
	if !st.IsLoaded() {
		return nil
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || l.kind.Match == nil {
		return st.Data
	}
	return lo.Filter(st.Data, func(item T, _ int) bool {
		return l.kind.Match(item, term)
	})
}

// Delete asks for confirmation, deletes id and reloads the collection once.
func (l *List[T, F]) Delete(ctx context.Context, id int64, confirm Confirmer) error {
	l.mu.Lock()
	if l.deleting {
		l.mu.Unlock()
		return ErrBusy
	}
	l.deleting = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.deleting = false
		l.mu.Unlock()
	}()

	if confirm == nil || !confirm.Confirm(ctx, l.kind.Labels.DeletePrompt) {
		return ErrNotConfirmed
	}

	env := l.backend.Delete(ctx, id)
	if !env.Success {
		msg := RequestMessage(env.Error, l.kind.Labels.DeleteFailed)
		failure(l.notify, msg)
		return fmt.Errorf("%w: %s", ErrRequest, msg)
	}

	success(l.notify, l.kind.Labels.Deleted)
	l.Load(ctx)
	return nil
}

// Stats summarizes the loaded records, or returns nil.
func (l *List[T, F]) Stats(now func() time.Time) any {
	st := l.state.State()
	if !st.IsLoaded() || l.kind.Stats == nil {
		return nil
	}
	return l.kind.Stats(st.Data, now())
}

// Close cancels an in-flight load.
func (l *List[T, F]) Close() { l.state.Close() }
