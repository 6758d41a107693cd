// Package fetchstate holds the load state of one screen and guards it
// against results of superseded requests.
package fetchstate

import (
	"context"
	"sync"
)

type Phase int

const (
	Idle Phase = iota
	Loading
	Loaded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is one of Idle, Loading, Loaded(Data) or Failed(Err). Data is only
// meaningful when Phase is Loaded and Err only when Phase is Failed.
type State[T any] struct {
	Phase Phase
	Data  T
	Err   string
}

func (s State[T]) IsLoaded() bool { return s.Phase == Loaded }
func (s State[T]) IsFailed() bool { return s.Phase == Failed }

// Token identifies one Begin call. The zero Token never matches.
type Token uint64

// Tracker owns one State. Each Begin supersedes the previous request:
// its context is cancelled and its Resolve/Reject are ignored.
type Tracker[T any] struct {
	mu     sync.Mutex
	state  State[T]
	seq    Token
	cancel context.CancelFunc
	closed bool
}

func NewTracker[T any]() *Tracker[T] {
	return &Tracker[T]{}
}

// Begin moves to Loading and returns the context the fetch must run with.
// After Close the returned context is already cancelled.
func (t *Tracker[T]) Begin(ctx context.Context) (context.Context, Token) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}

	cctx, cancel := context.WithCancel(ctx)
	if t.closed {
		cancel()
		return cctx, 0
	}

	t.seq++
	t.cancel = cancel
	t.state = State[T]{Phase: Loading}
	return cctx, t.seq
}

// Resolve stores data if tok is still the active request.
func (t *Tracker[T]) Resolve(tok Token, data T) bool {
	return t.finish(tok, State[T]{Phase: Loaded, Data: data})
}

// Reject stores msg if tok is still the active request.
func (t *Tracker[T]) Reject(tok Token, msg string) bool {
	return t.finish(tok, State[T]{Phase: Failed, Err: msg})
}

func (t *Tracker[T]) finish(tok Token, next State[T]) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || tok == 0 || tok != t.seq {
		return false
	}
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.state = next
	return true
}

func (t *Tracker[T]) State() State[T] {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Close cancels the in-flight request. Later results are dropped.
func (t *Tracker[T]) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closed = true
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
