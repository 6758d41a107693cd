package screen

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/Alijeyrad/libremedic_admin/pkg/clinicapi"
)

var _ Backend[clinicapi.Patient] = (*mockBackend[clinicapi.Patient])(nil)

// mockBackend records calls and answers from its Func fields. A nil Func
// answers with a successful empty envelope.
type mockBackend[T any] struct {
	ListFunc   func(ctx context.Context) clinicapi.Envelope[[]T]
	GetFunc    func(ctx context.Context, id int64) clinicapi.Envelope[T]
	CreateFunc func(ctx context.Context, payload any) clinicapi.Envelope[T]
	UpdateFunc func(ctx context.Context, id int64, payload any) clinicapi.Envelope[T]
	DeleteFunc func(ctx context.Context, id int64) clinicapi.Envelope[json.RawMessage]

	ListCallCount   int32
	GetCallCount    int32
	CreateCallCount int32
	UpdateCallCount int32
	DeleteCallCount int32

	mu         sync.Mutex
	deletedIDs []int64
	payloads   []any
}

func (m *mockBackend[T]) List(ctx context.Context) clinicapi.Envelope[[]T] {
	atomic.AddInt32(&m.ListCallCount, 1)
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return clinicapi.Envelope[[]T]{Success: true}
}

func (m *mockBackend[T]) Get(ctx context.Context, id int64) clinicapi.Envelope[T] {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return clinicapi.Envelope[T]{Success: true}
}

func (m *mockBackend[T]) Create(ctx context.Context, payload any) clinicapi.Envelope[T] {
	atomic.AddInt32(&m.CreateCallCount, 1)
	m.record(payload)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, payload)
	}
	return clinicapi.Envelope[T]{Success: true}
}

func (m *mockBackend[T]) Update(ctx context.Context, id int64, payload any) clinicapi.Envelope[T] {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	m.record(payload)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, payload)
	}
	return clinicapi.Envelope[T]{Success: true}
}

func (m *mockBackend[T]) Delete(ctx context.Context, id int64) clinicapi.Envelope[json.RawMessage] {
	atomic.AddInt32(&m.DeleteCallCount, 1)
	m.mu.Lock()
	m.deletedIDs = append(m.deletedIDs, id)
	m.mu.Unlock()
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return clinicapi.Envelope[json.RawMessage]{Success: true}
}

func (m *mockBackend[T]) record(payload any) {
	m.mu.Lock()
	m.payloads = append(m.payloads, payload)
	m.mu.Unlock()
}

func (m *mockBackend[T]) calls(counter *int32) int { return int(atomic.LoadInt32(counter)) }

func ok[T any](data T) clinicapi.Envelope[T] {
	return clinicapi.Envelope[T]{Success: true, Data: data}
}

func failed[T any](msg string) clinicapi.Envelope[T] {
	return clinicapi.Envelope[T]{Success: false, Error: msg}
}

type countingConfirmer struct {
	answer  bool
	prompts []string
}

func (c *countingConfirmer) Confirm(_ context.Context, prompt string) bool {
	c.prompts = append(c.prompts, prompt)
	return c.answer
}
