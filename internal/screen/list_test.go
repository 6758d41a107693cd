package screen

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/libremedic_admin/internal/fetchstate"
	"github.com/Alijeyrad/libremedic_admin/pkg/clinicapi"
)

func samplePatients() []clinicapi.Patient {
	return []clinicapi.Patient{
		{ID: 1, FirstName: "María", LastName: "González", Email: "maria@example.com", Phone: "612345678", Gender: "female"},
		{ID: 2, FirstName: "Carlos", LastName: "Rodríguez", Email: "carlos@example.com", Phone: "699111222", Gender: "male"},
		{ID: 3, FirstName: "Laura", LastName: "Martín", Email: "laura@clinica.es", Phone: "+34 600 000 000", Gender: "female"},
	}
}

func TestList_Load(t *testing.T) {
	backend := &mockBackend[clinicapi.Patient]{
		ListFunc: func(context.Context) clinicapi.Envelope[[]clinicapi.Patient] { return ok(samplePatients()) },
	}
	l := NewList(Patients, backend, nil)

	st := l.Load(context.Background())

	require.True(t, st.IsLoaded())
	assert.Len(t, st.Data, 3)
	assert.Equal(t, 1, backend.calls(&backend.ListCallCount))
}

func TestList_LoadFailureNotifies(t *testing.T) {
	backend := &mockBackend[clinicapi.Patient]{
		ListFunc: func(context.Context) clinicapi.Envelope[[]clinicapi.Patient] {
			return failed[[]clinicapi.Patient](clinicapi.MsgNetworkError)
		},
	}
	notices := &Collector{}
	l := NewList(Patients, backend, notices)

	st := l.Load(context.Background())

	assert.Equal(t, fetchstate.Failed, st.Phase)
	assert.Equal(t, MsgConnection, st.Err)
	assert.Equal(t, []Notice{{Level: LevelError, Message: MsgConnection}}, notices.Drain())

	backend.ListFunc = func(context.Context) clinicapi.Envelope[[]clinicapi.Patient] { return ok(samplePatients()) }
	assert.True(t, l.Retry(context.Background()).IsLoaded())
}

func TestList_EmptyCollection(t *testing.T) {
	l := NewList(Patients, &mockBackend[clinicapi.Patient]{}, nil)

	st := l.Load(context.Background())

	require.True(t, st.IsLoaded())
	assert.NotNil(t, st.Data)
	assert.Empty(t, l.Filter(""))
}

func TestList_Filter(t *testing.T) {
	backend := &mockBackend[clinicapi.Patient]{
		ListFunc: func(context.Context) clinicapi.Envelope[[]clinicapi.Patient] { return ok(samplePatients()) },
	}
	l := NewList(Patients, backend, nil)

	assert.Nil(t, l.Filter("maría"), "nothing is filtered before a load")

	l.Load(context.Background())

	tests := []struct {
		term string
		want []int64
	}{
		{"", []int64{1, 2, 3}},
		{"  ", []int64{1, 2, 3}},
		{"MARÍA", []int64{1}},
		{"carlos rod", []int64{2}},
		{"clinica.es", []int64{3}},
		{"699", []int64{2}},
		{"example", []int64{1, 2}},
		{"nadie", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got := []int64{}
			for _, p := range l.Filter(tt.term) {
				got = append(got, p.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, 1, backend.calls(&backend.ListCallCount), "filtering never fetches")
}

func TestList_DeleteConfirmed(t *testing.T) {
	backend := &mockBackend[clinicapi.Patient]{
		ListFunc: func(context.Context) clinicapi.Envelope[[]clinicapi.Patient] { return ok(samplePatients()) },
	}
	notices := &Collector{}
	l := NewList(Patients, backend, notices)
	l.Load(context.Background())

	confirm := &countingConfirmer{answer: true}
	err := l.Delete(context.Background(), 2, confirm)

	require.NoError(t, err)
	assert.Equal(t, 1, backend.calls(&backend.DeleteCallCount))
	assert.Equal(t, []int64{2}, backend.deletedIDs)
	assert.Equal(t, 2, backend.calls(&backend.ListCallCount), "exactly one reload after delete")
	assert.Equal(t, []string{Patients.Labels.DeletePrompt}, confirm.prompts)
	assert.Equal(t, []Notice{{Level: LevelSuccess, Message: "Paciente eliminado exitosamente!"}}, notices.Drain())
}

func TestList_DeleteDeclined(t *testing.T) {
	backend := &mockBackend[clinicapi.Patient]{}
	l := NewList(Patients, backend, nil)

	err := l.Delete(context.Background(), 2, &countingConfirmer{answer: false})
	assert.ErrorIs(t, err, ErrNotConfirmed)

	err = l.Delete(context.Background(), 2, nil)
	assert.ErrorIs(t, err, ErrNotConfirmed)

	assert.Zero(t, backend.calls(&backend.DeleteCallCount))
	assert.Zero(t, backend.calls(&backend.ListCallCount))
}

func TestList_DeleteFailureDoesNotReload(t *testing.T) {
	backend := &mockBackend[clinicapi.Patient]{
		DeleteFunc: func(context.Context, int64) clinicapi.Envelope[json.RawMessage] {
			return failed[json.RawMessage]("patient has appointments")
		},
	}
	notices := &Collector{}
	l := NewList(Patients, backend, notices)

	err := l.Delete(context.Background(), 7, Confirmed)

	assert.ErrorIs(t, err, ErrRequest)
	assert.Zero(t, backend.calls(&backend.ListCallCount))
	assert.Equal(t, []Notice{{Level: LevelError, Message: "patient has appointments"}}, notices.Drain())
}

func TestList_DeleteWhileDeletingIsBusy(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	backend := &mockBackend[clinicapi.Patient]{
		DeleteFunc: func(context.Context, int64) clinicapi.Envelope[json.RawMessage] {
			close(started)
			<-release
			return ok(json.RawMessage(nil))
		},
	}
	l := NewList(Patients, backend, nil)

	done := make(chan error, 1)
	go func() { done <- l.Delete(context.Background(), 1, Confirmed) }()
	<-started

	assert.ErrorIs(t, l.Delete(context.Background(), 2, Confirmed), ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, backend.calls(&backend.DeleteCallCount))
}

func TestList_StaleLoadDropped(t *testing.T) {
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	backend := &mockBackend[clinicapi.Patient]{
		ListFunc: func(context.Context) clinicapi.Envelope[[]clinicapi.Patient] {
			if atomic.AddInt32(&calls, 1) == 1 {
				close(started)
				<-release
				return ok(samplePatients()[:1])
			}
			return ok(samplePatients())
		},
	}
	l := NewList(Patients, backend, nil)

	done := make(chan struct{})
	go func() {
		l.Load(context.Background())
		close(done)
	}()
	<-started

	l.Load(context.Background())
	close(release)
	<-done

	assert.Len(t, l.State().Data, 3, "the superseded result must not overwrite the newer one")
}

func TestList_CloseDropsResult(t *testing.T) {
	backend := &mockBackend[clinicapi.Patient]{}
	l := NewList(Patients, backend, nil)
	backend.ListFunc = func(ctx context.Context) clinicapi.Envelope[[]clinicapi.Patient] {
		l.Close()
		return ok(samplePatients())
	}

	st := l.Load(context.Background())
	assert.Equal(t, fetchstate.Loading, st.Phase)
}

func TestList_Stats(t *testing.T) {
	backend := &mockBackend[clinicapi.Patient]{
		ListFunc: func(context.Context) clinicapi.Envelope[[]clinicapi.Patient] { return ok(samplePatients()) },
	}
	l := NewList(Patients, backend, nil)
	now := func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }

	assert.Nil(t, l.Stats(now))

	l.Load(context.Background())
	st, isPatientStats := l.Stats(now).(PatientStats)
	require.True(t, isPatientStats)
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 1, st.Male)
}
