package screen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/libremedic_admin/pkg/clinicapi"
)

func TestDetail_Load(t *testing.T) {
	backend := &mockBackend[clinicapi.Diagnosis]{
		GetFunc: func(_ context.Context, id int64) clinicapi.Envelope[clinicapi.Diagnosis] {
			return ok(clinicapi.Diagnosis{ID: id, Diagnosis: "Gripe"})
		},
	}
	d := NewDetail(Diagnoses, backend)

	got, err := d.Load(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, "Gripe", got.Diagnosis)
	assert.False(t, d.NotFound())
	assert.True(t, d.State().IsLoaded())
}

func TestDetail_AnyFailureIsNotFound(t *testing.T) {
	for _, msg := range []string{"not found", "HTTP error! status: 500", clinicapi.MsgNetworkError} {
		t.Run(msg, func(t *testing.T) {
			backend := &mockBackend[clinicapi.Diagnosis]{
				GetFunc: func(context.Context, int64) clinicapi.Envelope[clinicapi.Diagnosis] {
					return failed[clinicapi.Diagnosis](msg)
				},
			}
			d := NewDetail(Diagnoses, backend)

			_, err := d.Load(context.Background(), 3)

			assert.ErrorIs(t, err, ErrNotFound)
			assert.True(t, d.NotFound())
			assert.Equal(t, "/diagnoses", d.BackPath())
		})
	}
}
