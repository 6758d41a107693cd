package clinicapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/libremedic_admin/pkg/reqctx"
)

type failingDoer struct {
	calls int
}

func (f *failingDoer) Do(*http.Request) (*http.Response, error) {
	f.calls++
	return nil, errors.New("dial tcp 127.0.0.1:5001: connect: connection refused")
}

type seenRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *[]seenRequest) {
	t.Helper()
	var seen []seenRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		seen = append(seen, seenRequest{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone(), Body: b})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func TestGet_NotFoundUsesServerMessage(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusNotFound, `{"message":"not found"}`)
	c := New(srv.URL)

	env := Get[Patient](context.Background(), c, PatientPath(5))

	assert.False(t, env.Success)
	assert.Equal(t, "not found", env.Error)
}

func TestGet_ErrorFieldFallback(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusBadRequest, `{"error":"invalid id"}`)
	c := New(srv.URL)

	env := c.Patients().Get(context.Background(), 1)

	assert.False(t, env.Success)
	assert.Equal(t, "invalid id", env.Error)
}

func TestGet_GenericStatusMessage(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusInternalServerError, `<html>boom</html>`)
	c := New(srv.URL)

	env := c.Patients().List(context.Background())

	assert.False(t, env.Success)
	assert.Equal(t, "HTTP error! status: 500", env.Error)
}

func TestGet_NetworkFailureResolvesToEnvelope(t *testing.T) {
	doer := &failingDoer{}
	c := New("http://localhost:5001/api", WithHTTPClient(doer))

	env := c.Patients().Get(context.Background(), 5)

	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
	assert.Equal(t, MsgNetworkError, env.Error)
	assert.Equal(t, 1, doer.calls, "client must not retry")
}

func TestGet_UnwrapsDataKey(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"message":"ok","data":{"id":7,"firstName":"María"}}`)
	c := New(srv.URL)

	env := c.Patients().Get(context.Background(), 7)

	require.True(t, env.Success)
	assert.Equal(t, int64(7), env.Data.ID)
	assert.Equal(t, "María", env.Data.FirstName)
	assert.Equal(t, "ok", env.Message)
}

func TestGet_PassesBarePayloadThrough(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"id":7,"firstName":"María"}`)
	c := New(srv.URL)

	env := Get[map[string]any](context.Background(), c, PatientPath(7))

	require.True(t, env.Success)
	assert.Equal(t, "María", env.Data["firstName"])
	assert.EqualValues(t, 7, env.Data["id"])
}

func TestGet_UnwrapsOnlyOneLevel(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"data":{"data":{"id":1}}}`)
	c := New(srv.URL)

	env := Get[map[string]any](context.Background(), c, PathHealth)

	require.True(t, env.Success)
	inner, ok := env.Data["data"].(map[string]any)
	require.True(t, ok, "second level must stay nested")
	assert.EqualValues(t, 1, inner["id"])
}

func TestGet_FalsyDataKeepsWholePayload(t *testing.T) {
	tests := []struct {
		name string
		body string
		want any
	}{
		{"null", `{"data":null,"status":"ok"}`, nil},
		{"false", `{"data":false,"status":"ok"}`, false},
		{"zero", `{"data":0,"status":"ok"}`, float64(0)},
		{"empty string", `{"data":"","status":"ok"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, http.StatusOK, tt.body)
			c := New(srv.URL)

			env := Get[map[string]any](context.Background(), c, PathHealth)

			require.True(t, env.Success)
			assert.Equal(t, "ok", env.Data["status"])
			assert.Equal(t, tt.want, env.Data["data"])
		})
	}

	t.Run("empty list still unwraps", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusOK, `{"data":[]}`)
		env := Get[[]Patient](context.Background(), New(srv.URL), PathPatients)

		require.True(t, env.Success)
		assert.Empty(t, env.Data)
	})
}

func TestList_UnwrapsCollection(t *testing.T) {
	srv, seen := newTestServer(t, http.StatusOK, `{"message":"ok","data":[{"id":1},{"id":2}]}`)
	c := New(srv.URL + "/api/")

	env := c.Prescriptions().List(context.Background())

	require.True(t, env.Success)
	assert.Len(t, env.Data, 2)
	require.Len(t, *seen, 1)
	assert.Equal(t, "/api/prescriptions", (*seen)[0].Path)
}

func TestWrappedMode_FailsLoudlyOnBarePayload(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"id":3}`)
	c := New(srv.URL, WithEnvelopeMode(EnvelopeWrapped))

	env := c.MedicalCenters().Get(context.Background(), 3)

	assert.False(t, env.Success)
	assert.Equal(t, MsgUnexpectedEnvelope, env.Error)
}

func TestBareMode_NeverUnwraps(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"data":{"id":3}}`)
	c := New(srv.URL, WithEnvelopeMode(EnvelopeBare))

	env := Get[map[string]any](context.Background(), c, MedicalCenterPath(3))

	require.True(t, env.Success)
	assert.Contains(t, env.Data, "data")
}

func TestInvalidJSONOnSuccessIsFailure(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `not json`)
	c := New(srv.URL)

	env := c.Users().List(context.Background())

	assert.False(t, env.Success)
	assert.Equal(t, MsgNetworkError, env.Error)
}

func TestCreate_SendsJSON(t *testing.T) {
	srv, seen := newTestServer(t, http.StatusCreated, `{"message":"created","data":{"id":11,"name":"Centro Norte"}}`)
	c := New(srv.URL)
	ctx := reqctx.WithRequestMeta(context.Background(), &reqctx.RequestMeta{RequestID: "req-123"})

	env := c.MedicalCenters().Create(ctx, map[string]any{"name": "Centro Norte"})

	require.True(t, env.Success)
	assert.Equal(t, int64(11), env.Data.ID)

	require.Len(t, *seen, 1)
	req := (*seen)[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/medical-centers", req.Path)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "req-123", req.Header.Get(reqctx.HeaderRequestID))

	var sent map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &sent))
	assert.Equal(t, "Centro Norte", sent["name"])
}

func TestUpdate_UsesItemPath(t *testing.T) {
	srv, seen := newTestServer(t, http.StatusOK, `{"data":{"id":4}}`)
	c := New(srv.URL)

	env := c.Diagnoses().Update(context.Background(), 4, map[string]any{"status": "Resuelto"})

	require.True(t, env.Success)
	require.Len(t, *seen, 1)
	assert.Equal(t, http.MethodPut, (*seen)[0].Method)
	assert.Equal(t, "/diagnostics/4", (*seen)[0].Path)
}

func TestDelete_EmptyBodyIsSuccess(t *testing.T) {
	srv, seen := newTestServer(t, http.StatusNoContent, ``)
	c := New(srv.URL)

	env := c.Appointments().Delete(context.Background(), 12)

	assert.True(t, env.Success)
	require.Len(t, *seen, 1)
	assert.Equal(t, http.MethodDelete, (*seen)[0].Method)
	assert.Equal(t, "/appointments/12", (*seen)[0].Path)
}

func TestLogin_DecodesToken(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"message":"ok","data":{"token":"abc","user":{"id":1,"email":"a@b.es"}}}`)
	c := New(srv.URL)

	env := c.Login(context.Background(), Credentials{Email: "a@b.es", Password: "secret"})

	require.True(t, env.Success)
	assert.Equal(t, "abc", env.Data.Token)
	require.NotNil(t, env.Data.User)
	assert.Equal(t, "a@b.es", env.Data.User.Email)
}

func TestParseEnvelopeMode(t *testing.T) {
	tests := []struct {
		in      string
		want    EnvelopeMode
		wantErr bool
	}{
		{"", EnvelopeAuto, false},
		{"AUTO", EnvelopeAuto, false},
		{"wrapped", EnvelopeWrapped, false},
		{"bare", EnvelopeBare, false},
		{"nested", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEnvelopeMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestItemPaths(t *testing.T) {
	assert.Equal(t, "/patients/5", PatientPath(5))
	assert.Equal(t, "/users/2", UserPath(2))
	assert.Equal(t, "/diagnostics/3", DiagnosisPath(3))
	assert.Equal(t, "/prescriptions/12", PrescriptionPath(12))
	assert.Equal(t, "/medical-centers/8", MedicalCenterPath(8))
	assert.Equal(t, "/appointments/1", AppointmentPath(1))
}
