package records

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/libremedic_admin/internal/screen"
	"github.com/Alijeyrad/libremedic_admin/pkg/clinicapi"
)

type fakeBackend struct {
	lists   atomic.Int32
	deletes atomic.Int32
	posts   atomic.Int32
	lastDel atomic.Value
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /medical-centers", func(w http.ResponseWriter, r *http.Request) {
		f.lists.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{
			{"id": 1, "name": "Clínica Norte", "type": "clínica", "phone": "+34600000001"},
			{"id": 2, "name": "Hospital Sur", "type": "hospital", "phone": "+34600000002"},
		}})
	})
	mux.HandleFunc("DELETE /medical-centers/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.deletes.Add(1)
		f.lastDel.Store(r.PathValue("id"))
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /medical-centers", func(w http.ResponseWriter, r *http.Request) {
		f.posts.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"id": 3}})
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	return mux
}

type run struct {
	out, errOut bytes.Buffer
	err         error
}

func execute(t *testing.T, backend http.Handler, stdin string, args ...string) *run {
	t.Helper()

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	prev := newClient
	newClient = func(*cobra.Command) (*clinicapi.Client, error) { return clinicapi.New(srv.URL), nil }
	t.Cleanup(func() { newClient = prev })

	root := &cobra.Command{Use: "libremedic", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().String("config", "config.yaml", "")
	root.AddCommand(NewRecordsCommand(), NewHealthCommand())

	r := &run{}
	root.SetOut(&r.out)
	root.SetErr(&r.errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	r.err = root.Execute()
	return r
}

func TestList_Search(t *testing.T) {
	fb := &fakeBackend{}
	r := execute(t, fb.handler(), "", "records", "medical-centers", "list", "--search", "NORTE")

	require.NoError(t, r.err)
	assert.Contains(t, r.out.String(), "Clínica Norte")
	assert.NotContains(t, r.out.String(), "Hospital Sur")
	assert.Contains(t, r.out.String(), "1 de 2")
	assert.Equal(t, int32(1), fb.lists.Load())
}

func TestList_BackendDown(t *testing.T) {
	down := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	})
	r := execute(t, down, "", "records", "medical-centers", "list")

	require.ErrorIs(t, r.err, screen.ErrRequest)
	assert.Contains(t, r.errOut.String(), "✗ boom")
}

func TestDelete_Confirmed(t *testing.T) {
	fb := &fakeBackend{}
	r := execute(t, fb.handler(), "", "records", "medical-centers", "delete", "2", "--yes")

	require.NoError(t, r.err)
	assert.Equal(t, int32(1), fb.deletes.Load())
	assert.Equal(t, "2", fb.lastDel.Load())
	assert.Equal(t, int32(1), fb.lists.Load(), "collection is reloaded exactly once")
	assert.Contains(t, r.errOut.String(), "✓ ")
}

func TestDelete_PromptAccepted(t *testing.T) {
	fb := &fakeBackend{}
	r := execute(t, fb.handler(), "s\n", "records", "medical-centers", "delete", "1")

	require.NoError(t, r.err)
	assert.Contains(t, r.errOut.String(), "[s/N]")
	assert.Equal(t, int32(1), fb.deletes.Load())
}

func TestDelete_PromptDeclined(t *testing.T) {
	fb := &fakeBackend{}
	r := execute(t, fb.handler(), "n\n", "records", "medical-centers", "delete", "1")

	require.NoError(t, r.err)
	assert.Contains(t, r.errOut.String(), "cancelado")
	assert.Equal(t, int32(0), fb.deletes.Load())
	assert.Equal(t, int32(0), fb.lists.Load())
}

func TestDelete_InvalidID(t *testing.T) {
	r := execute(t, (&fakeBackend{}).handler(), "", "records", "medical-centers", "delete", "abc", "--yes")
	assert.Error(t, r.err)
}

func TestCreate_InvalidFormMakesNoCall(t *testing.T) {
	fb := &fakeBackend{}
	r := execute(t, fb.handler(), `{"name":"","capacity":"muchos"}`, "records", "medical-centers", "create")

	require.ErrorIs(t, r.err, screen.ErrValidation)
	assert.Equal(t, int32(0), fb.posts.Load())
	assert.Contains(t, r.errOut.String(), screen.MsgFixErrors)
	assert.Contains(t, r.errOut.String(), "La capacidad debe ser un número válido")
}

func TestCreate_Valid(t *testing.T) {
	fb := &fakeBackend{}
	form := `{"name":"Centro Este","address":"Calle Mayor 1","phone":"+34 612 345 678","email":"este@example.com","type":"clínica","capacity":"40"}`
	r := execute(t, fb.handler(), form, "records", "medical-centers", "create")

	require.NoError(t, r.err)
	assert.Equal(t, int32(1), fb.posts.Load())
	assert.Equal(t, "/medical-centers\n", r.out.String())
}

func TestHealth(t *testing.T) {
	r := execute(t, (&fakeBackend{}).handler(), "", "health")

	require.NoError(t, r.err)
	assert.Contains(t, r.out.String(), "OK")
}
