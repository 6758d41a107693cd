package logs

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/Alijeyrad/libremedic_admin/pkg/reqctx"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseLevel(tt.in); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLokiPayload(t *testing.T) {
	lw := &lokiWriter{labels: map[string]string{"service": "libremedic_admin", "env": "test"}}

	body, err := lw.payload([]byte(`{"msg":"hola"}`+"\n"), time.Unix(0, 42))
	if err != nil {
		t.Fatalf("payload() error = %v", err)
	}

	var got lokiPush
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if len(got.Streams) != 1 || got.Streams[0].Stream["service"] != "libremedic_admin" {
		t.Fatalf("unexpected stream labels: %+v", got.Streams)
	}
	if v := got.Streams[0].Values[0]; v[0] != "42" || v[1] != `{"msg":"hola"}` {
		t.Errorf("unexpected value pair: %v", v)
	}
}

func TestContextHandler_AddsRequestAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(contextHandler{slog.NewJSONHandler(&buf, nil)}).With(slog.String("service", "admin"))

	ctx := reqctx.WithRequestMeta(context.Background(), &reqctx.RequestMeta{RequestID: "req-7"})
	ctx = reqctx.WithSession(ctx, &reqctx.Session{UserType: "doctor"})
	logger.InfoContext(ctx, "listado cargado")

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if got["request_id"] != "req-7" || got["user_type"] != "doctor" || got["service"] != "admin" {
		t.Errorf("unexpected attrs: %v", got)
	}

	buf.Reset()
	logger.Info("sin contexto")
	plain := map[string]any{}
	if err := json.Unmarshal(buf.Bytes(), &plain); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if _, ok := plain["request_id"]; ok {
		t.Errorf("request_id logged without a request context: %v", plain)
	}
}
