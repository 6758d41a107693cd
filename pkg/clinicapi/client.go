// Package clinicapi is a typed client for the clinical records REST backend.
//
// Every call returns an Envelope. Transport failures, non-2xx statuses and
// undecodable payloads all come back as Success=false with a message; no call
// returns a Go error and none of them retries.
package clinicapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alijeyrad/libremedic_admin/config"
	"github.com/Alijeyrad/libremedic_admin/pkg/reqctx"
)

const tracerName = "github.com/Alijeyrad/libremedic_admin/pkg/clinicapi"

const (
	MsgNetworkError       = "network error"
	MsgUnexpectedEnvelope = "unexpected response envelope"
	MsgInvalidPayload     = "invalid request payload"
)

// EnvelopeMode decides how a 2xx payload is unwrapped.
type EnvelopeMode string

const (
	// EnvelopeAuto unwraps {"data": ...} when present and passes anything
	// else through unchanged.
	EnvelopeAuto EnvelopeMode = "auto"
	// EnvelopeWrapped requires {"message", "data"} and fails otherwise.
	EnvelopeWrapped EnvelopeMode = "wrapped"
	// EnvelopeBare never unwraps.
	EnvelopeBare EnvelopeMode = "bare"
)

// ParseEnvelopeMode maps a config value to a mode; empty means auto.
func ParseEnvelopeMode(s string) (EnvelopeMode, error) {
	switch EnvelopeMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", EnvelopeAuto:
		return EnvelopeAuto, nil
	case EnvelopeWrapped:
		return EnvelopeWrapped, nil
	case EnvelopeBare:
		return EnvelopeBare, nil
	default:
		return "", fmt.Errorf("clinicapi: unknown envelope mode %q", s)
	}
}

// Envelope is the uniform result of every client call.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func failure[T any](msg string) Envelope[T] {
	return Envelope[T]{Success: false, Error: msg}
}

// Doer is the transport. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the backend rooted at baseURL.
type Client struct {
	baseURL    string
	httpClient Doer
	mode       EnvelopeMode
	logger     *slog.Logger
	tracer     trace.Tracer
}

type Option func(*Client)

// WithHTTPClient replaces the transport.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.httpClient = d }
}

func WithEnvelopeMode(m EnvelopeMode) Option {
	return func(c *Client) { c.mode = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client. The default transport has no deadline of its own.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		mode:       EnvelopeAuto,
		logger:     slog.Default(),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig creates a Client from the api config section.
func NewFromConfig(cfg config.APIConfig, opts ...Option) (*Client, error) {
	mode, err := ParseEnvelopeMode(cfg.Envelope)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{}
	if cfg.TimeoutSeconds > 0 {
		httpClient.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	base := []Option{WithHTTPClient(httpClient), WithEnvelopeMode(mode)}
	return New(cfg.BaseURL, append(base, opts...)...), nil
}

func (c *Client) BaseURL() string { return c.baseURL }

// do performs one request and returns the unwrapped payload as raw JSON.
func (c *Client) do(ctx context.Context, method, path string, body any) Envelope[json.RawMessage] {
	ctx, span := c.tracer.Start(ctx, "clinicapi "+method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.route", path),
		),
	)
	defer span.End()

	env, status, cause := c.roundTrip(ctx, method, path, body)

	span.SetAttributes(attribute.Int("http.status_code", status))
	if !env.Success {
		span.SetStatus(codes.Error, env.Error)
		if cause != nil {
			span.RecordError(cause)
		}
		c.logger.WarnContext(ctx, "backend request failed",
			"method", method,
			"path", path,
			"status", status,
			"message", env.Error,
			"error", cause,
		)
	} else {
		span.SetStatus(codes.Ok, "")
	}

	return env
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body any) (Envelope[json.RawMessage], int, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return failure[json.RawMessage](MsgInvalidPayload), 0, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return failure[json.RawMessage](MsgNetworkError), 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if rid := reqctx.RequestIDFromContext(ctx); rid != "" {
		req.Header.Set(reqctx.HeaderRequestID, rid)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	res, err := c.httpClient.Do(req)
	if err != nil {
		return failure[json.RawMessage](MsgNetworkError), 0, fmt.Errorf("do request: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return failure[json.RawMessage](MsgNetworkError), res.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return failure[json.RawMessage](errorMessage(raw, res.StatusCode)), res.StatusCode, nil
	}

	env, err := c.unwrap(raw)
	if err != nil {
		return env, res.StatusCode, err
	}
	return env, res.StatusCode, nil
}

// unwrap applies the envelope mode to a 2xx payload.
func (c *Client) unwrap(raw []byte) (Envelope[json.RawMessage], error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		// 204 and empty bodies carry no data.
		if c.mode == EnvelopeWrapped {
			return failure[json.RawMessage](MsgUnexpectedEnvelope), fmt.Errorf("empty body in wrapped mode")
		}
		return Envelope[json.RawMessage]{Success: true}, nil
	}
	if !json.Valid(trimmed) {
		return failure[json.RawMessage](MsgNetworkError), fmt.Errorf("decode response: invalid JSON")
	}

	if c.mode == EnvelopeBare {
		return Envelope[json.RawMessage]{Success: true, Data: json.RawMessage(trimmed)}, nil
	}

	var wrapper map[string]json.RawMessage
	isObject := trimmed[0] == '{' && json.Unmarshal(trimmed, &wrapper) == nil
	data, hasData := wrapper["data"]

	var message string
	if isObject {
		_ = json.Unmarshal(wrapper["message"], &message)
	}

	// Auto mode keeps the whole payload when data is null, false, 0 or "".
	unwrapData := !isNull(data)
	if c.mode == EnvelopeAuto {
		unwrapData = !isFalsy(data)
	}

	switch {
	case isObject && hasData && unwrapData:
		return Envelope[json.RawMessage]{Success: true, Data: data, Message: message}, nil
	case c.mode == EnvelopeWrapped && isObject && hasData:
		return Envelope[json.RawMessage]{Success: true, Message: message}, nil
	case c.mode == EnvelopeWrapped:
		return failure[json.RawMessage](MsgUnexpectedEnvelope), fmt.Errorf("payload has no data key")
	default:
		return Envelope[json.RawMessage]{Success: true, Data: json.RawMessage(trimmed), Message: message}, nil
	}
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(bytes.TrimSpace(raw)) == "null"
}

func isFalsy(raw json.RawMessage) bool {
	if isNull(raw) {
		return true
	}
	switch string(bytes.TrimSpace(raw)) {
	case "false", `""`:
		return true
	}
	var n float64
	return json.Unmarshal(raw, &n) == nil && n == 0
}

// errorMessage extracts the server-provided message of a failed request.
func errorMessage(raw []byte, status int) string {
	var body struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if s, ok := body.Error.(string); ok && s != "" {
			return s
		}
	}
	return fmt.Sprintf("HTTP error! status: %d", status)
}

func decode[T any](ctx context.Context, c *Client, raw Envelope[json.RawMessage]) Envelope[T] {
	out := Envelope[T]{Success: raw.Success, Error: raw.Error, Message: raw.Message}
	if !raw.Success || len(raw.Data) == 0 {
		return out
	}
	if err := json.Unmarshal(raw.Data, &out.Data); err != nil {
		c.logger.WarnContext(ctx, "backend payload has unexpected shape", "error", err)
		return failure[T](MsgNetworkError)
	}
	return out
}

// Get issues GET path and decodes the payload into T.
func Get[T any](ctx context.Context, c *Client, path string) Envelope[T] {
	return decode[T](ctx, c, c.do(ctx, http.MethodGet, path, nil))
}

// Post issues POST path with a JSON body. A nil body sends no payload.
func Post[T any](ctx context.Context, c *Client, path string, body any) Envelope[T] {
	return decode[T](ctx, c, c.do(ctx, http.MethodPost, path, body))
}

// Put issues PUT path with a JSON body.
func Put[T any](ctx context.Context, c *Client, path string, body any) Envelope[T] {
	return decode[T](ctx, c, c.do(ctx, http.MethodPut, path, body))
}

// Delete issues DELETE path.
func Delete[T any](ctx context.Context, c *Client, path string) Envelope[T] {
	return decode[T](ctx, c, c.do(ctx, http.MethodDelete, path, nil))
}
