package logs

import (
	"context"
	"log/slog"

	"github.com/Alijeyrad/libremedic_admin/pkg/reqctx"
)

// contextHandler adds the request id and the session's user type to every
// record logged with a request context.
type contextHandler struct {
	slog.Handler
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if rid := reqctx.RequestIDFromContext(ctx); rid != "" {
		r.AddAttrs(slog.String("request_id", rid))
	}
	if s := reqctx.SessionFromContext(ctx); s != nil && s.UserType != "" {
		r.AddAttrs(slog.String("user_type", s.UserType))
	}
	return h.Handler.Handle(ctx, r)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{h.Handler.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{h.Handler.WithGroup(name)}
}
