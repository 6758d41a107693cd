// Package reqctx provides centralized request context management.
//
// Two values travel in the context of every admin request:
//
//   - RequestMeta, always set by the HTTP middleware. Its RequestID is
//     forwarded to the backend in the X-Request-Id header.
//   - Session, set only when the caller presents a remembered login cookie.
//
// All context keys are private unexported types to prevent collisions.
// Access is provided through type-safe getter and setter functions:
//
//	ctx = reqctx.WithRequestMeta(ctx, &reqctx.RequestMeta{RequestID: "abc-123"})
//	rid := reqctx.RequestIDFromContext(ctx)
//	role := reqctx.UserTypeFromContext(ctx, "admin")
package reqctx
