package screen

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Alijeyrad/libremedic_admin/internal/form"
	"github.com/Alijeyrad/libremedic_admin/pkg/clinicapi"
)

// Backend is the CRUD surface a screen drives. clinicapi.Resource satisfies it.
type Backend[T any] interface {
	List(ctx context.Context) clinicapi.Envelope[[]T]
	Get(ctx context.Context, id int64) clinicapi.Envelope[T]
	Create(ctx context.Context, payload any) clinicapi.Envelope[T]
	Update(ctx context.Context, id int64, payload any) clinicapi.Envelope[T]
	Delete(ctx context.Context, id int64) clinicapi.Envelope[json.RawMessage]
}

// Matcher reports whether item matches term. term is already lower-cased
// and non-empty.
type Matcher[T any] func(item T, term string) bool

// Labels are the user-facing messages of one resource.
type Labels struct {
	Title        string
	Deleted      string
	DeleteFailed string
	DeletePrompt string
	Created      string
	CreateFailed string
	Updated      string
	UpdateFailed string
	LoadFailed   string
}

// Kind describes one resource: how it is searched, edited and rendered.
// T is the backend record and F the string-only form record.
type Kind[T, F any] struct {
	// Name is the route segment and the authorization object, e.g. "patients".
	Name   string
	Labels Labels
	ID     func(T) int64
	Match  Matcher[T]

	Blank func() F
	// Schema returns the validation schema; editing is true for edit forms.
	Schema    func(editing bool) form.Schema[F]
	ToForm    func(T) F
	ToPayload func(F, bool) (any, error)

	Columns []string
	Row     func(T) []string
	Stats   func(items []T, now time.Time) any
}

// ListPath is where screens navigate after a successful submit.
func (k Kind[T, F]) ListPath() string { return "/" + k.Name }

// contains reports whether s contains the lower-cased term, ignoring case.
func contains(s, term string) bool {
	return s != "" && strings.Contains(strings.ToLower(s), term)
}

func fullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

// RequestMessage picks what to show for a failed envelope.
func RequestMessage(errMsg, fallback string) string {
	switch errMsg {
	case "":
		return fallback
	case clinicapi.MsgNetworkError:
		return MsgConnection
	default:
		return errMsg
	}
}

// optional returns nil for blank input, which the backend stores as null.
func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func parseID(field, s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return id, nil
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
