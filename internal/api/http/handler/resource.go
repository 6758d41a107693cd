package handler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/libremedic_admin/internal/form"
	"github.com/Alijeyrad/libremedic_admin/internal/screen"
)

// ChoicesLoader fills the patient and doctor selects of a form.
type ChoicesLoader func(ctx context.Context) screen.Choices

// ResourceHandler serves the list, detail and editor screens of one
// resource. A fresh screen is built for every request.
type ResourceHandler[T, F any] struct {
	kind    screen.Kind[T, F]
	backend screen.Backend[T]
	choices ChoicesLoader
	now     func() time.Time
}

func NewResourceHandler[T, F any](kind screen.Kind[T, F], backend screen.Backend[T], choices ChoicesLoader) *ResourceHandler[T, F] {
	return &ResourceHandler[T, F]{kind: kind, backend: backend, choices: choices, now: time.Now}
}

func (h *ResourceHandler[T, F]) Kind() screen.Kind[T, F] { return h.kind }

// ---------------------------------------------------------------------------
// Views
// ---------------------------------------------------------------------------

type ListView[T any] struct {
	Title   string     `json:"title"`
	Search  string     `json:"search,omitempty"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Items   []T        `json:"items"`
	Total   int        `json:"total"`
	Stats   any        `json:"stats,omitempty"`
}

type DetailView[T any] struct {
	Record   T      `json:"record"`
	BackPath string `json:"backPath"`
}

type FormView[F any] struct {
	Title      string          `json:"title"`
	Editing    bool            `json:"editing"`
	ID         int64           `json:"id,omitempty"`
	Record     F               `json:"record"`
	Errors     form.Errors     `json:"errors"`
	Submitting bool            `json:"submitting"`
	Choices    *screen.Choices `json:"choices,omitempty"`
}

// FailedView tells the client the screen can be retried.
type FailedView struct {
	Retry    bool   `json:"retry,omitempty"`
	BackPath string `json:"backPath,omitempty"`
}

func (h *ResourceHandler[T, F]) listView(l *screen.List[T, F], search string) ListView[T] {
	items := l.Filter(search)
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, h.kind.Row(it))
	}
	return ListView[T]{
		Title:   h.kind.Labels.Title,
		Search:  search,
		Columns: h.kind.Columns,
		Rows:    rows,
		Items:   items,
		Total:   len(l.State().Data),
		Stats:   l.Stats(h.now),
	}
}

func (h *ResourceHandler[T, F]) formView(ctx context.Context, e *screen.Editor[T, F]) FormView[F] {
	v := FormView[F]{
		Title:      h.kind.Labels.Title,
		Editing:    e.Editing(),
		ID:         e.ID(),
		Record:     e.Form().Data(),
		Errors:     e.Form().Errors(),
		Submitting: e.Form().Submitting(),
	}
	if h.choices != nil {
		ch := h.choices(ctx)
		v.Choices = &ch
	}
	return v
}

func parseID(c fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	return id, err == nil && id > 0
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

// GET /admin/{resource}?search=
func (h *ResourceHandler[T, F]) List(c fiber.Ctx) error {
	notes := &screen.Collector{}
	l := screen.NewList(h.kind, h.backend, notes)
	defer l.Close()

	st := l.Load(c.Context())
	if st.IsFailed() {
		return badGateway(c, st.Err, FailedView{Retry: true}, notes)
	}
	return ok(c, h.listView(l, c.Query("search")), notes)
}

// GET /admin/{resource}/:id
func (h *ResourceHandler[T, F]) Detail(c fiber.Ctx) error {
	id, valid := parseID(c)
	if !valid {
		return badRequest(c, "id inválido")
	}

	d := screen.NewDetail(h.kind, h.backend)
	defer d.Close()

	rec, err := d.Load(c.Context(), id)
	if err != nil {
		return notFound(c, d.State().Err, FailedView{BackPath: d.BackPath()}, nil)
	}
	return ok(c, DetailView[T]{Record: rec, BackPath: d.BackPath()}, nil)
}

// GET /admin/{resource}/new
func (h *ResourceHandler[T, F]) New(c fiber.Ctx) error {
	e := screen.NewCreator(h.kind, h.backend, nil)
	return ok(c, h.formView(c.Context(), e), nil)
}

// GET /admin/{resource}/:id/edit
func (h *ResourceHandler[T, F]) Edit(c fiber.Ctx) error {
	id, valid := parseID(c)
	if !valid {
		return badRequest(c, "id inválido")
	}

	notes := &screen.Collector{}
	e, err := screen.OpenEditor(c.Context(), h.kind, h.backend, notes, id)
	if err != nil {
		return notFound(c, h.kind.Labels.LoadFailed, FailedView{BackPath: h.kind.ListPath()}, notes)
	}
	return ok(c, h.formView(c.Context(), e), notes)
}

// POST /admin/{resource}
func (h *ResourceHandler[T, F]) Create(c fiber.Ctx) error {
	notes := &screen.Collector{}
	return h.submit(c, screen.NewCreator(h.kind, h.backend, notes), notes)
}

// PUT /admin/{resource}/:id
func (h *ResourceHandler[T, F]) Update(c fiber.Ctx) error {
	id, valid := parseID(c)
	if !valid {
		return badRequest(c, "id inválido")
	}
	notes := &screen.Collector{}
	return h.submit(c, screen.NewUpdater(h.kind, h.backend, notes, id), notes)
}

func (h *ResourceHandler[T, F]) submit(c fiber.Ctx, e *screen.Editor[T, F], notes *screen.Collector) error {
	rec := h.kind.Blank()
	if err := c.Bind().JSON(&rec); err != nil {
		return badRequest(c, "cuerpo de la solicitud inválido")
	}
	e.Form().SetData(rec)

	redirect, err := e.Submit(c.Context())
	if err != nil {
		return mapScreenError(c, err, e.Form().Errors(), notes)
	}

	res := fiber.Map{"redirect": redirect}
	if e.Editing() {
		return ok(c, res, notes)
	}
	return created(c, res, notes)
}

// DELETE /admin/{resource}/:id?confirm=true
func (h *ResourceHandler[T, F]) Delete(c fiber.Ctx) error {
	id, valid := parseID(c)
	if !valid {
		return badRequest(c, "id inválido")
	}

	confirm := screen.ConfirmFunc(func(context.Context, string) bool {
		return c.Query("confirm") == "true"
	})

	notes := &screen.Collector{}
	l := screen.NewList(h.kind, h.backend, notes)
	defer l.Close()

	if err := l.Delete(c.Context(), id, confirm); err != nil {
		if errors.Is(err, screen.ErrNotConfirmed) {
			return c.Status(fiber.StatusPreconditionRequired).JSON(body{
				Error: h.kind.Labels.DeletePrompt,
				Data:  fiber.Map{"confirm": true},
			})
		}
		return mapScreenError(c, err, nil, notes)
	}

	if st := l.State(); st.IsFailed() {
		return badGateway(c, st.Err, FailedView{Retry: true}, notes)
	}
	return ok(c, h.listView(l, ""), notes)
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

func mapScreenError(c fiber.Ctx, err error, fields form.Errors, notes *screen.Collector) error {
	switch {
	case errors.Is(err, screen.ErrValidation):
		return unprocessable(c, screen.MsgFixErrors, fields, notes)
	case errors.Is(err, screen.ErrInvalidInput):
		return unprocessable(c, screen.MsgFixErrors, fields, notes)
	case errors.Is(err, screen.ErrNotFound):
		return notFound(c, err.Error(), nil, notes)
	case errors.Is(err, screen.ErrRequest):
		return badGateway(c, lastMessage(notes, err), nil, notes)
	case errors.Is(err, screen.ErrBusy):
		return conflict(c, err.Error())
	default:
		return internalError(c)
	}
}

// lastMessage returns the text of the newest notice without draining it.
func lastMessage(notes *screen.Collector, err error) string {
	if items := notes.Peek(); len(items) > 0 {
		return items[len(items)-1].Message
	}
	return err.Error()
}
