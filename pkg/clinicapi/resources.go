package clinicapi

import (
	"context"
	"encoding/json"
)

// Resource is the CRUD surface of one backend collection.
type Resource[T any] struct {
	client     *Client
	collection string
}

// NewResource binds a collection path to a record type.
func NewResource[T any](c *Client, collection string) Resource[T] {
	return Resource[T]{client: c, collection: collection}
}

func (r Resource[T]) Collection() string { return r.collection }

func (r Resource[T]) List(ctx context.Context) Envelope[[]T] {
	return Get[[]T](ctx, r.client, r.collection)
}

func (r Resource[T]) Get(ctx context.Context, id int64) Envelope[T] {
	return Get[T](ctx, r.client, ItemPath(r.collection, id))
}

func (r Resource[T]) Create(ctx context.Context, payload any) Envelope[T] {
	return Post[T](ctx, r.client, r.collection, payload)
}

func (r Resource[T]) Update(ctx context.Context, id int64, payload any) Envelope[T] {
	return Put[T](ctx, r.client, ItemPath(r.collection, id), payload)
}

func (r Resource[T]) Delete(ctx context.Context, id int64) Envelope[json.RawMessage] {
	return Delete[json.RawMessage](ctx, r.client, ItemPath(r.collection, id))
}

func (c *Client) Patients() Resource[Patient] {
	return NewResource[Patient](c, PathPatients)
}

// Users is the doctors collection; the backend serves doctors under /users.
func (c *Client) Users() Resource[User] {
	return NewResource[User](c, PathUsers)
}

func (c *Client) Diagnoses() Resource[Diagnosis] {
	return NewResource[Diagnosis](c, PathDiagnoses)
}

func (c *Client) Prescriptions() Resource[Prescription] {
	return NewResource[Prescription](c, PathPrescriptions)
}

func (c *Client) MedicalCenters() Resource[MedicalCenter] {
	return NewResource[MedicalCenter](c, PathMedicalCenters)
}

func (c *Client) Appointments() Resource[Appointment] {
	return NewResource[Appointment](c, PathAppointments)
}

func (c *Client) Login(ctx context.Context, creds Credentials) Envelope[LoginResult] {
	return Post[LoginResult](ctx, c, PathLogin, creds)
}

func (c *Client) Logout(ctx context.Context) Envelope[json.RawMessage] {
	return Post[json.RawMessage](ctx, c, PathLogout, nil)
}

func (c *Client) Health(ctx context.Context) Envelope[json.RawMessage] {
	return Get[json.RawMessage](ctx, c, PathHealth)
}
