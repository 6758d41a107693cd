package screen

import "errors"

var (
	ErrValidation   = errors.New("form has validation errors")
	ErrNotFound     = errors.New("record not found")
	ErrRequest      = errors.New("backend request failed")
	ErrNotConfirmed = errors.New("delete not confirmed")
	ErrBusy         = errors.New("another action is in progress")
	ErrInvalidInput = errors.New("invalid form input")
)

const (
	MsgFixErrors  = "Por favor, corrige los errores en el formulario antes de continuar."
	MsgConnection = "Error de conexión. Verifica que el servidor esté ejecutándose."
)
