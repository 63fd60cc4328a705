package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrEmployeeNotFound   = errors.New("empleado no encontrado")
	ErrUsernameExists     = errors.New("el username ya está registrado")
	ErrEmailExists        = errors.New("el email ya está registrado")
	ErrEmployeeNumberUsed = errors.New("número de empleado duplicado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrMissingField       = errors.New("campo requerido")
	ErrMissingInvite      = errors.New("código de invitación requerido")
	ErrInviteNotFound     = errors.New("código de invitación inexistente")
	ErrInviteExpired      = errors.New("código de invitación expirado")
	ErrInviteUsed         = errors.New("código de invitación ya utilizado")
	ErrInviteInvalid      = errors.New("token de invitación inválido")
	ErrInviteCodeSpace    = errors.New("no se pudo generar un código de invitación libre")
	ErrInvalidRole        = errors.New("rol inválido")
	ErrMissingCredentials = errors.New("username y password son requeridos")
	ErrInvalidCredentials = errors.New("password incorrecto")
	ErrAccountInactive    = errors.New("cuenta inactiva")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// FieldError identifica el primer campo requerido ausente o inválido.
type FieldError struct {
	Field string
	Err   error
}

// NewFieldError construye un FieldError para un campo ausente.
func NewFieldError(field string) *FieldError {
	return &FieldError{Field: field, Err: ErrMissingField}
}

// NewInvalidFieldError construye un FieldError para un campo presente pero inválido.
func NewInvalidFieldError(field string) *FieldError {
	return &FieldError{Field: field, Err: ErrInvalidInput}
}

func (e *FieldError) Error() string {
	if e.Err == ErrMissingField {
		return "Missing field: " + e.Field
	}
	return "Invalid field: " + e.Field
}

func (e *FieldError) Unwrap() error { return e.Err }
