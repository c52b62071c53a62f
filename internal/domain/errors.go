package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrOutOfRange   = errors.New("posición fuera de rango")
)

// ValidationError lleva el mensaje que se muestra al usuario; envuelve ErrInvalidInput
// para que los handlers sigan usando errors.Is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye un error de validación con mensaje para el usuario.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// ErrWrongPasscode es el AuthError del panel de administración.
var ErrWrongPasscode = &AuthError{Message: "Wrong passcode."}

// AuthError indica un passcode incorrecto; envuelve ErrUnauthorized.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() error { return ErrUnauthorized }

// UserMessage devuelve el mensaje apto para mostrar al usuario, si el error lo trae.
func UserMessage(err error) (string, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Message, true
	}
	var a *AuthError
	if errors.As(err, &a) {
		return a.Message, true
	}
	return "", false
}
