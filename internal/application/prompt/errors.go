package prompt

import (
	"errors"
	"fmt"
)

// ErrorKind clasifica los fallos del intérprete de comandos.
// Todos salvo internal_failure son fricción esperada de entrada del usuario:
// se devuelven con su mensaje literal y sin mutación parcial.
type ErrorKind string

const (
	KindUnknownAction        ErrorKind = "unknown_action"
	KindMissingField         ErrorKind = "missing_field"
	KindInvalidValue         ErrorKind = "invalid_value"
	KindNotFound             ErrorKind = "not_found"
	KindAmbiguous            ErrorKind = "ambiguous"
	KindUniquenessConflict   ErrorKind = "uniqueness_conflict"
	KindAssistantUnavailable ErrorKind = "assistant_unavailable"
	KindInternalFailure      ErrorKind = "internal_failure"
)

// CommandError es el error tipado del pipeline de comandos.
// Message está pensado para mostrarse tal cual al usuario final.
type CommandError struct {
	Kind    ErrorKind
	Field   string // campo implicado (missing_field / invalid_value), vacío si no aplica
	Message string
	cause   error
}

func (e *CommandError) Error() string { return e.Message }

func (e *CommandError) Unwrap() error { return e.cause }

// IsUserError distingue la fricción de entrada esperada de un bug.
func (e *CommandError) IsUserError() bool { return e.Kind != KindInternalFailure }

// AsCommandError extrae un *CommandError de una cadena de errores.
func AsCommandError(err error) (*CommandError, bool) {
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

func errUnknownAction(action string) *CommandError {
	return &CommandError{
		Kind:    KindUnknownAction,
		Message: fmt.Sprintf("Acción desconocida: '%s'. Usa 'help' para ver las opciones.", action),
	}
}

func errMissingField(field string) *CommandError {
	return &CommandError{
		Kind:    KindMissingField,
		Field:   field,
		Message: fmt.Sprintf("El campo '%s' es obligatorio para el comando.", field),
	}
}

func errInvalidValue(field, reason string) *CommandError {
	return &CommandError{
		Kind:    KindInvalidValue,
		Field:   field,
		Message: fmt.Sprintf("Valor inválido para '%s': %s.", field, reason),
	}
}

func errNotFound(kind, ref string) *CommandError {
	return &CommandError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s '%s' no encontrado.", kind, ref),
	}
}

func errAmbiguous(kind, ref string) *CommandError {
	return &CommandError{
		Kind: KindAmbiguous,
		Message: fmt.Sprintf(
			"%s '%s' es ambiguo: hay varias coincidencias. Desambigua con el id o el slug.", kind, ref),
	}
}

func errConflict(message string) *CommandError {
	return &CommandError{Kind: KindUniquenessConflict, Message: message}
}

func errAssistantUnavailable() *CommandError {
	return &CommandError{
		Kind:    KindAssistantUnavailable,
		Message: "El asistente no está disponible en este momento. Envía el comando como JSON directamente.",
	}
}

func errInternal(err error) *CommandError {
	return &CommandError{
		Kind:    KindInternalFailure,
		Message: "Ocurrió un error interno procesando el comando.",
		cause:   err,
	}
}
