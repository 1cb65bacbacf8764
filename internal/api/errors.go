package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Kind classifies a failed API call for user messaging and programmatic handling.
type Kind string

const (
	KindNetwork        Kind = "network"
	KindValidation     Kind = "validation"
	KindAuthentication Kind = "authentication"
	KindNotFound       Kind = "not_found"
	KindServer         Kind = "server"
	KindUnknown        Kind = "unknown"
)

// AppError is the single error value produced by the request pipeline.
// Message carries the technical detail; the sentence shown to end users
// comes from UserMessage and depends only on Kind.
type AppError struct {
	Message string
	Kind    Kind
	Status  int // zero when no HTTP response was received
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// ClassifyStatus maps an HTTP status code to an error kind
func ClassifyStatus(status int) Kind {
	switch status {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuthentication
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return KindServer
	default:
		return KindUnknown
	}
}

// userMessages holds the fixed sentence shown to end users per kind.
// The academy's audience is Spanish-speaking, same as the backend's field names.
var userMessages = map[Kind]string{
	KindNetwork:        "Problema de conexión. Verifica tu internet.",
	KindValidation:     "Los datos proporcionados no son válidos.",
	KindAuthentication: "No estás autorizado. Inicia sesión nuevamente.",
	KindNotFound:       "El recurso solicitado no existe.",
	KindServer:         "Error interno del servidor. Estamos trabajando en solucionarlo.",
	KindUnknown:        "Ocurrió un error inesperado. Inténtalo más tarde.",
}

// UserMessage returns the fixed user-facing sentence for a kind
func UserMessage(kind Kind) string {
	if msg, ok := userMessages[kind]; ok {
		return msg
	}
	return userMessages[KindUnknown]
}

// KindOf extracts the kind from an error chain, KindUnknown when no
// AppError is present.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether the error chain contains an AppError of the given kind
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// LogError records a failure for diagnostics. Safe to call with any error,
// including nil.
func LogError(err error) {
	if err == nil {
		return
	}
	var appErr *AppError
	if !errors.As(err, &appErr) {
		log.Error().Err(err).Msg("unclassified error")
		return
	}
	ev := log.Error().
		Str("kind", string(appErr.Kind)).
		Str("message", appErr.Message)
	if appErr.Status != 0 {
		ev = ev.Int("status", appErr.Status)
	}
	if appErr.Cause != nil {
		ev = ev.AnErr("cause", appErr.Cause)
	}
	ev.Msg("api error")
}
