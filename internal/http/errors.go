package http

import (
	"errors"
	"net/http"

	"github.com/Flarenzy/site-ipam/internal/domain"
)

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError maps a domain error to a status. Server-side failures are
// not echoed to the client.
func (a *API) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	a.respond(w, r, status, ErrorResponse{Error: msg})
}

func (a *API) respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	if err := encode(w, r, status, v); err != nil {
		a.Logger.ErrorContext(r.Context(), "responding to client", "err", err.Error())
	}
}
