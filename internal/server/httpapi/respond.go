package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/mpdash/internal/server/services"
)

// validationIssue is one entry of a 422 detail list.
type validationIssue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail any) {
	writeJSON(w, status, map[string]any{"detail": detail})
}

func writeInvalid(w http.ResponseWriter, where string, fields services.ValidationError) {
	issues := make([]validationIssue, len(fields))
	for i, f := range fields {
		issues[i] = validationIssue{Loc: []string{where, f.Field}, Msg: f.Msg, Type: "value_error"}
	}
	writeDetail(w, http.StatusUnprocessableEntity, issues)
}

// writeError maps service errors to status codes and details.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid services.ValidationError
	switch {
	case errors.As(err, &invalid):
		writeInvalid(w, "body", invalid)
	case errors.Is(err, services.ErrIncorrectCredentials):
		writeDetail(w, http.StatusUnauthorized, "Incorrect credentials")
	case errors.Is(err, services.ErrInactiveUser):
		writeDetail(w, http.StatusBadRequest, "Inactive user")
	case errors.Is(err, services.ErrUserExists):
		writeDetail(w, http.StatusBadRequest, "user already exists")
	case errors.Is(err, services.ErrProductTracked):
		writeDetail(w, http.StatusBadRequest, "product is already tracked")
	case errors.Is(err, services.ErrProductNotFound):
		writeDetail(w, http.StatusNotFound, "product not found")
	case errors.Is(err, services.ErrUserNotFound):
		writeDetail(w, http.StatusNotFound, "user not found")
	default:
		s.logger.Error(r.Context(), err.Error(), "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()))
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
