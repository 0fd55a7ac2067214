package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/mpdash/internal/server/services"
)

const maxBodyBytes = 1 << 20

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}

// login takes an OAuth2 password form.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid form body")
		return
	}

	username, password := r.PostForm.Get("username"), r.PostForm.Get("password")
	var missing services.ValidationError
	if username == "" {
		missing = append(missing, services.FieldError{Field: "username", Msg: "field required"})
	}
	if password == "" {
		missing = append(missing, services.FieldError{Field: "password", Msg: "field required"})
	}
	if len(missing) > 0 {
		writeInvalid(w, "body", missing)
		return
	}

	tok, err := s.users.Login(r.Context(), username, password)
	if err != nil {
		s.logger.Info(r.Context(), "login failed", "username", username)
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "logged in", "user_id", tok.UserID)
	writeJSON(w, http.StatusOK, tok)
}

type signupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := s.users.Signup(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "registered", "user_id", u.ID, "username", u.Username)
	writeJSON(w, http.StatusOK, u)
}

// me answers for the token's own account. A user_id naming anyone else is
// forbidden.
func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	caller, _ := userIDFrom(r.Context())

	id := caller
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeInvalid(w, "query", services.ValidationError{{Field: "user_id", Msg: "value is not a valid integer"}})
			return
		}
		id = parsed
	}
	if id != caller {
		writeDetail(w, http.StatusForbidden, "Not enough permissions")
		return
	}

	u, err := s.users.User(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	caller, _ := userIDFrom(r.Context())

	a, err := s.products.Analyze(r.Context(), caller, chi.URLParam(r, "article"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

type trackRequest struct {
	Article string   `json:"article"`
	Name    string   `json:"name"`
	Price   *float64 `json:"price"`
	UserID  int64    `json:"user_id"`
}

func (s *Server) track(w http.ResponseWriter, r *http.Request) {
	caller, _ := userIDFrom(r.Context())

	var req trackRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.UserID != 0 && req.UserID != caller {
		writeDetail(w, http.StatusForbidden, "Not enough permissions")
		return
	}

	p, err := s.products.Track(r.Context(), caller, services.TrackRequest{Article: req.Article, Name: req.Name, Price: req.Price})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "tracking", "user_id", caller, "article", p.Article)
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) tracked(w http.ResponseWriter, r *http.Request) {
	caller, _ := userIDFrom(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if id != caller {
		writeDetail(w, http.StatusForbidden, "Not enough permissions")
		return
	}

	items, err := s.products.Tracked(r.Context(), caller)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) untrack(w http.ResponseWriter, r *http.Request) {
	caller, _ := userIDFrom(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	p, err := s.products.Untrack(r.Context(), caller, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "untracked", "user_id", caller, "article", p.Article)
	writeJSON(w, http.StatusOK, p)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeInvalid(w, "path", services.ValidationError{{Field: "id", Msg: "value is not a valid integer"}})
		return 0, false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, []validationIssue{{
			Loc: []string{"body"}, Msg: "invalid JSON body", Type: "value_error.jsondecode",
		}})
		return false
	}
	return true
}
