package server

import (
	"net/http"
	"strings"

	"wehire/internal/apperr"
	"wehire/pkg/types"
)

func (s *Service) handleSignup(w http.ResponseWriter, r *http.Request) {
	var input types.SignupInput
	if err := decodeJSON(r, &input); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.auth.Signup(r.Context(), &input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, user)
}

// handleLogin accepts either a JSON body or an OAuth2 password form.
func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	var input types.LoginInput

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			s.writeError(w, r, apperr.Wrap(apperr.CodeValidation, "invalid form payload", err))
			return
		}
		if err := decoder.Decode(&input, r.PostForm); err != nil {
			s.writeError(w, r, apperr.Wrap(apperr.CodeValidation, "invalid form payload", err))
			return
		}
	} else if err := decodeJSON(r, &input); err != nil {
		s.writeError(w, r, err)
		return
	}

	token, err := s.auth.Login(r.Context(), &input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, token)
}
