package mock

import (
	"github.com/viant/rag/schema"
	"golang.org/x/crypto/bcrypt"
	"net/http"
)

func (s *Service) meHandler(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	s.mu.Lock()
	ret := u.User
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, &ret)
}

func (s *Service) updateMeHandler(w http.ResponseWriter, r *http.Request) {
	req := &schema.UpdateUserRequest{}
	if err := decode(r, req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		writeError(w, r, newStatusError(http.StatusBadRequest, "name cannot be empty"))
		return
	}
	u := userFrom(r.Context())
	s.mu.Lock()
	u.FirstName, u.LastName = req.FirstName, req.LastName
	ret := u.User
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, &ret)
}

func (s *Service) changePasswordHandler(w http.ResponseWriter, r *http.Request) {
	req := &schema.ChangePasswordRequest{}
	if err := decode(r, req); err != nil {
		writeError(w, r, err)
		return
	}
	u := userFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	if bcrypt.CompareHashAndPassword(u.passwordHash, []byte(req.CurrentPassword)) != nil {
		writeError(w, r, newStatusError(http.StatusBadRequest, "Wrong password"))
		return
	}
	if req.NewPassword != req.ConfirmationPassword {
		writeError(w, r, newStatusError(http.StatusBadRequest, "Passwords are not the same"))
		return
	}
	if len(req.NewPassword) < 8 {
		writeError(w, r, newStatusError(http.StatusBadRequest, "Password must be at least 8 characters long"))
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.MinCost)
	if err != nil {
		writeError(w, r, err)
		return
	}
	u.passwordHash = hash
	w.WriteHeader(http.StatusOK)
}

func (s *Service) deleteMeHandler(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, u.Email)
	for id, email := range s.refreshTokens {
		if email == u.Email {
			delete(s.refreshTokens, id)
		}
	}
	for id, doc := range s.documents {
		if doc.userID == u.ID {
			delete(s.documents, id)
			delete(s.history, id)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
