package mock

import (
	"context"
	"github.com/viant/rag/schema"
	"golang.org/x/crypto/bcrypt"
	"net/http"
	"sync/atomic"
	"time"
)

type contextKey string

const userKey contextKey = "user"

func (s *Service) registerHandler(w http.ResponseWriter, r *http.Request) {
	req := &schema.RegisterRequest{}
	if err := decode(r, req); err != nil {
		writeError(w, r, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.addUser(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.writePair(w, r, u)
}

func (s *Service) authenticateHandler(w http.ResponseWriter, r *http.Request) {
	req := &schema.AuthenticationRequest{}
	if err := decode(r, req); err != nil {
		writeError(w, r, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[req.Email]
	if !ok || bcrypt.CompareHashAndPassword(u.passwordHash, []byte(req.Password)) != nil {
		writeError(w, r, newStatusError(http.StatusUnauthorized, "bad credentials"))
		return
	}
	s.writePair(w, r, u)
}

// refreshHandler rotates the pair: the presented refresh token is revoked.
func (s *Service) refreshHandler(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&s.refreshCount, 1)
	if delay := time.Duration(s.refreshDelay.Load()); delay > 0 {
		time.Sleep(delay)
	}
	tokenClaims, err := s.parseJWT(bearerToken(r), refreshTokenType)
	if err != nil {
		writeError(w, r, newStatusError(http.StatusUnauthorized, "invalid refresh token"))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.refreshTokens[tokenClaims.ID]
	if !ok {
		writeError(w, r, newStatusError(http.StatusUnauthorized, "refresh token revoked"))
		return
	}
	delete(s.refreshTokens, tokenClaims.ID)
	u, ok := s.users[email]
	if !ok {
		writeError(w, r, newStatusError(http.StatusUnauthorized, "unknown user"))
		return
	}
	s.writePair(w, r, u)
}

func (s *Service) logoutHandler(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&s.logoutCount, 1)
	u := userFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	u.generation++
	for id, email := range s.refreshTokens {
		if email == u.Email {
			delete(s.refreshTokens, id)
		}
	}
	w.WriteHeader(http.StatusOK)
}

// writePair issues a credential pair; s.mu must be held.
func (s *Service) writePair(w http.ResponseWriter, r *http.Request, u *user) {
	accessToken, _, err := s.createJWT(u, accessTokenType, s.AccessTTL)
	if err != nil {
		writeError(w, r, err)
		return
	}
	refreshToken, id, err := s.createJWT(u, refreshTokenType, s.RefreshTTL)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.refreshTokens[id] = u.Email
	writeJSON(w, http.StatusOK, &schema.AuthenticationResponse{AccessToken: accessToken, RefreshToken: refreshToken})
}

// authenticated rejects requests without a current access token.
func (s *Service) authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenClaims, err := s.parseJWT(bearerToken(r), accessTokenType)
		if err != nil {
			writeError(w, r, newStatusError(http.StatusUnauthorized, "invalid access token"))
			return
		}
		s.mu.Lock()
		u, ok := s.users[tokenClaims.Subject]
		valid := ok && u.generation == tokenClaims.Generation
		s.mu.Unlock()
		if !valid {
			writeError(w, r, newStatusError(http.StatusUnauthorized, "access token expired"))
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
	})
}

func userFrom(ctx context.Context) *user {
	u, _ := ctx.Value(userKey).(*user)
	return u
}
