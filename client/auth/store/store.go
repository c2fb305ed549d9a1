package store

import (
	"errors"
	"golang.org/x/oauth2"
	"sync"
)

const (
	// AccessTokenKey is the persisted name of the access token.
	AccessTokenKey = "accessToken"
	// RefreshTokenKey is the persisted name of the refresh token.
	RefreshTokenKey = "refreshToken"
)

// ErrEmptyAccessToken is returned when a pair without an access token is stored.
var ErrEmptyAccessToken = errors.New("credential pair has no access token")

// Store owns the session credential pair. Mutation happens only through
// SetPair (login, register, refresh) and Clear (logout, refresh failure).
type Store interface {
	AccessToken() string
	RefreshToken() string
	SetPair(pair *oauth2.Token) error
	Clear() error
}

// Pair returns a copy of the stored credential pair or nil when anonymous.
func Pair(s Store) *oauth2.Token {
	access := s.AccessToken()
	if access == "" {
		return nil
	}
	return &oauth2.Token{AccessToken: access, RefreshToken: s.RefreshToken(), TokenType: "Bearer"}
}

type MemoryStoreOption func(*memoryStore)

// WithPair seeds the store with an existing pair.
func WithPair(pair *oauth2.Token) MemoryStoreOption {
	return func(m *memoryStore) {
		if pair != nil {
			m.access, m.refresh = pair.AccessToken, pair.RefreshToken
		}
	}
}

type memoryStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

func (m *memoryStore) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.access
}

func (m *memoryStore) RefreshToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refresh
}

func (m *memoryStore) SetPair(pair *oauth2.Token) error {
	if pair == nil || pair.AccessToken == "" {
		return ErrEmptyAccessToken
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = pair.AccessToken, pair.RefreshToken
	return nil
}

func (m *memoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = "", ""
	return nil
}

// NewMemoryStore creates a process local store.
func NewMemoryStore(options ...MemoryStoreOption) Store {
	return newMemoryStore(options...)
}

func newMemoryStore(options ...MemoryStoreOption) *memoryStore {
	ret := &memoryStore{}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
