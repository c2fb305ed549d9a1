package mock

import (
	"crypto/rand"
	"fmt"
	"github.com/viant/rag/schema"
	"golang.org/x/crypto/bcrypt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// BasePath is where the API is mounted.
const BasePath = "/api/v1"

type user struct {
	schema.User
	passwordHash []byte
	generation   int
}

type faculty struct {
	profile  *schema.FacultyProfile
	articles []*schema.Article
}

type batch struct {
	schema.FacultyUploadBatch
	userID    int
	summaries []*schema.FacultySummary
}

// Service is an in-memory research-RAG API
type Service struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	mu            sync.Mutex
	users         map[string]*user
	refreshTokens map[string]string // jti -> email
	documents     map[int64]*document
	history       map[int64][]*schema.QaHistory
	faculty       map[string]*faculty
	batches       map[int64]*batch
	sequence      int64
	seeds         []*schema.RegisterRequest

	refreshCount int32
	logoutCount  int32
	refreshDelay atomic.Int64
}

type document struct {
	schema.Document
	userID  int
	content []byte
}

type Option func(*Service)

// WithAccessTTL sets access token lifetime
func WithAccessTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.AccessTTL = ttl
	}
}

// WithRefreshTTL sets refresh token lifetime
func WithRefreshTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.RefreshTTL = ttl
	}
}

// WithUser seeds an account
func WithUser(firstName, lastName, email, password string) Option {
	return func(s *Service) {
		s.seeds = append(s.seeds, &schema.RegisterRequest{FirstName: firstName, LastName: lastName, Email: email, Password: password})
	}
}

// WithFaculty seeds a faculty profile and its articles
func WithFaculty(profile *schema.FacultyProfile, articles ...*schema.Article) Option {
	return func(s *Service) {
		s.faculty[profile.FacultyID] = &faculty{profile: profile, articles: articles}
	}
}

// NewService creates a new mock API
func NewService(opts ...Option) (*Service, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate secret: %v", err)
	}
	service := &Service{
		Secret:        secret,
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    24 * time.Hour,
		users:         map[string]*user{},
		refreshTokens: map[string]string{},
		documents:     map[int64]*document{},
		history:       map[int64][]*schema.QaHistory{},
		faculty:       map[string]*faculty{},
		batches:       map[int64]*batch{},
	}
	for _, opt := range opts {
		opt(service)
	}
	for _, seed := range service.seeds {
		if _, err := service.addUser(seed); err != nil {
			return nil, fmt.Errorf("failed to seed user %v: %w", seed.Email, err)
		}
	}
	return service, nil
}

// ExpireAccessTokens invalidates every access token issued so far.
func (s *Service) ExpireAccessTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		u.generation++
	}
}

// RevokeRefreshTokens invalidates every refresh token issued so far.
func (s *Service) RevokeRefreshTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshTokens = map[string]string{}
}

// SetRefreshDelay slows the refresh endpoint down, to widen race windows in tests.
func (s *Service) SetRefreshDelay(delay time.Duration) {
	s.refreshDelay.Store(int64(delay))
}

// RefreshCount returns the number of refresh calls received.
func (s *Service) RefreshCount() int {
	return int(atomic.LoadInt32(&s.refreshCount))
}

// LogoutCount returns the number of logout calls received.
func (s *Service) LogoutCount() int {
	return int(atomic.LoadInt32(&s.logoutCount))
}

func (s *Service) addUser(req *schema.RegisterRequest) (*user, error) {
	if len(req.Password) < 8 {
		return nil, newStatusError(http.StatusBadRequest, "Password must be at least 8 characters long")
	}
	if req.Email == "" || req.FirstName == "" || req.LastName == "" {
		return nil, newStatusError(http.StatusBadRequest, "name and email cannot be empty")
	}
	if _, ok := s.users[req.Email]; ok {
		return nil, newStatusError(http.StatusConflict, "email already registered")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	s.sequence++
	ret := &user{
		User:         schema.User{ID: int(s.sequence), FirstName: req.FirstName, LastName: req.LastName, Email: req.Email, Role: schema.RoleUser},
		passwordHash: hash,
	}
	s.users[req.Email] = ret
	return ret, nil
}

func (s *Service) nextID() int64 {
	s.sequence++
	return s.sequence
}

type statusError struct {
	status  int
	message string
}

func (e *statusError) Error() string {
	return e.message
}

func newStatusError(status int, message string) *statusError {
	return &statusError{status: status, message: message}
}
