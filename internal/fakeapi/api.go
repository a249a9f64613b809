// Package fakeapi is an in-process stand-in for the BuildUp planning API.
// It speaks the same envelope contract as the hosted service so clients can
// be exercised without network access to it.
package fakeapi

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bobmcallan/buildup/internal/common"
)

// API serves the planning endpoints for a set of registered credentials.
type API struct {
	logger *common.Logger
	cost   int
	now    func() time.Time

	mu      sync.RWMutex
	secrets map[string][]byte // key -> bcrypt hash of secret

	requests atomic.Int64
}

// Option configures the API
type Option func(*API)

// WithLogger sets the logger
func WithLogger(logger *common.Logger) Option {
	return func(a *API) {
		a.logger = logger
	}
}

// WithBcryptCost sets the hashing cost for registered secrets
func WithBcryptCost(cost int) Option {
	return func(a *API) {
		a.cost = cost
	}
}

// WithClock replaces the clock used for envelope datetimes
func WithClock(now func() time.Time) Option {
	return func(a *API) {
		a.now = now
	}
}

// New creates an API with no registered credentials
func New(opts ...Option) *API {
	a := &API{
		logger:  common.NewSilentLogger(),
		cost:    bcrypt.DefaultCost,
		now:     time.Now,
		secrets: make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Register allows key/secret to call the API.
func (a *API) Register(key, secret string) error {
	if key == "" || secret == "" {
		return fmt.Errorf("register credentials: key and secret are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), a.cost)
	if err != nil {
		return fmt.Errorf("register credentials: %w", err)
	}

	a.mu.Lock()
	a.secrets[key] = hash
	a.mu.Unlock()
	return nil
}

// authenticate reports whether the pair was registered
func (a *API) authenticate(key, secret string) bool {
	a.mu.RLock()
	hash, ok := a.secrets[key]
	a.mu.RUnlock()
	if !ok || secret == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(secret)) == nil
}

// RequestCount returns how many HTTP requests reached the API.
func (a *API) RequestCount() int64 {
	return a.requests.Load()
}

// Handler returns the API routes wrapped in middleware.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()
	a.registerRoutes(mux)
	return applyMiddleware(mux, a)
}
