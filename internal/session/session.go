package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/EO-DataHub/eodhp-crm-console/internal/tokenstore"
	"github.com/EO-DataHub/eodhp-crm-console/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var ErrNilDependency = errors.New("session store requires an auth API and a token storage")

// AuthAPI is the part of the CRM API the session store talks to.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	ValidateToken(ctx context.Context, token string) (*models.User, error)
	UpdateProfile(ctx context.Context, token string, update models.ProfileUpdate) (*models.User, error)
}

// Store holds the authenticated user and the login lifecycle.
type Store struct {
	api     AuthAPI
	storage tokenstore.Storage
	key     string
	log     *zerolog.Logger

	mu        sync.RWMutex
	state     State
	listeners []func(State)

	bootstrap sync.Once
}

type Option func(*Store)

// WithLogger sets the logger failures are reported to.
func WithLogger(l *zerolog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithTokenKey overrides the storage key of the bearer credential.
func WithTokenKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// New creates a store in the bootstrapping state.
func New(api AuthAPI, storage tokenstore.Storage, opts ...Option) (*Store, error) {
	if api == nil || storage == nil {
		return nil, ErrNilDependency
	}

	s := &Store{
		api:     api,
		storage: storage,
		key:     tokenstore.TokenKey,
		log:     &log.Logger,
		state:   InitialState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyState(s.state)
}

// Subscribe registers fn to be called with the new state after every
// transition.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) dispatch(a Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	state := copyState(s.state)
	listeners := append([]func(State){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

// Token returns the stored bearer credential, read fresh from storage.
// An empty string means no credential is stored.
func (s *Store) Token(ctx context.Context) (string, error) {
	token, _, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return "", fmt.Errorf("failed to read stored token: %w", err)
	}
	return token, nil
}

// Bootstrap restores the session from a stored token. Only the first call
// has any effect.
func (s *Store) Bootstrap(ctx context.Context) {
	s.bootstrap.Do(func() {
		s.restore(ctx)
	})
}

func (s *Store) restore(ctx context.Context) {
	token, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to read stored token")
	}
	if !ok || token == "" {
		s.dispatch(SetLoading{Loading: false})
		return
	}

	user, err := s.api.ValidateToken(ctx, token)
	if err != nil {
		s.log.Debug().Err(err).Msg("stored token rejected, discarding it")
		if err := s.storage.Remove(ctx, s.key); err != nil {
			s.log.Error().Err(err).Msg("failed to remove stored token")
		}
		s.dispatch(SetLoading{Loading: false})
		return
	}

	s.dispatch(SetUser{User: *user})
}

// Login authenticates with the CRM API and stores the returned token.
func (s *Store) Login(ctx context.Context, email, password string) {
	s.dispatch(SetLoading{Loading: true})

	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.dispatch(LoginFailed{Message: err.Error()})
		return
	}

	if err := s.storage.Set(ctx, s.key, resp.Token); err != nil {
		s.log.Error().Err(err).Msg("failed to store token")
		s.dispatch(LoginFailed{Message: err.Error()})
		return
	}

	s.dispatch(SetUser{User: resp.User})
}

// Logout discards the stored token, whatever state the session is in.
func (s *Store) Logout(ctx context.Context) {
	if err := s.storage.Remove(ctx, s.key); err != nil {
		s.log.Error().Err(err).Msg("failed to remove stored token")
	}
	s.dispatch(Logout{})
}

// UpdateProfile sends a partial user record and replaces the user with the
// server's copy.
func (s *Store) UpdateProfile(ctx context.Context, update models.ProfileUpdate) {
	token, err := s.Token(ctx)
	if err != nil {
		s.dispatch(SetError{Message: err.Error()})
		return
	}

	user, err := s.api.UpdateProfile(ctx, token, update)
	if err != nil {
		s.dispatch(SetError{Message: err.Error()})
		return
	}

	s.dispatch(SetUser{User: *user})
}

func copyState(s State) State {
	if s.User != nil {
		user := *s.User
		user.Permissions = append([]string(nil), s.User.Permissions...)
		s.User = &user
	}
	return s
}
