// Package session owns the authentication state machine and is the only
// code path allowed to mutate the credential store.
//
// Exactly one Session exists per running client. It starts in
// StatusHydrating; Hydrate must run to completion before any route guard
// decision is meaningful. The machine then cycles between anonymous and
// authenticated for the lifetime of the process; there is no terminal
// state.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dorahnaks/jill-project/internal/api"
)

// Status is the session state.
type Status string

const (
	StatusHydrating     Status = "hydrating"
	StatusAnonymous     Status = "anonymous"
	StatusAuthenticated Status = "authenticated"
)

// User is the profile record backing an authenticated session.
type User struct {
	ID          int
	Email       string
	Role        Role
	DisplayName string
}

// Snapshot is the consumer-visible view of the session. Credentials are
// never part of it.
//
// Invariant: User != nil exactly when Status == StatusAuthenticated.
type Snapshot struct {
	Status Status
	User   *User
}

// Session is the authentication state machine. State reads and commits
// are serialized behind a mutex; the network call inside Hydrate and
// Login runs outside it. Snapshot never blocks behind an in-flight call,
// and concurrent operations resolve last writer wins.
type Session struct {
	mu     sync.Mutex
	status Status
	user   *User

	store CredentialStore
	api   *api.Client
	log   zerolog.Logger
}

// New creates a Session in StatusHydrating. Call Hydrate once at startup
// before rendering anything protected.
func New(store CredentialStore, client *api.Client, log zerolog.Logger) *Session {
	return &Session{
		status: StatusHydrating,
		store:  store,
		api:    client,
		log:    log,
	}
}

// Snapshot returns the current consumer-visible state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Status: s.status, User: s.user}
}

// Hydrate reconstructs the session from persisted credentials. No token
// means anonymous. A token that the profile endpoint rejects, or any
// other failure fetching the profile, clears the store and degrades to
// anonymous silently; first load never shows the user an error. Hydrate
// always settles the state and never returns an error.
//
// The profile fetch runs outside the lock: Snapshot keeps answering,
// reporting StatusHydrating on first load, while the call is in flight.
func (s *Session) Hydrate(ctx context.Context) {
	s.mu.Lock()
	creds, err := s.store.Load()
	if err != nil || creds.AccessToken == "" {
		if err != nil {
			s.log.Warn().Err(err).Msg("credential store unreadable, starting anonymous")
		}
		s.status = StatusAnonymous
		s.user = nil
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	profile, err := s.api.FetchProfile(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		// The stored token is assumed invalid or the profile endpoint
		// unreachable; either way the credentials are no longer trusted.
		var serverErr *api.ServerError
		if errors.As(err, &serverErr) {
			err = ErrSessionExpired
		}
		s.log.Info().Err(err).Msg("hydration failed, clearing stored credentials")
		if clearErr := s.store.Clear(); clearErr != nil {
			s.log.Warn().Err(clearErr).Msg("clearing credential store failed")
		}
		s.status = StatusAnonymous
		s.user = nil
		return
	}

	role, err := ParseRole(profile.Role)
	if err != nil {
		role = RoleCustomer
	}
	s.user = &User{
		ID:          profile.ID,
		Email:       profile.Email,
		Role:        role,
		DisplayName: profile.FullName,
	}
	s.status = StatusAuthenticated
	s.log.Debug().Str("email", profile.Email).Str("role", role.String()).Msg("session hydrated")
}

// Login authenticates against the role-specific endpoint: admins go to
// /auth/login, everyone else to /auth/customer-login.
//
// A well-formed rejection comes back as *AuthRejectedError and leaves the
// session anonymous with no partial credential writes. A transport or
// server failure comes back as ErrAuthFailed with the detail logged here
// rather than surfaced.
func (s *Session) Login(ctx context.Context, email, password string, role Role) error {
	if email == "" {
		return &ValidationError{Field: "email"}
	}
	if password == "" {
		return &ValidationError{Field: "password"}
	}

	// The endpoint call runs before the lock is taken; Snapshot reads stay
	// responsive while credentials are being checked.
	var (
		resp *api.LoginResponse
		err  error
	)
	if role == RoleAdmin {
		resp, err = s.api.LoginAdmin(ctx, email, password)
	} else {
		resp, err = s.api.LoginCustomer(ctx, email, password)
	}
	if err != nil {
		// A 401 is the backend saying "no", not a transport failure:
		// report it as a rejection carrying the backend's message.
		var serverErr *api.ServerError
		if errors.As(err, &serverErr) && serverErr.Status == 401 {
			return &AuthRejectedError{Message: serverErr.Message}
		}
		s.log.Error().Err(err).Str("email", email).Msg("login transport failure")
		return ErrAuthFailed
	}

	if !resp.Success {
		return &AuthRejectedError{Message: resp.Message}
	}

	account := resp.Account()
	if account == nil || resp.AccessToken == "" {
		s.log.Error().Msg("login response missing account or token")
		return ErrAuthFailed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(Credentials{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}); err != nil {
		s.log.Error().Err(err).Msg("persisting credentials failed")
		return ErrAuthFailed
	}

	userRole := role
	if parsed, err := ParseRole(account.Role); err == nil {
		userRole = parsed
	}
	s.user = &User{
		ID:          account.ID,
		Email:       account.Email,
		Role:        userRole,
		DisplayName: account.FullName,
	}
	s.status = StatusAuthenticated
	s.log.Info().Str("email", email).Str("role", userRole.String()).Msg("login successful")
	return nil
}

// Logout clears the credential store and returns to anonymous. Purely
// local, no network effect, and safe to call any number of times.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("clearing credential store failed")
	}
	s.user = nil
	s.status = StatusAnonymous
}
