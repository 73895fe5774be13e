// Package session is the single source of truth for who is logged in and
// what credential authorizes requests. All credential mutation funnels
// through its operations; no other component writes the persisted slot
// directly, except the HTTP layer's 401 purge.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/leadform/leadform/internal/api"
	"github.com/leadform/leadform/internal/client"
	"github.com/leadform/leadform/internal/credentials"
)

// Error message precedence per flow, and the generic fallbacks. The order
// is part of the observable contract: given a body with several recognized
// fields, the surfaced text is always the highest-priority one.
var (
	loginErrorOrder     = []string{"non_field_errors", "message", "error"}
	changePasswordOrder = []string{"current_password", "new_password", "confirm_password", "non_field_errors", "message"}
	resetConfirmOrder   = []string{"new_password", "confirm_password", "non_field_errors", "error", "message"}
	genericMessageOrder = []string{"message"}
)

const (
	loginFallback          = "Login failed. Please check your credentials."
	changePasswordFallback = "Failed to change password"
	resetRequestFallback   = "Failed to send password reset email"
	resetConfirmFallback   = "Failed to reset password"
	updateProfileFallback  = "Failed to update profile"
	refreshFallback        = "Failed to refresh profile"
)

// Session holds the authenticated identity and owns the persisted
// credential. One Session exists per process, constructed by the
// composition root and passed by handle to whoever needs it.
type Session struct {
	mu    sync.Mutex
	creds *credentials.Store
	api   *client.Client

	identity       *api.User
	loadingInitial bool

	initOnce sync.Once
}

// New constructs a Session over the given credential store and API client.
// The session starts in its pre-Initialize state: loadingInitial is true
// until the one-time startup check completes.
func New(creds *credentials.Store, apiClient *client.Client) *Session {
	return &Session{
		creds:          creds,
		api:            apiClient,
		loadingInitial: true,
	}
}

// Initialize runs the one-time startup check: if a persisted credential
// exists, resolve it to a profile; on any failure purge the credential and
// stay anonymous. loadingInitial transitions to false exactly once,
// whether or not a credential existed.
func (s *Session) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		defer func() {
			s.mu.Lock()
			s.loadingInitial = false
			s.mu.Unlock()
		}()

		if _, err := s.creds.Load(); err != nil {
			if !errors.Is(err, credentials.ErrNoCredential) {
				log.Error().Err(err).Msg("failed to read persisted credential")
			}
			return
		}

		user, err := s.api.Profile(ctx)
		if err != nil {
			// An unresolvable credential implies an invalid or expired
			// session: purge it rather than carry it forward.
			log.Warn().Err(err).Msg("startup profile fetch failed, clearing credential")
			if clearErr := s.creds.Clear(); clearErr != nil {
				log.Error().Err(clearErr).Msg("failed to clear credential")
			}
			return
		}

		s.mu.Lock()
		s.identity = user
		s.mu.Unlock()
	})
}

// LoadingInitial reports whether the startup check is still in flight.
func (s *Session) LoadingInitial() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadingInitial
}

// Identity returns the authenticated principal, or nil when anonymous.
func (s *Session) Identity() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// IsAuthenticated reports whether an identity is resolved.
func (s *Session) IsAuthenticated() bool {
	return s.Identity() != nil
}

// Login exchanges credentials for a token, persists it and sets the
// identity. On failure nothing is mutated and the returned error carries
// the user-facing message.
func (s *Session) Login(ctx context.Context, username, password string) (*api.User, error) {
	resp, err := s.api.Login(ctx, username, password)
	if err != nil {
		return nil, s.surface(err, loginErrorOrder, loginFallback)
	}

	if err := s.creds.Save(resp.Token); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.identity = &resp.User
	s.mu.Unlock()

	log.Info().Str("username", resp.User.Username).Str("userType", resp.User.UserType).Msg("logged in")

	return &resp.User, nil
}

// Logout calls the remote logout best-effort, then unconditionally clears
// the persisted credential and the identity. A failed remote call is
// logged, never surfaced, and never blocks the local transition.
func (s *Session) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		log.Warn().Err(err).Msg("remote logout failed")
	}

	if err := s.creds.Clear(); err != nil {
		log.Error().Err(err).Msg("failed to clear credential")
	}

	s.mu.Lock()
	s.identity = nil
	s.mu.Unlock()

	log.Info().Msg("logged out")
}

// ChangePassword submits all three fields; the server re-validates the
// match and the current password. When the response carries a rotated
// credential it replaces the stored one in place: the old token is
// invalidated server-side, so keeping it would break subsequent requests.
func (s *Session) ChangePassword(ctx context.Context, current, newPassword, confirm string) (string, error) {
	resp, err := s.api.ChangePassword(ctx, current, newPassword, confirm)
	if err != nil {
		return "", s.surface(err, changePasswordOrder, changePasswordFallback)
	}

	if resp.Token != "" {
		if err := s.creds.Save(resp.Token); err != nil {
			return "", err
		}
		log.Debug().Msg("credential rotated after password change")
	}

	if resp.Message != "" {
		return resp.Message, nil
	}
	return "Password changed successfully", nil
}

// RequestPasswordReset asks the server to email a reset link. Operates on a
// possibly-anonymous user and never touches the current session.
func (s *Session) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	resp, err := s.api.RequestPasswordReset(ctx, email)
	if err != nil {
		return "", s.surface(err, genericMessageOrder, resetRequestFallback)
	}

	if resp.Message != "" {
		return resp.Message, nil
	}
	return "Password reset email sent", nil
}

// ConfirmPasswordReset completes a reset with the emailed token. Like the
// request flow, it never touches the current session.
func (s *Session) ConfirmPasswordReset(ctx context.Context, token, newPassword, confirm string) (string, error) {
	resp, err := s.api.ConfirmPasswordReset(ctx, token, newPassword, confirm)
	if err != nil {
		return "", s.surface(err, resetConfirmOrder, resetConfirmFallback)
	}

	if resp.Message != "" {
		return resp.Message, nil
	}
	return "Password reset successfully", nil
}

// UpdateProfile submits the writable fields and, on success, replaces the
// identity wholesale with the server's response. Never a partial merge.
func (s *Session) UpdateProfile(ctx context.Context, update api.ProfileUpdate) (*api.User, error) {
	user, err := s.api.UpdateProfile(ctx, update)
	if err != nil {
		return nil, s.surface(err, genericMessageOrder, updateProfileFallback)
	}

	s.mu.Lock()
	s.identity = user
	s.mu.Unlock()

	return user, nil
}

// RefreshProfile re-fetches the profile to resynchronize after out-of-band
// changes. Failure keeps the existing identity: stale-but-present beats
// null when the cause is likely transient.
func (s *Session) RefreshProfile(ctx context.Context) (*api.User, error) {
	user, err := s.api.Profile(ctx)
	if err != nil {
		return nil, s.surface(err, genericMessageOrder, refreshFallback)
	}

	s.mu.Lock()
	s.identity = user
	s.mu.Unlock()

	return user, nil
}

// HandleUnauthorized clears the in-memory identity after the HTTP layer has
// purged the credential, keeping the identity-implies-credential invariant.
// Wire it into the client's unauthorized handler.
func (s *Session) HandleUnauthorized() {
	s.mu.Lock()
	s.identity = nil
	s.mu.Unlock()
}

// surface maps an API or network failure to a user-facing error message.
// Server-rejected input goes through the flow's precedence order; network
// failures surface the fallback and are already logged by the HTTP layer.
func (s *Session) surface(err error, order []string, fallback string) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return errors.New(apiErr.Message(order, fallback))
	}

	var netErr *client.NetworkError
	if errors.As(err, &netErr) {
		return errors.New(fallback)
	}

	return err
}
