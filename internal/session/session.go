// Package session runs the login and logout flow of the admin front-end and
// keeps the optional remembered token.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Alijeyrad/libremedic_admin/config"
	"github.com/Alijeyrad/libremedic_admin/internal/screen"
	"github.com/Alijeyrad/libremedic_admin/pkg/clinicapi"
	"github.com/Alijeyrad/libremedic_admin/pkg/crypto"
	"github.com/Alijeyrad/libremedic_admin/pkg/reqctx"
)

const (
	UserTypeDoctor  = "doctor"
	UserTypeAdmin   = "admin"
	UserTypePatient = "patient"

	MsgLoginOK      = "Inicio de sesión exitoso"
	MsgLoginFailed  = "Error al iniciar sesión"
	MsgLogoutOK     = "Sesión cerrada"
	MsgLogoutFailed = "Error al cerrar sesión"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
	Remember bool   `json:"remember"`
}

type LoginResult struct {
	Redirect  string          `json:"redirect"`
	UserType  string          `json:"userType"`
	SessionID string          `json:"-"`
	ExpiresAt time.Time       `json:"expiresAt,omitzero"`
	User      *clinicapi.User `json:"user,omitempty"`
}

// Authenticator is the backend side of login. *clinicapi.Client satisfies it.
type Authenticator interface {
	Login(ctx context.Context, creds clinicapi.Credentials) clinicapi.Envelope[clinicapi.LoginResult]
	Logout(ctx context.Context) clinicapi.Envelope[json.RawMessage]
}

// RedirectFor returns where a user type lands after login.
func RedirectFor(userType string) string {
	switch userType {
	case UserTypeAdmin:
		return "/admin"
	case UserTypePatient:
		return "/patient"
	default:
		return "/dashboard"
	}
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Login(ctx context.Context, req LoginRequest, n screen.Notifier) (*LoginResult, error)
	// Logout calls the backend, then forgets sessionID. An empty id only
	// logs out of the backend.
	Logout(ctx context.Context, sessionID string, n screen.Notifier) error
	// Current resolves a session cookie into the caller's identity.
	Current(ctx context.Context, sessionID string) (*reqctx.Session, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type sessionService struct {
	backend    Authenticator
	store      Store
	encKey     []byte
	defaultTTL time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

type Option func(*sessionService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *sessionService) { s.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *sessionService) { s.logger = l }
}

// New creates the session service. A blank encryption key generates a
// random one, so remembered sessions do not survive a restart.
func New(backend Authenticator, store Store, cfg config.SessionConfig, opts ...Option) (Service, error) {
	s := &sessionService{
		backend:    backend,
		store:      store,
		defaultTTL: time.Duration(cfg.TTLMinutes) * time.Minute,
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if strings.TrimSpace(cfg.EncryptionKey) == "" {
		key, err := crypto.RandomKey()
		if err != nil {
			return nil, fmt.Errorf("session service: %w", err)
		}
		s.logger.Warn("session.encryption_key is empty, using an ephemeral key")
		s.encKey = key
	} else {
		key, err := crypto.KeyFromHex(cfg.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("session service: invalid encryption key: %w", err)
		}
		s.encKey = key
	}

	return s, nil
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func (s *sessionService) Login(ctx context.Context, req LoginRequest, n screen.Notifier) (*LoginResult, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return nil, ErrMissingEmail
	}
	userType := strings.ToLower(strings.TrimSpace(req.UserType))
	if userType == "" {
		userType = UserTypeDoctor
	}

	env := s.backend.Login(ctx, clinicapi.Credentials{Email: req.Email, Password: req.Password})
	if !env.Success {
		n.Notify(screen.Notice{Level: screen.LevelError, Message: screen.RequestMessage(env.Error, MsgLoginFailed)})
		return nil, fmt.Errorf("%w: %s", ErrLoginFailed, env.Error)
	}

	res := &LoginResult{
		Redirect: RedirectFor(userType),
		UserType: userType,
		User:     env.Data.User,
	}

	if req.Remember && env.Data.Token != "" {
		if err := s.remember(ctx, res, req.Email, env.Data.Token); err != nil {
			// The backend accepted the login; only the remembered token is lost.
			s.logger.WarnContext(ctx, "could not remember session", "error", err)
		}
	}

	n.Notify(screen.Notice{Level: screen.LevelSuccess, Message: MsgLoginOK})
	return res, nil
}

func (s *sessionService) remember(ctx context.Context, res *LoginResult, email, token string) error {
	now := s.now()
	ttl := TokenTTL(token, s.defaultTTL, now)
	if ttl <= 0 {
		return fmt.Errorf("token already expired")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate session id: %w", err)
	}
	sid := id.String()

	sealed, err := crypto.Seal(s.encKey, token, []byte(sid))
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}

	rec := Record{
		Token:     sealed,
		UserType:  res.UserType,
		Email:     email,
		CreatedAt: now.UTC(),
	}
	if err := s.store.Save(ctx, sid, rec, ttl); err != nil {
		return err
	}

	res.SessionID = sid
	res.ExpiresAt = now.Add(ttl)
	return nil
}

// ---------------------------------------------------------------------------
// Logout
// ---------------------------------------------------------------------------

func (s *sessionService) Logout(ctx context.Context, sessionID string, n screen.Notifier) error {
	env := s.backend.Logout(ctx)

	if sessionID != "" {
		if err := s.store.Delete(ctx, sessionID); err != nil {
			s.logger.WarnContext(ctx, "could not delete session", "error", err)
		}
	}

	if !env.Success {
		n.Notify(screen.Notice{Level: screen.LevelError, Message: screen.RequestMessage(env.Error, MsgLogoutFailed)})
		return fmt.Errorf("%w: %s", ErrLogoutFailed, env.Error)
	}
	n.Notify(screen.Notice{Level: screen.LevelSuccess, Message: MsgLogoutOK})
	return nil
}

// ---------------------------------------------------------------------------
// Current
// ---------------------------------------------------------------------------

func (s *sessionService) Current(ctx context.Context, sessionID string) (*reqctx.Session, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}
	rec, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := crypto.Open(s.encKey, rec.Token, []byte(sessionID)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	return &reqctx.Session{ID: sessionID, UserType: rec.UserType, Email: rec.Email}, nil
}
