package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecopilot/trip-planner/internal/core/domain"
	"github.com/ecopilot/trip-planner/internal/core/ports"
)

// AuthService implements accounts, sessions and the premium subscription flag
// on top of a keyed user store.
type AuthService struct {
	repo       ports.UserRepository
	sessions   ports.SessionStore
	events     ports.EventPublisher
	jwtSecret  string
	sessionTTL time.Duration
	log        zerolog.Logger
	now        func() time.Time
}

func NewAuthService(
	repo ports.UserRepository,
	sessions ports.SessionStore,
	events ports.EventPublisher,
	jwtSecret string,
	sessionTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	if events == nil {
		events = discardPublisher{}
	}
	return &AuthService{
		repo:       repo,
		sessions:   sessions,
		events:     events,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a free account. It does not log the user in.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.SessionUser, error) {
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("register: user id: %w", err)
	}

	user := &domain.User{
		ID:           id.String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsPremium:    false,
		CreatedAt:    s.now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	s.publish(user, domain.EventRegistered)
	return user.View(), nil
}

// Login verifies credentials, opens a session and signs a token for it.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		Email:     user.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("login: save session: %w", err)
	}

	token, err := s.generateToken(session)
	if err != nil {
		return nil, fmt.Errorf("login: sign token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("session_id", session.ID).Msg("user logged in")
	s.publish(user, domain.EventLoggedIn)
	return &ports.LoginResult{Token: token, SessionID: session.ID, User: user.View()}, nil
}

// Logout removes the session. Unknown sessions are not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return fmt.Errorf("logout: %w", err)
	}

	removed, err := s.sessions.Delete(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	if removed && session != nil {
		s.log.Info().Str("session_id", sessionID).Msg("user logged out")
		s.events.Publish(domain.AccountEvent{Email: session.Email, Kind: domain.EventLoggedOut, Timestamp: s.now()})
	}
	return nil
}

// CurrentUser resolves the session and derives the view from the stored
// record, so it always reflects the latest subscription state.
func (s *AuthService) CurrentUser(ctx context.Context, sessionID string) (*domain.SessionUser, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionNotFound
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindByEmail(ctx, session.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("current user: %w", err)
	}
	return user.View(), nil
}

// IsPremium reports whether the session belongs to a premium user. Anonymous
// sessions are simply not premium.
func (s *AuthService) IsPremium(ctx context.Context, sessionID string) (bool, error) {
	user, err := s.CurrentUser(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsPremium, nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	user, err := s.authenticate(ctx, email, currentPassword)
	if err != nil {
		return err
	}
	if newPassword == "" {
		return domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("update password: hash: %w", err)
	}
	user.PasswordHash = string(hash)

	if err := s.persisted(user, s.repo.UpdatePassword(ctx, user.Email, user.PasswordHash)); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password changed")
	s.publish(user, domain.EventPasswordChanged)
	return nil
}

// Subscribe activates the premium plan and returns the refreshed view.
func (s *AuthService) Subscribe(ctx context.Context, email string) (*domain.SessionUser, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.IsPremium {
		return nil, domain.ErrAlreadySubscribed
	}

	now := s.now()
	user.IsPremium = true
	user.SubscriptionDate = &now

	if err := s.persisted(user, s.repo.UpdateSubscription(ctx, user.Email, true, &now)); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("subscription activated")
	s.publish(user, domain.EventSubscribed)
	return user.View(), nil
}

// CancelSubscription clears the premium plan and returns the refreshed view.
func (s *AuthService) CancelSubscription(ctx context.Context, email string) (*domain.SessionUser, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !user.IsPremium {
		return nil, domain.ErrNotSubscribed
	}

	user.IsPremium = false
	user.SubscriptionDate = nil

	if err := s.persisted(user, s.repo.UpdateSubscription(ctx, user.Email, false, nil)); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("subscription cancelled")
	s.publish(user, domain.EventSubscriptionCancelled)
	return user.View(), nil
}

func (s *AuthService) authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// persisted maps the result of a write to a record read earlier in the same
// call. A record that disappeared in between is reported as ErrPersistFailed.
func (s *AuthService) persisted(user *domain.User, err error) error {
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Error().Str("user_id", user.ID).Msg("user vanished before update")
			return domain.ErrPersistFailed
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (s *AuthService) publish(user *domain.User, kind domain.AccountEventKind) {
	s.events.Publish(domain.AccountEvent{
		Email:     user.Email,
		Name:      user.Name,
		Kind:      kind,
		Timestamp: s.now(),
	})
}

func (s *AuthService) generateToken(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":   session.ID,
		"email": session.Email,
		"iat":   session.CreatedAt.Unix(),
		"exp":   session.ExpiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

type discardPublisher struct{}

func (discardPublisher) Publish(domain.AccountEvent) {}
