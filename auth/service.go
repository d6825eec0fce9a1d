// Package auth backs the dashboard's sign-in screens with an in-memory
// account directory and JWT session tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"market-dashboard/models"
	"market-dashboard/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	AccessTTL  = 24 * time.Hour
	RefreshTTL = 7 * 24 * time.Hour

	MinPasswordLength = 8

	kindAccess  = "access"
	kindRefresh = "refresh"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnknownProvider    = errors.New("unknown identity provider")
	ErrInvalidInput       = errors.New("invalid input")
)

// Providers are the social sign-in buttons the dashboard offers.
var Providers = map[string]string{
	"github":   "GitHub",
	"facebook": "Facebook",
	"google":   "Google",
}

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type claims struct {
	Kind string `json:"typ"`
	jwt.RegisteredClaims
}

type Service struct {
	secret []byte
	store  session.Store
	delay  time.Duration
	cost   int
	now    func() time.Time
	log    *logrus.Entry

	dummyOnce sync.Once
	dummyHash []byte

	mu      sync.RWMutex
	byEmail map[string]string
	users   map[string]models.User
}

func NewService(secret string, store session.Store, delay time.Duration, log *logrus.Logger) *Service {
	return &Service{
		secret:  []byte(secret),
		store:   store,
		delay:   delay,
		cost:    bcrypt.DefaultCost,
		now:     time.Now,
		log:     log.WithField("component", "auth"),
		byEmail: make(map[string]string),
		users:   make(map[string]models.User),
	}
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register adds an account without the simulated delay. Used to seed the
// demo user.
func (s *Service) Register(in SignupInput) (models.User, error) {
	email := normalizeEmail(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return models.User{}, fmt.Errorf("%w: email: %v", ErrInvalidInput, err)
	}
	if len(in.Password) < MinPasswordLength {
		return models.User{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[email]; ok {
		return models.User{}, ErrEmailTaken
	}

	u := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	s.byEmail[email] = u.ID
	s.users[u.ID] = u
	return u, nil
}

// Signup registers a new email/password account.
func (s *Service) Signup(ctx context.Context, in SignupInput) (models.User, error) {
	if err := wait(ctx, s.delay); err != nil {
		return models.User{}, err
	}
	u, err := s.Register(in)
	if err != nil {
		return models.User{}, err
	}
	s.log.WithField("user_id", u.ID).Info("User signed up")
	return u, nil
}

// Login checks the password and issues a token pair.
func (s *Service) Login(ctx context.Context, email, password string) (Tokens, error) {
	if err := wait(ctx, s.delay); err != nil {
		return Tokens{}, err
	}

	s.mu.RLock()
	u, ok := s.users[s.byEmail[normalizeEmail(email)]]
	s.mu.RUnlock()
	// Social accounts have no password and cannot log in this way. Misses
	// still pay for a bcrypt comparison so they take as long as a bad password.
	if !ok || u.PasswordHash == "" {
		bcrypt.CompareHashAndPassword(s.missHash(), []byte(password))
		return Tokens{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return Tokens{}, ErrInvalidCredentials
	}

	return s.issue(ctx, u.ID)
}

// SocialLogin signs in through a mock identity provider, creating the
// provider's account on first use.
func (s *Service) SocialLogin(ctx context.Context, provider string) (Tokens, error) {
	provider = strings.ToLower(provider)
	display, ok := Providers[provider]
	if !ok {
		return Tokens{}, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
	if err := wait(ctx, s.delay); err != nil {
		return Tokens{}, err
	}

	email := fmt.Sprintf("%s.user@%s.example", provider, provider)

	s.mu.Lock()
	id, ok := s.byEmail[email]
	if !ok {
		u := models.User{
			ID:        uuid.NewString(),
			Email:     email,
			FirstName: display,
			LastName:  "User",
			Provider:  provider,
			CreatedAt: s.now(),
		}
		s.byEmail[email] = u.ID
		s.users[u.ID] = u
		id = u.ID
	}
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"provider": provider, "user_id": id}).Info("Social sign-in")
	return s.issue(ctx, id)
}

// Refresh exchanges a live refresh token for a new access token. The refresh
// token itself is returned unchanged.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	if err := wait(ctx, s.delay); err != nil {
		return Tokens{}, err
	}

	c, err := s.parse(refreshToken, kindRefresh)
	if err != nil {
		return Tokens{}, err
	}

	owner, ok, err := s.store.Lookup(ctx, refreshToken)
	if err != nil {
		return Tokens{}, err
	}
	if !ok || owner != c.Subject {
		return Tokens{}, fmt.Errorf("%w: refresh token revoked", ErrInvalidToken)
	}

	access, err := s.sign(c.Subject, kindAccess, AccessTTL)
	if err != nil {
		return Tokens{}, err
	}
	return Tokens{AccessToken: access, RefreshToken: refreshToken}, nil
}

// Logout revokes a refresh token belonging to userID.
func (s *Service) Logout(ctx context.Context, userID, refreshToken string) error {
	if err := wait(ctx, s.delay); err != nil {
		return err
	}

	c, err := s.parse(refreshToken, kindRefresh)
	if err != nil {
		return err
	}
	if c.Subject != userID {
		return fmt.Errorf("%w: refresh token belongs to another user", ErrInvalidToken)
	}
	return s.store.Revoke(ctx, refreshToken)
}

// Authenticate validates an access token and returns its user id.
func (s *Service) Authenticate(accessToken string) (string, error) {
	c, err := s.parse(accessToken, kindAccess)
	if err != nil {
		return "", err
	}
	return c.Subject, nil
}

func (s *Service) User(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

// missHash is compared against when a login names no password account.
func (s *Service) missHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("no-such-account"), s.cost)
	})
	return s.dummyHash
}

func (s *Service) issue(ctx context.Context, userID string) (Tokens, error) {
	access, err := s.sign(userID, kindAccess, AccessTTL)
	if err != nil {
		return Tokens{}, err
	}
	refresh, err := s.sign(userID, kindRefresh, RefreshTTL)
	if err != nil {
		return Tokens{}, err
	}
	if err := s.store.Save(ctx, refresh, userID, RefreshTTL); err != nil {
		return Tokens{}, err
	}
	return Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Service) sign(userID, kind string, ttl time.Duration) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, nil
}

func (s *Service) parse(tokenString, kind string) (*claims, error) {
	c := &claims{}
	_, err := jwt.ParseWithClaims(tokenString, c, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.Kind != kind {
		return nil, fmt.Errorf("%w: expected %s token", ErrInvalidToken, kind)
	}
	return c, nil
}
