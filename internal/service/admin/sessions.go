package admin

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/daralkutub/storefront/internal/domain"
)

// DefaultTokenTTL is how long an admin session stays valid.
const DefaultTokenTTL = 24 * time.Hour

// refreshWindow is the remaining-lifetime threshold under which Refresh
// re-signs the token instead of returning it unchanged.
const refreshWindow = time.Hour

// tokenClaims is the signed payload embedded in an admin token.
type tokenClaims struct {
	Subject   string `json:"sub"`
	ExpiresAt int64  `json:"exp"`
}

// SessionManager issues and verifies expiring admin tokens. The expiry lives
// inside the signed payload, so every request is verified server-side rather
// than trusting a client-held flag.
type SessionManager struct {
	username string
	password string
	secret   []byte
	ttl      time.Duration
	logger   *log.Entry
	now      func() time.Time
}

// SessionOption customizes the manager.
type SessionOption func(*SessionManager)

// WithTokenTTL overrides the default token lifetime.
func WithTokenTTL(ttl time.Duration) SessionOption {
	return func(m *SessionManager) {
		m.ttl = ttl
	}
}

// WithSessionClock overrides the time source, used by tests.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(m *SessionManager) {
		m.now = now
	}
}

// NewSessionManager creates a manager bound to one admin credential pair and
// a signing secret.
func NewSessionManager(username, password string, secret []byte, logger *log.Entry, opts ...SessionOption) *SessionManager {
	if logger == nil {
		logger = log.New().WithField("component", "admin-sessions")
	}
	m := &SessionManager{
		username: username,
		password: password,
		secret:   secret,
		ttl:      DefaultTokenTTL,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Login checks the credentials in constant time and issues a token.
func (m *SessionManager) Login(username, password string) (string, error) {
	// Hashing first makes the comparison length-independent.
	wantUser := sha256.Sum256([]byte(m.username))
	gotUser := sha256.Sum256([]byte(username))
	wantPass := sha256.Sum256([]byte(m.password))
	gotPass := sha256.Sum256([]byte(password))

	userOK := subtle.ConstantTimeCompare(wantUser[:], gotUser[:])
	passOK := subtle.ConstantTimeCompare(wantPass[:], gotPass[:])
	if userOK&passOK != 1 {
		m.logger.WithField("username", username).Warn("admin login rejected")
		return "", domain.ErrInvalidCredentials
	}

	token, err := m.issue(m.now().Add(m.ttl))
	if err != nil {
		return "", err
	}
	m.logger.WithField("username", username).Info("admin logged in")
	return token, nil
}

// Verify checks the token signature and expiry.
func (m *SessionManager) Verify(token string) error {
	_, err := m.claims(token)
	return err
}

// Refresh re-signs a valid token when it is close to expiry; tokens with
// plenty of lifetime left are returned unchanged.
func (m *SessionManager) Refresh(token string) (string, error) {
	claims, err := m.claims(token)
	if err != nil {
		return "", err
	}

	expiry := time.Unix(claims.ExpiresAt, 0)
	if expiry.Sub(m.now()) > refreshWindow {
		return token, nil
	}
	return m.issue(m.now().Add(m.ttl))
}

func (m *SessionManager) issue(expiry time.Time) (string, error) {
	payload, err := json.Marshal(tokenClaims{
		Subject:   m.username,
		ExpiresAt: expiry.Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal token claims: %w", err)
	}

	encoded := base64.RawURLEncoding.EncodeToString(payload)
	return encoded + "." + m.sign(encoded), nil
}

func (m *SessionManager) claims(token string) (tokenClaims, error) {
	encoded, signature, found := strings.Cut(token, ".")
	if !found {
		return tokenClaims{}, domain.ErrTokenInvalid
	}

	want := m.sign(encoded)
	if subtle.ConstantTimeCompare([]byte(want), []byte(signature)) != 1 {
		return tokenClaims{}, domain.ErrTokenInvalid
	}

	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return tokenClaims{}, domain.ErrTokenInvalid
	}
	var claims tokenClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return tokenClaims{}, domain.ErrTokenInvalid
	}

	if m.now().Unix() >= claims.ExpiresAt {
		return tokenClaims{}, domain.ErrTokenExpired
	}
	return claims, nil
}

func (m *SessionManager) sign(encoded string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(encoded))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
