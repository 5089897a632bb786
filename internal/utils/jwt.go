package utils

import (
	"errors" // Error values
	"time"   // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// ErrMissingEmail is returned for a verified token that carries no email claim
var ErrMissingEmail = errors.New("token has no email claim")

// JWT Claims
type Claims struct {
	Email                string `json:"email"` // Identity of the bearer
	jwt.RegisteredClaims        // Standard JWT claims
}

// TokenManager issues and verifies HS256 bearer tokens with one shared secret
type TokenManager struct {
	secret []byte           // Signing secret
	ttl    time.Duration    // Expiry window of issued tokens
	now    func() time.Time // Clock, replaceable in tests
}

// NewTokenManager creates a TokenManager signing with secret and issuing tokens valid for ttl
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock returns a copy of m reading time from now
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	cp := *m
	cp.now = now
	return &cp
}

// GenerateJWT creates a token for the given email
func (m *TokenManager) GenerateJWT(email string) (string, error) {
	issued := m.now().Truncate(jwt.TimePrecision) // iat and exp are encoded at this precision
	// Set token claims
	claims := Claims{
		Email: email, // Custom claim for the email
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issued.Add(m.ttl)), // Token expires after the configured window
			IssuedAt:  jwt.NewNumericDate(issued),            // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString(m.secret)                        // Sign the token with the secret
}

// ParseJWT parses and validates a token string
func (m *TokenManager) ParseJWT(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return m.secret, nil // Return the secret key for validation
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), // Only the algorithm we sign with
		jwt.WithExpirationRequired(),                                 // Every token we issue carries exp
		jwt.WithTimeFunc(m.now),                                      // Expiry is checked against our clock
	)
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	if claims.Email == "" {
		return nil, ErrMissingEmail
	}
	return claims, nil
}
