package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Purpose binds a token to the flow that issued it so a verification link
// cannot be replayed as a session.
type Purpose string

const (
	PurposeSession     Purpose = "session"
	PurposeEmailVerify Purpose = "verify_email"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	UserID  string  `json:"user_id"`
	Purpose Purpose `json:"purpose"`
	jwt.RegisteredClaims
}

type Signer struct {
	secret []byte
	issuer string
	ttls   map[Purpose]time.Duration
	now    func() time.Time
}

func NewSigner(secret, issuer string, sessionTTL, verifyTTL time.Duration) *Signer {
	return &Signer{
		secret: []byte(secret),
		issuer: issuer,
		ttls: map[Purpose]time.Duration{
			PurposeSession:     sessionTTL,
			PurposeEmailVerify: verifyTTL,
		},
		now: time.Now,
	}
}

// Issue signs an HS256 token for userID valid for the lifetime of purpose.
func (s *Signer) Issue(userID string, purpose Purpose) (string, error) {
	ttl, ok := s.ttls[purpose]
	if !ok {
		return "", fmt.Errorf("unknown token purpose %q", purpose)
	}

	now := s.now()
	claims := Claims{
		UserID:  userID,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse validates tokenStr and returns its claims. Any failure, including a
// purpose mismatch, is reported as ErrInvalidToken.
func (s *Signer) Parse(tokenStr string, purpose Purpose) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(s.now),
		jwt.WithIssuer(s.issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != purpose || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
