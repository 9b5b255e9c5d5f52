// Package token issues and verifies signed, time-limited access tokens.
//
// Tokens are HS256 JWTs carrying exactly two identity claims, user_id and
// user_email, plus exp and iat. Verification is stateless: there is no
// revocation list, a token stays valid until it expires.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	claimUserID    = "user_id"
	claimUserEmail = "user_email"

	// expiryLeeway makes a token expire only once now is past exp. jwt
	// rejects at now >= exp and exp has whole-second precision.
	expiryLeeway = time.Second
)

var (
	ErrMissingSecret    = errors.New("token: signing secret is empty")
	ErrInvalidTTL       = errors.New("token: ttl must be positive")
	ErrInvalidSignature = errors.New("token: signature is invalid")
	ErrExpired          = errors.New("token: expired")
	ErrMalformedClaims  = errors.New("token: required claims are missing or malformed")
)

// Claims are the verified identity claims of a token.
type Claims struct {
	UserID    string
	UserEmail string
	ExpiresAt time.Time
}

// Service signs and verifies tokens with a single server-held secret.
type Service struct {
	secret []byte
	ttl    time.Duration
	method jwt.SigningMethod
	now    func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source used when issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(secret string, ttl time.Duration, opts ...Option) (*Service, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}

	s := &Service{
		secret: []byte(secret),
		ttl:    ttl,
		method: jwt.SigningMethodHS256,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TTL returns the lifetime of issued tokens.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for the given identity. The expiration is always
// issue time plus the configured TTL.
func (s *Service) Issue(userID, userEmail string) (string, time.Time, error) {
	if userID == "" || userEmail == "" {
		return "", time.Time{}, ErrMalformedClaims
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := jwt.MapClaims{
		claimUserID:    userID,
		claimUserEmail: userEmail,
		"exp":          expiresAt.Unix(),
		"iat":          now.Unix(),
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, time.Unix(expiresAt.Unix(), 0), nil
}

// Verify checks the signature and expiry of tokenString and returns its
// identity claims. A token is expired when now is after exp, so it is still
// accepted during the exp second itself.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
		jwt.WithLeeway(expiryLeeway),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenRequiredClaimMissing), errors.Is(err, jwt.ErrInvalidType):
			return nil, ErrMalformedClaims
		default:
			return nil, ErrInvalidSignature
		}
	}

	userID, ok := claims[claimUserID].(string)
	if !ok || userID == "" {
		return nil, ErrMalformedClaims
	}
	userEmail, ok := claims[claimUserEmail].(string)
	if !ok || userEmail == "" {
		return nil, ErrMalformedClaims
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrMalformedClaims
	}

	return &Claims{
		UserID:    userID,
		UserEmail: userEmail,
		ExpiresAt: exp.Time,
	}, nil
}
