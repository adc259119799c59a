package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gab-correia/w1-app/internal/domain"
)

const (
	DefaultTTL     = 2 * time.Hour
	MinSecretBytes = 32
)

var (
	ErrSecretRequired = errors.New("jwt secret is required")
	ErrSecretTooShort = fmt.Errorf("jwt secret must be at least %d bytes", MinSecretBytes)
)

// Verification failure kinds. Callers reject all three the same way.
var (
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenBadSignature = errors.New("token signature invalid")
	ErrTokenExpired      = errors.New("token expired")
)

type Claims struct {
	UID  string      `json:"uid"`
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type JWTer struct {
	secret []byte
	issuer string
	ttl    time.Duration

	// Now is the clock used for iat/exp and for validation.
	Now func() time.Time
}

// NewJWTer refuses to build a signer without a real secret.
func NewJWTer(secret, issuer string, ttl time.Duration) (*JWTer, error) {
	if secret == "" {
		return nil, ErrSecretRequired
	}
	if len(secret) < MinSecretBytes {
		return nil, ErrSecretTooShort
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &JWTer{secret: []byte(secret), issuer: issuer, ttl: ttl, Now: time.Now}, nil
}

func (j *JWTer) TTL() time.Duration { return j.ttl }

func (j *JWTer) Issue(uid string, role domain.Role) (string, error) {
	now := j.Now()
	claims := Claims{
		UID:  uid,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

// Parse verifies the signature before looking at any claim, then checks
// issuer and expiry. A token is valid while now < exp. Errors wrap exactly
// one of ErrTokenMalformed, ErrTokenBadSignature or ErrTokenExpired.
func (j *JWTer) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg %v", token.Header["alg"])
		}
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, classify(err)
	}
	if !t.Valid {
		return nil, ErrTokenMalformed
	}

	v := jwt.NewValidator(
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(j.Now),
	)
	if err := v.Validate(claims); err != nil {
		return nil, classify(err)
	}
	if claims.UID == "" {
		return nil, fmt.Errorf("%w: missing uid", ErrTokenMalformed)
	}
	if _, err := domain.ParseRole(string(claims.Role)); err != nil {
		return nil, fmt.Errorf("%w: unknown role", ErrTokenMalformed)
	}
	return claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrTokenBadSignature, err)
	default:
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
}

// FailureReason names the failure kind of a Parse error for logs and metrics.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrTokenBadSignature):
		return "bad_signature"
	default:
		return "malformed"
	}
}
