package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Policy controls the optional parts of token verification. The signing
// algorithm is not configurable: only HMAC tokens are ever accepted.
type Policy struct {
	// EnforceAudience requires the token's aud claim to equal Audience.
	EnforceAudience bool
	Audience        string
}

// Claims is the verified content of a bearer token.
type Claims struct {
	// Subject is the stable external identity issued by the identity provider.
	Subject uuid.UUID
	// Email is optional and best-effort; it may be empty.
	Email     string
	ExpiresAt time.Time
}

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

var errUnexpectedSigningMethod = errors.New("unexpected signing method")

// Verify validates the Authorization header value against the shared secret
// and returns the verified claims. It is pure: no I/O, no logging, no state.
// Failures come back as *Error; a missing or non-Bearer header is classified
// ClassNoCredential so that callers can treat it as anonymous.
func Verify(rawHeaderValue string, secret []byte, policy Policy) (*Claims, error) {
	if rawHeaderValue == "" {
		return nil, newError(ClassNoCredential, nil)
	}
	tokenString := strings.TrimPrefix(rawHeaderValue, "Bearer ")
	if tokenString == rawHeaderValue || tokenString == "" {
		return nil, newError(ClassNoCredential, nil)
	}

	// Expiry is checked before the signature so that an expired token is
	// reported as expired no matter what key it was signed with. The token
	// is rejected either way; nothing is trusted from the unverified pass.
	unverified := &tokenClaims{}
	parsed, _, err := jwt.NewParser().ParseUnverified(tokenString, unverified)
	if err != nil {
		return nil, newError(ClassMalformedCredential, err)
	}
	if _, ok := parsed.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, newError(ClassAlgorithmMismatch,
			fmt.Errorf("%w: %v", errUnexpectedSigningMethod, parsed.Header["alg"]))
	}
	if unverified.ExpiresAt == nil {
		return nil, newError(ClassMalformedCredential, errors.New("missing exp claim"))
	}
	if unverified.ExpiresAt.Before(time.Now()) {
		return nil, newError(ClassExpired, jwt.ErrTokenExpired)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if policy.EnforceAudience {
		opts = append(opts, jwt.WithAudience(policy.Audience))
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", errUnexpectedSigningMethod, t.Header["alg"])
		}
		return secret, nil
	}, opts...)
	if err != nil {
		return nil, newError(classifyParseError(err), err)
	}
	if !token.Valid {
		return nil, newError(ClassMalformedCredential, errors.New("token is invalid"))
	}

	if claims.Subject == "" {
		return nil, newError(ClassMalformedSubject, errors.New("missing sub claim"))
	}
	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, newError(ClassMalformedSubject, err)
	}

	return &Claims{
		Subject:   subject,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func classifyParseError(err error) Classification {
	switch {
	case errors.Is(err, errUnexpectedSigningMethod):
		return ClassAlgorithmMismatch
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ClassBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ClassExpired
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return ClassAudienceMismatch
	default:
		return ClassMalformedCredential
	}
}
