package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yourorg/homenest/internal/domain"
)

// Claims carried by a HomeNest identity token.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Verifier exchanges a bearer credential for a verified principal. It
// performs read-only verification: HMAC signature, expiry, and issuer.
// The email claim it yields is the only identity trusted for
// authorization decisions.
type Verifier struct {
	secret []byte
	issuer string
}

// NewVerifier creates a token verifier pinned to the given secret and issuer.
func NewVerifier(secret, issuer string) *Verifier {
	if issuer == "" {
		issuer = "homenest"
	}
	return &Verifier{secret: []byte(secret), issuer: issuer}
}

// Verify validates tokenString and returns the principal it identifies.
// Any failure (malformed, bad signature, expired, wrong issuer, missing
// email claim) maps to domain.ErrUnauthenticated.
func (v *Verifier) Verify(tokenString string) (*domain.Principal, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithIssuer(v.issuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", domain.ErrUnauthenticated)
	}

	if claims.Email == "" {
		return nil, fmt.Errorf("%w: token has no email claim", domain.ErrUnauthenticated)
	}

	return &domain.Principal{
		Email:   claims.Email,
		Subject: claims.Subject,
		Name:    claims.Name,
	}, nil
}

// GenerateToken mints a signed token for the given identity. Used by
// the seed tooling and tests; the server itself never issues tokens.
func (v *Verifier) GenerateToken(email, name string, expiresIn time.Duration) (string, error) {
	if email == "" {
		return "", fmt.Errorf("email required")
	}
	now := time.Now()
	claims := Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			Issuer:    v.issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

// ExtractToken pulls the credential out of an Authorization header.
func ExtractToken(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fmt.Errorf("invalid authorization header")
	}
	return parts[1], nil
}
