package auth

import (
	"errors"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yoockh/jobmate/internal/models"
)

var (
	ErrNotConfigured = errors.New("SUPABASE_JWT_SECRET is not set")
	ErrMissingToken  = errors.New("missing bearer token")
	ErrInvalidToken  = errors.New("invalid token")
	ErrIssuer        = errors.New("invalid token issuer")
	ErrAudience      = errors.New("invalid token audience")
	ErrNoSubject     = errors.New("missing subject")
)

type supabaseClaims struct {
	jwt.RegisteredClaims
	Email        string         `json:"email"`
	Role         string         `json:"role"`         // "authenticated" / "anon"
	AppMetadata  map[string]any `json:"app_metadata"` // {"role":"admin"} for operators
	UserMetadata map[string]any `json:"user_metadata"`
}

// Verifier validates Supabase-issued HS256 access tokens.
type Verifier struct {
	secret   []byte
	issuer   string
	audience string
}

func NewVerifier(secret, issuer, audience string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer, audience: audience}
}

// BearerToken extracts the raw token from an Authorization header value.
func BearerToken(header string) (string, error) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", ErrMissingToken
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if raw == "" {
		return "", ErrMissingToken
	}
	return raw, nil
}

// Verify parses raw and returns the user it was issued for.
func (v *Verifier) Verify(raw string) (*models.User, error) {
	if v == nil || len(v.secret) == 0 {
		return nil, ErrNotConfigured
	}

	claims := &supabaseClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || tok == nil || !tok.Valid {
		return nil, ErrInvalidToken
	}

	if v.issuer != "" && claims.Issuer != v.issuer {
		return nil, ErrIssuer
	}
	if v.audience != "" && !slices.Contains([]string(claims.Audience), v.audience) {
		return nil, ErrAudience
	}
	if claims.Subject == "" {
		return nil, ErrNoSubject
	}

	role := models.RoleUser
	if s, ok := claims.AppMetadata["role"].(string); ok && s != "" {
		role = models.UserRole(strings.ToLower(s))
	}

	return &models.User{ID: claims.Subject, Email: claims.Email, Role: role}, nil
}
