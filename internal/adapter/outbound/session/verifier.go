// Package session verifies HS256 session tokens issued by the identity provider.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/creatorkit/server/internal/model"
	"github.com/creatorkit/server/internal/port/outbound"
	"github.com/golang-jwt/jwt/v5"
)

// Config holds session verification settings.
type Config struct {
	Secret string
	Issuer string
	// PlanClaim is the claim holding the plan. Dotted paths reach into
	// nested objects, e.g. "public_metadata.plan".
	PlanClaim string
}

// verifier implements outbound.SessionVerifierPort.
type verifier struct {
	secret   []byte
	issuer   string
	planPath []string
	parser   *jwt.Parser
}

// NewVerifier creates a new session verifier.
func NewVerifier(cfg *Config) (outbound.SessionVerifierPort, error) {
	return newVerifier(cfg)
}

func newVerifier(cfg *Config) (*verifier, error) {
	if cfg == nil || cfg.Secret == "" {
		return nil, errors.New("session secret is required")
	}
	planClaim := cfg.PlanClaim
	if planClaim == "" {
		planClaim = "plan"
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	return &verifier{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		planPath: strings.Split(planClaim, "."),
		parser:   jwt.NewParser(opts...),
	}, nil
}

// Verify validates a session token.
func (v *verifier) Verify(tokenString string) (*outbound.SessionClaims, error) {
	claims := jwt.MapClaims{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", outbound.ErrInvalidSession, err)
	}
	if !token.Valid {
		return nil, outbound.ErrInvalidSession
	}

	// Numeric subjects are legal in the wild even though RFC 7519 says string.
	userID := model.NormalizeUserID(claims["sub"])
	if userID == "" {
		return nil, fmt.Errorf("%w: missing subject", outbound.ErrInvalidSession)
	}

	out := &outbound.SessionClaims{
		UserID:  userID,
		Plan:    model.ParsePlan(lookupString(claims, v.planPath)),
		IsAdmin: isAdmin(claims),
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}

// Issue signs a session token. It exists for tests and local tooling; the
// identity provider issues production tokens.
func (v *verifier) Issue(userID string, plan model.Plan, admin bool, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	setPath(claims, v.planPath, string(plan))
	if admin {
		claims["admin"] = true
	}
	if v.issuer != "" {
		claims["iss"] = v.issuer
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Issuer signs session tokens.
type Issuer interface {
	Issue(userID string, plan model.Plan, admin bool, ttl time.Duration) (string, error)
}

// NewIssuer creates a token issuer sharing the verifier's settings.
func NewIssuer(cfg *Config) (Issuer, error) {
	return newVerifier(cfg)
}

func lookupString(claims map[string]any, path []string) string {
	var cur any = claims
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur = m[key]
	}
	s, _ := cur.(string)
	return s
}

func setPath(claims map[string]any, path []string, value string) {
	cur := claims
	for _, key := range path[:len(path)-1] {
		next, ok := cur[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[key] = next
		}
		cur = next
	}
	cur[path[len(path)-1]] = value
}

func isAdmin(claims jwt.MapClaims) bool {
	if b, ok := claims["admin"].(bool); ok {
		return b
	}
	role, _ := claims["role"].(string)
	return role == "admin"
}

var _ outbound.SessionVerifierPort = (*verifier)(nil)
