// Package jwtauth verifies HS256 bearer tokens issued for league members.
package jwtauth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/riskibarqy/pool-league/internal/usecase"
)

const (
	RoleOperator = "operator"
	RoleMember   = "member"
)

// Claims carries the member id in sub and the league role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		now:    time.Now,
	}
}

func (v *Verifier) VerifyAccessToken(ctx context.Context, token string) (usecase.Actor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return usecase.Actor{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}
	if err := ctx.Err(); err != nil {
		return usecase.Actor{}, err
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return usecase.Actor{}, fmt.Errorf("%w: invalid token: %v", usecase.ErrUnauthorized, err)
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return usecase.Actor{}, fmt.Errorf("%w: token has no subject", usecase.ErrUnauthorized)
	}

	switch claims.Role {
	case RoleOperator:
		return usecase.Actor{MemberID: subject, Operator: true}, nil
	case RoleMember, "":
		return usecase.Actor{MemberID: subject}, nil
	default:
		return usecase.Actor{}, fmt.Errorf("%w: unknown role %q", usecase.ErrUnauthorized, claims.Role)
	}
}

// Issue signs a token for memberID. It backs the token CLI and tests.
func (v *Verifier) Issue(memberID, role string, ttl time.Duration) (string, error) {
	if strings.TrimSpace(memberID) == "" {
		return "", fmt.Errorf("member id is required")
	}
	if role != RoleOperator && role != RoleMember {
		return "", fmt.Errorf("unknown role %q", role)
	}

	now := v.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   memberID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
