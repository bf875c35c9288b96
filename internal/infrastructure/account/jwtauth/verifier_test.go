package jwtauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/riskibarqy/pool-league/internal/usecase"
)

func TestVerifier_RoundTrip(t *testing.T) {
	t.Parallel()

	v := NewVerifier("secret", "pool-league")
	tests := []struct {
		role         string
		wantOperator bool
	}{
		{role: RoleMember, wantOperator: false},
		{role: RoleOperator, wantOperator: true},
	}

	for _, tc := range tests {
		token, err := v.Issue("member-01", tc.role, time.Hour)
		if err != nil {
			t.Fatalf("issue %s: %v", tc.role, err)
		}
		actor, err := v.VerifyAccessToken(context.Background(), token)
		if err != nil {
			t.Fatalf("verify %s: %v", tc.role, err)
		}
		if actor.MemberID != "member-01" || actor.Operator != tc.wantOperator {
			t.Fatalf("unexpected actor for %s: %+v", tc.role, actor)
		}
	}
}

func TestVerifier_Rejects(t *testing.T) {
	t.Parallel()

	v := NewVerifier("secret", "pool-league")
	other := NewVerifier("other-secret", "pool-league")
	wrongIssuer := NewVerifier("secret", "someone-else")

	expired := NewVerifier("secret", "pool-league")
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	foreign, _ := other.Issue("member-01", RoleMember, time.Hour)
	stale, _ := expired.Issue("member-01", RoleMember, time.Hour)
	misissued, _ := wrongIssuer.Issue("member-01", RoleMember, time.Hour)
	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "member-01", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	badRole, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:             "admin",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "member-01", Issuer: "pool-league", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("secret"))

	for name, token := range map[string]string{
		"empty":        "",
		"garbage":      "not-a-jwt",
		"wrong secret": foreign,
		"expired":      stale,
		"wrong issuer": misissued,
		"alg none":     none,
		"unknown role": badRole,
	} {
		if _, err := v.VerifyAccessToken(context.Background(), token); !errors.Is(err, usecase.ErrUnauthorized) {
			t.Fatalf("%s: expected ErrUnauthorized, got %v", name, err)
		}
	}
}
