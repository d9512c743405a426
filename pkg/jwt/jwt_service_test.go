package jwt

import (
	"errors"
	"testing"
	"time"

	"expirygenie/domain"
)

func testService() *jwtService {
	return &jwtService{secretKey: "test-secret", issuer: "EXPIRYGENIE"}
}

func TestUserTokenRoundTrip(t *testing.T) {
	svc := testService()

	token := svc.GenerateTokenUser("user-123", domain.RoleUser)
	if token == "" {
		t.Fatal("empty token")
	}

	userID, role, err := svc.GetUserIDByToken(token)
	if err != nil {
		t.Fatalf("GetUserIDByToken: %v", err)
	}
	if userID != "user-123" || role != domain.RoleUser {
		t.Errorf("got %s/%s, want user-123/%s", userID, role, domain.RoleUser)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	svc := testService()
	token := svc.GenerateTokenUser("user-123", domain.RoleUser)

	_, _, err := svc.GetUserIDByToken(token + "x")
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("got %v, want ErrTokenInvalid", err)
	}

	other := &jwtService{secretKey: "other-secret", issuer: "EXPIRYGENIE"}
	_, _, err = other.GetUserIDByToken(token)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("wrong key: got %v, want ErrTokenInvalid", err)
	}
}

func TestClaimsTokenRoundTrip(t *testing.T) {
	svc := testService()

	token, err := svc.GenerateTokenWithClaims(
		map[string]any{"email": "a@b.c", "purpose": "verify"},
		time.Hour,
	)
	if err != nil {
		t.Fatalf("GenerateTokenWithClaims: %v", err)
	}

	claims, err := svc.ValidateTokenWithClaims(token)
	if err != nil {
		t.Fatalf("ValidateTokenWithClaims: %v", err)
	}
	if claims["email"] != "a@b.c" || claims["purpose"] != "verify" {
		t.Errorf("claims = %v", claims)
	}
}

func TestExpiredClaimsToken(t *testing.T) {
	svc := testService()

	token, err := svc.GenerateTokenWithClaims(
		map[string]any{"email": "a@b.c"},
		-time.Minute,
	)
	if err != nil {
		t.Fatalf("GenerateTokenWithClaims: %v", err)
	}

	if _, err := svc.ValidateTokenWithClaims(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("got %v, want ErrTokenExpired", err)
	}
}
