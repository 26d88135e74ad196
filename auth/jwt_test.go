package auth

import (
	"testing"

	"github.com/google/uuid"
)

func TestGenerateTokenPair(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")
	userID := uuid.New()

	access, refresh, err := GenerateTokenPair(userID)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("empty token generated")
	}
	if access == refresh {
		t.Error("access and refresh tokens should differ")
	}

	got, err := ValidateToken(access, TokenTypeAccess)
	if err != nil {
		t.Fatalf("ValidateToken(access): %v", err)
	}
	if got != userID {
		t.Errorf("user id = %v, want %v", got, userID)
	}

	got, err = ValidateToken(refresh, TokenTypeRefresh)
	if err != nil {
		t.Fatalf("ValidateToken(refresh): %v", err)
	}
	if got != userID {
		t.Errorf("user id = %v, want %v", got, userID)
	}
}

func TestValidateTokenTypeMismatch(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")

	access, refresh, err := GenerateTokenPair(uuid.New())
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	if _, err := ValidateToken(access, TokenTypeRefresh); err == nil {
		t.Error("access token accepted as refresh token")
	}
	if _, err := ValidateToken(refresh, TokenTypeAccess); err == nil {
		t.Error("refresh token accepted as access token")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")

	for _, tokenStr := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := ValidateToken(tokenStr, TokenTypeAccess); err == nil {
			t.Errorf("token %q validated", tokenStr)
		}
	}
}

func TestValidateTokenWrongKey(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	access, _, err := GenerateTokenPair(uuid.New())
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	t.Setenv("JWT_SECRET", "second-secret")
	if _, err := ValidateToken(access, TokenTypeAccess); err == nil {
		t.Error("token signed with a different key validated")
	}
}

func TestMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, _, err := GenerateTokenPair(uuid.New()); err == nil {
		t.Error("token generated without a configured secret")
	}
}
