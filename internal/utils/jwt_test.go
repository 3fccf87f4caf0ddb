package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	issuer := "test-issuer"
	userID := int64(123)
	duration := time.Hour
	key := "secret-key"

	token, err := GenerateJWTToken(issuer, userID, "", duration, key)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.Token == nil {
		t.Error("expected non-nil jwt.Token object")
	}

	// Verify claims
	claims, ok := token.Token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		t.Fatal("could not cast claims to RegisteredClaims")
	}
	if claims.Issuer != issuer {
		t.Errorf("expected issuer %s, got %s", issuer, claims.Issuer)
	}
	if claims.Subject != "123" {
		t.Errorf("expected subject '123', got %s", claims.Subject)
	}
	if claims.ID != "" {
		t.Errorf("expected empty jti for access token, got %s", claims.ID)
	}
}

func TestGenerateJWTToken_WithTokenID(t *testing.T) {
	token, err := GenerateJWTToken("iss", 7, "refresh-jti", time.Hour, "key")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if token.RegisteredClaims.ID != "refresh-jti" {
		t.Errorf("expected jti 'refresh-jti', got %s", token.RegisteredClaims.ID)
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", time.Hour, "key"},
		{"zero duration", "iss", 0, "key"},
		{"empty key", "iss", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, 1, "", tt.duration, tt.key)
			if err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	issuer := "test-issuer"
	key := "secret-key"

	generated, err := GenerateJWTToken(issuer, 42, "some-jti", time.Hour, key)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	parsed, err := ValidateAndParseJWTToken(generated.SignedString, key, issuer)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if parsed.UserID != 42 {
		t.Errorf("expected UserID=42, got %d", parsed.UserID)
	}
	if parsed.RegisteredClaims.ID != "some-jti" {
		t.Errorf("expected jti 'some-jti', got %s", parsed.RegisteredClaims.ID)
	}
}

func TestValidateAndParseJWTToken_WrongKey(t *testing.T) {
	generated, err := GenerateJWTToken("iss", 1, "", time.Hour, "right-key")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	_, err = ValidateAndParseJWTToken(generated.SignedString, "wrong-key", "iss")
	if err == nil {
		t.Fatal("expected signature error, got nil")
	}
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	generated, err := GenerateJWTToken("real-issuer", 1, "", time.Hour, "key")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	_, err = ValidateAndParseJWTToken(generated.SignedString, "key", "other-issuer")
	if err == nil {
		t.Fatal("expected issuer error, got nil")
	}
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	generated, err := GenerateJWTToken("iss", 1, "", -time.Minute, "key")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	_, err = ValidateAndParseJWTToken(generated.SignedString, "key", "iss")
	if err == nil {
		t.Fatal("expected expiration error, got nil")
	}
}

func TestValidateAndParseJWTToken_Garbage(t *testing.T) {
	_, err := ValidateAndParseJWTToken("not.a.token", "key", "iss")
	if err == nil {
		t.Fatal("expected parse error, got nil")
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"lowercase scheme", "bearer abc", "abc", false},
		{"empty header", "", "", true},
		{"missing token", "Bearer ", "", true},
		{"wrong scheme", "Basic abc", "", true},
		{"no scheme", "abc.def.ghi", "", true},
		{"too many parts", "Bearer a b", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected token %q, got %q", tt.want, got)
			}
		})
	}
}
