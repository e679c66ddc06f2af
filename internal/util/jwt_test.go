package util

import (
	"testing"
	"time"

	"kyra_advising_backend/internal/model"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := "unit-test-secret-key-of-sufficient-len"
	user := &model.User{Email: "pat@college.edu", Name: "Pat", Role: model.Student}

	token, err := GenerateJWT(user, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, secret)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.Email != user.Email || claims.Name != user.Name || claims.Role != user.Role {
		t.Errorf("claims do not match user: %+v", claims)
	}

	if _, err := ParseJWT(token, "a-different-secret-key-also-32-chars"); err == nil {
		t.Error("token verified with the wrong secret")
	}

	expired, err := GenerateJWT(user, secret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT(expired, secret); err == nil {
		t.Error("expired token accepted")
	}
}
