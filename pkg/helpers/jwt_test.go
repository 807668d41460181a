package helpers

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestJWTIssueValidateRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, exp, err := m.Issue("johndoe")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expiry not in the future: %v", exp)
	}

	subject, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if subject != "johndoe" {
		t.Fatalf("subject = %q, want %q", subject, "johndoe")
	}
}

func TestJWTValidateExpired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)

	token, _, err := m.Issue("johndoe")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = m.Validate(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("err = %v, want ErrTokenExpired", err)
	}
}

func TestJWTValidateTamperedSignature(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, _, err := m.Issue("johndoe")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Flip one character in the signature segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = m.Validate(tampered)
	if !errors.Is(err, ErrTokenSignature) {
		t.Fatalf("err = %v, want ErrTokenSignature", err)
	}
}

func TestJWTValidateWrongSecret(t *testing.T) {
	m := NewJWTManager("secret-one", time.Hour)
	token, _, err := m.Issue("johndoe")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	other := &JWTManager{Secret: []byte("secret-two"), TTL: time.Hour}
	_, err = other.Validate(token)
	if !errors.Is(err, ErrTokenSignature) {
		t.Fatalf("err = %v, want ErrTokenSignature", err)
	}
}

func TestJWTValidateMalformed(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	for _, tok := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := m.Validate(tok)
		if !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("Validate(%q) = %v, want ErrTokenMalformed", tok, err)
		}
	}
}

// A valid-signature token past its expiry must report expiry, not a
// signature problem.
func TestJWTExpiredBeatsSignature(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Hour)
	token, _, err := m.Issue("johndoe")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = m.Validate(token)
	if errors.Is(err, ErrTokenSignature) {
		t.Fatal("expired token reported as signature failure")
	}
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("err = %v, want ErrTokenExpired", err)
	}
}
