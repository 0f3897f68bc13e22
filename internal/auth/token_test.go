package auth

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("secret")

	token, err := issuer.Issue(42, models.RoleClient)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	userID, err := issuer.Parse(token)
	if err != nil || userID != 42 {
		t.Fatalf("expected user 42, got %d (%v)", userID, err)
	}
}

func TestParseRejectsOtherSecretAndExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret")
	token, _ := issuer.Issue(1, models.RoleClient)

	if _, err := NewTokenIssuer("other").Parse(token); err != ErrInvalidToken {
		t.Fatalf("expected invalid token for wrong secret, got %v", err)
	}

	later := NewTokenIssuer("secret")
	later.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	if _, err := later.Parse(token); err != ErrInvalidToken {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}

func TestNewPrincipal(t *testing.T) {
	user := &models.User{ID: 5, Email: "b@x.com", Name: "Bia", Role: models.RoleBarber}

	p := NewPrincipal(user, nil)
	if p.IsBarber() || p.BarberID != nil {
		t.Fatalf("user without link must not be a barber: %+v", p)
	}

	p = NewPrincipal(user, &models.Barber{ID: 9, UserID: 5, BarbershopID: 3})
	if !p.IsBarber() || *p.BarberID != 9 || *p.BarbershopID != 3 {
		t.Fatalf("unexpected principal %+v", p)
	}
}
