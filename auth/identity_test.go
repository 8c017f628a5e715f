package auth

import (
	"context"
	"testing"
	"time"
)

func TestIdentity_HasRole(t *testing.T) {
	id := &Identity{Principal: "ops", Roles: []string{"admin", "sre"}}

	if !id.HasRole("sre") {
		t.Error("HasRole(sre) = false")
	}
	if id.HasRole("dev") {
		t.Error("HasRole(dev) = true")
	}
}

func TestIdentity_HasAnyRole(t *testing.T) {
	id := &Identity{Principal: "ops", Roles: []string{"sre"}}

	tests := []struct {
		roles []string
		want  bool
	}{
		{nil, true},
		{[]string{"sre"}, true},
		{[]string{"admin", "sre"}, true},
		{[]string{"admin"}, false},
	}
	for _, tt := range tests {
		if got := id.HasAnyRole(tt.roles); got != tt.want {
			t.Errorf("HasAnyRole(%v) = %v, want %v", tt.roles, got, tt.want)
		}
	}
}

func TestIdentity_IsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{"never", time.Time{}, false},
		{"future", time.Now().Add(time.Hour), false},
		{"past", time.Now().Add(-time.Hour), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := &Identity{ExpiresAt: tt.expiresAt}
			if got := id.IsExpired(); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIdentity_IsAnonymous(t *testing.T) {
	var nilID *Identity
	if !nilID.IsAnonymous() {
		t.Error("nil identity should be anonymous")
	}
	if !AnonymousIdentity().IsAnonymous() {
		t.Error("AnonymousIdentity() should be anonymous")
	}
	if !(&Identity{Method: AuthMethodJWT}).IsAnonymous() {
		t.Error("identity without principal should be anonymous")
	}
	if (&Identity{Principal: "u", Method: AuthMethodJWT}).IsAnonymous() {
		t.Error("authenticated identity reported anonymous")
	}
}

func TestContext_Identity(t *testing.T) {
	ctx := context.Background()
	if IdentityFromContext(ctx) != nil || PrincipalFromContext(ctx) != "" {
		t.Error("empty context should carry no identity")
	}

	id := &Identity{Principal: "alice"}
	ctx = WithIdentity(ctx, id)
	if IdentityFromContext(ctx) != id {
		t.Error("IdentityFromContext did not return the stored identity")
	}
	if PrincipalFromContext(ctx) != "alice" {
		t.Errorf("PrincipalFromContext() = %q", PrincipalFromContext(ctx))
	}
}
