package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestParseShowDetails(t *testing.T) {
	tests := []struct {
		in      string
		want    ShowDetails
		wantErr bool
	}{
		{"", ShowDetailsWhenAuthorized, false},
		{"never", ShowDetailsNever, false},
		{"ALWAYS", ShowDetailsAlways, false},
		{"when-authorized", ShowDetailsWhenAuthorized, false},
		{"when_authorized", ShowDetailsWhenAuthorized, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := ParseShowDetails(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidShowDetails) {
				t.Errorf("ParseShowDetails(%q) error = %v, want ErrInvalidShowDetails", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseShowDetails(%q) = (%q, %v), want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestDetailsAuthorizer(t *testing.T) {
	user := &Identity{Principal: "alice", Method: AuthMethodJWT, Roles: []string{"dev"}}
	admin := &Identity{Principal: "root", Method: AuthMethodAPIKey, Roles: []string{"admin"}}
	expired := &Identity{Principal: "old", Method: AuthMethodJWT, ExpiresAt: time.Now().Add(-time.Minute)}

	tests := []struct {
		name    string
		authz   *DetailsAuthorizer
		subject *Identity
		want    bool
	}{
		{"always anonymous", NewDetailsAuthorizer(ShowDetailsAlways), AnonymousIdentity(), true},
		{"always nil subject", NewDetailsAuthorizer(ShowDetailsAlways), nil, true},
		{"never admin", NewDetailsAuthorizer(ShowDetailsNever), admin, false},
		{"authorized anonymous", NewDetailsAuthorizer(ShowDetailsWhenAuthorized), AnonymousIdentity(), false},
		{"authorized nil", NewDetailsAuthorizer(ShowDetailsWhenAuthorized), nil, false},
		{"authorized any role", NewDetailsAuthorizer(ShowDetailsWhenAuthorized), user, true},
		{"authorized expired", NewDetailsAuthorizer(ShowDetailsWhenAuthorized), expired, false},
		{"authorized role match", NewDetailsAuthorizer(ShowDetailsWhenAuthorized, "admin"), admin, true},
		{"authorized role miss", NewDetailsAuthorizer(ShowDetailsWhenAuthorized, "admin"), user, false},
		{"unknown policy", NewDetailsAuthorizer("bogus"), admin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.authz.Authorize(context.Background(), &AuthzRequest{
				Subject:  tt.subject,
				Resource: ResourceHealthDetails,
				Action:   ActionView,
			})
			if got := err == nil; got != tt.want {
				t.Errorf("allowed = %v, want %v (err = %v)", got, tt.want, err)
			}
			if err != nil && !errors.Is(err, ErrForbidden) {
				t.Errorf("error %v does not match ErrForbidden", err)
			}
		})
	}
}

func TestDetailsAuthorizer_OtherResources(t *testing.T) {
	authz := NewDetailsAuthorizer(ShowDetailsNever)
	if err := authz.Authorize(context.Background(), &AuthzRequest{Resource: "health:status"}); err != nil {
		t.Errorf("Authorize() error = %v", err)
	}
	if authz.Name() != "show_details" || authz.Policy() != ShowDetailsNever {
		t.Errorf("Name/Policy = %q/%q", authz.Name(), authz.Policy())
	}
}

func TestCanViewDetails(t *testing.T) {
	ctx := WithIdentity(context.Background(), &Identity{Principal: "alice", Method: AuthMethodJWT})

	if !CanViewDetails(ctx, NewDetailsAuthorizer(ShowDetailsWhenAuthorized)) {
		t.Error("authenticated caller denied")
	}
	if CanViewDetails(context.Background(), NewDetailsAuthorizer(ShowDetailsWhenAuthorized)) {
		t.Error("caller without identity allowed")
	}
	if CanViewDetails(ctx, nil) {
		t.Error("nil authorizer allowed")
	}
	if CanViewDetails(ctx, DenyAllAuthorizer{}) {
		t.Error("DenyAllAuthorizer allowed")
	}
	if !CanViewDetails(ctx, AllowAllAuthorizer{}) {
		t.Error("AllowAllAuthorizer denied")
	}
}

func TestAuthzError(t *testing.T) {
	err := DenyAllAuthorizer{}.Authorize(context.Background(), &AuthzRequest{
		Subject:  &Identity{Principal: "bob"},
		Resource: ResourceHealthDetails,
		Action:   ActionView,
	})

	var ae *AuthzError
	if !errors.As(err, &ae) {
		t.Fatalf("error %T is not *AuthzError", err)
	}
	if ae.Subject != "bob" || ae.Reason != "all requests denied" {
		t.Errorf("AuthzError = %+v", ae)
	}
	if !errors.Is(err, ErrForbidden) {
		t.Error("AuthzError should match ErrForbidden")
	}
}

func TestCanViewDetails_AuthorizerFunc(t *testing.T) {
	var got *AuthzRequest
	authz := AuthorizerFunc(func(_ context.Context, req *AuthzRequest) error {
		got = req
		return nil
	})

	ctx := WithIdentity(context.Background(), &Identity{Principal: "ops"})
	if !CanViewDetails(ctx, authz) {
		t.Fatal("AuthorizerFunc denied")
	}
	if got.Resource != ResourceHealthDetails || got.Action != ActionView {
		t.Errorf("request = %+v, want %s/%s", got, ResourceHealthDetails, ActionView)
	}
	if got.Subject == nil || got.Subject.Principal != "ops" {
		t.Errorf("Subject = %+v, want ops", got.Subject)
	}
	if authz.Name() != "func" {
		t.Errorf("Name() = %q, want func", authz.Name())
	}
}
