package auth

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Resource and action checked before health details are shown.
const (
	ResourceHealthDetails = "health:details"
	ActionView            = "view"
)

// ShowDetails is the policy deciding when health details are shown.
type ShowDetails string

const (
	// ShowDetailsNever never shows details.
	ShowDetailsNever ShowDetails = "never"
	// ShowDetailsAlways shows details to everyone who asks.
	ShowDetailsAlways ShowDetails = "always"
	// ShowDetailsWhenAuthorized shows details to authenticated callers,
	// optionally restricted to roles.
	ShowDetailsWhenAuthorized ShowDetails = "when_authorized"
)

// ParseShowDetails parses a policy name. Matching ignores case and accepts
// dashes for underscores. Empty means ShowDetailsWhenAuthorized.
func ParseShowDetails(s string) (ShowDetails, error) {
	norm := ShowDetails(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	switch norm {
	case "":
		return ShowDetailsWhenAuthorized, nil
	case ShowDetailsNever, ShowDetailsAlways, ShowDetailsWhenAuthorized:
		return norm, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidShowDetails, s)
	}
}

// DetailsAuthorizer applies a ShowDetails policy to requests for
// ResourceHealthDetails. Other resources are permitted.
type DetailsAuthorizer struct {
	show  ShowDetails
	roles []string
}

// NewDetailsAuthorizer creates a DetailsAuthorizer. With
// ShowDetailsWhenAuthorized, an empty roles list admits any authenticated,
// unexpired identity.
func NewDetailsAuthorizer(show ShowDetails, roles ...string) *DetailsAuthorizer {
	return &DetailsAuthorizer{show: show, roles: slices.Clone(roles)}
}

// Name returns "show_details".
func (a *DetailsAuthorizer) Name() string {
	return "show_details"
}

// Policy returns the configured policy.
func (a *DetailsAuthorizer) Policy() ShowDetails {
	return a.show
}

// Authorize applies the policy.
func (a *DetailsAuthorizer) Authorize(_ context.Context, req *AuthzRequest) error {
	if req.Resource != ResourceHealthDetails {
		return nil
	}

	switch a.show {
	case ShowDetailsAlways:
		return nil
	case ShowDetailsWhenAuthorized:
		id := req.Subject
		switch {
		case id.IsAnonymous():
			return deny(req, "not authenticated")
		case id.IsExpired():
			return deny(req, "identity expired")
		case !id.HasAnyRole(a.roles):
			return deny(req, "missing required role")
		}
		return nil
	default:
		return deny(req, "details are disabled")
	}
}

// CanViewDetails reports whether the identity in ctx may view health
// details under authz. A nil authz denies.
func CanViewDetails(ctx context.Context, authz Authorizer) bool {
	if authz == nil {
		return false
	}
	err := authz.Authorize(ctx, &AuthzRequest{
		Subject:  IdentityFromContext(ctx),
		Resource: ResourceHealthDetails,
		Action:   ActionView,
	})
	return err == nil
}

var _ Authorizer = (*DetailsAuthorizer)(nil)
