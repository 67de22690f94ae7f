package httpapi

import (
	"net/http"
	"strings"

	"github.com/awslabs/aws-lambda-go-api-proxy/core"

	"github.com/sparcsup/auth-service/internal/identity"
)

// withIdentity lifts the Cognito authorizer claims attached by API Gateway
// into a request-scoped identity. Requests without claims pass through
// unauthenticated; the route gates decide what that means.
func (a *API) withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if proxyCtx, ok := core.GetAPIGatewayContextFromContext(ctx); ok {
			if claims, ok := proxyCtx.Authorizer["claims"].(map[string]any); ok {
				ctx = identity.WithIdentity(ctx, identityFromClaims(claims))
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

func identityFromClaims(claims map[string]any) identity.Identity {
	var id identity.Identity
	if v, ok := claims["sub"].(string); ok {
		id.Sub = v
	}
	if v, ok := claims["cognito:username"].(string); ok {
		id.Username = v
	}
	// API Gateway flattens the groups claim to a comma-separated string.
	if v, ok := claims["cognito:groups"].(string); ok && v != "" {
		for _, group := range strings.Split(v, ",") {
			if group = strings.TrimSpace(group); group != "" {
				id.Groups = append(id.Groups, group)
			}
		}
	}
	return id
}

// requireSuperAdmin rejects requests whose caller is not an authenticated
// member of the super-admin group.
func (a *API) requireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.FromContext(r.Context())
		if !ok || id.Sub == "" {
			respondJSON(w, r, http.StatusUnauthorized, messageResponse{Message: "invalid access token"})
			return
		}
		if !id.IsSuperAdmin() {
			respondJSON(w, r, http.StatusForbidden, messageResponse{Message: "insufficient permissions"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
