package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

type keycloakAuthenticator struct {
	issuer   string
	audience string
	jwks     keyfunc.Keyfunc
}

// NewKeycloakAuthenticator returns nil when auth is disabled. The JWKS
// endpoint is probed up front so a misconfigured realm fails at startup.
func NewKeycloakAuthenticator(ctx context.Context, cfg Config) (Authenticator, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if cfg.Issuer == "" {
		return nil, fmt.Errorf("auth enabled but issuer is empty")
	}

	jwksURL := cfg.JWKSURL
	if jwksURL == "" {
		jwksURL = cfg.Issuer + "/protocol/openid-connect/certs"
	}

	if err := probeJWKS(ctx, jwksURL); err != nil {
		return nil, fmt.Errorf("fetch jwks from %s: %w", jwksURL, err)
	}

	kf, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("fetch jwks from %s: %w", jwksURL, err)
	}

	return &keycloakAuthenticator{
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		jwks:     kf,
	}, nil
}

func probeJWKS(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("jwks endpoint returned %d", resp.StatusCode)
	}
	return nil
}

func (a *keycloakAuthenticator) Authenticate(_ context.Context, bearerToken string) (Principal, error) {
	claims := jwt.MapClaims{}
	opts := []jwt.ParserOption{jwt.WithLeeway(5 * time.Second)}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}
	if a.audience != "" {
		opts = append(opts, jwt.WithAudience(a.audience))
	}

	token, err := jwt.ParseWithClaims(bearerToken, claims, a.jwks.Keyfunc, opts...)
	if err != nil || !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	return Principal{
		Issuer:   stringClaim(claims, "iss"),
		Subject:  stringClaim(claims, "sub"),
		Username: stringClaim(claims, "preferred_username"),
		Audience: claims["aud"],
		Roles:    realmRoles(claims),
		Claims:   claims,
	}, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	value, ok := claims[key].(string)
	if !ok {
		return ""
	}
	return value
}

// realmRoles reads Keycloak's realm_access.roles claim.
func realmRoles(claims jwt.MapClaims) []string {
	access, ok := claims["realm_access"].(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := access["roles"].([]any)
	if !ok {
		return nil
	}

	roles := make([]string, 0, len(raw))
	for _, r := range raw {
		if role, ok := r.(string); ok {
			roles = append(roles, role)
		}
	}
	return roles
}
