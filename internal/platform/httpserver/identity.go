package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"peerraise/contexts/crowdfunding/ledger-service/domain/entities"
	"peerraise/internal/platform/callerauth"
	"peerraise/internal/platform/config"
)

const callerHeader = "X-User-Id"

var errMissingIdentity = errors.New("caller identity is required")

// IdentityResolver turns a request into the caller principal. With a token
// issuer it accepts only signed bearer tokens; otherwise it trusts the
// X-User-Id header set by the fronting proxy.
type IdentityResolver struct {
	tokens         *callerauth.Issuer
	allowAnonymous bool
}

func NewIdentityResolver(cfg config.AuthConfig) (*IdentityResolver, error) {
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return NewHeaderIdentityResolver(cfg.AllowAnonymous), nil
	}
	issuer, err := callerauth.NewIssuer(cfg.JWTSecret, cfg.JWTIssuer)
	if err != nil {
		return nil, err
	}
	return &IdentityResolver{tokens: &issuer, allowAnonymous: cfg.AllowAnonymous}, nil
}

func NewHeaderIdentityResolver(allowAnonymous bool) *IdentityResolver {
	return &IdentityResolver{allowAnonymous: allowAnonymous}
}

func (r *IdentityResolver) Resolve(req *http.Request) (string, error) {
	if r.tokens != nil {
		return r.resolveBearer(req)
	}
	if caller := strings.TrimSpace(req.Header.Get(callerHeader)); caller != "" {
		return caller, nil
	}
	return r.anonymousOrFail()
}

func (r *IdentityResolver) resolveBearer(req *http.Request) (string, error) {
	header := strings.TrimSpace(req.Header.Get("Authorization"))
	if header == "" {
		return r.anonymousOrFail()
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", callerauth.ErrInvalidToken
	}
	return r.tokens.Verify(strings.TrimSpace(token))
}

func (r *IdentityResolver) anonymousOrFail() (string, error) {
	if r.allowAnonymous {
		return entities.AnonymousPrincipal.String(), nil
	}
	return "", errMissingIdentity
}
