package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"
	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
)

// ErrUnauthenticated is returned for a missing or invalid identity token
var ErrUnauthenticated = goerr.New("unauthenticated")

// AuthUseCaseInterface resolves the buyer behind a request
type AuthUseCaseInterface interface {
	// Authenticate validates a bearer token and returns its buyer
	Authenticate(ctx context.Context, token string) (*model.Buyer, error)
	IsNoAuthn() bool
}

// AuthUseCase validates identity tokens signed by the marketplace identity
// provider against its published key set
type AuthUseCase struct {
	jwksURL  string
	audience string
	issuer   string
	cache    *authCache
}

type AuthOption func(*AuthUseCase)

// WithIssuer requires the iss claim to match
func WithIssuer(issuer string) AuthOption {
	return func(uc *AuthUseCase) {
		uc.issuer = issuer
	}
}

func NewAuthUseCase(jwksURL, audience string, options ...AuthOption) *AuthUseCase {
	uc := &AuthUseCase{
		jwksURL:  jwksURL,
		audience: audience,
		cache:    newAuthCache(),
	}

	for _, opt := range options {
		opt(uc)
	}

	return uc
}

func (uc *AuthUseCase) IsNoAuthn() bool {
	return false
}

func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*model.Buyer, error) {
	if token == "" {
		return nil, goerr.Wrap(ErrUnauthenticated, "token is required")
	}

	key := tokenKey(token)
	if buyer, ok := uc.cache.get(key); ok {
		return buyer, nil
	}

	keySet, err := uc.keySet(ctx)
	if err != nil {
		return nil, err
	}

	opts := []jwt.ParseOption{
		jwt.WithKeySet(keySet),
		jwt.WithValidate(true),
		jwt.WithAcceptableSkew(10 * time.Second),
	}
	if uc.audience != "" {
		opts = append(opts, jwt.WithAudience(uc.audience))
	}
	if uc.issuer != "" {
		opts = append(opts, jwt.WithIssuer(uc.issuer))
	}

	parsed, err := jwt.Parse([]byte(token), opts...)
	if err != nil {
		return nil, goerr.Wrap(ErrUnauthenticated, "invalid token", goerr.V("error", err.Error()))
	}
	if parsed.Subject() == "" {
		return nil, goerr.Wrap(ErrUnauthenticated, "token has no subject")
	}

	buyer := &model.Buyer{ID: parsed.Subject()}
	if v, ok := parsed.Get("email"); ok {
		buyer.Email, _ = v.(string)
	}
	if v, ok := parsed.Get("name"); ok {
		buyer.Name, _ = v.(string)
	}

	uc.cache.set(key, buyer, parsed.Expiration())
	return buyer, nil
}

func (uc *AuthUseCase) keySet(ctx context.Context) (jwk.Set, error) {
	if set, ok := uc.cache.keySet(); ok {
		return set, nil
	}

	set, err := jwk.Fetch(ctx, uc.jwksURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch identity provider keys", goerr.V("jwks_url", uc.jwksURL))
	}
	uc.cache.setKeySet(set)
	return set, nil
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
