package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/marketplace-labs/briefdesk/pkg/usecase"
	"github.com/marketplace-labs/briefdesk/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Auth holds CLI flags for buyer authentication
type Auth struct {
	jwksURL     string
	audience    string
	issuer      string
	noAuthID    string
	noAuthEmail string
	noAuthName  string
}

func (a *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "jwks-url",
			Usage:       "Identity provider key set URL used to verify buyer tokens",
			Category:    "Authentication",
			Sources:     cli.EnvVars("BRIEFDESK_JWKS_URL"),
			Destination: &a.jwksURL,
		},
		&cli.StringFlag{
			Name:        "token-audience",
			Usage:       "Required aud claim of buyer tokens",
			Category:    "Authentication",
			Sources:     cli.EnvVars("BRIEFDESK_TOKEN_AUDIENCE"),
			Destination: &a.audience,
		},
		&cli.StringFlag{
			Name:        "token-issuer",
			Usage:       "Required iss claim of buyer tokens",
			Category:    "Authentication",
			Sources:     cli.EnvVars("BRIEFDESK_TOKEN_ISSUER"),
			Destination: &a.issuer,
		},
		&cli.StringFlag{
			Name:        "no-auth",
			Usage:       "Skip authentication and act as this buyer ID (development only)",
			Category:    "Authentication",
			Sources:     cli.EnvVars("BRIEFDESK_NO_AUTH"),
			Destination: &a.noAuthID,
		},
		&cli.StringFlag{
			Name:        "no-auth-email",
			Usage:       "Email of the --no-auth buyer",
			Category:    "Authentication",
			Value:       "buyer@example.com",
			Sources:     cli.EnvVars("BRIEFDESK_NO_AUTH_EMAIL"),
			Destination: &a.noAuthEmail,
		},
		&cli.StringFlag{
			Name:        "no-auth-name",
			Usage:       "Name of the --no-auth buyer",
			Category:    "Authentication",
			Value:       "Development Buyer",
			Sources:     cli.EnvVars("BRIEFDESK_NO_AUTH_NAME"),
			Destination: &a.noAuthName,
		},
	}
}

func (a *Auth) IsNoAuthMode() bool {
	return a.noAuthID != ""
}

// Configure picks the authenticator. Exactly one of --jwks-url and
// --no-auth must be set.
func (a *Auth) Configure() (usecase.AuthUseCaseInterface, error) {
	switch {
	case a.noAuthID != "" && a.jwksURL != "":
		return nil, goerr.Wrap(ErrInvalidConfig, "--no-auth cannot be combined with --jwks-url")

	case a.noAuthID != "":
		logging.Default().Warn("Running in no-auth mode (development only)", "buyer_id", a.noAuthID)
		return usecase.NewNoAuthnUseCase(a.noAuthID, a.noAuthEmail, a.noAuthName), nil

	case a.jwksURL != "":
		var opts []usecase.AuthOption
		if a.issuer != "" {
			opts = append(opts, usecase.WithIssuer(a.issuer))
		}
		logging.Default().Info("Token authentication enabled", "jwks_url", a.jwksURL, "audience", a.audience)
		return usecase.NewAuthUseCase(a.jwksURL, a.audience, opts...), nil

	default:
		return nil, goerr.Wrap(ErrMissingSetting, "either --jwks-url or --no-auth is required",
			goerr.V(FlagKey, "jwks-url"))
	}
}
