package auth0

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/Astemirdum/home-library/pkg/auth"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/pkg/errors"
)

type Config struct {
	Issuer   string `yaml:"issuer" envconfig:"AUTH0_DOMAIN"`
	Audience string `yaml:"audience" envconfig:"AUTH0_AUDIENCE"`
	Enable   bool   `yaml:"enable" envconfig:"AUTH0_ENABLE"`
}

// CustomClaims contains the identity data we want from the token.
type CustomClaims struct {
	Email             string   `json:"email"`
	Name              string   `json:"name"`
	Groups            []string `json:"cognito:groups"`
	Roles             []string `json:"groups"`
	Username          string   `json:"cognito:username"`
	PreferredUsername string   `json:"preferred_username"`
}

func (c CustomClaims) Validate(context.Context) error {
	return nil
}

type jwtValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (interface{}, error)
}

type Validator struct {
	jwt jwtValidator
}

var _ auth.TokenValidator = (*Validator)(nil)

func NewValidator(cfg Config) (*Validator, error) {
	issuerURL, err := url.Parse("https://" + cfg.Issuer + "/")
	if err != nil {
		return nil, fmt.Errorf("failed to parse the issuer url: %w", err)
	}
	provider := jwks.NewCachingProvider(issuerURL, time.Minute*5)
	v, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{cfg.Audience},
		validator.WithCustomClaims(func() validator.CustomClaims { return &CustomClaims{} }),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up the jwt validator: %w", err)
	}
	return &Validator{jwt: v}, nil
}

func (v *Validator) Claims(ctx context.Context, token string) (auth.Claims, error) {
	raw, err := v.jwt.ValidateToken(ctx, token)
	if err != nil {
		return nil, errors.Wrap(auth.ErrInvalidToken, err.Error())
	}
	validated, ok := raw.(*validator.ValidatedClaims)
	if !ok {
		return nil, errors.Wrap(auth.ErrInvalidToken, "unexpected claims type")
	}
	return toClaims(validated), nil
}

func toClaims(vc *validator.ValidatedClaims) auth.Claims {
	claims := auth.Claims{"sub": vc.RegisteredClaims.Subject}
	custom, ok := vc.CustomClaims.(*CustomClaims)
	if !ok || custom == nil {
		return claims
	}
	claims["email"] = custom.Email
	claims["name"] = custom.Name
	claims["cognito:username"] = custom.Username
	claims["preferred_username"] = custom.PreferredUsername
	if len(custom.Groups) > 0 {
		claims["cognito:groups"] = custom.Groups
	}
	if len(custom.Roles) > 0 {
		claims["groups"] = custom.Roles
	}
	return claims
}
