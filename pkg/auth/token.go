package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

type Config struct {
	Secret string `yaml:"secret" envconfig:"JWT_SECRET" json:"-"`
}

// TokenValidator turns a raw bearer token into validated claims.
type TokenValidator interface {
	Claims(ctx context.Context, token string) (Claims, error)
}

var ErrInvalidToken = errors.New("invalid token")

type HMACValidator struct {
	key []byte
}

func NewHMACValidator(cfg Config) (*HMACValidator, error) {
	if cfg.Secret == "" {
		return nil, errors.New("JWT_SECRET is empty")
	}
	return &HMACValidator{key: []byte(cfg.Secret)}, nil
}

func (v *HMACValidator) Claims(_ context.Context, tokenStr string) (Claims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return v.key, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.Wrap(ErrInvalidToken, errString(err))
	}
	return Claims(claims), nil
}

// Sign issues an HS256 token, used by operators and tests.
func Sign(secret string, claims Claims, ttl time.Duration) (string, error) {
	mc := jwt.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}
	if ttl > 0 {
		mc["exp"] = time.Now().Add(ttl).Unix()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString([]byte(secret))
}

func errString(err error) string {
	if err == nil {
		return "token is not valid"
	}
	return err.Error()
}
