package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Astemirdum/home-library/pkg/auth"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
)

const (
	AuthorizationHeader = "Authorization"
	bearer              = "Bearer "
)

// IdentityRecorder keeps the admin directory in sync with signed-in users.
type IdentityRecorder interface {
	RecordMember(ctx context.Context, id auth.Identity) error
}

// Authentication resolves the caller identity. A missing header is an
// anonymous request; a header that fails validation is rejected with 401.
func Authentication(validator auth.TokenValidator, recorder IdentityRecorder, log *zap.Logger) echo.MiddlewareFunc {
	log = log.Named("auth")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			authorization := req.Header.Get(AuthorizationHeader)
			if authorization == "" {
				c.SetRequest(req.WithContext(auth.SetAuthContext(req.Context(), auth.Anonymous)))
				return next(c)
			}
			if !strings.HasPrefix(authorization, bearer) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization Header")
			}
			claims, err := validator.Claims(req.Context(), strings.TrimPrefix(authorization, bearer))
			if err != nil {
				log.Debug("token rejected", zap.Error(err))
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Token")
			}

			id := auth.Resolve(claims)
			if !id.IsAnonymous() && recorder != nil {
				if err := recorder.RecordMember(req.Context(), id); err != nil {
					log.Warn("record member", zap.String("userId", id.UserID), zap.Error(err))
				}
			}
			c.SetRequest(req.WithContext(auth.SetAuthContext(req.Context(), id)))
			return next(c)
		}
	}
}

func NewRateLimiter(rps rate.Limit) echo.MiddlewareFunc {
	return middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rps))
}

func CORSConfig() middleware.CORSConfig {
	return middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodOptions, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{
			echo.HeaderContentType, "X-Amz-Date", echo.HeaderAuthorization, "X-Api-Key", "X-Amz-Security-Token",
		},
	}
}

func RequestLoggerConfig(log *zap.Logger) middleware.RequestLoggerConfig {
	log = log.Named("echo")
	return middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		HandleError:  true,
		LogError:     true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := zapcore.InfoLevel
			if v.Error != nil {
				level = zapcore.ErrorLevel
			}
			log.Log(level, "request",
				zap.String("URI", v.URI),
				zap.String("Method", v.Method),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.Error(v.Error),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}
}
