package auth

import (
	stderrors "errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"minimart/internal/errors"
	"minimart/internal/model"
	"minimart/internal/repository"
)

// TokenHeader is the request header carrying the signed token. The custom
// header (rather than a bearer scheme) is part of the external contract.
const TokenHeader = "x-auth-token"

const identityContextKey = "identity"

// Identity is the authenticated caller attached to the request context. Role
// is read from storage on every request, never trusted from the token body,
// so a role change takes effect immediately even for outstanding tokens.
type Identity struct {
	UserID uint
	Role   model.Role
}

// TokenMiddleware extracts and verifies the token from the x-auth-token
// header. Missing or invalid tokens are rejected with 401.
func TokenMiddleware(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "header:" + TokenHeader,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			msg := "invalid token"
			if stderrors.Is(err, echojwt.ErrJWTMissing) {
				msg = "no token, authorization denied"
			}
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: msg,
				Code:  "UNAUTHENTICATED",
			})
		},
	})
}

// LoadIdentity resolves the verified token into an Identity, re-reading the
// user from storage. Tokens for deleted accounts are rejected with 404.
func LoadIdentity(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "invalid token",
					Code:  "UNAUTHENTICATED",
				})
			}
			claims, ok := token.Claims.(*Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "invalid token",
					Code:  "UNAUTHENTICATED",
				})
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
						Error: "user not found",
						Code:  "USER_NOT_FOUND",
					})
				}
				return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
					Error: "internal server error",
					Code:  "INTERNAL_ERROR",
				})
			}

			c.Set(identityContextKey, Identity{UserID: user.ID, Role: user.Role})
			return next(c)
		}
	}
}

// RequireRoles rejects callers whose role is not in the allowed set. It must
// run after LoadIdentity and before any payload validation so unauthorized
// callers learn nothing about the expected request shape.
func RequireRoles(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := c.Get(identityContextKey).(Identity)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "no token, authorization denied",
					Code:  "UNAUTHENTICATED",
				})
			}
			for _, role := range roles {
				if identity.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Error: "access denied, check your role",
				Code:  "FORBIDDEN",
			})
		}
	}
}

// CurrentIdentity returns the Identity attached by LoadIdentity.
func CurrentIdentity(c echo.Context) (Identity, bool) {
	identity, ok := c.Get(identityContextKey).(Identity)
	return identity, ok
}
