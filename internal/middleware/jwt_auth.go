package middleware

import (
	"net/http"
	"strings"

	"github.com/boardhq/board/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const userContextKey = "user"

// JWTAuth rejects requests without a valid bearer token and stores the
// claims in the echo context.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := parseBearer(c, secret)
			if err != nil {
				return err
			}
			c.Set(userContextKey, claims)
			return next(c)
		}
	}
}

// OptionalJWTAuth parses a bearer token when one is present but lets
// anonymous requests through. Public listings and the boosted feed use it so
// they can still personalize for signed-in viewers.
func OptionalJWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return next(c)
			}
			claims, err := parseBearer(c, secret)
			if err != nil {
				return err
			}
			c.Set(userContextKey, claims)
			return next(c)
		}
	}
}

func parseBearer(c echo.Context, secret string) (*models.JwtCustomClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
	}

	// Expecting "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
	}

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	return claims, nil
}

// CurrentUserID returns the authenticated user's ID, or 0 for anonymous
// requests.
func CurrentUserID(c echo.Context) uint {
	claims, ok := c.Get(userContextKey).(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.UserID
}
