package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardhq/board/internal/models"
)

const testSecret = "test-secret"

func signToken(t *testing.T, userID uint) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID:   userID,
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func runMiddleware(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (uint, error) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	c := echo.New().NewContext(req, httptest.NewRecorder())

	var gotID uint
	err := mw(func(c echo.Context) error {
		gotID = CurrentUserID(c)
		return nil
	})(c)
	return gotID, err
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	id, err := runMiddleware(t, JWTAuth(testSecret), "Bearer "+signToken(t, 42))
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestJWTAuthRejectsMissingAndBadTokens(t *testing.T) {
	for name, header := range map[string]string{
		"missing header": "",
		"not bearer":     "Basic abc",
		"garbage token":  "Bearer not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := runMiddleware(t, JWTAuth(testSecret), header)
			var httpErr *echo.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
		})
	}
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	claims := &models.JwtCustomClaims{UserID: 42}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = runMiddleware(t, JWTAuth(testSecret), "Bearer "+token)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestOptionalJWTAuthAllowsAnonymous(t *testing.T) {
	id, err := runMiddleware(t, OptionalJWTAuth(testSecret), "")
	require.NoError(t, err)
	assert.Equal(t, uint(0), id)
}

func TestOptionalJWTAuthStillRejectsBadTokens(t *testing.T) {
	_, err := runMiddleware(t, OptionalJWTAuth(testSecret), "Bearer not.a.token")
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
