package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/boardhq/board/internal/models"
)

func postJSON(t *testing.T, h echo.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e := newEcho()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetUserByUsername", "alice").Return(&models.User{ID: 1, Username: "alice"}, nil)

	h := NewAuthHandler(userRepo, "secret")
	rec := postJSON(t, h.Register, "/auth/register",
		`{"username":"alice","email":"new@example.com","password":"password1","password_confirm":"password1"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	userRepo.AssertNotCalled(t, "CreateUser")
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetUserByUsername", "newuser").Return(nil, errRecordNotFound())
	userRepo.On("GetUserByEmail", "alice@example.com").Return(&models.User{ID: 1}, nil)

	h := NewAuthHandler(userRepo, "secret")
	rec := postJSON(t, h.Register, "/auth/register",
		`{"username":"newuser","email":"alice@example.com","password":"password1","password_confirm":"password1"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	userRepo.AssertNotCalled(t, "CreateUser")
}

func TestRegisterRejectsMismatchedPasswords(t *testing.T) {
	h := NewAuthHandler(new(MockUserRepository), "secret")
	rec := postJSON(t, h.Register, "/auth/register",
		`{"username":"newuser","email":"new@example.com","password":"password1","password_confirm":"different"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterCreatesUserAndReturnsToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetUserByUsername", "newuser").Return(nil, errRecordNotFound())
	userRepo.On("GetUserByEmail", "new@example.com").Return(nil, errRecordNotFound())
	userRepo.On("CreateUser", mock.AnythingOfType("*models.User")).Return(nil)

	h := NewAuthHandler(userRepo, "secret")
	rec := postJSON(t, h.Register, "/auth/register",
		`{"username":"newuser","email":"new@example.com","password":"password1","password_confirm":"password1","gender":"other"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token"`)
	userRepo.AssertExpectations(t)
}

func TestLoginByUsernameAndByEmail(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correctpw"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{ID: 1, Username: "alice", Email: "alice@example.com", Password: string(hash), IsActive: true}

	userRepo := new(MockUserRepository)
	userRepo.On("GetUserByUsername", "alice").Return(user, nil)
	userRepo.On("GetUserByUsername", "alice@example.com").Return(nil, errRecordNotFound())
	userRepo.On("GetUserByEmail", "alice@example.com").Return(user, nil)

	h := NewAuthHandler(userRepo, "secret")

	rec := postJSON(t, h.Login, "/auth/login", `{"identifier":"alice","password":"correctpw"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token"`)

	rec = postJSON(t, h.Login, "/auth/login", `{"identifier":"alice@example.com","password":"correctpw"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token"`)
}

func TestLoginFailuresShareOneResponse(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correctpw"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{ID: 1, Username: "alice", Email: "alice@example.com", Password: string(hash), IsActive: true}

	userRepo := new(MockUserRepository)
	userRepo.On("GetUserByUsername", "alice").Return(user, nil)
	userRepo.On("GetUserByUsername", "nonexistent").Return(nil, errRecordNotFound())
	userRepo.On("GetUserByEmail", "nonexistent").Return(nil, errRecordNotFound())

	h := NewAuthHandler(userRepo, "secret")

	wrongPw := postJSON(t, h.Login, "/auth/login", `{"identifier":"alice","password":"wrongpw"}`)
	unknown := postJSON(t, h.Login, "/auth/login", `{"identifier":"nonexistent","password":"x"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	// Same body for both outcomes, nothing to enumerate accounts with.
	assert.Equal(t, wrongPw.Body.String(), unknown.Body.String())
}
