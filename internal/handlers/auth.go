package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/boardhq/board/internal/auth"
	"github.com/boardhq/board/internal/models"
	"github.com/boardhq/board/internal/repositories"
)

const tokenTTL = 72 * time.Hour

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	userRepository repositories.UserRepository
	resolver       *auth.Resolver
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		resolver:       auth.NewResolver(userRepo),
		jwtSecret:      jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
}

// Register creates a new account and signs the user in
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.userRepository.GetUserByUsername(req.Username); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Username already taken")
	}
	if _, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Username:    req.Username,
		Email:       req.Email,
		Password:    string(hashed),
		FirstName:   req.FirstName,
		Bio:         req.Bio,
		PhoneNumber: req.PhoneNumber,
		Gender:      req.Gender,
		IsActive:    true,
	}

	if err := h.userRepository.CreateUser(user); err != nil {
		// Unique indexes on username and email catch registration races the
		// pre-checks missed.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusConflict, "Username or email already taken")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusCreated, echo.Map{"token": token, "user": user})
}

// Login authenticates by username or email. Every failure gets the same
// generic message so callers can not probe which accounts exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.resolver.Resolve(req.Identifier, req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token, "user": user})
}

// Logout acknowledges the logout; tokens are stateless and expire on their
// own, the client just drops its copy.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// generateJWT generates a JWT token for a given user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
