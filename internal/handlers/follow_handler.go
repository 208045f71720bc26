package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/boardhq/board/internal/middleware"
	"github.com/boardhq/board/internal/repositories"
)

// FollowHandler handles the follow toggle between users
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.ToggleFollow)
}

// ToggleFollow flips the viewer's follow edge to the target user. Following
// yourself is a no-op, answered with a redirect back to the profile rather
// than an error.
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	viewerID := middleware.CurrentUserID(c)
	if viewerID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	target, err := h.userRepository.GetUserByID(uint(targetID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	profileURL := "/api/v1/users/" + target.Username

	if viewerID == target.ID {
		if isXHR(c) {
			return c.JSON(http.StatusOK, echo.Map{"status": "ok", "action": "none"})
		}
		return c.Redirect(http.StatusSeeOther, profileURL)
	}

	followed, err := h.followRepository.ToggleFollow(viewerID, target.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	action := "unfollowed"
	if followed {
		action = "followed"
	}

	if isXHR(c) {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "action": action})
	}
	return c.Redirect(http.StatusSeeOther, safeNextURL(c, profileURL))
}
