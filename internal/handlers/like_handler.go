package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/boardhq/board/internal/middleware"
	"github.com/boardhq/board/internal/repositories"
)

// LikeHandler handles the like toggle on posts
type LikeHandler struct {
	likeRepository repositories.LikeRepository
	postRepository repositories.PostRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, postRepo repositories.PostRepository) *LikeHandler {
	return &LikeHandler{
		likeRepository: likeRepo,
		postRepository: postRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.ToggleLike)
}

// ToggleLike flips the viewer's like on a post. Asynchronous callers get
// the new state and count; form submissions are redirected to their "next"
// destination.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	viewerID := middleware.CurrentUserID(c)
	if viewerID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	pid := post.ID.Hex()
	liked, err := h.likeRepository.ToggleLike(pid, viewerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if isXHR(c) {
		count, err := h.likeRepository.GetLikesCount(pid)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{"liked": liked, "likes_count": count})
	}

	return c.Redirect(http.StatusSeeOther, safeNextURL(c, "/api/v1/posts"))
}
