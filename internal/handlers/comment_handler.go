package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/boardhq/board/internal/middleware"
	"github.com/boardhq/board/internal/models"
	"github.com/boardhq/board/internal/repositories"
)

// CommentHandler handles creating comments on posts
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comments", h.CreateComment)
}

// CreateComment adds a comment to a post. Form submissions are sent back to
// the post, asynchronous callers get the created comment.
func (h *CommentHandler) CreateComment(c echo.Context) error {
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

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment := &models.Comment{
		PostID:   post.ID.Hex(),
		AuthorID: viewerID,
		Content:  req.Content,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if isXHR(c) {
		return c.JSON(http.StatusCreated, comment)
	}
	return c.Redirect(http.StatusSeeOther, safeNextURL(c, "/api/v1/posts/"+post.ID.Hex()))
}
