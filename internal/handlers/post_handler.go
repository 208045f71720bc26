package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/boardhq/board/internal/feed"
	"github.com/boardhq/board/internal/middleware"
	"github.com/boardhq/board/internal/models"
	"github.com/boardhq/board/internal/pagination"
	"github.com/boardhq/board/internal/repositories"
)

const (
	postsPageSize    = 12
	commentsPageSize = 5
)

// PostHandler handles the social post listing, detail, create and delete
type PostHandler struct {
	postRepository    repositories.PostRepository
	userRepository    repositories.UserRepository
	commentRepository repositories.CommentRepository
	likeRepository    repositories.LikeRepository
	followRepository  repositories.FollowRepository
	composer          *feed.Composer
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	commentRepo repositories.CommentRepository,
	likeRepo repositories.LikeRepository,
	followRepo repositories.FollowRepository,
	composer *feed.Composer,
) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		userRepository:    userRepo,
		commentRepository: commentRepo,
		likeRepository:    likeRepo,
		followRepository:  followRepo,
		composer:          composer,
	}
}

// RegisterPublicRoutes registers routes that work for anonymous viewers
func (h *PostHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/posts", h.ListPosts)
	g.GET("/posts/:id", h.GetPost)
}

// RegisterPostRoutes registers routes that require a session
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// ListPosts returns the global reverse-chronological listing, independent
// of who is looking.
func (h *PostHandler) ListPosts(c echo.Context) error {
	posts, err := h.composer.Recent(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := pagination.Paginate(posts, postsPageSize, c.QueryParam("page"))
	entries, err := buildFeedEntries(page.Items, middleware.CurrentUserID(c), h.userRepository, h.likeRepository, h.commentRepository)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"posts": entries},
		"meta":    pageMeta(page),
	})
}

// CreatePost creates a post owned by the authenticated user
func (h *PostHandler) CreatePost(c echo.Context) error {
	viewerID := middleware.CurrentUserID(c)
	if viewerID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post := &models.Post{
		AuthorID:  viewerID,
		Content:   req.Content,
		ImageURLs: req.ImageURLs,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, post)
}

// GetPost returns one post with its comments, oldest first, and the
// viewer's relationship to the author.
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	viewerID := middleware.CurrentUserID(c)

	entries, err := buildFeedEntries([]models.Post{*post}, viewerID, h.userRepository, h.likeRepository, h.commentRepository)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	comments, err := h.commentRepository.GetCommentsByPostID(post.ID.Hex())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	commentsPage := pagination.Paginate(comments, commentsPageSize, c.QueryParam("page"))

	isFollowingAuthor := false
	if viewerID != 0 && viewerID != post.AuthorID {
		isFollowingAuthor, err = h.followRepository.IsFollowing(viewerID, post.AuthorID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"post":                entries[0],
			"comments":            commentsPage.Items,
			"is_following_author": isFollowingAuthor,
		},
		"meta": pageMeta(commentsPage),
	})
}

// DeletePost removes a post together with its comments and likes. Only the
// owner may delete it.
func (h *PostHandler) DeletePost(c echo.Context) error {
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

	if post.AuthorID != viewerID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the owner can delete this post")
	}

	pid := post.ID.Hex()
	if err := h.postRepository.DeletePost(c.Request().Context(), pid); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.commentRepository.DeleteCommentsByPostID(pid); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.likeRepository.DeleteLikesByPostID(pid); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
