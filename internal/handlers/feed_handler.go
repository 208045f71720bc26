package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/boardhq/board/internal/feed"
	"github.com/boardhq/board/internal/middleware"
	"github.com/boardhq/board/internal/pagination"
	"github.com/boardhq/board/internal/repositories"
)

const (
	homeFeedPageSize = 10
	discoverPageSize = 12
)

// FeedHandler handles the personal and discover feeds
type FeedHandler struct {
	composer          *feed.Composer
	userRepository    repositories.UserRepository
	likeRepository    repositories.LikeRepository
	commentRepository repositories.CommentRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	composer *feed.Composer,
	userRepo repositories.UserRepository,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
) *FeedHandler {
	return &FeedHandler{
		composer:          composer,
		userRepository:    userRepo,
		likeRepository:    likeRepo,
		commentRepository: commentRepo,
	}
}

// RegisterHomeFeedRoutes registers the strict following feed, which needs a
// session.
func (h *FeedHandler) RegisterHomeFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.HomeFeed)
}

// RegisterDiscoverRoutes registers the boosted feed, open to everyone.
func (h *FeedHandler) RegisterDiscoverRoutes(g *echo.Group) {
	g.GET("/feed/discover", h.DiscoverFeed)
}

// HomeFeed serves only posts from authors the viewer follows, newest first.
func (h *FeedHandler) HomeFeed(c echo.Context) error {
	viewerID := middleware.CurrentUserID(c)
	if viewerID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	posts, err := h.composer.Following(c.Request().Context(), viewerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := pagination.Paginate(posts, homeFeedPageSize, c.QueryParam("page"))
	entries, err := buildFeedEntries(page.Items, viewerID, h.userRepository, h.likeRepository, h.commentRepository)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"posts": entries},
		"meta":    pageMeta(page),
	})
}

// DiscoverFeed serves every post, ranking followed authors first. Anonymous
// viewers get a plain reverse-chronological listing.
func (h *FeedHandler) DiscoverFeed(c echo.Context) error {
	viewerID := middleware.CurrentUserID(c)

	posts, err := h.composer.Boosted(c.Request().Context(), viewerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := pagination.Paginate(posts, discoverPageSize, c.QueryParam("page"))
	entries, err := buildFeedEntries(page.Items, viewerID, h.userRepository, h.likeRepository, h.commentRepository)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"posts": entries},
		"meta":    pageMeta(page),
	})
}
