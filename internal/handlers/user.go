package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/boardhq/board/internal/middleware"
	"github.com/boardhq/board/internal/models"
	"github.com/boardhq/board/internal/pagination"
	"github.com/boardhq/board/internal/repositories"
)

const (
	usersPageSize        = 10
	profilePostsPageSize = 9
)

// UserHandler handles user listing, profiles and profile edits
type UserHandler struct {
	userRepository    repositories.UserRepository
	postRepository    repositories.PostRepository
	commentRepository repositories.CommentRepository
	likeRepository    repositories.LikeRepository
	followRepository  repositories.FollowRepository
	replyRepository   repositories.ReplyRepository
	avatarDir         string
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	likeRepo repositories.LikeRepository,
	followRepo repositories.FollowRepository,
	replyRepo repositories.ReplyRepository,
	avatarDir string,
) *UserHandler {
	return &UserHandler{
		userRepository:    userRepo,
		postRepository:    postRepo,
		commentRepository: commentRepo,
		likeRepository:    likeRepo,
		followRepository:  followRepo,
		replyRepository:   replyRepo,
		avatarDir:         avatarDir,
	}
}

// RegisterPublicRoutes registers routes that work for anonymous viewers
func (h *UserHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/users", h.ListUsers)
	g.GET("/users/:username", h.GetUserProfile)
}

// RegisterProfileRoutes registers routes that require a session
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.PUT("/profile", h.UpdateProfile)
	g.POST("/profile/avatar", h.UploadAvatar)
}

// ListUsers lists all users, or those matching the q substring search
// against username, email or first name.
func (h *UserHandler) ListUsers(c echo.Context) error {
	query := c.QueryParam("q")

	var (
		users []models.User
		err   error
	)
	if query != "" {
		users, err = h.userRepository.SearchUsers(query)
	} else {
		users, err = h.userRepository.GetUsers()
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := pagination.Paginate(users, usersPageSize, c.QueryParam("page"))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"users": page.Items},
		"meta":    pageMeta(page),
	})
}

// GetUserProfile returns one user's profile with their posts, counts and
// the viewer's follow state.
func (h *UserHandler) GetUserProfile(c echo.Context) error {
	profileUser, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	viewerID := middleware.CurrentUserID(c)

	posts, err := h.postRepository.GetPostsByAuthorID(c.Request().Context(), profileUser.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	postsCount := len(posts)

	page := pagination.Paginate(posts, profilePostsPageSize, c.QueryParam("page"))
	entries, err := buildFeedEntries(page.Items, viewerID, h.userRepository, h.likeRepository, h.commentRepository)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	followersCount, err := h.followRepository.GetFollowersCount(profileUser.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	followingCount, err := h.followRepository.GetFollowingCount(profileUser.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	repliesCount, err := h.replyRepository.GetRepliesCountByAuthorID(profileUser.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	comments, err := h.commentRepository.GetCommentsByAuthorID(profileUser.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	isOwnProfile := viewerID == profileUser.ID
	isFollowing := false
	if viewerID != 0 && !isOwnProfile {
		isFollowing, err = h.followRepository.IsFollowing(viewerID, profileUser.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"user":            profileUser,
			"posts":           entries,
			"comments":        comments,
			"posts_count":     postsCount,
			"replies_count":   repliesCount,
			"followers_count": followersCount,
			"following_count": followingCount,
			"is_following":    isFollowing,
			"is_own_profile":  isOwnProfile,
		},
		"meta": pageMeta(page),
	})
}

// UpdateProfile updates the authenticated user's profile fields
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	viewerID := middleware.CurrentUserID(c)
	if viewerID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByID(viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Gender != "" {
		user.Gender = req.Gender
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusConflict, "Email already registered")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, user)
}

// UploadAvatar stores a multipart avatar file under the user's avatar
// directory and records its URL on the profile.
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	viewerID := middleware.CurrentUserID(c)
	if viewerID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Avatar file is required")
	}

	user, err := h.userRepository.GetUserByID(viewerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read avatar file")
	}
	defer src.Close()

	userDir := filepath.Join(h.avatarDir, fmt.Sprintf("user_%d", user.ID))
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store avatar")
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	dst, err := os.Create(filepath.Join(userDir, name))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store avatar")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store avatar")
	}

	user.AvatarURL = fmt.Sprintf("/uploads/avatars/user_%d/%s", user.ID, name)
	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"avatar_url": user.AvatarURL})
}
