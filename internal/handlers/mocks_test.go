package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/boardhq/board/internal/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUsers() ([]models.User, error) {
	args := m.Called()
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) SearchUsers(query string) ([]models.User, error) {
	args := m.Called(query)
	return args.Get(0).([]models.User), args.Error(1)
}

type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) ToggleFollow(followerID, followingID uint) (bool, error) {
	args := m.Called(followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	args := m.Called(followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) GetFollowers(userID uint) ([]models.User, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockFollowRepository) GetFollowing(userID uint) ([]models.User, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockFollowRepository) GetFollowersCount(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFollowRepository) GetFollowingCount(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFollowRepository) GetFollowingIDs(followerID uint) ([]uint, error) {
	args := m.Called(followerID)
	return args.Get(0).([]uint), args.Error(1)
}

type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) ToggleLike(postID string, userID uint) (bool, error) {
	args := m.Called(postID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) GetLikesCount(postID string) (int64, error) {
	args := m.Called(postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLikeRepository) HasUserLiked(postID string, userID uint) (bool, error) {
	args := m.Called(postID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) DeleteLikesByPostID(postID string) error {
	args := m.Called(postID)
	return args.Error(0)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) CreateComment(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetCommentsByPostID(postID string) ([]models.Comment, error) {
	args := m.Called(postID)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetCommentsByAuthorID(authorID uint) ([]models.Comment, error) {
	args := m.Called(authorID)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetCommentsCount(postID string) (int64, error) {
	args := m.Called(postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) DeleteCommentsByPostID(postID string) error {
	args := m.Called(postID)
	return args.Error(0)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetPostsByAuthorID(ctx context.Context, authorID uint) ([]models.Post, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) DeletePost(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
