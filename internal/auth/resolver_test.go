package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/boardhq/board/internal/models"
)

type MockUserFinder struct {
	mock.Mock
}

func (m *MockUserFinder) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserFinder) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func alice(t *testing.T) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correctpw"), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:       1,
		Username: "alice",
		Email:    "alice@example.com",
		Password: string(hash),
		IsActive: true,
	}
}

func TestResolveByUsername(t *testing.T) {
	users := new(MockUserFinder)
	users.On("GetUserByUsername", "alice").Return(alice(t), nil)

	got, err := NewResolver(users).Resolve("alice", "correctpw")
	require.NoError(t, err)
	assert.Equal(t, uint(1), got.ID)
	users.AssertExpectations(t)
}

func TestResolveByEmailFallsBackToOwningAccount(t *testing.T) {
	users := new(MockUserFinder)
	users.On("GetUserByUsername", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("GetUserByEmail", "alice@example.com").Return(alice(t), nil)

	got, err := NewResolver(users).Resolve("alice@example.com", "correctpw")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	users.AssertExpectations(t)
}

func TestResolveFailuresAreIndistinguishable(t *testing.T) {
	t.Run("wrong password", func(t *testing.T) {
		users := new(MockUserFinder)
		users.On("GetUserByUsername", "alice").Return(alice(t), nil)

		got, err := NewResolver(users).Resolve("alice", "wrongpw")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password via email", func(t *testing.T) {
		users := new(MockUserFinder)
		users.On("GetUserByUsername", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
		users.On("GetUserByEmail", "alice@example.com").Return(alice(t), nil)

		got, err := NewResolver(users).Resolve("alice@example.com", "wrongpw")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		users := new(MockUserFinder)
		users.On("GetUserByUsername", "nonexistent").Return(nil, gorm.ErrRecordNotFound)
		users.On("GetUserByEmail", "nonexistent").Return(nil, gorm.ErrRecordNotFound)

		got, err := NewResolver(users).Resolve("nonexistent", "x")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("disabled account", func(t *testing.T) {
		disabled := alice(t)
		disabled.IsActive = false
		users := new(MockUserFinder)
		users.On("GetUserByUsername", "alice").Return(disabled, nil)

		got, err := NewResolver(users).Resolve("alice", "correctpw")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
