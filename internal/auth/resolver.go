// Package auth resolves login credentials to accounts.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/boardhq/board/internal/models"
)

// ErrInvalidCredentials is the only failure a login attempt can surface.
// Unknown identifier, wrong password and disabled account all map to it so
// responses never reveal which part was wrong.
var ErrInvalidCredentials = errors.New("invalid username/email or password")

// UserFinder is the slice of the user repository the resolver needs.
type UserFinder interface {
	GetUserByUsername(username string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
}

// Resolver authenticates a login identifier, which may be a username or an
// email address, against a stored password hash.
type Resolver struct {
	users UserFinder
}

func NewResolver(users UserFinder) *Resolver {
	return &Resolver{users: users}
}

// Resolve tries the identifier as a username first and falls back to an
// email lookup. It has no side effects.
func (r *Resolver) Resolve(identifier, password string) (*models.User, error) {
	user, err := r.users.GetUserByUsername(identifier)
	if err != nil {
		user, err = r.users.GetUserByEmail(identifier)
	}
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
