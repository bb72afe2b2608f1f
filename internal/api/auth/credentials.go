package auth

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/moneta-finance/moneta/internal/database"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when the username is unknown or the password doesn't match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPasswordMismatch is returned when the password and its confirmation differ.
	ErrPasswordMismatch = errors.New("passwords don't match")
	// ErrMissingFields is returned when the username or password is empty.
	ErrMissingFields = errors.New("username and password are required")
	// ErrPasswordTooLong is returned when the password exceeds bcrypt's 72 byte limit.
	ErrPasswordTooLong = errors.New("password is too long")
	// ErrUsernameTaken is returned when the username is already registered.
	ErrUsernameTaken = database.ErrUsernameTaken
)

// UserStore is the subset of the database used for credentials.
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*database.User, error)
	GetUserByUsername(ctx context.Context, username string) (*database.User, error)
}

// Credentials registers users and verifies their passwords.
type Credentials struct {
	users UserStore
	cost  int
}

// NewCredentials creates a credential manager hashing with the given bcrypt cost.
func NewCredentials(users UserStore, cost int) *Credentials {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Credentials{
		users: users,
		cost:  cost,
	}
}

// Register creates a new user with a hashed password.
func (cr *Credentials) Register(ctx context.Context, username, password, confirmPassword string) (*database.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}
	if password != confirmPassword {
		return nil, ErrPasswordMismatch
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cr.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, err
	}

	user, err := cr.users.CreateUser(ctx, username, string(hashed))
	if err != nil {
		return nil, err
	}

	log.Info("user registered", "username", username)
	return user, nil
}

// Authenticate looks up the user by exact username and verifies the password.
func (cr *Credentials) Authenticate(ctx context.Context, username, password string) (*database.User, error) {
	user, err := cr.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Debug("password mismatch", "username", username)
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
