package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/healthsome/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrCredentialsRequired = errors.New("username and password are required")
	ErrPasswordMismatch    = errors.New("password mismatch")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrUserNotFound        = errors.New("user not found")
)

type AuthUserRepository interface {
	FindByID(userID uint) (models.User, bool, error)
	FindByUsername(username string) (models.User, bool, error)
	ExistsByUsername(username string) (bool, error)
	Create(user *models.User) error
	UpdatePasswordHash(userID uint, passwordHash string) (bool, error)
}

type AuthService struct {
	users AuthUserRepository
	cost  int
	now   func() time.Time
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{
		users: users,
		cost:  bcrypt.DefaultCost,
		now:   time.Now,
	}
}

// WithHashCost overrides the bcrypt cost; tests use bcrypt.MinCost.
func (service *AuthService) WithHashCost(cost int) *AuthService {
	service.cost = cost
	return service
}

func NormalizeUsername(raw string) string {
	return strings.TrimSpace(raw)
}

// Login never tells a missing user apart from a wrong password.
func (service *AuthService) Login(username string, password string) (models.User, error) {
	user, found, err := service.users.FindByUsername(NormalizeUsername(username))
	if err != nil {
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	if !found {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// Register creates the account. It does not start a session.
func (service *AuthService) Register(username string, password string, confirmation string) (models.User, error) {
	username = NormalizeUsername(username)
	if username == "" || password == "" {
		return models.User{}, ErrCredentialsRequired
	}
	if password != confirmation {
		return models.User{}, ErrPasswordMismatch
	}

	exists, err := service.users.ExistsByUsername(username)
	if err != nil {
		return models.User{}, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return models.User{}, ErrUsernameTaken
	}

	passwordHash, err := service.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    service.now(),
	}
	if err := service.users.Create(&user); err != nil {
		// The unique index rejects a concurrent registration of the same name.
		if taken, checkErr := service.users.ExistsByUsername(username); checkErr == nil && taken {
			return models.User{}, ErrUsernameTaken
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	user, found, err := service.users.FindByID(userID)
	if err != nil {
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	if !found {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

// SetPassword replaces the stored hash for username.
func (service *AuthService) SetPassword(username string, password string) error {
	if password == "" {
		return ErrCredentialsRequired
	}
	user, found, err := service.users.FindByUsername(NormalizeUsername(username))
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if !found {
		return ErrUserNotFound
	}

	passwordHash, err := service.HashPassword(password)
	if err != nil {
		return err
	}
	updated, err := service.users.UpdatePasswordHash(user.ID, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if !updated {
		return ErrUserNotFound
	}
	return nil
}

func (service *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), service.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
