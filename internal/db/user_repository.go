package db

import (
	"time"

	"github.com/terraincognita07/healthsome/internal/models"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, bool, error) {
	return QueryOne[models.User](repo.store,
		`SELECT id, username, password_hash, created_at FROM users WHERE id = ? LIMIT 1`, userID)
}

func (repo *UserRepository) FindByUsername(username string) (models.User, bool, error) {
	return QueryOne[models.User](repo.store,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = ? LIMIT 1`, username)
}

func (repo *UserRepository) ExistsByUsername(username string) (bool, error) {
	_, found, err := QueryOne[uint](repo.store, `SELECT id FROM users WHERE username = ? LIMIT 1`, username)
	return found, err
}

func (repo *UserRepository) Create(user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	id, _, err := QueryOne[uint](repo.store,
		`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?) RETURNING id`,
		user.Username, user.PasswordHash, user.CreatedAt)
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

func (repo *UserRepository) UpdatePasswordHash(userID uint, passwordHash string) (bool, error) {
	affected, err := repo.store.Execute(`UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, userID)
	return affected > 0, err
}
