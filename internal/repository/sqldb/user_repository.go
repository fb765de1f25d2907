package sqldb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/okonek/mathsprint/internal/db"
	"github.com/okonek/mathsprint/internal/logger"
	"github.com/okonek/mathsprint/internal/models"
	"github.com/okonek/mathsprint/internal/repository"
)

type userRepository struct {
	db *db.DB
}

// NewUserRepository creates a UserRepository backed by the SQL database.
func NewUserRepository(database *db.DB) repository.UserRepository {
	return &userRepository{db: database}
}

func (r *userRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")

	query := r.db.Builder().
		Select("id", "username", "password").
		From("users").
		Where("id = ?", id)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var u models.User
	err = r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&u.ID, &u.Username, &u.Password)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")

	query := r.db.Builder().
		Select("id", "username", "password").
		From("users").
		Where("username = ?", username)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var u models.User
	err = r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&u.ID, &u.Username, &u.Password)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: username=%s", username)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user by username: %v", err)
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user models.User) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("creating user: username=%s", user.Username)

	if r.db.Driver() == "postgres" {
		err := r.db.QueryRowContext(ctx, `
INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id
`, user.Username, user.Password).Scan(&user.ID)
		if err != nil {
			log.Error("failed to create user: %v", err)
			return nil, err
		}
		return &user, nil
	}

	res, err := r.db.ExecContext(ctx, `INSERT INTO users (username, password) VALUES (?, ?)`, user.Username, user.Password)
	if err != nil {
		log.Error("failed to create user: %v", err)
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get user id: %v", err)
		return nil, err
	}
	user.ID = id
	return &user, nil
}
