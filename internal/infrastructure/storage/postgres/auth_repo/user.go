// Package auth_repo provides PostgreSQL implementations for auth repositories.
package auth_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"inventory/internal/domain"
	"inventory/internal/domain/auth"
	"inventory/internal/infrastructure/storage/postgres"
)

const userTable = "users"

// UserRepo implements auth.UserRepository.
type UserRepo struct {
	*postgres.BaseRepo[auth.User]
}

var _ auth.UserRepository = (*UserRepo)(nil)

// NewUserRepo creates a new user repository.
func NewUserRepo(txm *postgres.TxManager) *UserRepo {
	return &UserRepo{
		BaseRepo: postgres.NewBaseRepo[auth.User](txm, userTable, "user", "email", "first_name", "last_name"),
	}
}

// Create creates a new user. A taken email yields Conflict.
func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	return r.Insert(ctx, user)
}

// GetByEmail retrieves user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	return r.GetOne(ctx, r.SelectQuery().Where(squirrel.Eq{"email": email}), email)
}

// Exists checks if email is already registered.
func (r *UserRepo) Exists(ctx context.Context, email string) (bool, error) {
	sql, args, err := r.existsQuery(email).ToSql()
	if err != nil {
		return false, err
	}

	var exists bool
	if err := r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, postgres.MapError(err, "user", "exists")
	}
	return exists, nil
}

func (r *UserRepo) existsQuery(email string) squirrel.SelectBuilder {
	inner := r.Builder().Select("1").From(r.TableName()).Where(squirrel.Eq{"email": email})
	return r.Builder().Select().Column(squirrel.Expr("EXISTS (?)", inner))
}

// Update updates user data.
func (r *UserRepo) Update(ctx context.Context, user *auth.User, columns []string) error {
	return r.UpdateColumns(ctx, user.ID, user, columns)
}

// List retrieves users with filtering.
func (r *UserRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*auth.User], error) {
	return r.BaseRepo.List(ctx, r.SelectQuery(), filter)
}
