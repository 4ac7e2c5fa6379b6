package repository

import (
	"context"

	"slot-reservation/internal/domain/user"
	"slot-reservation/internal/infra"
)

const findUserByEmailSQL = `
	SELECT id, email, created_at
	FROM users
	WHERE email = $1`

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	err := r.db.QueryRow(ctx, findUserByEmailSQL, email).Scan(&u.ID, &u.Email, &u.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return &u, nil
}
