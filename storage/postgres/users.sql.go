package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createUser = `-- name: CreateUser :exec
INSERT INTO users (id, full_name, email, password)
VALUES ($1, $2, $3, $4)
`

type CreateUserParams struct {
	ID       pgtype.UUID
	FullName string
	Email    string
	Password []byte
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) error {
	_, err := q.db.Exec(ctx, createUser,
		arg.ID,
		arg.FullName,
		arg.Email,
		arg.Password,
	)
	return err
}

const getUserByEmail = `-- name: GetUserByEmail :one
SELECT id, full_name, email, password, created_at FROM users
WHERE email = $1
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByEmail, email)
	var i User
	err := row.Scan(
		&i.ID,
		&i.FullName,
		&i.Email,
		&i.Password,
		&i.CreatedAt,
	)
	return i, err
}

const getUserById = `-- name: GetUserById :one
SELECT id, full_name, email, password, created_at FROM users
WHERE id = $1
`

func (q *Queries) GetUserById(ctx context.Context, id pgtype.UUID) (User, error) {
	row := q.db.QueryRow(ctx, getUserById, id)
	var i User
	err := row.Scan(
		&i.ID,
		&i.FullName,
		&i.Email,
		&i.Password,
		&i.CreatedAt,
	)
	return i, err
}

const saveUserTokens = `-- name: SaveUserTokens :exec
INSERT INTO tokens (user_id, token, refresh_token, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (user_id) DO UPDATE
SET token = EXCLUDED.token,
    refresh_token = EXCLUDED.refresh_token,
    updated_at = now()
`

type SaveUserTokensParams struct {
	UserID       pgtype.UUID
	Token        []byte
	RefreshToken []byte
}

func (q *Queries) SaveUserTokens(ctx context.Context, arg SaveUserTokensParams) error {
	_, err := q.db.Exec(ctx, saveUserTokens, arg.UserID, arg.Token, arg.RefreshToken)
	return err
}

const getUserTokens = `-- name: GetUserTokens :one
SELECT user_id, token, refresh_token, updated_at FROM tokens
WHERE user_id = $1
`

func (q *Queries) GetUserTokens(ctx context.Context, userID pgtype.UUID) (Token, error) {
	row := q.db.QueryRow(ctx, getUserTokens, userID)
	var i Token
	err := row.Scan(
		&i.UserID,
		&i.Token,
		&i.RefreshToken,
		&i.UpdatedAt,
	)
	return i, err
}
