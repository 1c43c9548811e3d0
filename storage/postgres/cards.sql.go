package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createCard = `-- name: CreateCard :one
INSERT INTO cards (id, user_id, last_four, card_name, is_company_card, currency)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, user_id, last_four, card_name, is_company_card, currency, created_at
`

type CreateCardParams struct {
	ID            pgtype.UUID
	UserID        pgtype.UUID
	LastFour      string
	CardName      string
	IsCompanyCard bool
	Currency      pgtype.Text
}

func (q *Queries) CreateCard(ctx context.Context, arg CreateCardParams) (Card, error) {
	row := q.db.QueryRow(ctx, createCard,
		arg.ID,
		arg.UserID,
		arg.LastFour,
		arg.CardName,
		arg.IsCompanyCard,
		arg.Currency,
	)
	var i Card
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.LastFour,
		&i.CardName,
		&i.IsCompanyCard,
		&i.Currency,
		&i.CreatedAt,
	)
	return i, err
}

const listUserCards = `-- name: ListUserCards :many
SELECT id, user_id, last_four, card_name, is_company_card, currency, created_at FROM cards
WHERE user_id = $1
ORDER BY created_at DESC
`

func (q *Queries) ListUserCards(ctx context.Context, userID pgtype.UUID) ([]Card, error) {
	rows, err := q.db.Query(ctx, listUserCards, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Card
	for rows.Next() {
		var i Card
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.LastFour,
			&i.CardName,
			&i.IsCompanyCard,
			&i.Currency,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getUserCard = `-- name: GetUserCard :one
SELECT id, user_id, last_four, card_name, is_company_card, currency, created_at FROM cards
WHERE id = $1 AND user_id = $2
`

type GetUserCardParams struct {
	ID     pgtype.UUID
	UserID pgtype.UUID
}

func (q *Queries) GetUserCard(ctx context.Context, arg GetUserCardParams) (Card, error) {
	row := q.db.QueryRow(ctx, getUserCard, arg.ID, arg.UserID)
	var i Card
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.LastFour,
		&i.CardName,
		&i.IsCompanyCard,
		&i.Currency,
		&i.CreatedAt,
	)
	return i, err
}

const getUserCardByLastFour = `-- name: GetUserCardByLastFour :one
SELECT id, user_id, last_four, card_name, is_company_card, currency, created_at FROM cards
WHERE user_id = $1 AND last_four = $2
LIMIT 1
`

type GetUserCardByLastFourParams struct {
	UserID   pgtype.UUID
	LastFour string
}

func (q *Queries) GetUserCardByLastFour(ctx context.Context, arg GetUserCardByLastFourParams) (Card, error) {
	row := q.db.QueryRow(ctx, getUserCardByLastFour, arg.UserID, arg.LastFour)
	var i Card
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.LastFour,
		&i.CardName,
		&i.IsCompanyCard,
		&i.Currency,
		&i.CreatedAt,
	)
	return i, err
}

const deleteUserCard = `-- name: DeleteUserCard :execrows
DELETE FROM cards
WHERE id = $1 AND user_id = $2
`

type DeleteUserCardParams struct {
	ID     pgtype.UUID
	UserID pgtype.UUID
}

func (q *Queries) DeleteUserCard(ctx context.Context, arg DeleteUserCardParams) (int64, error) {
	result, err := q.db.Exec(ctx, deleteUserCard, arg.ID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
