package postgres

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Card struct {
	ID            pgtype.UUID
	UserID        pgtype.UUID
	LastFour      string
	CardName      string
	IsCompanyCard bool
	Currency      pgtype.Text
	CreatedAt     pgtype.Timestamptz
}

type Token struct {
	UserID       pgtype.UUID
	Token        []byte
	RefreshToken []byte
	UpdatedAt    pgtype.Timestamptz
}

type User struct {
	ID        pgtype.UUID
	FullName  string
	Email     string
	Password  []byte
	CreatedAt pgtype.Timestamptz
}
