package service

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rsmanito/expense-cards/config"
	"github.com/rsmanito/expense-cards/events"
	"github.com/rsmanito/expense-cards/storage/postgres"
)

type Storage interface {
	CreateUser(context.Context, postgres.CreateUserParams) error
	GetUserByEmail(context.Context, string) (postgres.User, error)
	GetUserById(context.Context, pgtype.UUID) (postgres.User, error)
	SaveUserTokens(context.Context, postgres.SaveUserTokensParams) error
	GetUserTokens(context.Context, pgtype.UUID) (postgres.Token, error)

	CreateCard(context.Context, postgres.CreateCardParams) (postgres.Card, error)
	ListUserCards(context.Context, pgtype.UUID) ([]postgres.Card, error)
	GetUserCard(context.Context, postgres.GetUserCardParams) (postgres.Card, error)
	GetUserCardByLastFour(context.Context, postgres.GetUserCardByLastFourParams) (postgres.Card, error)
	DeleteUserCard(context.Context, postgres.DeleteUserCardParams) (int64, error)
}

type Service struct {
	st     Storage
	cfg    *config.Config
	events events.Publisher
}

// New returns a new Service. A nil publisher disables card events.
func New(st Storage, cfg *config.Config, pub events.Publisher) *Service {
	if pub == nil {
		pub = events.NopPublisher{}
	}

	return &Service{
		st:     st,
		cfg:    cfg,
		events: pub,
	}
}

type ctxKey string

const userIDKey ctxKey = "userId"

// WithUserID returns a context carrying the authenticated user's id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the id stored by WithUserID.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}
