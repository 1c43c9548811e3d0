package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rsmanito/expense-cards/config"
	"github.com/rsmanito/expense-cards/events"
	"github.com/rsmanito/expense-cards/storage/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateUser(ctx context.Context, params postgres.CreateUserParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockStore) SaveUserTokens(ctx context.Context, params postgres.SaveUserTokensParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockStore) GetUserByEmail(ctx context.Context, email string) (postgres.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(postgres.User), args.Error(1)
}

func (m *MockStore) GetUserById(ctx context.Context, userId pgtype.UUID) (postgres.User, error) {
	args := m.Called(ctx, userId)
	return args.Get(0).(postgres.User), args.Error(1)
}

func (m *MockStore) GetUserTokens(ctx context.Context, userId pgtype.UUID) (postgres.Token, error) {
	args := m.Called(ctx, userId)
	return args.Get(0).(postgres.Token), args.Error(1)
}

func (m *MockStore) CreateCard(ctx context.Context, params postgres.CreateCardParams) (postgres.Card, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(postgres.Card), args.Error(1)
}

func (m *MockStore) ListUserCards(ctx context.Context, userId pgtype.UUID) ([]postgres.Card, error) {
	args := m.Called(ctx, userId)
	return args.Get(0).([]postgres.Card), args.Error(1)
}

func (m *MockStore) GetUserCard(ctx context.Context, params postgres.GetUserCardParams) (postgres.Card, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(postgres.Card), args.Error(1)
}

func (m *MockStore) GetUserCardByLastFour(ctx context.Context, params postgres.GetUserCardByLastFourParams) (postgres.Card, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(postgres.Card), args.Error(1)
}

func (m *MockStore) DeleteUserCard(ctx context.Context, params postgres.DeleteUserCardParams) (int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(int64), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, event events.CardEvent) error {
	args := m.Called(ctx, routingKey, event)
	return args.Error(0)
}

func newTestService(st Storage) *Service {
	return New(st, &config.Config{JWT_SIGNING_KEY: "supersecret"}, nil)
}

func TestGetMe_Success(t *testing.T) {
	mockStore := new(MockStore)
	userID := uuid.New()
	svc := newTestService(mockStore)

	mockStore.
		On("GetUserById", mock.Anything, mock.MatchedBy(func(p pgtype.UUID) bool {
			return p.Valid && p.Bytes == userID
		})).
		Return(postgres.User{
			ID:       pgtype.UUID{Bytes: userID, Valid: true},
			FullName: "John Doe",
			Email:    "john@example.com",
		}, nil).
		Once()

	ctx := WithUserID(context.Background(), userID.String())
	user, err := svc.GetUser(ctx)

	assert.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "John Doe", user.FullName)
	mockStore.AssertExpectations(t)
}

func TestGetMe_NoUserInContext(t *testing.T) {
	svc := newTestService(new(MockStore))

	user, err := svc.GetUser(context.Background())

	assert.Nil(t, user)
	assert.Error(t, err)
}
