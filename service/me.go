package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rsmanito/expense-cards/models"
)

// currentUserID resolves the authenticated user from ctx.
func currentUserID(ctx context.Context) (pgtype.UUID, error) {
	sub, ok := UserIDFromContext(ctx)
	if !ok {
		return pgtype.UUID{}, models.ErrInvalidCreds
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		log.Printf("Failed to parse subject as UUID: %v", err)
		return pgtype.UUID{}, models.ErrInvalidCreds
	}

	return pgtype.UUID{Bytes: userID, Valid: true}, nil
}

func (s *Service) GetUser(ctx context.Context) (*models.User, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.st.GetUserById(ctx, userID)
	if err != nil {
		log.Default().Println("Failed to fetch user: ", err)
		return nil, errors.New("failed to fetch user")
	}

	return &models.User{
		ID:       user.ID.Bytes,
		FullName: user.FullName,
		Email:    user.Email,
	}, nil
}
