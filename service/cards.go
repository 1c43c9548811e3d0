package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rsmanito/expense-cards/events"
	"github.com/rsmanito/expense-cards/models"
	"github.com/rsmanito/expense-cards/storage/postgres"
)

// ListCards returns the current user's cards, newest first.
func (s *Service) ListCards(ctx context.Context) ([]models.Card, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.st.ListUserCards(ctx, userID)
	if err != nil {
		log.Default().Println("Failed to list cards: ", err)
		return nil, errors.New("failed to list cards")
	}

	cards := make([]models.Card, 0, len(rows))
	for _, row := range rows {
		cards = append(cards, toCard(row))
	}

	return cards, nil
}

// CreateCard registers a card for the current user. Two cards of one user
// never share the same last four digits.
func (s *Service) CreateCard(ctx context.Context, req *models.CardCreateRequest) (*models.Card, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	_, err = s.st.GetUserCardByLastFour(ctx, postgres.GetUserCardByLastFourParams{
		UserID:   userID,
		LastFour: req.LastFour,
	})
	switch {
	case err == nil:
		return nil, models.ErrCardExists
	case !errors.Is(err, pgx.ErrNoRows):
		log.Default().Println("Failed to check existing cards: ", err)
		return nil, errors.New("failed to create card")
	}

	row, err := s.st.CreateCard(ctx, postgres.CreateCardParams{
		ID:            pgtype.UUID{Bytes: uuid.New(), Valid: true},
		UserID:        userID,
		LastFour:      req.LastFour,
		CardName:      req.CardName,
		IsCompanyCard: req.IsCompanyCard,
		Currency:      pgtype.Text{String: string(req.Currency), Valid: req.Currency != ""},
	})
	if err != nil {
		// A concurrent create with the same last four lost the unique index race.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, models.ErrCardExists
		}
		log.Default().Println("Failed to create card: ", err)
		return nil, errors.New("failed to create card")
	}

	card := toCard(row)
	s.publish(ctx, events.CardCreated, userID, &card)

	return &card, nil
}

func (s *Service) GetCard(ctx context.Context, cardID string) (*models.Card, error) {
	params, err := cardParams(ctx, cardID)
	if err != nil {
		return nil, err
	}

	row, err := s.st.GetUserCard(ctx, params)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrCardNotFound
		}
		log.Default().Println("Failed to get card: ", err)
		return nil, errors.New("failed to get card")
	}

	card := toCard(row)
	return &card, nil
}

func (s *Service) DeleteCard(ctx context.Context, cardID string) error {
	card, err := s.GetCard(ctx, cardID)
	if err != nil {
		return err
	}

	params, err := cardParams(ctx, cardID)
	if err != nil {
		return err
	}

	deleted, err := s.st.DeleteUserCard(ctx, postgres.DeleteUserCardParams(params))
	if err != nil {
		log.Default().Println("Failed to delete card: ", err)
		return errors.New("failed to delete card")
	}
	if deleted == 0 {
		return models.ErrCardNotFound
	}

	s.publish(ctx, events.CardDeleted, params.UserID, card)

	return nil
}

// MatchCard resolves the payment source of an expense from the trailing
// digits printed on its receipt.
func (s *Service) MatchCard(ctx context.Context, lastFour string) (*models.CardMatchResponse, error) {
	unknown := &models.CardMatchResponse{PaymentSource: models.PaymentSourceUnknown}
	if lastFour == "" {
		return unknown, nil
	}

	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	row, err := s.st.GetUserCardByLastFour(ctx, postgres.GetUserCardByLastFourParams{
		UserID:   userID,
		LastFour: lastFour,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return unknown, nil
		}
		log.Default().Println("Failed to match card: ", err)
		return nil, errors.New("failed to match card")
	}

	card := toCard(row)
	return &models.CardMatchResponse{
		PaymentSource: card.PaymentSource(),
		IsCompanyCard: card.IsCompanyCard,
		ExpenseTag:    card.ExpenseTag(),
	}, nil
}

func (s *Service) publish(ctx context.Context, routingKey string, userID pgtype.UUID, card *models.Card) {
	err := s.events.Publish(ctx, routingKey, events.CardEvent{
		CardID:        card.ID,
		UserID:        uuid.UUID(userID.Bytes).String(),
		LastFour:      card.LastFour,
		IsCompanyCard: card.IsCompanyCard,
		OccurredAt:    time.Now().UTC(),
	})
	if err != nil {
		log.Default().Printf("Failed to publish %s: %v", routingKey, err)
	}
}

func cardParams(ctx context.Context, cardID string) (postgres.GetUserCardParams, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return postgres.GetUserCardParams{}, err
	}

	id, err := uuid.Parse(cardID)
	if err != nil {
		return postgres.GetUserCardParams{}, models.ErrCardNotFound
	}

	return postgres.GetUserCardParams{
		ID:     pgtype.UUID{Bytes: id, Valid: true},
		UserID: userID,
	}, nil
}

func toCard(row postgres.Card) models.Card {
	card := models.Card{
		ID:            uuid.UUID(row.ID.Bytes).String(),
		CardName:      row.CardName,
		LastFour:      row.LastFour,
		IsCompanyCard: row.IsCompanyCard,
		CreatedAt:     row.CreatedAt.Time,
	}
	if row.Currency.Valid {
		currency := models.Currency(row.Currency.String)
		card.Currency = &currency
	}
	return card
}
