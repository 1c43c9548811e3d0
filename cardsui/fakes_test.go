package cardsui

import (
	"context"
	"errors"
	"sync"

	"github.com/rsmanito/expense-cards/models"
)

type fakeRepo struct {
	mu        sync.Mutex
	cards     []models.Card
	listErr   error
	createErr error
	deleteErr error

	listCalls   int
	created     []models.CardCreateRequest
	deletedIDs  []string
	deleteGate  chan struct{}
	deleteEnter chan string
	createGate  chan struct{}
}

func (r *fakeRepo) List(ctx context.Context) ([]models.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]models.Card(nil), r.cards...), nil
}

func (r *fakeRepo) Create(ctx context.Context, req models.CardCreateRequest) (*models.Card, error) {
	if r.createGate != nil {
		select {
		case <-r.createGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, req)
	if r.createErr != nil {
		return nil, r.createErr
	}
	currency := req.Currency
	card := models.Card{
		ID:            "card-" + req.LastFour,
		CardName:      req.CardName,
		LastFour:      req.LastFour,
		IsCompanyCard: req.IsCompanyCard,
		Currency:      &currency,
	}
	r.cards = append([]models.Card{card}, r.cards...)
	return &card, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if r.deleteEnter != nil {
		r.deleteEnter <- id
	}
	if r.deleteGate != nil {
		select {
		case <-r.deleteGate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletedIDs = append(r.deletedIDs, id)
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for i, c := range r.cards {
		if c.ID == id {
			r.cards = append(r.cards[:i], r.cards[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (r *fakeRepo) listCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listCalls
}

type fakeNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *fakeNotifier) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, message)
}

func (n *fakeNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, message)
}

type fakeConfirmer struct {
	answer bool
	asked  []string
}

func (c *fakeConfirmer) Confirm(message string) bool {
	c.asked = append(c.asked, message)
	return c.answer
}

func usd() *models.Currency {
	c := models.CurrencyUSD
	return &c
}
