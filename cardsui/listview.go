package cardsui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rsmanito/expense-cards/models"
)

const maskPrefix = "•••• •••• •••• "

type ListStatus int

const (
	ListLoading ListStatus = iota
	ListEmpty
	ListLoaded
	ListFailed
)

// CardRow is one rendered card.
type CardRow struct {
	ID           string
	Name         string
	Badge        string
	MaskedNumber string
	// Currency is empty for cards created before currencies were recorded.
	Currency string
	Deleting bool
}

type ListState struct {
	Status ListStatus
	Rows   []CardRow
	Err    error
}

// ListView shows the user's cards and deletes them on confirmed request.
type ListView struct {
	query   *Query[[]models.Card]
	repo    Repository
	notify  Notifier
	confirm Confirmer

	mu      sync.Mutex
	pending map[string]struct{}
}

func NewListView(query *Query[[]models.Card], repo Repository, notify Notifier, confirm Confirmer) *ListView {
	return &ListView{
		query:   query,
		repo:    repo,
		notify:  notify,
		confirm: confirm,
		pending: map[string]struct{}{},
	}
}

// Load reads the cards through the cache.
func (lv *ListView) Load(ctx context.Context) error {
	_, err := lv.query.Read(ctx)
	return err
}

// Refresh re-reads the cards from the remote store.
func (lv *ListView) Refresh(ctx context.Context) error {
	_, err := lv.query.Fetch(ctx)
	return err
}

func (lv *ListView) View() ListState {
	snap := lv.query.Snapshot()

	switch snap.Status {
	case StatusIdle, StatusLoading:
		return ListState{Status: ListLoading}
	case StatusError:
		return ListState{Status: ListFailed, Err: snap.Err, Rows: lv.rows(snap.Data)}
	}

	if len(snap.Data) == 0 {
		return ListState{Status: ListEmpty}
	}
	return ListState{Status: ListLoaded, Rows: lv.rows(snap.Data)}
}

func (lv *ListView) rows(cards []models.Card) []CardRow {
	lv.mu.Lock()
	defer lv.mu.Unlock()

	rows := make([]CardRow, 0, len(cards))
	for _, card := range cards {
		row := CardRow{
			ID:           card.ID,
			Name:         card.CardName,
			Badge:        TypeBadge(card),
			MaskedNumber: MaskNumber(card.LastFour),
		}
		if card.Currency != nil {
			row.Currency = string(*card.Currency)
		}
		_, row.Deleting = lv.pending[card.ID]
		rows = append(rows, row)
	}
	return rows
}

// Deleting reports whether a delete of id is in flight.
func (lv *ListView) Deleting(id string) bool {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	_, ok := lv.pending[id]
	return ok
}

// Delete removes card after the user confirms. Only the card being deleted
// is locked; other cards stay deletable meanwhile. It reports whether the
// card was deleted.
func (lv *ListView) Delete(ctx context.Context, card models.Card) bool {
	if lv.Deleting(card.ID) {
		return false
	}

	if !lv.confirm.Confirm(fmt.Sprintf("Delete %s (%s)?", card.CardName, MaskNumber(card.LastFour))) {
		return false
	}

	lv.mu.Lock()
	if _, busy := lv.pending[card.ID]; busy {
		lv.mu.Unlock()
		return false
	}
	lv.pending[card.ID] = struct{}{}
	lv.mu.Unlock()

	err := lv.repo.Delete(ctx, card.ID)

	lv.mu.Lock()
	delete(lv.pending, card.ID)
	lv.mu.Unlock()

	if err != nil {
		// A closed page has nobody left to tell.
		if !errors.Is(err, context.Canceled) {
			lv.notify.Error(ErrorMessage(err, "Failed to delete card"))
		}
		return false
	}

	lv.query.Invalidate()
	lv.notify.Success("Card deleted")
	return true
}

func MaskNumber(lastFour string) string {
	return maskPrefix + lastFour
}

func TypeBadge(card models.Card) string {
	if card.IsCompanyCard {
		return "Company"
	}
	return "Personal"
}
