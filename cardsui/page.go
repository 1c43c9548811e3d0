package cardsui

import (
	"context"
	"sync"

	"github.com/rsmanito/expense-cards/models"
)

// Page composes the card list and the add-card modal. It owns the shared
// card cache: any successful mutation invalidates it and the list refetches.
//
// All remote calls run under the page's context, so Close abandons whatever
// is still in flight.
type Page struct {
	ctx    context.Context
	cancel context.CancelFunc

	cards *Query[[]models.Card]
	List  *ListView
	Modal *Modal

	stopRefetch func()
	refetches   sync.WaitGroup
}

func NewPage(parent context.Context, repo Repository, notify Notifier, confirm Confirmer) *Page {
	ctx, cancel := context.WithCancel(parent)

	p := &Page{
		ctx:    ctx,
		cancel: cancel,
		cards:  NewQuery(repo.List),
	}
	p.List = NewListView(p.cards, repo, notify, confirm)
	p.Modal = NewModal(repo, notify, p.cardCreated)
	p.stopRefetch = p.cards.OnInvalidate(p.refetch)

	return p
}

// Mount performs the initial card read.
func (p *Page) Mount() error {
	return p.List.Load(p.ctx)
}

// Invalidate marks the cached cards stale and starts a refetch.
func (p *Page) Invalidate() {
	p.cards.Invalidate()
}

func (p *Page) Cards() *Query[[]models.Card] {
	return p.cards
}

func (p *Page) OpenModal() {
	p.Modal.Open()
}

func (p *Page) CloseModal() {
	p.Modal.Close()
}

// SubmitCard submits the modal's draft.
func (p *Page) SubmitCard() bool {
	return p.Modal.Submit(p.ctx)
}

// DeleteCard asks for confirmation and deletes card.
func (p *Page) DeleteCard(card models.Card) bool {
	return p.List.Delete(p.ctx, card)
}

// WaitIdle blocks until refetches started by invalidation have finished.
func (p *Page) WaitIdle() {
	p.refetches.Wait()
}

// Close tears the page down, cancelling in-flight requests.
func (p *Page) Close() {
	p.stopRefetch()
	p.cancel()
	p.refetches.Wait()
}

func (p *Page) cardCreated() {
	p.Modal.Close()
	p.Invalidate()
}

func (p *Page) refetch() {
	if p.ctx.Err() != nil {
		return
	}

	p.refetches.Add(1)
	go func() {
		defer p.refetches.Done()
		p.List.Refresh(p.ctx)
	}()
}
