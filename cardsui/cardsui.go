// Package cardsui drives the card management page: the card list, the
// add-card modal and the shared card cache they coordinate through.
//
// It renders nothing itself. A front end feeds user actions in, reads the
// view state back out, and supplies the notification and confirmation
// surfaces.
package cardsui

import (
	"context"
	"errors"

	"github.com/rsmanito/expense-cards/models"
)

// Repository is the remote card store.
type Repository interface {
	List(ctx context.Context) ([]models.Card, error)
	Create(ctx context.Context, req models.CardCreateRequest) (*models.Card, error)
	Delete(ctx context.Context, id string) error
}

// Notifier shows transient success and failure messages. Calls are fire and forget.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Confirmer asks the user a yes/no question and blocks until answered.
type Confirmer interface {
	Confirm(message string) bool
}

type serverDetailer interface {
	ServerDetail() string
}

// ErrorMessage returns the server supplied detail carried by err, or
// fallback when there is none (network failures, bare status codes).
func ErrorMessage(err error, fallback string) string {
	var d serverDetailer
	if errors.As(err, &d) && d.ServerDetail() != "" {
		return d.ServerDetail()
	}
	return fallback
}
