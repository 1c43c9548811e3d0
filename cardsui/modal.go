package cardsui

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"github.com/rsmanito/expense-cards/models"
)

// Modal is the add-card form. Its state lives only while it is open.
type Modal struct {
	repo      Repository
	notify    Notifier
	onSuccess func()

	mu         sync.Mutex
	open       bool
	submitting bool
	draft      Draft
	errors     models.FieldErrors

	// fields Fill could not decode
	parseErrors models.FieldErrors
}

// NewModal returns a closed modal. onSuccess runs once per created card,
// after the success notification.
func NewModal(repo Repository, notify Notifier, onSuccess func()) *Modal {
	return &Modal{
		repo:      repo,
		notify:    notify,
		onSuccess: onSuccess,
		draft:     DefaultDraft(),
	}
}

func (m *Modal) Open() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.open {
		return
	}
	m.open = true
	m.draft = DefaultDraft()
	m.errors = nil
	m.parseErrors = nil
}

// Close hides the modal and discards unsaved input.
func (m *Modal) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.open = false
	m.draft = DefaultDraft()
	m.errors = nil
	m.parseErrors = nil
}

func (m *Modal) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

func (m *Modal) Submitting() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submitting
}

func (m *Modal) Draft() Draft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft
}

// Errors returns the field errors of the last rejected submission.
func (m *Modal) Errors() models.FieldErrors {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors
}

// Update edits the draft in place.
func (m *Modal) Update(fn func(*Draft)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.draft)
	m.parseErrors = nil
}

// Fill replaces the draft with string-encoded form values. Values that
// cannot be decoded are reported as field errors and leave the draft's
// default in place.
func (m *Modal) Fill(values url.Values) models.FieldErrors {
	draft, errs := ParseForm(values)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft = draft
	m.errors = errs
	m.parseErrors = errs
	return errs
}

// Submit validates the draft and, if it passes, creates the card. Remote
// failures are reported through the notifier and keep the draft for
// correction. It reports whether a card was created.
func (m *Modal) Submit(ctx context.Context) bool {
	m.mu.Lock()
	if !m.open || m.submitting {
		m.mu.Unlock()
		return false
	}

	req, errs := Validate(m.draft.Request())
	if errs != nil || m.parseErrors != nil {
		merged := models.FieldErrors{}
		for field, fe := range errs {
			merged[field] = fe
		}
		for field, fe := range m.parseErrors {
			merged[field] = fe
		}
		m.errors = merged
		m.mu.Unlock()
		return false
	}
	m.errors = nil
	m.submitting = true
	m.mu.Unlock()

	_, err := m.repo.Create(ctx, req)

	m.mu.Lock()
	m.submitting = false
	if err != nil {
		m.mu.Unlock()
		if !errors.Is(err, context.Canceled) {
			m.notify.Error(ErrorMessage(err, "Failed to add card"))
		}
		return false
	}
	m.draft = DefaultDraft()
	m.mu.Unlock()

	m.notify.Success("Card added")
	if m.onSuccess != nil {
		m.onSuccess()
	}
	return true
}
