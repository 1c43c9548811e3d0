package cardsui

import (
	"errors"
	"net/url"

	"github.com/rsmanito/expense-cards/models"
)

var schema = models.NewStructValidator()

// Draft holds the add-card form fields.
type Draft struct {
	CardName      string
	LastFour      string
	IsCompanyCard bool
	Currency      models.Currency
}

// DefaultDraft is the form state shown when the modal opens.
func DefaultDraft() Draft {
	return Draft{
		IsCompanyCard: true,
		Currency:      models.CurrencyCAD,
	}
}

func (d Draft) Request() models.CardCreateRequest {
	return models.CardCreateRequest{
		CardName:      d.CardName,
		LastFour:      d.LastFour,
		IsCompanyCard: d.IsCompanyCard,
		Currency:      d.Currency,
	}
}

// Validate runs the card creation rules locally. A nil FieldErrors means
// req is accepted as is.
func Validate(req models.CardCreateRequest) (models.CardCreateRequest, models.FieldErrors) {
	err := schema.Validate(&req)
	if err == nil {
		return req, nil
	}

	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return req, verr.Fields
	}
	return req, models.FieldErrors{"": {Kind: models.InvalidError, Message: err.Error()}}
}

// ParseForm decodes string-encoded form values into a Draft. Keys that are
// absent keep their default. is_company_card accepts only the literals
// "true" and "false".
func ParseForm(values url.Values) (Draft, models.FieldErrors) {
	draft := DefaultDraft()
	var errs models.FieldErrors

	if _, ok := values["card_name"]; ok {
		draft.CardName = values.Get("card_name")
	}
	if _, ok := values["last_four"]; ok {
		draft.LastFour = values.Get("last_four")
	}
	if _, ok := values["currency"]; ok {
		draft.Currency = models.Currency(values.Get("currency"))
	}
	if _, ok := values["is_company_card"]; ok {
		switch values.Get("is_company_card") {
		case "true":
			draft.IsCompanyCard = true
		case "false":
			draft.IsCompanyCard = false
		default:
			errs = models.FieldErrors{
				"is_company_card": {Kind: models.FormatError, Message: "is company card must be true or false"},
			}
		}
	}

	return draft, errs
}
