package models

import "time"

type Currency string

const (
	CurrencyCAD Currency = "CAD"
	CurrencyUSD Currency = "USD"
)

// PaymentSource is how an expense was paid, resolved from the card's last four digits.
type PaymentSource string

const (
	PaymentSourceCompanyCard  PaymentSource = "company_card"
	PaymentSourcePersonalCard PaymentSource = "personal_card"
	PaymentSourceUnknown      PaymentSource = "unknown"
)

const (
	ExpenseTagBusiness    = "Business Expense"
	ExpenseTagShareholder = "Due to Shareholder"
)

// CardCreateRequest is the payload accepted when registering a card.
type CardCreateRequest struct {
	CardName      string   `json:"card_name" validate:"required,min=2"`
	LastFour      string   `json:"last_four" validate:"len=4,number"`
	IsCompanyCard bool     `json:"is_company_card"`
	Currency      Currency `json:"currency" validate:"oneof=CAD USD"`
}

// Card is a stored payment card. Currency is nil for cards registered
// before currencies were tracked.
type Card struct {
	ID            string    `json:"id"`
	CardName      string    `json:"card_name"`
	LastFour      string    `json:"last_four"`
	IsCompanyCard bool      `json:"is_company_card"`
	Currency      *Currency `json:"currency,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (c *Card) PaymentSource() PaymentSource {
	if c.IsCompanyCard {
		return PaymentSourceCompanyCard
	}
	return PaymentSourcePersonalCard
}

// ExpenseTag is the category expenses paid with this card are filed under.
func (c *Card) ExpenseTag() string {
	if c.IsCompanyCard {
		return ExpenseTagBusiness
	}
	return ExpenseTagShareholder
}

type CardMatchResponse struct {
	PaymentSource PaymentSource `json:"payment_source"`
	IsCompanyCard bool          `json:"is_company_card"`
	ExpenseTag    string        `json:"expense_tag,omitempty"`
}
