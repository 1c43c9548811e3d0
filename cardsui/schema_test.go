package cardsui

import (
	"net/url"
	"testing"

	"github.com/rsmanito/expense-cards/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() models.CardCreateRequest {
	return models.CardCreateRequest{
		CardName:      "Biz Visa",
		LastFour:      "4242",
		IsCompanyCard: true,
		Currency:      models.CurrencyUSD,
	}
}

func TestValidate_LastFour(t *testing.T) {
	tests := []struct {
		lastFour string
		kind     models.ErrorKind
	}{
		{"1234", ""},
		{"0000", ""},
		{"123", models.LengthError},
		{"12345", models.LengthError},
		{"", models.LengthError},
		{"12a4", models.FormatError},
		{"12.3", models.FormatError},
		{"+123", models.FormatError},
		{"-123", models.FormatError},
		{"١٢٣٤", models.FormatError},
	}

	for _, tt := range tests {
		t.Run(tt.lastFour, func(t *testing.T) {
			req := validRequest()
			req.LastFour = tt.lastFour

			_, errs := Validate(req)
			if tt.kind == "" {
				assert.Nil(t, errs)
				return
			}
			require.Contains(t, errs, "last_four")
			assert.Equal(t, tt.kind, errs["last_four"].Kind)
			assert.NotEmpty(t, errs["last_four"].Message)
		})
	}
}

func TestValidate_CardName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"", false},
		{"V", false},
		{"Vi", true},
		{"Biz Visa", true},
	}

	for _, tt := range tests {
		req := validRequest()
		req.CardName = tt.name

		_, errs := Validate(req)
		if tt.ok {
			assert.Nil(t, errs, tt.name)
			continue
		}
		require.Contains(t, errs, "card_name", tt.name)
		assert.Equal(t, models.RequiredError, errs["card_name"].Kind)
	}
}

func TestValidate_Currency(t *testing.T) {
	for _, c := range []string{"CAD", "USD"} {
		req := validRequest()
		req.Currency = models.Currency(c)
		_, errs := Validate(req)
		assert.Nil(t, errs, c)
	}

	for _, c := range []string{"", "cad", "usd", "EUR", "CAD "} {
		req := validRequest()
		req.Currency = models.Currency(c)
		_, errs := Validate(req)
		require.Contains(t, errs, "currency", c)
		assert.Equal(t, models.EnumError, errs["currency"].Kind, c)
	}
}

func TestValidate_ReportsEveryField(t *testing.T) {
	_, errs := Validate(models.CardCreateRequest{CardName: "B", LastFour: "12", Currency: "GBP"})

	assert.Len(t, errs, 3)
	assert.Equal(t, models.RequiredError, errs["card_name"].Kind)
	assert.Equal(t, models.LengthError, errs["last_four"].Kind)
	assert.Equal(t, models.EnumError, errs["currency"].Kind)
}

func TestParseForm(t *testing.T) {
	draft, errs := ParseForm(url.Values{
		"card_name":       {"Biz Visa"},
		"last_four":       {"4242"},
		"is_company_card": {"false"},
		"currency":        {"USD"},
	})
	require.Nil(t, errs)
	assert.Equal(t, Draft{CardName: "Biz Visa", LastFour: "4242", IsCompanyCard: false, Currency: models.CurrencyUSD}, draft)

	draft, errs = ParseForm(url.Values{"is_company_card": {"true"}})
	require.Nil(t, errs)
	assert.True(t, draft.IsCompanyCard)
}

func TestParseForm_Defaults(t *testing.T) {
	draft, errs := ParseForm(url.Values{})

	assert.Nil(t, errs)
	assert.Equal(t, DefaultDraft(), draft)
	assert.True(t, draft.IsCompanyCard)
	assert.Equal(t, models.CurrencyCAD, draft.Currency)
}

func TestParseForm_RejectsLooseBooleans(t *testing.T) {
	for _, v := range []string{"on", "1", "yes", "TRUE", ""} {
		draft, errs := ParseForm(url.Values{"is_company_card": {v}})
		require.Contains(t, errs, "is_company_card", v)
		assert.Equal(t, models.FormatError, errs["is_company_card"].Kind)
		assert.True(t, draft.IsCompanyCard, "default kept for %q", v)
	}
}
