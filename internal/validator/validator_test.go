package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Title     string  `json:"title" validate:"required,min=5"`
	Email     string  `json:"email" validate:"required,email"`
	Currency  string  `json:"currency" validate:"required,currency_code"`
	MinBudget float64 `json:"minBudget" validate:"gte=0"`
	MaxBudget float64 `json:"maxBudget" validate:"gtefield=MinBudget"`
}

func TestValidate_Valid(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{
		Title:     "Fix my sink",
		Email:     "user@example.com",
		Currency:  "USD",
		MinBudget: 50,
		MaxBudget: 150,
	})
	assert.NoError(t, err)
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{
		Title:     "abc",
		Email:     "not-an-email",
		Currency:  "usd",
		MinBudget: 100,
		MaxBudget: 50,
	})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)

	// Имена полей приходят из json-тегов.
	assert.Contains(t, vErr.Errors, "title")
	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "currency")
	assert.Contains(t, vErr.Errors, "maxBudget")
	assert.NotContains(t, vErr.Errors, "minBudget")
}

func TestCurrencyCodeRule(t *testing.T) {
	v := New()

	type onlyCurrency struct {
		Currency string `json:"currency" validate:"omitempty,currency_code"`
	}

	assert.NoError(t, v.Validate(&onlyCurrency{Currency: "EUR"}))
	assert.NoError(t, v.Validate(&onlyCurrency{}))
	assert.Error(t, v.Validate(&onlyCurrency{Currency: "eur"}))
	assert.Error(t, v.Validate(&onlyCurrency{Currency: "EURO"}))
}
