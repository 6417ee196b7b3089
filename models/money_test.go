package models_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"munchmarket/models"
)

func TestNewMoneyRejectsUnknownCurrency(t *testing.T) {
	_, err := models.NewMoney(decimal.NewFromInt(10), "KESH")
	require.Error(t, err)

	m, err := models.NewMoney(decimal.NewFromInt(10), "KES")
	require.NoError(t, err)
	assert.Equal(t, "KES", m.Currency)
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := models.KES(decimal.RequireFromString("249.50"))

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var raw map[string]string
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "KES", raw["currency"])
	assert.True(t, decimal.RequireFromString(raw["amount"]).Equal(m.Amount))

	var got models.Money
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, m.Amount.Equal(got.Amount))
	assert.Equal(t, m.Currency, got.Currency)
}

func TestMoneyUnmarshalRejectsGarbage(t *testing.T) {
	var m models.Money
	assert.Error(t, json.Unmarshal([]byte(`{"amount":"ten","currency":"KES"}`), &m))
	assert.Error(t, json.Unmarshal([]byte(`{"amount":"10","currency":"NOPE"}`), &m))
}

func TestMoneyPositive(t *testing.T) {
	assert.True(t, models.KES(decimal.NewFromInt(1)).Positive())
	assert.False(t, models.KES(decimal.Zero).Positive())
	assert.False(t, models.KES(decimal.NewFromInt(-5)).Positive())
}
