package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"golang.org/x/text/currency"
)

// Money is an amount in a single ISO 4217 currency.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// DefaultCurrency is the marketplace's trading currency.
var DefaultCurrency = currency.MustParseISO("KES").String()

// NewMoney validates the currency code and returns the resulting Money.
func NewMoney(amount decimal.Decimal, code string) (Money, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Money{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}
	return Money{Amount: amount, Currency: unit.String()}, nil
}

// KES builds a Money in the default currency.
func KES(amount decimal.Decimal) Money {
	return Money{Amount: amount, Currency: DefaultCurrency}
}

// Positive reports whether the amount is strictly greater than zero.
func (m Money) Positive() bool {
	return m.Amount.IsPositive()
}

func (m Money) String() string {
	return m.Amount.String() + " " + m.Currency
}

type moneyDoc struct {
	Amount   string `json:"amount" bson:"amount"`
	Currency string `json:"currency" bson:"currency"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyDoc{Amount: m.Amount.String(), Currency: m.Currency})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var doc moneyDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	return m.fromDoc(doc)
}

func (m Money) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(moneyDoc{Amount: m.Amount.String(), Currency: m.Currency})
}

func (m *Money) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var doc moneyDoc
	if err := bson.UnmarshalValue(t, data, &doc); err != nil {
		return err
	}
	return m.fromDoc(doc)
}

func (m *Money) fromDoc(doc moneyDoc) error {
	amount, err := decimal.NewFromString(doc.Amount)
	if err != nil {
		return fmt.Errorf("amount[%s] is not valid: %w", doc.Amount, err)
	}
	if _, err := currency.ParseISO(doc.Currency); err != nil {
		return fmt.Errorf("currency[%s] is not valid: %w", doc.Currency, err)
	}
	m.Amount = amount
	m.Currency = doc.Currency
	return nil
}
