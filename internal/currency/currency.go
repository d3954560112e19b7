package currency

import (
	"math"
	"time"

	currencyDatamodel "github.com/Skenwise/Loan-Management-System/internal/core/datamodel/currency"
)

type Currency struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Symbol    string    `json:"symbol,omitempty"`
	Decimals  int       `json:"decimals"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ExchangeRate struct {
	ID            string     `json:"id"`
	BaseCurrency  string     `json:"base_currency"`
	QuoteCurrency string     `json:"quote_currency"`
	Rate          float64    `json:"rate"`
	ValidFrom     time.Time  `json:"valid_from"`
	ValidTo       *time.Time `json:"valid_to,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

const DefaultDecimals = 2

// Round2 rounds to 2 decimal places, half away from zero, which is how
// the ledger amounts are stored.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func (c *Currency) ToDataModel() *currencyDatamodel.Currency {
	return &currencyDatamodel.Currency{
		ID:        c.ID,
		TenantID:  c.TenantID,
		Code:      c.Code,
		Name:      c.Name,
		Symbol:    c.Symbol,
		Decimals:  c.Decimals,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func FromDataModel(m *currencyDatamodel.Currency) *Currency {
	return &Currency{
		ID:        m.ID,
		TenantID:  m.TenantID,
		Code:      m.Code,
		Name:      m.Name,
		Symbol:    m.Symbol,
		Decimals:  m.Decimals,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *ExchangeRate) ToDataModel() *currencyDatamodel.ExchangeRate {
	return &currencyDatamodel.ExchangeRate{
		ID:            r.ID,
		BaseCurrency:  r.BaseCurrency,
		QuoteCurrency: r.QuoteCurrency,
		Rate:          r.Rate,
		ValidFrom:     r.ValidFrom,
		ValidTo:       r.ValidTo,
		CreatedAt:     r.CreatedAt,
	}
}

func RateFromDataModel(m *currencyDatamodel.ExchangeRate) *ExchangeRate {
	return &ExchangeRate{
		ID:            m.ID,
		BaseCurrency:  m.BaseCurrency,
		QuoteCurrency: m.QuoteCurrency,
		Rate:          m.Rate,
		ValidFrom:     m.ValidFrom,
		ValidTo:       m.ValidTo,
		CreatedAt:     m.CreatedAt,
	}
}
