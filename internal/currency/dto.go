package currency

import (
	"strings"
	"time"

	errors "github.com/Skenwise/Loan-Management-System/internal"
	"github.com/Skenwise/Loan-Management-System/internal/core/common/validation"
)

type CreateCurrencyDTO struct {
	TenantID string `json:"tenant_id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals *int   `json:"decimals,omitempty"`
}

func (d *CreateCurrencyDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()
	validator.Field("tenant_id", d.TenantID).Required()
	validator.Field("code", d.Code).Required().ExactLength(3)
	validator.Field("name", d.Name).Required().MaxLength(100)
	validator.Field("symbol", d.Symbol).MaxLength(5)
	if d.Decimals != nil {
		validator.Field("decimals", *d.Decimals).IntRange(0, 4)
	}
	return validator.Validate()
}

// Normalize upper-cases the code; ISO 4217 codes are stored upper-case and
// every lookup does the same.
func (d *CreateCurrencyDTO) Normalize() {
	d.TenantID = strings.TrimSpace(d.TenantID)
	d.Code = strings.ToUpper(strings.TrimSpace(d.Code))
	d.Name = strings.TrimSpace(d.Name)
	d.Symbol = strings.TrimSpace(d.Symbol)
}

func (d *CreateCurrencyDTO) DecimalsOrDefault() int {
	if d.Decimals == nil {
		return DefaultDecimals
	}
	return *d.Decimals
}

type CreateExchangeRateDTO struct {
	BaseCurrency  string     `json:"base_currency"`
	QuoteCurrency string     `json:"quote_currency"`
	Rate          float64    `json:"rate"`
	ValidFrom     time.Time  `json:"valid_from"`
	ValidTo       *time.Time `json:"valid_to,omitempty"`
}

func (d *CreateExchangeRateDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()
	validator.Field("base_currency", d.BaseCurrency).Required().ExactLength(3)
	validator.Field("quote_currency", d.QuoteCurrency).Required().ExactLength(3)
	validator.Field("rate", d.Rate).PositiveFloat()
	return validator.Validate()
}

func (d *CreateExchangeRateDTO) Normalize() {
	d.BaseCurrency = strings.ToUpper(strings.TrimSpace(d.BaseCurrency))
	d.QuoteCurrency = strings.ToUpper(strings.TrimSpace(d.QuoteCurrency))
	if d.ValidFrom.IsZero() {
		d.ValidFrom = time.Now()
	}
}

type RevalueDTO struct {
	Balance float64 `json:"balance"`
	OldRate float64 `json:"old_rate"`
	NewRate float64 `json:"new_rate"`
}

type CurrenciesResponse struct {
	Currencies []*Currency `json:"currencies"`
}

type ExchangeRatesResponse struct {
	Rates []*ExchangeRate `json:"rates"`
}

type ConversionResponse struct {
	Amount        float64 `json:"amount"`
	BaseCurrency  string  `json:"base_currency"`
	QuoteCurrency string  `json:"quote_currency"`
	Rate          float64 `json:"rate"`
	Converted     float64 `json:"converted"`
}

type RevaluationResponse struct {
	Balance    float64 `json:"balance"`
	OldRate    float64 `json:"old_rate"`
	NewRate    float64 `json:"new_rate"`
	Adjustment float64 `json:"adjustment"`
}
