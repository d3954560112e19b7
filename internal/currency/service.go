package currency

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Skenwise/Loan-Management-System/internal"
	currencyDatamodel "github.com/Skenwise/Loan-Management-System/internal/core/datamodel/currency"
)

type RepositoryAPI interface {
	GetCurrencyByCode(ctx context.Context, code string) (*currencyDatamodel.Currency, error)
	ListCurrencies(ctx context.Context) ([]*currencyDatamodel.Currency, error)
	CreateCurrency(ctx context.Context, currency *currencyDatamodel.Currency) error
	CreateRate(ctx context.Context, rate *currencyDatamodel.ExchangeRate) error
	ListRates(ctx context.Context, base, quote string) ([]*currencyDatamodel.ExchangeRate, error)
	LatestRate(ctx context.Context, base, quote string) (*currencyDatamodel.ExchangeRate, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) CreateCurrency(ctx context.Context, dto *CreateCurrencyDTO) (*Currency, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetCurrencyByCode(ctx, dto.Code)
	if err != nil {
		return nil, internal.NewInternalError("currency lookup failed", err)
	}
	if existing != nil {
		return nil, internal.ErrDuplicateCurrency
	}

	now := time.Now()
	model := &currencyDatamodel.Currency{
		ID:        uuid.New().String(),
		TenantID:  dto.TenantID,
		Code:      dto.Code,
		Name:      dto.Name,
		Symbol:    dto.Symbol,
		Decimals:  dto.DecimalsOrDefault(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateCurrency(ctx, model); err != nil {
		s.logger.ErrorContext(ctx, "failed to create currency", "code", dto.Code, "error", err)
		return nil, internal.NewInternalError("failed to create currency", err)
	}

	s.logger.InfoContext(ctx, "currency created", "code", model.Code, "tenant_id", model.TenantID)
	return FromDataModel(model), nil
}

// GetCurrencyByCode upper-cases its input so lookups match the stored form.
func (s *Service) GetCurrencyByCode(ctx context.Context, code string) (*Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	model, err := s.repo.GetCurrencyByCode(ctx, code)
	if err != nil {
		return nil, internal.NewInternalError("currency lookup failed", err)
	}
	if model == nil {
		return nil, internal.ErrCurrencyNotFound
	}
	return FromDataModel(model), nil
}

func (s *Service) ListCurrencies(ctx context.Context) (*CurrenciesResponse, error) {
	models, err := s.repo.ListCurrencies(ctx)
	if err != nil {
		return nil, internal.NewInternalError("currency list failed", err)
	}

	currencies := make([]*Currency, 0, len(models))
	for _, model := range models {
		currencies = append(currencies, FromDataModel(model))
	}
	return &CurrenciesResponse{Currencies: currencies}, nil
}

func (s *Service) CreateRate(ctx context.Context, dto *CreateExchangeRateDTO) (*ExchangeRate, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model := &currencyDatamodel.ExchangeRate{
		ID:            uuid.New().String(),
		BaseCurrency:  dto.BaseCurrency,
		QuoteCurrency: dto.QuoteCurrency,
		Rate:          dto.Rate,
		ValidFrom:     dto.ValidFrom,
		ValidTo:       dto.ValidTo,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.CreateRate(ctx, model); err != nil {
		s.logger.ErrorContext(ctx, "failed to create exchange rate", "base", dto.BaseCurrency, "quote", dto.QuoteCurrency, "error", err)
		return nil, internal.NewInternalError("failed to create exchange rate", err)
	}

	s.logger.InfoContext(ctx, "exchange rate created", "base", model.BaseCurrency, "quote", model.QuoteCurrency, "rate", model.Rate)
	return RateFromDataModel(model), nil
}

// ListRates returns rates newest first, optionally filtered by pair.
func (s *Service) ListRates(ctx context.Context, base, quote string) (*ExchangeRatesResponse, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	quote = strings.ToUpper(strings.TrimSpace(quote))

	models, err := s.repo.ListRates(ctx, base, quote)
	if err != nil {
		return nil, internal.NewInternalError("exchange rate list failed", err)
	}

	rates := make([]*ExchangeRate, 0, len(models))
	for _, model := range models {
		rates = append(rates, RateFromDataModel(model))
	}
	return &ExchangeRatesResponse{Rates: rates}, nil
}

// LatestRate returns the newest rate for the pair by valid_from.
func (s *Service) LatestRate(ctx context.Context, base, quote string) (*ExchangeRate, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	quote = strings.ToUpper(strings.TrimSpace(quote))

	model, err := s.repo.LatestRate(ctx, base, quote)
	if err != nil {
		return nil, internal.NewInternalError("exchange rate lookup failed", err)
	}
	if model == nil {
		return nil, internal.NewNotFoundError(
			fmt.Sprintf("exchange rate %s->%s not found", base, quote),
			internal.ErrCodeExchangeRateNotFound,
		)
	}
	return RateFromDataModel(model), nil
}

// Convert applies the latest rate for the pair to the amount.
func (s *Service) Convert(ctx context.Context, amount float64, base, quote string) (*ConversionResponse, error) {
	rate, err := s.LatestRate(ctx, base, quote)
	if err != nil {
		return nil, err
	}

	return &ConversionResponse{
		Amount:        amount,
		BaseCurrency:  rate.BaseCurrency,
		QuoteCurrency: rate.QuoteCurrency,
		Rate:          rate.Rate,
		Converted:     amount * rate.Rate,
	}, nil
}

// RevalueBalance computes the adjustment a balance needs when the rate it
// was booked at moves. Rates must be positive on both sides.
func (s *Service) RevalueBalance(balance, oldRate, newRate float64) (*RevaluationResponse, error) {
	if oldRate <= 0 || newRate <= 0 {
		return nil, internal.ErrCalculation
	}

	return &RevaluationResponse{
		Balance:    balance,
		OldRate:    oldRate,
		NewRate:    newRate,
		Adjustment: Round2(balance * (newRate - oldRate)),
	}, nil
}
