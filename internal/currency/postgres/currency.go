package postgres

import (
	"context"

	currencyDatamodel "github.com/Skenwise/Loan-Management-System/internal/core/datamodel/currency"
	"github.com/Skenwise/Loan-Management-System/internal/currency"
	"gorm.io/gorm"
)

type CurrencyRepository struct {
	db *gorm.DB
}

func NewCurrencyRepository(db *gorm.DB) currency.RepositoryAPI {
	return &CurrencyRepository{db: db}
}

func (r *CurrencyRepository) GetCurrencyByCode(ctx context.Context, code string) (*currencyDatamodel.Currency, error) {
	var model currencyDatamodel.Currency
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &model, nil
}

func (r *CurrencyRepository) ListCurrencies(ctx context.Context) ([]*currencyDatamodel.Currency, error) {
	var models []*currencyDatamodel.Currency
	err := r.db.WithContext(ctx).Order("code ASC").Find(&models).Error
	return models, err
}

func (r *CurrencyRepository) CreateCurrency(ctx context.Context, model *currencyDatamodel.Currency) error {
	return r.db.WithContext(ctx).Create(model).Error
}

func (r *CurrencyRepository) CreateRate(ctx context.Context, model *currencyDatamodel.ExchangeRate) error {
	return r.db.WithContext(ctx).Create(model).Error
}

func (r *CurrencyRepository) ListRates(ctx context.Context, base, quote string) ([]*currencyDatamodel.ExchangeRate, error) {
	query := r.db.WithContext(ctx).Order("valid_from DESC")
	if base != "" {
		query = query.Where("base_currency = ?", base)
	}
	if quote != "" {
		query = query.Where("quote_currency = ?", quote)
	}

	var models []*currencyDatamodel.ExchangeRate
	err := query.Find(&models).Error
	return models, err
}

// LatestRate picks the newest row for the pair by valid_from.
func (r *CurrencyRepository) LatestRate(ctx context.Context, base, quote string) (*currencyDatamodel.ExchangeRate, error) {
	var model currencyDatamodel.ExchangeRate
	err := r.db.WithContext(ctx).
		Where("base_currency = ? AND quote_currency = ?", base, quote).
		Order("valid_from DESC").
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &model, nil
}
