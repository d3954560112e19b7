package currency

import "time"

type Currency struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	TenantID  string    `gorm:"column:tenant_id;type:uuid;not null"`
	Code      string    `gorm:"column:code;uniqueIndex;not null"`
	Name      string    `gorm:"column:name;not null"`
	Symbol    string    `gorm:"column:symbol"`
	Decimals  int       `gorm:"column:decimals;default:2"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Currency) TableName() string {
	return "currencies"
}

type ExchangeRate struct {
	ID            string     `gorm:"primaryKey;type:uuid"`
	BaseCurrency  string     `gorm:"column:base_currency;not null;index:idx_rate_pair"`
	QuoteCurrency string     `gorm:"column:quote_currency;not null;index:idx_rate_pair"`
	Rate          float64    `gorm:"column:rate;not null"`
	ValidFrom     time.Time  `gorm:"column:valid_from;not null"`
	ValidTo       *time.Time `gorm:"column:valid_to"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
}
