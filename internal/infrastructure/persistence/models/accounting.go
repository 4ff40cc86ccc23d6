package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/accounting"
	"github.com/ongcompta/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// AccountModel is the persistence model for the Account aggregate root.
// The treasury detail of class-5 accounts lives in its own table and is
// loaded with the account.
type AccountModel struct {
	AggregateModel
	Number       string               `gorm:"type:varchar(20);not null;uniqueIndex"`
	Label        string               `gorm:"type:varchar(200);not null"`
	Class        int                  `gorm:"not null;index"`
	ParentNumber string               `gorm:"type:varchar(20);index"`
	Active       bool                 `gorm:"not null;default:true;index"`
	Treasury     *TreasuryDetailModel `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// TreasuryDetailModel carries the bank/cash/mobile-money metadata of a
// class-5 account.
type TreasuryDetailModel struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key"`
	AccountID      uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex"`
	Kind           string           `gorm:"type:varchar(20);not null"`
	BankName       string           `gorm:"type:varchar(200)"`
	AccountNumber  string           `gorm:"type:varchar(50)"`
	IBAN           string           `gorm:"type:varchar(50)"`
	SWIFT          string           `gorm:"type:varchar(20)"`
	Holder         string           `gorm:"type:varchar(200)"`
	Operator       string           `gorm:"type:varchar(100)"`
	PhoneNumber    string           `gorm:"type:varchar(30)"`
	Currency       string           `gorm:"type:varchar(3);not null"`
	OpeningBalance decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	Ceiling        *decimal.Decimal `gorm:"type:decimal(18,2)"`
}

// TableName returns the table name for GORM
func (TreasuryDetailModel) TableName() string {
	return "treasury_details"
}

// ToDomain converts the persistence model to a domain Account entity.
func (m *AccountModel) ToDomain() *accounting.Account {
	account := &accounting.Account{
		BaseAggregateRoot: m.toAggregateRoot(),
		Number:            m.Number,
		Label:             m.Label,
		Class:             accounting.AccountClass(m.Class),
		ParentNumber:      m.ParentNumber,
		Active:            m.Active,
	}
	if m.Treasury != nil {
		currency := valueobject.Currency(m.Treasury.Currency)
		if currency == "" {
			currency = valueobject.DefaultCurrency
		}
		opening, _ := valueobject.NewMoney(m.Treasury.OpeningBalance, currency)
		detail := accounting.TreasuryDetail{
			Kind:           accounting.TreasuryKind(m.Treasury.Kind),
			BankName:       m.Treasury.BankName,
			AccountNumber:  m.Treasury.AccountNumber,
			IBAN:           m.Treasury.IBAN,
			SWIFT:          m.Treasury.SWIFT,
			Holder:         m.Treasury.Holder,
			Operator:       m.Treasury.Operator,
			PhoneNumber:    m.Treasury.PhoneNumber,
			Currency:       currency,
			OpeningBalance: opening,
		}
		if m.Treasury.Ceiling != nil {
			ceiling, _ := valueobject.NewMoney(*m.Treasury.Ceiling, currency)
			detail.Ceiling = &ceiling
		}
		account.Treasury = &detail
	}
	return account
}

// FromDomain populates the persistence model from a domain Account entity.
func (m *AccountModel) FromDomain(a *accounting.Account) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.Number = a.Number
	m.Label = a.Label
	m.Class = int(a.Class)
	m.ParentNumber = a.ParentNumber
	m.Active = a.Active
	if a.Treasury != nil {
		detail := &TreasuryDetailModel{
			AccountID:      a.ID,
			Kind:           string(a.Treasury.Kind),
			BankName:       a.Treasury.BankName,
			AccountNumber:  a.Treasury.AccountNumber,
			IBAN:           a.Treasury.IBAN,
			SWIFT:          a.Treasury.SWIFT,
			Holder:         a.Treasury.Holder,
			Operator:       a.Treasury.Operator,
			PhoneNumber:    a.Treasury.PhoneNumber,
			Currency:       string(a.Treasury.Currency),
			OpeningBalance: a.Treasury.OpeningBalance.Amount(),
		}
		if detail.ID == uuid.Nil {
			detail.ID = uuid.New()
		}
		if a.Treasury.Ceiling != nil {
			ceiling := a.Treasury.Ceiling.Amount()
			detail.Ceiling = &ceiling
		}
		m.Treasury = detail
	} else {
		m.Treasury = nil
	}
}

// AccountModelFromDomain creates a new persistence model from a domain Account.
func AccountModelFromDomain(a *accounting.Account) *AccountModel {
	m := &AccountModel{}
	m.FromDomain(a)
	return m
}

// JournalModel is the persistence model for the Journal aggregate root.
type JournalModel struct {
	AggregateModel
	Code              string     `gorm:"type:varchar(10);not null;uniqueIndex"`
	Name              string     `gorm:"type:varchar(100);not null"`
	Kind              string     `gorm:"type:varchar(20);not null"`
	TreasuryAccountID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (JournalModel) TableName() string {
	return "journals"
}

// ToDomain converts the persistence model to a domain Journal entity.
func (m *JournalModel) ToDomain() *accounting.Journal {
	return &accounting.Journal{
		BaseAggregateRoot: m.toAggregateRoot(),
		Code:              m.Code,
		Name:              m.Name,
		Kind:              accounting.JournalKind(m.Kind),
		TreasuryAccountID: m.TreasuryAccountID,
	}
}

// FromDomain populates the persistence model from a domain Journal entity.
func (m *JournalModel) FromDomain(j *accounting.Journal) {
	m.FromDomainAggregateRoot(j.BaseAggregateRoot)
	m.Code = j.Code
	m.Name = j.Name
	m.Kind = string(j.Kind)
	m.TreasuryAccountID = j.TreasuryAccountID
}

// JournalModelFromDomain creates a new persistence model from a domain Journal.
func JournalModelFromDomain(j *accounting.Journal) *JournalModel {
	m := &JournalModel{}
	m.FromDomain(j)
	return m
}

// CurrencyModel is the persistence model for the Currency aggregate root.
type CurrencyModel struct {
	AggregateModel
	Code     string          `gorm:"type:varchar(3);not null;uniqueIndex"`
	Name     string          `gorm:"type:varchar(100);not null"`
	Symbol   string          `gorm:"type:varchar(10)"`
	BaseRate decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	Active   bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CurrencyModel) TableName() string {
	return "currencies"
}

// ToDomain converts the persistence model to a domain Currency entity.
func (m *CurrencyModel) ToDomain() *accounting.Currency {
	return &accounting.Currency{
		BaseAggregateRoot: m.toAggregateRoot(),
		Code:              m.Code,
		Name:              m.Name,
		Symbol:            m.Symbol,
		BaseRate:          m.BaseRate,
		Active:            m.Active,
	}
}

// FromDomain populates the persistence model from a domain Currency entity.
func (m *CurrencyModel) FromDomain(c *accounting.Currency) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Code = c.Code
	m.Name = c.Name
	m.Symbol = c.Symbol
	m.BaseRate = c.BaseRate
	m.Active = c.Active
}

// CurrencyModelFromDomain creates a new persistence model from a domain Currency.
func CurrencyModelFromDomain(c *accounting.Currency) *CurrencyModel {
	m := &CurrencyModel{}
	m.FromDomain(c)
	return m
}

// ExchangeRateModel is the persistence model for monthly exchange rates.
// The (currency, month, year) slot is unique.
type ExchangeRateModel struct {
	AggregateModel
	CurrencyCode string          `gorm:"type:varchar(3);not null;uniqueIndex:idx_rate_currency_period,priority:1"`
	Month        int             `gorm:"not null;uniqueIndex:idx_rate_currency_period,priority:2"`
	Year         int             `gorm:"not null;uniqueIndex:idx_rate_currency_period,priority:3"`
	Rate         decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	Source       string          `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (ExchangeRateModel) TableName() string {
	return "exchange_rates"
}

// ToDomain converts the persistence model to a domain ExchangeRate entity.
func (m *ExchangeRateModel) ToDomain() *accounting.ExchangeRate {
	return &accounting.ExchangeRate{
		BaseAggregateRoot: m.toAggregateRoot(),
		CurrencyCode:      m.CurrencyCode,
		Month:             m.Month,
		Year:              m.Year,
		Rate:              m.Rate,
		Source:            m.Source,
	}
}

// FromDomain populates the persistence model from a domain ExchangeRate entity.
func (m *ExchangeRateModel) FromDomain(r *accounting.ExchangeRate) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.CurrencyCode = r.CurrencyCode
	m.Month = r.Month
	m.Year = r.Year
	m.Rate = r.Rate
	m.Source = r.Source
}

// ExchangeRateModelFromDomain creates a new persistence model from a domain ExchangeRate.
func ExchangeRateModelFromDomain(r *accounting.ExchangeRate) *ExchangeRateModel {
	m := &ExchangeRateModel{}
	m.FromDomain(r)
	return m
}

// FiscalYearModel is the persistence model for the FiscalYear aggregate root.
type FiscalYearModel struct {
	AggregateModel
	Year      int              `gorm:"not null;uniqueIndex"`
	StartDate time.Time        `gorm:"not null"`
	EndDate   time.Time        `gorm:"not null"`
	Closed    bool             `gorm:"not null;default:false;index"`
	ClosedAt  *time.Time       `gorm:""`
	Result    *decimal.Decimal `gorm:"type:decimal(18,2)"`
}

// TableName returns the table name for GORM
func (FiscalYearModel) TableName() string {
	return "fiscal_years"
}

// ToDomain converts the persistence model to a domain FiscalYear entity.
func (m *FiscalYearModel) ToDomain() *accounting.FiscalYear {
	return &accounting.FiscalYear{
		BaseAggregateRoot: m.toAggregateRoot(),
		Year:              m.Year,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		Closed:            m.Closed,
		ClosedAt:          m.ClosedAt,
		Result:            m.Result,
	}
}

// FromDomain populates the persistence model from a domain FiscalYear entity.
func (m *FiscalYearModel) FromDomain(f *accounting.FiscalYear) {
	m.FromDomainAggregateRoot(f.BaseAggregateRoot)
	m.Year = f.Year
	m.StartDate = f.StartDate
	m.EndDate = f.EndDate
	m.Closed = f.Closed
	m.ClosedAt = f.ClosedAt
	m.Result = f.Result
}

// FiscalYearModelFromDomain creates a new persistence model from a domain FiscalYear.
func FiscalYearModelFromDomain(f *accounting.FiscalYear) *FiscalYearModel {
	m := &FiscalYearModel{}
	m.FromDomain(f)
	return m
}
