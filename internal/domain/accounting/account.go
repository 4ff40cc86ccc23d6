package accounting

import (
	"strconv"
	"strings"

	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/ongcompta/backend/internal/domain/shared/valueobject"
)

// AccountClass is the SYSCOHADA class encoded in the leading digit of
// an account number.
type AccountClass int

const (
	ClassEquity      AccountClass = 1
	ClassFixedAssets AccountClass = 2
	ClassStock       AccountClass = 3
	ClassThirdParty  AccountClass = 4
	ClassTreasury    AccountClass = 5
	ClassExpense     AccountClass = 6
	ClassRevenue     AccountClass = 7
)

// IsValid checks if the account class is valid
func (c AccountClass) IsValid() bool {
	return c >= ClassEquity && c <= ClassRevenue
}

// DisplayName returns the SYSCOHADA name of the class
func (c AccountClass) DisplayName() string {
	switch c {
	case ClassEquity:
		return "Comptes de ressources durables"
	case ClassFixedAssets:
		return "Comptes d'actif immobilisé"
	case ClassStock:
		return "Comptes de stocks"
	case ClassThirdParty:
		return "Comptes de tiers"
	case ClassTreasury:
		return "Comptes de trésorerie"
	case ClassExpense:
		return "Comptes de charges"
	case ClassRevenue:
		return "Comptes de produits"
	default:
		return "Inconnu"
	}
}

// TreasuryKind distinguishes the kinds of class-5 treasury accounts
type TreasuryKind string

const (
	TreasuryBank        TreasuryKind = "banque"
	TreasuryCash        TreasuryKind = "caisse"
	TreasuryMobileMoney TreasuryKind = "mobile_money"
)

// IsValid checks if the treasury kind is valid
func (k TreasuryKind) IsValid() bool {
	switch k {
	case TreasuryBank, TreasuryCash, TreasuryMobileMoney:
		return true
	}
	return false
}

// TreasuryDetail carries the bank/cash/mobile-money metadata owned by a
// class-5 account.
type TreasuryDetail struct {
	Kind           TreasuryKind
	BankName       string
	AccountNumber  string
	IBAN           string
	SWIFT          string
	Holder         string
	Operator       string
	PhoneNumber    string
	Currency       valueobject.Currency
	OpeningBalance valueobject.Money
	Ceiling        *valueobject.Money
}

// Account is a node of the SYSCOHADA chart of accounts. The class is
// derived from the leading digit at creation and never changes, since
// changing it would invalidate historical postings.
type Account struct {
	shared.BaseAggregateRoot
	Number       string
	Label        string
	Class        AccountClass
	ParentNumber string
	Active       bool
	Treasury     *TreasuryDetail
}

// NewAccount creates a chart-of-accounts node. The SYSCOHADA class is
// derived from the leading digit of the number.
func NewAccount(number, label, parentNumber string) (*Account, error) {
	number = strings.TrimSpace(number)
	if len(number) < 2 {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NUMBER", "Account number must have at least 2 digits")
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return nil, shared.NewDomainError("INVALID_ACCOUNT_NUMBER", "Account number must contain only digits")
		}
	}
	if strings.TrimSpace(label) == "" {
		return nil, shared.NewDomainError("INVALID_LABEL", "Account label is required")
	}
	if parentNumber != "" && !strings.HasPrefix(number, parentNumber) {
		return nil, shared.NewDomainError("INVALID_PARENT", "Parent account number must be a prefix of the account number")
	}

	leading, _ := strconv.Atoi(number[:1])
	class := AccountClass(leading)
	if !class.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_CLASS", "Account number must start with a class digit 1-7")
	}

	account := &Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Label:             label,
		Class:             class,
		ParentNumber:      parentNumber,
		Active:            true,
	}
	account.AddDomainEvent(NewAccountCreatedEvent(account))
	return account, nil
}

// NewTreasuryAccount creates a class-5 account together with its
// treasury detail.
func NewTreasuryAccount(number, label string, detail TreasuryDetail) (*Account, error) {
	if !strings.HasPrefix(strings.TrimSpace(number), "5") {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NUMBER", "Treasury account number must start with 5")
	}
	if !detail.Kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_TREASURY_KIND", "Treasury kind must be banque, caisse or mobile_money")
	}
	if detail.Currency == "" {
		detail.Currency = valueobject.DefaultCurrency
	}
	account, err := NewAccount(number, label, "")
	if err != nil {
		return nil, err
	}
	account.Treasury = &detail
	return account, nil
}

// IsTreasury reports whether the account belongs to class 5
func (a *Account) IsTreasury() bool {
	return a.Class == ClassTreasury
}

// Rename updates the label. The number and class stay fixed.
func (a *Account) Rename(label string) error {
	if strings.TrimSpace(label) == "" {
		return shared.NewDomainError("INVALID_LABEL", "Account label is required")
	}
	a.Label = label
	return nil
}

// Deactivate marks the account inactive. Historical postings keep
// referencing it.
func (a *Account) Deactivate() {
	a.Active = false
}

// Activate marks the account active again
func (a *Account) Activate() {
	a.Active = true
}
