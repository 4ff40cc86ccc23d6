package budget

import (
	"strings"

	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/ongcompta/backend/internal/domain/shared/valueobject"
)

// Donor ("bailleur") funds projects and financings
type Donor struct {
	shared.BaseAggregateRoot
	Code     string
	Name     string
	Country  string
	Contact  string
	Email    string
	Currency valueobject.Currency
	Active   bool
}

// NewDonor registers a donor with a unique code
func NewDonor(code, name, country, contact, email string, currency valueobject.Currency) (*Donor, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Donor code is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_LABEL", "Donor name is required")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	return &Donor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Country:           country,
		Contact:           contact,
		Email:             email,
		Currency:          currency,
		Active:            true,
	}, nil
}

// Deactivate marks the donor inactive
func (d *Donor) Deactivate() {
	d.Active = false
}
