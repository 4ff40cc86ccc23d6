package accounting

import (
	"strings"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/shared"
)

// JournalKind categorizes entries by the book they are posted to
type JournalKind string

const (
	JournalPurchases   JournalKind = "achat"
	JournalSales       JournalKind = "vente"
	JournalBank        JournalKind = "banque"
	JournalCash        JournalKind = "caisse"
	JournalMobileMoney JournalKind = "mobile_money"
	JournalMisc        JournalKind = "od"
)

// IsValid checks if the journal kind is valid
func (k JournalKind) IsValid() bool {
	switch k {
	case JournalPurchases, JournalSales, JournalBank, JournalCash, JournalMobileMoney, JournalMisc:
		return true
	}
	return false
}

// Journal is a categorization tag for entries (purchases, bank, cash,
// miscellaneous). Treasury journals may point at the treasury account
// they move money through.
type Journal struct {
	shared.BaseAggregateRoot
	Code              string
	Name              string
	Kind              JournalKind
	TreasuryAccountID *uuid.UUID
}

// NewJournal creates a journal with a unique code
func NewJournal(code, name string, kind JournalKind, treasuryAccountID *uuid.UUID) (*Journal, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Journal code is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_LABEL", "Journal name is required")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_JOURNAL_KIND", "Unknown journal kind")
	}
	return &Journal{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Kind:              kind,
		TreasuryAccountID: treasuryAccountID,
	}, nil
}
