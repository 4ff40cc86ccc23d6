package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/accounting"
	"github.com/ongcompta/backend/internal/domain/audit"
	"github.com/ongcompta/backend/internal/domain/ledger"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/ongcompta/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ChartService manages the chart of accounts and the journals
type ChartService struct {
	accountRepo accounting.AccountRepository
	journalRepo accounting.JournalRepository
	entryRepo   ledger.EntryRepository
	trail       *audit.Trail
	tx          shared.TxManager
}

// NewChartService creates a new ChartService
func NewChartService(
	accountRepo accounting.AccountRepository,
	journalRepo accounting.JournalRepository,
	entryRepo ledger.EntryRepository,
	trail *audit.Trail,
	tx shared.TxManager,
) *ChartService {
	return &ChartService{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		entryRepo:   entryRepo,
		trail:       trail,
		tx:          tx,
	}
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID           uuid.UUID               `json:"id"`
	Number       string                  `json:"number"`
	Label        string                  `json:"label"`
	Class        int                     `json:"class"`
	ClassName    string                  `json:"class_name"`
	ParentNumber string                  `json:"parent_number,omitempty"`
	Active       bool                    `json:"active"`
	Treasury     *TreasuryDetailResponse `json:"treasury,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
}

// TreasuryDetailResponse represents treasury metadata in API responses
type TreasuryDetailResponse struct {
	Kind           string          `json:"kind"`
	BankName       string          `json:"bank_name,omitempty"`
	AccountNumber  string          `json:"account_number,omitempty"`
	IBAN           string          `json:"iban,omitempty"`
	SWIFT          string          `json:"swift,omitempty"`
	Holder         string          `json:"holder,omitempty"`
	Operator       string          `json:"operator,omitempty"`
	PhoneNumber    string          `json:"phone_number,omitempty"`
	Currency       string          `json:"currency"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// CreateAccountRequest represents a request to create an account
type CreateAccountRequest struct {
	Number       string `json:"number" binding:"required"`
	Label        string `json:"label" binding:"required"`
	ParentNumber string `json:"parent_number"`
	Actor        string `json:"-"`
}

// UpdateAccountRequest represents a request to relabel or toggle an account
type UpdateAccountRequest struct {
	Label  string `json:"label" binding:"required"`
	Active *bool  `json:"active"`
	Actor  string `json:"-"`
}

// CreateTreasuryAccountRequest creates a class-5 account with its detail
type CreateTreasuryAccountRequest struct {
	Number         string          `json:"number" binding:"required"`
	Label          string          `json:"label" binding:"required"`
	Kind           string          `json:"kind" binding:"required,oneof=banque caisse mobile_money"`
	BankName       string          `json:"bank_name"`
	AccountNumber  string          `json:"account_number"`
	IBAN           string          `json:"iban"`
	SWIFT          string          `json:"swift"`
	Holder         string          `json:"holder"`
	Operator       string          `json:"operator"`
	PhoneNumber    string          `json:"phone_number"`
	Currency       string          `json:"currency"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Actor          string          `json:"-"`
}

// CreateJournalRequest represents a request to create a journal
type CreateJournalRequest struct {
	Code              string     `json:"code" binding:"required"`
	Name              string     `json:"name" binding:"required"`
	Kind              string     `json:"kind" binding:"required,oneof=achat vente banque caisse mobile_money od"`
	TreasuryAccountID *uuid.UUID `json:"treasury_account_id"`
	Actor             string     `json:"-"`
}

// JournalResponse represents a journal in API responses
type JournalResponse struct {
	ID                uuid.UUID  `json:"id"`
	Code              string     `json:"code"`
	Name              string     `json:"name"`
	Kind              string     `json:"kind"`
	TreasuryAccountID *uuid.UUID `json:"treasury_account_id,omitempty"`
}

// CreateAccount creates a chart-of-accounts node. Account numbers are
// globally unique.
func (s *ChartService) CreateAccount(ctx context.Context, req CreateAccountRequest) (*AccountResponse, error) {
	exists, err := s.accountRepo.ExistsByNumber(ctx, req.Number)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this number already exists")
	}

	account, err := accounting.NewAccount(req.Number, req.Label, req.ParentNumber)
	if err != nil {
		return nil, err
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.accountRepo.Save(ctx, account); err != nil {
			return err
		}
		return s.trail.Write(ctx, "accounts", account.ID, audit.ActionCreate, nil, account, req.Actor)
	})
	if err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// CreateTreasuryAccount creates a class-5 account with its treasury
// detail in one transaction.
func (s *ChartService) CreateTreasuryAccount(ctx context.Context, req CreateTreasuryAccountRequest) (*AccountResponse, error) {
	exists, err := s.accountRepo.ExistsByNumber(ctx, req.Number)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this number already exists")
	}

	opening, err := valueobject.NewMoney(req.OpeningBalance, valueobject.Currency(defaultCurrency(req.Currency)))
	if err != nil {
		return nil, shared.NewDomainError("INVALID_AMOUNT", err.Error())
	}
	account, err := accounting.NewTreasuryAccount(req.Number, req.Label, accounting.TreasuryDetail{
		Kind:           accounting.TreasuryKind(req.Kind),
		BankName:       req.BankName,
		AccountNumber:  req.AccountNumber,
		IBAN:           req.IBAN,
		SWIFT:          req.SWIFT,
		Holder:         req.Holder,
		Operator:       req.Operator,
		PhoneNumber:    req.PhoneNumber,
		Currency:       valueobject.Currency(defaultCurrency(req.Currency)),
		OpeningBalance: opening,
	})
	if err != nil {
		return nil, err
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.accountRepo.Save(ctx, account); err != nil {
			return err
		}
		return s.trail.Write(ctx, "accounts", account.ID, audit.ActionCreate, nil, account, req.Actor)
	})
	if err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// UpdateAccount relabels an account or toggles its active flag. The
// number and class are immutable.
func (s *ChartService) UpdateAccount(ctx context.Context, id uuid.UUID, req UpdateAccountRequest) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *account

	if err := account.Rename(req.Label); err != nil {
		return nil, err
	}
	if req.Active != nil {
		if *req.Active {
			account.Activate()
		} else {
			account.Deactivate()
		}
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.accountRepo.Save(ctx, account); err != nil {
			return err
		}
		return s.trail.Write(ctx, "accounts", account.ID, audit.ActionUpdate, &before, account, req.Actor)
	})
	if err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// GetAccount returns one account
func (s *ChartService) GetAccount(ctx context.Context, id uuid.UUID) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// ListAccounts returns accounts matching the filter
func (s *ChartService) ListAccounts(ctx context.Context, filter accounting.AccountFilter) ([]AccountResponse, error) {
	accounts, err := s.accountRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = *toAccountResponse(&accounts[i])
	}
	return responses, nil
}

// ListTreasuryAccounts returns active class-5 accounts with their details
func (s *ChartService) ListTreasuryAccounts(ctx context.Context) ([]AccountResponse, error) {
	accounts, err := s.accountRepo.FindTreasuryAccounts(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = *toAccountResponse(&accounts[i])
	}
	return responses, nil
}

// CreateJournal creates a journal with a unique code
func (s *ChartService) CreateJournal(ctx context.Context, req CreateJournalRequest) (*JournalResponse, error) {
	exists, err := s.journalRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A journal with this code already exists")
	}

	journal, err := accounting.NewJournal(req.Code, req.Name, accounting.JournalKind(req.Kind), req.TreasuryAccountID)
	if err != nil {
		return nil, err
	}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.journalRepo.Save(ctx, journal); err != nil {
			return err
		}
		return s.trail.Write(ctx, "journals", journal.ID, audit.ActionCreate, nil, journal, req.Actor)
	})
	if err != nil {
		return nil, err
	}
	return toJournalResponse(journal), nil
}

// ListJournals returns all journals
func (s *ChartService) ListJournals(ctx context.Context) ([]JournalResponse, error) {
	journals, err := s.journalRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]JournalResponse, len(journals))
	for i := range journals {
		responses[i] = *toJournalResponse(&journals[i])
	}
	return responses, nil
}

// DeleteJournal removes a journal that no entry references
func (s *ChartService) DeleteJournal(ctx context.Context, id uuid.UUID, actor string) error {
	journal, err := s.journalRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	count, err := s.entryRepo.CountByJournal(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("JOURNAL_IN_USE", "Journal still has entries")
	}
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.journalRepo.Delete(ctx, id); err != nil {
			return err
		}
		return s.trail.Write(ctx, "journals", id, audit.ActionDelete, journal, nil, actor)
	})
}

func defaultCurrency(code string) string {
	if code == "" {
		return string(valueobject.DefaultCurrency)
	}
	return code
}

func toAccountResponse(account *accounting.Account) *AccountResponse {
	resp := &AccountResponse{
		ID:           account.ID,
		Number:       account.Number,
		Label:        account.Label,
		Class:        int(account.Class),
		ClassName:    account.Class.DisplayName(),
		ParentNumber: account.ParentNumber,
		Active:       account.Active,
		CreatedAt:    account.CreatedAt,
	}
	if account.Treasury != nil {
		resp.Treasury = &TreasuryDetailResponse{
			Kind:           string(account.Treasury.Kind),
			BankName:       account.Treasury.BankName,
			AccountNumber:  account.Treasury.AccountNumber,
			IBAN:           account.Treasury.IBAN,
			SWIFT:          account.Treasury.SWIFT,
			Holder:         account.Treasury.Holder,
			Operator:       account.Treasury.Operator,
			PhoneNumber:    account.Treasury.PhoneNumber,
			Currency:       string(account.Treasury.Currency),
			OpeningBalance: account.Treasury.OpeningBalance.Amount(),
		}
	}
	return resp
}

func toJournalResponse(journal *accounting.Journal) *JournalResponse {
	return &JournalResponse{
		ID:                journal.ID,
		Code:              journal.Code,
		Name:              journal.Name,
		Kind:              string(journal.Kind),
		TreasuryAccountID: journal.TreasuryAccountID,
	}
}
