package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/ledger"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/ongcompta/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormEntryRepository implements EntryRepository using GORM
type GormEntryRepository struct {
	db *gorm.DB
}

// NewGormEntryRepository creates a new GormEntryRepository
func NewGormEntryRepository(db *gorm.DB) *GormEntryRepository {
	return &GormEntryRepository{db: db}
}

// withLines preloads the owned line and allocation collections
func withLines(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("entry_lines.position ASC")
		}).
		Preload("Lines.Allocations")
}

// FindByID finds an entry with its lines and allocations
func (r *GormEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	var m models.EntryModel
	if err := withLines(session(ctx, r.db)).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByNumber finds an entry by its unique number
func (r *GormEntryRepository) FindByNumber(ctx context.Context, number string) (*ledger.Entry, error) {
	var m models.EntryModel
	if err := withLines(session(ctx, r.db)).Where("number = ?", number).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll finds entries matching the filter
func (r *GormEntryRepository) FindAll(ctx context.Context, filter ledger.EntryFilter) ([]ledger.Entry, error) {
	var ms []models.EntryModel
	query := r.applyFilter(withLines(session(ctx, r.db)).Model(&models.EntryModel{}), filter)
	query = applyListOptions(query, filter.Filter, EntrySortFields, "date")

	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(ms), nil
}

// FindByIDs loads several entries with their lines
func (r *GormEntryRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]ledger.Entry, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ms []models.EntryModel
	if err := withLines(session(ctx, r.db)).Where("id IN ?", ids).Find(&ms).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(ms), nil
}

// FindUnvalidatedBefore finds unvalidated entries created before the cutoff
func (r *GormEntryRepository) FindUnvalidatedBefore(ctx context.Context, cutoff time.Time) ([]ledger.Entry, error) {
	var ms []models.EntryModel
	if err := session(ctx, r.db).
		Where("validated = ? AND created_at < ?", false, cutoff).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(ms), nil
}

// Save creates or updates an entry. Lines and allocations are owned
// rows: the previous set is wiped and the aggregate's current set
// rewritten, which covers the delete-and-recreate line edit semantics.
func (r *GormEntryRepository) Save(ctx context.Context, entry *ledger.Entry) error {
	m := models.EntryModelFromDomain(entry)
	db := session(ctx, r.db)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(&m).Error; err != nil {
			return err
		}
		if err := deleteOwnedLines(tx, m.ID); err != nil {
			return err
		}
		if len(m.Lines) > 0 {
			if err := tx.Create(&m.Lines).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes an entry, cascading to lines and allocations
func (r *GormEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := session(ctx, r.db)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := deleteOwnedLines(tx, id); err != nil {
			return err
		}
		result := tx.Delete(&models.EntryModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// deleteOwnedLines removes the lines of an entry and their allocations
func deleteOwnedLines(tx *gorm.DB, entryID uuid.UUID) error {
	lineIDs := tx.Model(&models.EntryLineModel{}).Select("id").Where("entry_id = ?", entryID)
	if err := tx.Where("line_id IN (?)", lineIDs).Delete(&models.AllocationModel{}).Error; err != nil {
		return err
	}
	return tx.Where("entry_id = ?", entryID).Delete(&models.EntryLineModel{}).Error
}

// Count counts entries matching the filter
func (r *GormEntryRepository) Count(ctx context.Context, filter ledger.EntryFilter) (int64, error) {
	var count int64
	query := r.applyFilter(session(ctx, r.db).Model(&models.EntryModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountUnvalidatedByFiscalYear counts draft entries of one fiscal year
func (r *GormEntryRepository) CountUnvalidatedByFiscalYear(ctx context.Context, fiscalYearID uuid.UUID) (int64, error) {
	var count int64
	if err := session(ctx, r.db).
		Model(&models.EntryModel{}).
		Where("fiscal_year_id = ? AND validated = ?", fiscalYearID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByJournal counts entries referencing a journal
func (r *GormEntryRepository) CountByJournal(ctx context.Context, journalID uuid.UUID) (int64, error) {
	var count int64
	if err := session(ctx, r.db).
		Model(&models.EntryModel{}).
		Where("journal_id = ?", journalID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumDebit sums line debits for the balance query scope
func (r *GormEntryRepository) SumDebit(ctx context.Context, q ledger.BalanceQuery) (decimal.Decimal, error) {
	return r.sumSide(ctx, q, "debit")
}

// SumCredit sums line credits for the balance query scope
func (r *GormEntryRepository) SumCredit(ctx context.Context, q ledger.BalanceQuery) (decimal.Decimal, error) {
	return r.sumSide(ctx, q, "credit")
}

func (r *GormEntryRepository) sumSide(ctx context.Context, q ledger.BalanceQuery, column string) (decimal.Decimal, error) {
	query := session(ctx, r.db).
		Model(&models.EntryLineModel{}).
		Joins("JOIN entries ON entries.id = entry_lines.entry_id").
		Where("entry_lines.account_id = ?", q.AccountID)
	if q.FiscalYearID != nil {
		query = query.Where("entries.fiscal_year_id = ?", *q.FiscalYearID)
	}
	if !q.IncludeUnvalidated {
		query = query.Where("entries.validated = ?", true)
	}
	return scanSum(query, "entry_lines."+column)
}

// SumExpenseDebitByBudgetLine sums debits on class-6 accounts for lines
// tagged with the budget line over an optional date range
func (r *GormEntryRepository) SumExpenseDebitByBudgetLine(ctx context.Context, budgetLineID uuid.UUID, from, to *time.Time) (decimal.Decimal, error) {
	query := session(ctx, r.db).
		Model(&models.EntryLineModel{}).
		Joins("JOIN entries ON entries.id = entry_lines.entry_id").
		Joins("JOIN accounts ON accounts.id = entry_lines.account_id").
		Where("entry_lines.budget_line_id = ? AND accounts.class = ?", budgetLineID, 6)
	if from != nil {
		query = query.Where("entries.date >= ?", *from)
	}
	if to != nil {
		query = query.Where("entries.date <= ?", *to)
	}
	return scanSum(query, "entry_lines.debit")
}

// SumExpenseDebitByProject sums class-6 debits per project over a
// fiscal year, counting direct line tags
func (r *GormEntryRepository) SumExpenseDebitByProject(ctx context.Context, fiscalYearID uuid.UUID) ([]ledger.ProjectExpenseTotal, error) {
	var rows []struct {
		ProjectID  uuid.UUID
		TotalDebit decimal.Decimal
	}
	err := session(ctx, r.db).
		Model(&models.EntryLineModel{}).
		Select("entry_lines.project_id AS project_id, COALESCE(SUM(entry_lines.debit), 0) AS total_debit").
		Joins("JOIN entries ON entries.id = entry_lines.entry_id").
		Joins("JOIN accounts ON accounts.id = entry_lines.account_id").
		Where("entries.fiscal_year_id = ? AND accounts.class = ? AND entry_lines.project_id IS NOT NULL", fiscalYearID, 6).
		Group("entry_lines.project_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	totals := make([]ledger.ProjectExpenseTotal, len(rows))
	for i, row := range rows {
		totals[i] = ledger.ProjectExpenseTotal{ProjectID: row.ProjectID, TotalDebit: row.TotalDebit}
	}
	return totals, nil
}

// AccountTotals aggregates debit and credit per account over a fiscal
// year. Draft entries are excluded unless includeUnvalidated.
func (r *GormEntryRepository) AccountTotals(ctx context.Context, fiscalYearID uuid.UUID, includeUnvalidated bool) ([]ledger.AccountTotal, error) {
	var rows []struct {
		AccountID     uuid.UUID
		AccountNumber string
		AccountLabel  string
		Class         int
		TotalDebit    decimal.Decimal
		TotalCredit   decimal.Decimal
	}
	query := session(ctx, r.db).
		Model(&models.EntryLineModel{}).
		Select("accounts.id AS account_id, accounts.number AS account_number, accounts.label AS account_label, accounts.class AS class, "+
			"COALESCE(SUM(entry_lines.debit), 0) AS total_debit, COALESCE(SUM(entry_lines.credit), 0) AS total_credit").
		Joins("JOIN entries ON entries.id = entry_lines.entry_id").
		Joins("JOIN accounts ON accounts.id = entry_lines.account_id").
		Where("entries.fiscal_year_id = ?", fiscalYearID)
	if !includeUnvalidated {
		query = query.Where("entries.validated = ?", true)
	}
	err := query.
		Group("accounts.id, accounts.number, accounts.label, accounts.class").
		Order("accounts.number ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	totals := make([]ledger.AccountTotal, len(rows))
	for i, row := range rows {
		totals[i] = ledger.AccountTotal{
			AccountID:     row.AccountID,
			AccountNumber: row.AccountNumber,
			AccountLabel:  row.AccountLabel,
			Class:         row.Class,
			TotalDebit:    row.TotalDebit,
			TotalCredit:   row.TotalCredit,
		}
	}
	return totals, nil
}

// SumClassTotal sums one side of all lines hitting accounts of the
// class over a fiscal year
func (r *GormEntryRepository) SumClassTotal(ctx context.Context, fiscalYearID uuid.UUID, class int, side ledger.Side, includeUnvalidated bool) (decimal.Decimal, error) {
	column := "entry_lines.debit"
	if side == ledger.SideCredit {
		column = "entry_lines.credit"
	}
	query := session(ctx, r.db).
		Model(&models.EntryLineModel{}).
		Joins("JOIN entries ON entries.id = entry_lines.entry_id").
		Joins("JOIN accounts ON accounts.id = entry_lines.account_id").
		Where("entries.fiscal_year_id = ? AND accounts.class = ?", fiscalYearID, class)
	if !includeUnvalidated {
		query = query.Where("entries.validated = ?", true)
	}
	return scanSum(query, column)
}

// FindLineByID finds a single line with its allocations
func (r *GormEntryRepository) FindLineByID(ctx context.Context, lineID uuid.UUID) (*ledger.Line, error) {
	var m models.EntryLineModel
	if err := session(ctx, r.db).Preload("Allocations").First(&m, "id = ?", lineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	line := m.ToDomain()
	return &line, nil
}

// ReplaceAllocations swaps the allocation set of a line
func (r *GormEntryRepository) ReplaceAllocations(ctx context.Context, lineID uuid.UUID, allocations []ledger.AnalyticalAllocation) error {
	db := session(ctx, r.db)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("line_id = ?", lineID).Delete(&models.AllocationModel{}).Error; err != nil {
			return err
		}
		if len(allocations) == 0 {
			return nil
		}
		ms := make([]models.AllocationModel, len(allocations))
		for i := range allocations {
			ms[i].FromDomain(allocations[i])
		}
		return tx.Create(&ms).Error
	})
}

// applyFilter applies entry filter options without pagination
func (r *GormEntryRepository) applyFilter(query *gorm.DB, filter ledger.EntryFilter) *gorm.DB {
	if filter.JournalID != nil {
		query = query.Where("entries.journal_id = ?", *filter.JournalID)
	}
	if filter.FiscalYearID != nil {
		query = query.Where("entries.fiscal_year_id = ?", *filter.FiscalYearID)
	}
	if filter.Validated != nil {
		query = query.Where("entries.validated = ?", *filter.Validated)
	}
	if filter.FromDate != nil {
		query = query.Where("entries.date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("entries.date <= ?", *filter.ToDate)
	}
	if filter.AccountID != nil {
		query = query.Where("EXISTS (SELECT 1 FROM entry_lines WHERE entry_lines.entry_id = entries.id AND entry_lines.account_id = ?)", *filter.AccountID)
	}
	if filter.ProjectID != nil {
		query = query.Where("EXISTS (SELECT 1 FROM entry_lines WHERE entry_lines.entry_id = entries.id AND entry_lines.project_id = ?)", *filter.ProjectID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("entries.number LIKE ? OR entries.label LIKE ? OR entries.reference LIKE ?", pattern, pattern, pattern)
	}
	return query
}

// scanSum runs a COALESCE(SUM(column), 0) over the query
func scanSum(query *gorm.DB, column string) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	if err := query.Select("COALESCE(SUM(" + column + "), 0) AS total").Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// toDomainEntries converts a model slice to domain entries
func toDomainEntries(ms []models.EntryModel) []ledger.Entry {
	entries := make([]ledger.Entry, len(ms))
	for i := range ms {
		entries[i] = *ms[i].ToDomain()
	}
	return entries
}

// Ensure GormEntryRepository implements EntryRepository
var _ ledger.EntryRepository = (*GormEntryRepository)(nil)
