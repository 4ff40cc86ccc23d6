package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/accounting"
	"github.com/ongcompta/backend/internal/domain/budget"
	"github.com/ongcompta/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// ReportService computes the accounting and budget reports
type ReportService struct {
	entryRepo      ledger.EntryRepository
	accountRepo    accounting.AccountRepository
	fiscalYearRepo accounting.FiscalYearRepository
	projectRepo    budget.ProjectRepository
	categoryRepo   budget.BudgetCategoryRepository
}

// NewReportService creates a new ReportService
func NewReportService(
	entryRepo ledger.EntryRepository,
	accountRepo accounting.AccountRepository,
	fiscalYearRepo accounting.FiscalYearRepository,
	projectRepo budget.ProjectRepository,
	categoryRepo budget.BudgetCategoryRepository,
) *ReportService {
	return &ReportService{
		entryRepo:      entryRepo,
		accountRepo:    accountRepo,
		fiscalYearRepo: fiscalYearRepo,
		projectRepo:    projectRepo,
		categoryRepo:   categoryRepo,
	}
}

// TrialBalanceRow is one account of the trial balance
type TrialBalanceRow struct {
	AccountNumber string          `json:"account_number"`
	AccountLabel  string          `json:"account_label"`
	Class         int             `json:"class"`
	TotalDebit    decimal.Decimal `json:"total_debit"`
	TotalCredit   decimal.Decimal `json:"total_credit"`
	BalanceDebit  decimal.Decimal `json:"balance_debit"`
	BalanceCredit decimal.Decimal `json:"balance_credit"`
}

// TrialBalanceResponse is the full trial balance of one fiscal year
type TrialBalanceResponse struct {
	FiscalYear         int               `json:"fiscal_year"`
	IncludeUnvalidated bool              `json:"include_unvalidated"`
	Rows               []TrialBalanceRow `json:"rows"`
	TotalDebit         decimal.Decimal   `json:"total_debit"`
	TotalCredit        decimal.Decimal   `json:"total_credit"`
}

// TrialBalance builds the balance générale of a fiscal year. Only
// validated entries count unless includeUnvalidated is set.
func (s *ReportService) TrialBalance(ctx context.Context, year int, includeUnvalidated bool) (*TrialBalanceResponse, error) {
	fy, err := s.fiscalYearRepo.FindByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	totals, err := s.entryRepo.AccountTotals(ctx, fy.ID, includeUnvalidated)
	if err != nil {
		return nil, err
	}

	resp := &TrialBalanceResponse{
		FiscalYear:         year,
		IncludeUnvalidated: includeUnvalidated,
		Rows:               make([]TrialBalanceRow, 0, len(totals)),
		TotalDebit:         decimal.Zero,
		TotalCredit:        decimal.Zero,
	}
	for _, t := range totals {
		row := TrialBalanceRow{
			AccountNumber: t.AccountNumber,
			AccountLabel:  t.AccountLabel,
			Class:         t.Class,
			TotalDebit:    t.TotalDebit,
			TotalCredit:   t.TotalCredit,
			BalanceDebit:  decimal.Zero,
			BalanceCredit: decimal.Zero,
		}
		balance := t.TotalDebit.Sub(t.TotalCredit)
		if balance.IsPositive() {
			row.BalanceDebit = balance
		} else {
			row.BalanceCredit = balance.Neg()
		}
		resp.Rows = append(resp.Rows, row)
		resp.TotalDebit = resp.TotalDebit.Add(t.TotalDebit)
		resp.TotalCredit = resp.TotalCredit.Add(t.TotalCredit)
	}
	sort.Slice(resp.Rows, func(i, j int) bool {
		return resp.Rows[i].AccountNumber < resp.Rows[j].AccountNumber
	})
	return resp, nil
}

// BudgetLineReport is one budget line with its consumption
type BudgetLineReport struct {
	Code           string          `json:"code"`
	Label          string          `json:"label"`
	PlannedAmount  decimal.Decimal `json:"planned_amount"`
	RealizedAmount decimal.Decimal `json:"realized_amount"`
	Remaining      decimal.Decimal `json:"remaining"`
	ConsumedPct    decimal.Decimal `json:"consumed_pct"`
}

// BudgetCategoryReport groups budget lines under one reporting category
type BudgetCategoryReport struct {
	Category string             `json:"category"`
	Lines    []BudgetLineReport `json:"lines"`
	Planned  decimal.Decimal    `json:"planned"`
	Realized decimal.Decimal    `json:"realized"`
}

// BudgetVsActualResponse is the budget execution report of one project
type BudgetVsActualResponse struct {
	ProjectCode   string                 `json:"project_code"`
	ProjectName   string                 `json:"project_name"`
	Year          *int                   `json:"year,omitempty"`
	Categories    []BudgetCategoryReport `json:"categories"`
	TotalPlanned  decimal.Decimal        `json:"total_planned"`
	TotalRealized decimal.Decimal        `json:"total_realized"`
	ConsumedPct   decimal.Decimal        `json:"consumed_pct"`
}

// BudgetVsActual compares planned budget lines against realized
// expenses for one project. A year filter applies the per-year
// breakdown where one exists and restricts realized spend to the year.
func (s *ReportService) BudgetVsActual(ctx context.Context, projectID uuid.UUID, year *int) (*BudgetVsActualResponse, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	categoryNames := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	var from, to *time.Time
	if year != nil {
		start := time.Date(*year, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(*year, 12, 31, 23, 59, 59, 0, time.UTC)
		from, to = &start, &end
	}

	const uncategorized = "Hors catégorie"
	grouped := make(map[string]*BudgetCategoryReport)
	var order []string

	resp := &BudgetVsActualResponse{
		ProjectCode:   project.Code,
		ProjectName:   project.Name,
		Year:          year,
		TotalPlanned:  decimal.Zero,
		TotalRealized: decimal.Zero,
	}
	for _, line := range project.BudgetLines {
		planned := line.PlannedFor(year)
		realized, err := s.entryRepo.SumExpenseDebitByBudgetLine(ctx, line.ID, from, to)
		if err != nil {
			return nil, err
		}

		report := BudgetLineReport{
			Code:           line.Code,
			Label:          line.Label,
			PlannedAmount:  planned,
			RealizedAmount: realized,
			Remaining:      planned.Sub(realized),
			ConsumedPct:    consumedPct(planned, realized),
		}

		name := uncategorized
		if line.CategoryID != nil {
			if n, ok := categoryNames[*line.CategoryID]; ok {
				name = n
			}
		}
		group, ok := grouped[name]
		if !ok {
			group = &BudgetCategoryReport{Category: name, Planned: decimal.Zero, Realized: decimal.Zero}
			grouped[name] = group
			order = append(order, name)
		}
		group.Lines = append(group.Lines, report)
		group.Planned = group.Planned.Add(planned)
		group.Realized = group.Realized.Add(realized)

		resp.TotalPlanned = resp.TotalPlanned.Add(planned)
		resp.TotalRealized = resp.TotalRealized.Add(realized)
	}
	for _, name := range order {
		resp.Categories = append(resp.Categories, *grouped[name])
	}
	resp.ConsumedPct = consumedPct(resp.TotalPlanned, resp.TotalRealized)
	return resp, nil
}

// StatementLine is one account of a financial statement section
type StatementLine struct {
	AccountNumber string          `json:"account_number"`
	AccountLabel  string          `json:"account_label"`
	Amount        decimal.Decimal `json:"amount"`
}

// FinancialStatementsResponse is the simplified SYSCOHADA bilan and
// compte de résultat of one fiscal year.
type FinancialStatementsResponse struct {
	FiscalYear       int             `json:"fiscal_year"`
	Assets           []StatementLine `json:"assets"`
	Liabilities      []StatementLine `json:"liabilities"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	Revenue          decimal.Decimal `json:"revenue"`
	Expenses         decimal.Decimal `json:"expenses"`
	Result           decimal.Decimal `json:"result"`
}

// FinancialStatements builds the simplified statements over validated
// entries: debit balances of classes 2, 3 and 5 as assets, credit
// balances of class 1 as liabilities, class-4 accounts on the side of
// their balance, and the class 6/7 result carried on the liability side
// so the bilan balances.
func (s *ReportService) FinancialStatements(ctx context.Context, year int) (*FinancialStatementsResponse, error) {
	fy, err := s.fiscalYearRepo.FindByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	totals, err := s.entryRepo.AccountTotals(ctx, fy.ID, false)
	if err != nil {
		return nil, err
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].AccountNumber < totals[j].AccountNumber })

	resp := &FinancialStatementsResponse{
		FiscalYear:       year,
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		Revenue:          decimal.Zero,
		Expenses:         decimal.Zero,
	}
	for _, t := range totals {
		balance := t.TotalDebit.Sub(t.TotalCredit)
		line := StatementLine{AccountNumber: t.AccountNumber, AccountLabel: t.AccountLabel}
		switch t.Class {
		case 6:
			resp.Expenses = resp.Expenses.Add(balance)
		case 7:
			resp.Revenue = resp.Revenue.Add(balance.Neg())
		case 2, 3, 5:
			if !balance.IsZero() {
				line.Amount = balance
				resp.Assets = append(resp.Assets, line)
				resp.TotalAssets = resp.TotalAssets.Add(balance)
			}
		case 4:
			if balance.IsPositive() {
				line.Amount = balance
				resp.Assets = append(resp.Assets, line)
				resp.TotalAssets = resp.TotalAssets.Add(balance)
			} else if balance.IsNegative() {
				line.Amount = balance.Neg()
				resp.Liabilities = append(resp.Liabilities, line)
				resp.TotalLiabilities = resp.TotalLiabilities.Add(line.Amount)
			}
		case 1:
			if !balance.IsZero() {
				line.Amount = balance.Neg()
				resp.Liabilities = append(resp.Liabilities, line)
				resp.TotalLiabilities = resp.TotalLiabilities.Add(line.Amount)
			}
		}
	}
	resp.Result = resp.Revenue.Sub(resp.Expenses)
	resp.TotalLiabilities = resp.TotalLiabilities.Add(resp.Result)
	return resp, nil
}

// ProjectReconciliationRow is one project of the analytic reconciliation
type ProjectReconciliationRow struct {
	ProjectCode string          `json:"project_code"`
	ProjectName string          `json:"project_name"`
	Expenses    decimal.Decimal `json:"expenses"`
}

// ReconciliationResponse compares general accounting expenses against
// the project-tagged analytic total.
type ReconciliationResponse struct {
	FiscalYear      int                        `json:"fiscal_year"`
	GeneralExpenses decimal.Decimal            `json:"general_expenses"`
	AnalyticTotal   decimal.Decimal            `json:"analytic_total"`
	Unallocated     decimal.Decimal            `json:"unallocated"`
	Projects        []ProjectReconciliationRow `json:"projects"`
}

// Reconciliation reports how much of the class-6 spend carries a
// project tag. Unallocated is the gap to chase before donor reporting.
func (s *ReportService) Reconciliation(ctx context.Context, year int) (*ReconciliationResponse, error) {
	fy, err := s.fiscalYearRepo.FindByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	expenseDebit, err := s.entryRepo.SumClassTotal(ctx, fy.ID, 6, ledger.SideDebit, false)
	if err != nil {
		return nil, err
	}
	expenseCredit, err := s.entryRepo.SumClassTotal(ctx, fy.ID, 6, ledger.SideCredit, false)
	if err != nil {
		return nil, err
	}
	general := expenseDebit.Sub(expenseCredit)

	perProject, err := s.entryRepo.SumExpenseDebitByProject(ctx, fy.ID)
	if err != nil {
		return nil, err
	}

	resp := &ReconciliationResponse{
		FiscalYear:      year,
		GeneralExpenses: general,
		AnalyticTotal:   decimal.Zero,
	}
	for _, p := range perProject {
		project, err := s.projectRepo.FindByID(ctx, p.ProjectID)
		if err != nil {
			return nil, err
		}
		resp.Projects = append(resp.Projects, ProjectReconciliationRow{
			ProjectCode: project.Code,
			ProjectName: project.Name,
			Expenses:    p.TotalDebit,
		})
		resp.AnalyticTotal = resp.AnalyticTotal.Add(p.TotalDebit)
	}
	sort.Slice(resp.Projects, func(i, j int) bool {
		return resp.Projects[i].ProjectCode < resp.Projects[j].ProjectCode
	})
	resp.Unallocated = general.Sub(resp.AnalyticTotal)
	return resp, nil
}

func consumedPct(planned, realized decimal.Decimal) decimal.Decimal {
	if planned.IsZero() {
		return decimal.Zero
	}
	return realized.Mul(decimal.NewFromInt(100)).Div(planned).Round(2)
}
