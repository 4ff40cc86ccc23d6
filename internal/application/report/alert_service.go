package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/accounting"
	"github.com/ongcompta/backend/internal/domain/advance"
	"github.com/ongcompta/backend/internal/domain/budget"
	"github.com/ongcompta/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Alert severities
const (
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Alert kinds
const (
	AlertBudgetThreshold  = "budget_threshold"
	AlertBudgetExceeded   = "budget_exceeded"
	AlertUnvalidatedEntry = "unvalidated_entries"
	AlertNegativeTreasury = "negative_treasury"
	AlertOverdueAdvance   = "overdue_advance"
)

// unvalidatedAgeDays is how long an entry may stay in draft before it
// is flagged
const unvalidatedAgeDays = 7

var (
	budgetWarningPct  = decimal.NewFromInt(80)
	budgetCriticalPct = decimal.NewFromInt(100)
)

// Alert is one operational warning surfaced on the dashboard. Alerts
// are recomputed on every read, never stored.
type Alert struct {
	Kind      string     `json:"kind"`
	Severity  string     `json:"severity"`
	Message   string     `json:"message"`
	SubjectID *uuid.UUID `json:"subject_id,omitempty"`
}

// AlertService recomputes dashboard alerts from the live books
type AlertService struct {
	entryRepo   ledger.EntryRepository
	accountRepo accounting.AccountRepository
	projectRepo budget.ProjectRepository
	advanceRepo advance.Repository
	reports     *ReportService
	logger      *zap.Logger
}

// NewAlertService creates a new AlertService
func NewAlertService(
	entryRepo ledger.EntryRepository,
	accountRepo accounting.AccountRepository,
	projectRepo budget.ProjectRepository,
	advanceRepo advance.Repository,
	reports *ReportService,
	logger *zap.Logger,
) *AlertService {
	return &AlertService{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
		projectRepo: projectRepo,
		advanceRepo: advanceRepo,
		reports:     reports,
		logger:      logger,
	}
}

// ActiveAlerts gathers every alert currently raised by the books
func (s *AlertService) ActiveAlerts(ctx context.Context) ([]Alert, error) {
	var alerts []Alert

	budgetAlerts, err := s.budgetAlerts(ctx)
	if err != nil {
		return nil, err
	}
	alerts = append(alerts, budgetAlerts...)

	draftAlerts, err := s.unvalidatedAlerts(ctx)
	if err != nil {
		return nil, err
	}
	alerts = append(alerts, draftAlerts...)

	treasuryAlerts, err := s.treasuryAlerts(ctx)
	if err != nil {
		return nil, err
	}
	alerts = append(alerts, treasuryAlerts...)

	advanceAlerts, err := s.advanceAlerts(ctx)
	if err != nil {
		return nil, err
	}
	alerts = append(alerts, advanceAlerts...)

	s.logger.Debug("alerts recomputed", zap.Int("count", len(alerts)))
	return alerts, nil
}

// budgetAlerts flags active projects past 80% (warning) or 100%
// (critical) of their planned budget.
func (s *AlertService) budgetAlerts(ctx context.Context) ([]Alert, error) {
	projects, err := s.projectRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	var alerts []Alert
	for i := range projects {
		project := &projects[i]
		execution, err := s.reports.BudgetVsActual(ctx, project.ID, nil)
		if err != nil {
			return nil, err
		}
		if execution.TotalPlanned.IsZero() {
			continue
		}
		id := project.ID
		switch {
		case execution.ConsumedPct.GreaterThanOrEqual(budgetCriticalPct):
			alerts = append(alerts, Alert{
				Kind:     AlertBudgetExceeded,
				Severity: SeverityCritical,
				Message: fmt.Sprintf("Projet %s : budget dépassé (%s%% consommé)",
					project.Code, execution.ConsumedPct.String()),
				SubjectID: &id,
			})
		case execution.ConsumedPct.GreaterThanOrEqual(budgetWarningPct):
			alerts = append(alerts, Alert{
				Kind:     AlertBudgetThreshold,
				Severity: SeverityWarning,
				Message: fmt.Sprintf("Projet %s : %s%% du budget consommé",
					project.Code, execution.ConsumedPct.String()),
				SubjectID: &id,
			})
		}
	}
	return alerts, nil
}

// unvalidatedAlerts flags entries left in draft for over a week
func (s *AlertService) unvalidatedAlerts(ctx context.Context) ([]Alert, error) {
	cutoff := time.Now().AddDate(0, 0, -unvalidatedAgeDays)
	entries, err := s.entryRepo.FindUnvalidatedBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return []Alert{{
		Kind:     AlertUnvalidatedEntry,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf("%d écritures en brouillon depuis plus de %d jours", len(entries), unvalidatedAgeDays),
	}}, nil
}

// treasuryAlerts flags treasury accounts with a credit balance
func (s *AlertService) treasuryAlerts(ctx context.Context) ([]Alert, error) {
	accounts, err := s.accountRepo.FindTreasuryAccounts(ctx)
	if err != nil {
		return nil, err
	}
	var alerts []Alert
	for i := range accounts {
		account := &accounts[i]
		q := ledger.BalanceQuery{AccountID: account.ID, IncludeUnvalidated: true}
		debit, err := s.entryRepo.SumDebit(ctx, q)
		if err != nil {
			return nil, err
		}
		credit, err := s.entryRepo.SumCredit(ctx, q)
		if err != nil {
			return nil, err
		}
		balance := debit.Sub(credit)
		if balance.IsNegative() {
			id := account.ID
			alerts = append(alerts, Alert{
				Kind:     AlertNegativeTreasury,
				Severity: SeverityCritical,
				Message: fmt.Sprintf("Trésorerie négative sur %s %s : %s",
					account.Number, account.Label, balance.String()),
				SubjectID: &id,
			})
		}
	}
	return alerts, nil
}

// advanceAlerts flags pending advances past their due date
func (s *AlertService) advanceAlerts(ctx context.Context) ([]Alert, error) {
	overdue, err := s.advanceRepo.FindOverdue(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	var alerts []Alert
	for i := range overdue {
		adv := &overdue[i]
		id := adv.ID
		alerts = append(alerts, Alert{
			Kind:     AlertOverdueAdvance,
			Severity: SeverityWarning,
			Message: fmt.Sprintf("Avance %s (%s) non justifiée depuis le %s",
				adv.Number, adv.Beneficiary, adv.DueDate.Format("02/01/2006")),
			SubjectID: &id,
		})
	}
	return alerts, nil
}
