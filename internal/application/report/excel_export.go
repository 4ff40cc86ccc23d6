package report

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ExportService renders reports as Excel workbooks for donor submissions
type ExportService struct {
	reports *ReportService
}

// NewExportService creates a new ExportService
func NewExportService(reports *ReportService) *ExportService {
	return &ExportService{reports: reports}
}

// ExportBudgetVsActual writes the budget execution report of one
// project as an xlsx workbook.
func (s *ExportService) ExportBudgetVsActual(ctx context.Context, projectID uuid.UUID, year *int, w io.Writer) error {
	data, err := s.reports.BudgetVsActual(ctx, projectID, year)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Budget"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	title := fmt.Sprintf("Exécution budgétaire - %s %s", data.ProjectCode, data.ProjectName)
	if data.Year != nil {
		title = fmt.Sprintf("%s (%d)", title, *data.Year)
	}
	f.SetCellValue(sheet, "A1", title)

	headers := []string{"Code", "Libellé", "Budget prévu", "Réalisé", "Restant", "Consommé %"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 3)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, cell, h)
	}

	row := 4
	for _, category := range data.Categories {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), category.Category)
		row++
		for _, line := range category.Lines {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), line.Code)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), line.Label)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), line.PlannedAmount.InexactFloat64())
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), line.RealizedAmount.InexactFloat64())
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), line.Remaining.InexactFloat64())
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), line.ConsumedPct.InexactFloat64())
			row++
		}
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Sous-total "+category.Category)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), category.Planned.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), category.Realized.InexactFloat64())
		row += 2
	}

	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "TOTAL")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), data.TotalPlanned.InexactFloat64())
	f.SetCellValue(sheet, fmt.Sprintf("D%d", row), data.TotalRealized.InexactFloat64())
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), data.ConsumedPct.InexactFloat64())

	return f.Write(w)
}

// ExportTrialBalance writes the trial balance of one fiscal year as an
// xlsx workbook.
func (s *ExportService) ExportTrialBalance(ctx context.Context, year int, includeUnvalidated bool, w io.Writer) error {
	data, err := s.reports.TrialBalance(ctx, year, includeUnvalidated)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Balance"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Balance générale %d", data.FiscalYear))
	headers := []string{"Compte", "Libellé", "Débit", "Crédit", "Solde débiteur", "Solde créditeur"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 3)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, cell, h)
	}

	row := 4
	for _, r := range data.Rows {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.AccountNumber)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.AccountLabel)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.TotalDebit.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.TotalCredit.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.BalanceDebit.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.BalanceCredit.InexactFloat64())
		row++
	}
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "TOTAL")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), data.TotalDebit.InexactFloat64())
	f.SetCellValue(sheet, fmt.Sprintf("D%d", row), data.TotalCredit.InexactFloat64())

	return f.Write(w)
}
