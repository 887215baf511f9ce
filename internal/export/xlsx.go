// Package export renders reports as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/rpggio/sena/internal/domain/report"
	"github.com/rpggio/sena/internal/validate"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the summary workbook.
const (
	SheetOverview = "Overview"
	SheetStates   = "By state"
	SheetAreas    = "By area"
	SheetUsers    = "Top users"
	SheetProjects = "Most discussed"
	SheetMonthly  = "Monthly"
)

// WriteSummary writes s as an xlsx workbook to w.
func WriteSummary(w io.Writer, s *report.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetOverview); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	overview := [][]any{
		{"Generated at", s.GeneratedAt.Format("2006-01-02 15:04")},
		{"Active projects", s.Total},
		{"Total estimated budget", s.TotalBudget.InexactFloat64()},
	}
	if err := writeRows(f, SheetOverview, nil, overview, header); err != nil {
		return err
	}

	states := make([][]any, 0, len(s.ByState))
	for _, c := range s.ByState {
		states = append(states, []any{c.Label, c.Count, c.Percent})
	}
	areas := make([][]any, 0, len(s.ByArea))
	for _, c := range s.ByArea {
		areas = append(areas, []any{c.Label, c.Count, c.Percent, c.Budget.InexactFloat64()})
	}
	users := make([][]any, 0, len(s.TopUsers))
	for _, u := range s.TopUsers {
		users = append(users, []any{u.Username, u.FullName, u.OwnedProjects, u.Comments})
	}
	projects := make([][]any, 0, len(s.MostDiscussed))
	for _, p := range s.MostDiscussed {
		projects = append(projects, []any{p.Title, p.State.Label(), p.Comments, p.CreatedAt.Format(validate.DateLayout)})
	}
	monthly := make([][]any, 0, len(s.Monthly))
	for _, b := range s.Monthly {
		monthly = append(monthly, []any{b.Label, b.Start.Format(validate.DateLayout), b.End.Format(validate.DateLayout), b.Count})
	}

	sheets := []struct {
		name    string
		columns []any
		rows    [][]any
	}{
		{SheetStates, []any{"State", "Projects", "Percent"}, states},
		{SheetAreas, []any{"Area", "Projects", "Percent", "Budget"}, areas},
		{SheetUsers, []any{"Username", "Name", "Owned projects", "Comments"}, users},
		{SheetProjects, []any{"Project", "State", "Comments", "Created"}, projects},
		{SheetMonthly, []any{"Period", "From", "To", "Created"}, monthly},
	}
	for _, sh := range sheets {
		if _, err := f.NewSheet(sh.name); err != nil {
			return fmt.Errorf("creating sheet %q: %w", sh.name, err)
		}
		if err := writeRows(f, sh.name, sh.columns, sh.rows, header); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// writeRows writes an optional bold header row followed by rows.
func writeRows(f *excelize.File, sheet string, columns []any, rows [][]any, headerStyle int) error {
	row := 1
	if columns != nil {
		if err := f.SetSheetRow(sheet, "A1", &columns); err != nil {
			return fmt.Errorf("writing %s header: %w", sheet, err)
		}
		last, err := excelize.CoordinatesToCellName(len(columns), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("styling %s header: %w", sheet, err)
		}
		row++
	}
	for _, values := range rows {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
		}
		row++
	}
	return nil
}
