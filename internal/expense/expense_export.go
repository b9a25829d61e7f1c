package expense

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	expenseerrors "go-worktrack/internal/expense/errors"
	"go-worktrack/internal/shared/dateutil"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	exportSheet      = "Expenses"
	XLSXContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportTimeLayout = "2006-01-02 15:04"
)

var exportHeaders = []string{
	"SlNo", "Expense Type", "Expense Date", "Amount", "Employee",
	"Requested On", "Status", "Approved By", "Comments",
}

// Export renders every expense matching q as an xlsx workbook.
func (s *service) Export(ctx context.Context, q ListQuery) (*bytes.Buffer, string, error) {
	filter, err := s.buildFilter(q, 1)
	if err != nil {
		return nil, "", err
	}
	filter.PageSize = 0

	rows, _, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("export expenses query failed", zap.Error(err))
		return nil, "", err
	}

	buf, err := renderWorkbook(rows)
	if err != nil {
		s.logger.Error("export expenses render failed", zap.Error(err))
		return nil, "", expenseerrors.ErrExportFailed
	}

	filename := fmt.Sprintf("expenses_%s.xlsx", s.now().Format("20060102_150405"))
	s.logger.Info("export expenses success", zap.Int("rows", len(rows)), zap.String("filename", filename))
	return buf, filename, nil
}

func renderWorkbook(rows []ExpenseRow) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err := f.SetCellStyle(exportSheet, "A1", last, headerStyle); err != nil {
		return nil, err
	}
	_ = f.SetColWidth(exportSheet, "B", "I", 18)

	for i, row := range rows {
		amount, _ := row.Amount.Float64()
		values := []interface{}{
			i + 1,
			row.ExpenseTypeName,
			dateutil.Format(row.ExpenseDate),
			amount,
			strings.TrimSpace(row.FirstName + " " + row.LastName),
			row.InsertedAt.Format(exportTimeLayout),
			row.Status,
			strings.TrimSpace(row.ApproverFirstName + " " + row.ApproverLastName),
			row.ApproverComments,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}
