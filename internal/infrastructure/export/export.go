// Package export writes tabular survey data as CSV or XLSX.
package export

import (
	"encoding/csv"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/turtacn/NFHS-Explorer/internal/domain/survey"
	"github.com/turtacn/NFHS-Explorer/pkg/errors"
)

// DefaultSheet is the worksheet name used by WriteXLSX.
const DefaultSheet = "NFHS"

// WriteCSV writes the header followed by rows.
func WriteCSV(w io.Writer, columns []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return errors.Wrap(err, errors.ErrCodeExportFailed, "failed to write csv header")
	}
	if err := cw.WriteAll(rows); err != nil {
		return errors.Wrap(err, errors.ErrCodeExportFailed, "failed to write csv rows")
	}
	return nil
}

// WriteXLSX writes a single-sheet workbook. Numeric cells are stored as
// numbers and null cells are left blank.
func WriteXLSX(w io.Writer, sheet string, columns []string, rows [][]string) error {
	if sheet == "" {
		sheet = DefaultSheet
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return errors.Wrap(err, errors.ErrCodeExportFailed, "failed to name worksheet")
	}

	for c, name := range columns {
		if err := setCell(f, sheet, c+1, 1, name); err != nil {
			return err
		}
	}
	if len(columns) > 0 {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeExportFailed, "failed to create header style")
		}
		if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
			return errors.Wrap(err, errors.ErrCodeExportFailed, "failed to style header")
		}
	}

	for r, row := range rows {
		for c, raw := range row {
			cell := survey.Cell(raw)
			if cell.IsNull() {
				continue
			}
			var value interface{} = raw
			if d, ok := cell.Decimal(); ok {
				value = d.InexactFloat64()
			}
			if err := setCell(f, sheet, c+1, r+2, value); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, errors.ErrCodeExportFailed, "failed to write workbook")
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeExportFailed, "invalid cell coordinates")
	}
	if err := f.SetCellValue(sheet, name, value); err != nil {
		return errors.Wrap(err, errors.ErrCodeExportFailed, "failed to set cell").WithDetail(name)
	}
	return nil
}

//Personal.AI order the ending
