package testkit

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	"gocirc/domain/circular"
)

var exportHeaders = []string{"population", "condition", "angle_deg"}

// ExportCSV writes an observation table as a flat CSV fixture.
func ExportCSV(table circular.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(exportHeaders); err != nil {
		return err
	}
	for _, o := range table.Observations {
		row := []string{
			string(o.Population),
			string(o.Condition),
			strconv.FormatFloat(o.AngleDeg, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ExportXLSX writes an observation table as a single-sheet workbook fixture.
func ExportXLSX(table circular.Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	for col, h := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for i, o := range table.Observations {
		values := []interface{}{string(o.Population), string(o.Condition), o.AngleDeg}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}
