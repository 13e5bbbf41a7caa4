package leads

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName     = "Leads"
	fileExtension = ".xlsx"
)

// CheckOutPath rejects destinations without the .xlsx extension.
func CheckOutPath(path string) error {
	if !strings.EqualFold(filepath.Ext(path), fileExtension) {
		return newErrBadExtension(path)
	}
	return nil
}

// WriteXlsx writes the header and rows to path, creating parent directories.
func WriteXlsx(rows []Row, path string) error {
	if err := CheckOutPath(path); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := setRow(f, 1, Columns); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, i+2, row.Values()); err != nil {
			return err
		}
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}
