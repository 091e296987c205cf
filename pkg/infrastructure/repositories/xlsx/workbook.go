package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Workbook reads one worksheet of an .xlsx file as a grid of cells
type Workbook struct {
	filename string
	sheet    string
}

// NewWorkbook creates a reader for a worksheet. An empty sheet name selects
// the first worksheet, which is where SAP exports put their data.
func NewWorkbook(filename, sheet string) *Workbook {
	return &Workbook{filename: filename, sheet: sheet}
}

// ReadGrid returns the stored cell values of the worksheet. Dates come back
// as spreadsheet serial numbers and numbers without display formatting.
func (w *Workbook) ReadGrid(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(w.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", w.filename, err)
	}
	defer f.Close()

	sheet := w.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no worksheets", w.filename)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q of %s: %w", sheet, w.filename, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("worksheet %q of %s is empty", sheet, w.filename)
	}

	return rows, nil
}

// Describe names the source in log lines and errors
func (w *Workbook) Describe() string {
	if w.sheet == "" {
		return "xlsx:" + w.filename
	}
	return "xlsx:" + w.filename + "#" + w.sheet
}
