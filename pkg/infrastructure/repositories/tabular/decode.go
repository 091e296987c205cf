package tabular

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/vsinha/stockcheck/pkg/domain/entities"
)

// ErrNoHeader is returned for a grid without a header row
var ErrNoHeader = errors.New("sheet has no header row")

// DecodeStock maps a grid (header row first) to a stock table. Only the
// dimension columns found in the header are listed in the table's Columns;
// whether they suffice is decided when the index is built.
func DecodeStock(grid [][]string, cols StockColumns) (*entities.StockTable, error) {
	if len(grid) == 0 {
		return nil, ErrNoHeader
	}
	h := newHeader(grid[0])

	qtyCol, ok := h.find(cols.Unrestricted)
	if !ok {
		return nil, fmt.Errorf("inventory header has no quantity column (looked for %v)", cols.Unrestricted)
	}

	dimCols := map[entities.Dimension][]string{
		entities.DimMaterial:      cols.Material,
		entities.DimPlant:         cols.Plant,
		entities.DimSubLocation:   cols.SubLocation,
		entities.DimBudgetElement: cols.BudgetElement,
	}
	index := make(map[entities.Dimension]int, len(dimCols))
	table := &entities.StockTable{}
	for _, d := range entities.AllDimensions {
		if i, ok := h.find(dimCols[d]); ok {
			index[d] = i
			table.Columns = append(table.Columns, d)
		}
	}

	for _, row := range grid[1:] {
		if blankRow(row) {
			continue
		}
		value := func(d entities.Dimension) string {
			i, ok := index[d]
			if !ok {
				return ""
			}
			return NormalizeCode(cell(row, i))
		}
		table.Records = append(table.Records, entities.StockRecord{
			Material:      value(entities.DimMaterial),
			Plant:         value(entities.DimPlant),
			SubLocation:   value(entities.DimSubLocation),
			BudgetElement: value(entities.DimBudgetElement),
			Unrestricted:  entities.ParseQuantity(cell(row, qtyCol)),
		})
	}

	return table, nil
}

// DecodeRequests maps a grid (header row first) to transfer requests in row order
func DecodeRequests(grid [][]string, cols RequestColumns) ([]*entities.TransferRequest, error) {
	if len(grid) == 0 {
		return nil, ErrNoHeader
	}
	h := newHeader(grid[0])

	qtyCol, ok := h.find(cols.TransferQty)
	if !ok {
		return nil, fmt.Errorf("request header has no transfer quantity column (looked for %v)", cols.TransferQty)
	}
	materialCol, ok := h.find(cols.Material)
	if !ok {
		return nil, fmt.Errorf("request header has no material column (looked for %v)", cols.Material)
	}

	optional := func(aliases []string) int {
		i, _ := h.find(aliases)
		return i
	}
	idCol := optional(cols.ID)
	plantCol := optional(cols.Plant)
	slocCol := optional(cols.SubLocation)
	wbsCol := optional(cols.BudgetElement)
	actualCol := optional(cols.ActualQty)
	statusCol := optional(cols.Status)
	dateCol := optional(cols.Date)
	priorityCol := optional(cols.Priority)

	var requests []*entities.TransferRequest
	for n, row := range grid[1:] {
		if blankRow(row) {
			continue
		}
		position := len(requests)

		id := NormalizeCode(cell(row, idCol))
		if id == "" {
			id = strconv.Itoa(n + 1)
		}

		req := &entities.TransferRequest{
			ID:            id,
			Position:      position,
			Material:      NormalizeCode(cell(row, materialCol)),
			Plant:         NormalizeCode(cell(row, plantCol)),
			SubLocation:   NormalizeCode(cell(row, slocCol)),
			BudgetElement: NormalizeCode(cell(row, wbsCol)),
			TransferQty:   entities.ParseQuantity(cell(row, qtyCol)).NonNegative(),
			ActualQty:     entities.ParseQuantity(cell(row, actualCol)),
			Status:        entities.NormalizeStatus(cell(row, statusCol)),
		}
		if date, ok := ParseDate(cell(row, dateCol)); ok {
			req.Date = date
		}
		if priority, ok := parsePriority(cell(row, priorityCol)); ok {
			req.Priority = priority
			req.HasPriority = true
		}

		requests = append(requests, req)
	}

	return requests, nil
}

// NormalizeCode trims a key cell and drops the ".0" spreadsheets add to numeric codes
func NormalizeCode(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, ".0") {
		if _, err := strconv.ParseInt(strings.TrimSuffix(s, ".0"), 10, 64); err == nil {
			return strings.TrimSuffix(s, ".0")
		}
	}
	return s
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"02.01.2006",
	"2006/01/02",
}

// excelEpoch is day zero of spreadsheet serial dates
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// ParseDate accepts ISO, day-first and spreadsheet serial dates. Slash and
// dot dates are read day first; US month-first text is not recognised.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 && serial < 2958466 {
		days := math.Floor(serial)
		t := excelEpoch.AddDate(0, 0, int(days))
		return t.Add(time.Duration((serial - days) * float64(24*time.Hour))), true
	}
	return time.Time{}, false
}

func parsePriority(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
