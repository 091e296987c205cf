package tabular

import "strings"

// StockColumns maps inventory fields to the header names a source may use
type StockColumns struct {
	Material      []string `yaml:"material"`
	Plant         []string `yaml:"plant"`
	SubLocation   []string `yaml:"sub_location"`
	BudgetElement []string `yaml:"budget_element"`
	Unrestricted  []string `yaml:"unrestricted"`
}

// RequestColumns maps request fields to the header names a source may use
type RequestColumns struct {
	ID            []string `yaml:"id"`
	Material      []string `yaml:"material"`
	Plant         []string `yaml:"plant"`
	SubLocation   []string `yaml:"sub_location"`
	BudgetElement []string `yaml:"budget_element"`
	TransferQty   []string `yaml:"transfer_quantity"`
	ActualQty     []string `yaml:"actual_quantity"`
	Status        []string `yaml:"status"`
	Date          []string `yaml:"date"`
	Priority      []string `yaml:"priority"`
}

// Columns groups the header aliases of both inputs
type Columns struct {
	Stock    StockColumns   `yaml:"stock"`
	Requests RequestColumns `yaml:"requests"`
}

// DefaultColumns follows the MB52 export and the warehouse issue file layouts
func DefaultColumns() Columns {
	return Columns{
		Stock: StockColumns{
			Material:      []string{"Material"},
			Plant:         []string{"Plant"},
			SubLocation:   []string{"Storage Location", "Sloc", "sub_location"},
			BudgetElement: []string{"WBS Element", "WBS", "budget_element"},
			Unrestricted:  []string{"Unrestricted"},
		},
		Requests: RequestColumns{
			ID:            []string{"Request Number", "id"},
			Material:      []string{"Material Number", "Material"},
			Plant:         []string{"Plant"},
			SubLocation:   []string{"Sending Sloc", "Storage Location", "sub_location"},
			BudgetElement: []string{"Source WBS", "WBS Element", "budget_element"},
			TransferQty:   []string{"Transfer Quantity", "transfer_quantity"},
			ActualQty:     []string{"Actual Quantity", "actual_quantity"},
			Status:        []string{"Status"},
			Date:          []string{"Request Date", "date"},
			Priority:      []string{"Priority"},
		},
	}
}

// Merge overlays the non-empty aliases of override onto c
func (c Columns) Merge(override Columns) Columns {
	pick := func(base, over []string) []string {
		if len(over) > 0 {
			return over
		}
		return base
	}

	c.Stock.Material = pick(c.Stock.Material, override.Stock.Material)
	c.Stock.Plant = pick(c.Stock.Plant, override.Stock.Plant)
	c.Stock.SubLocation = pick(c.Stock.SubLocation, override.Stock.SubLocation)
	c.Stock.BudgetElement = pick(c.Stock.BudgetElement, override.Stock.BudgetElement)
	c.Stock.Unrestricted = pick(c.Stock.Unrestricted, override.Stock.Unrestricted)

	c.Requests.ID = pick(c.Requests.ID, override.Requests.ID)
	c.Requests.Material = pick(c.Requests.Material, override.Requests.Material)
	c.Requests.Plant = pick(c.Requests.Plant, override.Requests.Plant)
	c.Requests.SubLocation = pick(c.Requests.SubLocation, override.Requests.SubLocation)
	c.Requests.BudgetElement = pick(c.Requests.BudgetElement, override.Requests.BudgetElement)
	c.Requests.TransferQty = pick(c.Requests.TransferQty, override.Requests.TransferQty)
	c.Requests.ActualQty = pick(c.Requests.ActualQty, override.Requests.ActualQty)
	c.Requests.Status = pick(c.Requests.Status, override.Requests.Status)
	c.Requests.Date = pick(c.Requests.Date, override.Requests.Date)
	c.Requests.Priority = pick(c.Requests.Priority, override.Requests.Priority)

	return c
}

// header indexes a header row by normalized name
type header map[string]int

func newHeader(row []string) header {
	h := make(header, len(row))
	for i, name := range row {
		key := normalizeHeader(name)
		if _, dup := h[key]; !dup && key != "" {
			h[key] = i
		}
	}
	return h
}

// find returns the index of the first alias present in the header
func (h header) find(aliases []string) (int, bool) {
	for _, alias := range aliases {
		if i, ok := h[normalizeHeader(alias)]; ok {
			return i, true
		}
	}
	return -1, false
}

func normalizeHeader(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
