package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/vsinha/stockcheck/pkg/application/dto"
	"github.com/vsinha/stockcheck/pkg/application/services/allocation"
	"github.com/vsinha/stockcheck/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	Filter    allocation.Filter
}

// Row pairs a request with its result for rendering
type Row struct {
	Request    *entities.TransferRequest `json:"request"`
	Result     entities.AllocationResult `json:"result"`
	StockShort bool                      `json:"stock_short"`
}

// Rows joins requests and results and applies the filter. Rows keep input order.
func Rows(report *dto.AllocationReport, requests []*entities.TransferRequest, filter allocation.Filter) []Row {
	rows := make([]Row, 0, len(report.Results))
	for i, result := range report.Results {
		if i >= len(requests) {
			break
		}
		if !filter.Match(requests[i]) {
			continue
		}
		rows = append(rows, Row{Request: requests[i], Result: result, StockShort: result.StockShort()})
	}
	return rows
}

// Generate writes the report in the configured format
func Generate(w io.Writer, report *dto.AllocationReport, requests []*entities.TransferRequest, config Config) error {
	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}
	rows := Rows(report, requests, config.Filter)

	switch config.Format {
	case "", "text":
		return generateTextOutput(w, report, rows, config)
	case "json":
		return generateJSONOutput(w, report, rows, config)
	case "csv":
		return generateCSVOutput(w, report, rows, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(w io.Writer, report *dto.AllocationReport, rows []Row, config Config) error {
	s := report.Summary
	fmt.Fprintf(w, "Stock Check Results\n")
	fmt.Fprintf(w, "===================\n\n")
	fmt.Fprintf(w, "Run:          %s\n", report.RunID)
	fmt.Fprintf(w, "Mode:         %s\n", report.Mode)
	fmt.Fprintf(w, "Order:        %s\n", describeOrder(report))
	fmt.Fprintf(w, "Requests:     %d\n", s.Total)
	fmt.Fprintf(w, "Satisfied:    %d\n", s.Satisfied)
	fmt.Fprintf(w, "Unsatisfied:  %d\n", s.Unsatisfied)
	fmt.Fprintf(w, "Issued:       %d complete, %d partial\n\n", s.AlreadyIssuedComplete, s.AlreadyIssuedPartial)

	if s.Satisfied > 0 {
		fmt.Fprintf(w, "Satisfied by tier:\n")
		for _, tier := range report.Tiers {
			if n := s.SatisfiedByTier[tier.Name]; n > 0 {
				fmt.Fprintf(w, "  %-24s %d\n", tier.DisplayName(), n)
			}
		}
		fmt.Fprintln(w)
	}

	if len(rows) > 0 {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "Request\tMaterial\tPlant\tSLoc\tWBS\tQty\tStatus\tVerdict\tTier\tSuggestion")
		fmt.Fprintln(tw, "-------\t--------\t-----\t----\t---\t---\t------\t-------\t----\t----------")
		for _, row := range rows {
			req, res := row.Request, row.Result
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				req.ID, req.Material, req.Plant, req.SubLocation, req.BudgetElement,
				req.TransferQty, req.Status, res.Verdict, res.Tier, res.Suggestion)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	} else if !config.Filter.Empty() {
		fmt.Fprintf(w, "No requests match the filter.\n\n")
	}

	if config.Verbose && len(rows) > 0 {
		fmt.Fprintf(w, "Tier balances (before -> remaining):\n")
		for _, row := range rows {
			fmt.Fprintf(w, "  %s\n", row.Result.RequestID)
			for _, b := range row.Result.Balances {
				fmt.Fprintf(w, "    %-12s %-40s %s -> %s\n", b.Tier, b.Key, b.Before, b.Remaining)
			}
		}
		fmt.Fprintln(w)
	}

	if len(s.Shortages) > 0 {
		fmt.Fprintf(w, "Shortages by location:\n")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "Plant\tSLoc\tRequests\tShort Qty")
		for _, shortage := range s.Shortages {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", shortage.Plant, shortage.SubLocation, shortage.Requests, shortage.ShortQty)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if config.OutputDir != "" {
		fmt.Fprintf(w, "\nText output is written to stdout only; use --format json or csv to save files.\n")
	}

	return nil
}

type jsonOutput struct {
	*dto.AllocationReport
	Rows []Row `json:"rows"`
}

// generateJSONOutput creates JSON output
func generateJSONOutput(w io.Writer, report *dto.AllocationReport, rows []Row, config Config) error {
	jsonData, err := json.MarshalIndent(jsonOutput{AllocationReport: report, Rows: rows}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		_, err = fmt.Fprintln(w, string(jsonData))
		return err
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "stockcheck_results.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(w, "JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput writes the result rows to w, or results, shortages and
// final balances to separate files when an output directory is set
func generateCSVOutput(w io.Writer, report *dto.AllocationReport, rows []Row, config Config) error {
	if config.OutputDir == "" {
		return writeResultsCSV(w, report.Tiers, rows)
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	resultsFile := filepath.Join(config.OutputDir, "results.csv")
	if err := writeFile(resultsFile, func(f io.Writer) error {
		return writeResultsCSV(f, report.Tiers, rows)
	}); err != nil {
		return fmt.Errorf("failed to write results CSV: %w", err)
	}

	shortageFile := filepath.Join(config.OutputDir, "shortages.csv")
	if err := writeFile(shortageFile, func(f io.Writer) error {
		return writeShortagesCSV(f, report.Summary.Shortages)
	}); err != nil {
		return fmt.Errorf("failed to write shortages CSV: %w", err)
	}

	balancesFile := filepath.Join(config.OutputDir, "balances.csv")
	if err := writeFile(balancesFile, func(f io.Writer) error {
		return writeBalancesCSV(f, report.FinalBalances)
	}); err != nil {
		return fmt.Errorf("failed to write balances CSV: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(w, "CSV results saved to:\n")
		fmt.Fprintf(w, "  Results: %s\n", resultsFile)
		fmt.Fprintf(w, "  Shortages: %s\n", shortageFile)
		fmt.Fprintf(w, "  Balances: %s\n", balancesFile)
	}
	return nil
}

func writeFile(filename string, write func(io.Writer) error) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeResultsCSV(w io.Writer, tiers []entities.TierDefinition, rows []Row) error {
	cw := csv.NewWriter(w)

	header := []string{"request", "position", "material", "plant", "sub_location", "budget_element",
		"transfer_qty", "actual_qty", "status", "verdict", "tier", "suggestion", "stock_short"}
	for _, tier := range tiers {
		header = append(header, tier.Name+"_before", tier.Name+"_remaining")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		req, res := row.Request, row.Result
		record := []string{
			req.ID,
			strconv.Itoa(req.Position),
			req.Material,
			req.Plant,
			req.SubLocation,
			req.BudgetElement,
			req.TransferQty.String(),
			req.ActualQty.String(),
			req.Status,
			res.Verdict.String(),
			res.Tier,
			res.Suggestion,
			strconv.FormatBool(res.StockShort()),
		}
		for _, tier := range tiers {
			if b, ok := res.Balance(tier.Name); ok {
				record = append(record, b.Before.String(), b.Remaining.String())
			} else {
				record = append(record, "", "")
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeShortagesCSV(w io.Writer, shortages []dto.Shortage) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"plant", "sub_location", "requests", "short_qty"}); err != nil {
		return err
	}
	for _, s := range shortages {
		if err := cw.Write([]string{s.Plant, s.SubLocation, strconv.Itoa(s.Requests), s.ShortQty.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeBalancesCSV(w io.Writer, snapshots []dto.TierSnapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"tier", "key", "quantity"}); err != nil {
		return err
	}
	for _, snapshot := range snapshots {
		for _, b := range snapshot.Balances {
			if err := cw.Write([]string{snapshot.Tier, b.Key.String(), b.Quantity.String()}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func describeOrder(report *dto.AllocationReport) string {
	if report.RequestedOrder != "" && !strings.EqualFold(report.RequestedOrder, report.Order) {
		return fmt.Sprintf("%s (requested %s, not present in data)", report.Order, report.RequestedOrder)
	}
	return report.Order
}
