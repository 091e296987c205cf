package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/vsinha/stockcheck/pkg/application/services/index"
	"github.com/vsinha/stockcheck/pkg/domain/entities"
)

// TierSummary describes one tier of a built index
type TierSummary struct {
	Name          string               `json:"name"`
	Label         string               `json:"label"`
	Dimensions    []entities.Dimension `json:"dimensions"`
	Informational bool                 `json:"informational"`
	Keys          int                  `json:"keys"`
	Total         entities.Quantity    `json:"total"`
}

// SummarizeTiers lists the tiers of an index with their key counts and totals
func SummarizeTiers(ix *index.Index) []TierSummary {
	out := make([]TierSummary, ix.Len())
	for i := 0; i < ix.Len(); i++ {
		def := ix.Tier(i).Definition
		out[i] = TierSummary{
			Name:          def.Name,
			Label:         def.DisplayName(),
			Dimensions:    def.Dimensions,
			Informational: i == ix.Len()-1,
			Keys:          len(ix.Keys(i)),
			Total:         ix.Total(i),
		}
	}
	return out
}

// GenerateTiers writes the tier summary of an index
func GenerateTiers(w io.Writer, ix *index.Index, format string) error {
	tiers := SummarizeTiers(ix)

	switch format {
	case "", "text":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tTier\tLabel\tDimensions\tKeys\tTotal")
		for i, tier := range tiers {
			name := tier.Name
			if tier.Informational {
				name += " (informational)"
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n",
				i+1, name, tier.Label, joinDimensions(tier.Dimensions), tier.Keys, tier.Total)
		}
		return tw.Flush()

	case "json":
		data, err := json.MarshalIndent(tiers, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case "csv":
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"tier", "label", "dimensions", "informational", "keys", "total"}); err != nil {
			return err
		}
		for _, tier := range tiers {
			record := []string{
				tier.Name,
				tier.Label,
				joinDimensions(tier.Dimensions),
				strconv.FormatBool(tier.Informational),
				strconv.Itoa(tier.Keys),
				tier.Total.String(),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func joinDimensions(dims []entities.Dimension) string {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = string(d)
	}
	return strings.Join(parts, "+")
}

// GenerateHierarchy writes the tier definitions without any stock figures
func GenerateHierarchy(w io.Writer, hierarchy entities.Hierarchy, format string) error {
	switch format {
	case "", "text":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tTier\tLabel\tDimensions")
		for i, tier := range hierarchy {
			name := tier.Name
			if i == len(hierarchy)-1 {
				name += " (informational)"
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, name, tier.DisplayName(), joinDimensions(tier.Dimensions))
		}
		return tw.Flush()

	case "json":
		data, err := json.MarshalIndent(hierarchy, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case "csv":
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"tier", "label", "dimensions", "informational"}); err != nil {
			return err
		}
		for i, tier := range hierarchy {
			informational := strconv.FormatBool(i == len(hierarchy)-1)
			if err := cw.Write([]string{tier.Name, tier.DisplayName(), joinDimensions(tier.Dimensions), informational}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
