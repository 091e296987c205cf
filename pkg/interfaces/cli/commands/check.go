package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/stockcheck/pkg/application/services/allocation"
	"github.com/vsinha/stockcheck/pkg/domain/entities"
	"github.com/vsinha/stockcheck/pkg/infrastructure/events"
	"github.com/vsinha/stockcheck/pkg/infrastructure/logging"
	"github.com/vsinha/stockcheck/pkg/interfaces/cli/output"
)

// CheckOptions holds the flags of the check command
type CheckOptions struct {
	Stock         string
	Requests      string
	Order         string
	Mode          string
	HierarchyFile string
	IssuedStatus  []string
	OutputDir     string
	Filter        allocation.Filter
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate transfer requests against tiered stock",
		Long: `Evaluate every transfer request against the stock pool hierarchy.

Already-issued requests are only checked for completeness. Pending requests
are processed in the selected order; each one covered at a tier draws that
tier's balance down for the requests that follow. The widest tier is only
consulted, never drawn down.

Sources may be CSV/TSV files, workbook sheets (file.xlsx#Sheet), SQLite tables
(sqlite:file.db#table) or Google Sheets ranges (sheets:<id>#Range).`,
		Example: `  stockcheck check --stock MB52.xlsx --requests issues.csv --order date
  stockcheck check --stock sqlite:stock.db#mb52 --requests sheets:#Issues!A:K --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Stock, "stock", "", "inventory source (required)")
	cmd.Flags().StringVar(&opts.Requests, "requests", "", "transfer request source (required)")
	cmd.Flags().StringVar(&opts.Order, "order", "", "processing order: input, id, date, priority (default from STOCKCHECK_ORDER)")
	cmd.Flags().StringVar(&opts.Mode, "mode", "", "sequential or simple (default from STOCKCHECK_MODE)")
	cmd.Flags().StringVar(&opts.HierarchyFile, "hierarchy", "", "YAML file with tiers and column aliases")
	cmd.Flags().StringSliceVar(&opts.IssuedStatus, "issued-status", nil, "status codes of already-issued requests")
	cmd.Flags().StringVarP(&opts.OutputDir, "output", "o", "", "directory for json/csv result files")
	cmd.Flags().StringVar(&opts.Filter.Material, "filter-material", "", "only show requests whose material contains this text")
	cmd.Flags().StringVar(&opts.Filter.BudgetElement, "filter-wbs", "", "only show requests whose WBS element contains this text")
	cmd.Flags().StringVar(&opts.Filter.Plant, "filter-plant", "", "only show requests whose plant contains this text")
	_ = cmd.MarkFlagRequired("stock")
	_ = cmd.MarkFlagRequired("requests")

	return cmd
}

func runCheck(cmd *cobra.Command, rootOpts *RootOptions, opts *CheckOptions) error {
	ctx := cmd.Context()

	env, err := loadEnvironment(rootOpts, opts.HierarchyFile)
	if err != nil {
		return err
	}
	defer env.logger.Sync()

	config, err := resolveAllocationConfig(env, opts)
	if err != nil {
		return err
	}

	startTime := time.Now()
	ix, err := env.buildIndex(ctx, opts.Stock)
	if err != nil {
		return err
	}

	requests, err := env.loadRequests(ctx, opts.Requests)
	if err != nil {
		return err
	}

	allocator, err := allocation.NewAllocator(ix, config, logging.Named(env.logger, "allocation"))
	if err != nil {
		return err
	}

	journal := events.NewJournal()
	journalLogger := logging.Named(env.logger, "journal")
	if err := journal.Subscribe([]string{events.RequestEvaluatedEvent}, events.HandlerFunc(func(event events.Event) error {
		data, ok := event.Data().(events.RequestEvaluated)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", event.Data(), event.Type())
		}
		journalLogger.Debug(event.Type(),
			zap.String("run_id", event.StreamID()),
			zap.Int("version", event.Version()),
			zap.Int("sequence", data.Sequence),
			zap.String("request", data.Result.RequestID),
			zap.Stringer("verdict", data.Result.Verdict),
			zap.String("suggestion", data.Result.Suggestion))
		return nil
	})); err != nil {
		return fmt.Errorf("failed to subscribe to journal: %w", err)
	}
	allocator.WithJournal(journal)

	report, err := allocator.Allocate(requests)
	if err != nil {
		return fmt.Errorf("allocation failed: %w", err)
	}

	env.logger.Debug("check completed",
		zap.String("run_id", report.RunID),
		zap.Duration("elapsed", time.Since(startTime)))

	return output.Generate(cmd.OutOrStdout(), report, requests, output.Config{
		Format:    rootOpts.Format,
		OutputDir: opts.OutputDir,
		Verbose:   rootOpts.Verbose,
		Filter:    opts.Filter,
	})
}

// resolveAllocationConfig merges flags over configuration. Flags win.
func resolveAllocationConfig(env *environment, opts *CheckOptions) (allocation.Config, error) {
	orderName := opts.Order
	if orderName == "" {
		orderName = env.config.Order
	}
	order, err := allocation.ParseOrder(orderName)
	if err != nil {
		return allocation.Config{}, err
	}

	modeName := opts.Mode
	if modeName == "" {
		modeName = env.config.Mode
	}
	mode, err := allocation.ParseMode(modeName)
	if err != nil {
		return allocation.Config{}, err
	}

	issued := env.issuedStatus
	if len(opts.IssuedStatus) > 0 {
		issued = opts.IssuedStatus
	}

	return allocation.Config{
		Mode:   mode,
		Order:  order,
		Status: entities.StatusPolicy{IssuedCodes: issued},
	}, nil
}
