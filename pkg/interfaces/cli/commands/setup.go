package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vsinha/stockcheck/pkg/application/services/index"
	"github.com/vsinha/stockcheck/pkg/domain/entities"
	"github.com/vsinha/stockcheck/pkg/infrastructure/config"
	"github.com/vsinha/stockcheck/pkg/infrastructure/logging"
	"github.com/vsinha/stockcheck/pkg/infrastructure/repositories/source"
	"github.com/vsinha/stockcheck/pkg/infrastructure/repositories/tabular"
)

// environment is everything a command needs before it touches any data
type environment struct {
	config       *config.Config
	hierarchy    entities.Hierarchy
	columns      tabular.Columns
	issuedStatus []string
	logger       *zap.Logger
}

// loadEnvironment reads configuration, the optional hierarchy file and
// builds the logger. hierarchyFile overrides STOCKCHECK_HIERARCHY_FILE.
func loadEnvironment(opts *RootOptions, hierarchyFile string) (*environment, error) {
	cfg, err := config.Load(opts.EnvFile)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	env := &environment{
		config:       cfg,
		hierarchy:    entities.DefaultHierarchy(),
		columns:      tabular.DefaultColumns(),
		issuedStatus: cfg.IssuedStatus,
		logger:       logger,
	}

	if hierarchyFile == "" {
		hierarchyFile = cfg.HierarchyFile
	}
	if hierarchyFile != "" {
		file, err := config.LoadHierarchyFile(hierarchyFile)
		if err != nil {
			return nil, err
		}
		env.hierarchy = file.Hierarchy()
		env.columns = file.ResolvedColumns()
		if len(file.IssuedStatus) > 0 {
			env.issuedStatus = file.IssuedStatus
		}
		logger.Debug("hierarchy file loaded",
			zap.String("path", hierarchyFile),
			zap.Int("tiers", len(env.hierarchy)))
	}

	return env, nil
}

func (e *environment) loadStock(ctx context.Context, location string) (*entities.StockTable, error) {
	src, err := source.Resolve(ctx, location, e.config.Sheets, e.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open stock source: %w", err)
	}
	defer src.Close()

	repo := tabular.NewInventoryRepository(src, e.columns.Stock, logging.Named(e.logger, "source"))
	return repo.GetStockTable(ctx)
}

func (e *environment) loadRequests(ctx context.Context, location string) ([]*entities.TransferRequest, error) {
	src, err := source.Resolve(ctx, location, e.config.Sheets, e.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open request source: %w", err)
	}
	defer src.Close()

	repo := tabular.NewRequestRepository(src, e.columns.Requests, logging.Named(e.logger, "source"))
	return repo.GetRequests(ctx)
}

func (e *environment) buildIndex(ctx context.Context, stockLocation string) (*index.Index, error) {
	table, err := e.loadStock(ctx, stockLocation)
	if err != nil {
		return nil, err
	}

	ix, err := index.Build(table, e.hierarchy)
	if err != nil {
		return nil, fmt.Errorf("failed to build stock index: %w", err)
	}

	named := logging.Named(e.logger, "index")
	for i := 0; i < ix.Len(); i++ {
		named.Debug("tier aggregated",
			zap.String("tier", ix.Tier(i).Definition.Name),
			zap.Int("keys", len(ix.Keys(i))),
			zap.Stringer("total", ix.Total(i)))
	}
	return ix, nil
}
