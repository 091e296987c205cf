package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/stockcheck/pkg/infrastructure/config"
	"github.com/vsinha/stockcheck/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/stockcheck/pkg/infrastructure/repositories/sqlite"
	"github.com/vsinha/stockcheck/pkg/infrastructure/repositories/xlsx"
)

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("csv", func(t *testing.T) {
		src, err := Resolve(ctx, "data/stock.csv", config.SheetsConfig{}, nil)
		require.NoError(t, err)
		assert.IsType(t, &csv.Loader{}, src.GridReader)
		assert.Equal(t, "csv:data/stock.csv", src.Describe())
		assert.NoError(t, src.Close())
	})

	t.Run("tsv reads tabs", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stock.tsv")
		require.NoError(t, os.WriteFile(path, []byte("Material\tUnrestricted\nM1\t4\n"), 0644))

		src, err := Resolve(ctx, path, config.SheetsConfig{}, nil)
		require.NoError(t, err)
		grid, err := src.ReadGrid(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"M1", "4"}, grid[1])
	})

	t.Run("xlsx with sheet", func(t *testing.T) {
		src, err := Resolve(ctx, "MB52.XLSX#Stock", config.SheetsConfig{}, nil)
		require.NoError(t, err)
		assert.IsType(t, &xlsx.Workbook{}, src.GridReader)
		assert.Equal(t, "xlsx:MB52.XLSX#Stock", src.Describe())
	})

	t.Run("sqlite", func(t *testing.T) {
		src, err := Resolve(ctx, "sqlite:"+filepath.Join(t.TempDir(), "stock.db")+"#mb52", config.SheetsConfig{}, nil)
		require.NoError(t, err)
		assert.IsType(t, &sqlite.TableReader{}, src.GridReader)
		assert.NoError(t, src.Close())
	})

	t.Run("sqlite without table", func(t *testing.T) {
		_, err := Resolve(ctx, "sqlite:stock.db", config.SheetsConfig{}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must name a table")
	})

	t.Run("sheets without credentials", func(t *testing.T) {
		_, err := Resolve(ctx, "sheets:abc#Issues!A:K", config.SheetsConfig{}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GOOGLE_SHEETS_CREDENTIALS_PATH")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Resolve(ctx, "  ", config.SheetsConfig{}, nil)
		assert.Error(t, err)
	})
}

func TestSplitFragment(t *testing.T) {
	path, fragment := splitFragment("book.xlsx#Sheet 1")
	assert.Equal(t, "book.xlsx", path)
	assert.Equal(t, "Sheet 1", fragment)

	path, fragment = splitFragment("book.xlsx")
	assert.Equal(t, "book.xlsx", path)
	assert.Empty(t, fragment)
}
