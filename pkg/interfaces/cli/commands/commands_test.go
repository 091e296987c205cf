package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/stockcheck/pkg/domain/entities"
)

const stockCSV = `Material,Plant,Storage Location,WBS Element,Unrestricted
M1,P1,S1,W1,10
M1,P1,S2,W1,2
`

const requestsCSV = `Request Number,Material Number,Plant,Sending Sloc,Source WBS,Transfer Quantity,Actual Quantity,Status
1,M1,P1,S1,W1,8,,1
2,M1,P1,S1,W1,3,,1
3,M2,P1,S1,W1,1,,1
4,M1,P1,S1,W1,5,5,12
`

var configEnvKeys = []string{
	"STOCKCHECK_HIERARCHY_FILE",
	"STOCKCHECK_ISSUED_STATUS",
	"STOCKCHECK_ORDER",
	"STOCKCHECK_MODE",
	"STOCKCHECK_LOG_LEVEL",
	"GOOGLE_SHEETS_CREDENTIALS_PATH",
	"GOOGLE_SHEETS_SPREADSHEET_ID",
}

type fixture struct {
	dir      string
	stock    string
	requests string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	dir := t.TempDir()
	f := fixture{
		dir:      dir,
		stock:    filepath.Join(dir, "stock.csv"),
		requests: filepath.Join(dir, "requests.csv"),
	}
	require.NoError(t, os.WriteFile(f.stock, []byte(stockCSV), 0644))
	require.NoError(t, os.WriteFile(f.requests, []byte(requestsCSV), 0644))
	return f
}

func (f fixture) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func (f fixture) run(args ...string) (string, error) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(f.dir, "none.env")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func decodeJSON(t *testing.T, out string) map[string]interface{} {
	t.Helper()
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded), out)
	return decoded
}

func TestRootCommand_Structure(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "stockcheck", cmd.Use)

	names := make([]string, 0)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "check")
	assert.Contains(t, names, "tiers")

	for _, flag := range []string{"verbose", "format", "env-file"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	f := newFixture(t)
	_, err := f.run("--format", "xml", "tiers")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestCheck_Text(t *testing.T) {
	f := newFixture(t)

	out, err := f.run("check", "--stock", f.stock, "--requests", f.requests)
	require.NoError(t, err)

	assert.Contains(t, out, "Stock Check Results")
	assert.Contains(t, out, "Order:        id")
	assert.Contains(t, out, "Satisfied:    2")
	assert.Contains(t, out, "Unsatisfied:  1")
	assert.Contains(t, out, "Issued:       1 complete, 0 partial")
	assert.Contains(t, out, "transfer feasible from WBS stock")
	assert.Contains(t, out, "Shortages by location:")
}

func TestCheck_JSON(t *testing.T) {
	f := newFixture(t)

	out, err := f.run("--format", "json", "check", "--stock", f.stock, "--requests", f.requests)
	require.NoError(t, err)

	decoded := decodeJSON(t, out)
	assert.Equal(t, "sequential", decoded["mode"])
	assert.Equal(t, "id", decoded["order"])

	results := decoded["results"].([]interface{})
	require.Len(t, results, 4)
	tiers := make([]interface{}, len(results))
	verdicts := make([]interface{}, len(results))
	for i, r := range results {
		tiers[i] = r.(map[string]interface{})["tier"]
		verdicts[i] = r.(map[string]interface{})["verdict"]
	}
	assert.Equal(t, []interface{}{"sloc_wbs", "wbs", nil, nil}, tiers)
	assert.Equal(t, []interface{}{"SATISFIED", "SATISFIED", "UNSATISFIED", "ALREADY_ISSUED_COMPLETE"}, verdicts)

	summary := decoded["summary"].(map[string]interface{})
	assert.EqualValues(t, 2, summary["satisfied"])
	assert.EqualValues(t, 1, summary["unsatisfied"])
	assert.Len(t, decoded["rows"], 4)
}

func TestCheck_SimpleModeAndInputOrder(t *testing.T) {
	f := newFixture(t)

	out, err := f.run("--format", "json", "check",
		"--stock", f.stock, "--requests", f.requests, "--mode", "simple", "--order", "input")
	require.NoError(t, err)

	decoded := decodeJSON(t, out)
	assert.Equal(t, "simple", decoded["mode"])
	assert.Equal(t, "input", decoded["order"])

	// Nothing is consumed, so the second request still fits the narrowest tier.
	second := decoded["results"].([]interface{})[1].(map[string]interface{})
	assert.Equal(t, "sloc_wbs", second["tier"])
}

func TestCheck_IssuedStatusFlag(t *testing.T) {
	f := newFixture(t)

	out, err := f.run("--format", "json", "check",
		"--stock", f.stock, "--requests", f.requests, "--issued-status", "1")
	require.NoError(t, err)

	summary := decodeJSON(t, out)["summary"].(map[string]interface{})
	assert.EqualValues(t, 3, summary["already_issued_partial"])
	assert.EqualValues(t, 1, summary["satisfied"], "status 12 is pending once the issued set is overridden")
}

func TestCheck_CSVToStdoutWithFilter(t *testing.T) {
	f := newFixture(t)

	out, err := f.run("--format", "csv", "check",
		"--stock", f.stock, "--requests", f.requests, "--filter-material", "M2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "request,position,material"))
	assert.True(t, strings.HasPrefix(lines[1], "3,2,M2"))
	assert.Contains(t, lines[1], "UNSATISFIED")
}

func TestCheck_CSVFiles(t *testing.T) {
	f := newFixture(t)
	outDir := filepath.Join(f.dir, "out")

	_, err := f.run("--format", "csv", "check",
		"--stock", f.stock, "--requests", f.requests, "--output", outDir)
	require.NoError(t, err)

	for _, name := range []string{"results.csv", "shortages.csv", "balances.csv"} {
		assert.FileExists(t, filepath.Join(outDir, name))
	}

	balances, err := os.ReadFile(filepath.Join(outDir, "balances.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(balances), "sloc_wbs,M1|P1|S1|W1,2")
	assert.Contains(t, string(balances), "wbs,M1|P1|W1,9")
	assert.Contains(t, string(balances), "area,M1,12")
}

func TestCheck_HierarchyFile(t *testing.T) {
	f := newFixture(t)
	hierarchy := f.write(t, "tiers.yaml", `
tiers:
  - name: bin
    dimensions: [material, plant, sub_location]
  - name: site
    dimensions: [material]
columns:
  requests:
    id: ["Request Number"]
`)

	out, err := f.run("--format", "json", "check",
		"--stock", f.stock, "--requests", f.requests, "--hierarchy", hierarchy)
	require.NoError(t, err)

	results := decodeJSON(t, out)["results"].([]interface{})
	first := results[0].(map[string]interface{})
	second := results[1].(map[string]interface{})
	assert.Equal(t, "bin", first["tier"])
	assert.Equal(t, "site", second["tier"])
	assert.Equal(t, entities.SuggestionAreaTransfer, second["suggestion"])

	// The informational tier is never drawn down, so it still reports the full total.
	balances := decodeJSON(t, out)["final_balances"].([]interface{})
	site := balances[1].(map[string]interface{})["balances"].([]interface{})
	assert.EqualValues(t, 12, site[0].(map[string]interface{})["quantity"])
}

func TestCheck_Errors(t *testing.T) {
	f := newFixture(t)

	t.Run("missing flags", func(t *testing.T) {
		_, err := f.run("check", "--stock", f.stock)
		assert.Error(t, err)
	})

	t.Run("missing quantity column", func(t *testing.T) {
		bad := f.write(t, "bad.csv", "Request Number,Material Number\n1,M1\n")
		_, err := f.run("check", "--stock", f.stock, "--requests", bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "transfer quantity")
	})

	t.Run("missing dimension", func(t *testing.T) {
		noWBS := f.write(t, "nowbs.csv", "Material,Plant,Storage Location,Unrestricted\nM1,P1,S1,4\n")
		_, err := f.run("check", "--stock", noWBS, "--requests", f.requests)
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrMissingDimension)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := f.run("check", "--stock", f.stock, "--requests", f.requests, "--order", "random")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := f.run("check", "--stock", filepath.Join(f.dir, "nope.csv"), "--requests", f.requests)
		assert.Error(t, err)
	})
}

func TestTiers_HierarchyOnly(t *testing.T) {
	f := newFixture(t)

	out, err := f.run("tiers")
	require.NoError(t, err)
	assert.Contains(t, out, "sloc_wbs")
	assert.Contains(t, out, "area (informational)")
	assert.Contains(t, out, "material+plant+sub_location+budget_element")
}

func TestTiers_WithStock(t *testing.T) {
	f := newFixture(t)

	out, err := f.run("--format", "json", "tiers", "--stock", f.stock)
	require.NoError(t, err)

	var tiers []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &tiers))
	require.Len(t, tiers, 5)
	assert.Equal(t, "sloc_wbs", tiers[0]["name"])
	assert.EqualValues(t, 2, tiers[0]["keys"])
	assert.EqualValues(t, 1, tiers[1]["keys"])
	assert.Equal(t, true, tiers[4]["informational"])
}

func TestTiers_InvalidHierarchy(t *testing.T) {
	f := newFixture(t)
	hierarchy := f.write(t, "bad.yaml", "tiers:\n  - name: only\n    dimensions: [material]\n")

	_, err := f.run("tiers", "--hierarchy", hierarchy)
	assert.ErrorIs(t, err, entities.ErrInvalidHierarchy)
}
