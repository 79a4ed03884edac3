package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/modelexport/internal/app"
	"github.com/vk/modelexport/internal/testutil"
)

const treeModel = `
name = "Screening Tree"
type = "decision_tree"

parameter "pPos" {
  expression = "0.1"
}

table "Costs" {
  type          = "lookup"
  lookup_method = "truncate"
  headers       = ["Age", "Test", "Treat"]
  data          = [[0, 10, 100], [50, 20, 250.5]]
}

formula "expectedCost" {
  expression = "Costs[55, 'Test'] + pPos * Costs[55, 'Treat']"
}
`

func TestExportPipeline_ExternalTables(t *testing.T) {
	result := testutil.RunExport(t, map[string]string{"tree.hcl": treeModel}, app.Config{Format: "csv"})
	require.NoError(t, result.Err)

	assert.ElementsMatch(t, []string{"model.go", "table.go", "spline.go", "Costs.csv", "go.mod"}, result.Result.Files)
	assert.Equal(t, "Age,Test,Treat\n0,10,100\n50,20,250.5\n", testutil.ReadGenerated(t, result, "Costs.csv"))
	assert.Contains(t, testutil.ReadGenerated(t, result, "model.go"), `filepath.Join(dataDir, "Costs.csv")`)
	assert.Equal(t, "module screening-tree\n\ngo 1.22\n", testutil.ReadGenerated(t, result, "go.mod"))
	testutil.RequireCompiles(t, result)
}

func TestExportPipeline_LibraryPackage(t *testing.T) {
	result := testutil.RunExport(t, map[string]string{"tree.hcl": treeModel}, app.Config{Package: "screening", Module: "example.com/screening"})
	require.NoError(t, result.Err)

	model := testutil.ReadGenerated(t, result, "model.go")
	assert.Contains(t, model, "package screening")
	assert.NotContains(t, model, "func main()")
	assert.Contains(t, model, "var data_Costs = [][]float64{")
	assert.Contains(t, testutil.ReadGenerated(t, result, "table.go"), "package screening")
	assert.Equal(t, "module example.com/screening\n\ngo 1.22\n", testutil.ReadGenerated(t, result, "go.mod"))

	pkg := testutil.RequireCompiles(t, result)
	assert.Equal(t, "screening", pkg.Name())
}

func TestExportPipeline_MultiFileModel(t *testing.T) {
	files := map[string]string{
		"model.hcl": `
name = "Split"
type = "decision_tree"
`,
		"params/costs.hcl": `
parameter "base" {
  expression = "100"
}

parameter "scaled" {
  expression = "base * 1.5"
}
`,
		"formulas.hcl": `
formula "total" {
  expression = "base + scaled + max(base, scaled)"
}
`,
	}
	result := testutil.RunExport(t, files, app.Config{})
	require.NoError(t, result.Err)

	model := testutil.ReadGenerated(t, result, "model.go")
	assert.Contains(t, model, "var scaled float64 = 150 // Expression: base * 1.5")
	assert.Contains(t, model, "return base + scaled + math.Max(base, scaled)")
	testutil.RequireCompiles(t, result)
}
