package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapboard/internal/cli/config"
	"github.com/leapstack-labs/leapboard/pkg/omni"
)

const validDoc = `version: 1
dashboard:
  name: revenue
  model_id: model-1
  tiles:
    - name: revenue by month
      chart_type: line
      size: half
      query:
        table: orders
        fields: [orders.created_month, orders.total_revenue]
    - name: mrr
      chart_type: number
      size: quarter
      query:
        table: orders
        fields: [orders.mrr]
`

func writeTempDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestCompileCommand(t *testing.T) {
	path := writeTempDoc(t, validDoc)

	out, err := execute(t, NewCompileCommand(), path)
	require.NoError(t, err)

	var payload omni.CreatePayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))

	assert.Equal(t, "model-1", payload.ModelID)
	require.Len(t, payload.QueryPresentations, 2)
	require.NotNil(t, payload.QueryPresentations[0].Position, "tiles get auto-positioned")
	assert.Equal(t, "kpi", payload.QueryPresentations[1].ChartType)
	assert.Equal(t, 1, payload.QueryPresentations[1].Query.Limit)
}

func TestCompileCommand_NoLayout(t *testing.T) {
	path := writeTempDoc(t, validDoc)

	out, err := execute(t, NewCompileCommand(), "--no-layout", path)
	require.NoError(t, err)

	var payload omni.CreatePayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Nil(t, payload.QueryPresentations[0].Position)
}

func TestCompileCommand_OutputFile(t *testing.T) {
	path := writeTempDoc(t, validDoc)
	outPath := filepath.Join(t.TempDir(), "payload.json")

	_, err := execute(t, NewCompileCommand(), "-o", outPath, path)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestCompileCommand_MissingModelID(t *testing.T) {
	path := writeTempDoc(t, `version: 1
dashboard:
  name: revenue
  tiles:
    - name: t
      chart_type: line
      query: {table: orders, fields: [orders.a]}
`)

	_, err := execute(t, NewCompileCommand(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model_id")
}

func TestValidateCommand(t *testing.T) {
	t.Run("clean document", func(t *testing.T) {
		path := writeTempDoc(t, validDoc)
		out, err := execute(t, NewValidateCommand(), path)
		require.NoError(t, err)
		assert.Contains(t, out, "ok (2 tiles)")
	})

	t.Run("invalid document fails", func(t *testing.T) {
		path := writeTempDoc(t, `version: 1
dashboard:
  name: revenue
  model_id: model-1
  tiles:
    - name: broken
      chart_type: line
      query: {table: orders, fields: []}
`)
		out, err := execute(t, NewValidateCommand(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 error(s)")
		assert.Contains(t, out, "empty-fields")
	})

	t.Run("strict fails on warnings", func(t *testing.T) {
		doc := `version: 1
dashboard:
  name: revenue
  model_id: model-1
  tiles:
    - name: mrr
      chart_type: number
      query:
        table: orders
        fields: [orders.mrr]
        limit: 50
`
		path := writeTempDoc(t, doc)

		_, err := execute(t, NewValidateCommand(), path)
		assert.NoError(t, err, "warnings alone do not fail")

		_, err = execute(t, NewValidateCommand(), "--strict", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--strict")
	})

	t.Run("catalog catches unknown fields", func(t *testing.T) {
		path := writeTempDoc(t, validDoc)
		catalogPath := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(catalogPath, []byte("orders: [created_month]\n"), 0o644))

		out, err := execute(t, NewValidateCommand(), "--catalog", catalogPath, path)
		require.Error(t, err)
		assert.Contains(t, out, "unknown-field")
	})
}

func TestImportCommand(t *testing.T) {
	exportPath := filepath.Join(t.TempDir(), "export.json")
	export := `{
		"document": {
			"dashboard": {
				"name": "imported",
				"modelId": "model-1",
				"queryPresentationCollection": {
					"queryPresentationCollectionMemberships": [
						{
							"queryPresentation": {
								"id": "qp-1",
								"name": "kpi tile",
								"chartType": "summaryValue",
								"query": {
									"table": "orders",
									"fields": ["orders.mrr"],
									"modelId": "model-1",
									"limit": 1
								}
							}
						}
					]
				},
				"metadata": {"layouts": {"lg": [{"i": "qp-1", "x": 0, "y": 0, "w": 6, "h": 4}]}}
			}
		}
	}`
	require.NoError(t, os.WriteFile(exportPath, []byte(export), 0o644))

	out, err := execute(t, NewImportCommand(), exportPath)
	require.NoError(t, err)

	assert.Contains(t, out, "name: imported")
	assert.Contains(t, out, "chart_type: number", "vendor synonym collapses to the internal type")
	assert.Contains(t, out, "w: 3", "export grid units rescaled")
}

func TestLayoutCommand(t *testing.T) {
	path := writeTempDoc(t, validDoc)

	out, err := execute(t, NewLayoutCommand(), path)
	require.NoError(t, err)

	assert.Contains(t, out, "revenue by month")
	assert.Contains(t, out, "mrr")
}

func TestLayoutCommand_Grid(t *testing.T) {
	path := writeTempDoc(t, validDoc)

	out, err := execute(t, NewLayoutCommand(), "--grid", path)
	require.NoError(t, err)

	// Tile A is the half-width line chart on the first row.
	assert.Contains(t, out, "AAAAAA")
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "revenue.yaml.tmpl")
	tmpl := `version: 1
dashboard:
  name: revenue {{ .region }}
  model_id: model-1
  tiles:
    - name: t
      chart_type: line
      query: {table: orders, fields: [orders.a]}
`
	require.NoError(t, os.WriteFile(tmplPath, []byte(tmpl), 0o644))

	out, err := execute(t, NewRenderCommand(), "-p", "region=EMEA", tmplPath)
	require.NoError(t, err)
	assert.Contains(t, out, "name: revenue EMEA")

	_, err = execute(t, NewRenderCommand(), tmplPath)
	assert.Error(t, err, "missing parameter fails the render")

	_, err = execute(t, NewRenderCommand(), "-p", "not-a-pair", tmplPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key=value")
}

func TestPushCommand_DryRun(t *testing.T) {
	path := writeTempDoc(t, validDoc)

	out, err := execute(t, NewPushCommand(), "--dry-run", path)
	require.NoError(t, err)
	assert.Contains(t, out, "not submitted")
}

func TestPushCommand_RequiresToken(t *testing.T) {
	path := writeTempDoc(t, validDoc)

	_, err := execute(t, NewPushCommand(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API token")
}

func TestPushCommand_ValidatesFirst(t *testing.T) {
	path := writeTempDoc(t, `version: 1
dashboard:
  name: revenue
  model_id: model-1
  tiles:
    - name: broken
      chart_type: line
      query: {table: orders, fields: []}
`)

	_, err := execute(t, NewPushCommand(), "--dry-run", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation error")
}

func TestPushCommand_Submits(t *testing.T) {
	path := writeTempDoc(t, validDoc)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "doc-1"})
	}))
	defer srv.Close()

	cmd := NewPushCommand()
	ctx := config.WithConfig(context.Background(), &config.Config{
		BaseURL:     srv.URL,
		APIToken:    "secret",
		Concurrency: 2,
		RequestRate: 1000,
	})
	cmd.SetContext(ctx)

	out, err := execute(t, cmd, path)
	require.NoError(t, err)
	assert.Contains(t, out, "created doc-1")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, NewVersionCommand("1.2.3", "2026-01-01", "abc123"))
	require.NoError(t, err)
	assert.Contains(t, out, "leapboard 1.2.3")
	assert.Contains(t, out, "abc123")
}
