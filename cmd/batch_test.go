//go:build !integration

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/cleancorp/internal/batch"
)

func TestBatchCmd_Metadata(t *testing.T) {
	assert.Equal(t, "batch", batchCmd.Use)
	assert.NotEmpty(t, batchCmd.Short)
	for _, name := range []string{"input", "output", "column", "column-index", "no-header", "format", "concurrency", "explain", "fold"} {
		require.NotNil(t, batchCmd.Flags().Lookup(name), name)
	}
}

func TestBatchCmd_MissingInput(t *testing.T) {
	_, err := runCLI(t, nil, "batch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--input is required")
}

func TestBatchCmd_MissingFile(t *testing.T) {
	_, err := runCLI(t, nil, "batch", "--input", "nope.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch: open input")
}

func TestBatchCmd_CSVToJSONL(t *testing.T) {
	files := map[string]string{
		"names.csv": "id,name\n1,Acme Pty Ltd\n2,Foo Bank AG\n3,Acme Pty Ltd\n",
	}
	out, err := runCLI(t, files, "batch", "--input", "names.csv", "--concurrency", "2")
	require.NoError(t, err)

	results := decodeAll[batch.Result](t, out)
	require.Len(t, results, 3)
	assert.Equal(t, 2, results[0].Line)
	assert.Equal(t, "acme", results[0].CleanName)
	assert.Equal(t, "foo bank", results[1].CleanName)
	assert.Equal(t, results[0].Record, results[2].Record)
}

func TestBatchCmd_CSVOutputFile(t *testing.T) {
	files := map[string]string{
		"names.csv": "Widgets Co.\nJohn Smith\n",
	}
	_, err := runCLI(t, files, "batch", "--input", "names.csv", "--no-header", "--format", "csv", "--output", "out.csv")
	require.NoError(t, err)

	// runCLI leaves the working directory at the temp dir until cleanup.
	data, err := os.ReadFile("out.csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(batch.CSVHeader, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1,Widgets Co.,widgets,true,Company"), lines[1])
	assert.Equal(t, "2,John Smith,john smith,false,,,", lines[2])
}

func TestBatchCmd_ConfiguredColumn(t *testing.T) {
	files := map[string]string{
		"cleancorp.yaml": "batch:\n  name_column: legal_name\n  format: json\n",
		"names.csv":      "legal_name,city\nAcme Ltd,Sydney\n",
	}
	out, err := runCLI(t, files, "batch", "--input", "names.csv")
	require.NoError(t, err)
	assert.Contains(t, out, `"clean_name": "acme"`)
}

func TestBatchCmd_MissingColumn(t *testing.T) {
	files := map[string]string{"names.csv": "company\nAcme Ltd\n"}
	_, err := runCLI(t, files, "batch", "--input", "names.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "name" not found`)
}

func TestBatchCmd_XLSX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "names.xlsx")
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	require.NoError(t, err)
	for _, v := range []string{"Name", "Acme Pty Ltd"} {
		sheet.AddRow().AddCell().SetString(v)
	}
	require.NoError(t, f.Save(path))

	out, err := runCLI(t, nil, "batch", "--input", path, "--explain")
	require.NoError(t, err)

	results := decodeAll[batch.Result](t, out)
	require.Len(t, results, 1)
	assert.Equal(t, "acme", results[0].CleanName)
	assert.NotEmpty(t, results[0].MatchedTerms)
}
