package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attrilens/domain/core"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeCSV(t, "people.csv", "Name, Department \nAlice,Sales\nBob , R&D\n")

	table, err := NewDataReader(path).Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Department"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Alice", "Sales"}, table.Rows[0])
	assert.Equal(t, []string{"Bob", "R&D"}, table.Rows[1])
}

func TestReadPadsShortRows(t *testing.T) {
	path := writeCSV(t, "short.csv", "A,B,C\n1,2\n")

	table, err := NewDataReader(path).Read()
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"1", "2", ""}, table.Rows[0])
}

func TestReadMissingFile(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "absent.csv")).Read()
	require.Error(t, err)
	assert.True(t, core.IsDataNotFound(err))
}

func TestReadEmptyCSV(t *testing.T) {
	path := writeCSV(t, "empty.csv", "")
	_, err := NewDataReader(path).Read()
	require.Error(t, err)
	assert.True(t, core.IsSchemaInvalid(err))
}

func TestFileTypeDetection(t *testing.T) {
	assert.Equal(t, "xlsx", NewDataReader("book.XLSX").fileType)
	assert.Equal(t, "xlsx", NewDataReader("book.xlsm").fileType)
	assert.Equal(t, "csv", NewDataReader("data.csv").fileType)
	assert.Equal(t, "csv", NewDataReader("data.txt").fileType)
}
