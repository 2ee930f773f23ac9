package tabular

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"attrilens/domain/core"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "csv"
	if ext == ".xlsx" || ext == ".xlsm" {
		fileType = "xlsx"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// Read reads the file into a raw header/rows table. A missing or unreadable
// source is a data-not-found error, never an empty table.
func (r *DataReader) Read() (*RawTable, error) {
	log.Printf("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); err != nil {
		return nil, core.NewDataNotFoundError(r.filePath, err)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

// readCSV reads CSV data into the raw table format
func (r *DataReader) readCSV() (*RawTable, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, core.NewDataNotFoundError(r.filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // row width is validated downstream
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	log.Printf("[DataReader] CSV file read in %.2fms (%d rows)",
		float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: CSV file has no header row", core.ErrSchemaInvalid)
	}

	return r.processRows(rows)
}

// readExcel reads data from the first sheet of an Excel workbook
func (r *DataReader) readExcel() (*RawTable, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", core.ErrSchemaInvalid)
	}

	readStart := time.Now()
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	log.Printf("[DataReader] Sheet %s read in %.2fms (%d rows)",
		sheets[0], float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %s has no header row", core.ErrSchemaInvalid, sheets[0])
	}

	return r.processRows(rows)
}

// processRows trims cells and squares every data row to the header width.
// Excel readers drop trailing empty cells, so short rows are padded.
func (r *DataReader) processRows(rows [][]string) (*RawTable, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]string, len(headers))
		for j := range headers {
			if j < len(row) {
				cells[j] = strings.TrimSpace(row[j])
			}
		}
		dataRows = append(dataRows, cells)
	}

	log.Printf("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &RawTable{
		Headers: headers,
		Rows:    dataRows,
	}, nil
}
