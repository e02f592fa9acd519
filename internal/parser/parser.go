package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/zebmuhammad/car-maintenance-chat-project/internal/models"
)

// Column labels expected in the source header. Matching is case-insensitive;
// a missing column yields empty strings for that field.
const (
	colIssue     = "issue"
	colSymptoms  = "symptoms"
	colCauses    = "causes"
	colSolutions = "solutions"
)

var ErrEmptySource = fmt.Errorf("source contains no data rows")

// Load reads maintenance records from a tabular file. The format is picked
// by extension: .csv or .xlsx.
func Load(filePath string) ([]models.MaintenanceRecord, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".csv":
		return loadCSV(filePath)
	case ".xlsx":
		return loadXLSX(filePath)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", ext)
	}
}

func loadCSV(filePath string) ([]models.MaintenanceRecord, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, ErrEmptySource
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %v", err)
	}
	cols := columnIndex(header)

	var records []models.MaintenanceRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Err(err).Msg("Skipping malformed row")
			continue
		}
		records = append(records, rowToRecord(row, cols))
	}
	if len(records) == 0 {
		return nil, ErrEmptySource
	}
	return records, nil
}

func loadXLSX(filePath string) ([]models.MaintenanceRecord, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySource
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %v", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptySource
	}

	cols := columnIndex(rows[0])
	records := make([]models.MaintenanceRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, rowToRecord(row, cols))
	}
	return records, nil
}

// columnIndex maps the four known labels to their header positions. Unknown
// columns are ignored, known columns may appear in any order.
func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, 4)
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

func rowToRecord(row []string, cols map[string]int) models.MaintenanceRecord {
	return models.MaintenanceRecord{
		Issue:     cell(row, cols, colIssue),
		Symptoms:  cell(row, cols, colSymptoms),
		Causes:    cell(row, cols, colCauses),
		Solutions: cell(row, cols, colSolutions),
	}
}

func cell(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
