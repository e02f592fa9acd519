package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/zebmuhammad/car-maintenance-chat-project/internal/models"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "issues.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, "Issue,Symptoms,Causes,Solutions\n"+
		"Overheating,steam,low coolant,refill coolant\n"+
		"Dead battery,no crank,old battery,replace battery\n")

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, models.MaintenanceRecord{
		Issue:     "Overheating",
		Symptoms:  "steam",
		Causes:    "low coolant",
		Solutions: "refill coolant",
	}, records[0])
}

func TestLoadCSVColumnOrderAndCase(t *testing.T) {
	path := writeCSV(t, "solutions,ISSUE,Causes,Symptoms\n"+
		"refill coolant,Overheating,low coolant,steam\n")

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Overheating", records[0].Issue)
	assert.Equal(t, "refill coolant", records[0].Solutions)
}

func TestLoadCSVMissingColumnYieldsEmptyField(t *testing.T) {
	path := writeCSV(t, "Issue,Symptoms\nOverheating,steam\n")

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "", records[0].Causes)
	assert.Equal(t, "", records[0].Solutions)

	want := "Issue: Overheating\nSymptoms: steam\nCauses: \nSolutions: "
	assert.Equal(t, want, records[0].Combined())
}

func TestLoadCSVShortRowYieldsEmptyField(t *testing.T) {
	path := writeCSV(t, "Issue,Symptoms,Causes,Solutions\nOverheating,steam\n")

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "steam", records[0].Symptoms)
	assert.Equal(t, "", records[0].Solutions)
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "issues.xlsx")
	f := excelize.NewFile()
	cells := map[string]string{
		"A1": "Issue", "B1": "Symptoms", "C1": "Causes", "D1": "Solutions",
		"A2": "Overheating", "B2": "steam", "C2": "low coolant", "D2": "refill coolant",
	}
	for cell, value := range cells {
		require.NoError(t, f.SetCellValue("Sheet1", cell, value))
	}
	require.NoError(t, f.SaveAs(path))

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "low coolant", records[0].Causes)
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeCSV(t, "")

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrEmptySource)
}

func TestLoadHeaderOnly(t *testing.T) {
	path := writeCSV(t, "Issue,Symptoms,Causes,Solutions\n")

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrEmptySource)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "issues.pdf")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "unsupported file format")
}
