package models

import "strings"

// MaintenanceRecord is one row of the tabular source. Missing columns are
// loaded as empty strings, never dropped.
type MaintenanceRecord struct {
	Issue     string
	Symptoms  string
	Causes    string
	Solutions string
}

// Combined flattens the record into the single text blob that gets chunked
// and embedded. Label order is fixed; empty fields keep their label.
func (r MaintenanceRecord) Combined() string {
	var b strings.Builder
	b.WriteString("Issue: " + r.Issue + "\n")
	b.WriteString("Symptoms: " + r.Symptoms + "\n")
	b.WriteString("Causes: " + r.Causes + "\n")
	b.WriteString("Solutions: " + r.Solutions)
	return b.String()
}

// Chunk is a bounded-length segment of a combined record blob.
type Chunk struct {
	Content string
	RowID   int
	ChunkID int
}
