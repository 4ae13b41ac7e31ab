package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ilgaz/tempo/internal/store"
)

func sampleTasks() []store.Task {
	return []store.Task{
		{
			ID: 2, Date: "2026-08-30", ProjectID: 1, ProjectName: "Website",
			Name: "Design review", Hours: 1, Minutes: 30, TotalMinutes: 90,
			Notes: "with, commas",
		},
		{
			ID: 1, Date: "2026-08-29", ProjectID: 1, ProjectName: "Website",
			Name: "Bug triage", Hours: 0, Minutes: 45, TotalMinutes: 45,
		},
	}
}

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")
	if err := ToCSV(sampleTasks(), path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	if records[0][0] != "ID" || records[0][7] != "Duration" {
		t.Fatalf("unexpected header: %v", records[0])
	}

	row := records[1]
	if row[1] != "2026-08-30" || row[2] != "Website" || row[3] != "Design review" {
		t.Fatalf("unexpected row: %v", row)
	}
	if row[6] != "90" || row[7] != "1h 30m" {
		t.Fatalf("unexpected duration columns: %v", row)
	}
	if row[8] != "with, commas" {
		t.Fatalf("notes with commas should round-trip: %q", row[8])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(nil, path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected header only, got %d lines", len(lines))
	}
}

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := ToJSON(sampleTasks(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var out jsonExport
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.Count != 2 || len(out.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got count=%d len=%d", out.Count, len(out.Tasks))
	}
	if out.ExportedAt == "" {
		t.Fatal("exported_at missing")
	}

	first := out.Tasks[0]
	if first.Project != "Website" || first.Duration != "1h 30m" {
		t.Fatalf("unexpected task: %+v", first)
	}

	// Empty notes are omitted entirely.
	if strings.Count(string(data), `"notes"`) != 1 {
		t.Fatalf("expected notes on exactly one task:\n%s", data)
	}
}

func TestFormatMinutes(t *testing.T) {
	if got := formatMinutes(90); got != "1h 30m" {
		t.Fatalf("expected 1h 30m, got %q", got)
	}
	if got := formatMinutes(5); got != "0h 05m" {
		t.Fatalf("expected 0h 05m, got %q", got)
	}
}
