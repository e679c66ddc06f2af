package service

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"kyra_advising_backend/internal/repository"
)

func seedExportData(t *testing.T) (*ExportService, *QueryService) {
	t.Helper()
	db := newTestDB(t)
	querySvc := newTestQueryService(db)
	exportSvc := NewExportService(repository.NewQueryRepository(db))

	rows := []struct {
		email, title, question, ts string
		rating                     *int
	}{
		{"s1@college.edu", "Wind Tunnel", "How do I calibrate?", "2025-05-01 09:00:00", intPtr(5)},
		{"s1@college.edu", "Wind Tunnel", "What about drag?", "2025-05-02 10:00:00", nil},
		{"s2@college.edu", "Beekeeping", "When to harvest?", "2025-05-03 11:00:00", intPtr(3)},
	}
	for _, r := range rows {
		if err := querySvc.SaveQuery(r.email, "Student", r.title, r.question, "Answer.", r.ts, r.rating); err != nil {
			t.Fatalf("seed query: %v", err)
		}
	}
	return exportSvc, querySvc
}

func TestExportCSV(t *testing.T) {
	svc, _ := seedExportData(t)

	data, err := svc.ExportCSV(repository.QueryLogFilter{})
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header + 3 rows, got %d records", len(records))
	}

	wantHeader := "email,name,project_title,question,response,timestamp,feedback_rating"
	if got := strings.Join(records[0], ","); got != wantHeader {
		t.Errorf("header mismatch:\n got %q\nwant %q", got, wantHeader)
	}

	// Ordered newest first; unrated rows export an empty rating field.
	if records[1][0] != "s2@college.edu" {
		t.Errorf("expected newest row first, got %q", records[1][0])
	}
	if records[2][6] != "" {
		t.Errorf("unrated row should have empty rating, got %q", records[2][6])
	}
	if records[3][6] != "5" {
		t.Errorf("expected rating 5, got %q", records[3][6])
	}
}

func TestExportCSVFilters(t *testing.T) {
	svc, _ := seedExportData(t)

	data, err := svc.ExportCSV(repository.QueryLogFilter{StudentEmail: "s1@college.edu"})
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("email filter: expected header + 2 rows, got %d", len(records))
	}

	// The all-projects sentinel means no project filter.
	data, err = svc.ExportCSV(repository.QueryLogFilter{ProjectTitle: AllProjects})
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	records, _ = csv.NewReader(bytes.NewReader(data)).ReadAll()
	if len(records) != 4 {
		t.Errorf("sentinel filter: expected all rows, got %d records", len(records))
	}

	data, err = svc.ExportCSV(repository.QueryLogFilter{DateFrom: "2025-05-02", DateTo: "2025-05-02"})
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	records, _ = csv.NewReader(bytes.NewReader(data)).ReadAll()
	if len(records) != 2 {
		t.Errorf("date filter: expected header + 1 row, got %d records", len(records))
	}
}

func TestExportCSVEmpty(t *testing.T) {
	svc, _ := seedExportData(t)

	data, err := svc.ExportCSV(repository.QueryLogFilter{StudentEmail: "nobody@college.edu"})
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	if data != nil {
		t.Errorf("expected nil bytes for empty result, got %d bytes", len(data))
	}
}

func TestExportPDF(t *testing.T) {
	svc, _ := seedExportData(t)

	data, err := svc.ExportPDF(repository.QueryLogFilter{})
	if err != nil {
		t.Fatalf("ExportPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output does not look like a PDF document")
	}

	data, err = svc.ExportPDF(repository.QueryLogFilter{StudentEmail: "nobody@college.edu"})
	if err != nil {
		t.Fatalf("ExportPDF empty: %v", err)
	}
	if data != nil {
		t.Errorf("expected nil bytes for empty result, got %d bytes", len(data))
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 50); got != "short" {
		t.Errorf("short string changed: %q", got)
	}
	long := strings.Repeat("x", 60)
	got := truncate(long, 50)
	if len([]rune(got)) != 53 || !strings.HasSuffix(got, "...") {
		t.Errorf("unexpected truncation: %q", got)
	}
}
