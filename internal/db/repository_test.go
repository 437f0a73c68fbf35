package db

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"stylemirror/internal/citation"
	"stylemirror/internal/fidelity"
	"stylemirror/internal/mirror"
	"stylemirror/internal/report"
)

func sampleReport(id string, at time.Time) report.Report {
	return report.Report{
		RunID:       id,
		GeneratedAt: at,
		Status:      report.StatusCompleted,
		MirrorScore: &mirror.MirrorScore{DraftToSample: 61.2, StandardToSample: 78.4, Improvement: 17.2, Weights: mirror.DefaultWeights()},
		FidelityGuardrails: &fidelity.Guardrails{
			NumberRetentionRate:  50,
			AcronymRetentionRate: 100,
			Alerts: []fidelity.Alert{
				{Type: fidelity.NumberLoss, SentenceIndex: 0, Detail: "missing number: 95.2%"},
			},
		},
		CitationSuggestions: &citation.Result{
			RulesVersion: citation.RulesVersion,
			Items: []citation.Suggestion{
				{SentenceIndex: 1, SentenceText: "研究表明该方法有效。", Reason: citation.Background, Queries: []string{"方法 综述"}},
				{SentenceIndex: 2, SentenceText: "据统计，用户增长迅速。", Reason: citation.Statistic, Queries: []string{"用户 统计数据"}},
			},
		},
	}
}

func TestPersistReport(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	rep := sampleReport("run-1", time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC))

	if err := PersistReport(dbPath, "thesis", rep); err != nil {
		t.Fatalf("persist report: %v", err)
	}
	// Persisting again must not duplicate child rows.
	if err := PersistReport(dbPath, "thesis", rep); err != nil {
		t.Fatalf("persist report again: %v", err)
	}

	for table, want := range map[string]int{
		"runs":                 1,
		"mirror_scores":        1,
		"fidelity_alerts":      1,
		"citation_suggestions": 2,
	} {
		got, err := CountRows(dbPath, table)
		if err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if got != want {
			t.Fatalf("expected %d rows in %s, got %d", want, table, got)
		}
	}

	loaded, err := LoadReport(dbPath, "run-1")
	if err != nil {
		t.Fatalf("load report: %v", err)
	}
	if loaded.MirrorScore == nil || loaded.MirrorScore.Improvement != 17.2 {
		t.Fatalf("unexpected loaded mirror score: %+v", loaded.MirrorScore)
	}
}

func TestPersistReportRequiresRunID(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	if err := PersistReport(dbPath, "x", report.Report{}); err == nil {
		t.Fatal("expected error for report without run id")
	}
}

func TestRecentRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	if err := PersistReport(dbPath, "old", sampleReport("run-old", base)); err != nil {
		t.Fatalf("persist old: %v", err)
	}
	draftOnly := report.Report{RunID: "run-new", GeneratedAt: base.Add(time.Hour), Status: report.StatusDraftOnly}
	if err := PersistReport(dbPath, "new", draftOnly); err != nil {
		t.Fatalf("persist new: %v", err)
	}

	runs, err := RecentRuns(dbPath, 5)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "run-new" || runs[0].Status != report.StatusDraftOnly || runs[0].Improvement != nil {
		t.Fatalf("unexpected newest run: %+v", runs[0])
	}
	if runs[1].Improvement == nil || *runs[1].Improvement != 17.2 {
		t.Fatalf("expected improvement on older run, got %+v", runs[1])
	}
	if !runs[1].GeneratedAt.Equal(base) {
		t.Fatalf("unexpected generated_at: %v", runs[1].GeneratedAt)
	}
}

func TestRecentRunsOrdersWithinOneSecond(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	base := time.Date(2025, 3, 1, 12, 0, 5, 0, time.UTC)
	runs := []report.Report{
		{RunID: "run-a", GeneratedAt: base, Status: report.StatusDraftOnly},
		{RunID: "run-b", GeneratedAt: base.Add(500 * time.Millisecond), Status: report.StatusDraftOnly},
		{RunID: "run-c", GeneratedAt: base.Add(120 * time.Millisecond), Status: report.StatusDraftOnly},
	}
	for _, r := range runs {
		if err := PersistReport(dbPath, r.RunID, r); err != nil {
			t.Fatalf("persist %s: %v", r.RunID, err)
		}
	}

	got, err := RecentRuns(dbPath, 3)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	// Newest first: b (+500ms), c (+120ms), a.
	order := []int{1, 2, 0}
	if len(got) != len(order) {
		t.Fatalf("expected %d runs, got %d", len(order), len(got))
	}
	for i, idx := range order {
		want := runs[idx]
		if got[i].ID != want.RunID {
			t.Fatalf("position %d: expected %s, got %s", i, want.RunID, got[i].ID)
		}
		if !got[i].GeneratedAt.Equal(want.GeneratedAt) {
			t.Fatalf("generated_at for %s did not round-trip: %v", want.RunID, got[i].GeneratedAt)
		}
	}
}

func TestLoadReportMissing(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	_, err := LoadReport(dbPath, "nope")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}
