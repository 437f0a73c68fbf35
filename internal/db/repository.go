package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"stylemirror/internal/report"
)

// generatedAtLayout is fixed width so that TEXT ordering matches time ordering.
const generatedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// RunSummary is one row of the run history.
type RunSummary struct {
	ID          string
	Title       string
	Status      report.Status
	GeneratedAt time.Time
	Improvement *float64
}

// PersistReport stores a report and its alert and suggestion rows. Persisting
// the same run twice replaces the earlier rows.
func PersistReport(dbPath, title string, rep report.Report) error {
	if rep.RunID == "" {
		return fmt.Errorf("report has no run id")
	}
	conn, err := Open(dbPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	payload, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"mirror_scores", "fidelity_alerts", "citation_suggestions"} {
		if _, err := tx.Exec(`DELETE FROM `+table+` WHERE run_id = ?`, rep.RunID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO runs(id, title, status, generated_at, report_json) VALUES(?,?,?,?,?)`,
		rep.RunID,
		title,
		string(rep.Status),
		rep.GeneratedAt.UTC().Format(generatedAtLayout),
		string(payload),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if s := rep.MirrorScore; s != nil {
		if _, err := tx.Exec(
			`INSERT INTO mirror_scores(run_id, draft_to_sample, standard_to_sample, improvement) VALUES(?,?,?,?)`,
			rep.RunID, s.DraftToSample, s.StandardToSample, s.Improvement,
		); err != nil {
			return fmt.Errorf("insert mirror score: %w", err)
		}
	}
	if g := rep.FidelityGuardrails; g != nil {
		for _, a := range g.Alerts {
			if _, err := tx.Exec(
				`INSERT INTO fidelity_alerts(run_id, type, sentence_index, detail) VALUES(?,?,?,?)`,
				rep.RunID, string(a.Type), a.SentenceIndex, a.Detail,
			); err != nil {
				return fmt.Errorf("insert fidelity alert: %w", err)
			}
		}
	}
	if c := rep.CitationSuggestions; c != nil {
		for _, item := range c.Items {
			queries, err := json.Marshal(item.Queries)
			if err != nil {
				return fmt.Errorf("encode citation queries: %w", err)
			}
			if _, err := tx.Exec(
				`INSERT INTO citation_suggestions(run_id, sentence_index, reason, sentence_text, queries) VALUES(?,?,?,?,?)`,
				rep.RunID, item.SentenceIndex, string(item.Reason), item.SentenceText, string(queries),
			); err != nil {
				return fmt.Errorf("insert citation suggestion: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// RecentRuns lists the newest runs first.
func RecentRuns(dbPath string, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	conn, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.Query(`
SELECT r.id, r.title, r.status, r.generated_at, m.improvement
FROM runs r LEFT JOIN mirror_scores m ON m.run_id = r.id
ORDER BY r.generated_at DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	out := []RunSummary{}
	for rows.Next() {
		var (
			s           RunSummary
			status, at  string
			improvement sql.NullFloat64
		)
		if err := rows.Scan(&s.ID, &s.Title, &status, &at, &improvement); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		s.Status = report.Status(status)
		if s.GeneratedAt, err = time.Parse(generatedAtLayout, at); err != nil {
			return nil, fmt.Errorf("parse generated_at for run %s: %w", s.ID, err)
		}
		if improvement.Valid {
			v := improvement.Float64
			s.Improvement = &v
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}

// LoadReport returns the stored report JSON for a run.
func LoadReport(dbPath, runID string) (report.Report, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return report.Report{}, err
	}
	defer conn.Close()

	var payload string
	if err := conn.QueryRow(`SELECT report_json FROM runs WHERE id = ?`, runID).Scan(&payload); err != nil {
		return report.Report{}, fmt.Errorf("load run %s: %w", runID, err)
	}
	var rep report.Report
	if err := json.Unmarshal([]byte(payload), &rep); err != nil {
		return report.Report{}, fmt.Errorf("decode run %s: %w", runID, err)
	}
	return rep, nil
}

func CountRows(dbPath, table string) (int, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer conn.Close()
	return countRowsConn(conn, table)
}

func countRowsConn(conn *sql.DB, table string) (int, error) {
	row := conn.QueryRow(`SELECT COUNT(*) FROM ` + table)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan count: %w", err)
	}
	return count, nil
}
