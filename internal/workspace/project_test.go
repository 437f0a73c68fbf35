package workspace

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"stylemirror/internal/report"
)

func TestCreateProject(t *testing.T) {
	base := filepath.Join(t.TempDir(), BaseDirName)
	root, err := EnsureAt(base)
	if err != nil {
		t.Fatalf("ensure workspace: %v", err)
	}
	for _, p := range []string{"configs/settings.json", "logs", "projects"} {
		if _, err := os.Stat(filepath.Join(root, p)); err != nil {
			t.Fatalf("expected %s to exist: %v", p, err)
		}
	}

	project, err := CreateProject(root, "My Thesis")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	again, err := CreateProject(root, "  my thesis ")
	if err != nil {
		t.Fatalf("create project again: %v", err)
	}
	if again.ID != project.ID {
		t.Fatalf("expected stable project id, got %s and %s", project.ID, again.ID)
	}

	draftPath, err := project.SaveSource(RoleDraft, "../../Draft.DOCX", []byte("docx"))
	if err != nil {
		t.Fatalf("save source: %v", err)
	}
	if filepath.Base(draftPath) != "draft.docx" {
		t.Fatalf("unexpected source name: %s", draftPath)
	}
	if _, err := project.SaveSource("appendix", "a.md", nil); err == nil {
		t.Fatal("expected unknown role error")
	}

	rewritePath, err := project.SaveRewrite("standard", "# 标题\n\n正文。")
	if err != nil {
		t.Fatalf("save rewrite: %v", err)
	}
	if filepath.Base(rewritePath) != "rewritten-standard.md" {
		t.Fatalf("unexpected rewrite name: %s", rewritePath)
	}
	if _, err := project.SaveRewrite("wild", "x"); err == nil {
		t.Fatal("expected unknown variant error")
	}
}

func TestSaveAndLoadReport(t *testing.T) {
	project, err := CreateProject(t.TempDir(), "draft")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	rep := report.Report{RunID: "run-1", GeneratedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), Status: report.StatusDraftOnly}
	if err := SaveReport(project.ReportPath, rep); err != nil {
		t.Fatalf("save report: %v", err)
	}
	loaded, err := LoadReport(project.ReportPath)
	if err != nil {
		t.Fatalf("load report: %v", err)
	}
	if loaded.RunID != "run-1" || loaded.Status != report.StatusDraftOnly || !loaded.GeneratedAt.Equal(rep.GeneratedAt) {
		t.Fatalf("unexpected report: %+v", loaded)
	}
}
