package workspace

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"stylemirror/internal/report"
)

// Source roles stored in a project directory.
const (
	RoleSample   = "sample"
	RoleDraft    = "draft"
	RoleStandard = "standard"
)

var variants = map[string]bool{"conservative": true, "standard": true, "enhanced": true}

type ProjectInfo struct {
	ID         string
	Root       string
	ReportPath string
}

// CreateProject returns the project directory for a draft title, creating it
// on first use. The same title always maps to the same project.
func CreateProject(workspaceRoot, draftTitle string) (*ProjectInfo, error) {
	id := titleHash(draftTitle)
	projectRoot := filepath.Join(workspaceRoot, "projects", id)
	if err := os.MkdirAll(projectRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create project dir: %w", err)
	}
	return &ProjectInfo{
		ID:         id,
		Root:       projectRoot,
		ReportPath: filepath.Join(projectRoot, "report.json"),
	}, nil
}

// SaveSource copies an input document as "<role><ext>", e.g. draft.docx.
func (p *ProjectInfo) SaveSource(role, sourceName string, data []byte) (string, error) {
	switch role {
	case RoleSample, RoleDraft, RoleStandard:
	default:
		return "", fmt.Errorf("unknown source role %q", role)
	}
	ext := strings.ToLower(filepath.Ext(sanitizeSourceName(sourceName)))
	if ext == "" {
		ext = ".txt"
	}
	path := filepath.Join(p.Root, role+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s source: %w", role, err)
	}
	return path, nil
}

// SaveRewrite writes one rewrite variant as rewritten-<variant>.md.
func (p *ProjectInfo) SaveRewrite(variant, text string) (string, error) {
	if !variants[variant] {
		return "", fmt.Errorf("unknown rewrite variant %q", variant)
	}
	path := filepath.Join(p.Root, "rewritten-"+variant+".md")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write rewrite: %w", err)
	}
	return path, nil
}

func SaveReport(path string, rep report.Report) error {
	raw, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func LoadReport(path string) (report.Report, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return report.Report{}, fmt.Errorf("read report: %w", err)
	}
	var rep report.Report
	if err := json.Unmarshal(raw, &rep); err != nil {
		return report.Report{}, fmt.Errorf("decode report: %w", err)
	}
	return rep, nil
}

func titleHash(title string) string {
	trimmed := strings.TrimSpace(strings.ToLower(title))
	sum := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(sum[:])[:12]
}

func sanitizeSourceName(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.ReplaceAll(base, "..", "")
}
