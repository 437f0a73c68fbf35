package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"stylemirror/internal/config"
	"stylemirror/internal/db"
	"stylemirror/internal/ingest"
	"stylemirror/internal/logger"
	"stylemirror/internal/report"
	"stylemirror/internal/rewrite"
	"stylemirror/internal/workspace"
)

type options struct {
	sample    string
	draft     string
	rewritten string
	title     string
	out       string
	noDB      bool
	history   int
	quiet     bool
}

func main() {
	var opts options
	flag.StringVar(&opts.sample, "sample", "", "path to the style sample (.txt, .md, .docx, .pdf)")
	flag.StringVar(&opts.draft, "draft", "", "path to the draft to analyze")
	flag.StringVar(&opts.rewritten, "rewritten", "", "path to an existing rewrite; when empty the draft is rewritten by the configured LLM")
	flag.StringVar(&opts.title, "title", "", "project title (defaults to the draft file name)")
	flag.StringVar(&opts.out, "out", "", "write the report JSON here instead of stdout")
	flag.BoolVar(&opts.noDB, "no-db", false, "skip recording the run in the history database")
	flag.IntVar(&opts.history, "history", 0, "list the N most recent runs and exit")
	flag.BoolVar(&opts.quiet, "quiet", false, "only log to the log file")
	flag.Parse()

	cfg, foundEnv, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "stylemirror: load config: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.App.LogFile), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create log dir: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.App.LogFile, cfg.IsProd(), opts.quiet)
	defer func() { _ = log.Sync() }()
	if foundEnv {
		log.Log(logger.LevelInfo, "CONFIG", "Loaded .env", "")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, log); err != nil {
		log.Log(logger.LevelError, "CLI", "Run failed", err.Error())
		fmt.Fprintf(os.Stderr, "stylemirror: %v\n", err)
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, opts options, log logger.Logger) error {
	if opts.history > 0 {
		return printHistory(cfg.App.DBPath, opts.history)
	}
	if opts.sample == "" || opts.draft == "" {
		flag.Usage()
		return errors.New("-sample and -draft are required")
	}

	root, err := workspace.EnsureAt(cfg.App.Workspace)
	if err != nil {
		return fmt.Errorf("workspace initialization failed: %w", err)
	}

	sample, err := ingest.ParseFile(opts.sample)
	if err != nil {
		return fmt.Errorf("sample: %w", err)
	}
	draft, err := ingest.ParseFile(opts.draft)
	if err != nil {
		return fmt.Errorf("draft: %w", err)
	}
	title := opts.title
	if title == "" {
		title = draft.Title
	}
	log.Log(logger.LevelInfo, "INGEST", "Inputs loaded", fmt.Sprintf("title=%s sample_format=%s draft_format=%s", title, sample.Format, draft.Format))

	project, err := workspace.CreateProject(root, title)
	if err != nil {
		return err
	}
	for role, path := range map[string]string{workspace.RoleSample: opts.sample, workspace.RoleDraft: opts.draft} {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", role, err)
		}
		if _, err := project.SaveSource(role, path, raw); err != nil {
			return err
		}
	}

	standard, err := standardText(ctx, cfg, opts, sample.Text, draft.Text, project, log)
	if err != nil {
		return err
	}

	acfg := report.DefaultConfig()
	acfg.Weights = cfg.Weights
	rep, err := report.NewAnalyzer(acfg, log).Analyze(ctx, report.Input{
		Sample:   sample.Text,
		Draft:    draft.Text,
		Standard: standard,
	})
	if err != nil {
		return err
	}

	if err := workspace.SaveReport(project.ReportPath, rep); err != nil {
		return err
	}
	if !opts.noDB {
		if err := os.MkdirAll(filepath.Dir(cfg.App.DBPath), 0o755); err != nil {
			return fmt.Errorf("create db dir: %w", err)
		}
		if err := db.PersistReport(cfg.App.DBPath, title, rep); err != nil {
			return err
		}
	}
	log.Log(logger.LevelInfo, "CLI", "Report saved", fmt.Sprintf("run_id=%s project=%s", rep.RunID, project.Root))

	return writeReport(opts.out, rep)
}

// standardText returns the rewritten text: read from -rewritten when given,
// otherwise produced by the configured LLM and stored in the project.
func standardText(ctx context.Context, cfg config.Config, opts options, sample, draft string, project *workspace.ProjectInfo, log logger.Logger) (string, error) {
	if opts.rewritten != "" {
		parsed, err := ingest.ParseFile(opts.rewritten)
		if err != nil {
			return "", fmt.Errorf("rewritten: %w", err)
		}
		raw, err := os.ReadFile(opts.rewritten)
		if err != nil {
			return "", fmt.Errorf("read rewritten: %w", err)
		}
		if _, err := project.SaveSource(workspace.RoleStandard, opts.rewritten, raw); err != nil {
			return "", err
		}
		return parsed.Text, nil
	}

	client, err := rewrite.NewClient(rewrite.Settings{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
	})
	if err != nil {
		return "", err
	}
	rw, err := rewrite.NewRewriter(client, rewrite.Options{
		Workers:      cfg.Rewrite.Workers,
		ChunkChars:   cfg.Rewrite.ChunkChars,
		ContextChars: cfg.Rewrite.ContextChars,
		Timeout:      cfg.LLM.Timeout,
	}, log)
	if err != nil {
		return "", err
	}
	res, err := rw.Rewrite(ctx, sample, draft)
	if err != nil {
		return "", err
	}
	for variant, text := range map[string]string{
		"conservative": res.Document.Conservative,
		"standard":     res.Document.Standard,
		"enhanced":     res.Document.Enhanced,
	} {
		if _, err := project.SaveRewrite(variant, text); err != nil {
			return "", err
		}
	}
	return res.Document.Standard, nil
}

func writeReport(path string, rep report.Report) error {
	raw, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if path == "" {
		_, err = fmt.Println(string(raw))
		return err
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func printHistory(dbPath string, limit int) error {
	runs, err := db.RecentRuns(dbPath, limit)
	if err != nil {
		return err
	}
	for _, r := range runs {
		improvement := "-"
		if r.Improvement != nil {
			improvement = fmt.Sprintf("%+.1f", *r.Improvement)
		}
		fmt.Printf("%s  %s  %-11s  %6s  %s\n", r.GeneratedAt.Local().Format("2006-01-02 15:04"), r.ID, r.Status, improvement, r.Title)
	}
	return nil
}
