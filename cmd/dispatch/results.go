package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/randomizedcoder/static-vs-dynamic/internal/baseline"
	"github.com/randomizedcoder/static-vs-dynamic/internal/dispatch"
	"github.com/randomizedcoder/static-vs-dynamic/internal/report"
)

// selectModes expands the --mode flag.
func selectModes(s string) ([]dispatch.Mode, error) {
	if s == "" || s == "both" {
		return dispatch.Modes, nil
	}
	m, err := dispatch.ParseMode(s)
	if err != nil {
		return nil, err
	}
	return []dispatch.Mode{m}, nil
}

// publish renders each summary against its latest baseline, prints the
// dynamic to static ratio when both are present, and optionally saves the
// run.
func (a *app) publish(w io.Writer, label string, summaries []report.Summary, save bool) error {
	store, err := baseline.NewFileStore(a.cfg.Baseline.File)
	if err != nil {
		return err
	}

	byMode := make(map[dispatch.Mode]report.Summary, len(summaries))
	for _, s := range summaries {
		prev, found, err := store.Latest(s.Name)
		if err != nil {
			return err
		}
		var change *report.Change
		if found {
			c := report.Compare(prev, s, a.cfg.Baseline.Noise)
			change = &c
		}

		if err := report.Render(w, s, change); err != nil {
			return fmt.Errorf("render %s: %w", s.Name, err)
		}
		fmt.Fprintln(w)

		if mode, ok := modeOf(label, s.Name); ok {
			byMode[mode] = s
		}
	}

	static, okS := byMode[dispatch.ModeStatic]
	dynamic, okD := byMode[dispatch.ModeDynamic]
	if okS && okD {
		fmt.Fprintf(w, "dynamic/static: %.3fx\n", report.Ratio(static, dynamic))
	}

	if !save {
		return nil
	}
	run := baseline.Run{
		Timestamp: time.Now().UTC(),
		Label:     label,
		Summaries: summaries,
	}
	if err := store.Save(run); err != nil {
		return err
	}
	slog.Info("baseline saved", "path", store.Path(), "label", label, "summaries", len(summaries))
	return nil
}

// summaryName names the summary for mode under label.
func summaryName(label string, mode dispatch.Mode) string {
	if label == labelLoad {
		return "http_" + mode.BenchmarkName()
	}
	return mode.BenchmarkName()
}

func modeOf(label, name string) (dispatch.Mode, bool) {
	for _, m := range dispatch.Modes {
		if summaryName(label, m) == name {
			return m, true
		}
	}
	return "", false
}
