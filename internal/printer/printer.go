// Package printer sends text documents to a physical or virtual printer.
// A document is one page with one line per row, set in a fixed pitch font.
package printer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jith-01/Billing-Software-amd/internal/model"
)

type Printer interface {
	Print(ctx context.Context, job Job) error
}

type Job struct {
	ID    string
	Title string
	Lines []string
}

// NewJob splits text into lines and gives the job a fresh id.
func NewJob(title, text string) Job {
	return Job{
		ID:    uuid.NewString(),
		Title: title,
		Lines: strings.Split(strings.TrimRight(text, "\n"), "\n"),
	}
}

func (j Job) empty() bool {
	for _, l := range j.Lines {
		if strings.TrimSpace(l) != "" {
			return false
		}
	}
	return true
}

type Config struct {
	Backend  string // lp or spool
	Name     string
	SpoolDir string
	Layout   Layout
}

func New(cfg Config) (Printer, error) {
	layout := cfg.Layout.withDefaults()
	switch strings.ToLower(cfg.Backend) {
	case "", "lp":
		return &LP{Name: cfg.Name, Layout: layout}, nil
	case "spool":
		if cfg.SpoolDir == "" {
			return nil, fmt.Errorf("printer: spool backend needs a spool dir")
		}
		return &Spool{Dir: cfg.SpoolDir, Layout: layout}, nil
	}
	return nil, fmt.Errorf("printer: unknown backend %q", cfg.Backend)
}

func checkJob(job Job) error {
	if job.empty() {
		return model.ErrNothingToPrint
	}
	return nil
}
