package printer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// LP hands documents to the CUPS lp command. An empty Name prints to the
// system default printer.
type LP struct {
	Name    string
	Layout  Layout
	Command string // defaults to lp
}

func (p *LP) Print(ctx context.Context, job Job) error {
	if err := checkJob(job); err != nil {
		return err
	}

	command := p.Command
	if command == "" {
		command = "lp"
	}
	args := []string{}
	if p.Name != "" {
		args = append(args, "-d", p.Name)
	}
	if job.Title != "" {
		args = append(args, "-t", job.Title)
	}

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stdin = bytes.NewReader(PostScript(job, p.Layout))
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("print job %s: %w: %s", job.ID, err, msg)
		}
		return fmt.Errorf("print job %s: %w", job.ID, err)
	}
	return nil
}

// Spool writes each document as <id>.ps into Dir, for virtual printers
// and print-to-file setups.
type Spool struct {
	Dir    string
	Layout Layout
}

func (p *Spool) Print(ctx context.Context, job Job) error {
	if err := checkJob(job); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return fmt.Errorf("spool dir: %w", err)
	}

	path := filepath.Join(p.Dir, job.ID+".ps")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, PostScript(job, p.Layout), 0o644); err != nil {
		return fmt.Errorf("spool job %s: %w", job.ID, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("spool job %s: %w", job.ID, err)
	}
	return nil
}
