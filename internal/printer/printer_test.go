package printer_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jith-01/Billing-Software-amd/internal/model"
	"github.com/jith-01/Billing-Software-amd/internal/printer"
)

func TestLayoutPosition(t *testing.T) {
	l := printer.Layout{LeftMargin: 100, Top: 50, LineHeight: 50, FontSize: 10}

	x0, y0 := l.Position(0)
	x1, y1 := l.Position(1)

	assert.Equal(t, 100.0, x0)
	assert.Equal(t, x0, x1)
	assert.Equal(t, 792.0-50-10, y0)
	assert.Equal(t, 50.0, y0-y1)
}

func TestPostScript(t *testing.T) {
	job := printer.Job{ID: "j1", Title: "Bill 7", Lines: []string{"Customer: Anu (card)", "", `C:\path`}}
	ps := string(printer.PostScript(job, printer.Layout{LeftMargin: 100, Top: 50, LineHeight: 50, FontSize: 10}))

	assert.True(t, strings.HasPrefix(ps, "%!PS-Adobe-3.0\n"))
	assert.Contains(t, ps, "%%Title: Bill 7\n")
	assert.Contains(t, ps, "/Courier findfont 10 scalefont setfont\n")
	assert.Contains(t, ps, "100 732 moveto (Customer: Anu \\(card\\)) show\n")
	assert.Contains(t, ps, "100 632 moveto (C:\\\\path) show\n")
	assert.Equal(t, 2, strings.Count(ps, " show\n"))
	assert.Equal(t, 1, strings.Count(ps, "showpage"))
}

func TestPostScriptStaysOnOnePage(t *testing.T) {
	lines := make([]string, 200)
	for i := range lines {
		lines[i] = "x"
	}
	ps := string(printer.PostScript(printer.Job{Lines: lines}, printer.DefaultLayout()))

	assert.Equal(t, 1, strings.Count(ps, "showpage"))
	assert.Less(t, strings.Count(ps, " show\n"), 200)
}

func TestNewJob(t *testing.T) {
	job := printer.NewJob("Receipt", "a\nb\n")
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, []string{"a", "b"}, job.Lines)
}

func TestSpool(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "spool")
	p, err := printer.New(printer.Config{Backend: "spool", SpoolDir: dir})
	require.NoError(t, err)

	job := printer.NewJob("Receipt", "----------- RECEIPT -----------\nTotal Amount: 140.00")
	require.NoError(t, p.Print(context.Background(), job))

	data, err := os.ReadFile(filepath.Join(dir, job.ID+".ps"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "(Total Amount: 140.00) show")

	err = p.Print(context.Background(), printer.NewJob("Receipt", "  \n"))
	assert.ErrorIs(t, err, model.ErrNothingToPrint)
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	_, err := printer.New(printer.Config{Backend: "fax"})
	assert.Error(t, err)

	_, err = printer.New(printer.Config{Backend: "spool"})
	assert.Error(t, err)

	p, err := printer.New(printer.Config{Name: "front-desk"})
	require.NoError(t, err)
	assert.IsType(t, &printer.LP{}, p)
}

func TestLPPipesDocument(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a posix shell")
	}
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	script := filepath.Join(dir, "fake-lp")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho \"$@\" > \""+out+".args\"\ncat > \""+out+"\"\n"), 0o755))

	p := &printer.LP{Name: "front-desk", Command: script}
	require.NoError(t, p.Print(context.Background(), printer.NewJob("Bill 3", "hello")))

	doc, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "(hello) show")

	args, err := os.ReadFile(out + ".args")
	require.NoError(t, err)
	assert.Equal(t, "-d front-desk -t Bill 3\n", string(args))
}

func TestLPReportsFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a posix shell")
	}
	script := filepath.Join(t.TempDir(), "broken-lp")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\ncat >/dev/null\necho 'lp: no such printer' >&2\nexit 1\n"), 0o755))

	p := &printer.LP{Command: script}
	err := p.Print(context.Background(), printer.NewJob("Bill", "hello"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such printer")
}
