// Command diffstat prints change statistics for a diff without opening
// the viewer. Files are ordered by a complexity score so the parts that
// deserve the most review attention come first.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/fwojciec/diffscope"
	"github.com/fwojciec/diffscope/engine"
	"github.com/fwojciec/diffscope/fs"
	"github.com/fwojciec/diffscope/git"
	"github.com/fwojciec/diffscope/gitdiff"
	"github.com/fwojciec/diffscope/worddiff"
)

const usage = `Usage:
  diffstat OLD NEW        compare two files
  diffstat --git REV      stat repository changes against REV
  git diff | diffstat     stat a piped patch

Flags:
`

// ErrNoInput is returned when no files, revision, or piped patch is given.
var ErrNoInput = errors.New("no input: pass two files, --git, or pipe a patch")

// App gathers a diff from one of the input modes and reports on it.
type App struct {
	Args   []string  // Positional file arguments
	GitRev string    // Revision for git mode, "HEAD" compares the working tree
	GitSet bool      // Whether git mode was requested at all
	Stdin  io.Reader // Piped patch input; nil when stdin is a terminal
	JSON   bool      // Emit machine-readable output
	Out    io.Writer

	Engine diffscope.Engine
	Runner diffscope.Runner
	Parser diffscope.Parser
}

// Run collects the diff and prints the report.
func (a *App) Run(ctx context.Context) error {
	diff, err := a.collect(ctx)
	if err != nil {
		return err
	}
	if len(diff.Files) == 0 {
		return diffscope.ErrNoChanges
	}

	// Highest complexity first; ties keep patch order.
	sort.SliceStable(diff.Files, func(i, j int) bool {
		return diffscope.Complexity(&diff.Files[i]) > diffscope.Complexity(&diff.Files[j])
	})

	if a.JSON {
		return a.printJSON(diff)
	}
	return a.printText(diff)
}

func (a *App) collect(ctx context.Context) (*diffscope.Diff, error) {
	switch {
	case a.GitSet:
		rev := a.GitRev
		if rev == "HEAD" {
			rev = ""
		}
		text, err := a.Runner.Diff(ctx, ".", rev)
		if err != nil {
			return nil, err
		}
		return a.Parser.Parse(strings.NewReader(text))

	case len(a.Args) == 2:
		contents, err := fs.LoadFiles(ctx, a.Args[0], a.Args[1])
		if err != nil {
			return nil, err
		}
		fd, err := a.Engine.Compute(ctx, contents[0], contents[1], a.Args[1])
		if err != nil {
			return nil, err
		}
		return &diffscope.Diff{Files: []diffscope.FileDiff{*fd}}, nil

	case len(a.Args) == 0 && a.Stdin != nil:
		return a.Parser.Parse(a.Stdin)

	default:
		return nil, ErrNoInput
	}
}

func (a *App) printText(diff *diffscope.Diff) error {
	var total diffscope.Stats
	for i := range diff.Files {
		fd := &diff.Files[i]
		added, deleted := fd.LineCounts()
		total.LinesAdded += added
		total.LinesDeleted += deleted
		total.FilesChanged++
		fmt.Fprintf(a.Out, "%4d  %s\n", diffscope.Complexity(fd), diffscope.Summarize(fd))
	}
	fmt.Fprintln(a.Out, diffscope.FormatStats(total))
	return nil
}

// fileReport is the per-file record of the JSON output.
type fileReport struct {
	Path       string `json:"path"`
	Status     string `json:"status"`
	Binary     bool   `json:"binary,omitempty"`
	Added      int    `json:"added"`
	Deleted    int    `json:"deleted"`
	Hunks      int    `json:"hunks"`
	Complexity int    `json:"complexity"`
}

type report struct {
	Files        []fileReport `json:"files"`
	LinesAdded   int          `json:"lines_added"`
	LinesDeleted int          `json:"lines_deleted"`
	FilesChanged int          `json:"files_changed"`
}

func (a *App) printJSON(diff *diffscope.Diff) error {
	rep := report{Files: make([]fileReport, 0, len(diff.Files))}
	for i := range diff.Files {
		fd := &diff.Files[i]
		added, deleted := fd.LineCounts()
		rep.Files = append(rep.Files, fileReport{
			Path:       fd.Path(),
			Status:     fd.Status.String(),
			Binary:     fd.IsBinary,
			Added:      added,
			Deleted:    deleted,
			Hunks:      len(fd.Hunks),
			Complexity: diffscope.Complexity(fd),
		})
		rep.LinesAdded += added
		rep.LinesDeleted += deleted
		rep.FilesChanged++
	}
	enc := json.NewEncoder(a.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func main() {
	if err := run(); err != nil {
		if errors.Is(err, diffscope.ErrNoChanges) {
			fmt.Fprintln(os.Stderr, "no changes")
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		gitRev   = flag.String("git", "", "diff the working tree against REV (default HEAD)")
		jsonOut  = flag.Bool("json", false, "emit JSON instead of text")
		contextN = flag.Int("context", engine.DefaultConfig().ContextLines, "context lines around changes")
	)
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	gitSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "git" {
			gitSet = true
		}
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := engine.DefaultConfig()
	cfg.ContextLines = *contextN

	app := &App{
		Args:   flag.Args(),
		GitRev: *gitRev,
		GitSet: gitSet,
		Stdin:  pipedStdin(),
		JSON:   *jsonOut,
		Out:    os.Stdout,
		Engine: engine.New(cfg, engine.WithWordDiffer(worddiff.NewDiffer())),
		Runner: git.NewRunner(),
		Parser: gitdiff.NewParser(),
	}

	err := app.Run(ctx)
	if errors.Is(err, ErrNoInput) {
		flag.Usage()
	}
	return err
}

// pipedStdin returns os.Stdin when it is a pipe rather than a terminal.
func pipedStdin() io.Reader {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return nil
	}
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil
	}
	return os.Stdin
}
