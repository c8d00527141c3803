package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fwojciec/diffscope"
	"github.com/fwojciec/diffscope/bubbletea"
	"github.com/fwojciec/diffscope/chroma"
	"github.com/fwojciec/diffscope/clipboard"
	"github.com/fwojciec/diffscope/config"
	"github.com/fwojciec/diffscope/engine"
	"github.com/fwojciec/diffscope/fs"
	"github.com/fwojciec/diffscope/git"
	"github.com/fwojciec/diffscope/gitdiff"
	"github.com/fwojciec/diffscope/lipgloss"
	"github.com/fwojciec/diffscope/viewer"
	"github.com/fwojciec/diffscope/worddiff"
)

const usage = `Usage:
  diffscope OLD NEW        compare two files
  diffscope --git REV      view repository changes against REV
  git diff | diffscope     view a piped patch

Flags:
`

// ErrNoInput is returned when no files, revision, or piped patch is given.
var ErrNoInput = errors.New("no input: pass two files, --git, or pipe a patch")

// App resolves one invocation into the engine and source the viewer runs
// on. Dependencies are injected so the resolution logic is testable
// without a repository or a terminal.
type App struct {
	Args   []string         // Positional file arguments
	GitRev string           // Revision for git mode, "HEAD" compares the working tree
	GitSet bool             // Whether git mode was requested at all
	Stdin  io.Reader        // Piped patch input; nil when stdin is a terminal
	File   int              // Index into a multi-file patch

	Engine diffscope.Engine // Computes two-file diffs
	Runner diffscope.Runner // Produces patch text from a repository
	Parser diffscope.Parser // Ingests patch text
}

// Resolve picks the input mode and returns the engine and source for it.
// Patch-carrying modes return an engine that serves the already parsed
// file, so reloads re-display the same result.
func (a *App) Resolve(ctx context.Context) (diffscope.Engine, bubbletea.Source, error) {
	switch {
	case a.GitSet:
		rev := a.GitRev
		if rev == "HEAD" {
			rev = ""
		}
		text, err := a.Runner.Diff(ctx, ".", rev)
		if err != nil {
			return nil, bubbletea.Source{}, err
		}
		return a.parsedSource(strings.NewReader(text))

	case len(a.Args) == 2:
		oldPath, newPath := a.Args[0], a.Args[1]
		source := bubbletea.Source{
			Path: newPath,
			Load: func(ctx context.Context) (string, string, error) {
				contents, err := fs.LoadFiles(ctx, oldPath, newPath)
				if err != nil {
					return "", "", err
				}
				return contents[0], contents[1], nil
			},
		}
		return a.Engine, source, nil

	case len(a.Args) == 0 && a.Stdin != nil:
		return a.parsedSource(a.Stdin)

	default:
		return nil, bubbletea.Source{}, ErrNoInput
	}
}

func (a *App) parsedSource(r io.Reader) (diffscope.Engine, bubbletea.Source, error) {
	diff, err := a.Parser.Parse(r)
	if err != nil {
		return nil, bubbletea.Source{}, err
	}
	if len(diff.Files) == 0 {
		return nil, bubbletea.Source{}, diffscope.ErrNoChanges
	}
	if a.File < 0 || a.File >= len(diff.Files) {
		return nil, bubbletea.Source{}, fmt.Errorf("file index %d out of range: patch has %d files", a.File, len(diff.Files))
	}
	fd := &diff.Files[a.File]
	return parsedEngine{diff: fd}, bubbletea.StaticSource("", "", fd.Path()), nil
}

// parsedEngine serves a diff that already exists, for git and stdin
// modes where the patch is the source of truth.
type parsedEngine struct {
	diff *diffscope.FileDiff
}

func (e parsedEngine) Compute(context.Context, string, string, string) (*diffscope.FileDiff, error) {
	return e.diff, nil
}

func main() {
	if err := run(); err != nil {
		if errors.Is(err, diffscope.ErrNoChanges) {
			fmt.Fprintln(os.Stderr, "no changes to display")
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "config file path (default: $XDG_CONFIG_HOME/diffscope/config.toml)")
		themeName  = flag.String("theme", "", "color theme: catppuccin-mocha, catppuccin-latte")
		algorithm  = flag.String("algorithm", "", "diff algorithm: myers, patience, histogram")
		contextN   = flag.Int("context", -1, "context lines around changes")
		gitRev     = flag.String("git", "", "diff the working tree against REV (default HEAD)")
		watch      = flag.Bool("watch", false, "reload when the input files change (two-file mode only)")
		fileIndex  = flag.Int("file", 0, "file to view in a multi-file patch, by index")
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

	path := *configPath
	if path == "" {
		path = fs.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if *themeName != "" {
		cfg.Theme = *themeName
	}
	if *algorithm != "" {
		cfg.Engine.Algorithm = *algorithm
	}
	if *contextN >= 0 {
		cfg.Engine.ContextLines = *contextN
	}
	if _, err := diffscope.ParseAlgorithm(cfg.Engine.Algorithm); err != nil {
		return err
	}

	theme, ok := lipgloss.ByName(cfg.Theme)
	if !ok {
		return fmt.Errorf("unknown theme %q", cfg.Theme)
	}

	app := &App{
		Args:   flag.Args(),
		GitRev: *gitRev,
		GitSet: gitSet,
		Stdin:  pipedStdin(),
		File:   *fileIndex,
		Engine: engine.New(cfg.EngineConfig(), engine.WithWordDiffer(worddiff.NewDiffer())),
		Runner: git.NewRunner(),
		Parser: gitdiff.NewParser(),
	}

	eng, source, err := app.Resolve(ctx)
	if err != nil {
		if errors.Is(err, ErrNoInput) {
			flag.Usage()
		}
		return err
	}

	syntaxCfg := cfg.SyntaxConfig()
	opts := []bubbletea.ModelOption{
		bubbletea.WithTheme(theme),
		bubbletea.WithSyntax(chroma.NewDetector(syntaxCfg), chroma.NewTokenizer(syntaxCfg)),
		bubbletea.WithCopier(clipboard.NewCopier()),
	}

	if *watch {
		if len(app.Args) != 2 {
			return errors.New("--watch requires two file arguments")
		}
		watcher, err := fs.Watch(fs.DefaultDebounce, app.Args[0], app.Args[1])
		if err != nil {
			return err
		}
		defer watcher.Close()
		opts = append(opts, bubbletea.WithWatch(watcher.Events()))
	}

	session := viewer.NewSession(cfg.ViewerConfig())
	m := bubbletea.NewModel(eng, session, source, opts...)
	return bubbletea.Run(ctx, m)
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
