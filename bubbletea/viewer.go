// Package bubbletea provides a terminal UI for diffs using the Bubble Tea
// framework. The Model owns a viewer.Session and drives it from key
// events; diff computation runs off the update loop and returns through a
// generation-tagged message, so a slow stale load can never overwrite a
// newer result.
package bubbletea

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fwojciec/diffscope"
	"github.com/fwojciec/diffscope/unidiff"
	"github.com/fwojciec/diffscope/viewer"
)

// statusBarHeight is the number of terminal rows reserved below the diff.
const statusBarHeight = 1

// Source supplies the two buffers for a load. Load runs off the update
// loop, so it may do file or git I/O.
type Source struct {
	Path string
	Load func(ctx context.Context) (oldContent, newContent string, err error)
}

// StaticSource returns a Source over two fixed buffers.
func StaticSource(oldContent, newContent, path string) Source {
	return Source{
		Path: path,
		Load: func(context.Context) (string, string, error) {
			return oldContent, newContent, nil
		},
	}
}

// computedMsg delivers the outcome of one load. The generation ties it to
// the BeginLoad call that started it.
type computedMsg struct {
	gen  uint64
	diff *diffscope.FileDiff
	err  error
}

// sourceChangedMsg signals that a watched input changed on disk.
type sourceChangedMsg struct{}

// Model is the Bubble Tea model for viewing diffs.
type Model struct {
	engine  diffscope.Engine
	session *viewer.Session
	source  Source

	detector  diffscope.LanguageDetector
	tokenizer diffscope.Tokenizer
	copier    diffscope.Copier

	styles   diffscope.Styles
	renderer *lipgloss.Renderer
	keymap   KeyMap
	spin     spinner.Model

	watch <-chan struct{}

	language  string
	statusMsg string
	showHelp  bool
	width     int
	height    int
	ready     bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithRenderer sets a custom lipgloss renderer for the model.
func WithRenderer(r *lipgloss.Renderer) ModelOption {
	return func(m *Model) {
		m.renderer = r
	}
}

// WithTheme sets the theme for the model.
func WithTheme(t diffscope.Theme) ModelOption {
	return func(m *Model) {
		m.styles = t.Styles()
	}
}

// WithSyntax sets the language detector and tokenizer for syntax
// highlighting.
func WithSyntax(d diffscope.LanguageDetector, t diffscope.Tokenizer) ModelOption {
	return func(m *Model) {
		m.detector = d
		m.tokenizer = t
	}
}

// WithCopier enables yanking the diff to the system clipboard.
func WithCopier(c diffscope.Copier) ModelOption {
	return func(m *Model) {
		m.copier = c
	}
}

// WithWatch reloads the source whenever the channel signals. The channel
// is typically fed by an fs.Watcher.
func WithWatch(ch <-chan struct{}) ModelOption {
	return func(m *Model) {
		m.watch = ch
	}
}

// NewModel creates a model over an engine, a session, and a source.
func NewModel(engine diffscope.Engine, session *viewer.Session, source Source, opts ...ModelOption) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	m := Model{
		engine:  engine,
		session: session,
		source:  source,
		keymap:  DefaultKeyMap(),
		spin:    sp,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Session exposes the underlying session for tests and embedding callers.
func (m Model) Session() *viewer.Session {
	return m.session
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.loadCmd(), m.watchCmd())
}

// loadCmd starts one load: it bumps the session's generation now, on the
// update loop, and computes in the background.
func (m Model) loadCmd() tea.Cmd {
	gen := m.session.BeginLoad()
	engine := m.engine
	source := m.source
	return func() tea.Msg {
		oldContent, newContent, err := source.Load(context.Background())
		if err != nil {
			return computedMsg{gen: gen, err: err}
		}
		diff, err := engine.Compute(context.Background(), oldContent, newContent, source.Path)
		return computedMsg{gen: gen, diff: diff, err: err}
	}
}

func (m Model) watchCmd() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	ch := m.watch
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return sourceChangedMsg{}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.session.SetLinesPerPage(msg.Height - statusBarHeight)
		m.ready = true
		return m, nil

	case computedMsg:
		if applied := m.session.Apply(msg.gen, msg.diff, msg.err); applied && m.session.Phase() == viewer.PhaseReady {
			m.language = m.detectLanguage()
		}
		return m, nil

	case sourceChangedMsg:
		m.statusMsg = "source changed, reloading"
		return m, tea.Batch(m.loadCmd(), m.watchCmd())

	case spinner.TickMsg:
		if m.session.Phase() != viewer.PhaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Up):
		m.session.ScrollUp(1)
	case key.Matches(msg, m.keymap.Down):
		m.session.ScrollDown(1)
	case key.Matches(msg, m.keymap.HalfPageUp):
		m.session.ScrollUp(m.session.Config().LinesPerPage / 2)
	case key.Matches(msg, m.keymap.HalfPageDown):
		m.session.ScrollDown(m.session.Config().LinesPerPage / 2)
	case key.Matches(msg, m.keymap.GotoTop):
		m.session.ScrollTo(0)
	case key.Matches(msg, m.keymap.GotoBottom):
		m.session.ScrollTo(m.session.TotalRows())
	case key.Matches(msg, m.keymap.NextHunk):
		m.session.NextHunk()
	case key.Matches(msg, m.keymap.PrevHunk):
		m.session.PrevHunk()
	case key.Matches(msg, m.keymap.ToggleMode):
		mode := m.session.ToggleDisplayMode()
		m.statusMsg = mode.String()
	case key.Matches(msg, m.keymap.ToggleLineNumbers):
		m.session.ToggleLineNumbers()
	case key.Matches(msg, m.keymap.ToggleWhitespace):
		m.session.ToggleWhitespace()
	case key.Matches(msg, m.keymap.ToggleWrap):
		m.session.ToggleWordWrap()
	case key.Matches(msg, m.keymap.Yank):
		m.yank()
	case key.Matches(msg, m.keymap.Reload):
		return m, tea.Batch(m.loadCmd(), m.spin.Tick)
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) yank() {
	diff := m.session.Diff()
	if diff == nil {
		return
	}
	if m.copier == nil {
		m.statusMsg = "no clipboard available"
		return
	}
	if err := m.copier.Copy(unidiff.Format(diff)); err != nil {
		m.statusMsg = "yank failed: " + err.Error()
		return
	}
	m.statusMsg = "yanked diff to clipboard"
}

func (m Model) detectLanguage() string {
	if m.detector == nil {
		return ""
	}
	diff := m.session.Diff()
	if diff == nil {
		return ""
	}
	return m.detector.DetectLanguage(diff.Path())
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return lipgloss.JoinVertical(lipgloss.Left, m.helpView(), m.statusBarView())
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.bodyView(), m.statusBarView())
}

// Run displays the model and blocks until the user exits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
