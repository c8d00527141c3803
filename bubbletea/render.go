package bubbletea

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fwojciec/diffscope"
	"github.com/fwojciec/diffscope/viewer"
	"github.com/fwojciec/diffscope/worddiff"
)

const (
	// minGutterWidth is the minimum width of each line number column.
	minGutterWidth = 4
	// tabWidth is the number of columns per tab stop.
	tabWidth = 8
)

// bodyView renders the diff area above the status bar.
func (m Model) bodyView() string {
	diff := m.session.Diff()

	switch m.session.Phase() {
	case viewer.PhaseEmpty, viewer.PhaseLoading:
		if diff == nil {
			return m.fillHeight(m.spin.View() + " computing diff…")
		}
	case viewer.PhaseError:
		if diff == nil {
			return m.fillHeight(m.errorText())
		}
	}

	if diff.IsBinary {
		style := m.styleFor(m.styles.Binary)
		return m.fillHeight(style.Render(fmt.Sprintf("%s: binary file, diff not shown", diff.Path())))
	}
	if diff.IsEmpty() {
		return m.fillHeight(m.styleFor(m.styles.Context).Render("no changes"))
	}

	rows := m.session.Window()
	lines := make([]string, 0, len(rows))
	gutterWidth := calculateGutterWidth(diff)
	for _, row := range rows {
		lines = append(lines, m.renderRow(diff, row, gutterWidth))
	}
	return m.padHeight(strings.Join(lines, "\n"), len(lines))
}

// errorText renders a short, specific failure message. Content-too-large
// failures name the limit that was exceeded.
func (m Model) errorText() string {
	err := m.session.Err()
	if err == nil {
		return ""
	}
	var tooLarge *diffscope.ContentTooLargeError
	if errors.As(err, &tooLarge) {
		return fmt.Sprintf("diff failed: %v (raise the size limit to view this file)", err)
	}
	return "diff failed: " + err.Error()
}

func (m Model) renderRow(diff *diffscope.FileDiff, row viewer.Row, gutterWidth int) string {
	hunk := &diff.Hunks[row.HunkIndex]

	switch row.Kind {
	case viewer.RowHunkHeader:
		return m.renderHunkHeader(hunk, row.HunkIndex)
	case viewer.RowPair:
		return m.renderPairRow(hunk, row, gutterWidth)
	default:
		return m.renderUnifiedLine(hunk.Lines[row.LineIndex], gutterWidth)
	}
}

func (m Model) renderHunkHeader(hunk *diffscope.Hunk, hunkIndex int) string {
	header := hunk.Header
	if hunk.Section != "" {
		header += " " + hunk.Section
	}
	if hunkIndex == m.session.SelectedHunk() {
		return m.styleFor(m.styles.Selected).Render("▌ ") + m.styleFor(m.styles.HunkHeader).Render(header)
	}
	return "  " + m.styleFor(m.styles.HunkHeader).Render(header)
}

// renderUnifiedLine renders one line for the unified and inline layouts:
// both line numbers, a +/-/space prefix, and the content.
func (m Model) renderUnifiedLine(line diffscope.Line, gutterWidth int) string {
	gutterStyle, lineStyle, highlightStyle := m.lineStyles(line.Type)

	var sb strings.Builder
	if m.session.Config().ShowLineNumbers {
		sb.WriteString(gutterStyle.Render(formatGutter(line.OldLineNum, line.NewLineNum, gutterWidth)))
	}
	sb.WriteString(lineStyle.Render(linePrefixFor(line.Type)))
	sb.WriteString(m.renderContent(line, lineStyle, highlightStyle))
	return sb.String()
}

// renderPairRow renders one side-by-side row: the old side on the left,
// the new side on the right.
func (m Model) renderPairRow(hunk *diffscope.Hunk, row viewer.Row, gutterWidth int) string {
	colWidth := (m.width - 1) / 2
	if colWidth < 1 {
		colWidth = 1
	}
	left := m.renderCell(hunk, row.Left, gutterWidth, colWidth, true)
	right := m.renderCell(hunk, row.Right, gutterWidth, colWidth, false)
	return left + " " + right
}

// renderCell renders one column of a side-by-side row. lineIndex -1 is a
// blank cell balancing an unpaired insertion or deletion.
func (m Model) renderCell(hunk *diffscope.Hunk, lineIndex, gutterWidth, colWidth int, oldSide bool) string {
	if lineIndex < 0 {
		return strings.Repeat(" ", colWidth)
	}
	line := hunk.Lines[lineIndex]
	_, lineStyle, highlightStyle := m.lineStyles(line.Type)

	num := line.NewLineNum
	if oldSide {
		num = line.OldLineNum
	}

	var sb strings.Builder
	used := 0
	if m.session.Config().ShowLineNumbers {
		gutter := formatLineNum(num, gutterWidth) + " "
		sb.WriteString(m.styleFor(m.styles.LineNumber).Render(gutter))
		used += lipgloss.Width(gutter)
	}
	prefix := linePrefixFor(line.Type)
	sb.WriteString(lineStyle.Render(prefix))
	used++

	content := m.expandContent(line.Content)
	content = truncateTo(content, colWidth-used)
	spans := worddiff.SplitSpans(line.Content, line.Highlights)
	if len(line.Highlights) > 0 && !m.session.Config().ShowWhitespace {
		sb.WriteString(m.renderSegments(spans, lineStyle, highlightStyle, colWidth-used))
	} else {
		sb.WriteString(lineStyle.Render(padTo(content, colWidth-used)))
	}
	return sb.String()
}

// renderContent renders a line's content with word-level highlights when
// present, syntax tokens when available, and plain styling otherwise.
func (m Model) renderContent(line diffscope.Line, lineStyle, highlightStyle lipgloss.Style) string {
	content := m.expandContent(line.Content)

	// Highlight spans are byte offsets into the raw content; whitespace
	// markers shift offsets, so visible-whitespace mode renders plain.
	if len(line.Highlights) > 0 && !m.session.Config().ShowWhitespace {
		segs := worddiff.SplitSpans(line.Content, line.Highlights)
		return m.renderSegments(segs, lineStyle, highlightStyle, 0)
	}

	if m.tokenizer != nil && m.language != "" && !m.session.Config().ShowWhitespace {
		if tokens := m.tokenizer.TokenizeLine(line.Content, m.language); len(tokens) > 0 {
			return m.renderTokens(tokens, line.Type)
		}
	}

	return lineStyle.Render(content)
}

// renderSegments renders word-diff segments, changed ones in the
// highlight style. A positive width pads the remainder in the base style.
func (m Model) renderSegments(segs []diffscope.Segment, baseStyle, highlightStyle lipgloss.Style, width int) string {
	var sb strings.Builder
	used := 0
	for _, seg := range segs {
		text := ExpandTabs(seg.Text, used)
		if width > 0 {
			text = truncateTo(text, width-used)
		}
		if seg.Changed {
			sb.WriteString(highlightStyle.Render(text))
		} else {
			sb.WriteString(baseStyle.Render(text))
		}
		used += lipgloss.Width(text)
	}
	if width > used {
		sb.WriteString(baseStyle.Render(strings.Repeat(" ", width-used)))
	}
	return sb.String()
}

// renderTokens renders syntax tokens with the diff background of the
// line's type.
func (m Model) renderTokens(tokens []diffscope.Token, lineType diffscope.LineType) string {
	var background string
	switch lineType {
	case diffscope.LineAdded:
		background = m.styles.Added.Background
	case diffscope.LineDeleted:
		background = m.styles.Deleted.Background
	}

	var sb strings.Builder
	col := 0
	for _, tok := range tokens {
		pair := m.tokenColors(tok.Kind, lineType)
		pair.Background = background
		text := ExpandTabs(tok.Text, col)
		sb.WriteString(m.styleFor(pair).Render(text))
		col += lipgloss.Width(text)
	}
	return sb.String()
}

// tokenColors maps a token kind onto theme colors. Plain tokens inherit
// the diff coloring of their line.
func (m Model) tokenColors(kind diffscope.TokenKind, lineType diffscope.LineType) diffscope.ColorPair {
	switch kind {
	case diffscope.TokenKeyword:
		return m.styles.Keyword
	case diffscope.TokenString:
		return m.styles.String
	case diffscope.TokenComment:
		return m.styles.Comment
	}
	switch lineType {
	case diffscope.LineAdded:
		return m.styles.Added
	case diffscope.LineDeleted:
		return m.styles.Deleted
	default:
		return m.styles.Context
	}
}

func (m Model) lineStyles(t diffscope.LineType) (gutter, line, highlight lipgloss.Style) {
	switch t {
	case diffscope.LineAdded:
		return m.styleFor(m.styles.LineNumber), m.styleFor(m.styles.Added), m.styleFor(m.styles.AddedHighlight)
	case diffscope.LineDeleted:
		return m.styleFor(m.styles.LineNumber), m.styleFor(m.styles.Deleted), m.styleFor(m.styles.DeletedHighlight)
	default:
		return m.styleFor(m.styles.LineNumber), m.styleFor(m.styles.Context), m.styleFor(m.styles.Context)
	}
}

// expandContent expands tabs, and marks tabs and trailing spaces when
// visible whitespace is on.
func (m Model) expandContent(s string) string {
	if !m.session.Config().ShowWhitespace {
		return ExpandTabs(s, 0)
	}
	marked := ExpandTabsVisible(s, 0)
	trimmed := strings.TrimRight(marked, " ")
	if n := len(marked) - len(trimmed); n > 0 {
		marked = trimmed + strings.Repeat("·", n)
	}
	return marked
}

// statusBarView renders the bottom bar: path, stats, mode, hunk position,
// and either a transient message, a loading spinner, or an error.
func (m Model) statusBarView() string {
	barStyle := m.styleFor(m.styles.StatusBar)

	var parts []string
	if diff := m.session.Diff(); diff != nil {
		parts = append(parts, diff.Path())
		parts = append(parts, diffscope.FormatStats(diff.Stats))
		parts = append(parts, m.session.Config().DisplayMode.String())
		if n := len(diff.Hunks); n > 0 {
			parts = append(parts, fmt.Sprintf("hunk %d/%d", m.session.SelectedHunk()+1, n))
		}
	}

	switch {
	case m.session.Phase() == viewer.PhaseLoading:
		parts = append(parts, m.spin.View()+"loading")
	case m.session.Phase() == viewer.PhaseError:
		parts = append(parts, m.errorText())
	case m.statusMsg != "":
		parts = append(parts, m.statusMsg)
	}
	parts = append(parts, "? help")

	content := " " + strings.Join(parts, " │ ")
	return barStyle.Render(padTo(content, m.width))
}

// helpView renders the key binding reference shown by the help toggle.
func (m Model) helpView() string {
	bindings := []struct{ keys, desc string }{
		{"j/k, ↓/↑", "scroll"},
		{"ctrl+d/ctrl+u", "half page down/up"},
		{"g/G", "go to top/bottom"},
		{"n/p", "next/previous hunk"},
		{"m", "cycle display mode"},
		{"l", "toggle line numbers"},
		{"w", "toggle whitespace"},
		{"W", "toggle word wrap"},
		{"y", "yank diff to clipboard"},
		{"r", "reload"},
		{"?", "close help"},
		{"q", "quit"},
	}

	keyStyle := m.styleFor(m.styles.HunkHeader)
	var sb strings.Builder
	sb.WriteString("\n")
	for _, b := range bindings {
		fmt.Fprintf(&sb, "  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-14s", b.keys)), b.desc)
	}
	return m.padHeight(sb.String(), len(bindings)+2)
}

// fillHeight centers nothing fancy: it places content at the top and pads
// the remaining body rows so the status bar stays on the last line.
func (m Model) fillHeight(content string) string {
	return m.padHeight(content, strings.Count(content, "\n")+1)
}

func (m Model) padHeight(content string, lines int) string {
	want := m.height - statusBarHeight
	if lines >= want {
		return content
	}
	return content + strings.Repeat("\n", want-lines)
}

func (m Model) styleFor(cp diffscope.ColorPair) lipgloss.Style {
	var style lipgloss.Style
	if m.renderer != nil {
		style = m.renderer.NewStyle()
	} else {
		style = lipgloss.NewStyle()
	}
	if cp.Foreground != "" {
		style = style.Foreground(lipgloss.Color(cp.Foreground))
	}
	if cp.Background != "" {
		style = style.Background(lipgloss.Color(cp.Background))
	}
	return style
}

// calculateGutterWidth determines the line number column width from the
// largest line number in the diff.
func calculateGutterWidth(diff *diffscope.FileDiff) int {
	maxLineNum := 0
	for _, hunk := range diff.Hunks {
		for _, line := range hunk.Lines {
			if line.OldLineNum > maxLineNum {
				maxLineNum = line.OldLineNum
			}
			if line.NewLineNum > maxLineNum {
				maxLineNum = line.NewLineNum
			}
		}
	}
	width := digitWidth(maxLineNum)
	if width < minGutterWidth {
		return minGutterWidth
	}
	return width
}

// formatGutter formats the two-number gutter for unified layouts. Missing
// numbers render as empty space.
func formatGutter(oldLineNum, newLineNum, width int) string {
	return fmt.Sprintf("%s %s ", formatLineNum(oldLineNum, width), formatLineNum(newLineNum, width))
}

// formatLineNum right-aligns a line number, or returns empty space for
// zero (missing) numbers.
func formatLineNum(num, width int) string {
	if num == 0 {
		return fmt.Sprintf("%*s", width, "")
	}
	return fmt.Sprintf("%*d", width, num)
}

// linePrefixFor returns the unified-diff prefix for a line type.
func linePrefixFor(lineType diffscope.LineType) string {
	switch lineType {
	case diffscope.LineAdded:
		return "+"
	case diffscope.LineDeleted:
		return "-"
	default:
		return " "
	}
}

// padTo pads a string with spaces to the given display width.
func padTo(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// truncateTo cuts a plain string to the given display width.
func truncateTo(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	var sb strings.Builder
	w := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if w+rw > width {
			break
		}
		sb.WriteRune(r)
		w += rw
	}
	return sb.String()
}

// digitWidth returns the number of digits needed to display n.
func digitWidth(n int) int {
	if n <= 0 {
		return 1
	}
	width := 0
	for n > 0 {
		width++
		n /= 10
	}
	return width
}
