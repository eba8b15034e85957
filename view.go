package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LFroesch/shelf/internal/header"
	"github.com/LFroesch/shelf/internal/storage"
	"github.com/LFroesch/shelf/internal/utils"
)

const (
	minColumnWidth = 24
	sizeColWidth   = 10
	timeColWidth   = 16
)

var (
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("105"))
	captionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("57")).
			Foreground(lipgloss.Color("230"))
	openedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("238")).
			Foreground(lipgloss.Color("252"))
	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

func (m *model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	width := m.getSafeWidth()

	var mainContent string
	switch {
	case m.prompt == promptError:
		mainContent = m.renderErrorDialog()
	case m.prompt == promptCreateFolder:
		mainContent = m.renderCreateFolderDialog()
	case m.header.Picking():
		mainContent = m.renderUploadPicker(width)
	case m.showHelp:
		mainContent = m.renderHelpView(width)
	case m.view == header.ViewColumns:
		mainContent = m.renderColumns(width)
	default:
		mainContent = m.renderList(width)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		mainContent,
		m.renderStatusBar(width),
	)
}

func (m *model) renderStatusBar(width int) string {
	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(lipgloss.Color("240")).
		Padding(0, 1).
		Width(width)

	var statusText string
	if vis := m.visible(); len(vis) > 0 {
		statusText = fmt.Sprintf("%d/%d", m.cursor+1, len(vis))
	}
	if m.filtering() {
		statusText += fmt.Sprintf(" | %d match(es) for %q", len(m.matches), m.searchText)
	}
	if m.showHidden {
		statusText += " | hidden shown"
	}
	if m.statusMsg != "" {
		statusText += " | " + m.statusMsg
	}
	statusText = strings.TrimPrefix(statusText, " | ")

	rightSide := m.help.ShortHelpView(m.keys.ShortHelp())

	totalWidth := width - 2 // Account for padding
	padding := totalWidth - lipgloss.Width(statusText) - lipgloss.Width(rightSide)
	if padding < 1 {
		// Drop the hints before the status
		rightSide = ""
		padding = 1
	}
	return statusStyle.Render(statusText + strings.Repeat(" ", padding) + rightSide)
}

// listRows is the number of entries List view can show.
func (m *model) listRows() int {
	return max(m.getContentHeight()-2, 1)
}

// renderList renders the detailed listing of the current folder
func (m *model) renderList(width int) string {
	entries := m.entries()
	vis := m.visible()
	inner := width - 2
	timeKey := storageKey(m.sortBy)

	crumbs := m.breadcrumbs()
	title := titleStyle.Render(fmt.Sprintf("📁 %s", crumbs[len(crumbs)-1]))
	if m.filtering() {
		title += captionStyle.Render(fmt.Sprintf("  %d of %d", len(vis), len(entries)))
	}

	timeCaption := "Modified"
	switch m.sortBy {
	case header.SortCreatedAt:
		timeCaption = "Created"
	case header.SortLastAccessedAt:
		timeCaption = "Accessed"
	}
	nameWidth := max(inner-sizeColWidth-timeColWidth-2, 10)
	captions := captionStyle.Render(padRight("Name", nameWidth) +
		fmt.Sprintf("%*s  %-*s", sizeColWidth, "Size", timeColWidth, timeCaption))

	lines := []string{title, captions}
	rows := m.listRows()

	if len(vis) == 0 {
		msg := "This folder is empty"
		if m.filtering() {
			msg = "No files or folders match"
		}
		lines = append(lines, emptyStyle.Render(msg))
	}

	start, end := visibleWindow(m.cursor, len(vis), rows)
	for pos := start; pos < end; pos++ {
		idx := vis[pos]
		e := entries[idx]

		name := e.Name
		if lipgloss.Width(name)+3 > nameWidth {
			name = truncateName(name, nameWidth-3)
		} else if hl := m.matchFor(idx); len(hl) > 0 {
			name = utils.HighlightMatches(name, hl)
		}
		left := utils.GetFileIcon(e.Name, e.IsDir) + " " + name

		size := ""
		if !e.IsDir {
			size = utils.FormatFileSize(e.Size)
		}
		right := fmt.Sprintf("%*s  %-*s", sizeColWidth, size, timeColWidth, utils.FormatTime(e.Time(timeKey)))

		pad := max(nameWidth-lipgloss.Width(left), 1)
		line := left + strings.Repeat(" ", pad) + right

		if pos == m.cursor {
			line = selectedStyle.Render(line)
		} else {
			line = normalStyle.Render(line)
		}
		lines = append(lines, line)
	}

	return borderStyle.
		Width(inner).
		Height(m.getContentHeight()).
		Render(strings.Join(lines, "\n"))
}

// renderColumns shows one column per breadcrumb level, the deepest on the
// right.
func (m *model) renderColumns(width int) string {
	if len(m.levels) == 0 {
		return borderStyle.Width(width - 2).Height(m.getContentHeight()).Render(emptyStyle.Render("Loading..."))
	}

	fit := max(width/minColumnWidth, 1)
	shown := min(len(m.levels), fit)
	colWidth := width / shown
	first := len(m.levels) - shown

	cols := make([]string, 0, shown)
	for level := first; level < len(m.levels); level++ {
		w := colWidth
		if level == len(m.levels)-1 {
			// Last column takes the rounding remainder
			w = width - colWidth*(shown-1)
		}
		cols = append(cols, m.renderColumn(level, w))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m *model) renderColumn(level, width int) string {
	entries := m.levels[level]
	inner := width - 2
	rows := m.getContentHeight()
	last := level == len(m.levels)-1

	// The highlighted row is the cursor in the deepest column and the opened
	// folder in the others.
	active := -1
	if last {
		active = m.cursor
	} else if level < len(m.segments) {
		active = indexOf(entries, m.segments[level])
	}

	var lines []string
	if len(entries) == 0 {
		lines = append(lines, emptyStyle.Render("Empty"))
	}
	start, end := visibleWindow(max(active, 0), len(entries), rows)
	for i := start; i < end; i++ {
		e := entries[i]
		marker := " "
		if e.IsDir {
			marker = "›"
		}
		name := truncateName(utils.GetFileIcon(e.Name, e.IsDir)+" "+e.Name, inner-2)
		line := padRight(name, inner-2) + " " + marker

		switch {
		case i == active && last:
			line = selectedStyle.Render(line)
		case i == active:
			line = openedStyle.Render(line)
		default:
			line = normalStyle.Render(line)
		}
		lines = append(lines, line)
	}

	return borderStyle.
		Width(inner).
		Height(rows).
		Render(strings.Join(lines, "\n"))
}

func (m *model) renderUploadPicker(width int) string {
	title := titleStyle.Render("⇪ Upload files to " + m.breadcrumbs()[len(m.breadcrumbs())-1])
	hint := captionStyle.Render("space: mark | enter: upload | esc: cancel")
	body := lipgloss.JoinVertical(lipgloss.Left, title, hint, m.header.PickerView())
	return lipgloss.NewStyle().
		Width(width).
		Height(m.getContentHeight() + 2).
		Render(body)
}

func (m *model) renderHelpView(width int) string {
	title := titleStyle.Render("Keyboard shortcuts")
	body := m.help.FullHelpView(m.keys.FullHelp())
	return borderStyle.
		Width(width - 2).
		Height(m.getContentHeight()).
		Padding(0, 1).
		Render(title + "\n\n" + body)
}

func (m *model) renderCreateFolderDialog() string {
	dialogWidth := 60
	dialogHeight := 8

	dialogStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("105")).
		Padding(1, 2).
		Width(dialogWidth).
		Height(dialogHeight)

	contentStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(1, 0)

	title := titleStyle.Render("📁 Create folder")
	content := contentStyle.Render(fmt.Sprintf("New folder in %s:", m.breadcrumbs()[len(m.breadcrumbs())-1]))

	dialog := title + "\n" + content + "\n" + m.textInput.View()
	return m.center(dialogStyle.Render(dialog), dialogWidth, dialogHeight)
}

func (m *model) renderErrorDialog() string {
	dialogWidth := 70
	dialogHeight := 12

	dialogStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("196")).
		Padding(1, 2).
		Width(dialogWidth).
		Height(dialogHeight)

	errTitleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("196"))

	contentStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(1, 0)

	promptStyle := lipgloss.NewStyle().
		Bold(true).
		Padding(1, 0)

	title := errTitleStyle.Render("❌ " + m.errorMsg)
	content := contentStyle.Render(m.errorDetails)
	prompt := promptStyle.Render("Press any key to continue")

	dialog := title + "\n" + content + "\n" + prompt
	return m.center(dialogStyle.Render(dialog), dialogWidth, dialogHeight)
}

// center pads a dialog into the middle of the content area
func (m *model) center(rendered string, w, h int) string {
	verticalPadding := max((m.getContentHeight()-h)/2, 0)
	horizontalPadding := max((m.getSafeWidth()-w)/2, 0)
	return lipgloss.NewStyle().
		Padding(verticalPadding, horizontalPadding).
		Render(rendered)
}

func indexOf(entries []storage.Entry, name string) int {
	for i, e := range entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// truncateName shortens s to width cells, marking the cut with "...".
func truncateName(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if lipgloss.Width(b.String()+string(r)+"...") > width {
			break
		}
		b.WriteRune(r)
	}
	return b.String() + "..."
}
