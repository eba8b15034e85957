package header

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type action int

const (
	actNone action = iota
	actBack
	actLabel
	actCrumb
	actReload
	actViews
	actSort
	actUpload
	actCreateFolder
	actSearch
	actCancelSearch
	actCancelPath
	actSubmitPath
)

const crumbSeparator = " › "

var (
	barBg = lipgloss.Color("235")

	baseStyle     = lipgloss.NewStyle().Background(barBg).Foreground(lipgloss.Color("252"))
	dimStyle      = baseStyle.Foreground(lipgloss.Color("240"))
	labelStyle    = baseStyle.Foreground(lipgloss.Color("99")).Bold(true)
	crumbStyle    = baseStyle.Foreground(lipgloss.Color("252"))
	currentStyle  = baseStyle.Foreground(lipgloss.Color("105")).Bold(true)
	buttonStyle   = baseStyle.Foreground(lipgloss.Color("252"))
	primaryStyle  = baseStyle.Foreground(lipgloss.Color("226")).Bold(true)
	messageStyle  = baseStyle.Foreground(lipgloss.Color("214"))
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Background(barBg)
	pickerTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	pickerBorder  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("99")).Padding(0, 1)
	maxCrumbWidth = 16
)

// part is one clickable (or inert) piece of the header line.
type part struct {
	text string
	act  action
	arg  int
}

func plain(s string, style lipgloss.Style) part {
	return part{text: style.Render(s)}
}

func button(s string, style lipgloss.Style, act action) part {
	return part{text: style.Render(s), act: act}
}

func width(parts []part) int {
	w := 0
	for _, p := range parts {
		w += lipgloss.Width(p.text)
	}
	return w
}

// layout builds the left and right halves of the header line.
func (m Model) layout() (left, right []part) {
	left = m.navigationParts()
	right = m.actionParts()
	return left, right
}

func (m Model) navigationParts() []part {
	var parts []part
	sp := plain(" ", baseStyle)

	if len(m.props.Breadcrumbs) > 0 {
		style := buttonStyle
		if m.backDisabled() {
			style = dimStyle
		}
		parts = append(parts, sp, button("‹", style, actBack), sp)
	}

	switch {
	case m.editingPath:
		parts = append(parts,
			sp,
			plain(m.pathInput.View(), baseStyle),
			sp,
			button("[Cancel]", buttonStyle, actCancelPath),
			sp,
			button("[Go to folder]", primaryStyle, actSubmitPath),
		)
	case m.props.Loading.IsLoading:
		parts = append(parts, sp, plain(m.spinner.View(), spinnerStyle), sp, plain(m.props.Loading.Message, messageStyle))
	case m.props.View == ViewColumns:
		current := ""
		if n := len(m.props.Breadcrumbs); n > 0 {
			current = m.props.Breadcrumbs[n-1]
		}
		parts = append(parts,
			sp,
			button(current, currentStyle, actLabel),
			sp,
			button("✎ Navigate", dimStyle, actLabel),
		)
	default:
		parts = append(parts, sp)
		for pos, c := range Collapse(m.props.Breadcrumbs) {
			if pos != 0 {
				parts = append(parts, plain(crumbSeparator, dimStyle))
			}
			name := truncate(c.Name, maxCrumbWidth)
			if !c.Selectable() {
				parts = append(parts, plain(name, dimStyle))
				continue
			}
			style := crumbStyle
			if c.Index == len(m.props.Breadcrumbs)-1 {
				style = currentStyle
			}
			parts = append(parts, part{text: style.Render(name), act: actCrumb, arg: pos})
		}
	}
	return parts
}

func (m Model) actionParts() []part {
	sp := plain("  ", baseStyle)
	actionStyle := buttonStyle
	if m.actionsDisabled() {
		actionStyle = dimStyle
	}

	parts := []part{
		button("⟳ Reload", buttonStyle, actReload), sp,
		button("▥ Views: "+m.props.View.String(), actionStyle, actViews), sp,
		button("⇅ Sort: "+m.props.SortBy.Short(), actionStyle, actSort),
		plain(" │ ", dimStyle),
		button("⇪ Upload file", actionStyle, actUpload), sp,
		button("+ Create folder", actionStyle, actCreateFolder),
	}

	if m.props.View == ViewList {
		parts = append(parts, plain(" │ ", dimStyle))
		if m.searching {
			parts = append(parts,
				plain("🔍 ", labelStyle),
				button(m.searchInput.View(), baseStyle, actSearch),
				plain(" ", baseStyle),
				button("✕", buttonStyle, actCancelSearch),
			)
		} else {
			parts = append(parts, button("🔍", buttonStyle, actSearch))
		}
	}
	return append(parts, plain(" ", baseStyle))
}

// hitTest maps a column on the header row to the action drawn there.
func (m Model) hitTest(x int) (action, int) {
	left, right := m.layout()
	gap := m.gap(width(left), width(right))

	pos := 0
	for _, p := range left {
		w := lipgloss.Width(p.text)
		if x >= pos && x < pos+w {
			return p.act, p.arg
		}
		pos += w
	}
	pos += gap
	for _, p := range right {
		w := lipgloss.Width(p.text)
		if x >= pos && x < pos+w {
			return p.act, p.arg
		}
		pos += w
	}
	return actNone, 0
}

func (m Model) gap(leftW, rightW int) int {
	return max(m.width-leftW-rightW, 1)
}

// View renders the header line.
func (m Model) View() string {
	left, right := m.layout()
	var b strings.Builder
	for _, p := range left {
		b.WriteString(p.text)
	}
	b.WriteString(baseStyle.Render(strings.Repeat(" ", m.gap(width(left), width(right)))))
	for _, p := range right {
		b.WriteString(p.text)
	}
	return b.String()
}

// PickerView renders the upload picker. Empty when the picker is closed.
func (m Model) PickerView() string {
	if !m.picking {
		return ""
	}
	title := pickerTitle.Render("Upload files") + "  " +
		dimStyle.UnsetBackground().Render(m.picker.CurrentDirectory+"  (space: mark, enter: upload, esc: cancel)")
	body := m.picker.View()
	if len(m.marked) > 0 {
		names := make([]string, len(m.marked))
		for i, p := range m.marked {
			names[i] = filepath.Base(p)
		}
		body = dimStyle.UnsetBackground().Render(fmt.Sprintf("%d marked: %s", len(m.marked), strings.Join(names, ", "))) + "\n" + body
	}
	return pickerBorder.Render(title + "\n\n" + body)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
