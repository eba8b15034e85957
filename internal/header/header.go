// Package header implements the navigation bar of the storage browser: back
// navigation, a breadcrumb trail or editable path, view and sort toggles,
// upload and create actions, and a debounced in-list search.
//
// The header keeps only transient UI state. Everything it decides is reported
// to the parent as an intent message; the parent answers by handing back new
// Props on its next update.
package header

import (
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/LFroesch/shelf/internal/logger"
)

// DefaultDebounce is how long the search input must stay idle before the
// text is propagated.
const DefaultDebounce = 300 * time.Millisecond

// ReloadFunc refreshes the current listing. It is injected by the parent.
type ReloadFunc func() tea.Cmd

// Option configures a Model.
type Option func(*Model)

// WithReload injects the reload action. Without it the header emits ReloadMsg.
func WithReload(fn ReloadFunc) Option {
	return func(m *Model) { m.reload = fn }
}

// WithDebounce overrides the search debounce window.
func WithDebounce(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.debounce = d
		}
	}
}

// WithKeyMap replaces the default keybindings.
func WithKeyMap(km KeyMap) Option {
	return func(m *Model) { m.keys = km }
}

// WithUploadDir sets the directory the upload picker opens in.
func WithUploadDir(dir string) Option {
	return func(m *Model) {
		if dir != "" {
			m.picker.CurrentDirectory = dir
		}
	}
}

// debounceMsg is the single pending search propagation. Only the tick whose
// seq matches the header's current seq is honoured.
type debounceMsg struct {
	id   string
	seq  int
	text string
}

// Model is the header component.
type Model struct {
	id    string
	props Props

	editingPath bool
	pathInput   textinput.Model

	searching   bool
	searchInput textinput.Model
	searchSeq   int
	debounce    time.Duration

	// prevCrumbs is the last trail seen; a change by value ends path editing.
	prevCrumbs []string

	spinner spinner.Model
	picker  filepicker.Model
	picking bool
	// marked holds the files chosen for upload, in the order they were marked.
	marked []string

	keys   KeyMap
	reload ReloadFunc
	width  int
}

// New creates a header from the parent's initial props.
func New(props Props, opts ...Option) Model {
	pi := textinput.New()
	pi.Prompt = ""
	pi.Placeholder = "e.g Parent Folder/Child Folder"
	pi.CharLimit = 1024
	pi.Width = 40

	si := textinput.New()
	si.Prompt = ""
	si.Placeholder = "Search for a file or folder"
	si.CharLimit = 256
	si.Width = 24
	if props.ItemSearchString != "" {
		si.SetValue(props.ItemSearchString)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	fp := filepicker.New()
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.ShowHidden = false
	if home, err := os.UserHomeDir(); err == nil {
		fp.CurrentDirectory = home
	}

	m := Model{
		id:          uuid.NewString(),
		props:       props,
		pathInput:   pi,
		searching:   props.IsSearching && props.View == ViewList,
		searchInput: si,
		debounce:    DefaultDebounce,
		prevCrumbs:  slices.Clone(props.Breadcrumbs),
		spinner:     sp,
		picker:      fp,
		keys:        DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	// The picker only reports the highlighted file on a select key, so the
	// mark key has to count as one.
	mark := m.keys.Mark.Keys()
	m.picker.KeyMap.Open.SetKeys(append(m.picker.KeyMap.Open.Keys(), mark...)...)
	m.picker.KeyMap.Select.SetKeys(append(m.picker.KeyMap.Select.Keys(), mark...)...)
	if m.searching {
		m.searchInput.Focus()
	}
	return m
}

// Init starts the spinner if the parent is already loading.
func (m Model) Init() tea.Cmd {
	if m.props.Loading.IsLoading {
		return m.spinner.Tick
	}
	return nil
}

// SetProps applies the parent's display state for this update cycle.
func (m *Model) SetProps(p Props) tea.Cmd {
	prev := m.props
	m.props = p

	var cmds []tea.Cmd

	// Navigation caused elsewhere (a refresh, a click in the listing) must not
	// leave a stale draft behind. Compare by value: the parent may rebuild an
	// identical slice on every update.
	if !slices.Equal(m.prevCrumbs, p.Breadcrumbs) {
		if m.editingPath {
			logger.Debug("header: breadcrumbs changed while editing, discarding draft")
		}
		m.stopPathEdit()
		m.prevCrumbs = slices.Clone(p.Breadcrumbs)
	}

	if p.IsSearching != prev.IsSearching && p.IsSearching != m.searching {
		if p.IsSearching {
			m.editingPath = false
			m.pathInput.Blur()
			m.searching = true
		} else {
			m.searching = false
			m.searchSeq++
			m.searchInput.Blur()
		}
	}

	// Search only exists in list view; leaving it clears the search.
	if p.View != ViewList && m.searching {
		cmds = append(cmds, m.CancelSearch())
	}

	if p.Loading.IsLoading && !prev.Loading.IsLoading {
		cmds = append(cmds, m.spinner.Tick)
	}

	return tea.Batch(cmds...)
}

// Props returns the props of the current update cycle.
func (m Model) Props() Props { return m.props }

// SetWidth sets the rendering width.
func (m *Model) SetWidth(w int) {
	m.width = w
	// Leave room for the action buttons on the right.
	pw := w/2 - 4
	if pw < 10 {
		pw = 10
	}
	m.pathInput.Width = pw
}

// EditingPath reports whether the path input is shown.
func (m Model) EditingPath() bool { return m.editingPath }

// PathDraft is the text currently in the path input.
func (m Model) PathDraft() string { return m.pathInput.Value() }

// Searching reports whether search is active.
func (m Model) Searching() bool { return m.searching }

// SearchDraft is the raw, undebounced search text.
func (m Model) SearchDraft() string { return m.searchInput.Value() }

// Picking reports whether the upload file picker is open.
func (m Model) Picking() bool { return m.picking }

// Focused reports whether the header is consuming keyboard input.
func (m Model) Focused() bool {
	return m.editingPath || m.picking || (m.searching && m.searchInput.Focused())
}

// KeyMap returns the active keybindings.
func (m Model) KeyMap() KeyMap { return m.keys }

// Path edit

// StartPathEdit swaps the trail for an editable path seeded from the current
// breadcrumbs. It does nothing while the parent is loading.
func (m *Model) StartPathEdit() tea.Cmd {
	if m.props.Loading.IsLoading {
		return nil
	}
	var cancel tea.Cmd
	if m.searching {
		cancel = m.CancelSearch()
	}
	m.editingPath = true
	m.pathInput.SetValue(draftFromCrumbs(m.props.Breadcrumbs))
	m.pathInput.CursorEnd()
	return tea.Batch(cancel, m.pathInput.Focus())
}

// SetPathDraft replaces the draft. No validation happens while typing.
func (m *Model) SetPathDraft(s string) {
	m.pathInput.SetValue(s)
}

// CommitPath leaves edit mode and asks the parent to navigate to the segments
// typed in the draft.
func (m *Model) CommitPath() tea.Cmd {
	if !m.editingPath {
		return nil
	}
	segments := splitDraft(m.pathInput.Value())
	m.stopPathEdit()
	logger.Debug("header: navigate to %d segments", len(segments))
	return emit(SetPathMsg{Segments: segments})
}

// CancelPathEdit discards the draft without notifying the parent.
func (m *Model) CancelPathEdit() {
	m.stopPathEdit()
}

func (m *Model) stopPathEdit() {
	m.editingPath = false
	m.pathInput.Blur()
}

// Search

// StartSearch activates search. The previous draft is kept so toggling search
// off and on again restores it. Only available in list view.
func (m *Model) StartSearch() tea.Cmd {
	if m.props.View != ViewList {
		return nil
	}
	m.stopPathEdit()
	focus := m.searchInput.Focus()
	if m.searching {
		return focus
	}
	m.searching = true
	return tea.Batch(focus, emit(ToggleSearchMsg{Active: true}))
}

// SetSearchDraft updates the draft immediately and restarts the debounce
// window for propagating it.
func (m *Model) SetSearchDraft(s string) tea.Cmd {
	m.searchInput.SetValue(s)
	return m.scheduleSearch()
}

func (m *Model) scheduleSearch() tea.Cmd {
	m.searchSeq++
	id, seq, text := m.id, m.searchSeq, m.searchInput.Value()
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{id: id, seq: seq, text: text}
	})
}

// CancelSearch clears the draft, deactivates search and tells the parent
// straight away. Any pending propagation is invalidated.
func (m *Model) CancelSearch() tea.Cmd {
	m.searchSeq++
	m.searchInput.SetValue("")
	m.searchInput.Blur()
	m.searching = false
	return tea.Batch(
		emit(ToggleSearchMsg{Active: false}),
		emit(SetSearchTextMsg{Text: ""}),
	)
}

// FocusResults hands the keyboard back to the listing while keeping the
// search active.
func (m *Model) FocusResults() {
	m.searchInput.Blur()
}

// Actions

// Back asks the parent to go up one level. Ignored at the root or when the
// parent disables it.
func (m *Model) Back() tea.Cmd {
	if m.backDisabled() {
		return nil
	}
	m.stopPathEdit()
	return emit(BackMsg{})
}

func (m Model) backDisabled() bool {
	return m.props.BackDisabled || len(m.props.Breadcrumbs) <= 1
}

// actionsDisabled mirrors the parent having no location to act on.
func (m Model) actionsDisabled() bool {
	return len(m.props.Breadcrumbs) == 0
}

// SetView asks the parent to switch view. Leaving list view clears search.
func (m *Model) SetView(v View) tea.Cmd {
	if m.actionsDisabled() {
		return nil
	}
	var cancel tea.Cmd
	if v != ViewList && m.searching {
		cancel = m.CancelSearch()
	}
	return tea.Batch(cancel, emit(SetViewMsg{View: v}))
}

// CycleView switches to the other view.
func (m *Model) CycleView() tea.Cmd {
	return m.SetView(m.props.View.Next())
}

// SetSort asks the parent to reorder the listing.
func (m *Model) SetSort(s SortKey) tea.Cmd {
	if m.actionsDisabled() {
		return nil
	}
	return emit(SetSortMsg{Sort: s})
}

// CycleSort moves to the next sort key.
func (m *Model) CycleSort() tea.Cmd {
	return m.SetSort(m.props.SortBy.Next())
}

// SelectCrumb selects the crumb at a display position of the collapsed trail.
// The ellipsis is not selectable.
func (m *Model) SelectCrumb(pos int) tea.Cmd {
	crumbs := Collapse(m.props.Breadcrumbs)
	if pos < 0 || pos >= len(crumbs) || !crumbs[pos].Selectable() {
		return nil
	}
	return emit(SelectCrumbMsg{Index: crumbs[pos].Index})
}

// CreateFolder asks the parent to create a folder at the current location.
func (m *Model) CreateFolder() tea.Cmd {
	if m.actionsDisabled() {
		return nil
	}
	return emit(CreateFolderMsg{})
}

// Reload refreshes the current listing through the injected callback.
func (m *Model) Reload() tea.Cmd {
	if m.reload != nil {
		return m.reload()
	}
	return emit(ReloadMsg{})
}

// RequestUpload opens the file picker.
func (m *Model) RequestUpload() tea.Cmd {
	if m.actionsDisabled() {
		return nil
	}
	m.stopPathEdit()
	m.picking = true
	m.marked = nil
	return m.picker.Init()
}

// Marked returns the files marked for upload while the picker is open.
func (m Model) Marked() []string { return slices.Clone(m.marked) }

func (m *Model) toggleMarked(path string) {
	if i := slices.Index(m.marked, path); i >= 0 {
		m.marked = slices.Delete(m.marked, i, i+1)
		return
	}
	m.marked = append(m.marked, path)
}

func (m *Model) closePicker() {
	m.picking = false
	m.marked = nil
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
