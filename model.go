package main

import (
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/LFroesch/shelf/internal/config"
	"github.com/LFroesch/shelf/internal/header"
	"github.com/LFroesch/shelf/internal/search"
	"github.com/LFroesch/shelf/internal/storage"
)

// Async results
type listedMsg struct {
	seq      int
	segments []string
	levels   [][]storage.Entry
	err      error
}
type folderCreatedMsg struct {
	name string
	err  error
}
type uploadedMsg struct {
	count int
	err   error
}
type fileOpenResultMsg struct {
	path string
	err  error
}

// Terminal dimension constants
const (
	minTerminalWidth  = 60
	minTerminalHeight = 12
	uiOverhead        = 4 // header (1) + status (1) + borders (2)
)

const (
	statusDuration      = 3 * time.Second
	errorStatusDuration = 5 * time.Second
	loadingMessage      = "Loading"
)

type promptMode int

const (
	promptNone promptMode = iota
	promptCreateFolder
	promptError
)

// dirWatcher follows the folder on screen. A nil watcher disables live
// refresh.
type dirWatcher interface {
	Watch(dir string) error
	Next() tea.Cmd
	Close() error
}

type model struct {
	root string

	// segments is the path below root; breadcrumbs are the root name
	// followed by these.
	segments   []string
	view       header.View
	sortBy     header.SortKey
	showHidden bool

	loading bool
	loadSeq int
	// levels[i] lists the folder named by segments[:i].
	levels [][]storage.Entry

	searching  bool
	searchText string
	matches    []search.Match

	cursor int
	// pendingSelect names the entry to put the cursor on after the next
	// listing arrives.
	pendingSelect string

	width  int
	height int

	statusMsg    string
	statusExpiry time.Time

	prompt       promptMode
	textInput    textinput.Model
	errorMsg     string
	errorDetails string

	showHelp bool
	help     help.Model
	keys     appKeyMap

	watcher dirWatcher
	header  header.Model
}

func initialModel(cfg *config.Config, w dirWatcher) *model {
	textIn := textinput.New()
	textIn.Placeholder = "Folder name"
	textIn.CharLimit = 255
	textIn.Width = 50

	m := &model{
		root:       cfg.Root,
		view:       cfg.InitialView(),
		sortBy:     cfg.InitialSort(),
		showHidden: cfg.ShowHidden,
		textInput:  textIn,
		help:       help.New(),
		keys:       defaultAppKeyMap(),
		watcher:    w,
	}
	m.header = header.New(m.headerProps(),
		header.WithReload(m.reload),
		header.WithDebounce(cfg.SearchDebounce()),
		header.WithUploadDir(cfg.UploadDir),
	)
	m.keys.header = m.header.KeyMap()
	return m
}

// breadcrumbs is the trail handed to the header: the root folder, then one
// crumb per segment.
func (m *model) breadcrumbs() []string {
	rootName := filepath.Base(m.root)
	return append([]string{rootName}, m.segments...)
}

func (m *model) headerProps() header.Props {
	var loading header.Loading
	if m.loading {
		loading = header.Loading{IsLoading: true, Message: loadingMessage}
	}
	return header.Props{
		View:             m.view,
		SortBy:           m.sortBy,
		Loading:          loading,
		Breadcrumbs:      m.breadcrumbs(),
		BackDisabled:     len(m.segments) == 0,
		IsSearching:      m.searching,
		ItemSearchString: m.searchText,
	}
}

// currentDir is the folder on screen.
func (m *model) currentDir() string {
	return storage.Join(m.root, m.segments)
}

// entries is the listing of the folder on screen.
func (m *model) entries() []storage.Entry {
	if len(m.levels) == 0 {
		return nil
	}
	return m.levels[len(m.levels)-1]
}

// visible returns the positions in entries() that are shown, honouring the
// search filter in List view.
func (m *model) visible() []int {
	entries := m.entries()
	if m.filtering() {
		return search.Indexes(m.matches)
	}
	out := make([]int, len(entries))
	for i := range entries {
		out[i] = i
	}
	return out
}

// filtering reports whether the search text narrows the listing. Blank text
// shows everything.
func (m *model) filtering() bool {
	return m.view == header.ViewList && m.searching && strings.TrimSpace(m.searchText) != ""
}

// matchFor returns the highlighted rune positions for an entry, if any.
func (m *model) matchFor(index int) []int {
	if m.view != header.ViewList || !m.searching {
		return nil
	}
	for _, match := range m.matches {
		if match.Index == index {
			return match.MatchedIndexes
		}
	}
	return nil
}

func (m *model) selected() (storage.Entry, bool) {
	vis := m.visible()
	if m.cursor < 0 || m.cursor >= len(vis) {
		return storage.Entry{}, false
	}
	return m.entries()[vis[m.cursor]], true
}

func (m *model) ensureCursorInBounds() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) selectName(name string) {
	entries := m.entries()
	for pos, idx := range m.visible() {
		if entries[idx].Name == name {
			m.cursor = pos
			return
		}
	}
}

func (m *model) applyFilter() {
	if !m.searching || m.searchText == "" {
		m.matches = nil
		return
	}
	entries := m.entries()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	m.matches = search.FilterNames(m.searchText, names)
}

func (m *model) clearSearch() {
	m.searching = false
	m.searchText = ""
	m.matches = nil
}

func (m *model) sortLevels() {
	key := storageKey(m.sortBy)
	for _, level := range m.levels {
		storage.Sort(level, key)
	}
}

func storageKey(s header.SortKey) storage.Key {
	switch s {
	case header.SortCreatedAt:
		return storage.ByCreated
	case header.SortUpdatedAt:
		return storage.ByUpdated
	case header.SortLastAccessedAt:
		return storage.ByAccessed
	default:
		return storage.ByName
	}
}

// load starts an asynchronous listing of the current location. Results from
// an earlier load are dropped when they arrive.
func (m *model) load() tea.Cmd {
	m.loadSeq++
	m.loading = true
	return loadListing(m.loadSeq, m.root, slices.Clone(m.segments), m.showHidden)
}

// reload is injected into the header as its reload action.
func (m *model) reload() tea.Cmd {
	if sel, ok := m.selected(); ok {
		m.pendingSelect = sel.Name
	}
	return m.load()
}

func loadListing(seq int, root string, segments []string, showHidden bool) tea.Cmd {
	return func() tea.Msg {
		if _, err := storage.Resolve(root, segments); err != nil {
			return listedMsg{seq: seq, segments: segments, err: err}
		}
		// One column per level; the levels are read concurrently.
		levels := make([][]storage.Entry, len(segments)+1)
		var g errgroup.Group
		for i := range levels {
			i := i
			g.Go(func() error {
				entries, err := storage.List(storage.Join(root, segments[:i]), showHidden)
				levels[i] = entries
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return listedMsg{seq: seq, segments: segments, err: err}
		}
		return listedMsg{seq: seq, segments: segments, levels: levels}
	}
}

func (m *model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusExpiry = time.Now().Add(statusDuration)
}

func (m *model) setErrorStatus(msg string) {
	m.statusMsg = "⚠ " + msg
	m.statusExpiry = time.Now().Add(errorStatusDuration)
}

func (m *model) showError(title string, details string) {
	m.errorMsg = title
	m.errorDetails = details
	m.prompt = promptError
}

// Helper methods for safe dimensions
func (m *model) getSafeWidth() int {
	if m.width < minTerminalWidth {
		return minTerminalWidth
	}
	return m.width
}

func (m *model) getSafeHeight() int {
	if m.height < minTerminalHeight {
		return minTerminalHeight
	}
	return m.height
}

// getContentHeight returns the rows available inside the main panel border
func (m *model) getContentHeight() int {
	availableHeight := m.getSafeHeight() - uiOverhead
	if availableHeight < 3 {
		availableHeight = 3
	}
	return availableHeight
}
