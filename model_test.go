package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LFroesch/shelf/internal/config"
	"github.com/LFroesch/shelf/internal/header"
	"github.com/LFroesch/shelf/internal/logger"
	"github.com/LFroesch/shelf/internal/watch"
)

func init() {
	logger.Disable()
}

// =============================================================================
// Helpers
// =============================================================================

// runCmd executes cmd and returns the messages it yields, flattening batches.
// Commands still pending after the timeout (spinner frames, cursor blinks)
// are dropped.
func runCmd(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, runCmd(t, c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(80 * time.Millisecond):
		return nil
	}
}

// drive feeds everything cmd produces back into the model until it settles.
func drive(t *testing.T, m *model, cmd tea.Cmd) {
	t.Helper()
	driveDepth(t, m, cmd, 0)
}

func driveDepth(t *testing.T, m *model, cmd tea.Cmd, depth int) {
	t.Helper()
	if cmd == nil || depth > 25 {
		return
	}
	for _, msg := range runCmd(t, cmd) {
		if _, quit := msg.(tea.QuitMsg); quit {
			continue
		}
		_, next := m.Update(msg)
		driveDepth(t, m, next, depth+1)
	}
}

func sendMsg(t *testing.T, m *model, msg tea.Msg) {
	t.Helper()
	_, cmd := m.Update(msg)
	drive(t, m, cmd)
}

func typeKeys(t *testing.T, m *model, s string) {
	t.Helper()
	for _, r := range s {
		sendMsg(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func pressKey(t *testing.T, m *model, k tea.KeyType) {
	t.Helper()
	sendMsg(t, m, tea.KeyMsg{Type: k})
}

// makeBucket builds:
//
//	docs/readme.md
//	photos/2024/a.jpg
//	photos/2025/
//	notes.txt
//	report.pdf
func makeBucket(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{"docs", "photos/2024", "photos/2025"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0755))
	}
	for _, f := range []string{"docs/readme.md", "photos/2024/a.jpg", "notes.txt", "report.pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, f), []byte(f), 0644))
	}
	return root
}

func newTestModel(t *testing.T, view string) (*model, string) {
	t.Helper()
	root := makeBucket(t)
	cfg := &config.Config{
		Root:             root,
		View:             view,
		SortBy:           "name",
		SearchDebounceMS: 5,
	}
	m := initialModel(cfg, nil)
	sendMsg(t, m, tea.WindowSizeMsg{Width: 140, Height: 30})
	drive(t, m, m.Init())
	require.False(t, m.loading)
	return m, root
}

func visibleNames(m *model) []string {
	entries := m.entries()
	var out []string
	for _, idx := range m.visible() {
		out = append(out, entries[idx].Name)
	}
	return out
}

func selectedName(m *model) string {
	sel, _ := m.selected()
	return sel.Name
}

// =============================================================================
// Listing and navigation
// =============================================================================

func TestInitialListing(t *testing.T) {
	m, root := newTestModel(t, "list")

	assert.Empty(t, m.segments)
	assert.Equal(t, []string{filepath.Base(root)}, m.breadcrumbs())
	assert.Equal(t, []string{"docs", "photos", "notes.txt", "report.pdf"}, visibleNames(m))

	props := m.header.Props()
	assert.True(t, props.BackDisabled)
	assert.False(t, props.Loading.IsLoading)
	assert.Equal(t, header.ViewList, props.View)
}

func TestSetPathNavigates(t *testing.T) {
	m, root := newTestModel(t, "columns")

	sendMsg(t, m, header.SetPathMsg{Segments: []string{"photos", "2024"}})

	assert.Equal(t, []string{"photos", "2024"}, m.segments)
	assert.Equal(t, []string{filepath.Base(root), "photos", "2024"}, m.header.Props().Breadcrumbs)
	assert.Len(t, m.levels, 3)
	assert.Equal(t, []string{"a.jpg"}, visibleNames(m))
	assert.False(t, m.header.Props().BackDisabled)
}

func TestSetPathToMissingFolderKeepsBreadcrumbs(t *testing.T) {
	m, _ := newTestModel(t, "columns")
	sendMsg(t, m, header.SetPathMsg{Segments: []string{"photos"}})

	sendMsg(t, m, header.SetPathMsg{Segments: []string{"photos", "1999"}})

	assert.Equal(t, []string{"photos"}, m.segments)
	assert.Contains(t, m.statusMsg, "folder not found")
}

func TestSetPathRejectsDotSegments(t *testing.T) {
	m, root := newTestModel(t, "columns")
	sendMsg(t, m, header.SetPathMsg{Segments: []string{"photos"}})

	for _, segments := range [][]string{{"photos", ".."}, {".", "docs"}, {"photos", "2024", "..", ".."}} {
		sendMsg(t, m, header.SetPathMsg{Segments: segments})

		assert.Equal(t, []string{"photos"}, m.segments, "segments %v", segments)
		assert.Equal(t, filepath.Join(root, "photos"), m.currentDir())
		assert.Equal(t, []string{filepath.Base(root), "photos"}, m.header.Props().Breadcrumbs)
		assert.Contains(t, m.statusMsg, "invalid folder name")
	}
	assert.ElementsMatch(t, []string{"2024", "2025"}, visibleNames(m))
}

func TestSetPathEmptyGoesToRoot(t *testing.T) {
	m, _ := newTestModel(t, "columns")
	sendMsg(t, m, header.SetPathMsg{Segments: []string{"photos", "2024"}})

	sendMsg(t, m, header.SetPathMsg{Segments: nil})

	assert.Empty(t, m.segments)
}

func TestSelectCrumbAndBack(t *testing.T) {
	m, _ := newTestModel(t, "list")
	sendMsg(t, m, header.SetPathMsg{Segments: []string{"photos", "2024"}})

	sendMsg(t, m, header.SelectCrumbMsg{Index: 1})
	assert.Equal(t, []string{"photos"}, m.segments)
	assert.Equal(t, "2024", selectedName(m), "cursor lands on the folder we left")

	sendMsg(t, m, header.BackMsg{})
	assert.Empty(t, m.segments)
	assert.Equal(t, "photos", selectedName(m))

	sendMsg(t, m, header.BackMsg{})
	assert.Empty(t, m.segments, "back at the root is a no-op")

	sendMsg(t, m, header.SelectCrumbMsg{Index: 5})
	assert.Empty(t, m.segments)
}

func TestOpenAndParentKeys(t *testing.T) {
	m, _ := newTestModel(t, "list")

	pressKey(t, m, tea.KeyDown) // photos
	pressKey(t, m, tea.KeyEnter)
	assert.Equal(t, []string{"photos"}, m.segments)

	pressKey(t, m, tea.KeyLeft)
	assert.Empty(t, m.segments)
	assert.Equal(t, "photos", selectedName(m))
}

func TestPathEditThroughHeader(t *testing.T) {
	m, _ := newTestModel(t, "columns")

	typeKeys(t, m, "g")
	require.True(t, m.header.EditingPath())
	assert.True(t, m.header.Focused())

	typeKeys(t, m, "/photos//2024/")
	pressKey(t, m, tea.KeyEnter)

	assert.Equal(t, []string{"photos", "2024"}, m.segments)
	assert.False(t, m.header.EditingPath(), "breadcrumb change ends editing")
}

func TestPathEditCancelSendsNothing(t *testing.T) {
	m, _ := newTestModel(t, "columns")
	sendMsg(t, m, header.SetPathMsg{Segments: []string{"docs"}})

	typeKeys(t, m, "g")
	typeKeys(t, m, "/elsewhere")
	pressKey(t, m, tea.KeyEsc)

	assert.False(t, m.header.EditingPath())
	assert.Equal(t, []string{"docs"}, m.segments)
}

func TestLoadingBlocksPathEdit(t *testing.T) {
	m, _ := newTestModel(t, "columns")

	_, pending := m.Update(header.ReloadMsg{})
	require.True(t, m.header.Props().Loading.IsLoading)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	assert.False(t, m.header.EditingPath())
	drive(t, m, cmd)

	drive(t, m, pending)
	assert.False(t, m.header.Props().Loading.IsLoading)

	typeKeys(t, m, "g")
	assert.True(t, m.header.EditingPath())
}

func TestStaleListingIgnored(t *testing.T) {
	m, _ := newTestModel(t, "list")
	before := visibleNames(m)

	sendMsg(t, m, listedMsg{seq: m.loadSeq - 1, err: assert.AnError})

	assert.Equal(t, before, visibleNames(m))
	assert.Equal(t, promptNone, m.prompt)
}

// =============================================================================
// View, sort and search
// =============================================================================

func TestSortKeepsSelection(t *testing.T) {
	m, root := newTestModel(t, "list")
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(root, "notes.txt"), old, old))
	typeKeys(t, m, "r")

	pressKey(t, m, tea.KeyDown)
	pressKey(t, m, tea.KeyDown) // notes.txt
	require.Equal(t, "notes.txt", selectedName(m))

	sendMsg(t, m, header.SetSortMsg{Sort: header.SortUpdatedAt})

	assert.Equal(t, header.SortUpdatedAt, m.sortBy)
	assert.Equal(t, "notes.txt", selectedName(m))
	names := visibleNames(m)
	assert.Equal(t, "notes.txt", names[len(names)-1], "oldest file last")
}

func TestSearchFiltersListThroughHeader(t *testing.T) {
	m, _ := newTestModel(t, "list")

	typeKeys(t, m, "/")
	require.True(t, m.searching)
	require.True(t, m.header.Searching())

	typeKeys(t, m, "rep")
	assert.Equal(t, "rep", m.searchText)
	assert.Equal(t, []string{"report.pdf"}, visibleNames(m))
	assert.NotEmpty(t, m.matchFor(3))

	pressKey(t, m, tea.KeyEsc)
	assert.False(t, m.searching)
	assert.Empty(t, m.searchText)
	assert.Len(t, visibleNames(m), 4)
}

func TestBlankSearchShowsEverything(t *testing.T) {
	m, _ := newTestModel(t, "list")

	sendMsg(t, m, header.ToggleSearchMsg{Active: true})
	sendMsg(t, m, header.SetSearchTextMsg{Text: "  "})

	require.True(t, m.searching)
	assert.Len(t, visibleNames(m), 4)
	assert.NotContains(t, ansi.Strip(m.View()), "match(es)")
}

func TestSearchSurvivesNavigation(t *testing.T) {
	m, _ := newTestModel(t, "list")
	sendMsg(t, m, header.ToggleSearchMsg{Active: true})
	sendMsg(t, m, header.SetSearchTextMsg{Text: "202"})

	sendMsg(t, m, header.SetPathMsg{Segments: []string{"photos"}})

	assert.Equal(t, []string{"2024", "2025"}, visibleNames(m))
}

func TestSearchIgnoredInColumns(t *testing.T) {
	m, _ := newTestModel(t, "columns")

	typeKeys(t, m, "/")
	assert.False(t, m.searching)

	sendMsg(t, m, header.ToggleSearchMsg{Active: true})
	assert.False(t, m.searching)
}

func TestSwitchToColumnsClearsSearch(t *testing.T) {
	m, _ := newTestModel(t, "list")
	typeKeys(t, m, "/")
	typeKeys(t, m, "rep")
	pressKey(t, m, tea.KeyTab) // back to results
	require.Equal(t, "rep", m.searchText)

	typeKeys(t, m, "v")

	assert.Equal(t, header.ViewColumns, m.view)
	assert.False(t, m.searching)
	assert.Empty(t, m.searchText)
	assert.False(t, m.header.Searching())
	assert.Len(t, visibleNames(m), 4)
}

// =============================================================================
// Actions
// =============================================================================

func TestCreateFolderPrompt(t *testing.T) {
	m, root := newTestModel(t, "list")

	typeKeys(t, m, "n")
	require.Equal(t, promptCreateFolder, m.prompt)

	typeKeys(t, m, "a/b")
	pressKey(t, m, tea.KeyEnter)
	assert.Equal(t, promptCreateFolder, m.prompt, "invalid name keeps the prompt open")
	assert.Contains(t, m.statusMsg, "path separator")

	pressKey(t, m, tea.KeyEsc)
	assert.Equal(t, promptNone, m.prompt)

	sendMsg(t, m, header.CreateFolderMsg{})
	assert.Empty(t, m.textInput.Value())
	typeKeys(t, m, "archive")
	pressKey(t, m, tea.KeyEnter)

	assert.Equal(t, promptNone, m.prompt)
	assert.DirExists(t, filepath.Join(root, "archive"))
	assert.Equal(t, "archive", selectedName(m))
}

func TestUploadCopiesIntoCurrentFolder(t *testing.T) {
	m, root := newTestModel(t, "list")
	sendMsg(t, m, header.SetPathMsg{Segments: []string{"docs"}})

	src := filepath.Join(t.TempDir(), "upload.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello"), 0644))

	sendMsg(t, m, header.FilesUploadedMsg{Files: []string{src}})

	content, err := os.ReadFile(filepath.Join(root, "docs", "upload.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
	assert.Contains(t, visibleNames(m), "upload.txt")
	assert.Contains(t, m.statusMsg, "Uploaded 1")
}

func TestReloadPicksUpChanges(t *testing.T) {
	m, root := newTestModel(t, "list")
	require.NoError(t, os.WriteFile(filepath.Join(root, "later.txt"), nil, 0644))

	typeKeys(t, m, "r")

	assert.Contains(t, visibleNames(m), "later.txt")
}

func TestHiddenToggle(t *testing.T) {
	m, root := newTestModel(t, "list")
	require.NoError(t, os.WriteFile(filepath.Join(root, ".secret"), nil, 0644))

	typeKeys(t, m, ".")
	assert.Contains(t, visibleNames(m), ".secret")

	typeKeys(t, m, ".")
	assert.NotContains(t, visibleNames(m), ".secret")
}

func TestVanishedFolderMovesToNearestAncestor(t *testing.T) {
	m, root := newTestModel(t, "columns")
	sendMsg(t, m, header.SetPathMsg{Segments: []string{"photos", "2024"}})
	typeKeys(t, m, "g")
	require.True(t, m.header.EditingPath())

	require.NoError(t, os.RemoveAll(filepath.Join(root, "photos", "2024")))
	sendMsg(t, m, watch.ChangedMsg{Dir: m.currentDir()})

	assert.Equal(t, []string{"photos"}, m.segments)
	assert.Contains(t, m.statusMsg, "no longer exists")
	assert.False(t, m.header.EditingPath(), "stale path edit is dropped")
}

func TestChangeInOtherFolderIgnored(t *testing.T) {
	m, _ := newTestModel(t, "list")
	seq := m.loadSeq

	sendMsg(t, m, watch.ChangedMsg{Dir: "/somewhere/else"})

	assert.Equal(t, seq, m.loadSeq)
}

// =============================================================================
// Rendering
// =============================================================================

func TestViewRendersListAndColumns(t *testing.T) {
	m, root := newTestModel(t, "list")
	sendMsg(t, m, header.SetPathMsg{Segments: []string{"photos"}})

	out := ansi.Strip(m.View())
	assert.Contains(t, out, filepath.Base(root))
	assert.Contains(t, out, "2024")
	assert.Contains(t, out, "Modified")

	sendMsg(t, m, header.SetViewMsg{View: header.ViewColumns})
	out = ansi.Strip(m.View())
	assert.Contains(t, out, "report.pdf", "parent column is shown")
	assert.Contains(t, out, "2025")
}

func TestViewShowsDialogs(t *testing.T) {
	m, _ := newTestModel(t, "list")

	sendMsg(t, m, header.CreateFolderMsg{})
	assert.Contains(t, ansi.Strip(m.View()), "Create folder")
	pressKey(t, m, tea.KeyEsc)

	m.showError("Cannot Read Folder", "permission denied")
	assert.Contains(t, ansi.Strip(m.View()), "permission denied")
	typeKeys(t, m, "x")
	assert.Equal(t, promptNone, m.prompt)
}

func TestHeaderClicksIgnoredUnderDialog(t *testing.T) {
	m, _ := newTestModel(t, "columns")
	sendMsg(t, m, header.SetPathMsg{Segments: []string{"photos"}})
	sendMsg(t, m, header.CreateFolderMsg{})
	require.Equal(t, promptCreateFolder, m.prompt)

	for x := 0; x < m.width; x++ {
		sendMsg(t, m, tea.MouseMsg{X: x, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	}

	assert.Equal(t, promptCreateFolder, m.prompt)
	assert.False(t, m.header.EditingPath())
	assert.False(t, m.header.Picking())
	assert.Equal(t, []string{"photos"}, m.segments)
	assert.Equal(t, header.ViewColumns, m.view)
}

func TestVisibleWindow(t *testing.T) {
	tests := []struct {
		cursor, n, height int
		start, end        int
	}{
		{0, 10, 5, 0, 5},
		{4, 10, 5, 0, 5},
		{7, 10, 5, 3, 8},
		{0, 2, 5, 0, 2},
		{3, 4, 0, 3, 4},
	}
	for _, tt := range tests {
		start, end := visibleWindow(tt.cursor, tt.n, tt.height)
		assert.Equal(t, tt.start, start)
		assert.Equal(t, tt.end, end)
	}
}
