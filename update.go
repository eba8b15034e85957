package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LFroesch/shelf/internal/fileops"
	"github.com/LFroesch/shelf/internal/header"
	"github.com/LFroesch/shelf/internal/logger"
	"github.com/LFroesch/shelf/internal/storage"
	"github.com/LFroesch/shelf/internal/watch"
)

// listTop is the screen row of the first entry in List view: header,
// border, title and column captions.
const listTop = 4

func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("📚 Shelf"),
		m.load(),
		m.header.Init(),
		m.header.SetProps(m.headerProps()),
		m.nextChange(),
	}
	return tea.Batch(cmds...)
}

// Update runs one cycle and then hands the header its props, so every
// change the parent makes is visible to the header on the same cycle.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Clear expired status messages
	if m.statusMsg != "" && time.Now().After(m.statusExpiry) {
		m.statusMsg = ""
	}

	cmd := m.update(msg)
	return m, tea.Batch(cmd, m.header.SetProps(m.headerProps()))
}

func (m *model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m.updateHeader(tea.WindowSizeMsg{Width: msg.Width, Height: m.getContentHeight()})

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	// Header intents
	case header.SetViewMsg:
		m.view = msg.View
		if m.view != header.ViewList {
			m.clearSearch()
		}
		m.ensureCursorInBounds()
		return nil

	case header.SetSortMsg:
		sel, ok := m.selected()
		m.sortBy = msg.Sort
		m.sortLevels()
		m.applyFilter()
		if ok {
			m.selectName(sel.Name)
		}
		return nil

	case header.ToggleSearchMsg:
		if msg.Active && m.view == header.ViewList {
			m.searching = true
		} else {
			m.clearSearch()
		}
		m.ensureCursorInBounds()
		return nil

	case header.SetSearchTextMsg:
		if !m.searching {
			return nil
		}
		m.searchText = msg.Text
		m.applyFilter()
		m.cursor = 0
		return nil

	case header.SetPathMsg:
		return m.navigate(msg.Segments)

	case header.SelectCrumbMsg:
		if msg.Index < 0 || msg.Index > len(m.segments) {
			return nil
		}
		return m.navigate(slices.Clone(m.segments[:msg.Index]))

	case header.BackMsg:
		if len(m.segments) == 0 {
			return nil
		}
		return m.navigate(slices.Clone(m.segments[:len(m.segments)-1]))

	case header.CreateFolderMsg:
		m.prompt = promptCreateFolder
		m.textInput.Reset()
		return m.textInput.Focus()

	case header.FilesUploadedMsg:
		m.setStatus(fmt.Sprintf("Uploading %d file(s)...", len(msg.Files)))
		return uploadFiles(msg.Files, m.currentDir())

	case header.ReloadMsg:
		return m.reload()

	// Async results
	case listedMsg:
		return m.handleListed(msg)

	case folderCreatedMsg:
		if msg.err != nil {
			m.setErrorStatus(msg.err.Error())
			return nil
		}
		m.setStatus(fmt.Sprintf("Created folder %s", msg.name))
		m.pendingSelect = msg.name
		return m.load()

	case uploadedMsg:
		if msg.err != nil {
			logger.Error("upload failed: %v", msg.err)
			m.setErrorStatus(msg.err.Error())
		} else {
			m.setStatus(fmt.Sprintf("Uploaded %d file(s)", msg.count))
		}
		return m.reload()

	case fileOpenResultMsg:
		if msg.err != nil {
			m.setErrorStatus(fmt.Sprintf("Cannot open %s: %v", msg.path, msg.err))
		}
		return nil

	case watch.ChangedMsg:
		var cmd tea.Cmd
		if msg.Dir == m.currentDir() {
			cmd = m.reload()
		}
		return tea.Batch(cmd, m.nextChange())

	case watch.ErrorMsg:
		logger.Warn("live refresh: %v", msg.Err)
		return m.nextChange()
	}

	// Spinner ticks, debounce ticks, picker reads, cursor blinks.
	cmds := []tea.Cmd{m.updateHeader(msg)}
	if m.prompt == promptCreateFolder {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *model) updateHeader(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.header, cmd = m.header.Update(msg)
	return cmd
}

// navigate moves to segments below the root. A location that does not exist
// leaves the breadcrumbs untouched and reports the problem.
func (m *model) navigate(segments []string) tea.Cmd {
	if _, err := storage.Resolve(m.root, segments); err != nil {
		m.setErrorStatus(err.Error())
		return nil
	}

	prev := m.segments
	m.segments = segments
	m.cursor = 0
	m.pendingSelect = ""
	// Going up lands on the folder we came out of.
	if len(segments) < len(prev) && slices.Equal(prev[:len(segments)], segments) {
		m.pendingSelect = prev[len(segments)]
	}
	return m.load()
}

func (m *model) handleListed(msg listedMsg) tea.Cmd {
	if msg.seq != m.loadSeq {
		return nil
	}
	m.loading = false

	if msg.err != nil {
		if errors.Is(msg.err, storage.ErrNotFound) && len(msg.segments) > 0 {
			// The folder went away underneath us.
			m.setErrorStatus(fmt.Sprintf("%s no longer exists", strings.Join(msg.segments, "/")))
			m.segments = slices.Clone(storage.NearestExisting(m.root, msg.segments))
			m.cursor = 0
			return m.load()
		}
		logger.Error("listing %s: %v", m.currentDir(), msg.err)
		m.showError("Cannot Read Folder", msg.err.Error())
		return nil
	}

	m.levels = msg.levels
	m.sortLevels()
	m.applyFilter()
	if m.pendingSelect != "" {
		m.selectName(m.pendingSelect)
		m.pendingSelect = ""
	}
	m.ensureCursorInBounds()

	if m.watcher != nil {
		if err := m.watcher.Watch(m.currentDir()); err != nil {
			logger.Warn("live refresh disabled for %s: %v", m.currentDir(), err)
		}
	}
	return nil
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.prompt {
	case promptError:
		// Any key dismisses
		m.prompt = promptNone
		return nil
	case promptCreateFolder:
		return m.handleCreateFolderKey(msg)
	}

	// Path editing, a focused search box and the upload picker own the
	// keyboard.
	if m.header.Focused() {
		return m.updateHeader(msg)
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || msg.String() == "esc" || msg.String() == "q" {
			m.showHelp = false
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.cursor--
		m.ensureCursorInBounds()
		return nil
	case key.Matches(msg, m.keys.Down):
		m.cursor++
		m.ensureCursorInBounds()
		return nil
	case key.Matches(msg, m.keys.Open):
		return m.openSelected()
	case key.Matches(msg, m.keys.Parent):
		return m.header.Back()
	case key.Matches(msg, m.keys.CopyPath):
		m.copyPath(m.selectedPath())
		return nil
	case key.Matches(msg, m.keys.External):
		return openExternal(m.selectedPath())
	case key.Matches(msg, m.keys.Hidden):
		m.showHidden = !m.showHidden
		if m.showHidden {
			m.setStatus("Showing hidden files")
		} else {
			m.setStatus("Hiding hidden files")
		}
		return m.reload()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return nil
	}

	return m.updateHeader(msg)
}

func (m *model) handleCreateFolderKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.prompt = promptNone
		m.textInput.Blur()
		return nil
	case "enter":
		name := m.textInput.Value()
		if err := fileops.ValidateName(name); err != nil {
			m.setErrorStatus(err.Error())
			return nil
		}
		m.prompt = promptNone
		m.textInput.Blur()
		return createFolder(m.currentDir(), strings.TrimSpace(name))
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return cmd
}

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	// Dialogs are modal, the header row included.
	if m.prompt != promptNone {
		return nil
	}
	if msg.Y == 0 {
		return m.updateHeader(msg)
	}
	if m.header.Picking() || m.showHelp {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.cursor--
		m.ensureCursorInBounds()
		return nil
	case tea.MouseButtonWheelDown:
		m.cursor++
		m.ensureCursorInBounds()
		return nil
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft || m.view != header.ViewList {
		return nil
	}
	start, _ := visibleWindow(m.cursor, len(m.visible()), m.listRows())
	row := start + msg.Y - listTop
	if row < 0 || row >= len(m.visible()) {
		return nil
	}
	if row == m.cursor {
		return m.openSelected()
	}
	m.cursor = row
	return nil
}

// openSelected enters a folder or hands a file to the system opener.
func (m *model) openSelected() tea.Cmd {
	sel, ok := m.selected()
	if !ok {
		return nil
	}
	if sel.IsDir {
		return m.navigate(append(slices.Clone(m.segments), sel.Name))
	}
	return openExternal(sel.Path)
}

func (m *model) selectedPath() string {
	if sel, ok := m.selected(); ok {
		return sel.Path
	}
	return m.currentDir()
}

func createFolder(dir, name string) tea.Cmd {
	return func() tea.Msg {
		return folderCreatedMsg{name: name, err: fileops.CreateDir(dir, name)}
	}
}

func uploadFiles(files []string, dir string) tea.Cmd {
	return func() tea.Msg {
		err := fileops.CopyMultiple(files, dir)
		if err == nil {
			logger.Info("uploaded %d file(s) to %s", len(files), dir)
		}
		return uploadedMsg{count: len(files), err: err}
	}
}

// visibleWindow returns the slice [start, end) of n rows that keeps cursor
// on screen within height rows.
func visibleWindow(cursor, n, height int) (int, int) {
	if height < 1 {
		height = 1
	}
	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	end := min(start+height, n)
	return start, end
}
