package header

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LFroesch/shelf/internal/logger"
)

// Update handles input routed to the header and its own async messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case debounceMsg:
		if msg.id != m.id || msg.seq != m.searchSeq || !m.searching {
			// Superseded by a later keystroke or a cancel.
			return m, nil
		}
		return m, emit(SetSearchTextMsg{Text: msg.text})

	case spinner.TickMsg:
		if !m.props.Loading.IsLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.SetWidth(msg.Width)
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft || msg.Y != 0 {
			return m, nil
		}
		cmd := m.click(msg.X)
		return m, cmd
	}

	// Anything else (cursor blinks, directory reads) belongs to whichever
	// child is live.
	return m.updateChildren(msg)
}

func (m Model) updateChildren(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if m.picking {
		m.picker, cmd = m.picker.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.editingPath {
		m.pathInput, cmd = m.pathInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.searching {
		m.searchInput, cmd = m.searchInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case m.picking:
		return m.handlePickerKey(msg)
	case m.editingPath:
		return m.handlePathKey(msg)
	case m.searching && m.searchInput.Focused():
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		return m.Back()
	case key.Matches(msg, m.keys.EditPath):
		return m.StartPathEdit()
	case key.Matches(msg, m.keys.Search):
		return m.StartSearch()
	case key.Matches(msg, m.keys.Cancel) && m.searching:
		return m.CancelSearch()
	case key.Matches(msg, m.keys.Views):
		return m.CycleView()
	case key.Matches(msg, m.keys.Sort):
		return m.CycleSort()
	case key.Matches(msg, m.keys.Upload):
		return m.RequestUpload()
	case key.Matches(msg, m.keys.CreateFolder):
		return m.CreateFolder()
	case key.Matches(msg, m.keys.Reload):
		return m.Reload()
	}
	for pos, b := range m.keys.Crumbs {
		if key.Matches(msg, b) {
			return m.SelectCrumb(pos)
		}
	}
	return nil
}

func (m *Model) handlePathKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.CommitPath()
	case key.Matches(msg, m.keys.Cancel):
		m.CancelPathEdit()
		return nil
	}
	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return cmd
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m.CancelSearch()
	case key.Matches(msg, m.keys.Submit), key.Matches(msg, m.keys.Blur):
		m.FocusResults()
		return nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() == before {
		// Cursor movement only.
		return cmd
	}
	return tea.Batch(cmd, m.scheduleSearch())
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Cancel) {
		m.closePicker()
		return nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	ok, path := m.picker.DidSelectFile(msg)
	if !ok {
		return cmd
	}
	if key.Matches(msg, m.keys.Mark) {
		m.toggleMarked(path)
		return cmd
	}

	// Confirming uploads every marked file plus the highlighted one.
	files := slices.Clone(m.marked)
	if !slices.Contains(files, path) {
		files = append(files, path)
	}
	m.closePicker()
	logger.Info("header: picked %d file(s) for upload", len(files))
	return tea.Batch(cmd, emit(FilesUploadedMsg{Files: files}))
}

// click dispatches a left click on the header row.
func (m *Model) click(x int) tea.Cmd {
	act, arg := m.hitTest(x)
	switch act {
	case actBack:
		return m.Back()
	case actLabel:
		return m.StartPathEdit()
	case actCrumb:
		return m.SelectCrumb(arg)
	case actReload:
		return m.Reload()
	case actViews:
		return m.CycleView()
	case actSort:
		return m.CycleSort()
	case actUpload:
		return m.RequestUpload()
	case actCreateFolder:
		return m.CreateFolder()
	case actSearch:
		return m.StartSearch()
	case actCancelSearch:
		return m.CancelSearch()
	case actCancelPath:
		m.CancelPathEdit()
		return nil
	case actSubmitPath:
		return m.CommitPath()
	}
	return nil
}
