package main

import (
	"fmt"
	"path/filepath"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/skratchdot/open-golang/open"

	"github.com/LFroesch/shelf/internal/logger"
)

// Helper functions

// openExternal hands path to the system default application.
func openExternal(path string) tea.Cmd {
	return func() tea.Msg {
		if err := open.Start(path); err != nil {
			logger.Warn("open %s: %v", path, err)
			return fileOpenResultMsg{path: filepath.Base(path), err: err}
		}
		return fileOpenResultMsg{path: filepath.Base(path)}
	}
}

func (m *model) copyPath(path string) {
	// Use clipboard library for cross-platform support
	err := clipboard.WriteAll(path)
	if err == nil {
		m.setStatus(fmt.Sprintf("Copied: %s", path))
	} else {
		m.setErrorStatus(fmt.Sprintf("Failed to copy: %v", err))
	}
}

// nextChange waits for the watcher's next report; nil when live refresh is
// off.
func (m *model) nextChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Next()
}
