package utils

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// GetFileIcon returns an emoji icon for an entry based on its extension
func GetFileIcon(name string, isDir bool) string {
	if isDir {
		return "📁"
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".go", ".js", ".ts", ".py", ".rb", ".rs", ".java", ".c", ".h", ".cpp":
		return "📜"
	case ".html", ".htm", ".css":
		return "🌐"
	case ".json", ".yaml", ".yml", ".toml", ".csv":
		return "📋"
	case ".md", ".markdown":
		return "📝"
	case ".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico", ".webp":
		return "🖼️"
	case ".mp4", ".avi", ".mov", ".mkv", ".webm":
		return "🎬"
	case ".mp3", ".wav", ".flac", ".ogg":
		return "🎵"
	case ".zip", ".tar", ".gz", ".rar", ".7z":
		return "📦"
	case ".pdf":
		return "📕"
	case ".xls", ".xlsx":
		return "📊"
	default:
		return "📄"
	}
}

// ShouldIgnore returns true for OS clutter that never belongs in a listing
func ShouldIgnore(name string) bool {
	switch name {
	case ".DS_Store", "Thumbs.db", "desktop.ini":
		return true
	}
	return false
}

// FormatFileSize formats a size in bytes for the listing
func FormatFileSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.IBytes(uint64(size))
}

// FormatTime renders a timestamp relative to now ("3 hours ago").
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

// HighlightMatches highlights matched characters in a string
func HighlightMatches(text string, matches []int) string {
	if len(matches) == 0 {
		return text
	}

	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("226")).
		Bold(true)

	runes := []rune(text)
	var result strings.Builder
	matchMap := make(map[int]bool)

	for _, idx := range matches {
		if idx < len(runes) {
			matchMap[idx] = true
		}
	}

	for i, r := range runes {
		if matchMap[i] {
			result.WriteString(highlightStyle.Render(string(r)))
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}
