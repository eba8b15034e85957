package header

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainView(m Model) string {
	return ansi.Strip(m.View())
}

// columnOf finds the first column on the header row whose hit action matches.
func columnOf(t *testing.T, m Model, act action, arg int) int {
	t.Helper()
	for x := 0; x < 400; x++ {
		a, g := m.hitTest(x)
		if a == act && g == arg {
			return x
		}
	}
	t.Fatalf("no column for action %d/%d", act, arg)
	return -1
}

func click(x int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestListViewRendersCollapsedTrail(t *testing.T) {
	m := newHeader(listProps("r", "a", "b", "c", "d", "e", "f"))
	m.SetWidth(200)

	out := plainView(m)

	assert.Contains(t, out, "r › a › ... › e › f")
	assert.NotContains(t, out, " b ")
	assert.Contains(t, out, "🔍")
}

func TestSeparatorNeverPrecedesFirstCrumb(t *testing.T) {
	m := newHeader(listProps("root"))
	out := plainView(m)
	assert.Contains(t, out, "root")
	assert.NotContains(t, out, "› root")
}

func TestColumnsViewShowsCurrentLabel(t *testing.T) {
	m := newHeader(columnProps("bucket", "photos"))
	out := plainView(m)

	assert.Contains(t, out, "photos")
	assert.Contains(t, out, "Navigate")
	assert.NotContains(t, out, "bucket ›")
	assert.NotContains(t, out, "🔍")
}

func TestLoadingReplacesLocation(t *testing.T) {
	p := listProps("bucket", "photos")
	p.Loading = Loading{IsLoading: true, Message: "Fetching photos"}
	m := newHeader(p)

	out := plainView(m)

	assert.Contains(t, out, "Fetching photos")
	assert.NotContains(t, out, "photos ›")
}

func TestEditingShowsPathInput(t *testing.T) {
	m := newHeader(columnProps("bucket", "photos"))
	m.StartPathEdit()

	out := plainView(m)

	assert.Contains(t, out, "Go to folder")
	assert.Contains(t, out, "Cancel")
}

func TestHeaderFillsWidth(t *testing.T) {
	m := newHeader(listProps("bucket", "photos"))
	m.SetWidth(180)
	assert.Equal(t, 180, ansi.StringWidth(m.View()))
}

func TestClickCrumbSelectsIt(t *testing.T) {
	m := newHeader(listProps("r", "a", "b", "c", "d", "e", "f"))
	m.SetWidth(200)

	x := columnOf(t, m, actCrumb, 3)
	var cmd tea.Cmd
	m, cmd = m.Update(click(x))

	assert.Equal(t, []tea.Msg{SelectCrumbMsg{Index: 5}}, intents(runCmd(t, cmd)))
}

func TestClickEllipsisDoesNothing(t *testing.T) {
	m := newHeader(listProps("r", "a", "b", "c", "d", "e", "f"))
	m.SetWidth(200)

	out := plainView(m)
	x := strings.Index(out, "...")
	require.GreaterOrEqual(t, x, 0)

	act, _ := m.hitTest(ansi.StringWidth(out[:x]))
	assert.Equal(t, actNone, act)
}

func TestClickLabelStartsEdit(t *testing.T) {
	m := newHeader(columnProps("bucket", "photos"))
	m.SetWidth(160)

	x := columnOf(t, m, actLabel, 0)
	m, _ = m.Update(click(x))

	assert.True(t, m.EditingPath())
	assert.Equal(t, "photos", m.PathDraft())
}

func TestClickLabelWhileLoadingIsNoop(t *testing.T) {
	p := columnProps("bucket", "photos")
	p.Loading = Loading{IsLoading: true}
	m := newHeader(p)
	m.SetWidth(160)

	for x := 0; x < 160; x++ {
		a, _ := m.hitTest(x)
		assert.NotEqual(t, actLabel, a)
	}
}

func TestClickRightSideActions(t *testing.T) {
	m := newHeader(listProps("bucket", "photos"))
	m.SetWidth(200)

	x := columnOf(t, m, actSort, 0)
	_, cmd := m.Update(click(x))
	assert.Equal(t, []tea.Msg{SetSortMsg{Sort: SortCreatedAt}}, intents(runCmd(t, cmd)))

	x = columnOf(t, m, actCreateFolder, 0)
	_, cmd = m.Update(click(x))
	assert.Equal(t, []tea.Msg{CreateFolderMsg{}}, intents(runCmd(t, cmd)))
}

func TestClickOtherRowsIgnored(t *testing.T) {
	m := newHeader(listProps("bucket", "photos"))
	msg := click(columnOf(t, m, actBack, 0))
	msg.Y = 3

	_, cmd := m.Update(msg)
	assert.Nil(t, cmd)
}
