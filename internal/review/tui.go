package review

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/archfeed/archfeed/internal/model"
)

// Lines per discovery item in the list view (employer line + detail line +
// blank separator).
const itemHeight = 3

var (
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	employerStyle = lipgloss.NewStyle().
			Bold(true)

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	selectedEmployerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("24"))

	selectedDetailStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("24"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

type reviewModel struct {
	discoveries []model.Discovery
	store       model.ReviewStore

	vp        viewport.Model
	cursor    int
	width     int
	height    int
	ready     bool
	dismissed int
	lastErr   string
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.moveCursor(-1)
			return m, nil
		case "down", "j":
			m.moveCursor(1)
			return m, nil
		case "o":
			if d, ok := m.current(); ok && d.URL != "" {
				openURL(d.URL)
			}
			return m, nil
		case "d", "x":
			m.dismissCurrent()
			return m, nil
		}

		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m reviewModel) current() (model.Discovery, bool) {
	if m.cursor < 0 || m.cursor >= len(m.discoveries) {
		return model.Discovery{}, false
	}
	return m.discoveries[m.cursor], true
}

func (m *reviewModel) moveCursor(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, max(len(m.discoveries)-1, 0))
	m.recalcContent()
	m.ensureCursorVisible()
}

func (m *reviewModel) dismissCurrent() {
	d, ok := m.current()
	if !ok {
		return
	}
	if err := m.store.Dismiss(Key(d)); err != nil {
		m.lastErr = fmt.Sprintf("dismiss failed: %v", err)
		m.recalcContent()
		return
	}
	m.lastErr = ""
	m.dismissed++
	m.discoveries = append(m.discoveries[:m.cursor], m.discoveries[m.cursor+1:]...)
	m.cursor = clamp(m.cursor, 0, max(len(m.discoveries)-1, 0))
	m.recalcContent()
	m.ensureCursorVisible()
}

func (m *reviewModel) ensureCursorVisible() {
	cursorTop := m.cursor * itemHeight
	cursorBottom := cursorTop + itemHeight - 1

	if cursorTop < m.vp.YOffset {
		m.vp.SetYOffset(cursorTop)
	} else if cursorBottom >= m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(cursorBottom - m.vp.Height + 1)
	}
}

func (m *reviewModel) recalcLayout() {
	// Header (1) + border top/bottom (2) + status bar (1).
	w := max(m.width-2, 20)
	h := max(m.height-4, 5)

	if !m.ready {
		m.vp = viewport.New(w, h)
		m.ready = true
	} else {
		m.vp.Width = w
		m.vp.Height = h
	}
	m.recalcContent()
}

func (m *reviewModel) recalcContent() {
	m.vp.SetContent(renderDiscoveries(m.discoveries, m.cursor))
}

func renderDiscoveries(discoveries []model.Discovery, cursor int) string {
	if len(discoveries) == 0 {
		return "  (nothing to review)"
	}

	var b strings.Builder
	for i, d := range discoveries {
		empSt, detSt, prefix := employerStyle, detailStyle, "  "
		if i == cursor {
			empSt, detSt, prefix = selectedEmployerStyle, selectedDetailStyle, "> "
		}

		b.WriteString(prefix)
		b.WriteString(empSt.Render(fmt.Sprintf("%s — %s", d.Employer, d.Title)))
		b.WriteByte('\n')

		parts := make([]string, 0, 3)
		for _, p := range []string{d.Location, d.Salary, d.Posted} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			parts = append(parts, "n/a")
		}
		b.WriteString(prefix)
		b.WriteString(detSt.Render(strings.Join(parts, " · ")))
		b.WriteByte('\n')

		if i < len(discoveries)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m reviewModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := headerStyle.Render(fmt.Sprintf(" Discoveries (%d pending, %d dismissed)", len(m.discoveries), m.dismissed))
	content := borderStyle.Width(max(m.width-2, 20)).Render(m.vp.View())

	statusText := " ↑/↓/j/k navigate  o open URL  d dismiss  q quit"
	if m.lastErr != "" {
		statusText = " " + errStyle.Render(m.lastErr)
	}
	statusBar := statusBarStyle.Width(m.width).Render(statusText)

	return header + "\n" + content + "\n" + statusBar
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// openURL opens url in the default system browser, fire-and-forget.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}
	_ = cmd.Start()
}

// RunTUI launches the interactive discovery reviewer. Returns how many
// discoveries the user dismissed during the session.
func RunTUI(discoveries []model.Discovery, store model.ReviewStore) (int, error) {
	m := reviewModel{
		discoveries: discoveries,
		store:       store,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return 0, err
	}
	final := result.(reviewModel)
	return final.dismissed, nil
}
