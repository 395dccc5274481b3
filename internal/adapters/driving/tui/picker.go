// Package tui provides an interactive terminal browser for scan results.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aget-labs/bridge-cli/internal/core/domain"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#CDD6F4")).Background(lipgloss.Color("#7C3AED"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#CDD6F4"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	eligibleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")).MarginTop(1)
)

// Picker is a navigable list of scored candidates with a detail pane.
type Picker struct {
	candidates []domain.ScoredCandidate
	visible    []int
	selected   int
	filter     textinput.Model
	filtering  bool
	width      int
	height     int
	quitting   bool
}

// NewPicker creates a picker over the given candidates.
func NewPicker(candidates []domain.ScoredCandidate) *Picker {
	ti := textinput.New()
	ti.Placeholder = "filter by path"
	ti.Prompt = "/ "
	ti.CharLimit = 128

	p := &Picker{
		candidates: candidates,
		filter:     ti,
		width:      80,
		height:     24,
	}
	p.applyFilter()
	return p
}

// Init implements tea.Model.
func (p *Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		if p.filtering {
			return p.updateFiltering(msg)
		}
		return p.updateBrowsing(msg)
	}
	return p, nil
}

func (p *Picker) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		p.quitting = true
		return p, tea.Quit
	case "up", "k":
		if p.selected > 0 {
			p.selected--
		}
	case "down", "j":
		if p.selected < len(p.visible)-1 {
			p.selected++
		}
	case "g":
		p.selected = 0
	case "G":
		if len(p.visible) > 0 {
			p.selected = len(p.visible) - 1
		}
	case "/":
		p.filtering = true
		p.filter.Focus()
		return p, textinput.Blink
	}
	return p, nil
}

func (p *Picker) updateFiltering(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		p.filtering = false
		p.filter.Blur()
		if msg.String() == "esc" {
			p.filter.SetValue("")
			p.applyFilter()
		}
		return p, nil
	case "ctrl+c":
		p.quitting = true
		return p, tea.Quit
	}

	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	p.applyFilter()
	return p, cmd
}

// applyFilter rebuilds the visible index set from the filter text.
func (p *Picker) applyFilter() {
	query := strings.ToLower(p.filter.Value())
	p.visible = p.visible[:0]
	for i := range p.candidates {
		if query == "" || strings.Contains(strings.ToLower(p.candidates[i].Path), query) {
			p.visible = append(p.visible, i)
		}
	}
	if p.selected >= len(p.visible) {
		p.selected = 0
	}
}

// View implements tea.Model.
func (p *Picker) View() string {
	if p.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Candidates (%d)", len(p.visible))))
	b.WriteString("\n\n")

	if p.filtering || p.filter.Value() != "" {
		b.WriteString(p.filter.View())
		b.WriteString("\n\n")
	}

	if len(p.visible) == 0 {
		b.WriteString(mutedStyle.Render("No candidates match."))
	} else {
		b.WriteString(p.renderList())
		b.WriteString("\n\n")
		b.WriteString(p.renderDetail())
	}

	b.WriteString(helpStyle.Render("j/k navigate · / filter · q quit"))
	return b.String()
}

func (p *Picker) renderList() string {
	// Leave room for header, detail pane and help line.
	visibleCount := p.height - 12
	if visibleCount < 3 {
		visibleCount = 3
	}

	start := 0
	if p.selected >= visibleCount {
		start = p.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(p.visible) {
		end = len(p.visible)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		c := &p.candidates[p.visible[i]]

		marker := "  "
		if c.Eligible {
			marker = eligibleStyle.Render("* ")
		}

		line := fmt.Sprintf("%s%-40s  %.2f", marker, truncate(c.Path, 40), c.Score)
		if i == p.selected {
			line = selectedStyle.Render("> " + line)
		} else {
			line = normalStyle.Render("  " + line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (p *Picker) renderDetail() string {
	c := p.SelectedCandidate()
	if c == nil {
		return ""
	}

	facts := []string{
		fmt.Sprintf("path      %s", c.Path),
		fmt.Sprintf("category  %s", c.Category),
		fmt.Sprintf("size      %d bytes", c.SizeBytes),
		fmt.Sprintf("modified  %s", c.ModifiedAt.Format(time.RFC3339)),
		fmt.Sprintf("docs %v · tests %v", c.HasDocumentation, c.HasTests),
	}
	state := "below threshold"
	if c.Eligible {
		state = eligibleStyle.Render("eligible")
	}
	facts = append(facts, fmt.Sprintf("score     %.2f (%s)", c.Score, state))

	return mutedStyle.Render(strings.Join(facts, "\n"))
}

// SelectedCandidate returns the currently selected candidate, or nil.
func (p *Picker) SelectedCandidate() *domain.ScoredCandidate {
	if len(p.visible) == 0 || p.selected < 0 || p.selected >= len(p.visible) {
		return nil
	}
	return &p.candidates[p.visible[p.selected]]
}

// VisibleCount returns the number of candidates passing the filter.
func (p *Picker) VisibleCount() int {
	return len(p.visible)
}

// SetFilter sets the filter text directly. Used by tests.
func (p *Picker) SetFilter(query string) {
	p.filter.SetValue(query)
	p.applyFilter()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// RunPicker starts the interactive candidate browser and blocks until the
// user quits.
func RunPicker(candidates []domain.ScoredCandidate) error {
	program := tea.NewProgram(NewPicker(candidates), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
