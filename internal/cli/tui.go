package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/stackscope/pkg/integrations/github"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

const maxDescription = 48

// =============================================================================
// RepoListModel - Interactive repository selection
// =============================================================================

// RepoListModel is the bubbletea model for picking one of an owner's
// repositories. Archived repositories are listed but cannot be selected.
type RepoListModel struct {
	Title    string
	Repos    []github.Repository
	Cursor   int
	Selected *github.Repository
	Height   int
	Offset   int
}

// NewRepoListModel creates a new repo list model.
func NewRepoListModel(title string, repos []github.Repository) RepoListModel {
	return RepoListModel{
		Title:  title,
		Repos:  repos,
		Height: 15,
	}
}

func (m RepoListModel) Init() tea.Cmd {
	return nil
}

func (m RepoListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Repos)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Repos) == 0 {
				return m, nil
			}
			repo := m.Repos[m.Cursor]
			if repo.Archived {
				return m, nil
			}
			m.Selected = &repo
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m RepoListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ analyze  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Repos))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Repos[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		lang := r.Language
		if lang == "" {
			lang = "—"
		}
		rows = append(rows, []string{
			cursor,
			r.FullName,
			strconv.Itoa(r.StargazersCount),
			lang,
			formatRelativeTime(r.UpdatedAt),
			truncate(r.Description, maxDescription),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Repository", "Stars", "Lang", "Updated", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Repos) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col >= 4 {
				base = base.Foreground(colorDim)
			}
			switch {
			case m.Repos[idx].Archived:
				return base.Foreground(colorDim)
			case idx == m.Cursor:
				return base.Foreground(colorGreen).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.Repos)), len(m.Repos))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "—"
	}
	diff := time.Since(*t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
