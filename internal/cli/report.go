package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/stackscope/pkg/analyzer"
	"github.com/matzehuels/stackscope/pkg/detect"
	"github.com/matzehuels/stackscope/pkg/integrations/github"
)

const (
	maxContributorRows = 10
	languageBarWidth   = 24
)

var (
	reportKeyStyle    = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	reportHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	reportBorderStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Info
// =============================================================================

// renderInfo renders the header block and the repository or contributor tables.
func renderInfo(info *analyzer.RepoInfoResult) string {
	if info == nil {
		return ""
	}
	var b strings.Builder

	switch {
	case info.IsOrganization && info.Organization != nil:
		o := info.Organization
		b.WriteString(StyleTitle.Render(displayName(o.Name, o.Login)) + StyleDim.Render(" · organization") + "\n")
		writeField(&b, "Login", o.Login)
		writeField(&b, "About", o.Description)
		writeField(&b, "Location", o.Location)
		writeField(&b, "Repos", strconv.Itoa(o.PublicRepos))
		writeField(&b, "Followers", strconv.Itoa(o.Followers))
		writeLink(&b, o.HTMLURL)
	case info.IsUser && info.UserInfo != nil:
		u := info.UserInfo
		b.WriteString(StyleTitle.Render(displayName(u.Name, u.Login)) + StyleDim.Render(" · user") + "\n")
		writeField(&b, "Login", u.Login)
		writeField(&b, "Bio", u.Bio)
		writeField(&b, "Location", u.Location)
		writeField(&b, "Repos", strconv.Itoa(u.PublicRepos))
		writeField(&b, "Followers", strconv.Itoa(u.Followers))
		writeLink(&b, u.HTMLURL)
	case info.RepoInfo != nil:
		r := info.RepoInfo
		b.WriteString(StyleTitle.Render(r.FullName) + "\n")
		writeField(&b, "About", r.Description)
		writeField(&b, "Language", r.Language)
		writeField(&b, "Stars", strconv.Itoa(r.StargazersCount))
		writeField(&b, "Forks", strconv.Itoa(r.ForksCount))
		writeField(&b, "Issues", strconv.Itoa(r.OpenIssuesCount))
		if r.License != nil {
			writeField(&b, "License", r.License.Name)
		}
		if len(r.Topics) > 0 {
			writeField(&b, "Topics", strings.Join(r.Topics, ", "))
		}
		writeLink(&b, r.HTMLURL)
	}

	if len(info.AllRepos) > 0 {
		b.WriteString("\n" + StyleTitle.Render("Top repositories") + "\n")
		b.WriteString(reposTable(info.AllRepos))
		b.WriteString("\n")
	}
	if len(info.Contributors) > 0 {
		title := "Contributors"
		if len(info.AllRepos) > 0 && info.RepoInfo != nil {
			title += StyleDim.Render(" · " + info.RepoInfo.Name)
		}
		b.WriteString("\n" + StyleTitle.Render(title) + "\n")
		b.WriteString(contributorsTable(info.Contributors))
		b.WriteString("\n")
	}
	return b.String()
}

func displayName(name, login string) string {
	if name != "" {
		return name
	}
	return login
}

// writeField writes one key/value line; empty values are omitted.
func writeField(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	b.WriteString(reportKeyStyle.Render(key) + " " + StyleValue.Render(value) + "\n")
}

func writeLink(b *strings.Builder, url string) {
	if url == "" {
		return
	}
	b.WriteString(reportKeyStyle.Render("URL") + " " + StyleLink.Render(url) + "\n")
}

func reposTable(repos []github.Repository) string {
	rows := make([][]string, 0, len(repos))
	for _, r := range repos {
		lang := r.Language
		if lang == "" {
			lang = "—"
		}
		rows = append(rows, []string{r.Name, strconv.Itoa(r.StargazersCount), lang, truncate(r.Description, maxDescription)})
	}
	return newTable(rows, "Repository", "Stars", "Lang", "Description")
}

func contributorsTable(cs []github.Contributor) string {
	rows := make([][]string, 0, len(cs))
	for i, c := range cs {
		if i == maxContributorRows {
			break
		}
		rows = append(rows, []string{c.Login, strconv.Itoa(c.Contributions)})
	}
	return newTable(rows, "Login", "Commits")
}

func newTable(rows [][]string, headers ...string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(reportBorderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return reportHeaderStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		}).
		Render()
}

// =============================================================================
// Languages
// =============================================================================

// languageShare is one language's portion of the total byte count.
type languageShare struct {
	Name    string
	Bytes   int64
	Percent float64
}

// languageShares converts byte counts to percentages, largest first.
// Ties are broken by name so output is stable.
func languageShares(langs analyzer.LanguagesResult) []languageShare {
	var total int64
	for _, n := range langs {
		total += n
	}
	out := make([]languageShare, 0, len(langs))
	for name, n := range langs {
		s := languageShare{Name: name, Bytes: n}
		if total > 0 {
			s.Percent = float64(n) * 100 / float64(total)
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Bytes != out[j].Bytes {
			return out[i].Bytes > out[j].Bytes
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func renderLanguages(langs analyzer.LanguagesResult) string {
	shares := languageShares(langs)
	if len(shares) == 0 {
		return StyleDim.Render("No language data") + "\n"
	}
	width := 0
	for _, s := range shares {
		width = max(width, lipgloss.Width(s.Name))
	}
	nameStyle := lipgloss.NewStyle().Foreground(colorGray).Width(width)

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Languages") + "\n")
	for _, s := range shares {
		filled := int(s.Percent*languageBarWidth/100 + 0.5)
		bar := StyleNumber.Render(strings.Repeat("█", filled)) + StyleDim.Render(strings.Repeat("░", languageBarWidth-filled))
		fmt.Fprintf(&b, "%s %s %s\n", nameStyle.Render(s.Name), bar, StyleValue.Render(fmt.Sprintf("%5.1f%%", s.Percent)))
	}
	return b.String()
}

// =============================================================================
// Technologies
// =============================================================================

func renderTechnologies(tech *analyzer.TechnologiesResult) string {
	if tech == nil || len(tech.Technologies) == 0 {
		return StyleDim.Render("No technologies detected") + "\n"
	}
	var b strings.Builder
	title := "Technologies"
	if tech.AnalyzedRepoCount != nil {
		title += StyleDim.Render(fmt.Sprintf(" · %d repositories analyzed", *tech.AnalyzedRepoCount))
	}
	b.WriteString(StyleTitle.Render(title) + "\n")

	groups := detect.Group(tech.Technologies)
	for _, cat := range detect.Categories {
		labels, ok := groups[cat]
		if !ok {
			continue
		}
		tag := lipgloss.NewStyle().Foreground(lipgloss.Color(cat.Color()))
		tags := make([]string, len(labels))
		for i, l := range labels {
			tags[i] = tag.Render(l)
		}
		b.WriteString(reportKeyStyle.Render(cat.Title()) + " " + strings.Join(tags, StyleDim.Render(", ")) + "\n")
	}

	deps := len(tech.PackageDetails.Dependencies)
	dev := len(tech.PackageDetails.DevDependencies)
	if deps+dev > 0 {
		b.WriteString(StyleDim.Render(fmt.Sprintf("package.json: %d dependencies, %d dev dependencies", deps, dev)) + "\n")
	}
	return b.String()
}
