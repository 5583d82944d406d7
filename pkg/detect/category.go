package detect

import "strings"

// Category groups technology labels for presentation.
type Category string

const (
	Frontend Category = "frontend"
	Backend  Category = "backend"
	Database Category = "database"
	DevOps   Category = "devops"
	Testing  Category = "testing"
	Mobile   Category = "mobile"
	Tools    Category = "tools"
	Other    Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{Frontend, Backend, Database, DevOps, Testing, Mobile, Tools, Other}

var categoryTitles = map[Category]string{
	Frontend: "Frontend",
	Backend:  "Backend",
	Database: "Database",
	DevOps:   "DevOps",
	Testing:  "Testing",
	Mobile:   "Mobile",
	Tools:    "Tools",
	Other:    "Other",
}

var categoryColors = map[Category]string{
	Frontend: "#3B82F6",
	Backend:  "#10B981",
	Database: "#6366F1",
	DevOps:   "#F59E0B",
	Testing:  "#EC4899",
	Mobile:   "#8B5CF6",
	Tools:    "#6B7280",
	Other:    "#9CA3AF",
}

// Title returns the display name of the category.
func (c Category) Title() string {
	if t, ok := categoryTitles[c]; ok {
		return t
	}
	return string(c)
}

// Color returns the category's hex display color.
func (c Category) Color() string {
	if col, ok := categoryColors[c]; ok {
		return col
	}
	return categoryColors[Other]
}

// known lists the well-known technologies of each category. Order matters:
// the first category with a match wins.
var known = []struct {
	category Category
	names    []string
}{
	{Frontend, []string{
		"React", "Angular", "Vue.js", "Svelte", "Next.js", "Nuxt.js",
		"TypeScript", "JavaScript", "HTML", "CSS", "Tailwind", "Bootstrap",
		"Material-UI", "Chakra UI", "Styled Components",
	}},
	{Backend, []string{
		"Node.js", "Express", "Django", "Flask", "Spring", "ASP.NET",
		"Laravel", "Ruby on Rails", "PHP", "Java", "Python", "Go", "Rust",
	}},
	{Database, []string{
		"MongoDB", "PostgreSQL", "MySQL", "SQLite", "Redis", "Elasticsearch",
		"Firestore", "DynamoDB", "Cassandra", "Neo4j",
	}},
	{DevOps, []string{
		"Docker", "Kubernetes", "GitHub Actions", "Travis CI", "Jenkins",
		"CircleCI", "AWS", "Google Cloud", "Azure", "Heroku", "Netlify", "Vercel",
	}},
	{Testing, []string{
		"Jest", "Mocha", "Cypress", "Selenium", "Puppeteer", "React Testing Library",
		"Enzyme", "JUnit", "PyTest",
	}},
	{Mobile, []string{
		"React Native", "Flutter", "Swift", "Kotlin", "Ionic", "Xamarin",
	}},
	{Tools, []string{
		"Webpack", "Babel", "ESLint", "Prettier", "npm", "Yarn", "Vite", "Rollup",
	}},
}

// minSubstring is the shortest well-known name matched inside a longer label.
// Shorter names ("Go") only match exactly.
const minSubstring = 3

var keywordFallbacks = []struct {
	category Category
	keywords []string
}{
	{Tools, []string{"lint", "format"}},
	{Database, []string{"db", "sql"}},
	{Testing, []string{"test", "spec"}},
	{Frontend, []string{"ui", "css"}},
	{Backend, []string{"server", "api"}},
}

// Categorize assigns a label to a category. An exact case-insensitive match
// against the well-known names wins first, then a well-known name contained
// in the label (so "@angular/core" is frontend), then keyword fallbacks
// (lint, db, test, ui, server and similar). Anything else is Other.
func Categorize(label string) Category {
	l := strings.ToLower(strings.TrimSpace(label))
	if l == "" {
		return Other
	}

	for _, k := range known {
		for _, n := range k.names {
			if strings.ToLower(n) == l {
				return k.category
			}
		}
	}
	for _, k := range known {
		for _, n := range k.names {
			if len(n) >= minSubstring && strings.Contains(l, strings.ToLower(n)) {
				return k.category
			}
		}
	}
	for _, f := range keywordFallbacks {
		for _, kw := range f.keywords {
			if strings.Contains(l, kw) {
				return f.category
			}
		}
	}
	return Other
}

// Group buckets labels by category, preserving input order within each bucket.
// Empty categories are omitted.
func Group(labels []string) map[Category][]string {
	out := make(map[Category][]string)
	for _, l := range labels {
		c := Categorize(l)
		out[c] = append(out[c], l)
	}
	return out
}
