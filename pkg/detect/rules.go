package detect

import (
	"path"
	"strings"
)

// rule contributes its label when any input file matches.
// match receives the lowercased path and its lowercased base name.
type rule struct {
	label string
	match func(p, base string) bool
}

func contains(sub string) func(p, base string) bool {
	return func(_, base string) bool { return strings.Contains(base, sub) }
}

func named(names ...string) func(p, base string) bool {
	return func(_, base string) bool {
		for _, n := range names {
			if base == n {
				return true
			}
		}
		return false
	}
}

func ext(exts ...string) func(p, base string) bool {
	return func(_, base string) bool {
		e := path.Ext(base)
		for _, x := range exts {
			if e == x {
				return true
			}
		}
		return false
	}
}

func anyOf(fns ...func(p, base string) bool) func(p, base string) bool {
	return func(p, base string) bool {
		for _, fn := range fns {
			if fn(p, base) {
				return true
			}
		}
		return false
	}
}

// workflowsDir matches the GitHub Actions workflows directory or anything in it.
func workflowsDir(p, _ string) bool {
	return p == ".github/workflows" || strings.HasPrefix(p, ".github/workflows/")
}

// rules is the file-signal table. Each rule is independent: none disables
// another, and overlapping labels are collapsed by Detect.
var rules = []rule{
	{"Angular", anyOf(contains("angular"), named("angular.json"))},
	{"React", anyOf(contains("react"), named("react-app-env.d.ts"))},
	{"Vue.js", anyOf(contains("vue"), named("vue.config.js"))},
	{"Svelte", contains("svelte")},
	{"Next.js", named("next.config.js")},
	{"Express", contains("express")},
	{"Python", anyOf(ext(".py"), named("requirements.txt"))},
	{"Java", anyOf(ext(".java"), named("pom.xml"))},
	{"Go", anyOf(ext(".go"), named("go.mod"))},
	{"Ruby", named("gemfile")},
	{"Rust", named("cargo.toml")},
	{"PHP", named("composer.json")},
	{"MongoDB", contains("mongo")},
	{"PostgreSQL", contains("postgres")},
	{"MySQL", contains("mysql")},
	{"Tailwind", named("tailwind.config.js")},
	{"TypeScript", anyOf(named("tsconfig.json"), ext(".ts", ".tsx"))},
	{"JavaScript", ext(".js", ".jsx")},
	{"HTML", ext(".html")},
	{"CSS", ext(".css")},
	{"Node.js", named("package.json")},
	{"Webpack", named("webpack.config.js")},
	{"Docker", named("dockerfile", "docker-compose.yml")},
	{"Travis CI", named(".travis.yml")},
	{"GitHub Actions", workflowsDir},
}
