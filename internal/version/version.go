// Package version reports build metadata injected with -ldflags together
// with what the running binary can render.
package version

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"strings"
	"text/tabwriter"
)

var (
	// These variables are set during build time
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
	GitBranch = "unknown"
)

// stack lists the module prefixes reported under "Stack". Everything else in
// the build graph is transitive and omitted.
var stack = []string{
	"github.com/dustin/go-humanize",
	"github.com/fatih/color",
	"github.com/lucasb-eyer/go-colorful",
	"github.com/mattn/go-isatty",
	"github.com/muesli/termenv",
	"github.com/spf13/afero",
	"github.com/spf13/cobra",
	"github.com/spf13/viper",
	"go.uber.org/zap",
	"golang.org/x/term",
	"golang.org/x/time",
	"gopkg.in/yaml.v3",
}

// Build describes the binary
type Build struct {
	Version   string   `json:"version"`
	SemVer    string   `json:"semver"`
	Commit    string   `json:"commit"`
	Branch    string   `json:"branch"`
	Date      string   `json:"date"`
	GoVersion string   `json:"go_version"`
	Platform  string   `json:"platform"`
	Modules   []Module `json:"modules"`
}

// Module is one library of the rendering stack linked into the binary
type Module struct {
	Path    string `json:"path"`
	Version string `json:"version"`
}

// Stream is an output stream and the capabilities detected on it
type Stream struct {
	Name         string `json:"name"`
	Capabilities string `json:"capabilities"`
}

// Environment is what the configured tool would render with
type Environment struct {
	Themes    []string `json:"themes"`
	Estimator string   `json:"estimator"`
	Alpha     float64  `json:"alpha"`
	Streams   []Stream `json:"streams"`
}

// GetBuild returns the build description of the running binary
func GetBuild() Build {
	b := Build{
		Version:   Version,
		SemVer:    strings.SplitN(Version, "-", 2)[0],
		Commit:    GitCommit,
		Branch:    GitBranch,
		Date:      BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		b.Modules = stackModules(info.Deps)
	}
	return b
}

func stackModules(deps []*debug.Module) []Module {
	var modules []Module
	for _, dep := range deps {
		if dep == nil || !inStack(dep.Path) {
			continue
		}
		v := dep.Version
		if dep.Replace != nil {
			v = dep.Replace.Version
		}
		modules = append(modules, Module{Path: dep.Path, Version: v})
	}
	return modules
}

func inStack(path string) bool {
	for _, prefix := range stack {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// Short returns the one-line version string
func Short() string {
	return fmt.Sprintf("gotqdm %s (%s, %s)", Version, GitCommit, BuildDate)
}

// FullVersion returns the build description followed by the rendering
// environment in env.
func FullVersion(env Environment) string {
	var b strings.Builder
	writeFull(&b, GetBuild(), env)
	return b.String()
}

func writeFull(w io.Writer, build Build, env Environment) {
	fmt.Fprintf(w, "gotqdm %s\n\n", build.Version)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	section(tw, "Build")
	row(tw, "Version", build.SemVer)
	row(tw, "Commit", build.Commit+" ("+build.Branch+")")
	row(tw, "Date", build.Date)
	row(tw, "Go", build.GoVersion+" "+build.Platform)

	section(tw, "Rendering")
	row(tw, "Estimator", fmt.Sprintf("%s (alpha %g)", env.Estimator, env.Alpha))
	row(tw, "Themes", strings.Join(env.Themes, ", "))
	for _, s := range env.Streams {
		row(tw, s.Name, s.Capabilities)
	}

	if len(build.Modules) > 0 {
		section(tw, "Stack")
		for _, m := range build.Modules {
			row(tw, m.Path, m.Version)
		}
	}
	tw.Flush() //nolint:errcheck // strings.Builder never fails
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "%s:\n", title)
}

func row(w io.Writer, key, value string) {
	fmt.Fprintf(w, "  %s\t%s\n", key, value)
}
