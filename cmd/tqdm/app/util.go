package app

import (
	"sort"
	"strings"

	"github.com/mevatron/gotqdm/pkg/progress"
)

func trimCarriageReturn(s string) string {
	return strings.TrimRight(strings.TrimLeft(s, "\r"), " ")
}

func containsTheme(names []progress.ThemeName, name progress.ThemeName) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func sortThemes(names []progress.ThemeName) {
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
}
