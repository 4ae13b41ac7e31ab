// Package icons resolves project icon identifiers to terminal glyphs.
package icons

import "strings"

// DefaultGlyph is used for projects with no icon or an unknown one.
const DefaultGlyph = "▣" // folder

// glyphs maps canonical PascalCase identifiers to glyphs. The set is fixed
// at build time; lookups never consult anything dynamic.
var glyphs = map[string]string{
	"Folder":       DefaultGlyph,
	"Briefcase":    "⚒",
	"Code":         "⌨",
	"Terminal":     "▮",
	"Book":         "▤",
	"BookOpen":     "▥",
	"Pencil":       "✎",
	"Plane":        "✈",
	"PlaneTakeoff": "✈",
	"Coffee":       "☕",
	"Heart":        "♥",
	"Star":         "★",
	"Music":        "♪",
	"Mail":         "✉",
	"Phone":        "☎",
	"Flag":         "⚑",
	"Wrench":       "⚙",
	"Sun":          "☀",
	"Moon":         "☾",
	"Clock":        "◷",
	"Globe":        "◍",
	"Home":         "⌂",
}

// Identifiers lists the selectable kebab-case icon names, as stored on
// projects.
var Identifiers = []string{
	"book",
	"book-open",
	"briefcase",
	"clock",
	"code",
	"coffee",
	"flag",
	"folder",
	"globe",
	"heart",
	"home",
	"mail",
	"moon",
	"music",
	"pencil",
	"phone",
	"plane",
	"plane-takeoff",
	"star",
	"sun",
	"terminal",
	"wrench",
}

// Resolve maps a kebab-case icon name to a glyph. Absent and unknown names
// degrade to DefaultGlyph; Resolve is total and never fails.
func Resolve(name string) string {
	if name == "" {
		return DefaultGlyph
	}
	if g, ok := glyphs[pascal(name)]; ok {
		return g
	}
	return DefaultGlyph
}

// pascal converts kebab-case to the canonical identifier casing:
// "plane-takeoff" -> "PlaneTakeoff".
func pascal(kebab string) string {
	var b strings.Builder
	for _, word := range strings.Split(kebab, "-") {
		if word == "" {
			continue
		}
		b.WriteString(strings.ToUpper(word[:1]))
		b.WriteString(word[1:])
	}
	return b.String()
}
