package icons

import "testing"

func TestResolve(t *testing.T) {
	if got := Resolve("star"); got != "★" {
		t.Fatalf("expected ★, got %q", got)
	}
	if got := Resolve("plane-takeoff"); got != "✈" {
		t.Fatalf("kebab-case lookup failed: got %q", got)
	}
}

func TestResolveDefault(t *testing.T) {
	if got := Resolve(""); got != DefaultGlyph {
		t.Fatalf("empty name should default, got %q", got)
	}
	if got := Resolve("no-such-icon"); got != DefaultGlyph {
		t.Fatalf("unknown name should default, got %q", got)
	}
}

func TestIdentifiersAllResolve(t *testing.T) {
	for _, name := range Identifiers {
		if got := Resolve(name); got == "" {
			t.Errorf("%s resolved to empty glyph", name)
		}
	}
	// Every listed identifier is a real mapping, not the fallback path.
	for _, name := range Identifiers {
		if _, ok := glyphs[pascal(name)]; !ok {
			t.Errorf("%s has no glyph entry", name)
		}
	}
}

func TestPascal(t *testing.T) {
	if got := pascal("book-open"); got != "BookOpen" {
		t.Fatalf("expected BookOpen, got %q", got)
	}
	if got := pascal("folder"); got != "Folder" {
		t.Fatalf("expected Folder, got %q", got)
	}
}
