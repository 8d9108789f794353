package chunkmerge

import (
	"testing"

	gyaml "github.com/goccy/go-yaml"
	"github.com/pmezard/go-difflib/difflib"
)

// --- helpers for tests ---

func mustMap(t *testing.T, s string) gyaml.MapSlice {
	t.Helper()
	var ms gyaml.MapSlice
	if err := gyaml.UnmarshalWithOptions([]byte(s), &ms, gyaml.UseOrderedMap()); err != nil {
		t.Fatalf("decode mapping %q: %v", s, err)
	}
	return ms
}

func mustList(t *testing.T, s string) []any {
	t.Helper()
	var l []any
	if err := gyaml.UnmarshalWithOptions([]byte(s), &l, gyaml.UseOrderedMap()); err != nil {
		t.Fatalf("decode sequence %q: %v", s, err)
	}
	return l
}

func mustYAML(t *testing.T, v any) string {
	t.Helper()
	out, err := gyaml.Marshal(v)
	if err != nil {
		t.Fatalf("encode %#v: %v", v, err)
	}
	return string(out)
}

// assertYAML compares got to the document want after both pass through the
// same encoder, so integer widths do not matter.
func assertYAML(t *testing.T, got any, want string) {
	t.Helper()
	var w any
	if err := gyaml.UnmarshalWithOptions([]byte(want), &w, gyaml.UseOrderedMap()); err != nil {
		t.Fatalf("decode want %q: %v", want, err)
	}
	g, e := mustYAML(t, got), mustYAML(t, w)
	if g != e {
		t.Fatalf("merge result mismatch:\n%s", unifiedDiff(e, g))
	}
}

func unifiedDiff(before, after string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}

// snapshot records v so tests can check it was not modified.
func snapshot(t *testing.T, vs ...any) []string {
	t.Helper()
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = mustYAML(t, v)
	}
	return out
}

func assertUnchanged(t *testing.T, before []string, vs ...any) {
	t.Helper()
	after := snapshot(t, vs...)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("input %d was modified:\n%s", i, unifiedDiff(before[i], after[i]))
		}
	}
}
