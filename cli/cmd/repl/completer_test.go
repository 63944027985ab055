package repl

import (
	"slices"
	"testing"

	"github.com/ardnew/worldc/expr"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"after_plus", "a + fo", 6, "fo", 4, 6},
		{"after_paren", "sqrt(fo", 7, "fo", 5, 7},
		{"after_caret", "2^wi", 4, "wi", 2, 4},
		{"after_comparison", "a > fo", 6, "fo", 4, 6},
		{"empty_at_boundary", "a + ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"between_operators", "a+b", 2, "b", 2, 3},
		{"underscore", "pen_w", 5, "pen_w", 0, 5},
		{"cursor_past_end", "ab", 9, "ab", 0, 2},
		{"negative_cursor", "ab", -1, "ab", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestCandidates(t *testing.T) {
	vars := expr.NewContext()
	vars.Set("width", 3)
	vars.Set("sin", 1)

	got := candidates(modeEval, vars)
	for _, want := range []string{"sin", "sqrt", "deg2rad", "pi", "e", "width"} {
		if !slices.Contains(got, want) {
			t.Errorf("candidates() = %v, missing %q", got, want)
		}
	}

	if !slices.IsSorted(got) || len(slices.Compact(slices.Clone(got))) != len(got) {
		t.Errorf("candidates() = %v, want sorted and unique", got)
	}

	if ctrl := candidates(modeCtrl, vars); !slices.Equal(ctrl, ctrlCommands) {
		t.Errorf("candidates(ctrl) = %v, want %v", ctrl, ctrlCommands)
	}
}

func TestRenderCandidateBar(t *testing.T) {
	m := newTestModel(t)
	m = typeText(m, "s")

	if len(m.matches) == 0 {
		t.Fatal("no matches for \"s\"")
	}

	if bar := renderCandidateBar(m.matches, -1, false, 0); bar != "" {
		t.Errorf("zero width bar = %q, want empty", bar)
	}

	if bar := renderCandidateBar(nil, -1, false, 80); bar != "" {
		t.Errorf("empty matches bar = %q, want empty", bar)
	}

	if bar := renderCandidateBar(m.matches, 0, true, 80); bar == "" {
		t.Error("bar is empty")
	}
}
