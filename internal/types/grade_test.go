package types

import "testing"

func TestLetterGradeFor(t *testing.T) {
	cases := []struct {
		value float64
		want  string
	}{
		{95, "A"},
		{90, "A"},
		{85, "B"},
		{80, "B"},
		{75, "C"},
		{70, "C"},
		{65, "D"},
		{60, "D"},
		{55, "F"},
		{0, "F"},
	}
	for _, c := range cases {
		if got := LetterGradeFor(c.value); got != c.want {
			t.Fatalf("LetterGradeFor(%v) = %q, want %q", c.value, got, c.want)
		}
	}
}

func TestGradeBeforeSaveDerivesLetterOnce(t *testing.T) {
	g := &Grade{Value: 95}
	if err := g.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave: %v", err)
	}
	if g.LetterGrade != "A" {
		t.Fatalf("derived letter = %q, want A", g.LetterGrade)
	}

	// An already-present letter is never re-derived, even when the numeric
	// value no longer matches it.
	g.Value = 10
	if err := g.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave: %v", err)
	}
	if g.LetterGrade != "A" {
		t.Fatalf("letter re-derived to %q, want A kept", g.LetterGrade)
	}
}

func TestGradeBeforeSaveKeepsExplicitLetter(t *testing.T) {
	g := &Grade{Value: 40, LetterGrade: "B"}
	if err := g.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave: %v", err)
	}
	if g.LetterGrade != "B" {
		t.Fatalf("explicit letter overwritten to %q", g.LetterGrade)
	}
}
