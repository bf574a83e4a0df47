package markup

import "testing"

func TestStripCitations(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"numeric marker", "fact[1]", "fact"},
		{"multi-digit marker", "fact[42]", "fact"},
		{"edit marker", "History[edit]", "History"},
		{"single char marker", "note[a]", "note"},
		{"mixed markers", "See [1][edit][a] more[42]", "See  more"},
		{"non-citation unwrapped", "the [quick brown] fox", "the quick brown fox"},
		{"lone close dropped", "stray] text", "stray text"},
		{"unmatched open kept", "open [bracket", "open [bracket"},
		{"empty marker", "x[]y", "xy"},
		{"plain text untouched", "nothing here", "nothing here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripCitations(tt.in)
			if got != tt.want {
				t.Errorf("StripCitations(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripCitationsIdempotent(t *testing.T) {
	inputs := []string{
		"See [1][edit][a] more[42]",
		"the [quick brown] fox",
		"open [bracket",
		"[[nested]]",
		"plain",
	}

	for _, in := range inputs {
		once := StripCitations(in)
		twice := StripCitations(once)
		if once != twice {
			t.Errorf("not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestCleanInfobox(t *testing.T) {
	raw := "Title\n" +
		"────────────\n" +
		"[[File:logo.png]]\n" +
		"[1]: reference line\n" +
		"\n" +
		"\n" +
		"Population  8 billion[2]\n" +
		"|  |\n" +
		"Founded 1888\n"

	got := CleanInfobox(raw)
	want := "Title\n\nPopulation  8 billion\nFounded 1888"

	if got != want {
		t.Errorf("CleanInfobox = %q, want %q", got, want)
	}
}

func TestCleanInfoboxBoundedLookahead(t *testing.T) {
	// The closing bracket is beyond the lookahead window, so the span is
	// not treated as a marker; brackets survive as literal text minus the
	// stray close.
	got := CleanInfobox("value [123456789]\n")
	if got != "value [123456789" {
		t.Errorf("expected bounded window to leave long span, got %q", got)
	}
}

func TestCleanInfoboxTrimsBlankEdges(t *testing.T) {
	got := CleanInfobox("\n\nA\n\n\nB\n\n")
	if got != "A\n\nB" {
		t.Errorf("expected blank runs collapsed and edges trimmed, got %q", got)
	}
}
