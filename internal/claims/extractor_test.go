package claims

import (
	"testing"

	"github.com/rs/zerolog"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	e, err := NewExtractor(newTestLogger())
	if err != nil {
		t.Fatalf("NewExtractor failed: %v", err)
	}
	return e
}

func TestExtract_SentencePerClaim(t *testing.T) {
	e := newTestExtractor(t)
	answer := "The Eiffel Tower is in Paris. It was built in 1889."

	claims := e.Extract(answer)

	if len(claims) != 2 {
		t.Fatalf("expected 2 claims, got %d", len(claims))
	}
	if claims[0].Text != "The Eiffel Tower is in Paris." {
		t.Errorf("unexpected first claim: %q", claims[0].Text)
	}
	if claims[1].Text != "It was built in 1889." {
		t.Errorf("unexpected second claim: %q", claims[1].Text)
	}
}

func TestExtract_SpansRecoverable(t *testing.T) {
	e := newTestExtractor(t)
	answer := "The rover landed in 2021. It carried a helicopter and a set of cameras."

	claims := e.Extract(answer)

	if len(claims) == 0 {
		t.Fatal("expected claims")
	}
	prevEnd := 0
	for _, c := range claims {
		start, end := c.Span.Start(), c.Span.End()
		if start < prevEnd {
			t.Errorf("claim %d span overlaps previous claim: start %d < %d", c.ID, start, prevEnd)
		}
		if end > len(answer) {
			t.Fatalf("claim %d span end %d exceeds answer length %d", c.ID, end, len(answer))
		}
		if answer[start:end] != c.Text {
			t.Errorf("claim %d span does not recover text: got %q, want %q", c.ID, answer[start:end], c.Text)
		}
		prevEnd = end
	}
}

func TestExtract_SequentialIDs(t *testing.T) {
	e := newTestExtractor(t)

	claims := e.Extract("Water boils at 100 degrees. Ice melts at zero. Steam is a gas.")

	for i, c := range claims {
		if c.ID != i {
			t.Errorf("claim at position %d has id %d", i, c.ID)
		}
	}
}

func TestExtract_DegenerateInput(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		name   string
		answer string
	}{
		{"empty", ""},
		{"whitespace", "   \n\t  "},
		{"punctuation only", "... !!! ???"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if claims := e.Extract(tt.answer); len(claims) != 0 {
				t.Errorf("expected no claims, got %d", len(claims))
			}
		})
	}
}

// Near-duplicate claims are deliberately kept as independent entries; the
// pipeline never merges them.
func TestExtract_KeepsNearDuplicates(t *testing.T) {
	e := newTestExtractor(t)
	answer := "Paris is the capital of France. Paris is the capital of France."

	claims := e.Extract(answer)

	if len(claims) != 2 {
		t.Fatalf("expected 2 independent claims, got %d", len(claims))
	}
	if claims[0].Text != claims[1].Text {
		t.Errorf("expected duplicate texts, got %q and %q", claims[0].Text, claims[1].Text)
	}
	if claims[0].Span == claims[1].Span {
		t.Error("duplicate claims must keep distinct spans")
	}
}

func TestSplitClauses(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		want     []string
	}{
		{
			name:     "no split",
			sentence: "The Eiffel Tower is in Paris.",
			want:     []string{"The Eiffel Tower is in Paris."},
		},
		{
			name:     "conjunction kept with following clause",
			sentence: "The tower is in Paris and it was built in 1889.",
			want:     []string{"The tower is in Paris", "and it was built in 1889."},
		},
		{
			name:     "comma split",
			sentence: "The rover landed in 2021, carrying a helicopter.",
			want:     []string{"The rover landed in 2021", "carrying a helicopter."},
		},
		{
			name:     "comma before digit not split",
			sentence: "The budget reached 1, 500 units last year.",
			want:     []string{"The budget reached 1, 500 units last year."},
		},
		{
			name:     "enumeration kept whole",
			sentence: "1. First the sample is cleaned and dried.",
			want:     []string{"1. First the sample is cleaned and dried."},
		},
		{
			name:     "but splits",
			sentence: "The result was close but the margin held.",
			want:     []string{"The result was close", "but the margin held."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			units := splitClauses(tt.sentence)
			if len(units) != len(tt.want) {
				t.Fatalf("expected %d units, got %d: %#v", len(tt.want), len(units), units)
			}
			for i, u := range units {
				if u.text != tt.want[i] {
					t.Errorf("unit %d: got %q, want %q", i, u.text, tt.want[i])
				}
				if got := tt.sentence[u.offset : u.offset+len(u.text)]; got != u.text {
					t.Errorf("unit %d offset does not recover text: got %q", i, got)
				}
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "The Eiffel Tower", "the eiffel tower"},
		{"thousands separator", "It stands 1,063 feet tall", "it stands 1063 feet tall"},
		{"unit expansion", "about 330 km away", "about 330 kilometer away"},
		{"unit inside word untouched", "the minimum distance", "the minimum distance"},
		{"whitespace collapsed", "a  b\t c", "a b c"},
		{"multiple units", "5 kg over 2 hr", "5 kilogram over 2 hour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
