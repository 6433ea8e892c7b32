package services

import (
	"strings"
	"testing"
)

// makeSentence returns a sentence of exactly n runes ending in a
// period.
func makeSentence(n int) string {
	return strings.Repeat("a", n-1) + "."
}

func TestSplitSegmentsShortTextSingleSegment(t *testing.T) {
	text := "I think exploring the ocean would be a wonderful career path for you. What part excites you most?"
	if len(text) < segmentMinLen || len(text) >= segmentMaxLen {
		t.Fatalf("test input sized wrong: %d", len(text))
	}
	segments := SplitSegments(text)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d: %v", len(segments), segments)
	}
	if segments[0] != strings.TrimSpace(text) {
		t.Fatalf("segment should equal trimmed input, got %q", segments[0])
	}
}

func TestSplitSegmentsPreservesNewlines(t *testing.T) {
	text := "I think exploring the ocean would be a wonderful career path for you.\nWhat part excites you most?"
	segments := SplitSegments(text)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d: %v", len(segments), segments)
	}
	if segments[0] != text {
		t.Fatalf("newline between sentences was not preserved, got %q", segments[0])
	}
}

func TestSplitSegmentsEmptyInput(t *testing.T) {
	if segments := SplitSegments("   "); segments != nil {
		t.Fatalf("expected nil for blank input, got %v", segments)
	}
}

func TestSplitSegmentsRebucketsToThree(t *testing.T) {
	// Six sentences sized so the greedy pass yields 4 groups
	// (130, 130, 130+60+60, 60), forcing the ceil(n/3) re-bucket.
	sentences := []string{
		makeSentence(130),
		makeSentence(130),
		makeSentence(130),
		makeSentence(60),
		makeSentence(60),
		makeSentence(60),
	}
	text := strings.Join(sentences, " ")

	segments := SplitSegments(text)
	if len(segments) != 3 {
		t.Fatalf("expected exactly 3 segments, got %d", len(segments))
	}

	// Each segment must be a contiguous subset and nothing may be
	// dropped or duplicated.
	if strings.Join(segments, " ") != text {
		t.Fatalf("segments do not reassemble into the original sentence list")
	}
	for i, seg := range segments {
		want := sentences[2*i] + " " + sentences[2*i+1]
		if seg != want {
			t.Fatalf("segment %d is not the expected contiguous pair", i)
		}
	}
}

func TestSplitSegmentsGreedyStopsAtThree(t *testing.T) {
	// Three long sentences stay as three greedy segments untouched.
	sentences := []string{makeSentence(130), makeSentence(130), makeSentence(130)}
	segments := SplitSegments(strings.Join(sentences, " "))
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}
}

func TestSplitSentencesKeepsDelimiters(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "period_and_question",
			in:   "Hello there. How are you?",
			want: []string{"Hello there. ", "How are you?"},
		},
		{
			name: "cjk_punctuation",
			in:   "こんにちは。元気ですか？",
			want: []string{"こんにちは。元気ですか？"},
		},
		{
			name: "cjk_punctuation_with_space",
			in:   "こんにちは。 元気ですか？",
			want: []string{"こんにちは。 ", "元気ですか？"},
		},
		{
			name: "emoji_boundary",
			in:   "Great job \U0001F31F Keep it up!",
			want: []string{"Great job \U0001F31F ", "Keep it up!"},
		},
		{
			name: "newline_separator",
			in:   "First line.\nSecond line?",
			want: []string{"First line.\n", "Second line?"},
		},
		{
			name: "trailing_remainder",
			in:   "First sentence. and then a trailing fragment",
			want: []string{"First sentence. ", "and then a trailing fragment"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := splitSentences(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d sentences %v, want %d", len(got), got, len(tc.want))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("sentence %d = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}
