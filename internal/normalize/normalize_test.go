package normalize

import (
	"strings"
	"testing"
)

func TestNormalizeLowercasesAndStripsPunctuation(t *testing.T) {
	raw := "Machine Learning METHODS (2024): evaluation, benchmarks & results! " +
		"Accuracy improved across seventeen distinct benchmark datasets overall."
	got := Normalize(raw)
	if got == "" {
		t.Fatalf("expected non-empty normalized text")
	}
	if got != strings.ToLower(got) {
		t.Fatalf("expected lowercased output, got %q", got)
	}
	for _, bad := range []string{"(", ")", ":", ",", "&", "!"} {
		if strings.Contains(got, bad) {
			t.Fatalf("expected %q to be stripped, got %q", bad, got)
		}
	}
}

func TestNormalizeDropsStopwordsAndShortTokens(t *testing.T) {
	raw := "the proposed architecture and the evaluation of it is an exhaustive comparison " +
		"between baseline systems over multiple datasets examined during twelve experiments"
	got := Normalize(raw)
	if got == "" {
		t.Fatalf("expected non-empty normalized text")
	}
	for _, tok := range strings.Fields(got) {
		word := strings.Trim(tok, ".")
		if len(word) < 3 {
			t.Fatalf("short token %q survived normalization", tok)
		}
		if _, ok := stopwords[word]; ok {
			t.Fatalf("stopword %q survived normalization", tok)
		}
	}
}

func TestNormalizePreservesParagraphStructure(t *testing.T) {
	raw := "paragraph alpha discusses methodology details extensively throughout several pages\n\n" +
		"paragraph beta presents quantitative measurements gathered across experiments repeatedly"
	got := Normalize(raw)
	if !strings.Contains(got, "\n\n") {
		t.Fatalf("expected paragraph break to survive, got %q", got)
	}
}

func TestNormalizeDropsEmptiedParagraphs(t *testing.T) {
	raw := "is an at to it\n\nsubstantial paragraph describing measurement procedures performed " +
		"across laboratory sessions spanning several consecutive weeks entirely"
	got := Normalize(raw)
	if strings.Contains(got, "\n\n") {
		t.Fatalf("expected emptied paragraph to be dropped, got %q", got)
	}
	if got == "" {
		t.Fatalf("expected surviving paragraph")
	}
}

func TestNormalizeRejectsEmptyAndDegenerateInput(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Fatalf("expected empty result for empty input, got %q", got)
	}
	if got := Normalize("   \n\n \t "); got != "" {
		t.Fatalf("expected empty result for whitespace input, got %q", got)
	}
	// Survivors shorter than the 50-char floor are treated as garbage.
	if got := Normalize("brief note"); got != "" {
		t.Fatalf("expected short cleaned text to be rejected, got %q", got)
	}
}

func TestNormalizeIsDeterministic(t *testing.T) {
	raw := "Consistent input: should always produce identical normalized output, " +
		"independent of how many times normalization runs across identical text."
	a := Normalize(raw)
	b := Normalize(raw)
	if a != b {
		t.Fatalf("expected deterministic output, got %q vs %q", a, b)
	}
}
