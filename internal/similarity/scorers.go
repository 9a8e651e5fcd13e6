package similarity

import (
	"regexp"
	"strings"

	"github.com/Jayvieeeee/digital-repositories-sub000/internal/ngram"
	"github.com/Jayvieeeee/digital-repositories-sub000/internal/section"
)

const (
	minParagraphLength = 50
	phraseWindowWords  = 10
	phraseWindowStep   = 3
)

// Document bundles one normalized text with its derived section map so a
// pair of documents is segmented once, not once per scorer.
type Document struct {
	Text     string
	Sections []section.Section
}

func NewDocument(text string) Document {
	return Document{Text: text, Sections: section.Segment(text)}
}

// Scorer is one named pairwise scoring strategy. All strategies stay in
// [0,100], return 0 on empty input, and never fail.
type Scorer struct {
	Name  string
	Score func(a, b Document) float64
}

// Scorers returns the strategy list the engine fans out over. Adding or
// removing a strategy here is the only change needed to grow the ensemble.
func Scorers() []Scorer {
	return []Scorer{
		{Name: "sections", Score: func(a, b Document) float64 { return SectionScore(a.Sections, b.Sections) }},
		{Name: "paragraphs", Score: func(a, b Document) float64 { return ParagraphScore(a.Text, b.Text) }},
		{Name: "phrases", Score: func(a, b Document) float64 { return PhraseScore(a.Text, b.Text) }},
		{Name: "ngrams", Score: func(a, b Document) float64 { return NgramScore(a.Text, b.Text) }},
		{Name: "characters", Score: func(a, b Document) float64 { return TextSimilarity(a.Text, b.Text) }},
	}
}

// SectionScore matches every section of a against its best counterpart in
// b and averages over the sections that found a positive match. Sections
// with no match are left out of the denominator entirely.
func SectionScore(a, b []section.Section) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	sum := 0.0
	matched := 0
	for _, sa := range a {
		best := 0.0
		for _, sb := range b {
			if s := TextSimilarity(sa.Text, sb.Text); s > best {
				best = s
			}
		}
		if best > 0 {
			sum += best
			matched++
		}
	}
	if matched == 0 {
		return 0
	}
	return round2(sum / float64(matched))
}

// ParagraphScore is the section strategy applied to raw paragraphs longer
// than 50 characters on both sides.
func ParagraphScore(a, b string) float64 {
	pa := paragraphs(a)
	pb := paragraphs(b)
	if len(pa) == 0 || len(pb) == 0 {
		return 0
	}
	sum := 0.0
	matched := 0
	for _, p := range pa {
		best := 0.0
		for _, q := range pb {
			if s := TextSimilarity(p, q); s > best {
				best = s
			}
		}
		if best > 0 {
			sum += best
			matched++
		}
	}
	if matched == 0 {
		return 0
	}
	return round2(sum / float64(matched))
}

// PhraseScore slides a 10-word window over a in steps of 3 and scores each
// window against its best match among b's windows. Unlike the section and
// paragraph strategies, every window counts toward the denominator even
// when its best match is zero. Texts under 10 tokens on either side fall
// back to the character primitive over the whole texts.
func PhraseScore(a, b string) float64 {
	ta := strings.Fields(a)
	tb := strings.Fields(b)
	if len(ta) < phraseWindowWords || len(tb) < phraseWindowWords {
		return TextSimilarity(a, b)
	}
	winA := phraseWindows(ta)
	winB := phraseWindows(tb)
	sum := 0.0
	for _, w := range winA {
		best := 0.0
		for _, v := range winB {
			if s := TextSimilarity(w, v); s > best {
				best = s
			}
		}
		sum += best
	}
	return round2(sum / float64(len(winA)))
}

// NgramScore compares the mixed 2/3/4-gram sets of both texts using
// intersection over the smaller set. The min-size denominator inflates
// scores for length-mismatched pairs and makes the score asymmetric; the
// flagging thresholds are tuned against this formula, so it stays. Either
// set being empty degrades to the character primitive.
func NgramScore(a, b string) float64 {
	setA := ngram.Set(a, ngram.DefaultSizes)
	setB := ngram.Set(b, ngram.DefaultSizes)
	if len(setA) == 0 || len(setB) == 0 {
		return TextSimilarity(a, b)
	}
	inter := 0
	for g := range setA {
		if _, ok := setB[g]; ok {
			inter++
		}
	}
	smaller := len(setA)
	if len(setB) < smaller {
		smaller = len(setB)
	}
	return round2(clampScore(float64(inter) / float64(smaller) * 100))
}

var paragraphSplit = regexp.MustCompile(`\n{2,}`)

func paragraphs(text string) []string {
	parts := paragraphSplit.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) < minParagraphLength {
			continue
		}
		out = append(out, p)
	}
	return out
}

func phraseWindows(tokens []string) []string {
	out := make([]string, 0, len(tokens)/phraseWindowStep+1)
	for i := 0; i+phraseWindowWords <= len(tokens); i += phraseWindowStep {
		out = append(out, strings.Join(tokens[i:i+phraseWindowWords], " "))
	}
	return out
}
