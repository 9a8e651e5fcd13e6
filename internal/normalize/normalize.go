package normalize

import (
	"regexp"
	"strings"
)

// MinMeaningfulLength is the floor below which cleaned text is treated as
// garbage extraction rather than comparable content.
const MinMeaningfulLength = 50

const minTokenLength = 3

var disallowed = regexp.MustCompile(`[^a-z0-9 \n.]+`)
var intraSpace = regexp.MustCompile(`[ \t]+`)
var paragraphBreak = regexp.MustCompile(`\n{2,}`)

// Normalize lowercases raw text, strips everything outside [a-z0-9 \n .],
// removes stopwords and tokens shorter than 3 characters, and rejoins the
// surviving paragraphs with double newlines. Returns "" when the input is
// empty or the result is shorter than MinMeaningfulLength.
func Normalize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ToLower(text)
	text = disallowed.ReplaceAllString(text, " ")
	text = intraSpace.ReplaceAllString(text, " ")

	paragraphs := paragraphBreak.Split(text, -1)
	kept := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		tokens := strings.Fields(p)
		surviving := make([]string, 0, len(tokens))
		for _, tok := range tokens {
			word := strings.Trim(tok, ".")
			if len(word) < minTokenLength {
				continue
			}
			if _, stop := stopwords[word]; stop {
				continue
			}
			surviving = append(surviving, tok)
		}
		if len(surviving) == 0 {
			continue
		}
		kept = append(kept, strings.Join(surviving, " "))
	}

	result := strings.Join(kept, "\n\n")
	if len(result) < MinMeaningfulLength {
		return ""
	}
	return result
}

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "are": {}, "was": {}, "were": {}, "been": {},
	"being": {}, "for": {}, "with": {}, "this": {}, "that": {}, "these": {},
	"those": {}, "from": {}, "into": {}, "onto": {}, "about": {}, "between": {},
	"through": {}, "during": {}, "before": {}, "after": {}, "above": {},
	"below": {}, "over": {}, "under": {}, "again": {}, "further": {},
	"then": {}, "once": {}, "here": {}, "there": {}, "when": {}, "where": {},
	"why": {}, "how": {}, "all": {}, "any": {}, "both": {}, "each": {},
	"few": {}, "more": {}, "most": {}, "other": {}, "some": {}, "such": {},
	"not": {}, "only": {}, "own": {}, "same": {}, "than": {}, "too": {},
	"very": {}, "can": {}, "will": {}, "just": {}, "should": {}, "now": {},
	"but": {}, "because": {}, "until": {}, "while": {}, "against": {},
	"has": {}, "have": {}, "had": {}, "having": {}, "does": {}, "did": {},
	"doing": {}, "would": {}, "could": {}, "its": {}, "they": {}, "them": {},
	"their": {},
}
