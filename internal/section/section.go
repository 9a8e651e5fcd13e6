package section

import (
	"fmt"
	"regexp"
	"strings"
)

// Section is one labeled slice of a document. Labels are unique within a
// segmentation result and keep document order.
type Section struct {
	Label string
	Text  string
}

const minSectionLength = 50

var canonicalHeadings = []string{
	"abstract",
	"introduction",
	"methodology",
	"results",
	"discussion",
	"conclusion",
	"references",
}

var headingPatterns = buildHeadingPatterns()

var paragraphSplit = regexp.MustCompile(`\n{2,}`)

// Segment splits normalized text into labeled sections by matching the
// canonical research-document headings. When no heading matches it falls
// back to paragraph_<n> keys over paragraphs longer than 50 characters.
// Worst case it returns an empty slice; it never fails.
func Segment(normalized string) []Section {
	if strings.TrimSpace(normalized) == "" {
		return nil
	}

	out := make([]Section, 0, len(canonicalHeadings))
	for i, heading := range canonicalHeadings {
		m := headingPatterns[i].FindStringSubmatch(normalized)
		if m == nil {
			continue
		}
		body := strings.TrimSpace(m[1])
		if len(body) <= minSectionLength {
			continue
		}
		out = append(out, Section{Label: heading, Text: body})
	}
	if len(out) > 0 {
		return out
	}

	index := 0
	for _, p := range paragraphSplit.Split(normalized, -1) {
		p = strings.TrimSpace(p)
		if len(p) <= minSectionLength {
			continue
		}
		index++
		out = append(out, Section{Label: fmt.Sprintf("paragraph_%d", index), Text: p})
	}
	return out
}

func buildHeadingPatterns() []*regexp.Regexp {
	// Each pattern captures greedily up to the next known heading or EOF.
	others := strings.Join(canonicalHeadings, "|")
	patterns := make([]*regexp.Regexp, len(canonicalHeadings))
	for i, heading := range canonicalHeadings {
		expr := fmt.Sprintf(`(?is)\b%s\b\.?\s*(.*?)(?:\b(?:%s)\b|\z)`, heading, others)
		patterns[i] = regexp.MustCompile(expr)
	}
	return patterns
}
