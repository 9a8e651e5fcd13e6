package ngram

import "strings"

// DefaultSizes mixes bigrams through 4-grams into a single index, trading
// precision for a wider match surface.
var DefaultSizes = []int{2, 3, 4}

const minGramLength = 5

// Set returns the deduplicated set of contiguous word n-grams of the
// requested sizes. N-grams whose joined form is 5 characters or shorter
// are dropped. Returns an empty set when the text has fewer tokens than
// the smallest requested size.
func Set(text string, sizes []int) map[string]struct{} {
	out := map[string]struct{}{}
	tokens := strings.Split(text, " ")
	if len(sizes) == 0 {
		return out
	}

	smallest := sizes[0]
	for _, n := range sizes {
		if n < smallest {
			smallest = n
		}
	}
	if len(tokens) < smallest {
		return out
	}

	for _, n := range sizes {
		if n <= 0 {
			continue
		}
		for i := 0; i+n <= len(tokens); i++ {
			gram := strings.Join(tokens[i:i+n], " ")
			if len(gram) <= minGramLength {
				continue
			}
			out[gram] = struct{}{}
		}
	}
	return out
}
