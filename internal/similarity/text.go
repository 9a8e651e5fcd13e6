package similarity

import (
	"math"
	"strings"
)

// TextSimilarity is the base primitive under every scorer. It collapses
// whitespace and case on both inputs, returns exactly 100 for identical
// texts, and otherwise measures matched characters (longest common
// substring, applied recursively to the remainders on both sides) as a
// percentage of the combined length.
func TextSimilarity(a, b string) float64 {
	na := collapse(a)
	nb := collapse(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 100
	}
	// Fix the argument order so equal-length tie runs resolve the same
	// way in both call directions; the score is symmetric by contract.
	if nb < na {
		na, nb = nb, na
	}
	matched := matchedChars(na, nb)
	return round2(float64(matched) * 200.0 / float64(len(na)+len(nb)))
}

func collapse(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func matchedChars(a, b string) int {
	ai, bi, size := longestCommon(a, b)
	if size == 0 {
		return 0
	}
	total := size
	total += matchedChars(a[:ai], b[:bi])
	total += matchedChars(a[ai+size:], b[bi+size:])
	return total
}

func longestCommon(a, b string) (ai, bi, size int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] != b[j-1] {
				cur[j] = 0
				continue
			}
			cur[j] = prev[j-1] + 1
			if cur[j] > size {
				size = cur[j]
				ai = i - size
				bi = j - size
			}
		}
		prev, cur = cur, prev
		for j := range cur {
			cur[j] = 0
		}
	}
	return ai, bi, size
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
