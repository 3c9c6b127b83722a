package schema

// levenshteinDistance computes the Levenshtein edit distance between two strings:
// the minimum number of single-rune insertions, deletions or substitutions
// required to transform a into b.
func levenshteinDistance(a, b string) int {
	aRunes := []rune(a)
	bRunes := []rune(b)

	if len(aRunes) == 0 {
		return len(bRunes)
	}
	if len(bRunes) == 0 {
		return len(aRunes)
	}

	// Two rows, shorter string in the inner loop.
	if len(aRunes) > len(bRunes) {
		aRunes, bRunes = bRunes, aRunes
	}

	prevRow := make([]int, len(aRunes)+1)
	currRow := make([]int, len(aRunes)+1)
	for i := range prevRow {
		prevRow[i] = i
	}

	for j := 1; j <= len(bRunes); j++ {
		currRow[0] = j
		for i := 1; i <= len(aRunes); i++ {
			cost := 1
			if aRunes[i-1] == bRunes[j-1] {
				cost = 0
			}
			currRow[i] = min(prevRow[i]+1, currRow[i-1]+1, prevRow[i-1]+cost)
		}
		prevRow, currRow = currRow, prevRow
	}

	return prevRow[len(aRunes)]
}

// Similarity returns a normalized similarity score between 0.0 (completely
// different) and 1.0 (identical):
//
//	1.0 - levenshteinDistance(a, b) / max(len(a), len(b))
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(levenshteinDistance(a, b))/float64(maxLen)
}
