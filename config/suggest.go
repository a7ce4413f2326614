package config

// suggestionThreshold is the minimum normalized similarity for a candidate
// to be offered as a "did you mean" suggestion.
const suggestionThreshold = 0.5

// closestMatch returns the candidate most similar to input, or the empty
// string when no candidate clears the suggestion threshold.
func closestMatch(input string, candidates []string) string {
	best := ""
	bestScore := suggestionThreshold
	for _, candidate := range candidates {
		if score := similarity(input, candidate); score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	return best
}

// similarity is the Levenshtein distance between a and b normalized to
// [0, 1], where 1 means identical.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(a, b))/float64(longest)
}

// levenshtein computes the edit distance between two strings using the
// two-row dynamic programming form.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
