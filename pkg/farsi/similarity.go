package farsi

// Similarity returns an edit-distance based score in [0,1]:
// (maxLen - levenshtein(a,b)) / maxLen. Two empty strings score 1.0.
// The score is symmetric and is a ranking signal, not an equality test.
func Similarity(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := editDistance(ra, rb)
	return float64(maxLen-dist) / float64(maxLen)
}

// editDistance is classic Levenshtein with unit-cost insert, delete and
// substitute, computed over two rolling rows.
func editDistance(ra, rb []rune) int {
	if len(rb) > len(ra) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i, raChar := range ra {
		curr[0] = i + 1
		for j, rbChar := range rb {
			cost := 0
			if raChar != rbChar {
				cost = 1
			}
			del := prev[j+1] + 1
			ins := curr[j] + 1
			sub := prev[j] + cost
			curr[j+1] = min3(del, ins, sub)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
