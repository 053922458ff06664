package search

// positionPenalty is subtracted per character preceding the first match.
const positionPenalty = 0.1

// nameWeight multiplies the name score when ranking items.
const nameWeight = 2

// Score rates how well query fuzzy-matches text. The query must appear in
// text as an ordered subsequence, otherwise the score is 0. Each matched
// character earns one point plus a bonus equal to the length of the run of
// adjacent matches preceding it, so a contiguous run of k characters scores
// k(k+1)/2. The total is reduced by a tenth of a point for every character
// before the first match and floored at 0.
//
// Both inputs are folded with ASCII case rules only.
func Score(text, query string) float64 {
	if query == "" {
		return 0
	}

	t := []rune(asciiLower(text))
	q := []rune(asciiLower(query))

	var (
		score       float64
		qi          int
		consecutive int
		first       = -1
	)

	for i := 0; i < len(t) && qi < len(q); i++ {
		if t[i] != q[qi] {
			consecutive = 0
			continue
		}

		if first == -1 {
			first = i
		}
		score += float64(1 + consecutive)
		consecutive++
		qi++
	}

	if qi < len(q) {
		return 0
	}

	score -= float64(first) * positionPenalty
	if score < 0 {
		return 0
	}
	return score
}

// ItemScore is the ranking score of an item for query: the best of the
// weighted name score, the type score and the description score.
func ItemScore(f Fields, query string) float64 {
	return max(
		Score(f.Name, query)*nameWeight,
		Score(f.Type, query),
		Score(f.Desc, query),
	)
}

func asciiLower(s string) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'A' || c > 'Z' {
			continue
		}
		if b == nil {
			b = []byte(s)
		}
		b[i] = c + ('a' - 'A')
	}
	if b == nil {
		return s
	}
	return string(b)
}
