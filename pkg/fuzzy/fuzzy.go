package fuzzy

import "strings"

// LevenshteinDistance is the number of single-character edits (insertions,
// deletions or substitutions) required to turn s1 into s2. Inputs are
// normalized before comparing.
func LevenshteinDistance(s1, s2 string) int {
	s1 = normalize(s1)
	s2 = normalize(s2)

	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	d := make([][]int, m+1)
	for i := range d {
		d[i] = make([]int, n+1)
	}
	for i := 0; i <= m; i++ {
		d[i][0] = i
	}
	for j := 0; j <= n; j++ {
		d[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			d[i][j] = min3(
				d[i-1][j]+1,
				d[i][j-1]+1,
				d[i-1][j-1]+cost,
			)
		}
	}

	return d[m][n]
}

// Match reports whether query fuzzy-matches text. threshold is the maximum
// allowed edit distance per word.
func Match(query, text string, threshold int) bool {
	query = normalize(query)
	text = normalize(text)

	if strings.Contains(text, query) {
		return true
	}

	for _, word := range strings.Fields(text) {
		if LevenshteinDistance(query, word) <= threshold {
			return true
		}
		if strings.HasPrefix(word, query) {
			return true
		}
	}

	return false
}

// Relevance scores how well a task matches a query. Title matches weigh
// heaviest, then category and tags, then description. Zero means no match.
func Relevance(query, title, description, category string, tags []string) float64 {
	query = normalize(query)
	score := 0.0

	titleNorm := normalize(title)
	if strings.Contains(titleNorm, query) {
		score += 100.0
		if containsWord(titleNorm, query) {
			score += 50.0
		}
	} else {
		for _, word := range strings.Fields(titleNorm) {
			dist := LevenshteinDistance(query, word)
			if dist <= 2 {
				score += 50.0 - float64(dist)*15
			}
			if strings.HasPrefix(word, query) {
				score += 40.0
			}
		}
	}

	if category != "" && strings.Contains(normalize(category), query) {
		score += 60.0
	}

	for _, tag := range tags {
		tagNorm := normalize(tag)
		if tagNorm == query {
			score += 70.0
		} else if strings.Contains(tagNorm, query) {
			score += 40.0
		}
	}

	descNorm := normalize(description)
	if strings.Contains(descNorm, query) {
		score += 30.0
		if containsWord(descNorm, query) {
			score += 10.0
		}
	}

	return score
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

func normalize(s string) string {
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

func containsWord(text, query string) bool {
	for _, word := range strings.Fields(text) {
		if word == query {
			return true
		}
	}
	return false
}
