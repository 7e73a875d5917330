// Package matcher resolves a normalized street name to the closest entry of
// the street vocabulary.
package matcher

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// DefaultMinScore is the score a candidate must exceed to be accepted.
const DefaultMinScore = 90

// Vocabulary is the set of valid street names, iterated in a fixed order.
type Vocabulary interface {
	Contains(name string) bool
	Names() []string
}

// NoCloseMatchError reports a street name with no vocabulary entry scoring
// above the minimum. Candidate and Score describe the best entry found.
type NoCloseMatchError struct {
	Input     string
	Candidate string
	Score     int
	MinScore  int
}

func (e *NoCloseMatchError) Error() string {
	if e.Candidate == "" {
		return fmt.Sprintf("no street matches %q", e.Input)
	}
	return fmt.Sprintf("no street matches %q: closest %q scored %d, need more than %d",
		e.Input, e.Candidate, e.Score, e.MinScore)
}

// MatchClosestStreet returns the vocabulary entry closest to name.
//
// An exact entry is returned as-is without scoring. Otherwise every entry is
// scored with TokenSortRatio and the first entry with the highest score wins;
// it is accepted only if its score is strictly greater than minScore.
func MatchClosestStreet(name string, vocab Vocabulary, minScore int) (string, error) {
	if vocab.Contains(name) {
		return name, nil
	}

	best, bestScore := "", -1
	for _, candidate := range vocab.Names() {
		if score := TokenSortRatio(name, candidate); score > bestScore {
			best, bestScore = candidate, score
		}
	}

	if bestScore > minScore {
		return best, nil
	}
	return "", &NoCloseMatchError{Input: name, Candidate: best, Score: max(bestScore, 0), MinScore: minScore}
}

// TokenSortRatio scores the similarity of a and b from 0 to 100 ignoring
// token order. Tokens of each string are sorted and re-joined, then compared
// by longest common subsequence: 100 * 2*lcs / (len(a)+len(b)).
func TokenSortRatio(a, b string) int {
	a, b = sortTokens(a), sortTokens(b)
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if a == "" || b == "" {
		return 0
	}
	lcs := edlib.LCS(a, b)
	return int(math.Round(100 * float64(2*lcs) / float64(total)))
}

func sortTokens(s string) string {
	tokens := strings.Fields(strings.ToLower(s))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
