package recognition

import (
	"math"
	"strings"

	"github.com/rpggio/intentcat/internal/domain/intent"
	"golang.org/x/text/unicode/norm"
)

// Heuristic weights. exactMatchScore is the ceiling; no other rule can
// reach it.
const (
	exactMatchScore       = 0.95
	nameContainsScore     = 0.80
	descriptionScore      = 0.70
	keywordBaseScore      = 0.40
	keywordFractionWeight = 0.50
	keywordMaxScore       = 0.90
	similarityGate        = 0.50
	similarityFloor       = 0.60
	similarityWeight      = 0.60
)

// Score returns the confidence in [0, 1], rounded to two decimals, that
// text refers to rec.
func Score(text string, rec intent.Intent) float64 {
	confidence, _ := evaluate(text, rec)
	return confidence
}

// evaluate runs every rule and keeps the highest candidate along with the
// rule that produced it.
func evaluate(text string, rec intent.Intent) (float64, Rule) {
	t := normalize(text)
	name := normalize(rec.Name)

	best, rule := 0.0, RuleNone
	consider := func(candidate float64, r Rule) {
		if candidate > best {
			best, rule = candidate, r
		}
	}

	if t != "" && name != "" {
		if t == name {
			consider(exactMatchScore, RuleExact)
		}
		if strings.Contains(t, name) || strings.Contains(name, t) {
			consider(nameContainsScore, RuleNameContains)
		}
	}

	if desc := normalize(rec.Description); t != "" && desc != "" {
		if strings.Contains(t, desc) || strings.Contains(desc, t) {
			consider(descriptionScore, RuleDescriptionContains)
		}
	}

	if candidate, ok := keywordScore(t, rec.Keywords); ok {
		consider(candidate, RuleKeywords)
	}

	if best < similarityGate {
		if sim := Similarity(t, name); sim > similarityFloor {
			consider(sim*similarityWeight, RuleSimilarity)
		}
	}

	return round2(best), rule
}

// keywordScore reports the keyword-overlap candidate. ok is false when no
// keyword occurs in text.
func keywordScore(text string, keywords []string) (float64, bool) {
	total, hits := 0, 0
	for _, kw := range keywords {
		kw = normalize(kw)
		if kw == "" {
			continue
		}
		total++
		if strings.Contains(text, kw) {
			hits++
		}
	}
	if hits == 0 {
		return 0, false
	}
	fraction := float64(hits) / float64(total)
	return math.Min(keywordMaxScore, keywordBaseScore+fraction*keywordFractionWeight), true
}

// Similarity is 1 - Levenshtein(a, b) / max(len(a), len(b)) measured in
// runes. Two empty strings are identical.
func Similarity(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}
	return 1 - float64(Levenshtein(a, b))/float64(longest)
}

// Levenshtein returns the edit distance between a and b over Unicode code
// points with unit insert, delete and substitute costs. Only two rows of
// the table are kept.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
