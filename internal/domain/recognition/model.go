package recognition

import "github.com/rpggio/intentcat/internal/domain/intent"

const (
	// DefaultMinConfidence is the matched-bucket threshold used when the
	// caller has no preference.
	DefaultMinConfidence = 0.6
	// CandidateFloor is the exclusive lower bound of the candidate bucket.
	CandidateFloor = 0.30
	// MaxMatched bounds the matched bucket.
	MaxMatched = 5
	// MaxCandidates bounds the candidate bucket.
	MaxCandidates = 10
	// MaxBatchSize bounds the number of inputs accepted by one batch call.
	MaxBatchSize = 100
)

// Rule names the heuristic that produced a confidence value.
type Rule string

const (
	RuleNone                Rule = ""
	RuleExact               Rule = "exact"
	RuleNameContains        Rule = "name_contains"
	RuleDescriptionContains Rule = "description_contains"
	RuleKeywords            Rule = "keywords"
	RuleSimilarity          Rule = "similarity"
)

// ScoreResult is the confidence of one intent for one input.
type ScoreResult struct {
	IntentID    string      `json:"intent_id"`
	Kind        intent.Kind `json:"kind"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Confidence  float64     `json:"confidence"`
	CategoryID  string      `json:"category_id,omitempty"`
	Rule        Rule        `json:"rule"`
}

// MatchOutcome holds the bounded, ranked results of one recognition.
type MatchOutcome struct {
	Matched    []ScoreResult `json:"matched"`
	Candidates []ScoreResult `json:"candidates"`
}

// BatchEntry pairs one batch input with its outcome. Error is set when the
// entry could not be evaluated; its outcome is then empty.
type BatchEntry struct {
	InputText string       `json:"input_text"`
	Outcome   MatchOutcome `json:"outcome"`
	Error     string       `json:"error,omitempty"`
}

func emptyOutcome() MatchOutcome {
	return MatchOutcome{Matched: []ScoreResult{}, Candidates: []ScoreResult{}}
}
