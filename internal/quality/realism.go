package quality

import (
	"regexp"
	"strings"
)

// technicalTerms is the domain vocabulary for dev-tool reviews. Multi-word
// terms are matched as substrings of the lowercased text.
var technicalTerms = []string{
	// General dev terms
	"api", "sdk", "cli", "gui", "ui", "ux", "integration", "plugin",
	"extension", "workflow", "pipeline", "automation", "deployment",
	"configuration", "setup", "installation", "documentation", "docs",

	// Programming concepts
	"code", "debug", "debugging", "testing", "test", "unit test",
	"integration test", "endpoint", "request", "response", "json",
	"xml", "yaml", "rest", "graphql", "webhook", "authentication",
	"authorization", "oauth", "token", "jwt",

	// DevOps terms
	"ci/cd", "continuous integration", "continuous deployment",
	"container", "docker", "kubernetes", "k8s", "microservices",
	"monitoring", "logging", "metrics", "observability", "tracing",
	"alert", "dashboard", "visualization",

	// Performance terms
	"performance", "latency", "throughput", "scalability", "optimization",
	"caching", "load time", "response time", "bottleneck",

	// Quality terms
	"bug", "issue", "error", "exception", "crash", "stability",
	"reliability", "uptime", "downtime", "maintenance",

	// Development workflow
	"git", "github", "gitlab", "version control", "commit", "branch",
	"merge", "pull request", "pr", "code review", "refactor",
	"repository", "repo",
}

// genericPhrases are marketing cliches that reduce realism.
var genericPhrases = []string{
	"game changer", "revolutionary", "best ever", "perfect solution",
	"absolutely amazing", "mind blowing", "life changing", "incredible tool",
	"flawless", "without any issues", "zero problems", "perfect in every way",
}

// featurePatterns detect mentions of specific capabilities rather than
// generic praise.
var featurePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(feature|functionality|capability|option|setting)\b`),
	regexp.MustCompile(`(?i)\b(allows|enables|supports|provides|includes)\b`),
	regexp.MustCompile(`(?i)\b(integration with|works with|compatible with)\b`),
	regexp.MustCompile(`(?i)\b(can|could|able to)\b.*\b(do|use|configure|customize)\b`),
}

// useCasePatterns detect a concrete usage context.
var useCasePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(use|using|used)\b.*\b(for|to|in|with)\b`),
	regexp.MustCompile(`(?i)\b(project|team|company|work|development)\b`),
	regexp.MustCompile(`(?i)\b(need|needed|require|required)\b`),
	regexp.MustCompile(`(?i)\b(my|our|we|i)\b.*\b(project|workflow|pipeline|setup)\b`),
}

// Word lists for the balanced-critique check, keyed by rating band.
var (
	midPositiveWords  = []string{"good", "great", "nice", "helpful", "useful", "works", "like", "love"}
	midNegativeWords  = []string{"but", "however", "unfortunately", "issue", "problem", "bug", "missing", "lack", "could", "should", "wish", "hope"}
	highPositiveWords = []string{"good", "great", "excellent", "helpful", "useful", "love", "recommend"}
	lowNegativeWords  = []string{"bad", "poor", "terrible", "awful", "issue", "problem", "bug", "disappointing", "frustrated", "waste"}
)

// Realism scoring point values (sum to 100).
const (
	techTermPoints      = 30.0
	techTermPartialEach = 10.0
	featurePoints       = 25.0
	balancePoints       = 20.0
	useCasePoints       = 15.0
	noGenericPoints     = 10.0

	// realismPassScore is the sub-score threshold below which the
	// realism gate fails outright
	realismPassScore = 60.0
)

// RealismResult is the breakdown of the realism evaluation.
type RealismResult struct {
	// TechnicalTermCount is the number of distinct domain terms present
	TechnicalTermCount int `json:"technical_term_count"`

	// EnoughTechnicalTerms is false when the hard gate on term count fails
	EnoughTechnicalTerms bool `json:"enough_technical_terms"`

	// MentionsFeatures is true when specific capabilities are named
	MentionsFeatures bool `json:"mentions_features"`

	// Balanced is true when the critique fits the rating band
	Balanced bool `json:"balanced"`

	// MentionsUseCase is true when a concrete usage context is present
	MentionsUseCase bool `json:"mentions_use_case"`

	// GenericPhrases lists marketing cliches found in the text
	GenericPhrases []string `json:"generic_phrases,omitempty"`

	// Score is the realism sub-score (0-100)
	Score float64 `json:"score"`

	// Pass is true when Score meets the realism threshold
	Pass bool `json:"pass"`
}

// RealismEvaluator checks domain realism of dev-tool reviews: technical
// vocabulary, concrete features, balanced critique, and usage context.
type RealismEvaluator struct {
	// MinTechnicalTerms is the hard gate on distinct domain terms
	MinTechnicalTerms int
}

// Evaluate scores one candidate for its tool category realism.
func (e RealismEvaluator) Evaluate(candidate string, rating int) RealismResult {
	lower := strings.ToLower(candidate)

	termCount := countTechnicalTerms(lower)
	enough := termCount >= e.MinTechnicalTerms

	mentionsFeatures := matchesAny(featurePatterns, candidate)
	balanced := checkBalancedCritique(lower, rating)
	mentionsUseCase := matchesAny(useCasePatterns, candidate)
	foundGeneric := findGenericPhrases(lower)

	var score float64
	if enough {
		score += techTermPoints
	} else {
		score += float64(termCount) * techTermPartialEach
	}
	if mentionsFeatures {
		score += featurePoints
	}
	if balanced {
		score += balancePoints
	}
	if mentionsUseCase {
		score += useCasePoints
	}
	if len(foundGeneric) == 0 {
		score += noGenericPoints
	}
	if score > 100 {
		score = 100
	}

	return RealismResult{
		TechnicalTermCount:   termCount,
		EnoughTechnicalTerms: enough,
		MentionsFeatures:     mentionsFeatures,
		Balanced:             balanced,
		MentionsUseCase:      mentionsUseCase,
		GenericPhrases:       foundGeneric,
		Score:                score,
		Pass:                 score >= realismPassScore,
	}
}

// countTechnicalTerms counts distinct domain terms appearing in the text.
func countTechnicalTerms(lower string) int {
	count := 0
	for _, term := range technicalTerms {
		if strings.Contains(lower, term) {
			count++
		}
	}
	return count
}

func findGenericPhrases(lower string) []string {
	var found []string
	for _, phrase := range genericPhrases {
		if strings.Contains(lower, phrase) {
			found = append(found, phrase)
		}
	}
	return found
}

func matchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// checkBalancedCritique verifies the critique matches the rating band:
// 3-star reviews need both praise and complaint, 4-5 need praise,
// 1-2 need complaint.
func checkBalancedCritique(lower string, rating int) bool {
	switch {
	case rating == 3:
		return containsAnyWord(lower, midPositiveWords) && containsAnyWord(lower, midNegativeWords)
	case rating >= 4:
		return containsAnyWord(lower, highPositiveWords)
	default:
		return containsAnyWord(lower, lowNegativeWords)
	}
}

func containsAnyWord(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
